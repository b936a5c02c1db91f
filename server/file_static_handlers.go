package server

import (
	"embed"
	"fmt"
	"io/fs"
	"mime"
	"net/http"
	"path"
	"strings"
)

//go:embed static/*
var staticFiles embed.FS

// staticFS serves static/ as the root of the asset paths (e.g., "css/app.css")
var staticFS = mustSub(staticFiles, "static")

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic("embedded " + dir + " directory missing: " + err.Error())
	}
	return sub
}

// StreamFile writes an embedded asset with a content type derived from its extension
func StreamFile(w http.ResponseWriter, fileName string) error {
	data, err := fs.ReadFile(staticFS, fileName)
	if err != nil {
		return fmt.Errorf("read asset %s: %w", fileName, err)
	}

	w.Header().Set("Content-Type", assetContentType(fileName, data))
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write asset %s: %w", fileName, err)
	}
	return nil
}

func assetContentType(fileName string, data []byte) string {
	ctype := mime.TypeByExtension(strings.ToLower(path.Ext(fileName)))
	if ctype == "" {
		ctype = http.DetectContentType(data)
	}
	if strings.HasPrefix(ctype, "text/") && !strings.Contains(strings.ToLower(ctype), "charset=") {
		ctype += "; charset=utf-8"
	}
	return ctype
}
