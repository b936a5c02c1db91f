package server

import (
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/jrsteele09/promptshare/prompts"
	"github.com/rs/zerolog/log"
)

//go:embed templates/*
var templateFiles embed.FS

const (
	contentTypeHTML = "text/html; charset=utf-8"
	layoutTemplate  = "layout.html"
)

var templateFS = mustSub(templateFiles, "templates")

var templateFuncs = template.FuncMap{
	"formatCount":    prompts.FormatCount,
	"shortDate":      shortDate,
	"categoryOption": prompts.CategoryOption,
	"isCategory": func(selected *int64, id int64) bool {
		return selected != nil && *selected == id
	},
	"add": func(a, b int) int { return a + b },
}

// ParseTemplate parses a page from the embedded filesystem together with the shared layout
func ParseTemplate(name string) (*template.Template, error) {
	return template.New(name).Funcs(templateFuncs).ParseFS(templateFS, layoutTemplate, name)
}

type pageTemplates struct {
	index    *template.Template
	login    *template.Template
	callback *template.Template
	prompts  *template.Template
	detail   *template.Template
	create   *template.Template
}

func (s *Server) parsePages() (*pageTemplates, error) {
	pages := &pageTemplates{}
	for name, target := range map[string]**template.Template{
		"index.html":         &pages.index,
		"login.html":         &pages.login,
		"callback.html":      &pages.callback,
		"prompts.html":       &pages.prompts,
		"prompt_detail.html": &pages.detail,
		"prompt_create.html": &pages.create,
	} {
		tmpl, err := ParseTemplate(name)
		if err != nil {
			return nil, err
		}
		*target = tmpl
	}
	return pages, nil
}

// render writes a page with the given status
func render(w http.ResponseWriter, tmpl *template.Template, status int, data any) {
	w.Header().Set("Content-Type", contentTypeHTML)
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, layoutTemplate, data); err != nil {
		log.Err(err).Str("template", tmpl.Name()).Msg("Failed to render template")
	}
}

// shortDate formats a backend timestamp as a Korean month and day, e.g. "3월 14일"
func shortDate(value string) string {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999999", "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format("1월 2일")
		}
	}
	return value
}
