package prompts

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultPage = 0
	DefaultSize = 20
	DefaultSort = "createdAt,DESC"
)

// Query holds the listing parameters, zero values fall back to the defaults
type Query struct {
	Page       int
	Size       int
	Sort       string
	Keyword    string
	CategoryID *int64
}

// Normalized returns a copy with defaults applied
func (q Query) Normalized() Query {
	if q.Page < 0 {
		q.Page = DefaultPage
	}
	if q.Size <= 0 {
		q.Size = DefaultSize
	}
	if q.Sort == "" {
		q.Sort = DefaultSort
	}
	q.Keyword = strings.TrimSpace(q.Keyword)
	if q.CategoryID != nil && *q.CategoryID <= 0 {
		q.CategoryID = nil
	}
	return q
}

// Encode serialises the query in the order page, size, sort, keyword, categoryId.
// keyword and categoryId are left out when unset.
func (q Query) Encode() string {
	q = q.Normalized()
	pairs := [][2]string{
		{"page", strconv.Itoa(q.Page)},
		{"size", strconv.Itoa(q.Size)},
		{"sort", q.Sort},
	}
	if q.Keyword != "" {
		pairs = append(pairs, [2]string{"keyword", q.Keyword})
	}
	if q.CategoryID != nil {
		pairs = append(pairs, [2]string{"categoryId", strconv.FormatInt(*q.CategoryID, 10)})
	}

	var b strings.Builder
	for i, p := range pairs {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p[0]))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p[1]))
	}
	return b.String()
}
