package prompts

import (
	"fmt"
	"strconv"
	"strings"
)

// Category groups prompts, e.g. "coding" or "writing"
type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Prompt is a user submitted prompt as returned by the backend
type Prompt struct {
	ID             int64    `json:"id"`
	Title          string   `json:"title"`
	Description    string   `json:"description,omitempty"`
	Content        string   `json:"content,omitempty"`
	CategoryID     int64    `json:"categoryId,omitempty"`
	CategoryName   string   `json:"categoryName,omitempty"`
	AuthorNickname string   `json:"authorNickname,omitempty"`
	ViewsCount     int64    `json:"viewsCount"`
	LikesCount     int64    `json:"likesCount"`
	Tags           []string `json:"tags,omitempty"`
	CreatedAt      string   `json:"createdAt,omitempty"`
}

// Pagination is the backend's paging metadata, pages are zero based
type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalCount  int64 `json:"totalCount"`
}

// Page is one page of prompts
type Page struct {
	Content    []Prompt   `json:"content"`
	Pagination Pagination `json:"pagination"`
	Size       int        `json:"size"`
}

// LastPage is the index of the last page, treating an empty result as one page
func (p *Page) LastPage() int {
	total := p.Pagination.TotalPages
	if total < 1 {
		total = 1
	}
	return total - 1
}

func (p *Page) HasPrev() bool {
	return p.Pagination.CurrentPage > 0
}

func (p *Page) HasNext() bool {
	return p.Pagination.CurrentPage < p.LastPage()
}

// PageNumbers lists every page index for the pager
func (p *Page) PageNumbers() []int {
	numbers := make([]int, 0, p.LastPage()+1)
	for i := 0; i <= p.LastPage(); i++ {
		numbers = append(numbers, i)
	}
	return numbers
}

// CreateRequest is the payload for creating a prompt
type CreateRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Content     string   `json:"content"`
	CategoryID  int64    `json:"categoryId"`
	Tags        []string `json:"tags,omitempty"`
}

// FormatCount renders view/like counters, 1234 -> "1.2k"
func FormatCount(n int64) string {
	if n > 999 {
		return fmt.Sprintf("%.1fk", float64(n)/1000)
	}
	return strconv.FormatInt(n, 10)
}

// ParseID parses a prompt or category id from a path or form value
func ParseID(s string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
