package server

import (
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/jrsteele09/promptshare/api"
	"github.com/jrsteele09/promptshare/prompts"
	"github.com/rs/zerolog/log"
)

const (
	listFailedMessage     = "프롬프트를 불러오는데 실패했습니다."
	notFoundMessage       = "프롬프트를 찾을 수 없습니다."
	actionAddTag          = "add-tag"
	formFieldCategory     = "category"
	formFieldCategoryOpts = "categoryOption"
	formFieldRemoveTag    = "removeTag"
)

type promptsPage struct {
	basePage
	Keyword    string
	CategoryID *int64
	Category   *prompts.Category
	Categories []prompts.Category
	Page       *prompts.Page
	Error      string
}

// URL links back to the list keeping the search and category filter
func (p promptsPage) URL(page int) string {
	return listURL(p.Keyword, p.CategoryID, page)
}

// CategoryURL switches the category filter, starting again from the first page
func (p promptsPage) CategoryURL(id int64) string {
	if id <= 0 {
		return listURL(p.Keyword, nil, 0)
	}
	return listURL(p.Keyword, &id, 0)
}

func listURL(keyword string, categoryID *int64, page int) string {
	v := url.Values{}
	if keyword != "" {
		v.Set("search", keyword)
	}
	if categoryID != nil {
		v.Set(formFieldCategory, strconv.FormatInt(*categoryID, 10))
	}
	if page > 0 {
		v.Set("page", strconv.Itoa(page))
	}
	if len(v) == 0 {
		return RoutePrompts
	}
	return RoutePrompts + "?" + v.Encode()
}

// PromptsListHandler lists prompts (GET /prompts?search=&category=&page=)
func (s *Server) PromptsListHandler(tmpl *template.Template) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		query := prompts.Query{Keyword: q.Get("search")}
		if page, err := strconv.Atoi(q.Get("page")); err == nil {
			query.Page = page
		}
		if id, ok := prompts.ParseID(q.Get(formFieldCategory)); ok {
			query.CategoryID = &id
		}
		query = query.Normalized()

		token := s.accessToken(r)
		data := promptsPage{
			basePage:   s.basePage(r, "프롬프트 탐색"),
			Keyword:    query.Keyword,
			CategoryID: query.CategoryID,
		}

		// A missing category list only hides the filter
		categories, err := s.backend.GetCategories(r.Context(), token)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to load categories")
		}
		data.Categories = categories
		for i := range categories {
			if query.CategoryID != nil && categories[i].ID == *query.CategoryID {
				data.Category = &categories[i]
			}
		}

		page, err := s.backend.GetPrompts(r.Context(), token, query)
		if err != nil {
			log.Err(err).Str("query", query.Encode()).Msg("Failed to load prompts")
			data.Error = listFailedMessage
			render(w, tmpl, http.StatusBadGateway, data)
			return
		}
		data.Page = page
		render(w, tmpl, http.StatusOK, data)
	}
}

type promptDetailPage struct {
	basePage
	Prompt *prompts.Prompt
	Error  string
}

// PromptDetailHandler shows one prompt (GET /prompts/{id})
func (s *Server) PromptDetailHandler(tmpl *template.Template) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := promptDetailPage{basePage: s.basePage(r, "프롬프트")}

		id, ok := prompts.ParseID(r.PathValue("id"))
		if !ok {
			data.Error = notFoundMessage
			render(w, tmpl, http.StatusNotFound, data)
			return
		}

		prompt, err := s.backend.GetPrompt(r.Context(), s.accessToken(r), id)
		if err != nil {
			status := http.StatusBadGateway
			data.Error = listFailedMessage
			if api.IsStatus(err, http.StatusNotFound) {
				status = http.StatusNotFound
				data.Error = notFoundMessage
			}
			log.Err(err).Int64("prompt_id", id).Msg("Failed to load prompt")
			render(w, tmpl, status, data)
			return
		}

		data.Prompt = prompt
		data.Title = prompt.Title
		render(w, tmpl, http.StatusOK, data)
	}
}

type promptCreatePage struct {
	basePage
	Form       prompts.Form
	Categories []prompts.Category
	Error      string
}

// PromptCreatePageHandler shows an empty create form (GET /prompts/create)
func (s *Server) PromptCreatePageHandler(tmpl *template.Template) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := promptCreatePage{basePage: s.basePage(r, "프롬프트 작성")}

		categories, err := s.backend.GetCategories(r.Context(), s.accessToken(r))
		if err != nil {
			log.Warn().Err(err).Msg("Failed to load categories")
		}
		data.Categories = categories
		render(w, tmpl, http.StatusOK, data)
	}
}

// PromptCreateSubmitHandler handles the create form actions (POST /prompts/create).
// Tag edits and validation failures re-render the form without calling the backend.
func (s *Server) PromptCreateSubmitHandler(tmpl *template.Template) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		data := promptCreatePage{
			basePage:   s.basePage(r, "프롬프트 작성"),
			Form:       formFromRequest(r),
			Categories: prompts.ParseCategoryOptions(r.PostForm[formFieldCategoryOpts]),
		}

		if tag := r.PostFormValue(formFieldRemoveTag); tag != "" {
			data.Form.RemoveTag(tag)
			render(w, tmpl, http.StatusOK, data)
			return
		}
		if r.PostFormValue("action") == actionAddTag {
			data.Form.AddTag()
			render(w, tmpl, http.StatusOK, data)
			return
		}

		if err := data.Form.Validate(); err != nil {
			data.Error = prompts.RequiredFieldsMessage
			render(w, tmpl, http.StatusUnprocessableEntity, data)
			return
		}

		created, err := s.backend.CreatePrompt(r.Context(), s.accessToken(r), data.Form.Request())
		if err != nil {
			log.Err(err).Msg("Failed to create prompt")
			data.Error = prompts.CreateFailedMessage
			render(w, tmpl, http.StatusBadGateway, data)
			return
		}

		log.Info().Int64("prompt_id", created.ID).Msg("Prompt created")
		redirectSuccess(w, r, RoutePrompts)
	}
}

func formFromRequest(r *http.Request) prompts.Form {
	f := prompts.Form{
		Title:       r.PostFormValue("title"),
		Description: r.PostFormValue("description"),
		Content:     r.PostFormValue("content"),
		TagInput:    r.PostFormValue("tagInput"),
	}
	if id, ok := prompts.ParseID(r.PostFormValue(formFieldCategory)); ok {
		f.CategoryID = &id
	}
	for _, tag := range r.PostForm["tags"] {
		if tag = strings.TrimSpace(tag); tag != "" {
			f.Tags = append(f.Tags, tag)
		}
	}
	return f
}
