package prompts

import (
	"slices"
	"strconv"
	"strings"

	"github.com/jrsteele09/promptshare/internal/errors"
	"github.com/jrsteele09/promptshare/internal/utils"
)

const (
	RequiredFieldsMessage = "제목, 내용, 카테고리는 필수 입력 항목입니다."
	CreateFailedMessage   = "프롬프트 작성에 실패했습니다."
)

// Form is the state of the create prompt page between round trips
type Form struct {
	Title       string
	Description string
	Content     string
	CategoryID  *int64
	Tags        []string
	TagInput    string
}

// AddTag moves the trimmed tag input into Tags. Empty and duplicate tags are ignored.
func (f *Form) AddTag() bool {
	tag := strings.TrimSpace(f.TagInput)
	if tag == "" || slices.Contains(f.Tags, tag) {
		return false
	}
	f.Tags = append(f.Tags, tag)
	f.TagInput = ""
	return true
}

func (f *Form) RemoveTag(tag string) {
	f.Tags = slices.DeleteFunc(f.Tags, func(t string) bool { return t == tag })
}

// Validate checks the required fields: title, content and category
func (f *Form) Validate() error {
	if strings.TrimSpace(f.Title) == "" || strings.TrimSpace(f.Content) == "" || f.CategoryID == nil {
		return errors.ErrRequiredFields
	}
	return nil
}

// Request builds the API payload from a validated form
func (f *Form) Request() CreateRequest {
	return CreateRequest{
		Title:       strings.TrimSpace(f.Title),
		Description: strings.TrimSpace(f.Description),
		Content:     strings.TrimSpace(f.Content),
		CategoryID:  utils.Value(f.CategoryID),
		Tags:        slices.Clone(f.Tags),
	}
}

// CategoryOption encodes a category for the hidden fields that carry the
// select options across form round trips, as "id:name"
func CategoryOption(c Category) string {
	return strconv.FormatInt(c.ID, 10) + ":" + c.Name
}

// ParseCategoryOptions decodes the values written by CategoryOption, skipping malformed ones
func ParseCategoryOptions(values []string) []Category {
	categories := make([]Category, 0, len(values))
	for _, v := range values {
		idPart, name, ok := strings.Cut(v, ":")
		if !ok {
			continue
		}
		id, ok := ParseID(idPart)
		if !ok {
			continue
		}
		categories = append(categories, Category{ID: id, Name: name})
	}
	return categories
}
