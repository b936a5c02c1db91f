package prompts_test

import (
	"net/url"
	"testing"

	"github.com/jrsteele09/promptshare/internal/utils"
	"github.com/jrsteele09/promptshare/prompts"
	"github.com/stretchr/testify/require"
)

func TestQuery_Encode(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		require.Equal(t, "page=0&size=20&sort=createdAt%2CDESC", prompts.Query{}.Encode())
	})

	t.Run("keyword and category", func(t *testing.T) {
		q := prompts.Query{Page: 2, Keyword: "cat", CategoryID: utils.Ptr(int64(5))}
		encoded := q.Encode()
		require.Equal(t, "page=2&size=20&sort=createdAt%2CDESC&keyword=cat&categoryId=5", encoded)

		values, err := url.ParseQuery(encoded)
		require.NoError(t, err)
		require.Equal(t, "createdAt,DESC", values.Get("sort"))
		require.Equal(t, "5", values.Get("categoryId"))
	})

	t.Run("blank keyword and zero category are dropped", func(t *testing.T) {
		q := prompts.Query{Keyword: "   ", CategoryID: utils.Ptr(int64(0))}
		require.Equal(t, "page=0&size=20&sort=createdAt%2CDESC", q.Encode())
	})

	t.Run("keyword is trimmed", func(t *testing.T) {
		q := prompts.Query{Keyword: "  cat \t"}
		require.Equal(t, "page=0&size=20&sort=createdAt%2CDESC&keyword=cat", q.Encode())
	})

	t.Run("keyword is escaped", func(t *testing.T) {
		q := prompts.Query{Keyword: "코드 리뷰&"}
		values, err := url.ParseQuery(q.Encode())
		require.NoError(t, err)
		require.Equal(t, "코드 리뷰&", values.Get("keyword"))
	})

	t.Run("custom size and sort", func(t *testing.T) {
		q := prompts.Query{Page: -1, Size: 5, Sort: "likesCount,DESC"}
		require.Equal(t, "page=0&size=5&sort=likesCount%2CDESC", q.Encode())
	})
}
