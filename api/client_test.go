package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jrsteele09/promptshare/internal/utils"
	"github.com/jrsteele09/promptshare/prompts"
	"github.com/stretchr/testify/require"
)

func writeData(t *testing.T, w http.ResponseWriter, data any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(map[string]any{"data": data}))
}

func TestLogin_AllProviders(t *testing.T) {
	for _, provider := range []string{"google", "kakao", "naver"} {
		t.Run(provider, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, http.MethodPost, r.Method)
				require.Equal(t, "/api/v1/auth/"+provider+"/login", r.URL.Path)
				require.Empty(t, r.Header.Get("Authorization"))

				var req loginRequest
				require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
				require.Equal(t, "code-123", req.AuthorizationCode)

				writeData(t, w, Tokens{AccessToken: "access-" + provider, RefreshToken: "refresh-" + provider})
			}))
			defer srv.Close()

			c := New(srv.URL, time.Second)
			login := map[string]func(context.Context, string) (*Tokens, error){
				"google": c.GoogleLogin,
				"kakao":  c.KakaoLogin,
				"naver":  c.NaverLogin,
			}[provider]

			tokens, err := login(context.Background(), "code-123")
			require.NoError(t, err)
			require.Equal(t, "access-"+provider, tokens.AccessToken)
			require.Equal(t, "refresh-"+provider, tokens.RefreshToken)
		})
	}
}

func TestLogin_Failure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "invalid code"})
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	_, err := c.GoogleLogin(context.Background(), "bad")
	require.Error(t, err)
	require.True(t, IsStatus(err, http.StatusBadRequest))
	require.Contains(t, err.Error(), "invalid code")
}

func TestGetProfile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/members/me", r.URL.Path)
		if r.Header.Get("Authorization") != "Bearer good-token" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte("unauthorized"))
			return
		}
		writeData(t, w, map[string]any{"id": 7, "nickname": "mina", "email": "mina@example.com"})
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)

	u, err := c.GetProfile(context.Background(), "good-token")
	require.NoError(t, err)
	require.Equal(t, int64(7), u.ID)
	require.Equal(t, "mina", u.Nickname)
	require.Equal(t, "mina@example.com", u.Email)

	_, err = c.GetProfile(context.Background(), "expired")
	require.Error(t, err)
	require.True(t, IsStatus(err, http.StatusUnauthorized))
	require.Contains(t, err.Error(), "HTTP 401: unauthorized")
}

func TestGetCategories(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/categories", r.URL.Path)
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		writeData(t, w, []prompts.Category{{ID: 1, Name: "Coding"}, {ID: 2, Name: "Writing", Description: "essays"}})
	}))
	defer srv.Close()

	categories, err := New(srv.URL, time.Second).GetCategories(context.Background(), "tok")
	require.NoError(t, err)
	require.Len(t, categories, 2)
	require.Equal(t, "essays", categories[1].Description)
}

func TestGetPrompts_QueryParameters(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/prompts", r.URL.Path)
		require.Equal(t, "page=2&size=20&sort=createdAt%2CDESC&keyword=cat&categoryId=5", r.URL.RawQuery)
		q := r.URL.Query()
		require.Equal(t, "createdAt,DESC", q.Get("sort"))

		writeData(t, w, map[string]any{
			"content": []map[string]any{
				{"id": 1, "title": "Cat facts", "categoryName": "Fun", "authorNickname": "mina", "viewsCount": 1500, "likesCount": 3},
			},
			"pagination": map[string]any{"currentPage": 2, "totalPages": 4, "totalCount": 61},
			"size":       20,
		})
	}))
	defer srv.Close()

	page, err := New(srv.URL, time.Second).GetPrompts(context.Background(), "tok", prompts.Query{
		Page:       2,
		Keyword:    "cat",
		CategoryID: utils.Ptr(int64(5)),
	})
	require.NoError(t, err)
	require.Len(t, page.Content, 1)
	require.Equal(t, "Cat facts", page.Content[0].Title)
	require.Equal(t, int64(1500), page.Content[0].ViewsCount)
	require.Equal(t, 2, page.Pagination.CurrentPage)
	require.Equal(t, 4, page.Pagination.TotalPages)
	require.Equal(t, int64(61), page.Pagination.TotalCount)
	require.Equal(t, 20, page.Size)
}

func TestGetPrompt(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/prompts/42" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		writeData(t, w, prompts.Prompt{ID: 42, Title: "Answer", Content: "Think step by step", Tags: []string{"logic"}})
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	p, err := c.GetPrompt(context.Background(), "tok", 42)
	require.NoError(t, err)
	require.Equal(t, "Think step by step", p.Content)
	require.Equal(t, []string{"logic"}, p.Tags)

	_, err = c.GetPrompt(context.Background(), "tok", 43)
	require.True(t, IsStatus(err, http.StatusNotFound))
}

func TestCreatePrompt(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/v1/prompts", r.URL.Path)
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		var req prompts.CreateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, int64(3), req.CategoryID)

		w.WriteHeader(http.StatusCreated)
		writeData(t, w, prompts.Prompt{ID: 9, Title: req.Title, Tags: req.Tags})
	}))
	defer srv.Close()

	created, err := New(srv.URL, time.Second).CreatePrompt(context.Background(), "tok", prompts.CreateRequest{
		Title:      "New",
		Content:    "Body",
		CategoryID: 3,
		Tags:       []string{"x"},
	})
	require.NoError(t, err)
	require.Equal(t, int64(9), created.ID)
	require.Equal(t, []string{"x"}, created.Tags)
}

func TestDoRequest_MissingEnvelope(t *testing.T) {
	for name, body := range map[string]string{
		"no envelope": `{"id": 1}`,
		"null data":   `{"data": null}`,
	} {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(body))
			}))
			defer srv.Close()
			client := New(srv.URL, time.Second)

			user, err := client.GetProfile(context.Background(), "tok")
			require.Error(t, err)
			require.Contains(t, err.Error(), "missing data")
			require.Nil(t, user)

			tokens, err := client.Login(context.Background(), "google", "code")
			require.Error(t, err)
			require.Contains(t, err.Error(), "missing data")
			require.Nil(t, tokens)
		})
	}
}

func TestDoRequest_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := New(url, time.Second).GetProfile(context.Background(), "tok")
	require.Error(t, err)
	require.Contains(t, err.Error(), "do request")
}
