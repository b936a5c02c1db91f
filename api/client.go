package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/jrsteele09/promptshare/prompts"
	"github.com/jrsteele09/promptshare/users"
)

const maxErrorBody = 1 << 20 // 1 MB

var nullData = []byte("null")

// Tokens is the result of exchanging an authorization code with the backend
type Tokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type loginRequest struct {
	AuthorizationCode string `json:"authorizationCode"`
}

// envelope is the backend's uniform response wrapper
type envelope struct {
	Data json.RawMessage `json:"data"`
}

// Client is the prompt share backend API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new API client.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Login exchanges an authorization code for tokens with the provider specific endpoint.
func (c *Client) Login(ctx context.Context, provider, authorizationCode string) (*Tokens, error) {
	var tokens Tokens
	path := "/api/v1/auth/" + provider + "/login"
	if err := c.post(ctx, path, "", loginRequest{AuthorizationCode: authorizationCode}, &tokens); err != nil {
		return nil, fmt.Errorf("client.Login(%s): %w", provider, err)
	}
	return &tokens, nil
}

// GoogleLogin exchanges a Google authorization code.
func (c *Client) GoogleLogin(ctx context.Context, authorizationCode string) (*Tokens, error) {
	return c.Login(ctx, "google", authorizationCode)
}

// KakaoLogin exchanges a Kakao authorization code.
func (c *Client) KakaoLogin(ctx context.Context, authorizationCode string) (*Tokens, error) {
	return c.Login(ctx, "kakao", authorizationCode)
}

// NaverLogin exchanges a Naver authorization code.
func (c *Client) NaverLogin(ctx context.Context, authorizationCode string) (*Tokens, error) {
	return c.Login(ctx, "naver", authorizationCode)
}

// GetProfile returns the member the token belongs to.
func (c *Client) GetProfile(ctx context.Context, token string) (*users.User, error) {
	var u users.User
	if err := c.get(ctx, "/api/v1/members/me", token, &u); err != nil {
		return nil, fmt.Errorf("client.GetProfile: %w", err)
	}
	return &u, nil
}

// GetCategories lists every prompt category.
func (c *Client) GetCategories(ctx context.Context, token string) ([]prompts.Category, error) {
	var categories []prompts.Category
	if err := c.get(ctx, "/api/v1/categories", token, &categories); err != nil {
		return nil, fmt.Errorf("client.GetCategories: %w", err)
	}
	return categories, nil
}

// GetPrompts fetches one page of prompts.
func (c *Client) GetPrompts(ctx context.Context, token string, q prompts.Query) (*prompts.Page, error) {
	var page prompts.Page
	if err := c.get(ctx, "/api/v1/prompts?"+q.Encode(), token, &page); err != nil {
		return nil, fmt.Errorf("client.GetPrompts: %w", err)
	}
	return &page, nil
}

// GetPrompt fetches a single prompt by ID.
func (c *Client) GetPrompt(ctx context.Context, token string, id int64) (*prompts.Prompt, error) {
	var p prompts.Prompt
	if err := c.get(ctx, "/api/v1/prompts/"+strconv.FormatInt(id, 10), token, &p); err != nil {
		return nil, fmt.Errorf("client.GetPrompt: %w", err)
	}
	return &p, nil
}

// CreatePrompt creates a new prompt.
func (c *Client) CreatePrompt(ctx context.Context, token string, req prompts.CreateRequest) (*prompts.Prompt, error) {
	var created prompts.Prompt
	if err := c.post(ctx, "/api/v1/prompts", token, req, &created); err != nil {
		return nil, fmt.Errorf("client.CreatePrompt: %w", err)
	}
	return &created, nil
}

func (c *Client) get(ctx context.Context, path, token string, out any) error {
	return c.doRequest(ctx, http.MethodGet, path, token, nil, out)
}

func (c *Client) post(ctx context.Context, path, token string, body any, out any) error {
	return c.doRequest(ctx, http.MethodPost, path, token, body, out)
}

// doRequest sends the request and unwraps the {"data": ...} envelope into out.
func (c *Client) doRequest(ctx context.Context, method, path, token string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if readErr != nil {
			return &HTTPError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to read body: %v", readErr)}
		}
		var apiErr struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		if json.Unmarshal(respBody, &apiErr) == nil {
			if apiErr.Message != "" {
				return &HTTPError{StatusCode: resp.StatusCode, Message: apiErr.Message}
			}
			if apiErr.Error != "" {
				return &HTTPError{StatusCode: resp.StatusCode, Message: apiErr.Error}
			}
		}
		return &HTTPError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	if out == nil {
		return nil
	}
	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if len(env.Data) == 0 || bytes.Equal(env.Data, nullData) {
		return fmt.Errorf("decode response: missing data")
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode data: %w", err)
	}
	return nil
}
