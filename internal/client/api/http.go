package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/englishhq/internal/client/models"
	"github.com/dmitrijs2005/englishhq/internal/common"
)

const (
	contentTypeJSON = "application/json"
	contentTypeForm = "application/x-www-form-urlencoded"
)

// HTTPClient talks to the English High Q REST API. All endpoints live under
// {baseURL}/api. A zero timeout means requests have no deadline beyond the
// caller's context.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// UseTokens wires the bearer credential source. Set once during app wiring;
// the session store cannot be passed to the constructor because it itself
// needs the API client.
func (c *HTTPClient) UseTokens(ts TokenSource) {
	c.tokens = ts
}

// do performs one request. Transport failures come back as errors wrapping
// ErrNetwork; any HTTP response, 2xx or not, is returned as (status, body, nil)
// for the typed methods to interpret.
func (c *HTTPClient) do(ctx context.Context, method, path string, body []byte, contentType string, auth bool) (int, []byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/api"+path, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("building request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if auth && c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", common.BearerPrefix+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: reading response: %v", ErrNetwork, err)
	}
	return resp.StatusCode, data, nil
}

// decode interprets a (status, body) pair: 2xx responses are unmarshalled
// into out (when non-nil), everything else becomes an *APIError carrying the
// detail field.
func decode(status int, body []byte, out any) error {
	if status < 200 || status > 299 {
		return apiError(status, body)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func apiError(status int, body []byte) *APIError {
	var payload struct {
		Detail string `json:"detail"`
	}
	// A body without a (string) detail yields an empty Detail, which callers
	// replace with a generic message.
	_ = json.Unmarshal(body, &payload)
	return &APIError{Status: status, Detail: payload.Detail}
}

func (c *HTTPClient) Login(ctx context.Context, username, password string) (string, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	status, body, err := c.do(ctx, http.MethodPost, "/users/token", []byte(form.Encode()), contentTypeForm, false)
	if err != nil {
		return "", err
	}

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	if err := decode(status, body, &resp); err != nil {
		return "", err
	}
	return resp.AccessToken, nil
}

func (c *HTTPClient) Register(ctx context.Context, username, email, password string) error {
	payload, err := json.Marshal(map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	})
	if err != nil {
		return err
	}

	status, body, err := c.do(ctx, http.MethodPost, "/users/register", payload, contentTypeJSON, false)
	if err != nil {
		return err
	}
	return decode(status, body, nil)
}

func (c *HTTPClient) Me(ctx context.Context) (*models.UserProfile, error) {
	status, body, err := c.do(ctx, http.MethodGet, "/users/me", nil, "", true)
	if err != nil {
		return nil, err
	}

	profile := &models.UserProfile{}
	if err := decode(status, body, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (c *HTTPClient) Recharge(ctx context.Context, amount float64, description string) (float64, error) {
	req := struct {
		Amount      float64 `json:"amount"`
		Description string  `json:"description,omitempty"`
	}{Amount: amount, Description: description}

	payload, err := json.Marshal(req)
	if err != nil {
		return 0, err
	}

	status, body, err := c.do(ctx, http.MethodPost, "/users/recharge", payload, contentTypeJSON, true)
	if err != nil {
		return 0, err
	}

	var resp struct {
		Balance float64 `json:"balance"`
	}
	if err := decode(status, body, &resp); err != nil {
		return 0, err
	}
	return resp.Balance, nil
}

func (c *HTTPClient) Ask(ctx context.Context, question string) (*models.QuestionAnswer, error) {
	payload, err := json.Marshal(map[string]string{"question": question})
	if err != nil {
		return nil, err
	}

	status, body, err := c.do(ctx, http.MethodPost, "/questions/ask", payload, contentTypeJSON, true)
	if err != nil {
		return nil, err
	}

	answer := &models.QuestionAnswer{}
	if err := decode(status, body, answer); err != nil {
		return nil, err
	}
	return answer, nil
}

func (c *HTTPClient) History(ctx context.Context) ([]models.HistoryEntry, error) {
	status, body, err := c.do(ctx, http.MethodGet, "/questions/history", nil, "", true)
	if err != nil {
		return nil, err
	}

	var entries []models.HistoryEntry
	if err := decode(status, body, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
