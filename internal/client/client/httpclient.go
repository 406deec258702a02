package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/nutritrack/internal/client/models"
	"github.com/dmitrijs2005/nutritrack/internal/logging"
	"github.com/google/uuid"
)

// RequestIDHeader correlates client log lines with backend logs.
const RequestIDHeader = "X-Request-ID"

// maxErrorBody caps how much of an error response is read.
const maxErrorBody = 64 << 10

type HTTPClient struct {
	baseURL *url.URL
	http    *http.Client
	tokens  TokenSource
	logger  logging.Logger
}

// NewHTTPClient returns a client for the API rooted at baseURL, e.g.
// "http://localhost:5000/api". Timeouts are left to the caller's context.
func NewHTTPClient(baseURL string, tokens TokenSource, logger logging.Logger) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid api url %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid api url %q: scheme must be http or https", baseURL)
	}
	return &HTTPClient{
		baseURL: u,
		http:    &http.Client{},
		tokens:  tokens,
		logger:  logger,
	}, nil
}

type request struct {
	method string
	path   string
	query  url.Values
	body   any
	auth   bool
}

func (c *HTTPClient) newRequest(ctx context.Context, r request) (*http.Request, error) {
	path, err := url.PathUnescape(r.path)
	if err != nil {
		return nil, fmt.Errorf("bad request path %q: %w", r.path, err)
	}
	u := *c.baseURL
	u.RawPath = u.EscapedPath() + r.path
	u.Path = u.Path + path
	if len(r.query) > 0 {
		u.RawQuery = r.query.Encode()
	}

	var body io.Reader
	if r.body != nil {
		b, err := json.Marshal(r.body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, u.String(), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set(RequestIDHeader, uuid.NewString())
	req.Header.Set("Accept", "application/json")
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if r.auth {
		token := ""
		if c.tokens != nil {
			token, err = c.tokens.Token(ctx)
			if err != nil {
				return nil, fmt.Errorf("read token: %w", err)
			}
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// do sends the request and returns the raw body of a 2xx answer.
func (c *HTTPClient) do(ctx context.Context, r request) ([]byte, error) {
	req, err := c.newRequest(ctx, r)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn(ctx, "request failed",
			"method", r.method, "path", r.path, "request_id", req.Header.Get(RequestIDHeader), "err", err)
		return nil, mapTransportError(ctx, err)
	}
	defer resp.Body.Close()

	c.logger.Debug(ctx, "request done",
		"method", r.method, "path", r.path, "status", resp.StatusCode,
		"request_id", req.Header.Get(RequestIDHeader), "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &APIError{Status: resp.StatusCode, Message: errorMessage(raw)}
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return b, nil
}

func (c *HTTPClient) doJSON(ctx context.Context, r request, out any) error {
	b, err := c.do(ctx, r)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(b)) == 0 {
		return nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func mapTransportError(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.Canceled) {
		return ctx.Err()
	}
	return fmt.Errorf("%w: %w", ErrUnavailable, err)
}

// errorMessage extracts the human-readable message from an error body. The
// backend uses "mensagem" for domain errors and "message" for framework
// errors; plain-text bodies are used verbatim.
func errorMessage(raw []byte) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}
	var body struct {
		Mensagem string `json:"mensagem"`
		Message  string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		if raw[0] == '{' || raw[0] == '[' || raw[0] == '<' {
			return ""
		}
		return string(raw)
	}
	if body.Mensagem != "" {
		return body.Mensagem
	}
	return body.Message
}

func (c *HTTPClient) Register(ctx context.Context, user models.RegisterUser) error {
	return c.doJSON(ctx, request{method: http.MethodPost, path: "/user/register", body: user}, nil)
}

func (c *HTTPClient) Login(ctx context.Context, creds models.LoginUser) (string, error) {
	var resp struct {
		Token string `json:"token"`
	}
	if err := c.doJSON(ctx, request{method: http.MethodPost, path: "/user/login", body: creds}, &resp); err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", errors.New("login response carries no token")
	}
	return resp.Token, nil
}

func (c *HTTPClient) GetProfile(ctx context.Context) (*models.Profile, error) {
	var p models.Profile
	if err := c.doJSON(ctx, request{method: http.MethodGet, path: "/user/me", auth: true}, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, upd models.ProfileUpdate) error {
	return c.doJSON(ctx, request{method: http.MethodPut, path: "/user/me", body: upd, auth: true}, nil)
}

type mealRequest struct {
	Description string `json:"descricaoRefeicao"`
	Name        string `json:"nomeRefeicao"`
}

func (c *HTTPClient) CreateMeal(ctx context.Context, description, name string) (*models.MealResult, error) {
	var res models.MealResult
	r := request{method: http.MethodPost, path: "/refeicao", body: mealRequest{description, name}, auth: true}
	if err := c.doJSON(ctx, r, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) TodayMeals(ctx context.Context) (*models.TodaySummary, error) {
	var s models.TodaySummary
	if err := c.doJSON(ctx, request{method: http.MethodGet, path: "/refeicao/hoje", auth: true}, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *HTTPClient) ListMeals(ctx context.Context, date string) ([]models.MealRecord, error) {
	r := request{method: http.MethodGet, path: "/refeicao", auth: true}
	if date != "" {
		r.query = url.Values{"data": {date}}
	}
	var meals []models.MealRecord
	if err := c.doJSON(ctx, r, &meals); err != nil {
		return nil, err
	}
	return meals, nil
}

// mealPath addresses one meal. The id is escaped so it stays a single
// path segment.
func mealPath(id string) string {
	return "/refeicao/" + url.PathEscape(id)
}

func (c *HTTPClient) RenameMeal(ctx context.Context, id, name string) (*models.MealResult, error) {
	body := struct {
		Name string `json:"nomeRefeicao"`
	}{name}
	var res models.MealResult
	r := request{method: http.MethodPatch, path: mealPath(id) + "/nome", body: body, auth: true}
	if err := c.doJSON(ctx, r, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) UpdateMeal(ctx context.Context, id, description, name string) (*models.MealResult, error) {
	var res models.MealResult
	r := request{method: http.MethodPut, path: mealPath(id), body: mealRequest{description, name}, auth: true}
	if err := c.doJSON(ctx, r, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) DeleteMeal(ctx context.Context, id string) error {
	return c.doJSON(ctx, request{method: http.MethodDelete, path: mealPath(id), auth: true}, nil)
}

// AskQuestion returns the assistant's answer as plain text.
func (c *HTTPClient) AskQuestion(ctx context.Context, question string) (string, error) {
	r := request{method: http.MethodGet, path: "/ai/connection", query: url.Values{"pergunta": {question}}, auth: true}
	b, err := c.do(ctx, r)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (c *HTTPClient) Converse(ctx context.Context, message string) (*models.AssistantReply, error) {
	body := struct {
		Message string `json:"mensagem"`
	}{message}
	var reply models.AssistantReply
	if err := c.doJSON(ctx, request{method: http.MethodPost, path: "/ChatIa/conversar", body: body, auth: true}, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}
