package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
)

// Client talks to the companion REST endpoints of the lobby server:
// identity lookup, room creation, and the redirect-based login session.
// Requests carry the http client's cookie jar so the server session
// survives across calls.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	middlewares []Middleware
}

func defaultOptions() []Option {
	defaults := []Option{
		WithBaseURL("http://localhost:8080"),
	}
	if v, ok := os.LookupEnv("LOBBY_SERVER_URL"); ok && v != "" {
		defaults = append(defaults, WithBaseURL(v))
	}
	return defaults
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: http.DefaultClient,
	}
	for _, opt := range append(defaultOptions(), opts...) {
		opt(c)
	}
	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// LoginURL is where an unauthenticated user gets redirected.
func (c *Client) LoginURL() string {
	return c.baseURL + "/login"
}

func (c *Client) LogoutURL() string {
	return c.baseURL + "/logout"
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.execute(ctx, http.MethodGet, path, out)
}

func (c *Client) post(ctx context.Context, path string, out any) error {
	return c.execute(ctx, http.MethodPost, path, out)
}

func (c *Client) execute(ctx context.Context, method, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.roundTrip(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusUnauthorized {
		return ErrUnauthenticated
	}
	if res.StatusCode >= 400 {
		return &Error{StatusCode: res.StatusCode, Message: readErrorMessage(res.Body)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) roundTrip(req *http.Request) (*http.Response, error) {
	next := c.httpClient.Do
	for i := len(c.middlewares) - 1; i >= 0; i-- {
		mw, inner := c.middlewares[i], next
		next = func(r *http.Request) (*http.Response, error) {
			return mw(r, inner)
		}
	}
	return next(req)
}

func readErrorMessage(body io.Reader) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.Error
}
