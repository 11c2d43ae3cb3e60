package user

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// StatusError is returned when the store answers with a non-2xx status.
type StatusError struct {
	Method string
	URL    string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s returned %d: %s", e.Method, e.URL, e.Code, e.Body)
}

// Client talks to the remote record store. The List/Get/Create/Update/Delete
// methods never fail: a transport or HTTP error is logged and replaced by an
// empty slice or nil. The Fetch*/…Record variants return the error instead.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient builds a client for baseURL, the collection endpoint
// (e.g. https://host/api/v1/users). A zero timeout means requests never time out.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     slog.Default(),
	}
}

// WithLogger replaces the logger used for swallowed failures.
func (c *Client) WithLogger(logger *slog.Logger) *Client {
	c.logger = logger
	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) List(ctx context.Context) []User {
	users, err := c.Fetch(ctx)
	if err != nil {
		c.logger.ErrorContext(ctx, "error fetching users", "op", "list", "error", err)
		return []User{}
	}
	return users
}

func (c *Client) Get(ctx context.Context, id string) *User {
	u, err := c.FetchOne(ctx, id)
	if err != nil {
		c.logger.ErrorContext(ctx, "error fetching user", "op", "get", "id", id, "error", err)
		return nil
	}
	return u
}

func (c *Client) Create(ctx context.Context, draft Draft) *User {
	u, err := c.CreateRecord(ctx, draft)
	if err != nil {
		c.logger.ErrorContext(ctx, "error creating user", "op", "create", "error", err)
		return nil
	}
	return u
}

func (c *Client) Update(ctx context.Context, id string, draft Draft) *User {
	u, err := c.UpdateRecord(ctx, id, draft)
	if err != nil {
		c.logger.ErrorContext(ctx, "error updating user", "op", "update", "id", id, "error", err)
		return nil
	}
	return u
}

func (c *Client) Delete(ctx context.Context, id string) any {
	body, err := c.DeleteRecord(ctx, id)
	if err != nil {
		c.logger.ErrorContext(ctx, "error deleting user", "op", "delete", "id", id, "error", err)
		return nil
	}
	return body
}

// Fetch returns the whole collection.
func (c *Client) Fetch(ctx context.Context) ([]User, error) {
	users := []User{}
	if err := c.do(ctx, http.MethodGet, c.baseURL, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) FetchOne(ctx context.Context, id string) (*User, error) {
	var u User
	if err := c.do(ctx, http.MethodGet, c.recordURL(id), nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) CreateRecord(ctx context.Context, draft Draft) (*User, error) {
	var u User
	if err := c.do(ctx, http.MethodPost, c.baseURL, draft, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateRecord sends the entire draft, never a diff.
func (c *Client) UpdateRecord(ctx context.Context, id string, draft Draft) (*User, error) {
	var u User
	if err := c.do(ctx, http.MethodPut, c.recordURL(id), draft, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) DeleteRecord(ctx context.Context, id string) (any, error) {
	var body any
	if err := c.do(ctx, http.MethodDelete, c.recordURL(id), nil, &body); err != nil {
		return nil, err
	}
	return body, nil
}

func (c *Client) recordURL(id string) string {
	return c.baseURL + "/" + url.PathEscape(id)
}

func (c *Client) do(ctx context.Context, method, target string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode %s body: %w", method, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("build %s request: %w", method, err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, target, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s response: %w", method, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Method: method, URL: target, Code: resp.StatusCode, Body: string(data)}
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s response: %w", method, err)
	}
	return nil
}
