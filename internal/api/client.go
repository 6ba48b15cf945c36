package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TokenSource supplies the bearer credential attached to every request.
// Implemented by *session.Store; a nil or empty token leaves the request
// unauthenticated.
type TokenSource interface {
	Token() (string, bool)
}

// Backend defines the API surface the console consumes. It is implemented
// by *Client and can be stubbed in tests.
type Backend interface {
	Login(ctx context.Context, email, password string) (string, error)
	ListOrders(ctx context.Context, params ListParams) ([]Order, PageMeta, error)
	UpdateOrderStatus(ctx context.Context, id, status string) (*Order, error)
	ListUsers(ctx context.Context, params ListParams) ([]User, PageMeta, error)
	UpdateUser(ctx context.Context, id string, change UserChange) (*User, error)
	DeleteUser(ctx context.Context, id string) error
	ListProducts(ctx context.Context, params ListParams) ([]Product, PageMeta, error)
	UpdateProduct(ctx context.Context, id string, change ProductChange) (*Product, error)
	DeleteProduct(ctx context.Context, id string) error
	ListReports(ctx context.Context) ([]LogEntry, error)
	OrderStatistics(ctx context.Context) (*Statistics, error)
}

// Ensure Client implements Backend at compile time.
var _ Backend = (*Client)(nil)

// UserChange carries the editable user fields for an update.
type UserChange struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// ProductChange carries the editable product fields for an update.
type ProductChange struct {
	Price float64 `json:"price"`
	Stock int     `json:"stock"`
}

// Client talks to the storeops backend HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	tokens    TokenSource
	userAgent string
}

const (
	defaultUserAgent      = "storeops/0.1"
	defaultRequestTimeout = 10 * time.Second
)

// NewClient builds a Client for the given base URL. A zero timeout falls
// back to the default.
func NewClient(rawURL string, tokens TokenSource, timeout time.Duration) (*Client, error) {
	base, err := parseBaseURL(rawURL)
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: timeout,
		},
		tokens:    tokens,
		userAgent: defaultUserAgent,
	}, nil
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	if c == nil {
		return "", fmt.Errorf("client is nil")
	}
	body := map[string]string{"email": email, "password": password}
	var payload envelope[loginData]
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &payload); err != nil {
		return "", err
	}
	if payload.Data.Token == "" {
		return "", &Error{Kind: KindServerRejected, Message: "login response missing token"}
	}
	return payload.Data.Token, nil
}

// ListOrders retrieves the orders collection.
func (c *Client) ListOrders(ctx context.Context, params ListParams) ([]Order, PageMeta, error) {
	return listCollection[Order](ctx, c, "/orders", params)
}

// UpdateOrderStatus changes a single order's status. The returned record is
// nil when the backend acknowledges without echoing the order back.
func (c *Client) UpdateOrderStatus(ctx context.Context, id, status string) (*Order, error) {
	return updateRecord[Order](ctx, c, "/orders/"+url.PathEscape(id)+"/status", map[string]string{"status": status})
}

// ListUsers retrieves the users collection.
func (c *Client) ListUsers(ctx context.Context, params ListParams) ([]User, PageMeta, error) {
	return listCollection[User](ctx, c, "/users", params)
}

// UpdateUser edits a user record.
func (c *Client) UpdateUser(ctx context.Context, id string, change UserChange) (*User, error) {
	return updateRecord[User](ctx, c, "/users/"+url.PathEscape(id), change)
}

// DeleteUser removes a user record.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.deleteRecord(ctx, "/users/"+url.PathEscape(id))
}

// ListProducts retrieves the products collection.
func (c *Client) ListProducts(ctx context.Context, params ListParams) ([]Product, PageMeta, error) {
	return listCollection[Product](ctx, c, "/products", params)
}

// UpdateProduct edits a product record.
func (c *Client) UpdateProduct(ctx context.Context, id string, change ProductChange) (*Product, error) {
	return updateRecord[Product](ctx, c, "/products/"+url.PathEscape(id), change)
}

// DeleteProduct removes a product record.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.deleteRecord(ctx, "/products/"+url.PathEscape(id))
}

// ListReports retrieves the audit log. The endpoint returns a flat data
// array with no pagination block.
func (c *Client) ListReports(ctx context.Context) ([]LogEntry, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload struct {
		Data []LogEntry `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/reports", nil, &payload); err != nil {
		return nil, err
	}
	return payload.Data, nil
}

// OrderStatistics retrieves aggregate order counts for the dashboard.
func (c *Client) OrderStatistics(ctx context.Context) (*Statistics, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload envelope[Statistics]
	if err := c.do(ctx, http.MethodGet, "/orders/statistics", nil, &payload); err != nil {
		return nil, err
	}
	stats := payload.Data
	return &stats, nil
}

func listCollection[T any](ctx context.Context, c *Client, path string, params ListParams) ([]T, PageMeta, error) {
	if c == nil {
		return nil, PageMeta{}, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	if params.Page > 0 {
		values.Set("page", strconv.Itoa(params.Page))
	}
	if params.PerPage > 0 {
		values.Set("per_page", strconv.Itoa(params.PerPage))
	}
	if search := strings.TrimSpace(params.Search); search != "" {
		values.Set("search", search)
	}
	if status := strings.TrimSpace(params.Status); status != "" && status != "all" {
		values.Set("status", status)
	}
	rel := &url.URL{Path: path, RawQuery: values.Encode()}
	var payload envelope[pageData[T]]
	if err := c.doURL(ctx, http.MethodGet, rel, nil, &payload); err != nil {
		return nil, PageMeta{}, err
	}
	return payload.Data.Items, payload.Data.PageMeta, nil
}

func updateRecord[T any](ctx context.Context, c *Client, path string, body any) (*T, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload envelope[*T]
	if err := c.do(ctx, http.MethodPut, path, body, &payload); err != nil {
		return nil, err
	}
	return payload.Data, nil
}

func (c *Client) deleteRecord(ctx context.Context, path string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, dest any) error {
	rel := &url.URL{Path: path}
	return c.doURL(ctx, method, rel, body, dest)
}

func (c *Client) doURL(ctx context.Context, method string, rel *url.URL, body, dest any) error {
	// The base URL carries a path prefix (/api/v1), so merge paths instead
	// of resolving: an absolute reference would discard the prefix.
	reqURL := *c.baseURL
	reqURL.Path = strings.TrimRight(c.baseURL.Path, "/") + rel.Path
	reqURL.RawQuery = rel.RawQuery

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method == http.MethodPut || method == http.MethodPost || method == http.MethodDelete {
		// Mutations carry a fresh idempotency key so a server-side retry
		// guard can drop duplicates.
		req.Header.Set("Idempotency-Key", uuid.NewString())
	}
	if c.tokens != nil {
		if token, ok := c.tokens.Token(); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return classifyTransportError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return classifyStatusError(resp.StatusCode, resp.Body)
	}
	if dest == nil {
		return drainSuccess(resp.Body)
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if env, ok := dest.(successChecker); ok && !env.ok() {
		return &Error{Kind: KindServerRejected, StatusCode: resp.StatusCode, Message: env.message()}
	}
	return nil
}

// successChecker lets doURL reject 2xx responses whose envelope reports
// success=false.
type successChecker interface {
	ok() bool
	message() string
}

func (e envelope[T]) ok() bool        { return e.Success }
func (e envelope[T]) message() string { return e.Message }

// drainSuccess consumes a body-less response path: the caller wants no
// payload but a success=false envelope must still surface as an error.
func drainSuccess(body io.Reader) error {
	var env envelope[json.RawMessage]
	if err := json.NewDecoder(body).Decode(&env); err != nil {
		// Some endpoints answer with an empty body on success.
		return nil
	}
	if !env.Success {
		return &Error{Kind: KindServerRejected, Message: env.Message}
	}
	return nil
}

func classifyTransportError(err error) error {
	kind := KindNetwork
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		kind = KindTimeout
	}
	if errors.Is(err, context.DeadlineExceeded) {
		kind = KindTimeout
	}
	return &Error{Kind: kind, cause: err}
}

func classifyStatusError(status int, body io.Reader) error {
	message := ""
	var env envelope[json.RawMessage]
	if err := json.NewDecoder(body).Decode(&env); err == nil {
		message = env.Message
	}
	switch {
	case status == http.StatusUnauthorized:
		return &Error{Kind: KindUnauthorized, StatusCode: status}
	case status == http.StatusNotFound:
		return &Error{Kind: KindNotFound, StatusCode: status, Message: message}
	default:
		return &Error{Kind: KindServerRejected, StatusCode: status, Message: message}
	}
}

func parseBaseURL(rawURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return nil, fmt.Errorf("api url is empty")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api url %q: %w", rawURL, err)
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
