// Package apiclient talks to the hosted InventTrack API. Every call returns
// a Result and never an error: failures are reported in Result.Error.
package apiclient

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

	"inventtrack/m/domain"
)

const (
	EndpointProducts  = "/api/products"
	EndpointPurchases = "/api/purchases"
	EndpointSales     = "/api/sales"
	EndpointCustomers = "/api/customers"
	EndpointSuppliers = "/api/suppliers"
	EndpointReports   = "/api/reports"
	EndpointDashboard = "/api/dashboard"
)

const networkError = "Network error"

type Result[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Client wraps interactions with the remote API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the request timeout on a copy of the current client so a
// client passed to WithHTTPClient is left untouched.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		hc := *c.httpClient
		hc.Timeout = d
		c.httpClient = &hc
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

func New(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Products() *Products   { return &Products{c: c} }
func (c *Client) Purchases() *Purchases { return &Purchases{c: c} }
func (c *Client) Sales() *Sales         { return &Sales{c: c} }

// CreateAPIURL joins base and endpoint and appends params as a query string.
// Nil and empty-string values are dropped.
func CreateAPIURL(base, endpoint string, params map[string]any) string {
	u := strings.TrimRight(base, "/") + endpoint
	values := url.Values{}
	for key, value := range params {
		if value == nil {
			continue
		}
		s := fmt.Sprint(value)
		if s == "" {
			continue
		}
		values.Set(key, s)
	}
	if len(values) == 0 {
		return u
	}
	sep := "?"
	if strings.Contains(u, "?") {
		sep = "&"
	}
	return u + sep + values.Encode()
}

// Do sends one JSON request. A nil body sends no payload.
func Do[T any](ctx context.Context, c *Client, method, endpoint string, body any) Result[T] {
	requestID := uuid.NewString()
	logger := c.logger.With(
		slog.String("method", method),
		slog.String("endpoint", endpoint),
		slog.String("request_id", requestID),
	)

	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return failure[T](err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, payload)
	if err != nil {
		return failure[T](err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Warn("api request failed", slog.Any("error", err))
		return failure[T](err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return failure[T](err)
	}
	logger.Debug("api request done", slog.Int("status", resp.StatusCode), slog.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Result[T]{Error: errorMessage(raw, resp.StatusCode)}
	}

	var data T
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &data); err != nil {
			return failure[T](err)
		}
	}
	return Result[T]{Success: true, Data: data}
}

func Get[T any](ctx context.Context, c *Client, endpoint string) Result[T] {
	return Do[T](ctx, c, http.MethodGet, endpoint, nil)
}

func Post[T any](ctx context.Context, c *Client, endpoint string, body any) Result[T] {
	return Do[T](ctx, c, http.MethodPost, endpoint, body)
}

func Put[T any](ctx context.Context, c *Client, endpoint string, body any) Result[T] {
	return Do[T](ctx, c, http.MethodPut, endpoint, body)
}

func Patch[T any](ctx context.Context, c *Client, endpoint string, body any) Result[T] {
	return Do[T](ctx, c, http.MethodPatch, endpoint, body)
}

func Delete[T any](ctx context.Context, c *Client, endpoint string) Result[T] {
	return Do[T](ctx, c, http.MethodDelete, endpoint, nil)
}

// GetPaginated requests one page of a list endpoint.
func GetPaginated[T any](ctx context.Context, c *Client, endpoint string, page, limit int) Result[domain.PaginatedResponse[T]] {
	return Get[domain.PaginatedResponse[T]](ctx, c, CreateAPIURL("", endpoint, map[string]any{"page": page, "limit": limit}))
}

func errorMessage(raw []byte, status int) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}
	return fmt.Sprintf("HTTP %d", status)
}

func failure[T any](err error) Result[T] {
	msg := networkError
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}
	return Result[T]{Error: msg}
}
