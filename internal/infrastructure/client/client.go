package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sangkips/pos-register/internal/domain/gateway"
	"github.com/sangkips/pos-register/internal/infrastructure/metrics"
	"go.uber.org/zap"
)

// Config points the client at the retail backend.
type Config struct {
	BaseURL string
	Timeout time.Duration
	// Token is used when the request context carries no caller token.
	Token string
}

// Client talks to the retail backend REST API. Every response is wrapped in
// a {code, message, data} envelope.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	logger     *zap.Logger
	metrics    *metrics.Recorder
}

func New(cfg Config, logger *zap.Logger, rec *metrics.Recorder) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		token:      cfg.Token,
		logger:     logger,
		metrics:    rec,
	}
}

var (
	_ gateway.StockReservationGateway = (*Client)(nil)
	_ gateway.InvoiceGateway          = (*Client)(nil)
	_ gateway.CatalogGateway          = (*Client)(nil)
	_ gateway.CustomerGateway         = (*Client)(nil)
)

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// StatusError is a non-2xx answer from the backend.
type StatusError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend %s returned status %d: %s", e.Endpoint, e.StatusCode, e.Body)
}

type tokenKey struct{}

// WithAuthToken forwards the caller's bearer token to the backend.
func WithAuthToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// AuthToken returns the caller token carried by ctx.
func AuthToken(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenKey{}).(string)
	return token, ok && token != ""
}

func (c *Client) authorization(ctx context.Context) string {
	if token, ok := AuthToken(ctx); ok {
		return "Bearer " + token
	}
	if c.token != "" {
		return "Bearer " + c.token
	}
	return ""
}

// call performs one request. name is the endpoint template used for logs and metrics;
// path is the concrete path relative to the base URL.
func (c *Client) call(ctx context.Context, method, name, path string, body interface{}) (*envelope, error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("error marshalling %s request: %w", name, err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/"+path, reader)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth := c.authorization(ctx); auth != "" {
		req.Header.Set("Authorization", auth)
	}

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.BackendCall(name, started)
	if err != nil {
		c.logger.Warn("backend call failed", zap.String("endpoint", name), zap.Error(err))
		return nil, fmt.Errorf("error calling %s: %w", name, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading %s response: %w", name, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("backend returned error status",
			zap.String("endpoint", name),
			zap.Int("status", resp.StatusCode),
		)
		return nil, &StatusError{Endpoint: name, StatusCode: resp.StatusCode, Body: string(raw)}
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("error unmarshalling %s response: %w", name, err)
	}
	return &env, nil
}

func decodeData(name string, env *envelope, out interface{}) error {
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("error unmarshalling %s data: %w", name, err)
	}
	return nil
}
