// Package chapa is a minimal client for the Chapa transaction API.
package chapa

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

	"github.com/baharkarakas/staybook/internal/metrics"
)

const DefaultBaseURL = "https://api.chapa.co"

const (
	initializePath = "/v1/transaction/initialize"
	verifyPath     = "/v1/transaction/verify/"
)

// InitializeRequest is the body of POST /v1/transaction/initialize.
// Amount is a decimal string such as "450.00".
type InitializeRequest struct {
	Amount      string `json:"amount"`
	Currency    string `json:"currency"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	TxRef       string `json:"tx_ref"`
	CallbackURL string `json:"callback_url"`
}

// Payload is a decoded gateway response kept in its raw shape.
type Payload map[string]any

type Client struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
}

func NewClient(baseURL, secretKey string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		secretKey: secretKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Initialize starts a hosted checkout. Any response that decodes as JSON is
// returned as-is, whatever the HTTP status; transport and decode failures
// are returned as errors.
func (c *Client) Initialize(ctx context.Context, in InitializeRequest) (Payload, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("marshal initialize request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+initializePath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.do(req, "initialize")
}

// Verify fetches the gateway's view of txRef.
func (c *Client) Verify(ctx context.Context, txRef string) (Payload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+verifyPath+url.PathEscape(txRef), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.do(req, "verify")
}

func (c *Client) do(req *http.Request, op string) (Payload, error) {
	start := time.Now()
	outcome := "error"
	defer func() {
		metrics.GatewayDuration.WithLabelValues(op, outcome).Observe(time.Since(start).Seconds())
	}()

	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("chapa %s request failed: %w", op, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("chapa %s read body: %w", op, err)
	}
	var out Payload
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("chapa %s decode response (status %d): %w", op, resp.StatusCode, err)
	}
	if out == nil {
		out = Payload{}
	}
	outcome = statusClass(resp.StatusCode)
	return out, nil
}

func statusClass(code int) string {
	switch {
	case code >= 500:
		return "5xx"
	case code >= 400:
		return "4xx"
	default:
		return "2xx"
	}
}

func (p Payload) data() map[string]any {
	d, _ := p["data"].(map[string]any)
	return d
}

func (p Payload) str(key string) string {
	s, _ := p.data()[key].(string)
	return s
}

// CheckoutURL returns data.checkout_url, or nil when the gateway sent none.
func (p Payload) CheckoutURL() *string {
	if s := p.str("checkout_url"); s != "" {
		return &s
	}
	return nil
}

// Status returns data.status or "" when missing.
func (p Payload) Status() string { return p.str("status") }

// Reference returns the gateway's own transaction reference, if any.
func (p Payload) Reference() *string {
	if s := p.str("reference"); s != "" {
		return &s
	}
	return nil
}
