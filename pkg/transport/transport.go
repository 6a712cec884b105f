// Package transport provides the shared HTTP JSON transport used by the
// Advanced Trade API client. It owns base-URL resolution, request signing,
// rate limiting, and circuit breaking so the service clients stay free of
// HTTP plumbing.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/JSPierceColorado/coinbase-seller/pkg/auth"
)

// Doer is the minimal HTTP execution interface, satisfied by *http.Client.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// StatusError reports a non-2xx API response.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status %d", e.Status)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.Status, e.Body)
}

// Client performs JSON requests against a single base URL.
type Client struct {
	doer      Doer
	baseURL   string
	userAgent string
	signer    auth.Signer
	limiter   *rate.Limiter
	breaker   *gobreaker.CircuitBreaker[*http.Response]
}

// NewClient creates a transport client. A nil doer falls back to
// http.DefaultClient.
func NewClient(doer Doer, baseURL string) *Client {
	if doer == nil {
		doer = http.DefaultClient
	}
	return &Client{
		doer:    doer,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// SetUserAgent sets the User-Agent header sent with every request.
func (c *Client) SetUserAgent(ua string) {
	c.userAgent = ua
}

// SetSigner attaches a request signer applied to every outgoing request.
func (c *Client) SetSigner(s auth.Signer) {
	c.signer = s
}

// SetLimiter attaches a client-side rate limiter awaited before every request.
func (c *Client) SetLimiter(l *rate.Limiter) {
	c.limiter = l
}

// SetBreaker attaches a circuit breaker wrapped around request execution.
func (c *Client) SetBreaker(b *gobreaker.CircuitBreaker[*http.Response]) {
	c.breaker = b
}

// Get performs a GET request and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// Post performs a POST request with a JSON body and decodes the response into out.
func (c *Client) Post(ctx context.Context, path string, body any, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
	}
	return c.do(ctx, http.MethodPost, path, nil, payload, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload []byte, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limit wait: %w", err)
		}
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if c.signer != nil {
		if err := c.signer.Sign(req, payload); err != nil {
			return fmt.Errorf("sign request: %w", err)
		}
	}

	resp, err := c.execute(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{Status: resp.StatusCode, Body: strings.TrimSpace(string(snippet))}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) execute(req *http.Request) (*http.Response, error) {
	if c.breaker == nil {
		return c.doer.Do(req)
	}
	return c.breaker.Execute(func() (*http.Response, error) {
		return c.doer.Do(req)
	})
}
