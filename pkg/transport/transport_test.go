package transport

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/sony/gobreaker/v2"
)

type recordingDoer struct {
	requests []*http.Request
	bodies   []string
	status   int
	payload  string
	err      error
}

func (d *recordingDoer) Do(req *http.Request) (*http.Response, error) {
	d.requests = append(d.requests, req)
	body := ""
	if req.Body != nil {
		b, _ := io.ReadAll(req.Body)
		body = string(b)
	}
	d.bodies = append(d.bodies, body)
	if d.err != nil {
		return nil, d.err
	}
	status := d.status
	if status == 0 {
		status = http.StatusOK
	}
	payload := d.payload
	if payload == "" {
		payload = "{}"
	}
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(payload)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}, nil
}

type headerSigner struct {
	signed [][]byte
}

func (s *headerSigner) Sign(req *http.Request, body []byte) error {
	s.signed = append(s.signed, body)
	req.Header.Set("CB-ACCESS-SIGN", "test-signature")
	return nil
}

func TestGetBuildsURLAndDecodes(t *testing.T) {
	doer := &recordingDoer{payload: `{"value":"hello"}`}
	c := NewClient(doer, "https://api.example.com/")

	var out struct {
		Value string `json:"value"`
	}
	query := url.Values{"limit": []string{"5"}}
	if err := c.Get(context.Background(), "/v1/things", query, &out); err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if len(doer.requests) != 1 {
		t.Fatalf("expected 1 request, got %d", len(doer.requests))
	}
	req := doer.requests[0]
	if req.URL.String() != "https://api.example.com/v1/things?limit=5" {
		t.Fatalf("unexpected URL: %s", req.URL)
	}
	if req.Header.Get("Accept") != "application/json" {
		t.Fatal("missing Accept header")
	}
	if out.Value != "hello" {
		t.Fatalf("decode failed: %+v", out)
	}
}

func TestPostEncodesBodyAndSetsContentType(t *testing.T) {
	doer := &recordingDoer{}
	c := NewClient(doer, "https://api.example.com")

	body := map[string]string{"side": "SELL"}
	if err := c.Post(context.Background(), "/v1/orders", body, nil); err != nil {
		t.Fatalf("post failed: %v", err)
	}
	req := doer.requests[0]
	if req.Method != http.MethodPost {
		t.Fatalf("unexpected method: %s", req.Method)
	}
	if req.Header.Get("Content-Type") != "application/json" {
		t.Fatal("missing Content-Type header")
	}
	if doer.bodies[0] != `{"side":"SELL"}` {
		t.Fatalf("unexpected body: %s", doer.bodies[0])
	}
}

func TestNonSuccessStatusBecomesStatusError(t *testing.T) {
	doer := &recordingDoer{status: http.StatusTooManyRequests, payload: `{"error":"slow down"}`}
	c := NewClient(doer, "https://api.example.com")

	err := c.Get(context.Background(), "/v1/things", nil, nil)
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if se.Status != http.StatusTooManyRequests {
		t.Fatalf("unexpected status: %d", se.Status)
	}
	if !strings.Contains(se.Body, "slow down") {
		t.Fatalf("body snippet missing: %q", se.Body)
	}
}

func TestUserAgentHeader(t *testing.T) {
	doer := &recordingDoer{}
	c := NewClient(doer, "https://api.example.com")
	c.SetUserAgent("coinbase-seller/1.0")

	if err := c.Get(context.Background(), "/v1/things", nil, nil); err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if ua := doer.requests[0].Header.Get("User-Agent"); ua != "coinbase-seller/1.0" {
		t.Fatalf("unexpected user agent: %q", ua)
	}
}

func TestSignerSeesRawBody(t *testing.T) {
	doer := &recordingDoer{}
	signer := &headerSigner{}
	c := NewClient(doer, "https://api.example.com")
	c.SetSigner(signer)

	if err := c.Post(context.Background(), "/v1/orders", map[string]int{"n": 1}, nil); err != nil {
		t.Fatalf("post failed: %v", err)
	}
	if len(signer.signed) != 1 || string(signer.signed[0]) != `{"n":1}` {
		t.Fatalf("signer did not receive the payload: %v", signer.signed)
	}
	if doer.requests[0].Header.Get("CB-ACCESS-SIGN") == "" {
		t.Fatal("signature header not applied")
	}
}

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	doer := &recordingDoer{err: errors.New("connection refused")}
	c := NewClient(doer, "https://api.example.com")
	c.SetBreaker(gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
		Name: "test",
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 2
		},
	}))

	for i := 0; i < 3; i++ {
		if err := c.Get(context.Background(), "/v1/things", nil, nil); err == nil {
			t.Fatal("expected failure")
		}
	}
	// Third call short-circuits inside the breaker without reaching the doer.
	if len(doer.requests) != 2 {
		t.Fatalf("expected breaker to stop the third request, doer saw %d", len(doer.requests))
	}
}

func TestNilDoerDefaultsAndTrailingSlashTrimmed(t *testing.T) {
	c := NewClient(nil, "https://api.example.com///")
	if c.doer == nil {
		t.Fatal("nil doer must default")
	}
	if c.baseURL != "https://api.example.com" {
		t.Fatalf("base URL not trimmed: %s", c.baseURL)
	}
}
