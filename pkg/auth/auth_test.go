package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"testing"
	"time"
)

func TestHMACSignerHeaders(t *testing.T) {
	s := NewHMACSigner("key-id", "top-secret")
	s.now = func() time.Time { return time.Unix(1700000000, 0) }

	req, err := http.NewRequest(http.MethodPost, "https://api.example.com/api/v3/brokerage/orders", nil)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	body := []byte(`{"product_id":"BTC-USD"}`)
	if err := s.Sign(req, body); err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	if got := req.Header.Get("CB-ACCESS-KEY"); got != "key-id" {
		t.Errorf("unexpected key header: %s", got)
	}
	if got := req.Header.Get("CB-ACCESS-TIMESTAMP"); got != "1700000000" {
		t.Errorf("unexpected timestamp header: %s", got)
	}

	mac := hmac.New(sha256.New, []byte("top-secret"))
	mac.Write([]byte("1700000000POST/api/v3/brokerage/orders"))
	mac.Write(body)
	want := hex.EncodeToString(mac.Sum(nil))
	if got := req.Header.Get("CB-ACCESS-SIGN"); got != want {
		t.Errorf("signature mismatch got=%s want=%s", got, want)
	}
}

func TestHMACSignerRequiresCredentials(t *testing.T) {
	s := NewHMACSigner("", "")
	req, _ := http.NewRequest(http.MethodGet, "https://api.example.com/", nil)
	if err := s.Sign(req, nil); err == nil {
		t.Fatal("expected error for missing credentials")
	}
}
