package advtradeerrors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/JSPierceColorado/coinbase-seller/pkg/advtrade/advtypes"
	"github.com/JSPierceColorado/coinbase-seller/pkg/transport"
)

var (
	ErrUnauthorized      = errors.New("unauthorized")
	ErrBadRequest        = errors.New("bad request")
	ErrNotFound          = errors.New("not found")
	ErrRateLimitExceeded = errors.New("rate limit exceeded")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInternalServer    = errors.New("internal server error")
	ErrOrderRejected     = errors.New("order rejected")
)

// FromStatus maps a transport status error to a sentinel where one applies.
func FromStatus(err error) error {
	var status *transport.StatusError
	if !errors.As(err, &status) {
		return err
	}
	switch status.Status {
	case 400:
		return fmt.Errorf("%w: %s", ErrBadRequest, status.Body)
	case 401, 403:
		return fmt.Errorf("%w: %s", ErrUnauthorized, status.Body)
	case 404:
		return fmt.Errorf("%w: %s", ErrNotFound, status.Body)
	case 429:
		return ErrRateLimitExceeded
	case 500, 502, 503, 504:
		return fmt.Errorf("%w: %s", ErrInternalServer, status.Body)
	}
	return err
}

// FromOrderFailure maps an order submission failure envelope to an error.
func FromOrderFailure(f *advtypes.OrderFailure) error {
	if f == nil {
		return fmt.Errorf("%w: no failure detail", ErrOrderRejected)
	}
	reason := f.NewOrderFailureReason
	if reason == "" {
		reason = f.PreviewFailureReason
	}
	if reason == "" {
		reason = f.Error
	}
	if strings.Contains(strings.ToUpper(reason), "INSUFFICIENT_FUND") {
		return fmt.Errorf("%w: %s", ErrInsufficientFunds, f.Message)
	}
	if f.Message != "" {
		return fmt.Errorf("%w: %s: %s", ErrOrderRejected, reason, f.Message)
	}
	return fmt.Errorf("%w: %s", ErrOrderRejected, reason)
}
