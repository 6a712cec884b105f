package bot

import (
	"errors"
	"fmt"
)

var (
	// ErrStaleDecision means the fresh re-check at execution time found the
	// gain below threshold; the order is aborted, not retried this cycle.
	ErrStaleDecision = errors.New("stale decision: gain fell below threshold")
	// ErrNothingToSell means the balance rounds to zero at the product's
	// minimum increment.
	ErrNothingToSell = errors.New("balance rounds to zero at product increment")
	// ErrDryRun means execution is disabled by configuration.
	ErrDryRun = errors.New("dry run: order not submitted")
)

// FetchError wraps a transient network or API failure. The affected asset is
// skipped for the current cycle; the cycle itself continues.
type FetchError struct {
	Op  string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
