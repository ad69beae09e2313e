package trends

import (
	"errors"
	"fmt"
	"strings"
)

// FetchError wraps a failed fetch for one region. StatusCode is 0 when the
// failure happened below HTTP (dial, timeout, bad payload).
type FetchError struct {
	Geo        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	label := e.Geo
	if label == "" {
		label = WorldwideCode
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("trends fetch %s: HTTP %d: %v", label, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("trends fetch %s: %v", label, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// RateLimited reports whether the error is the service throttling us.
// The structured status code wins; the substring check only covers
// transport-level errors that never produced a status.
func (e *FetchError) RateLimited() bool {
	if e.StatusCode == 429 {
		return true
	}
	if e.StatusCode != 0 {
		return false
	}
	return containsRateLimitHint(e.Err)
}

// IsRateLimited classifies any error from the fetch path.
func IsRateLimited(err error) bool {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.RateLimited()
	}
	return containsRateLimitHint(err)
}

func containsRateLimitHint(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "429") ||
		strings.Contains(strings.ToLower(msg), "too many requests")
}
