package backend

import (
	"errors"
	"fmt"
)

// Failure classes for backend operations. Callers discriminate with
// errors.Is; everything else carried in the chain is context only.
var (
	// ErrTransient marks connection, timeout and 5xx-class failures that
	// are safe to retry.
	ErrTransient = errors.New("transient backend error")

	// ErrAuthExpired marks a 401/403 answer; the session must be cleared
	// and re-acquired before the operation is tried again.
	ErrAuthExpired = errors.New("authorization expired")

	// ErrNotFound marks a missing record.
	ErrNotFound = errors.New("record not found")

	// ErrDataUnavailable is the terminal failure after the retry budget is
	// exhausted. The view keeps its last-known-good state when it sees it.
	ErrDataUnavailable = errors.New("backend data unavailable")
)

// statusError converts an HTTP answer into the taxonomy.
func statusError(status int, body string) error {
	switch {
	case status == 401 || status == 403:
		return fmt.Errorf("%w (status %d)", ErrAuthExpired, status)
	case status == 404:
		return fmt.Errorf("%w (status %d)", ErrNotFound, status)
	case status == 408 || status == 429 || status >= 500:
		return fmt.Errorf("%w (status %d): %s", ErrTransient, status, body)
	default:
		return fmt.Errorf("backend rejected request (status %d): %s", status, body)
	}
}
