package errors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrAuthRequired      = errors.New("authentication required: identity token is missing")
	ErrInvoiceNotPending = errors.New("invoice is not pending")
	ErrShopNotVerified   = errors.New("shop is not verified")
)

// NetworkError signals a transport failure or a non-2xx upstream response.
// It is the only error class the retry policy is expected to see repeatedly.
type NetworkError struct {
	StatusCode int
	Status     string
}

func (e *NetworkError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("network error: %s", e.Status)
	}
	return fmt.Sprintf("upstream error: %d %s", e.StatusCode, e.Status)
}

// MalformedResponseError signals a 2xx response whose body failed to parse.
// Resending the identical request to a broken endpoint is futile, so callers
// surface it immediately instead of retrying.
type MalformedResponseError struct {
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed upstream response: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}
