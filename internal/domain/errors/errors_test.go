package errors

import (
	stdErrors "errors"
	"strings"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"not found", ErrNotFound},
		{"auth required", ErrAuthRequired},
		{"invoice not pending", ErrInvoiceNotPending},
		{"shop not verified", ErrShopNotVerified},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if !stdErrors.Is(tc.err, tc.err) {
				t.Fatalf("expected error to match itself: %v", tc.err)
			}
		})
	}
}

func TestNetworkErrorMessage(t *testing.T) {
	withStatus := &NetworkError{StatusCode: 503, Status: "503 Service Unavailable"}
	if got := withStatus.Error(); !strings.Contains(got, "503") {
		t.Fatalf("expected status code in message, got %q", got)
	}

	transport := &NetworkError{Status: "connection refused"}
	if got := transport.Error(); !strings.Contains(got, "connection refused") {
		t.Fatalf("expected transport detail in message, got %q", got)
	}

	var netErr *NetworkError
	if !stdErrors.As(error(withStatus), &netErr) {
		t.Fatal("expected errors.As to match NetworkError")
	}
}

func TestMalformedResponseErrorUnwraps(t *testing.T) {
	cause := stdErrors.New("unexpected end of JSON input")
	err := &MalformedResponseError{Err: cause}

	if !stdErrors.Is(err, cause) {
		t.Fatal("expected wrapped cause to be reachable via errors.Is")
	}
	if got := err.Error(); !strings.Contains(got, cause.Error()) {
		t.Fatalf("expected cause in message, got %q", got)
	}

	var malformed *MalformedResponseError
	if !stdErrors.As(error(err), &malformed) {
		t.Fatal("expected errors.As to match MalformedResponseError")
	}
}
