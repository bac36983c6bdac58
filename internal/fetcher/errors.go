package fetcher

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"syscall"

	"resty.dev/v3"
)

// Kind represents the category of failure that ended a fetch attempt
type Kind string

const (
	// KindConnection indicates the target could not be reached (DNS, refused, unreachable)
	KindConnection Kind = "connection"
	// KindTimeout indicates the attempt exceeded its timeout
	KindTimeout Kind = "timeout"
	// KindHTTP indicates the server answered with a non-2xx status
	KindHTTP Kind = "http"
	// KindTransport indicates any other request-level fault
	KindTransport Kind = "transport"
	// KindDecode indicates a 2xx response whose body is not JSON
	KindDecode Kind = "decode"
	// KindInvalid indicates the request was rejected before any attempt
	KindInvalid Kind = "invalid"
	// KindCanceled indicates the caller's context ended the fetch
	KindCanceled Kind = "canceled"
)

// FetchError says why a fetch ended without a JSON payload. Attempts counts the
// requests issued before the fetcher gave up and stays zero outside a Result.
type FetchError struct {
	Kind       Kind
	StatusCode int
	Message    string
	Cause      error
	Attempts   int
}

// Error renders "<kind> error [(status N)]: message[: cause] [after N attempts]"
func (e *FetchError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s error", e.Kind)
	if e.StatusCode > 0 {
		fmt.Fprintf(&b, " (status %d)", e.StatusCode)
	}
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.Cause != nil {
		fmt.Fprintf(&b, ": %v", e.Cause)
	}
	if e.Attempts > 1 {
		fmt.Fprintf(&b, " after %d attempts", e.Attempts)
	}
	return b.String()
}

// Unwrap exposes the network or context error behind the failure
func (e *FetchError) Unwrap() error {
	return e.Cause
}

// Retryable reports whether another attempt may succeed.
func (e *FetchError) Retryable() bool {
	switch e.Kind {
	case KindConnection, KindTimeout, KindHTTP, KindTransport:
		return true
	default:
		return false
	}
}

// NewConnectionError creates a connection error
func NewConnectionError(cause error) *FetchError {
	return &FetchError{Kind: KindConnection, Message: "connection failed", Cause: cause}
}

// NewTimeoutError creates a timeout error
func NewTimeoutError(cause error) *FetchError {
	return &FetchError{Kind: KindTimeout, Message: "request timed out", Cause: cause}
}

// NewHTTPError creates an error for a non-2xx response
func NewHTTPError(statusCode int, method, url string) *FetchError {
	return &FetchError{
		Kind:       KindHTTP,
		StatusCode: statusCode,
		Message:    fmt.Sprintf("%d %s for %s %s", statusCode, http.StatusText(statusCode), method, url),
	}
}

// NewTransportError creates an error for an unclassified request fault
func NewTransportError(cause error) *FetchError {
	return &FetchError{Kind: KindTransport, Message: "request failed", Cause: cause}
}

// NewDecodeError creates an error for a successful response with an unparseable body
func NewDecodeError(statusCode int) *FetchError {
	return &FetchError{
		Kind:       KindDecode,
		StatusCode: statusCode,
		Message:    "response body is not valid JSON",
	}
}

// NewInvalidError creates an error for a request rejected before sending
func NewInvalidError(message string) *FetchError {
	return &FetchError{Kind: KindInvalid, Message: message}
}

// NewCanceledError creates an error for a fetch abandoned by its caller
func NewCanceledError(cause error) *FetchError {
	return &FetchError{Kind: KindCanceled, Message: "fetch canceled", Cause: cause}
}

// Classify maps the outcome of one attempt onto the closed set of failure kinds.
// It returns nil when the response carries a 2xx status.
func Classify(resp *resty.Response, err error) *FetchError {
	if err != nil {
		return classifyTransport(err)
	}
	if resp == nil {
		return NewTransportError(errors.New("no response"))
	}
	if resp.IsSuccess() {
		return nil
	}

	method, url := "GET", ""
	if resp.Request != nil {
		method, url = resp.Request.Method, resp.Request.URL
	}
	return NewHTTPError(resp.StatusCode(), method, url)
}

func classifyTransport(err error) *FetchError {
	if errors.Is(err, context.DeadlineExceeded) {
		return NewTimeoutError(err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return NewTimeoutError(err)
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return NewConnectionError(err)
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return NewConnectionError(err)
	}

	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.EHOSTUNREACH) || errors.Is(err, syscall.ENETUNREACH) {
		return NewConnectionError(err)
	}

	return NewTransportError(err)
}
