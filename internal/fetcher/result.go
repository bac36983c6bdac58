package fetcher

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// ErrUnexpectedShape is returned when a successful response lacks the fields a caller expects
var ErrUnexpectedShape = errors.New("unexpected response shape")

// Result represents the outcome of a fetch operation.
// It is exactly one of Ok (a decoded JSON payload) or Err (a failure with a message).
type Result struct {
	payload  json.RawMessage
	err      *FetchError
	attempts int
}

// Ok wraps a JSON payload as a successful result.
func Ok(payload json.RawMessage, attempts int) Result {
	return Result{payload: payload, attempts: attempts}
}

// Err wraps a failure as an unsuccessful result and records the attempt count on it.
func Err(err *FetchError, attempts int) Result {
	if err == nil {
		err = NewTransportError(errors.New("unknown error"))
	}
	err.Attempts = attempts
	return Result{err: err, attempts: attempts}
}

// IsOk reports whether the result carries a payload
func (r Result) IsOk() bool {
	return r.err == nil
}

// Payload returns the raw JSON body. It is nil for Err results.
func (r Result) Payload() json.RawMessage {
	return r.payload
}

// Err returns the failure, or nil for Ok results
func (r Result) Err() *FetchError {
	return r.err
}

// Message returns the human-readable failure cause. It is empty for Ok results.
func (r Result) Message() string {
	if r.err == nil {
		return ""
	}
	return r.err.Error()
}

// Attempts returns how many requests were issued to produce this result
func (r Result) Attempts() int {
	return r.attempts
}

// Decode unmarshals the payload into v.
func (r Result) Decode(v any) error {
	if r.err != nil {
		return r.err
	}
	return json.Unmarshal(r.payload, v)
}

// Get looks up a gjson path in the payload, e.g. "quotes.USD.price".
// Missing paths and Err results both yield a result whose Exists() is false.
func (r Result) Get(path string) gjson.Result {
	if r.err != nil {
		return gjson.Result{}
	}
	return gjson.GetBytes(r.payload, path)
}

// Missing returns the paths absent from the payload, in the order given
func (r Result) Missing(paths ...string) []string {
	var missing []string
	for _, p := range paths {
		if !r.Get(p).Exists() {
			missing = append(missing, p)
		}
	}
	return missing
}

// Require returns ErrUnexpectedShape naming every missing path, or the fetch failure
// itself for Err results.
func (r Result) Require(paths ...string) error {
	if r.err != nil {
		return r.err
	}
	if missing := r.Missing(paths...); len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrUnexpectedShape, strings.Join(missing, ", "))
	}
	return nil
}
