// Package fetcher wraps outbound HTTP GETs in a bounded retry loop.
//
// Each call performs up to MaxAttempts sequential attempts, each bounded by its own
// timeout. Failed attempts are classified into a closed set of kinds (connection,
// timeout, http, transport) and retried after a fixed delay; there is no backoff
// growth and no jitter. The first 2xx response with a JSON body ends the loop.
package fetcher

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
	"resty.dev/v3"
)

const (
	// DefaultTimeout bounds a single attempt
	DefaultTimeout = 5 * time.Second
	// DefaultMaxAttempts is the attempt budget of one Fetch call
	DefaultMaxAttempts = 3
	// DefaultRetryDelay is the fixed wait between a failed attempt and the next one
	DefaultRetryDelay = 1 * time.Second
)

// Request describes one GET target.
// Zero Timeout or MaxAttempts fall back to the fetcher's defaults.
type Request struct {
	URL         string
	Query       map[string]string
	Timeout     time.Duration
	MaxAttempts int
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the default per-attempt timeout.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		if d > 0 {
			f.timeout = d
		}
	}
}

// WithMaxAttempts sets the default attempt budget. Values below 1 are ignored.
func WithMaxAttempts(n int) Option {
	return func(f *Fetcher) {
		if n >= 1 {
			f.maxAttempts = n
		}
	}
}

// WithRetryDelay sets the fixed delay between attempts.
func WithRetryDelay(d time.Duration) Option {
	return func(f *Fetcher) {
		if d >= 0 {
			f.retryDelay = d
		}
	}
}

// WithLogger sets the logger receiving per-attempt diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(f *Fetcher) { f.logger = l }
}

// WithHTTPClient sets the underlying resty client.
func WithHTTPClient(c *resty.Client) Option {
	return func(f *Fetcher) { f.client = c }
}

// Fetcher issues GET requests with a per-attempt timeout and a fixed-delay retry budget.
// It keeps no state between calls.
type Fetcher struct {
	client      *resty.Client
	logger      zerolog.Logger
	timeout     time.Duration
	maxAttempts int
	retryDelay  time.Duration
}

// New creates a Fetcher with the given options.
func New(opts ...Option) *Fetcher {
	f := &Fetcher{
		logger:      zerolog.Nop(),
		timeout:     DefaultTimeout,
		maxAttempts: DefaultMaxAttempts,
		retryDelay:  DefaultRetryDelay,
	}
	for _, o := range opts {
		o(f)
	}
	if f.client == nil {
		f.client = NewHTTPClient(f.logger)
	}
	return f
}

// Client returns the underlying resty client
func (f *Fetcher) Client() *resty.Client {
	return f.client
}

// Timeout returns the per-attempt timeout, which also bounds the single-shot
// requests made directly on Client
func (f *Fetcher) Timeout() time.Duration {
	return f.timeout
}

// Get is shorthand for Fetch with a URL and optional query parameters.
func (f *Fetcher) Get(ctx context.Context, url string, query map[string]string) Result {
	return f.Fetch(ctx, Request{URL: url, Query: query})
}

// Fetch performs the request, retrying classified failures until the attempt budget
// is spent. It never returns a Go error; every outcome is carried by the Result.
func (f *Fetcher) Fetch(ctx context.Context, req Request) Result {
	timeout := req.Timeout
	if timeout <= 0 {
		timeout = f.timeout
	}
	maxAttempts := req.MaxAttempts
	if maxAttempts == 0 {
		maxAttempts = f.maxAttempts
	}
	if maxAttempts < 1 {
		return Err(NewInvalidError("max attempts must be at least 1"), 0)
	}
	if req.URL == "" {
		return Err(NewInvalidError("empty URL"), 0)
	}

	var last *FetchError
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		f.logger.Info().
			Int("attempt", attempt).
			Str("url", req.URL).
			Msg("GET")

		payload, ferr := f.attempt(ctx, req, timeout)
		if ferr == nil {
			return Ok(payload, attempt)
		}
		if ctx.Err() != nil {
			return Err(NewCanceledError(ctx.Err()), attempt)
		}

		f.logger.Warn().
			Int("attempt", attempt).
			Str("kind", string(ferr.Kind)).
			Err(ferr).
			Msg("attempt failed")

		if !ferr.Retryable() {
			return Err(ferr, attempt)
		}
		last = ferr
		if attempt == maxAttempts {
			break
		}

		f.logger.Info().Dur("delay", f.retryDelay).Msg("retrying")
		select {
		case <-ctx.Done():
			return Err(NewCanceledError(ctx.Err()), attempt)
		case <-time.After(f.retryDelay):
		}
	}

	return Err(last, maxAttempts)
}

// attempt issues exactly one GET bounded by timeout
func (f *Fetcher) attempt(ctx context.Context, req Request, timeout time.Duration) (json.RawMessage, *FetchError) {
	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := f.client.R().
		SetContext(attemptCtx).
		SetQueryParams(req.Query).
		Get(req.URL)

	if ferr := Classify(resp, err); ferr != nil {
		return nil, ferr
	}

	body := resp.Bytes()
	if !gjson.ValidBytes(body) {
		return nil, NewDecodeError(resp.StatusCode())
	}

	payload := make(json.RawMessage, len(body))
	copy(payload, body)
	return payload, nil
}
