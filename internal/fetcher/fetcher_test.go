package fetcher

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"apiexplorer/internal/testutil"
)

func newTestFetcher(opts ...Option) *Fetcher {
	base := []Option{
		WithTimeout(time.Second),
		WithRetryDelay(10 * time.Millisecond),
	}
	return New(append(base, opts...)...)
}

func TestNew_Defaults(t *testing.T) {
	f := New()

	assert.Equal(t, DefaultTimeout, f.timeout)
	assert.Equal(t, DefaultMaxAttempts, f.maxAttempts)
	assert.Equal(t, DefaultRetryDelay, f.retryDelay)
	assert.NotNil(t, f.Client())
}

func TestNew_IgnoresInvalidOptions(t *testing.T) {
	f := New(WithMaxAttempts(0), WithTimeout(-time.Second), WithRetryDelay(-time.Second))

	assert.Equal(t, DefaultMaxAttempts, f.maxAttempts)
	assert.Equal(t, DefaultTimeout, f.timeout)
	assert.Equal(t, DefaultRetryDelay, f.retryDelay)
}

func TestFetch_Success(t *testing.T) {
	srv := testutil.NewServer(t, testutil.JSON(http.StatusOK, `{"a":1}`))

	res := newTestFetcher().Get(context.Background(), srv.URL, nil)

	require.True(t, res.IsOk(), res.Message())
	assert.JSONEq(t, `{"a":1}`, string(res.Payload()))
	assert.Equal(t, 1, res.Attempts())
	assert.Equal(t, 1, srv.Hits())
	assert.Empty(t, res.Message())
}

func TestFetch_QueryParams(t *testing.T) {
	srv := testutil.NewServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("userId"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		testutil.WriteJSON(w, http.StatusOK, `[]`)
	})

	res := newTestFetcher().Get(context.Background(), srv.URL, map[string]string{"userId": "1"})
	require.True(t, res.IsOk(), res.Message())
}

func TestFetch_AlwaysFailing(t *testing.T) {
	for _, attempts := range []int{1, 2, 3, 5} {
		t.Run(fmt.Sprintf("attempts=%d", attempts), func(t *testing.T) {
			srv := testutil.NewServer(t, testutil.JSON(http.StatusInternalServerError, `{}`))

			res := newTestFetcher(WithMaxAttempts(attempts)).Get(context.Background(), srv.URL, nil)

			require.False(t, res.IsOk())
			assert.Equal(t, attempts, srv.Hits())
			assert.Equal(t, attempts, res.Attempts())
			assert.Equal(t, KindHTTP, res.Err().Kind)
		})
	}
}

func TestFetch_FailThenSucceed(t *testing.T) {
	srv := testutil.NewServer(t, testutil.Sequence(
		testutil.Response{Status: http.StatusServiceUnavailable, Body: `{"error":"busy"}`},
		testutil.Response{Status: http.StatusOK, Body: `{"attempt":2}`},
	))

	res := newTestFetcher().Get(context.Background(), srv.URL, nil)

	require.True(t, res.IsOk(), res.Message())
	assert.Equal(t, 2, srv.Hits())
	assert.Equal(t, 2, res.Attempts())
	assert.JSONEq(t, `{"attempt":2}`, string(res.Payload()))
}

func TestFetch_NotFound(t *testing.T) {
	srv := testutil.NewServer(t, testutil.JSON(http.StatusNotFound, `{}`))

	res := newTestFetcher().Get(context.Background(), srv.URL+"/posts/99999", nil)

	require.False(t, res.IsOk())
	assert.Equal(t, 3, srv.Hits())
	assert.Equal(t, KindHTTP, res.Err().Kind)
	assert.Equal(t, http.StatusNotFound, res.Err().StatusCode)
	assert.Contains(t, res.Message(), "404 Not Found")
	assert.Contains(t, res.Message(), "/posts/99999")
}

func TestFetch_ConnectionRefused(t *testing.T) {
	url := testutil.ClosedURL(t)

	res := newTestFetcher(WithMaxAttempts(2)).Get(context.Background(), url, nil)

	require.False(t, res.IsOk())
	assert.Equal(t, KindConnection, res.Err().Kind)
	assert.Equal(t, 2, res.Attempts())
}

func TestFetch_Timeout(t *testing.T) {
	srv := testutil.NewServer(t, testutil.Slow(2*time.Second, `{}`))
	const (
		timeout  = 50 * time.Millisecond
		delay    = 30 * time.Millisecond
		attempts = 3
	)

	f := New(WithTimeout(timeout), WithRetryDelay(delay), WithMaxAttempts(attempts))

	start := time.Now()
	res := f.Get(context.Background(), srv.URL, nil)
	elapsed := time.Since(start)

	require.False(t, res.IsOk())
	assert.Equal(t, KindTimeout, res.Err().Kind)
	assert.Equal(t, attempts, srv.Hits())
	assert.GreaterOrEqual(t, elapsed, (attempts-1)*delay)
	assert.Less(t, elapsed, attempts*(timeout+delay)+time.Second)
}

func TestFetch_PerRequestOverrides(t *testing.T) {
	srv := testutil.NewServer(t, testutil.Slow(time.Second, `{}`))

	res := New(WithRetryDelay(0)).Fetch(context.Background(), Request{
		URL:         srv.URL,
		Timeout:     20 * time.Millisecond,
		MaxAttempts: 1,
	})

	require.False(t, res.IsOk())
	assert.Equal(t, KindTimeout, res.Err().Kind)
	assert.Equal(t, 1, srv.Hits())
}

func TestFetch_InvalidJSONIsNotRetried(t *testing.T) {
	srv := testutil.NewServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("<html>not json</html>"))
	})

	res := newTestFetcher().Get(context.Background(), srv.URL, nil)

	require.False(t, res.IsOk())
	assert.Equal(t, KindDecode, res.Err().Kind)
	assert.False(t, res.Err().Retryable())
	assert.Equal(t, 1, srv.Hits())
}

func TestFetch_InvalidRequest(t *testing.T) {
	f := newTestFetcher()

	res := f.Fetch(context.Background(), Request{URL: "http://localhost", MaxAttempts: -1})
	require.False(t, res.IsOk())
	assert.Equal(t, KindInvalid, res.Err().Kind)
	assert.Equal(t, 0, res.Attempts())

	res = f.Fetch(context.Background(), Request{})
	require.False(t, res.IsOk())
	assert.Equal(t, KindInvalid, res.Err().Kind)
}

func TestFetch_Idempotent(t *testing.T) {
	srv := testutil.NewServer(t, testutil.JSON(http.StatusOK, `{"id":1,"tags":["a","b"]}`))
	f := newTestFetcher()

	first := f.Get(context.Background(), srv.URL, nil)
	second := f.Get(context.Background(), srv.URL, nil)

	require.True(t, first.IsOk())
	require.True(t, second.IsOk())
	assert.JSONEq(t, string(first.Payload()), string(second.Payload()))
	assert.Equal(t, 2, srv.Hits())
}

func TestFetch_ContextCanceledDuringDelay(t *testing.T) {
	srv := testutil.NewServer(t, testutil.JSON(http.StatusBadGateway, `{}`))
	f := New(WithRetryDelay(5*time.Second), WithMaxAttempts(3))

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	res := f.Get(ctx, srv.URL, nil)

	require.False(t, res.IsOk())
	assert.Equal(t, KindCanceled, res.Err().Kind)
	assert.Equal(t, 1, srv.Hits())
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestFetch_CustomHTTPClient(t *testing.T) {
	srv := testutil.NewServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "explorer", r.Header.Get("X-Client"))
		testutil.WriteJSON(w, http.StatusOK, `{}`)
	})
	client := NewHTTPClient(zerolog.Nop()).SetHeader("X-Client", "explorer")

	f := newTestFetcher(WithHTTPClient(client))
	res := f.Get(context.Background(), srv.URL, nil)

	require.True(t, res.IsOk(), res.Message())
	assert.Same(t, client, f.Client())
}

func TestFetch_LogsEveryAttemptAndFailure(t *testing.T) {
	srv := testutil.NewServer(t, testutil.JSON(http.StatusNotFound, `{}`))
	target := srv.URL + "/posts/99999"

	var buf bytes.Buffer
	f := New(
		WithLogger(zerolog.New(&buf)),
		WithMaxAttempts(3),
		WithRetryDelay(time.Millisecond),
	)

	res := f.Get(context.Background(), target, nil)
	require.False(t, res.IsOk())

	var attempts, failures []gjson.Result
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		record := gjson.Parse(line)
		switch record.Get("message").String() {
		case "GET":
			attempts = append(attempts, record)
		case "attempt failed":
			failures = append(failures, record)
		}
	}

	require.Len(t, attempts, 3)
	require.Len(t, failures, 3)
	for i := 0; i < 3; i++ {
		assert.Equal(t, int64(i+1), attempts[i].Get("attempt").Int())
		assert.Equal(t, target, attempts[i].Get("url").String())
		assert.Equal(t, "info", attempts[i].Get("level").String())

		assert.Equal(t, int64(i+1), failures[i].Get("attempt").Int())
		assert.Equal(t, string(KindHTTP), failures[i].Get("kind").String())
		assert.Contains(t, failures[i].Get("error").String(), "404 Not Found")
		assert.Equal(t, "warn", failures[i].Get("level").String())
	}
}
