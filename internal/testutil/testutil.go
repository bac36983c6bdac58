package testutil

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

// Response is one canned reply of a mock API
type Response struct {
	Status int
	Body   string
}

// Server is an httptest server that counts the requests it receives
type Server struct {
	*httptest.Server
	hits atomic.Int32
}

// NewServer starts a counting server and closes it when the test ends
func NewServer(t testing.TB, handler http.HandlerFunc) *Server {
	t.Helper()

	s := &Server{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.hits.Add(1)
		handler(w, r)
	}))
	t.Cleanup(s.Close)
	return s
}

// Hits returns the number of requests served so far
func (s *Server) Hits() int {
	return int(s.hits.Load())
}

// WriteJSON writes body with a JSON content type and the given status
func WriteJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(body))
}

// JSON returns a handler that always answers with status and body
func JSON(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, status, body)
	}
}

// Sequence returns a handler replaying responses in order; the last one repeats
func Sequence(responses ...Response) http.HandlerFunc {
	var n atomic.Int32
	return func(w http.ResponseWriter, r *http.Request) {
		i := int(n.Add(1)) - 1
		if i >= len(responses) {
			i = len(responses) - 1
		}
		WriteJSON(w, responses[i].Status, responses[i].Body)
	}
}

// Slow returns a handler that answers after delay, or gives up when the client disconnects
func Slow(delay time.Duration, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
			return
		case <-time.After(delay):
		}
		WriteJSON(w, http.StatusOK, body)
	}
}

// ClosedURL returns the URL of a server that is no longer listening
func ClosedURL(t testing.TB) string {
	t.Helper()

	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	return url
}
