// Package fakesidecar serves scripted Substrate API Sidecar routes for tests.
package fakesidecar

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// Sidecar is a fake sidecar. Routes are matched on the exact URL path;
// unknown paths reply 404 with a sidecar style error body.
type Sidecar struct {
	server *httptest.Server

	mu       sync.Mutex
	routes   map[string]http.HandlerFunc
	requests map[string]int
}

// New starts a fake sidecar that is shut down when the test ends.
func New(t testing.TB) *Sidecar {
	t.Helper()

	s := &Sidecar{
		routes:   make(map[string]http.HandlerFunc),
		requests: make(map[string]int),
	}
	s.server = httptest.NewServer(http.HandlerFunc(s.serveHTTP))
	t.Cleanup(s.server.Close)

	return s
}

// URL returns the base URL of the sidecar.
func (s *Sidecar) URL() string {
	return s.server.URL
}

// Close stops the server; later requests fail with connection refused.
func (s *Sidecar) Close() {
	s.server.Close()
}

// Handle registers h for path, replacing any previous route.
func (s *Sidecar) Handle(path string, h http.HandlerFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routes[path] = h
}

// HandleJSON replies to path with 200 and body.
func (s *Sidecar) HandleJSON(path, body string) {
	s.HandleStatus(path, http.StatusOK, body)
}

// HandleStatus replies to path with status and body.
func (s *Sidecar) HandleStatus(path string, status int, body string) {
	s.Handle(path, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	})
}

// Requests returns how many requests path received.
func (s *Sidecar) Requests(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests[path]
}

func (s *Sidecar) serveHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.requests[r.URL.Path]++
	handler, ok := s.routes[r.URL.Path]
	s.mu.Unlock()

	if !ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"code":404,"message":"Not Found"}`))
		return
	}

	handler(w, r)
}
