package testutil

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

type route struct {
	method string
	path   string
}

// MockServer is an in-process OSHI bot API. Every request is recorded before
// its handler runs; routes without a handler answer 200 with {}.
type MockServer struct {
	*httptest.Server

	mu       sync.Mutex
	routes   map[route]http.HandlerFunc
	captures []Capture
}

// NewMockServer starts a mock server that is closed when the test ends.
func NewMockServer(t *testing.T) *MockServer {
	t.Helper()

	m := &MockServer{routes: make(map[route]http.HandlerFunc)}
	m.Server = httptest.NewServer(http.HandlerFunc(m.serve))
	t.Cleanup(m.Server.Close)
	return m
}

func (m *MockServer) serve(w http.ResponseWriter, r *http.Request) {
	c := record(r)

	m.mu.Lock()
	m.captures = append(m.captures, c)
	handler := m.routes[route{r.Method, r.URL.Path}]
	m.mu.Unlock()

	if handler == nil {
		ReplyOK(w, map[string]any{})
		return
	}
	handler(w, r)
}

// OnMethod installs handler for method and path, replacing any earlier one.
//
//	server.OnMethod(http.MethodDelete, "/api/bot/unregister", func(w http.ResponseWriter, r *http.Request) {
//	    testutil.ReplyError(w, 404, "Bot not found")
//	})
func (m *MockServer) OnMethod(method, path string, handler http.HandlerFunc) {
	m.mu.Lock()
	m.routes[route{method, path}] = handler
	m.mu.Unlock()
}

// On installs a POST handler (send, register, update-groups).
func (m *MockServer) On(path string, handler http.HandlerFunc) {
	m.OnMethod(http.MethodPost, path, handler)
}

// OnGet installs a GET handler (info, list).
func (m *MockServer) OnGet(path string, handler http.HandlerFunc) {
	m.OnMethod(http.MethodGet, path, handler)
}

// Captures returns a copy of every recorded request, oldest first.
func (m *MockServer) Captures() []Capture {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Capture(nil), m.captures...)
}

// LastCapture returns the newest request, or nil if none arrived.
func (m *MockServer) LastCapture() *Capture {
	return m.CaptureAt(m.CaptureCount() - 1)
}

// CaptureAt returns the request at index, or nil when out of range.
func (m *MockServer) CaptureAt(index int) *Capture {
	m.mu.Lock()
	defer m.mu.Unlock()
	if index < 0 || index >= len(m.captures) {
		return nil
	}
	c := m.captures[index]
	return &c
}

// CaptureCount returns how many requests arrived.
func (m *MockServer) CaptureCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.captures)
}

// CountFor returns how many requests hit method and path.
func (m *MockServer) CountFor(method, path string) int {
	n := 0
	for _, c := range m.Captures() {
		if c.Method == method && c.Path == path {
			n++
		}
	}
	return n
}

// Reset forgets all requests and handlers.
func (m *MockServer) Reset() {
	m.mu.Lock()
	m.captures = nil
	m.routes = make(map[route]http.HandlerFunc)
	m.mu.Unlock()
}

// BaseURL is the value to pass to WithBaseURL.
func (m *MockServer) BaseURL() string {
	return m.Server.URL
}

// ClosedURL returns the address of a server that has already shut down, so
// any request to it fails before an HTTP response exists.
func ClosedURL(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	return url
}

func record(r *http.Request) Capture {
	body, _ := io.ReadAll(r.Body)
	r.Body.Close()
	r.Body = io.NopCloser(bytes.NewReader(body))

	return Capture{
		Method:      r.Method,
		Path:        r.URL.Path,
		Query:       r.URL.Query(),
		Headers:     r.Header.Clone(),
		Body:        body,
		ContentType: r.Header.Get("Content-Type"),
		RequestID:   r.Header.Get("X-Request-ID"),
	}
}
