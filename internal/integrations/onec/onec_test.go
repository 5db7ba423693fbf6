package onec

import (
	"net/http"
	"net/http/httptest"
	"sync"
)

// nopLogger логгер-заглушка для тестов
type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// testServer мок OData сервера: маршрутизация по префиксу пути
// и подсчёт запросов по каждому префиксу
type testServer struct {
	srv      *httptest.Server
	mu       sync.Mutex
	requests map[string]int
	routes   []testRoute
}

type testRoute struct {
	prefix  string
	handler http.HandlerFunc
}

func newTestServer() *testServer {
	ts := &testServer{requests: map[string]int{}}
	ts.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ts.mu.Lock()
		for _, route := range ts.routes {
			if hasPrefix(r.URL.Path, route.prefix) {
				ts.requests[route.prefix]++
				ts.mu.Unlock()
				route.handler(w, r)
				return
			}
		}
		ts.requests["unmatched"]++
		ts.mu.Unlock()
		http.NotFound(w, r)
	}))
	return ts
}

func hasPrefix(path, prefix string) bool {
	return len(path) >= len(prefix) && path[:len(prefix)] == prefix
}

func (ts *testServer) handle(prefix string, h http.HandlerFunc) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.routes = append(ts.routes, testRoute{prefix: prefix, handler: h})
}

// handleJSON отвечает фиксированным JSON телом
func (ts *testServer) handleJSON(prefix string, body string) {
	ts.handle(prefix, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	})
}

// handleStatus отвечает заданным статусом без тела
func (ts *testServer) handleStatus(prefix string, status int) {
	ts.handle(prefix, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	})
}

func (ts *testServer) count(prefix string) int {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return ts.requests[prefix]
}

func (ts *testServer) close() {
	ts.srv.Close()
}

func (ts *testServer) client() *Client {
	return NewClient(Config{
		BaseURL:     ts.srv.URL,
		User:        "odata",
		Password:    "secret",
		DocUser:     "odata-doc",
		DocPassword: "secret-doc",
	}, nopLogger{})
}

const zeroGUID = "00000000-0000-0000-0000-000000000000"
