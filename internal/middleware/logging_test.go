package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// captureLogs routes the default logger into a buffer for the test.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestLogger(t *testing.T) {
	t.Run("passes status through", func(t *testing.T) {
		captureLogs(t)
		handler := Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/missing", nil))

		if rr.Code != http.StatusNotFound {
			t.Errorf("status: got %d, want 404", rr.Code)
		}
	})

	t.Run("never logs the query string", func(t *testing.T) {
		logs := captureLogs(t)
		handler := Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("ok"))
		}))

		req := httptest.NewRequest(http.MethodPost, "/api/revalidate?secret=hunter2", nil)
		handler.ServeHTTP(httptest.NewRecorder(), req)

		out := logs.String()
		if strings.Contains(out, "hunter2") {
			t.Errorf("secret leaked into logs: %s", out)
		}
		if !strings.Contains(out, "path=/api/revalidate") || !strings.Contains(out, "status=200") {
			t.Errorf("unexpected log line: %s", out)
		}
	})

	t.Run("server errors log at error level", func(t *testing.T) {
		logs := captureLogs(t)
		handler := Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

		if !strings.Contains(logs.String(), "level=ERROR") {
			t.Errorf("log = %s", logs.String())
		}
	})
}

func TestRequestID(t *testing.T) {
	t.Run("generates an ID", func(t *testing.T) {
		var seen string
		handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = RequestIDFromCtx(r.Context())
		}))

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

		if seen == "" {
			t.Fatal("request ID missing from context")
		}
		if rr.Header().Get(RequestIDHeader) != seen {
			t.Errorf("header = %q, context = %q", rr.Header().Get(RequestIDHeader), seen)
		}
	})

	t.Run("reuses the caller's ID", func(t *testing.T) {
		handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "abc-123")
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if got := rr.Header().Get(RequestIDHeader); got != "abc-123" {
			t.Errorf("header = %q, want abc-123", got)
		}
	})

	t.Run("replaces oversized IDs", func(t *testing.T) {
		handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, strings.Repeat("x", 200))
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if got := rr.Header().Get(RequestIDHeader); len(got) != 36 {
			t.Errorf("header = %q, want a fresh UUID", got)
		}
	})
}

func TestResponseWriter(t *testing.T) {
	t.Run("WriteHeader only captures first call", func(t *testing.T) {
		rw := &responseWriter{ResponseWriter: httptest.NewRecorder(), statusCode: http.StatusOK}

		rw.WriteHeader(http.StatusNotFound)
		rw.WriteHeader(http.StatusInternalServerError)

		if rw.statusCode != http.StatusNotFound {
			t.Errorf("statusCode: got %d, want 404 (first call)", rw.statusCode)
		}
	})

	t.Run("Write sets default 200 status", func(t *testing.T) {
		rw := &responseWriter{ResponseWriter: httptest.NewRecorder()}

		if _, err := rw.Write([]byte("test")); err != nil {
			t.Fatalf("Write error: %v", err)
		}
		if rw.statusCode != http.StatusOK || !rw.written {
			t.Errorf("statusCode = %d, written = %v", rw.statusCode, rw.written)
		}
	})
}
