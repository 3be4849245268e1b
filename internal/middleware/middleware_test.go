package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if seen != "abc-123" || rec.Header().Get("X-Request-ID") != "abc-123" {
		t.Fatalf("request id = %q / %q", seen, rec.Header().Get("X-Request-ID"))
	}

	for _, bad := range []string{"", "has space", strings.Repeat("x", maxRequestIDLen+1)} {
		req = httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", bad)
		h.ServeHTTP(httptest.NewRecorder(), req)
		if seen == bad || len(seen) != 36 {
			t.Fatalf("header %q should be replaced, got %q", bad, seen)
		}
	}
}

func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name       string
		allowed    []string
		origin     string
		method     string
		wantOrigin string
		wantCreds  bool
		wantStatus int
	}{
		{"listed origin", []string{"https://shop.example"}, "https://shop.example", http.MethodGet, "https://shop.example", true, http.StatusOK},
		{"unlisted origin", []string{"https://shop.example"}, "https://evil.example", http.MethodGet, "", false, http.StatusOK},
		{"wildcard", []string{"*"}, "https://any.example", http.MethodGet, "*", false, http.StatusOK},
		{"preflight", []string{"*"}, "https://any.example", http.MethodOptions, "*", false, http.StatusNoContent},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, "/v1/prompts", nil)
			req.Header.Set("Origin", tc.origin)
			rec := httptest.NewRecorder()
			CORS(tc.allowed)(next).ServeHTTP(rec, req)
			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d", rec.Code)
			}
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tc.wantOrigin {
				t.Fatalf("allow origin = %q, want %q", got, tc.wantOrigin)
			}
			if creds := rec.Header().Get("Access-Control-Allow-Credentials") == "true"; creds != tc.wantCreds {
				t.Fatalf("credentials = %v", creds)
			}
		})
	}
}

func TestLoggerWritesAccessLine(t *testing.T) {
	var buf bytes.Buffer
	h := RequestID(Logger(zerolog.New(&buf))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("down"))
	})))
	req := httptest.NewRequest(http.MethodPost, "/v1/renders", nil)
	req.Header.Set("X-Request-ID", "rid-1")
	h.ServeHTTP(httptest.NewRecorder(), req)

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("decode log line %q: %v", buf.String(), err)
	}
	if line["level"] != "error" || line["status"] != float64(503) || line["bytes"] != float64(4) {
		t.Fatalf("log line = %v", line)
	}
	if line["request_id"] != "rid-1" || line["path"] != "/v1/renders" {
		t.Fatalf("log line = %v", line)
	}
}
