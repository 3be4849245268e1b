package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"testing"
	"time"
)

func TestHTTPServerServeAndShutdown(t *testing.T) {
	cfg := &Config{Port: "0", HTTPReadTimeout: time.Second, HTTPWriteTimeout: time.Second, HTTPIdleTimeout: time.Second}
	srv := NewHTTPServer(cfg, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "pong")
	}))
	if srv.Addr() != ":0" {
		t.Fatalf("addr = %q", srv.Addr())
	}

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if string(body) != "pong" {
		t.Fatalf("body = %q", body)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	if err := <-done; err != nil {
		t.Fatalf("serve after shutdown = %v", err)
	}
}

func TestNewLoggerByEnvironment(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger("production", &buf)
	l.Debug().Msg("hidden")
	l.Info().Str("k", "v").Msg("shown")

	var line map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line); err != nil {
		t.Fatalf("expected one JSON line, got %q: %v", buf.String(), err)
	}
	if line["message"] != "shown" || line["app"] != "wrapstudio" || line["env"] != "production" {
		t.Fatalf("line = %v", line)
	}

	buf.Reset()
	testLogger := newLogger("test", &buf)
	testLogger.Error().Msg("dropped")
	if buf.Len() != 0 {
		t.Fatalf("test logger wrote %q", buf.String())
	}

	buf.Reset()
	dev := newLogger("development", &buf)
	dev.Debug().Msg("visible")
	if !bytes.Contains(buf.Bytes(), []byte("visible")) {
		t.Fatalf("development logger should log debug, got %q", buf.String())
	}
}
