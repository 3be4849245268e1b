package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"wrapstudio/internal/domain"
)

func TestFailMapsDomainErrors(t *testing.T) {
	a := &App{Logger: zerolog.New(io.Discard)}
	tests := []struct {
		err  error
		code int
		name string
	}{
		{fmt.Errorf("%w: vehicle is required", domain.ErrInvalidRequest), http.StatusBadRequest, "invalid_request"},
		{fmt.Errorf("%w: camera", domain.ErrInvalidRevision), http.StatusUnprocessableEntity, "invalid_revision"},
		{domain.ErrNotFound, http.StatusNotFound, "not_found"},
		{domain.ErrPersistenceDisabled, http.StatusServiceUnavailable, "persistence_disabled"},
		{fmt.Errorf("gemini: %w", domain.ErrProviderFailure), http.StatusBadGateway, "provider_failure"},
		{errors.New("connection reset"), http.StatusInternalServerError, "internal"},
	}
	for _, tc := range tests {
		rec := httptest.NewRecorder()
		a.fail(rec, httptest.NewRequest(http.MethodGet, "/", nil), tc.err)
		if rec.Code != tc.code {
			t.Fatalf("%v: status = %d, want %d", tc.err, rec.Code, tc.code)
		}
		var body errorBody
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body.Error.Code != tc.name {
			t.Fatalf("%v: code = %q, want %q", tc.err, body.Error.Code, tc.name)
		}
	}
}

func TestInternalErrorsDoNotLeak(t *testing.T) {
	a := &App{Logger: zerolog.New(io.Discard)}
	rec := httptest.NewRecorder()
	a.fail(rec, httptest.NewRequest(http.MethodGet, "/", nil), errors.New("password=hunter2"))
	if strings.Contains(rec.Body.String(), "hunter2") {
		t.Fatalf("body leaks internal error: %s", rec.Body.String())
	}
}

func TestDecodeRejectsTrailingData(t *testing.T) {
	var v struct {
		Text string `json:"text"`
	}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"text":"a"}{"text":"b"}`))
	if err := decode(httptest.NewRecorder(), req, &v); !errors.Is(err, domain.ErrInvalidRequest) {
		t.Fatalf("err = %v", err)
	}
}
