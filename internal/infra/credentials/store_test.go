package credentials

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"wrapstudio/internal/sqlinline"
)

type stubExecutor struct {
	token   string
	err     error
	queried int
	exec    struct {
		query string
		args  []any
	}
}

func (s *stubExecutor) Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	s.exec.query = query
	s.exec.args = args
	return pgconn.CommandTag{}, s.err
}

func (s *stubExecutor) QueryRow(ctx context.Context, query string, args ...any) pgx.Row {
	s.queried++
	return stubRow{token: s.token, err: s.err}
}

func (s *stubExecutor) Query(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
	return nil, errors.New("not implemented")
}

type stubRow struct {
	token string
	err   error
}

func (r stubRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	ptr, ok := dest[0].(*string)
	if !ok {
		return errors.New("invalid dest")
	}
	*ptr = r.token
	return nil
}

func TestToken(t *testing.T) {
	store := NewStore(&stubExecutor{token: " abc123 "})
	key, err := store.Token(context.Background(), ProviderGemini)
	if err != nil {
		t.Fatalf("Token error: %v", err)
	}
	if key != "abc123" {
		t.Fatalf("expected abc123, got %q", key)
	}
}

func TestToken_NoRows(t *testing.T) {
	store := NewStore(&stubExecutor{err: pgx.ErrNoRows})
	key, err := store.Token(context.Background(), ProviderGemini)
	if err != nil {
		t.Fatalf("Token error: %v", err)
	}
	if key != "" {
		t.Fatalf("expected empty key, got %q", key)
	}
}

func TestToken_Error(t *testing.T) {
	store := NewStore(&stubExecutor{err: errors.New("boom")})
	if _, err := store.Token(context.Background(), ProviderGemini); err == nil {
		t.Fatal("expected error")
	}
}

func TestSetToken(t *testing.T) {
	exec := &stubExecutor{}
	store := NewStore(exec)
	if err := store.SetToken(context.Background(), ProviderGemini, " secret "); err != nil {
		t.Fatalf("SetToken error: %v", err)
	}
	if exec.exec.query != sqlinline.QIntegrationTokenUpsert {
		t.Fatalf("unexpected query %q", exec.exec.query)
	}
	if len(exec.exec.args) != 2 || exec.exec.args[0] != ProviderGemini || exec.exec.args[1] != "secret" {
		t.Fatalf("unexpected args %v", exec.exec.args)
	}
}

func TestSetTokenEmpty(t *testing.T) {
	store := NewStore(&stubExecutor{})
	if err := store.SetToken(context.Background(), ProviderGemini, " "); !errors.Is(err, ErrEmptyToken) {
		t.Fatalf("expected ErrEmptyToken, got %v", err)
	}
}

func TestGeminiAPIKeyPrefersConfigured(t *testing.T) {
	exec := &stubExecutor{token: "stored"}
	key, err := NewStore(exec).GeminiAPIKey(context.Background(), " env-key ")
	if err != nil || key != "env-key" {
		t.Fatalf("key=%q err=%v", key, err)
	}
	if exec.queried != 0 {
		t.Fatal("store should not be queried when a key is configured")
	}
}

func TestGeminiAPIKeyFallsBackToStore(t *testing.T) {
	key, err := NewStore(&stubExecutor{token: "stored"}).GeminiAPIKey(context.Background(), "")
	if err != nil || key != "stored" {
		t.Fatalf("key=%q err=%v", key, err)
	}
	var nilStore *Store
	if key, err := nilStore.GeminiAPIKey(context.Background(), ""); err != nil || key != "" {
		t.Fatalf("nil store: key=%q err=%v", key, err)
	}
}
