// Package credentials keeps provider API keys in the integration_tokens
// table so workers can run without the key in their environment.
package credentials

import (
	"context"
	"errors"
	"strings"

	"wrapstudio/internal/infra"
	"wrapstudio/internal/sqlinline"
)

const ProviderGemini = "gemini"

var ErrEmptyToken = errors.New("credentials: token is required")

type Store struct {
	sql infra.SQLExecutor
}

func NewStore(sql infra.SQLExecutor) *Store {
	return &Store{sql: sql}
}

// Token returns the stored token for provider, or "" when none is stored.
func (s *Store) Token(ctx context.Context, provider string) (string, error) {
	var token string
	if err := s.sql.QueryRow(ctx, sqlinline.QIntegrationTokenGet, provider).Scan(&token); err != nil {
		if infra.IsNoRows(err) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(token), nil
}

func (s *Store) SetToken(ctx context.Context, provider, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrEmptyToken
	}
	_, err := s.sql.Exec(ctx, sqlinline.QIntegrationTokenUpsert, provider, token)
	return err
}

// GeminiAPIKey prefers the configured key and falls back to the stored one.
func (s *Store) GeminiAPIKey(ctx context.Context, configured string) (string, error) {
	if key := strings.TrimSpace(configured); key != "" {
		return key, nil
	}
	if s == nil || s.sql == nil {
		return "", nil
	}
	return s.Token(ctx, ProviderGemini)
}
