package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/nutritrack/internal/client/repositories/kv"
)

// tokenKey is global to the machine, not to a user namespace: it decides
// which namespace is active.
const tokenKey = "authToken"

// TokenStore keeps the bearer token in the kv table. It implements
// client.TokenSource, so the HTTP client reads it on every request.
type TokenStore struct {
	repo kv.Repository
}

func NewTokenStore(db *sql.DB) *TokenStore {
	return &TokenStore{repo: kv.NewSQLiteRepository(db, "")}
}

// Token returns the saved token, or "" when nobody is logged in.
func (t *TokenStore) Token(ctx context.Context) (string, error) {
	v, err := t.repo.Get(ctx, tokenKey)
	if err != nil {
		return "", fmt.Errorf("failed to read token: %w", err)
	}
	return string(v), nil
}

func (t *TokenStore) SetToken(ctx context.Context, token string) error {
	if err := t.repo.Set(ctx, tokenKey, []byte(token)); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	return nil
}

func (t *TokenStore) Clear(ctx context.Context) error {
	return t.repo.Delete(ctx, tokenKey)
}
