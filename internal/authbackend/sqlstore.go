package authbackend

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SQLCredentialStore is a CredentialStore backed by a PostgreSQL query.
//
// The query is opaque to the core: it must select exactly one text column
// (the clear-text password) and accept the user name as its sole
// parameter, e.g. "SELECT password FROM radius_users WHERE username = $1".
type SQLCredentialStore struct {
	pool        *pgxpool.Pool
	passwordSQL string
}

// NewSQLCredentialStore connects to connString and returns a
// SQLCredentialStore that runs passwordSQL for each lookup.
func NewSQLCredentialStore(ctx context.Context, connString, passwordSQL string) (*SQLCredentialStore, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("sql credential store: connect: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("sql credential store: ping: %w", err)
	}

	return &SQLCredentialStore{pool: pool, passwordSQL: passwordSQL}, nil
}

// Close releases the underlying connection pool.
func (s *SQLCredentialStore) Close() {
	s.pool.Close()
}

// PasswordFor implements CredentialStore.
func (s *SQLCredentialStore) PasswordFor(ctx context.Context, userName string) (string, error) {
	var password string

	err := s.pool.QueryRow(ctx, s.passwordSQL, userName).Scan(&password)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("sql credential store: query %s: %w", userName, err)
	}

	return password, nil
}
