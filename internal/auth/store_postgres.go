package auth

import (
	"context"
	"database/sql"
	"fmt"

	"attrisk/pkg/platform/sentinel"
)

// PostgresStore persists credentials in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed credential store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) FindByUsername(ctx context.Context, username string) (Credential, error) {
	query := `
		SELECT username, password_hash, created_at, updated_at
		FROM credentials
		WHERE username = $1
	`
	var cred Credential
	err := s.db.QueryRowContext(ctx, query, username).
		Scan(&cred.Username, &cred.PasswordHash, &cred.CreatedAt, &cred.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return Credential{}, sentinel.ErrNotFound
		}
		return Credential{}, fmt.Errorf("find credential: %w", err)
	}
	return cred, nil
}

func (s *PostgresStore) Upsert(ctx context.Context, cred Credential) error {
	query := `
		INSERT INTO credentials (username, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (username) DO UPDATE SET
			password_hash = EXCLUDED.password_hash,
			updated_at = EXCLUDED.updated_at
	`
	_, err := s.db.ExecContext(ctx, query,
		cred.Username, cred.PasswordHash, cred.CreatedAt, cred.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert credential: %w", err)
	}
	return nil
}
