package store

import (
	"context"
	"database/sql"
	"fmt"

	"attrisk/pkg/platform/audit"
)

// Postgres persists audit events in PostgreSQL.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) Append(ctx context.Context, event audit.Event) error {
	query := `
		INSERT INTO audit_events (occurred_at, category, action, username, request_id, client_ip, user_agent, detail)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(ctx, query,
		event.Timestamp, string(event.Category), event.Action,
		event.Username, event.RequestID, event.ClientIP, event.UserAgent, event.Detail,
	)
	if err != nil {
		return fmt.Errorf("append audit event: %w", err)
	}
	return nil
}
