package history

import (
	"context"
	"database/sql"
	"fmt"

	"attrisk/internal/scoring"
)

// PostgresStore persists history records in PostgreSQL. Each call uses one
// pooled connection for the single statement it runs; no transaction spans
// the HTTP response.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed history store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Append(ctx context.Context, record *Record) error {
	if record == nil {
		return fmt.Errorf("history record is required")
	}
	query := `
		INSERT INTO predictions_history (
			id, created_at,
			age, revenu_mensuel, distance_domicile_travail, satisfaction_environnement,
			heures_supp, annees_promo, satisfaction_equilibre, pee,
			poste_actuel, anciennete, exp_totale,
			prediction, probability
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	_, err := s.db.ExecContext(ctx, query,
		record.ID, record.CreatedAt,
		record.Input.Age, record.Input.MonthlyIncome, record.Input.CommuteDistance,
		record.Input.EnvironmentSatisfaction, record.Input.Overtime,
		record.Input.YearsSincePromotion, record.Input.WorkLifeBalance,
		record.Input.SavingsPlanCount, record.Input.YearsInRole,
		record.Input.YearsAtCompany, record.Input.TotalExperience,
		record.Result.Prediction, record.Result.Probability,
	)
	if err != nil {
		return fmt.Errorf("append history record: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListRecent(ctx context.Context, limit int) ([]*Record, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive")
	}
	query := `
		SELECT id, created_at,
			age, revenu_mensuel, distance_domicile_travail, satisfaction_environnement,
			heures_supp, annees_promo, satisfaction_equilibre, pee,
			poste_actuel, anciennete, exp_totale,
			prediction, probability
		FROM predictions_history
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list history records: %w", err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history records: %w", err)
	}
	return records, nil
}

func scanRecord(rows *sql.Rows) (*Record, error) {
	var (
		record scoring.EmployeeRecord
		result scoring.ScoreResult
		r      Record
	)
	err := rows.Scan(
		&r.ID, &r.CreatedAt,
		&record.Age, &record.MonthlyIncome, &record.CommuteDistance,
		&record.EnvironmentSatisfaction, &record.Overtime,
		&record.YearsSincePromotion, &record.WorkLifeBalance,
		&record.SavingsPlanCount, &record.YearsInRole,
		&record.YearsAtCompany, &record.TotalExperience,
		&result.Prediction, &result.Probability,
	)
	if err != nil {
		return nil, fmt.Errorf("scan history record: %w", err)
	}
	r.Input = record
	r.Result = result
	return &r, nil
}
