package risk

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
)

// PostgresStore persists risk events in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a PostgreSQL-backed risk event store.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Migrate creates the risk_events table if it doesn't exist.
// The real schema lives in migrations/; this keeps demo setups working.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS risk_events (
			id          BIGSERIAL PRIMARY KEY,
			user_id     TEXT NOT NULL,
			source      TEXT NOT NULL,
			content     TEXT NOT NULL,
			risk_level  VARCHAR(10) NOT NULL CHECK (risk_level IN ('low', 'moderate', 'high')),
			risk_score  DOUBLE PRECISION NOT NULL CHECK (risk_score >= 0 AND risk_score <= 1),
			sentiment   DOUBLE PRECISION NOT NULL CHECK (sentiment >= -1 AND sentiment <= 1),
			keywords    TEXT,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_risk_events_created
			ON risk_events (created_at DESC);

		CREATE INDEX IF NOT EXISTS idx_risk_events_level
			ON risk_events (risk_level, created_at DESC);
	`)
	return err
}

func (s *PostgresStore) Record(ctx context.Context, event *Event) error {
	var keywords sql.NullString
	if event.Keywords != "" {
		keywords = sql.NullString{String: event.Keywords, Valid: true}
	}

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO risk_events (user_id, source, content, risk_level, risk_score, sentiment, keywords)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`,
		event.UserID,
		event.Source,
		event.Content,
		string(event.RiskLevel),
		event.RiskScore,
		event.Sentiment,
		keywords,
	).Scan(&event.ID, &event.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to record risk event: %w", err)
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context, opts ListOptions) ([]*Event, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}

	query := `
		SELECT id, user_id, source, content, risk_level, risk_score, sentiment, keywords, created_at
		FROM risk_events
	`
	args := []interface{}{}

	if opts.MinLevel != "" {
		allowed := make([]string, 0, 3)
		for _, l := range []Level{LevelLow, LevelModerate, LevelHigh} {
			if l.AtLeast(opts.MinLevel) {
				allowed = append(allowed, string(l))
			}
		}
		query += ` WHERE risk_level = ANY($1) ORDER BY created_at DESC, id DESC LIMIT $2`
		args = append(args, pq.Array(allowed), limit)
	} else {
		query += ` ORDER BY created_at DESC, id DESC LIMIT $1`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list risk events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var result []*Event
	for rows.Next() {
		var e Event
		var keywords sql.NullString
		if err := rows.Scan(&e.ID, &e.UserID, &e.Source, &e.Content, &e.RiskLevel,
			&e.RiskScore, &e.Sentiment, &keywords, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan risk event: %w", err)
		}
		e.Keywords = keywords.String
		result = append(result, &e)
	}
	return result, rows.Err()
}
