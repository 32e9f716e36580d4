package journal

import (
	"context"
	"database/sql"
	"fmt"
)

// Compile-time check that PostgresStore implements Store.
var _ Store = (*PostgresStore)(nil)

// PostgresStore implements Store backed by PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a new PostgreSQL-backed journal store.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Migrate creates the journal tables if they don't exist.
func (p *PostgresStore) Migrate(ctx context.Context) error {
	_, err := p.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS journal_entries (
			id          BIGSERIAL PRIMARY KEY,
			user_id     VARCHAR(128) NOT NULL,
			title       TEXT NOT NULL,
			content     TEXT NOT NULL,
			tags        TEXT,
			risk_score  DOUBLE PRECISION NOT NULL DEFAULT 0,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_journal_entries_user ON journal_entries(user_id);
		CREATE INDEX IF NOT EXISTS idx_journal_entries_risk ON journal_entries(risk_score);

		CREATE TABLE IF NOT EXISTS mood_logs (
			id          BIGSERIAL PRIMARY KEY,
			user_id     VARCHAR(128) NOT NULL,
			mood        VARCHAR(64) NOT NULL,
			intensity   INT NOT NULL CHECK (intensity BETWEEN 1 AND 10),
			notes       TEXT,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_mood_logs_user ON mood_logs(user_id);

		CREATE TABLE IF NOT EXISTS goals (
			id           BIGSERIAL PRIMARY KEY,
			user_id      VARCHAR(128) NOT NULL,
			description  TEXT NOT NULL,
			status       VARCHAR(20) NOT NULL DEFAULT 'in_progress',
			target_date  TIMESTAMPTZ,
			created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (user_id, description)
		);
		CREATE INDEX IF NOT EXISTS idx_goals_user ON goals(user_id);
	`)
	return err
}

func (p *PostgresStore) CreateEntry(ctx context.Context, entry *Entry) error {
	tags := sql.NullString{String: entry.Tags, Valid: entry.Tags != ""}

	err := p.db.QueryRowContext(ctx, `
		INSERT INTO journal_entries (user_id, title, content, tags, risk_score)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, entry.UserID, entry.Title, entry.Content, tags, entry.RiskScore).
		Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert journal entry: %w", err)
	}
	return nil
}

func (p *PostgresStore) ListEntries(ctx context.Context, userID string) ([]*Entry, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT id, user_id, title, content, tags, risk_score, created_at
		FROM journal_entries
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list journal entries: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

func (p *PostgresStore) ListHighRisk(ctx context.Context, threshold float64) ([]*Entry, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT id, user_id, title, content, tags, risk_score, created_at
		FROM journal_entries
		WHERE risk_score >= $1
		ORDER BY created_at DESC, id DESC
	`, threshold)
	if err != nil {
		return nil, fmt.Errorf("list high risk entries: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]*Entry, error) {
	entries := make([]*Entry, 0)
	for rows.Next() {
		var e Entry
		var tags sql.NullString
		if err := rows.Scan(&e.ID, &e.UserID, &e.Title, &e.Content, &tags, &e.RiskScore, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan journal entry: %w", err)
		}
		e.Tags = tags.String
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}

func (p *PostgresStore) LogMood(ctx context.Context, log *MoodLog) error {
	notes := sql.NullString{String: log.Notes, Valid: log.Notes != ""}

	err := p.db.QueryRowContext(ctx, `
		INSERT INTO mood_logs (user_id, mood, intensity, notes)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, log.UserID, log.Mood, log.Intensity, notes).
		Scan(&log.ID, &log.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert mood log: %w", err)
	}
	return nil
}

func (p *PostgresStore) ListMoods(ctx context.Context, userID string) ([]*MoodLog, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT id, user_id, mood, intensity, notes, created_at
		FROM mood_logs
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list mood logs: %w", err)
	}
	defer rows.Close()

	logs := make([]*MoodLog, 0)
	for rows.Next() {
		var m MoodLog
		var notes sql.NullString
		if err := rows.Scan(&m.ID, &m.UserID, &m.Mood, &m.Intensity, &notes, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan mood log: %w", err)
		}
		m.Notes = notes.String
		logs = append(logs, &m)
	}
	return logs, rows.Err()
}

func (p *PostgresStore) UpsertGoal(ctx context.Context, goal *Goal) error {
	var target sql.NullTime
	if goal.TargetDate != nil {
		target = sql.NullTime{Time: *goal.TargetDate, Valid: true}
	}

	err := p.db.QueryRowContext(ctx, `
		INSERT INTO goals (user_id, description, status, target_date)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, description) DO UPDATE
		SET status = EXCLUDED.status,
		    target_date = EXCLUDED.target_date,
		    updated_at = NOW()
		RETURNING id, created_at, updated_at
	`, goal.UserID, goal.Description, goal.Status, target).
		Scan(&goal.ID, &goal.CreatedAt, &goal.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert goal: %w", err)
	}
	return nil
}

func (p *PostgresStore) ListGoals(ctx context.Context, userID string) ([]*Goal, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT id, user_id, description, status, target_date, created_at, updated_at
		FROM goals
		WHERE user_id = $1
		ORDER BY created_at ASC, id ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	defer rows.Close()

	goals := make([]*Goal, 0)
	for rows.Next() {
		var g Goal
		var target sql.NullTime
		if err := rows.Scan(&g.ID, &g.UserID, &g.Description, &g.Status, &target, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan goal: %w", err)
		}
		if target.Valid {
			t := target.Time
			g.TargetDate = &t
		}
		goals = append(goals, &g)
	}
	return goals, rows.Err()
}
