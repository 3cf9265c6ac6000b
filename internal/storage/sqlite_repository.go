package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteTimeLayout = time.RFC3339Nano

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

func OpenSQLite(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteRepository) DB() *sql.DB {
	return r.db
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) SyncEvents(ctx context.Context, events []Event, rules []SpawnRule) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	keep := make([]any, 0, len(events))
	for _, ev := range events {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO events (id, name, created_at) VALUES (?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET name = excluded.name`,
			ev.ID, ev.Name, mustTime(ev.CreatedAt),
		); err != nil {
			return err
		}
		keep = append(keep, ev.ID)
	}

	if len(keep) == 0 {
		if _, err := tx.ExecContext(ctx, `DELETE FROM events`); err != nil {
			return err
		}
	} else {
		query := `DELETE FROM events WHERE id NOT IN (?` + repeatPlaceholder(len(keep)-1) + `)`
		if _, err := tx.ExecContext(ctx, query, keep...); err != nil {
			return err
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM spawn_rules`); err != nil {
		return err
	}
	for _, rule := range rules {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO spawn_rules (event_id, position, day, hour, minute)
			VALUES (?, ?, ?, ?, ?)`,
			rule.EventID, rule.Position, rule.Day, rule.Hour, rule.Minute,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *SQLiteRepository) ListEvents(ctx context.Context) ([]Event, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, created_at FROM events ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Event, 0)
	for rows.Next() {
		var ev Event
		var created string
		if err := rows.Scan(&ev.ID, &ev.Name, &created); err != nil {
			return nil, err
		}
		createdAt, err := time.Parse(sqliteTimeLayout, created)
		if err != nil {
			return nil, err
		}
		ev.CreatedAt = createdAt
		out = append(out, ev)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) ListRules(ctx context.Context, eventID string) ([]SpawnRule, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT event_id, position, day, hour, minute
		FROM spawn_rules WHERE event_id = ? ORDER BY position ASC`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]SpawnRule, 0)
	for rows.Next() {
		var rule SpawnRule
		if err := rows.Scan(&rule.EventID, &rule.Position, &rule.Day, &rule.Hour, &rule.Minute); err != nil {
			return nil, err
		}
		out = append(out, rule)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) SaveActivation(ctx context.Context, events map[string]bool, thresholds map[int]bool) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM activation_events`); err != nil {
		return err
	}
	for id, enabled := range events {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO activation_events (event_id, enabled) VALUES (?, ?)`,
			id, boolInt(enabled),
		); err != nil {
			return err
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM activation_thresholds`); err != nil {
		return err
	}
	for minutes, enabled := range thresholds {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO activation_thresholds (minutes, enabled) VALUES (?, ?)`,
			minutes, boolInt(enabled),
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *SQLiteRepository) LoadActivation(ctx context.Context) (map[string]bool, map[int]bool, error) {
	events := make(map[string]bool)
	thresholds := make(map[int]bool)

	rows, err := r.db.QueryContext(ctx, `SELECT event_id, enabled FROM activation_events`)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var id string
		var enabled int
		if err := rows.Scan(&id, &enabled); err != nil {
			return nil, nil, err
		}
		events[id] = enabled == 1
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	trows, err := r.db.QueryContext(ctx, `SELECT minutes, enabled FROM activation_thresholds`)
	if err != nil {
		return nil, nil, err
	}
	defer trows.Close()
	for trows.Next() {
		var minutes, enabled int
		if err := trows.Scan(&minutes, &enabled); err != nil {
			return nil, nil, err
		}
		thresholds[minutes] = enabled == 1
	}
	return events, thresholds, trows.Err()
}

func mustTime(v time.Time) string {
	return v.UTC().Format(sqliteTimeLayout)
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

func repeatPlaceholder(n int) string {
	out := ""
	for i := 0; i < n; i++ {
		out += ", ?"
	}
	return out
}
