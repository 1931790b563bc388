package audit

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Result values recorded for an action.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

// Entry is one dispatched action.
type Entry struct {
	ID        int64
	Timestamp time.Time
	TraceID   string
	EntityID  string
	Action    string
	Result    string
	Error     string
}

// Record appends e to the trail. A zero Timestamp is set to now.
func (s *Store) Record(ctx context.Context, e Entry) error {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
	var errMsg sql.NullString
	if e.Error != "" {
		errMsg = sql.NullString{String: e.Error, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO action_log (ts, trace_id, entity_id, action, result, error)
		VALUES (?, ?, ?, ?, ?, ?)
	`, e.Timestamp, e.TraceID, e.EntityID, e.Action, e.Result, errMsg)
	if err != nil {
		return fmt.Errorf("write action log: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first. limit <= 0 means 100.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, ts, trace_id, entity_id, action, result, error
		FROM action_log
		ORDER BY ts DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query action log: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var errMsg sql.NullString
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.TraceID, &e.EntityID, &e.Action, &e.Result, &errMsg); err != nil {
			return nil, fmt.Errorf("scan action log: %w", err)
		}
		e.Error = errMsg.String
		out = append(out, e)
	}
	return out, rows.Err()
}
