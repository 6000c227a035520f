package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"mcu_control/internal/models"

	"github.com/google/uuid"
)

const sqliteTimeLayout = "2006-01-02 15:04:05.000"

type EventSQLite struct {
	db *sql.DB
}

func NewEventSQLite(db *sql.DB) *EventSQLite { return &EventSQLite{db: db} }

var _ EventRepo = (*EventSQLite)(nil)

const insertEventSQL = `INSERT INTO actuator_events (id, occurred_at, type, message, meta) VALUES (?, ?, ?, ?, ?)`

// Append inserts a journal entry, filling in EventID and OccurredAt if empty.
func (r *EventSQLite) Append(ctx context.Context, e models.ActuatorEvent) error {
	if e.EventID == "" {
		e.EventID = uuid.NewString()
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now()
	}

	var meta *string
	if e.Metadata != nil {
		b, err := json.Marshal(e.Metadata)
		if err != nil {
			return fmt.Errorf("marshal metadata for %s: %w", e.EventID, err)
		}
		s := string(b)
		meta = &s
	}

	_, err := r.db.ExecContext(ctx, insertEventSQL,
		e.EventID,
		e.OccurredAt.UTC().Format(sqliteTimeLayout),
		strings.ToUpper(strings.TrimSpace(e.Type)),
		e.Description,
		meta,
	)
	if err != nil {
		return fmt.Errorf("insert actuator event: %w", err)
	}
	return nil
}

// List returns entries matching q ordered by time ascending.
func (r *EventSQLite) List(ctx context.Context, q EventQuery) ([]models.ActuatorEvent, error) {
	var (
		conds []string
		args  []any
	)
	if !q.From.IsZero() {
		conds = append(conds, "occurred_at >= ?")
		args = append(args, q.From.UTC().Format(sqliteTimeLayout))
	}
	if !q.To.IsZero() {
		conds = append(conds, "occurred_at <= ?")
		args = append(args, q.To.UTC().Format(sqliteTimeLayout))
	}
	if typ := strings.ToUpper(strings.TrimSpace(q.Type)); typ != "" {
		conds = append(conds, "type = ?")
		args = append(args, typ)
	}

	stmt := `SELECT id, occurred_at, type, message, meta FROM actuator_events`
	if len(conds) > 0 {
		stmt += " WHERE " + strings.Join(conds, " AND ")
	}
	if q.Limit > 0 {
		stmt = `SELECT * FROM (` + stmt + ` ORDER BY occurred_at DESC LIMIT ?) ORDER BY occurred_at ASC`
		args = append(args, q.Limit)
	} else {
		stmt += " ORDER BY occurred_at ASC"
	}

	rows, err := r.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query actuator events: %w", err)
	}
	defer rows.Close()

	out := make([]models.ActuatorEvent, 0, 64)
	for rows.Next() {
		var (
			ev   models.ActuatorEvent
			at   string
			meta sql.NullString
		)
		if err := rows.Scan(&ev.EventID, &at, &ev.Type, &ev.Description, &meta); err != nil {
			return nil, fmt.Errorf("scan actuator event: %w", err)
		}
		if ev.OccurredAt, err = time.ParseInLocation(sqliteTimeLayout, at, time.UTC); err != nil {
			return nil, fmt.Errorf("parse occurred_at %q: %w", at, err)
		}
		if meta.Valid && meta.String != "" {
			var v any
			if err := json.Unmarshal([]byte(meta.String), &v); err == nil {
				ev.Metadata = v
			} else {
				ev.Metadata = meta.String
			}
		}
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
