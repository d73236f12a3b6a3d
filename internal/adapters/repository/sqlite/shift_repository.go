package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ogurasousui/shift-scheduler/internal/core/shift"
	sqlitedb "github.com/ogurasousui/shift-scheduler/internal/platform/db/sqlite"
)

// ShiftRepository は SQLite を利用したシフト永続化の実装です。
type ShiftRepository struct {
	db *sql.DB
}

// NewShiftRepository は ShiftRepository を生成します。
func NewShiftRepository(db *sql.DB) *ShiftRepository {
	return &ShiftRepository{db: db}
}

// Create はシフトを登録します。
func (r *ShiftRepository) Create(ctx context.Context, s *shift.Shift) (*shift.Shift, error) {
	q := sqlitedb.QueryerFromContext(ctx, r.db)
	if _, err := q.ExecContext(ctx,
		`INSERT INTO shifts (id, shift_date, start_time, end_time) VALUES (?, ?, ?, ?)`,
		s.ID, s.Date, s.StartTime, s.EndTime,
	); err != nil {
		if sqlitedb.IsUniqueViolation(err) {
			return nil, shift.ErrIDAlreadyExists
		}
		return nil, fmt.Errorf("sqlite: insert shift: %w", err)
	}
	created := *s
	return &created, nil
}

// FindByID は ID でシフトを取得します。
func (r *ShiftRepository) FindByID(ctx context.Context, id string) (*shift.Shift, error) {
	q := sqlitedb.QueryerFromContext(ctx, r.db)

	var s shift.Shift
	err := q.QueryRowContext(ctx,
		`SELECT id, shift_date, start_time, end_time FROM shifts WHERE id = ?`, id,
	).Scan(&s.ID, &s.Date, &s.StartTime, &s.EndTime)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, shift.ErrShiftNotFound
		}
		return nil, fmt.Errorf("sqlite: find shift: %w", err)
	}
	return &s, nil
}

// List はシフトを日付、開始時刻、ID の順に返します。
func (r *ShiftRepository) List(ctx context.Context) ([]*shift.Shift, error) {
	q := sqlitedb.QueryerFromContext(ctx, r.db)
	rows, err := q.QueryContext(ctx,
		`SELECT id, shift_date, start_time, end_time FROM shifts ORDER BY shift_date, start_time, id`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list shifts: %w", err)
	}
	defer rows.Close()

	shifts := make([]*shift.Shift, 0)
	for rows.Next() {
		var s shift.Shift
		if err := rows.Scan(&s.ID, &s.Date, &s.StartTime, &s.EndTime); err != nil {
			return nil, fmt.Errorf("sqlite: scan shift: %w", err)
		}
		shifts = append(shifts, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: list shifts: %w", err)
	}
	return shifts, nil
}
