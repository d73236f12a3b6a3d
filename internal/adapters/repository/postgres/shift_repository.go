package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/ogurasousui/shift-scheduler/internal/core/shift"
	pgdb "github.com/ogurasousui/shift-scheduler/internal/platform/db/postgres"
)

// ShiftRepository は PostgreSQL を利用したシフト永続化の実装です。
// 日付と時刻は入力どおりの文字列で保存し、比較も文字列で行います。
type ShiftRepository struct {
	pool pgdb.Queryer
}

// NewShiftRepository は ShiftRepository を生成します。
func NewShiftRepository(pool pgdb.Queryer) *ShiftRepository {
	return &ShiftRepository{pool: pool}
}

// Create はシフトを登録します。
func (r *ShiftRepository) Create(ctx context.Context, s *shift.Shift) (*shift.Shift, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        INSERT INTO shifts (id, shift_date, start_time, end_time)
        VALUES ($1, $2, $3, $4)
        RETURNING id, shift_date, start_time, end_time
    `, s.ID, s.Date, s.StartTime, s.EndTime)

	created, err := scanShift(row)
	if err != nil {
		return nil, translateShiftPgError(err)
	}
	return created, nil
}

// FindByID は ID でシフトを取得します。
func (r *ShiftRepository) FindByID(ctx context.Context, id string) (*shift.Shift, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `SELECT id, shift_date, start_time, end_time FROM shifts WHERE id = $1`, id)

	found, err := scanShift(row)
	if err != nil {
		return nil, translateShiftPgError(err)
	}
	return found, nil
}

// List はシフトを日付、開始時刻、ID の順に返します。
func (r *ShiftRepository) List(ctx context.Context) ([]*shift.Shift, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, `
        SELECT id, shift_date, start_time, end_time
          FROM shifts
         ORDER BY shift_date, start_time, id
    `)
	if err != nil {
		return nil, translateShiftPgError(err)
	}
	defer rows.Close()

	shifts := make([]*shift.Shift, 0)
	for rows.Next() {
		s, err := scanShift(rows)
		if err != nil {
			return nil, translateShiftPgError(err)
		}
		shifts = append(shifts, s)
	}
	if err := rows.Err(); err != nil {
		return nil, translateShiftPgError(err)
	}
	return shifts, nil
}

func scanShift(row pgx.Row) (*shift.Shift, error) {
	var s shift.Shift
	if err := row.Scan(&s.ID, &s.Date, &s.StartTime, &s.EndTime); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shift.ErrShiftNotFound
		}
		return nil, err
	}
	return &s, nil
}

func translateShiftPgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return shift.ErrShiftNotFound
	}

	code, constraint, ok := pgErrorCode(err)
	if !ok {
		return err
	}
	switch code {
	case uniqueViolationCode:
		return shift.ErrIDAlreadyExists
	case checkViolationCode:
		if constraint == "shifts_time_range_check" {
			return shift.ErrInvalidTimeRange
		}
		return shift.ErrInvalidTime
	}
	return err
}
