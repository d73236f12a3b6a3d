package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ogurasousui/shift-scheduler/internal/core/assignment"
	sqlitedb "github.com/ogurasousui/shift-scheduler/internal/platform/db/sqlite"
)

// PolicyRepository は scheduling_policy の単一行を読み書きします。
type PolicyRepository struct {
	db *sql.DB
}

// NewPolicyRepository は PolicyRepository を生成します。
func NewPolicyRepository(db *sql.DB) *PolicyRepository {
	return &PolicyRepository{db: db}
}

// MaxDailyHours は現在の上限勤務時間を返します。
func (r *PolicyRepository) MaxDailyHours(ctx context.Context) (float64, error) {
	q := sqlitedb.QueryerFromContext(ctx, r.db)

	var hours float64
	if err := q.QueryRowContext(ctx, `SELECT max_daily_hours FROM scheduling_policy WHERE id = 1`).Scan(&hours); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("sqlite: scheduling policy row is missing: %w", err)
		}
		return 0, fmt.Errorf("sqlite: read policy: %w", err)
	}
	return hours, nil
}

// SetMaxDailyHours は上限勤務時間を更新します。
func (r *PolicyRepository) SetMaxDailyHours(ctx context.Context, hours float64) error {
	q := sqlitedb.QueryerFromContext(ctx, r.db)
	if _, err := q.ExecContext(ctx,
		`INSERT INTO scheduling_policy (id, max_daily_hours) VALUES (1, ?)
		 ON CONFLICT (id) DO UPDATE SET max_daily_hours = excluded.max_daily_hours`,
		hours,
	); err != nil {
		if sqlitedb.IsCheckViolation(err) {
			return assignment.ErrInvalidMaxDailyHours
		}
		return fmt.Errorf("sqlite: write policy: %w", err)
	}
	return nil
}
