package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ogurasousui/shift-scheduler/internal/core/assignment"
	pgdb "github.com/ogurasousui/shift-scheduler/internal/platform/db/postgres"
)

// PolicyRepository は scheduling_policy の単一行を読み書きします。
// 値は呼び出しのたびに読み直し、プロセス内には保持しません。
type PolicyRepository struct {
	pool pgdb.Queryer
}

// NewPolicyRepository は PolicyRepository を生成します。
func NewPolicyRepository(pool pgdb.Queryer) *PolicyRepository {
	return &PolicyRepository{pool: pool}
}

// MaxDailyHours は現在の上限勤務時間を返します。
func (r *PolicyRepository) MaxDailyHours(ctx context.Context) (float64, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)

	var hours float64
	if err := exec.QueryRow(ctx, `SELECT max_daily_hours FROM scheduling_policy WHERE id = 1`).Scan(&hours); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("postgres: scheduling policy row is missing: %w", err)
		}
		return 0, err
	}
	return hours, nil
}

// SetMaxDailyHours は上限勤務時間を更新します。
func (r *PolicyRepository) SetMaxDailyHours(ctx context.Context, hours float64) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	if _, err := exec.Exec(ctx, `
        INSERT INTO scheduling_policy (id, max_daily_hours)
        VALUES (1, $1)
        ON CONFLICT (id) DO UPDATE SET max_daily_hours = EXCLUDED.max_daily_hours
    `, hours); err != nil {
		if code, _, ok := pgErrorCode(err); ok && code == checkViolationCode {
			return assignment.ErrInvalidMaxDailyHours
		}
		return err
	}
	return nil
}
