package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ogurasousui/shift-scheduler/internal/core/assignment"
	sqlitedb "github.com/ogurasousui/shift-scheduler/internal/platform/db/sqlite"
)

// AssignmentRepository は SQLite を利用した割り当て永続化の実装です。
// assigned_at は UTC のミリ秒で保存し、一覧は追記順で返します。
type AssignmentRepository struct {
	db *sql.DB
}

// NewAssignmentRepository は AssignmentRepository を生成します。
func NewAssignmentRepository(db *sql.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

// Find は社員とシフトの組で割り当てを取得します。
func (r *AssignmentRepository) Find(ctx context.Context, employeeID, shiftID string) (*assignment.Assignment, error) {
	q := sqlitedb.QueryerFromContext(ctx, r.db)

	var (
		a        assignment.Assignment
		assigned int64
	)
	err := q.QueryRowContext(ctx,
		`SELECT employee_id, shift_id, assigned_at FROM assignments WHERE employee_id = ? AND shift_id = ?`,
		employeeID, shiftID,
	).Scan(&a.EmployeeID, &a.ShiftID, &assigned)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, assignment.ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("sqlite: find assignment: %w", err)
	}
	a.AssignedAt = fromMillis(assigned)
	return &a, nil
}

// ListAll は全ての割り当てを返します。
func (r *AssignmentRepository) ListAll(ctx context.Context) ([]*assignment.Assignment, error) {
	return r.list(ctx, `SELECT employee_id, shift_id, assigned_at FROM assignments ORDER BY seq`)
}

// ListByEmployee は社員の割り当てを返します。
func (r *AssignmentRepository) ListByEmployee(ctx context.Context, employeeID string) ([]*assignment.Assignment, error) {
	return r.list(ctx,
		`SELECT employee_id, shift_id, assigned_at FROM assignments WHERE employee_id = ? ORDER BY seq`,
		employeeID)
}

func (r *AssignmentRepository) list(ctx context.Context, query string, args ...any) ([]*assignment.Assignment, error) {
	q := sqlitedb.QueryerFromContext(ctx, r.db)
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list assignments: %w", err)
	}
	defer rows.Close()

	result := make([]*assignment.Assignment, 0)
	for rows.Next() {
		var (
			a        assignment.Assignment
			assigned int64
		)
		if err := rows.Scan(&a.EmployeeID, &a.ShiftID, &assigned); err != nil {
			return nil, fmt.Errorf("sqlite: scan assignment: %w", err)
		}
		a.AssignedAt = fromMillis(assigned)
		result = append(result, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: list assignments: %w", err)
	}
	return result, nil
}

// Append は割り当てを追記します。
func (r *AssignmentRepository) Append(ctx context.Context, a *assignment.Assignment) error {
	return withTx(ctx, r.db, func(q sqlitedb.Queryer) error {
		var seq int64
		if err := q.QueryRowContext(ctx,
			`UPDATE id_counters SET value = value + 1 WHERE name = 'assignment' RETURNING value`,
		).Scan(&seq); err != nil {
			return fmt.Errorf("sqlite: allocate assignment seq: %w", err)
		}

		if _, err := q.ExecContext(ctx,
			`INSERT INTO assignments (employee_id, shift_id, assigned_at, seq) VALUES (?, ?, ?, ?)`,
			a.EmployeeID, a.ShiftID, toMillis(a.AssignedAt), seq,
		); err != nil {
			switch {
			case sqlitedb.IsUniqueViolation(err):
				return assignment.ErrAlreadyAssigned
			case sqlitedb.IsForeignKeyViolation(err):
				return fmt.Errorf("sqlite: assignment references a missing employee or shift: %w", err)
			}
			return fmt.Errorf("sqlite: insert assignment: %w", err)
		}
		return nil
	})
}

func toMillis(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

func fromMillis(v int64) time.Time {
	return time.UnixMilli(v).UTC()
}
