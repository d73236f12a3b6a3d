package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/ogurasousui/shift-scheduler/internal/core/assignment"
	pgdb "github.com/ogurasousui/shift-scheduler/internal/platform/db/postgres"
)

// AssignmentRepository は PostgreSQL を利用した割り当て永続化の実装です。
// 一覧は追記順 (seq) で返します。
type AssignmentRepository struct {
	pool pgdb.Queryer
}

// NewAssignmentRepository は AssignmentRepository を生成します。
func NewAssignmentRepository(pool pgdb.Queryer) *AssignmentRepository {
	return &AssignmentRepository{pool: pool}
}

// Find は社員とシフトの組で割り当てを取得します。
func (r *AssignmentRepository) Find(ctx context.Context, employeeID, shiftID string) (*assignment.Assignment, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT employee_id, shift_id, assigned_at
          FROM assignments
         WHERE employee_id = $1 AND shift_id = $2
    `, employeeID, shiftID)

	found, err := scanAssignment(row)
	if err != nil {
		return nil, translateAssignmentPgError(err)
	}
	return found, nil
}

// ListAll は全ての割り当てを返します。
func (r *AssignmentRepository) ListAll(ctx context.Context) ([]*assignment.Assignment, error) {
	return r.list(ctx, `SELECT employee_id, shift_id, assigned_at FROM assignments ORDER BY seq`)
}

// ListByEmployee は社員の割り当てを返します。
func (r *AssignmentRepository) ListByEmployee(ctx context.Context, employeeID string) ([]*assignment.Assignment, error) {
	return r.list(ctx, `
        SELECT employee_id, shift_id, assigned_at
          FROM assignments
         WHERE employee_id = $1
         ORDER BY seq
    `, employeeID)
}

func (r *AssignmentRepository) list(ctx context.Context, query string, args ...any) ([]*assignment.Assignment, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, query, args...)
	if err != nil {
		return nil, translateAssignmentPgError(err)
	}
	defer rows.Close()

	result := make([]*assignment.Assignment, 0)
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, translateAssignmentPgError(err)
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, translateAssignmentPgError(err)
	}
	return result, nil
}

// Append は割り当てを追記します。
func (r *AssignmentRepository) Append(ctx context.Context, a *assignment.Assignment) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	if _, err := exec.Exec(ctx, `
        INSERT INTO assignments (employee_id, shift_id, assigned_at)
        VALUES ($1, $2, $3)
    `, a.EmployeeID, a.ShiftID, a.AssignedAt); err != nil {
		return translateAssignmentPgError(err)
	}
	return nil
}

func scanAssignment(row pgx.Row) (*assignment.Assignment, error) {
	var (
		a          assignment.Assignment
		assignedAt time.Time
	)
	if err := row.Scan(&a.EmployeeID, &a.ShiftID, &assignedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, assignment.ErrAssignmentNotFound
		}
		return nil, err
	}
	a.AssignedAt = assignedAt.UTC()
	return &a, nil
}

func translateAssignmentPgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return assignment.ErrAssignmentNotFound
	}

	code, constraint, ok := pgErrorCode(err)
	if !ok {
		return err
	}
	switch code {
	case uniqueViolationCode:
		return assignment.ErrAlreadyAssigned
	case foreignKeyViolationCode:
		switch constraint {
		case "assignments_employee_id_fkey":
			return fmt.Errorf("%w: %w", assignment.ErrEmployeeNotFound, err)
		case "assignments_shift_id_fkey":
			return fmt.Errorf("%w: %w", assignment.ErrShiftNotFound, err)
		}
	}
	return err
}
