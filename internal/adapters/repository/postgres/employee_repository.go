package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ogurasousui/shift-scheduler/internal/core/employee"
	pgdb "github.com/ogurasousui/shift-scheduler/internal/platform/db/postgres"
)

// EmployeeRepository は PostgreSQL を利用した社員永続化の実装です。
// ID は employee_id_seq から採番するため、同時に作成しても重複しません。
type EmployeeRepository struct {
	pool pgdb.Queryer
}

// NewEmployeeRepository は EmployeeRepository を生成します。
func NewEmployeeRepository(pool pgdb.Queryer) *EmployeeRepository {
	return &EmployeeRepository{pool: pool}
}

// Create は採番した ID で社員を新規作成します。
func (r *EmployeeRepository) Create(ctx context.Context, e *employee.Employee) (*employee.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)

	var seq int64
	if err := exec.QueryRow(ctx, `SELECT nextval('employee_id_seq')`).Scan(&seq); err != nil {
		return nil, fmt.Errorf("postgres: allocate employee id: %w", err)
	}

	row := exec.QueryRow(ctx, `
        INSERT INTO employees (id, name, phone)
        VALUES ($1, $2, $3)
        RETURNING id, name, phone
    `, employee.FormatID(seq), e.Name, e.Phone)

	created, err := scanEmployee(row)
	if err != nil {
		return nil, translateEmployeePgError(err)
	}
	return created, nil
}

// Update は氏名と電話番号を更新します。
func (r *EmployeeRepository) Update(ctx context.Context, e *employee.Employee) (*employee.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        UPDATE employees
           SET name = $1,
               phone = $2
         WHERE id = $3
        RETURNING id, name, phone
    `, e.Name, e.Phone, e.ID)

	updated, err := scanEmployee(row)
	if err != nil {
		return nil, translateEmployeePgError(err)
	}
	return updated, nil
}

// FindByID は ID で社員を取得します。
func (r *EmployeeRepository) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `SELECT id, name, phone FROM employees WHERE id = $1`, id)

	found, err := scanEmployee(row)
	if err != nil {
		return nil, translateEmployeePgError(err)
	}
	return found, nil
}

// List は社員を ID 順に返します。
func (r *EmployeeRepository) List(ctx context.Context) ([]*employee.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, `SELECT id, name, phone FROM employees ORDER BY length(id), id`)
	if err != nil {
		return nil, translateEmployeePgError(err)
	}
	defer rows.Close()

	employees := make([]*employee.Employee, 0)
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, translateEmployeePgError(err)
		}
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, translateEmployeePgError(err)
	}
	return employees, nil
}

func scanEmployee(row pgx.Row) (*employee.Employee, error) {
	var e employee.Employee
	if err := row.Scan(&e.ID, &e.Name, &e.Phone); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, employee.ErrEmployeeNotFound
		}
		return nil, err
	}
	return &e, nil
}

func translateEmployeePgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return employee.ErrEmployeeNotFound
	}

	code, constraint, ok := pgErrorCode(err)
	if !ok {
		return err
	}
	switch code {
	case uniqueViolationCode:
		return employee.ErrIDAlreadyExists
	case checkViolationCode:
		if constraint == "employees_phone_check" {
			return employee.ErrInvalidPhone
		}
		return employee.ErrInvalidName
	}
	return err
}
