package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ogurasousui/shift-scheduler/internal/core/employee"
	sqlitedb "github.com/ogurasousui/shift-scheduler/internal/platform/db/sqlite"
)

// EmployeeRepository は SQLite を利用した社員永続化の実装です。
// ID は id_counters の employee 行を同じトランザクション内で進めて採番します。
type EmployeeRepository struct {
	db *sql.DB
}

// NewEmployeeRepository は EmployeeRepository を生成します。
func NewEmployeeRepository(db *sql.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

// Create は採番した ID で社員を新規作成します。
func (r *EmployeeRepository) Create(ctx context.Context, e *employee.Employee) (*employee.Employee, error) {
	var created *employee.Employee
	err := withTx(ctx, r.db, func(q sqlitedb.Queryer) error {
		var seq int64
		if err := q.QueryRowContext(ctx,
			`UPDATE id_counters SET value = value + 1 WHERE name = 'employee' RETURNING value`,
		).Scan(&seq); err != nil {
			return fmt.Errorf("sqlite: allocate employee id: %w", err)
		}

		id := employee.FormatID(seq)
		if _, err := q.ExecContext(ctx,
			`INSERT INTO employees (id, name, phone) VALUES (?, ?, ?)`,
			id, e.Name, e.Phone,
		); err != nil {
			if sqlitedb.IsUniqueViolation(err) {
				return employee.ErrIDAlreadyExists
			}
			return fmt.Errorf("sqlite: insert employee: %w", err)
		}
		created = &employee.Employee{ID: id, Name: e.Name, Phone: e.Phone}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Update は氏名と電話番号を更新します。
func (r *EmployeeRepository) Update(ctx context.Context, e *employee.Employee) (*employee.Employee, error) {
	q := sqlitedb.QueryerFromContext(ctx, r.db)
	res, err := q.ExecContext(ctx, `UPDATE employees SET name = ?, phone = ? WHERE id = ?`, e.Name, e.Phone, e.ID)
	if err != nil {
		return nil, fmt.Errorf("sqlite: update employee: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, employee.ErrEmployeeNotFound
	}
	return &employee.Employee{ID: e.ID, Name: e.Name, Phone: e.Phone}, nil
}

// FindByID は ID で社員を取得します。
func (r *EmployeeRepository) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	q := sqlitedb.QueryerFromContext(ctx, r.db)

	var e employee.Employee
	err := q.QueryRowContext(ctx, `SELECT id, name, phone FROM employees WHERE id = ?`, id).Scan(&e.ID, &e.Name, &e.Phone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, employee.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("sqlite: find employee: %w", err)
	}
	return &e, nil
}

// List は社員を ID 順に返します。
func (r *EmployeeRepository) List(ctx context.Context) ([]*employee.Employee, error) {
	q := sqlitedb.QueryerFromContext(ctx, r.db)
	rows, err := q.QueryContext(ctx, `SELECT id, name, phone FROM employees ORDER BY length(id), id`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list employees: %w", err)
	}
	defer rows.Close()

	employees := make([]*employee.Employee, 0)
	for rows.Next() {
		var e employee.Employee
		if err := rows.Scan(&e.ID, &e.Name, &e.Phone); err != nil {
			return nil, fmt.Errorf("sqlite: scan employee: %w", err)
		}
		employees = append(employees, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: list employees: %w", err)
	}
	return employees, nil
}
