package filestore

import (
	"context"

	"github.com/ogurasousui/shift-scheduler/internal/core/employee"
)

type employeeRecord struct {
	EmployeeID string `json:"employeeId"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
}

func (r employeeRecord) toEntity() *employee.Employee {
	return &employee.Employee{ID: r.EmployeeID, Name: r.Name, Phone: r.Phone}
}

// EmployeeRepository は employees.json を使う社員リポジトリです。
// ID は既存 ID の最大値に 1 を足して採番します。
type EmployeeRepository struct {
	store *Store
}

// NewEmployeeRepository は EmployeeRepository を生成します。
func NewEmployeeRepository(store *Store) *EmployeeRepository {
	return &EmployeeRepository{store: store}
}

// Create は採番した ID で社員を追加します。
func (r *EmployeeRepository) Create(ctx context.Context, e *employee.Employee) (*employee.Employee, error) {
	var created *employee.Employee
	err := r.store.write(ctx, func() error {
		records, err := loadList[employeeRecord](r.store, employeesFile)
		if err != nil {
			return err
		}

		ids := make([]string, 0, len(records))
		for _, rec := range records {
			ids = append(ids, rec.EmployeeID)
		}
		rec := employeeRecord{EmployeeID: employee.NextID(ids), Name: e.Name, Phone: e.Phone}

		if err := saveList(r.store, employeesFile, append(records, rec)); err != nil {
			return err
		}
		created = rec.toEntity()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Update は氏名と電話番号を置き換えます。
func (r *EmployeeRepository) Update(ctx context.Context, e *employee.Employee) (*employee.Employee, error) {
	var updated *employee.Employee
	err := r.store.write(ctx, func() error {
		records, err := loadList[employeeRecord](r.store, employeesFile)
		if err != nil {
			return err
		}
		for i := range records {
			if records[i].EmployeeID != e.ID {
				continue
			}
			records[i].Name = e.Name
			records[i].Phone = e.Phone
			if err := saveList(r.store, employeesFile, records); err != nil {
				return err
			}
			updated = records[i].toEntity()
			return nil
		}
		return employee.ErrEmployeeNotFound
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// FindByID は ID で社員を探します。
func (r *EmployeeRepository) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	var found *employee.Employee
	err := r.store.read(ctx, func() error {
		records, err := loadList[employeeRecord](r.store, employeesFile)
		if err != nil {
			return err
		}
		for _, rec := range records {
			if rec.EmployeeID == id {
				found = rec.toEntity()
				return nil
			}
		}
		return employee.ErrEmployeeNotFound
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// List はファイルの並び順で社員を返します。
func (r *EmployeeRepository) List(ctx context.Context) ([]*employee.Employee, error) {
	var employees []*employee.Employee
	err := r.store.read(ctx, func() error {
		records, err := loadList[employeeRecord](r.store, employeesFile)
		if err != nil {
			return err
		}
		employees = make([]*employee.Employee, 0, len(records))
		for _, rec := range records {
			employees = append(employees, rec.toEntity())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return employees, nil
}
