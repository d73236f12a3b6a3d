package filestore

import (
	"context"
	"time"

	"github.com/ogurasousui/shift-scheduler/internal/core/assignment"
)

type assignmentRecord struct {
	EmployeeID string     `json:"employeeId"`
	ShiftID    string     `json:"shiftId"`
	AssignedAt *time.Time `json:"assignedAt,omitempty"`
}

func (r assignmentRecord) toEntity() *assignment.Assignment {
	a := &assignment.Assignment{EmployeeID: r.EmployeeID, ShiftID: r.ShiftID}
	if r.AssignedAt != nil {
		a.AssignedAt = r.AssignedAt.UTC()
	}
	return a
}

// AssignmentRepository は assignments.json を使う割り当てリポジトリです。
type AssignmentRepository struct {
	store *Store
}

// NewAssignmentRepository は AssignmentRepository を生成します。
func NewAssignmentRepository(store *Store) *AssignmentRepository {
	return &AssignmentRepository{store: store}
}

// Find は社員とシフトの組を探します。
func (r *AssignmentRepository) Find(ctx context.Context, employeeID, shiftID string) (*assignment.Assignment, error) {
	var found *assignment.Assignment
	err := r.store.read(ctx, func() error {
		records, err := loadList[assignmentRecord](r.store, assignmentsFile)
		if err != nil {
			return err
		}
		for _, rec := range records {
			if rec.EmployeeID == employeeID && rec.ShiftID == shiftID {
				found = rec.toEntity()
				return nil
			}
		}
		return assignment.ErrAssignmentNotFound
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// ListAll は全ての割り当てを追記順に返します。
func (r *AssignmentRepository) ListAll(ctx context.Context) ([]*assignment.Assignment, error) {
	return r.filter(ctx, func(assignmentRecord) bool { return true })
}

// ListByEmployee は社員の割り当てを追記順に返します。
func (r *AssignmentRepository) ListByEmployee(ctx context.Context, employeeID string) ([]*assignment.Assignment, error) {
	return r.filter(ctx, func(rec assignmentRecord) bool { return rec.EmployeeID == employeeID })
}

func (r *AssignmentRepository) filter(ctx context.Context, keep func(assignmentRecord) bool) ([]*assignment.Assignment, error) {
	var result []*assignment.Assignment
	err := r.store.read(ctx, func() error {
		records, err := loadList[assignmentRecord](r.store, assignmentsFile)
		if err != nil {
			return err
		}
		result = make([]*assignment.Assignment, 0, len(records))
		for _, rec := range records {
			if keep(rec) {
				result = append(result, rec.toEntity())
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Append は割り当てを末尾に追記します。
func (r *AssignmentRepository) Append(ctx context.Context, a *assignment.Assignment) error {
	return r.store.write(ctx, func() error {
		records, err := loadList[assignmentRecord](r.store, assignmentsFile)
		if err != nil {
			return err
		}
		for _, rec := range records {
			if rec.EmployeeID == a.EmployeeID && rec.ShiftID == a.ShiftID {
				return assignment.ErrAlreadyAssigned
			}
		}

		rec := assignmentRecord{EmployeeID: a.EmployeeID, ShiftID: a.ShiftID}
		if !a.AssignedAt.IsZero() {
			at := a.AssignedAt.UTC()
			rec.AssignedAt = &at
		}
		return saveList(r.store, assignmentsFile, append(records, rec))
	})
}
