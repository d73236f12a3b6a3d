package filestore

import (
	"context"

	"github.com/ogurasousui/shift-scheduler/internal/core/shift"
)

type shiftRecord struct {
	ShiftID   string `json:"shiftId"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

func (r shiftRecord) toEntity() *shift.Shift {
	return &shift.Shift{ID: r.ShiftID, Date: r.Date, StartTime: r.StartTime, EndTime: r.EndTime}
}

// ShiftRepository は shifts.json を使うシフトリポジトリです。
type ShiftRepository struct {
	store *Store
}

// NewShiftRepository は ShiftRepository を生成します。
func NewShiftRepository(store *Store) *ShiftRepository {
	return &ShiftRepository{store: store}
}

// Create はシフトを追加します。
func (r *ShiftRepository) Create(ctx context.Context, s *shift.Shift) (*shift.Shift, error) {
	err := r.store.write(ctx, func() error {
		records, err := loadList[shiftRecord](r.store, shiftsFile)
		if err != nil {
			return err
		}
		for _, rec := range records {
			if rec.ShiftID == s.ID {
				return shift.ErrIDAlreadyExists
			}
		}
		records = append(records, shiftRecord{ShiftID: s.ID, Date: s.Date, StartTime: s.StartTime, EndTime: s.EndTime})
		return saveList(r.store, shiftsFile, records)
	})
	if err != nil {
		return nil, err
	}
	created := *s
	return &created, nil
}

// FindByID は ID でシフトを探します。
func (r *ShiftRepository) FindByID(ctx context.Context, id string) (*shift.Shift, error) {
	var found *shift.Shift
	err := r.store.read(ctx, func() error {
		records, err := loadList[shiftRecord](r.store, shiftsFile)
		if err != nil {
			return err
		}
		for _, rec := range records {
			if rec.ShiftID == id {
				found = rec.toEntity()
				return nil
			}
		}
		return shift.ErrShiftNotFound
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// List はシフトを日付、開始時刻、ID の順に返します。
func (r *ShiftRepository) List(ctx context.Context) ([]*shift.Shift, error) {
	var shifts []*shift.Shift
	err := r.store.read(ctx, func() error {
		records, err := loadList[shiftRecord](r.store, shiftsFile)
		if err != nil {
			return err
		}
		shifts = make([]*shift.Shift, 0, len(records))
		for _, rec := range records {
			shifts = append(shifts, rec.toEntity())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	shift.SortChronologically(shifts)
	return shifts, nil
}
