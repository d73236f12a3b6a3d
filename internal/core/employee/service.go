package employee

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// TransactionManager はトランザクション制御の抽象化です。
type TransactionManager interface {
	WithinReadOnly(ctx context.Context, fn func(context.Context) error) error
	WithinReadWrite(ctx context.Context, fn func(context.Context) error) error
}

type noopTransactionManager struct{}

func (noopTransactionManager) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

func (noopTransactionManager) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

var phonePattern = regexp.MustCompile(`^[0-9]{4}-[0-9]{4}$`)

// Service は社員に関するユースケースをまとめます。
type Service struct {
	repo Repository
	tx   TransactionManager
}

// UseCase は社員ユースケースの公開インターフェースです。
type UseCase interface {
	CreateEmployee(ctx context.Context, in CreateEmployeeInput) (*Employee, error)
	GetEmployee(ctx context.Context, in GetEmployeeInput) (*Employee, error)
	ListEmployees(ctx context.Context) ([]*Employee, error)
	UpdateEmployee(ctx context.Context, in UpdateEmployeeInput) (*Employee, error)
}

// NewService は Service を生成します。
func NewService(repo Repository, tx TransactionManager) *Service {
	if tx == nil {
		tx = noopTransactionManager{}
	}
	return &Service{repo: repo, tx: tx}
}

// CreateEmployeeInput は社員作成時の入力です。
type CreateEmployeeInput struct {
	Name  string
	Phone string
}

// UpdateEmployeeInput は社員更新時の入力です。名前と電話番号のみ変更できます。
type UpdateEmployeeInput struct {
	ID    string
	Name  *string
	Phone *string
}

// GetEmployeeInput は社員取得時の入力です。
type GetEmployeeInput struct {
	ID string
}

// CreateEmployee は新しい社員を作成します。ID はリポジトリが採番します。
func (s *Service) CreateEmployee(ctx context.Context, in CreateEmployeeInput) (*Employee, error) {
	name, err := normalizeName(in.Name)
	if err != nil {
		return nil, err
	}

	phone, err := normalizePhone(in.Phone)
	if err != nil {
		return nil, err
	}

	var created *Employee
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		result, err := s.repo.Create(txCtx, &Employee{Name: name, Phone: phone})
		if err != nil {
			return err
		}
		created = result
		return nil
	}); err != nil {
		return nil, err
	}

	return created, nil
}

// UpdateEmployee は社員の名前・電話番号を更新します。
func (s *Service) UpdateEmployee(ctx context.Context, in UpdateEmployeeInput) (*Employee, error) {
	id := strings.TrimSpace(in.ID)
	if id == "" {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}

	var updated *Employee
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.FindByID(txCtx, id)
		if err != nil {
			return err
		}

		if in.Name != nil {
			name, err := normalizeName(*in.Name)
			if err != nil {
				return err
			}
			existing.Name = name
		}

		if in.Phone != nil {
			phone, err := normalizePhone(*in.Phone)
			if err != nil {
				return err
			}
			existing.Phone = phone
		}

		result, err := s.repo.Update(txCtx, existing)
		if err != nil {
			return err
		}

		updated = result
		return nil
	}); err != nil {
		return nil, err
	}

	return updated, nil
}

// GetEmployee は社員を取得します。
func (s *Service) GetEmployee(ctx context.Context, in GetEmployeeInput) (*Employee, error) {
	id := strings.TrimSpace(in.ID)
	if id == "" {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}

	var result *Employee
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		found, err := s.repo.FindByID(txCtx, id)
		if err != nil {
			return err
		}
		result = found
		return nil
	}); err != nil {
		return nil, err
	}

	return result, nil
}

// ListEmployees は社員の一覧を ID 順で取得します。
func (s *Service) ListEmployees(ctx context.Context) ([]*Employee, error) {
	var employees []*Employee
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		result, err := s.repo.List(txCtx)
		if err != nil {
			return err
		}
		employees = result
		return nil
	}); err != nil {
		return nil, err
	}

	SortByID(employees)
	return employees, nil
}

func normalizeName(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrInvalidName
	}
	return trimmed, nil
}

func normalizePhone(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if !phonePattern.MatchString(trimmed) {
		return "", ErrInvalidPhone
	}
	return trimmed, nil
}
