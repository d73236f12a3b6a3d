package employee

import (
	"context"
	"errors"
	"sort"
	"testing"
)

type fakeEmployeeRepo struct {
	employees map[string]*Employee
	updates   int
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{employees: make(map[string]*Employee)}
}

func (r *fakeEmployeeRepo) Create(_ context.Context, e *Employee) (*Employee, error) {
	ids := make([]string, 0, len(r.employees))
	for id := range r.employees {
		ids = append(ids, id)
	}

	clone := *e
	clone.ID = NextID(ids)
	r.employees[clone.ID] = &clone
	result := clone
	return &result, nil
}

func (r *fakeEmployeeRepo) Update(_ context.Context, e *Employee) (*Employee, error) {
	if _, ok := r.employees[e.ID]; !ok {
		return nil, ErrEmployeeNotFound
	}
	clone := *e
	r.employees[e.ID] = &clone
	r.updates++
	result := clone
	return &result, nil
}

func (r *fakeEmployeeRepo) FindByID(_ context.Context, id string) (*Employee, error) {
	emp, ok := r.employees[id]
	if !ok {
		return nil, ErrEmployeeNotFound
	}
	clone := *emp
	return &clone, nil
}

func (r *fakeEmployeeRepo) List(_ context.Context) ([]*Employee, error) {
	result := make([]*Employee, 0, len(r.employees))
	for _, emp := range r.employees {
		clone := *emp
		result = append(result, &clone)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func TestService_CreateEmployee_Success(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeEmployeeRepo(), nil)

	created, err := svc.CreateEmployee(context.Background(), CreateEmployeeInput{
		Name:  "  Amina Khan  ",
		Phone: " 5555-1234 ",
	})
	if err != nil {
		t.Fatalf("CreateEmployee returned error: %v", err)
	}

	if created.ID != "E001" {
		t.Fatalf("expected first id E001, got %s", created.ID)
	}
	if created.Name != "Amina Khan" {
		t.Fatalf("expected trimmed name, got %q", created.Name)
	}
	if created.Phone != "5555-1234" {
		t.Fatalf("expected trimmed phone, got %q", created.Phone)
	}

	second, err := svc.CreateEmployee(context.Background(), CreateEmployeeInput{Name: "Second", Phone: "1111-2222"})
	if err != nil {
		t.Fatalf("CreateEmployee returned error: %v", err)
	}
	if second.ID != "E002" {
		t.Fatalf("expected sequential id E002, got %s", second.ID)
	}
}

func TestService_CreateEmployee_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      CreateEmployeeInput
		wantErr error
	}{
		{name: "empty name", in: CreateEmployeeInput{Name: "   ", Phone: "1234-5678"}, wantErr: ErrInvalidName},
		{name: "phone without dash", in: CreateEmployeeInput{Name: "A", Phone: "12345678"}, wantErr: ErrInvalidPhone},
		{name: "phone dash misplaced", in: CreateEmployeeInput{Name: "A", Phone: "123-45678"}, wantErr: ErrInvalidPhone},
		{name: "phone with letters", in: CreateEmployeeInput{Name: "A", Phone: "12a4-5678"}, wantErr: ErrInvalidPhone},
		{name: "phone too long", in: CreateEmployeeInput{Name: "A", Phone: "1234-56789"}, wantErr: ErrInvalidPhone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := newFakeEmployeeRepo()
			svc := NewService(repo, nil)

			_, err := svc.CreateEmployee(context.Background(), tt.in)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if len(repo.employees) != 0 {
				t.Fatalf("expected no employee to be stored")
			}
		})
	}
}

func TestService_UpdateEmployee_Success(t *testing.T) {
	t.Parallel()

	repo := newFakeEmployeeRepo()
	svc := NewService(repo, nil)

	created, err := svc.CreateEmployee(context.Background(), CreateEmployeeInput{Name: "Old", Phone: "1111-1111"})
	if err != nil {
		t.Fatalf("CreateEmployee returned error: %v", err)
	}

	newName := " New Name "
	newPhone := "2222-3333"
	updated, err := svc.UpdateEmployee(context.Background(), UpdateEmployeeInput{
		ID:    created.ID,
		Name:  &newName,
		Phone: &newPhone,
	})
	if err != nil {
		t.Fatalf("UpdateEmployee returned error: %v", err)
	}

	if updated.ID != created.ID {
		t.Fatalf("id must be immutable, got %s", updated.ID)
	}
	if updated.Name != "New Name" || updated.Phone != "2222-3333" {
		t.Fatalf("update not applied: %+v", updated)
	}
}

func TestService_UpdateEmployee_PartialKeepsOtherFields(t *testing.T) {
	t.Parallel()

	repo := newFakeEmployeeRepo()
	svc := NewService(repo, nil)

	created, err := svc.CreateEmployee(context.Background(), CreateEmployeeInput{Name: "Keep", Phone: "1111-1111"})
	if err != nil {
		t.Fatalf("CreateEmployee returned error: %v", err)
	}

	newPhone := "9999-0000"
	updated, err := svc.UpdateEmployee(context.Background(), UpdateEmployeeInput{ID: created.ID, Phone: &newPhone})
	if err != nil {
		t.Fatalf("UpdateEmployee returned error: %v", err)
	}
	if updated.Name != "Keep" {
		t.Fatalf("expected name to be kept, got %s", updated.Name)
	}
}

func TestService_UpdateEmployee_InvalidPhoneDoesNotPersist(t *testing.T) {
	t.Parallel()

	repo := newFakeEmployeeRepo()
	svc := NewService(repo, nil)

	created, err := svc.CreateEmployee(context.Background(), CreateEmployeeInput{Name: "Keep", Phone: "1111-1111"})
	if err != nil {
		t.Fatalf("CreateEmployee returned error: %v", err)
	}

	bad := "1111"
	if _, err := svc.UpdateEmployee(context.Background(), UpdateEmployeeInput{ID: created.ID, Phone: &bad}); !errors.Is(err, ErrInvalidPhone) {
		t.Fatalf("expected ErrInvalidPhone, got %v", err)
	}
	if repo.updates != 0 {
		t.Fatalf("expected no update call, got %d", repo.updates)
	}
}

func TestService_UpdateEmployee_NotFound(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeEmployeeRepo(), nil)

	name := "x"
	_, err := svc.UpdateEmployee(context.Background(), UpdateEmployeeInput{ID: "E404", Name: &name})
	if !errors.Is(err, ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}
}

func TestService_GetEmployee_InvalidID(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeEmployeeRepo(), nil)

	if _, err := svc.GetEmployee(context.Background(), GetEmployeeInput{ID: " "}); !errors.Is(err, ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
}

func TestService_ListEmployees_WideIDsAfterNarrow(t *testing.T) {
	t.Parallel()

	repo := newFakeEmployeeRepo()
	repo.employees["E1000"] = &Employee{ID: "E1000", Name: "Wide", Phone: "1234-5678"}
	repo.employees["E999"] = &Employee{ID: "E999", Name: "Narrow", Phone: "1234-5678"}
	svc := NewService(repo, nil)

	employees, err := svc.ListEmployees(context.Background())
	if err != nil {
		t.Fatalf("ListEmployees returned error: %v", err)
	}
	if len(employees) != 2 || employees[0].ID != "E999" || employees[1].ID != "E1000" {
		t.Fatalf("unexpected order: %+v", employees)
	}
}

func TestService_ListEmployees_SortedByID(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeEmployeeRepo(), nil)
	for _, name := range []string{"A", "B", "C"} {
		if _, err := svc.CreateEmployee(context.Background(), CreateEmployeeInput{Name: name, Phone: "1234-5678"}); err != nil {
			t.Fatalf("unexpected seed error: %v", err)
		}
	}

	employees, err := svc.ListEmployees(context.Background())
	if err != nil {
		t.Fatalf("ListEmployees returned error: %v", err)
	}
	if len(employees) != 3 {
		t.Fatalf("expected 3 employees, got %d", len(employees))
	}
	if employees[0].ID != "E001" || employees[2].ID != "E003" {
		t.Fatalf("unexpected order: %s..%s", employees[0].ID, employees[2].ID)
	}
}
