package handler

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/ogurasousui/shift-scheduler/internal/core/assignment"
	"github.com/ogurasousui/shift-scheduler/internal/core/employee"
	"github.com/ogurasousui/shift-scheduler/internal/core/shift"
)

type stubEmployeeUseCase struct {
	createInput employee.CreateEmployeeInput
	createOut   *employee.Employee
	createErr   error

	updateInput employee.UpdateEmployeeInput
	updateOut   *employee.Employee
	updateErr   error

	getOut *employee.Employee
	getErr error

	listOut []*employee.Employee
}

func (s *stubEmployeeUseCase) CreateEmployee(_ context.Context, in employee.CreateEmployeeInput) (*employee.Employee, error) {
	s.createInput = in
	return s.createOut, s.createErr
}

func (s *stubEmployeeUseCase) GetEmployee(context.Context, employee.GetEmployeeInput) (*employee.Employee, error) {
	return s.getOut, s.getErr
}

func (s *stubEmployeeUseCase) ListEmployees(context.Context) ([]*employee.Employee, error) {
	return s.listOut, nil
}

func (s *stubEmployeeUseCase) UpdateEmployee(_ context.Context, in employee.UpdateEmployeeInput) (*employee.Employee, error) {
	s.updateInput = in
	return s.updateOut, s.updateErr
}

type stubShiftUseCase struct {
	createInput shift.CreateShiftInput
	createOut   *shift.Shift
	createErr   error
	listOut     []*shift.Shift
}

func (s *stubShiftUseCase) CreateShift(_ context.Context, in shift.CreateShiftInput) (*shift.Shift, error) {
	s.createInput = in
	return s.createOut, s.createErr
}

func (s *stubShiftUseCase) GetShift(context.Context, shift.GetShiftInput) (*shift.Shift, error) {
	return nil, shift.ErrShiftNotFound
}

func (s *stubShiftUseCase) ListShifts(context.Context) ([]*shift.Shift, error) {
	return s.listOut, nil
}

type stubAssignmentUseCase struct {
	assignInput assignment.AssignShiftInput
	outcome     assignment.Outcome
	assignErr   error

	schedule    *assignment.Schedule
	scheduleErr error

	policy    *assignment.Policy
	setInput  assignment.SetPolicyInput
	setErr    error
	policyErr error
}

func (s *stubAssignmentUseCase) AssignShift(_ context.Context, in assignment.AssignShiftInput) (assignment.Outcome, error) {
	s.assignInput = in
	return s.outcome, s.assignErr
}

func (s *stubAssignmentUseCase) GetEmployeeSchedule(context.Context, assignment.GetEmployeeScheduleInput) (*assignment.Schedule, error) {
	return s.schedule, s.scheduleErr
}

func (s *stubAssignmentUseCase) GetPolicy(context.Context) (*assignment.Policy, error) {
	return s.policy, s.policyErr
}

func (s *stubAssignmentUseCase) SetPolicy(_ context.Context, in assignment.SetPolicyInput) (*assignment.Policy, error) {
	s.setInput = in
	if s.setErr != nil {
		return nil, s.setErr
	}
	return &assignment.Policy{MaxDailyHours: in.MaxDailyHours}, nil
}

func newStruct(t *testing.T, fields map[string]any) *structpb.Struct {
	t.Helper()
	s, err := structpb.NewStruct(fields)
	if err != nil {
		t.Fatalf("NewStruct: %v", err)
	}
	return s
}

func assertCode(t *testing.T, err error, want codes.Code) {
	t.Helper()
	st, ok := status.FromError(err)
	if !ok || st.Code() != want {
		t.Fatalf("expected %v, got %v", want, err)
	}
}

func TestSchedulingGrpcHandler_CreateEmployee(t *testing.T) {
	t.Parallel()

	emps := &stubEmployeeUseCase{createOut: &employee.Employee{ID: "E001", Name: "Taro", Phone: "0901-2345"}}
	h := NewSchedulingGrpcHandler(emps, &stubShiftUseCase{}, &stubAssignmentUseCase{})

	resp, err := h.CreateEmployee(context.Background(), newStruct(t, map[string]any{"name": "Taro", "phone": "0901-2345"}))
	if err != nil {
		t.Fatalf("CreateEmployee returned error: %v", err)
	}
	if emps.createInput.Name != "Taro" || emps.createInput.Phone != "0901-2345" {
		t.Errorf("unexpected input: %+v", emps.createInput)
	}
	if got := resp.GetFields()["employee"].GetStructValue().GetFields()["id"].GetStringValue(); got != "E001" {
		t.Fatalf("expected id E001, got %s", got)
	}
}

func TestSchedulingGrpcHandler_CreateEmployee_Errors(t *testing.T) {
	t.Parallel()

	h := NewSchedulingGrpcHandler(&stubEmployeeUseCase{createErr: employee.ErrInvalidPhone}, &stubShiftUseCase{}, &stubAssignmentUseCase{})

	_, err := h.CreateEmployee(context.Background(), newStruct(t, map[string]any{"name": "Taro", "phone": "bad"}))
	assertCode(t, err, codes.InvalidArgument)

	_, err = h.CreateEmployee(context.Background(), newStruct(t, map[string]any{"name": 12}))
	assertCode(t, err, codes.InvalidArgument)
}

func TestSchedulingGrpcHandler_UpdateEmployee_SetsPointers(t *testing.T) {
	t.Parallel()

	emps := &stubEmployeeUseCase{updateOut: &employee.Employee{ID: "E001", Name: "Taro", Phone: "1111-2222"}}
	h := NewSchedulingGrpcHandler(emps, &stubShiftUseCase{}, &stubAssignmentUseCase{})

	_, err := h.UpdateEmployee(context.Background(), newStruct(t, map[string]any{"id": "E001", "phone": "1111-2222"}))
	if err != nil {
		t.Fatalf("UpdateEmployee returned error: %v", err)
	}
	if emps.updateInput.Name != nil {
		t.Errorf("name should stay nil when absent")
	}
	if emps.updateInput.Phone == nil || *emps.updateInput.Phone != "1111-2222" {
		t.Errorf("expected phone pointer, got %+v", emps.updateInput.Phone)
	}

	_, err = h.UpdateEmployee(context.Background(), newStruct(t, map[string]any{"name": "X"}))
	assertCode(t, err, codes.InvalidArgument)
}

func TestSchedulingGrpcHandler_GetEmployee_NotFound(t *testing.T) {
	t.Parallel()

	h := NewSchedulingGrpcHandler(&stubEmployeeUseCase{getErr: employee.ErrEmployeeNotFound}, &stubShiftUseCase{}, &stubAssignmentUseCase{})

	_, err := h.GetEmployee(context.Background(), newStruct(t, map[string]any{"id": "E404"}))
	assertCode(t, err, codes.NotFound)
}

func TestSchedulingGrpcHandler_ListEmployees(t *testing.T) {
	t.Parallel()

	emps := &stubEmployeeUseCase{listOut: []*employee.Employee{{ID: "E001"}, {ID: "E002"}}}
	h := NewSchedulingGrpcHandler(emps, &stubShiftUseCase{}, &stubAssignmentUseCase{})

	resp, err := h.ListEmployees(context.Background(), &structpb.Struct{})
	if err != nil {
		t.Fatalf("ListEmployees returned error: %v", err)
	}
	if n := len(resp.GetFields()["employees"].GetListValue().GetValues()); n != 2 {
		t.Fatalf("expected 2 employees, got %d", n)
	}
}

func TestSchedulingGrpcHandler_CreateShift(t *testing.T) {
	t.Parallel()

	shifts := &stubShiftUseCase{createOut: &shift.Shift{ID: "S1", Date: "2024-01-01", StartTime: "09:00", EndTime: "12:30"}}
	h := NewSchedulingGrpcHandler(&stubEmployeeUseCase{}, shifts, &stubAssignmentUseCase{})

	resp, err := h.CreateShift(context.Background(), newStruct(t, map[string]any{
		"id": "S1", "date": "2024-01-01", "start_time": "09:00", "end_time": "12:30",
	}))
	if err != nil {
		t.Fatalf("CreateShift returned error: %v", err)
	}
	if shifts.createInput != (shift.CreateShiftInput{ID: "S1", Date: "2024-01-01", StartTime: "09:00", EndTime: "12:30"}) {
		t.Errorf("unexpected input: %+v", shifts.createInput)
	}
	if got := resp.GetFields()["shift"].GetStructValue().GetFields()["hours"].GetNumberValue(); got != 3.5 {
		t.Fatalf("expected 3.5 hours, got %v", got)
	}

	shifts.createErr = shift.ErrInvalidTimeRange
	_, err = h.CreateShift(context.Background(), newStruct(t, map[string]any{"id": "S2"}))
	assertCode(t, err, codes.InvalidArgument)
}

func TestSchedulingGrpcHandler_GetShift_NotFound(t *testing.T) {
	t.Parallel()

	h := NewSchedulingGrpcHandler(&stubEmployeeUseCase{}, &stubShiftUseCase{}, &stubAssignmentUseCase{})

	_, err := h.GetShift(context.Background(), newStruct(t, map[string]any{"id": "S404"}))
	assertCode(t, err, codes.NotFound)
}

func TestSchedulingGrpcHandler_AssignShift_RejectionIsResponse(t *testing.T) {
	t.Parallel()

	tests := []assignment.Outcome{
		assignment.OutcomeSuccess,
		assignment.OutcomeEmployeeNotFound,
		assignment.OutcomeShiftNotFound,
		assignment.OutcomeAlreadyAssigned,
		assignment.OutcomeDailyLimitExceeded,
		assignment.OutcomeInvalidShiftTime,
	}

	for _, outcome := range tests {
		asg := &stubAssignmentUseCase{outcome: outcome}
		h := NewSchedulingGrpcHandler(&stubEmployeeUseCase{}, &stubShiftUseCase{}, asg)

		resp, err := h.AssignShift(context.Background(), newStruct(t, map[string]any{"employee_id": "E001", "shift_id": "S1"}))
		if err != nil {
			t.Fatalf("%v: expected response, got %v", outcome, err)
		}
		if got := resp.GetFields()["outcome"].GetStringValue(); got != outcome.String() {
			t.Errorf("expected outcome %s, got %s", outcome, got)
		}
		if got := resp.GetFields()["success"].GetBoolValue(); got != (outcome == assignment.OutcomeSuccess) {
			t.Errorf("%v: unexpected success flag %v", outcome, got)
		}
		if asg.assignInput.EmployeeID != "E001" || asg.assignInput.ShiftID != "S1" {
			t.Errorf("unexpected input: %+v", asg.assignInput)
		}
	}
}

func TestSchedulingGrpcHandler_AssignShift_RepositoryErrorIsInternal(t *testing.T) {
	t.Parallel()

	asg := &stubAssignmentUseCase{
		outcome:   assignment.OutcomeRepositoryError,
		assignErr: fmt.Errorf("%w: disk full", assignment.ErrRepository),
	}
	h := NewSchedulingGrpcHandler(&stubEmployeeUseCase{}, &stubShiftUseCase{}, asg)

	_, err := h.AssignShift(context.Background(), newStruct(t, map[string]any{"employee_id": "E001", "shift_id": "S1"}))
	assertCode(t, err, codes.Internal)

	_, err = h.AssignShift(context.Background(), newStruct(t, map[string]any{"employee_id": "E001"}))
	assertCode(t, err, codes.InvalidArgument)
}

func TestSchedulingGrpcHandler_GetEmployeeSchedule(t *testing.T) {
	t.Parallel()

	asg := &stubAssignmentUseCase{schedule: &assignment.Schedule{
		Employee: &employee.Employee{ID: "E001", Name: "Taro"},
		Entries: []assignment.ScheduleEntry{
			{Shift: &shift.Shift{ID: "S1", Date: "2024-01-01", StartTime: "08:00", EndTime: "12:00"}, Hours: 4, Morning: true},
			{Shift: &shift.Shift{ID: "S2", Date: "2024-01-01", StartTime: "13:00", EndTime: "15:00"}, Hours: 2},
		},
	}}
	h := NewSchedulingGrpcHandler(&stubEmployeeUseCase{}, &stubShiftUseCase{}, asg)

	resp, err := h.GetEmployeeSchedule(context.Background(), newStruct(t, map[string]any{"employee_id": "E001"}))
	if err != nil {
		t.Fatalf("GetEmployeeSchedule returned error: %v", err)
	}
	entries := resp.GetFields()["entries"].GetListValue().GetValues()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if !entries[0].GetStructValue().GetFields()["morning"].GetBoolValue() {
		t.Errorf("expected first entry to be morning")
	}
	if got := resp.GetFields()["hours_by_date"].GetStructValue().GetFields()["2024-01-01"].GetNumberValue(); got != 6 {
		t.Errorf("expected 6 hours on 2024-01-01, got %v", got)
	}
}

func TestSchedulingGrpcHandler_Policy(t *testing.T) {
	t.Parallel()

	asg := &stubAssignmentUseCase{policy: &assignment.Policy{MaxDailyHours: 9}}
	h := NewSchedulingGrpcHandler(&stubEmployeeUseCase{}, &stubShiftUseCase{}, asg)

	resp, err := h.GetPolicy(context.Background(), &structpb.Struct{})
	if err != nil {
		t.Fatalf("GetPolicy returned error: %v", err)
	}
	if got := resp.GetFields()["max_daily_hours"].GetNumberValue(); got != 9 {
		t.Fatalf("expected 9, got %v", got)
	}

	if _, err := h.SetPolicy(context.Background(), newStruct(t, map[string]any{"max_daily_hours": 7.5})); err != nil {
		t.Fatalf("SetPolicy returned error: %v", err)
	}
	if asg.setInput.MaxDailyHours != 7.5 {
		t.Errorf("unexpected input: %+v", asg.setInput)
	}

	_, err = h.SetPolicy(context.Background(), &structpb.Struct{})
	assertCode(t, err, codes.InvalidArgument)

	asg.setErr = assignment.ErrPolicyReadOnly
	_, err = h.SetPolicy(context.Background(), newStruct(t, map[string]any{"max_daily_hours": 8}))
	assertCode(t, err, codes.FailedPrecondition)
}

func TestToStatusError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want codes.Code
	}{
		{employee.ErrInvalidName, codes.InvalidArgument},
		{shift.ErrInvalidDate, codes.InvalidArgument},
		{assignment.ErrInvalidMaxDailyHours, codes.InvalidArgument},
		{shift.ErrIDAlreadyExists, codes.AlreadyExists},
		{fmt.Errorf("wrapped: %w", employee.ErrEmployeeNotFound), codes.NotFound},
		{fmt.Errorf("%w: %w", assignment.ErrRepository, shift.ErrShiftNotFound), codes.Internal},
		{errors.New("boom"), codes.Internal},
	}

	for _, tt := range tests {
		assertCode(t, toStatusError(tt.err), tt.want)
	}
	if toStatusError(nil) != nil {
		t.Fatal("nil error must stay nil")
	}
}
