package bootstrap

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/ogurasousui/shift-scheduler/internal/core/assignment"
	"github.com/ogurasousui/shift-scheduler/internal/core/employee"
	"github.com/ogurasousui/shift-scheduler/internal/core/shift"
	"github.com/ogurasousui/shift-scheduler/internal/platform/config"
)

func TestNew_EmbeddedDrivers(t *testing.T) {
	cases := []struct {
		name    string
		storage func(dir string) config.StorageConfig
	}{
		{
			name: "sqlite",
			storage: func(dir string) config.StorageConfig {
				return config.StorageConfig{Driver: config.DriverSQLite, SQLitePath: filepath.Join(dir, "shift.db")}
			},
		},
		{
			name: "file",
			storage: func(dir string) config.StorageConfig {
				return config.StorageConfig{Driver: config.DriverFile, FileDir: filepath.Join(dir, "data")}
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			cfg := &config.Config{Storage: tc.storage(t.TempDir())}

			app, err := New(ctx, cfg, zaptest.NewLogger(t))
			require.NoError(t, err)
			t.Cleanup(func() { require.NoError(t, app.Close()) })
			assert.Equal(t, tc.storage("").Driver, app.Driver)

			emp, err := app.Employees.CreateEmployee(ctx, employee.CreateEmployeeInput{Name: "佐藤", Phone: "0901-2345"})
			require.NoError(t, err)
			assert.Equal(t, "E001", emp.ID)

			_, err = app.Shifts.CreateShift(ctx, shift.CreateShiftInput{ID: "S1", Date: "2024-04-01", StartTime: "09:00", EndTime: "15:00"})
			require.NoError(t, err)
			_, err = app.Shifts.CreateShift(ctx, shift.CreateShiftInput{ID: "S2", Date: "2024-04-01", StartTime: "15:00", EndTime: "19:00"})
			require.NoError(t, err)

			outcome, err := app.Assignments.AssignShift(ctx, assignment.AssignShiftInput{EmployeeID: emp.ID, ShiftID: "S1"})
			require.NoError(t, err)
			assert.Equal(t, assignment.OutcomeSuccess, outcome)

			outcome, err = app.Assignments.AssignShift(ctx, assignment.AssignShiftInput{EmployeeID: emp.ID, ShiftID: "S2"})
			require.NoError(t, err)
			assert.Equal(t, assignment.OutcomeDailyLimitExceeded, outcome)

			_, err = app.Assignments.SetPolicy(ctx, assignment.SetPolicyInput{MaxDailyHours: 10})
			require.NoError(t, err)

			outcome, err = app.Assignments.AssignShift(ctx, assignment.AssignShiftInput{EmployeeID: emp.ID, ShiftID: "S2"})
			require.NoError(t, err)
			assert.Equal(t, assignment.OutcomeSuccess, outcome)

			schedule, err := app.Assignments.GetEmployeeSchedule(ctx, assignment.GetEmployeeScheduleInput{EmployeeID: emp.ID})
			require.NoError(t, err)
			require.Len(t, schedule.Entries, 2)
			assert.Equal(t, 10.0, schedule.HoursByDate()["2024-04-01"])
		})
	}
}

func TestNew_UnsupportedDriver(t *testing.T) {
	_, err := New(context.Background(), &config.Config{Storage: config.StorageConfig{Driver: "mongo"}}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mongo")
}
