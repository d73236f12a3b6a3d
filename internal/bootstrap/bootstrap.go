// Package bootstrap は設定に従ってストレージとユースケースを組み立てます。
package bootstrap

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ogurasousui/shift-scheduler/internal/adapters/repository/filestore"
	pgrepo "github.com/ogurasousui/shift-scheduler/internal/adapters/repository/postgres"
	sqliterepo "github.com/ogurasousui/shift-scheduler/internal/adapters/repository/sqlite"
	"github.com/ogurasousui/shift-scheduler/internal/core/assignment"
	"github.com/ogurasousui/shift-scheduler/internal/core/employee"
	"github.com/ogurasousui/shift-scheduler/internal/core/shift"
	"github.com/ogurasousui/shift-scheduler/internal/platform/config"
	pgdb "github.com/ogurasousui/shift-scheduler/internal/platform/db/postgres"
	sqlitedb "github.com/ogurasousui/shift-scheduler/internal/platform/db/sqlite"
)

// TransactionManager は各ユースケースが共有するトランザクション制御です。
type TransactionManager interface {
	WithinReadOnly(ctx context.Context, fn func(context.Context) error) error
	WithinReadWrite(ctx context.Context, fn func(context.Context) error) error
}

// App は組み立て済みのユースケースと後始末を保持します。
type App struct {
	Driver      string
	Employees   *employee.Service
	Shifts      *shift.Service
	Assignments *assignment.Service

	closers []func() error
}

// Close は開いたストレージ資源を解放します。
func (a *App) Close() error {
	var firstErr error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	a.closers = nil
	return firstErr
}

type backend struct {
	employees   employee.Repository
	shifts      shift.Repository
	assignments assignment.Repository
	policy      assignment.PolicySource
	tx          TransactionManager
	locker      assignment.Locker
}

// New は cfg.Storage.Driver に応じたリポジトリを開き、サービスを生成します。
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	app := &App{Driver: cfg.Storage.Driver}

	var (
		b   backend
		err error
	)
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		b, err = app.openPostgres(ctx, cfg.Database)
	case config.DriverSQLite:
		b, err = app.openSQLite(ctx, cfg.Storage.SQLitePath)
	case config.DriverFile:
		b, err = openFileStore(ctx, cfg.Storage.FileDir)
	default:
		err = fmt.Errorf("bootstrap: storage driver %q is not supported", cfg.Storage.Driver)
	}
	if err != nil {
		_ = app.Close()
		return nil, err
	}

	app.Employees = employee.NewService(b.employees, b.tx)
	app.Shifts = shift.NewService(b.shifts, b.tx)
	app.Assignments = assignment.NewService(b.employees, b.shifts, b.assignments, b.policy,
		assignment.WithTransactionManager(b.tx),
		assignment.WithLocker(b.locker),
		assignment.WithLogger(logger.Named("assignment")),
	)

	logger.Info("storage initialized", zap.String("driver", cfg.Storage.Driver))
	return app, nil
}

func (a *App) openPostgres(ctx context.Context, cfg config.DatabaseConfig) (backend, error) {
	pool, err := pgdb.NewPool(ctx, cfg)
	if err != nil {
		return backend{}, fmt.Errorf("bootstrap: %w", err)
	}
	a.closers = append(a.closers, func() error {
		pool.Close()
		return nil
	})

	return backend{
		employees:   pgrepo.NewEmployeeRepository(pool),
		shifts:      pgrepo.NewShiftRepository(pool),
		assignments: pgrepo.NewAssignmentRepository(pool),
		policy:      pgrepo.NewPolicyRepository(pool),
		tx:          pgdb.NewTransactionManager(pool),
		locker:      assignment.ChainLockers(assignment.NewKeyedMutex(), pgdb.NewAdvisoryLocker()),
	}, nil
}

func (a *App) openSQLite(ctx context.Context, path string) (backend, error) {
	db, err := sqlitedb.Open(ctx, path)
	if err != nil {
		return backend{}, fmt.Errorf("bootstrap: %w", err)
	}
	a.closers = append(a.closers, db.Close)

	return backend{
		employees:   sqliterepo.NewEmployeeRepository(db),
		shifts:      sqliterepo.NewShiftRepository(db),
		assignments: sqliterepo.NewAssignmentRepository(db),
		policy:      sqliterepo.NewPolicyRepository(db),
		tx:          sqlitedb.NewTransactionManager(db),
		locker:      assignment.NewKeyedMutex(),
	}, nil
}

func openFileStore(ctx context.Context, dir string) (backend, error) {
	store, err := filestore.Open(dir)
	if err != nil {
		return backend{}, fmt.Errorf("bootstrap: %w", err)
	}
	policy := filestore.NewPolicyRepository(store)
	if err := policy.EnsureMaxDailyHours(ctx, assignment.DefaultMaxDailyHours); err != nil {
		return backend{}, fmt.Errorf("bootstrap: %w", err)
	}

	return backend{
		employees:   filestore.NewEmployeeRepository(store),
		shifts:      filestore.NewShiftRepository(store),
		assignments: filestore.NewAssignmentRepository(store),
		policy:      policy,
		tx:          filestore.NewTransactionManager(store),
		locker:      assignment.NewKeyedMutex(),
	}, nil
}
