package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
)

func TestAdvisoryLocker_LocksInsideTransaction(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	tm := NewTransactionManager(mock)
	locker := NewAdvisoryLocker()

	mock.ExpectBeginTx(pgx.TxOptions{AccessMode: pgx.ReadWrite})
	mock.ExpectExec(regexp.QuoteMeta(advisoryLockQuery)).
		WithArgs("E001").
		WillReturnResult(pgxmock.NewResult("SELECT", 1))
	mock.ExpectCommit()

	err = tm.WithinReadWrite(context.Background(), func(ctx context.Context) error {
		unlock, err := locker.Lock(ctx, "E001")
		if err != nil {
			return err
		}
		unlock()
		return nil
	})
	if err != nil {
		t.Fatalf("WithinReadWrite returned error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAdvisoryLocker_RequiresTransaction(t *testing.T) {
	t.Parallel()

	if _, err := NewAdvisoryLocker().Lock(context.Background(), "E001"); !errors.Is(err, ErrNoTransaction) {
		t.Fatalf("expected ErrNoTransaction, got %v", err)
	}
}

func TestAdvisoryLocker_PropagatesFailure(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	tm := NewTransactionManager(mock)
	lockErr := errors.New("canceling statement due to lock timeout")

	mock.ExpectBeginTx(pgx.TxOptions{AccessMode: pgx.ReadWrite})
	mock.ExpectExec(regexp.QuoteMeta(advisoryLockQuery)).
		WithArgs("E002").
		WillReturnError(lockErr)
	mock.ExpectRollback()

	err = tm.WithinReadWrite(context.Background(), func(ctx context.Context) error {
		_, err := NewAdvisoryLocker().Lock(ctx, "E002")
		return err
	})
	if !errors.Is(err, lockErr) {
		t.Fatalf("expected lock error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
