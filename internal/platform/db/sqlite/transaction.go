package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type txContextKey struct{}

// Queryer は *sql.DB と *sql.Tx に共通するクエリ実行インターフェースです。
type Queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// TransactionManager は database/sql を用いたトランザクション制御を提供します。
type TransactionManager struct {
	db *sql.DB
}

// NewTransactionManager は TransactionManager を生成します。
func NewTransactionManager(db *sql.DB) *TransactionManager {
	if db == nil {
		return nil
	}
	return &TransactionManager{db: db}
}

// WithinReadOnly は読み取り用トランザクションの中で fn を実行します。
func (m *TransactionManager) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	if m == nil {
		return fn(ctx)
	}
	return m.within(ctx, &sql.TxOptions{ReadOnly: true}, fn)
}

// WithinReadWrite は書き込みトランザクションの中で fn を実行します。
func (m *TransactionManager) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	if m == nil {
		return fn(ctx)
	}
	return m.within(ctx, nil, fn)
}

func (m *TransactionManager) within(ctx context.Context, opts *sql.TxOptions, fn func(context.Context) error) error {
	if fn == nil {
		return fmt.Errorf("sqlite: transaction function is required")
	}
	if _, ok := txFromContext(ctx); ok {
		return fn(ctx)
	}

	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("sqlite: begin tx: %w", err)
	}

	finished := false
	defer func() {
		if !finished {
			_ = tx.Rollback()
		}
	}()

	err = fn(context.WithValue(ctx, txContextKey{}, tx))
	finished = true
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return errors.Join(err, fmt.Errorf("sqlite: rollback: %w", rbErr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: commit: %w", err)
	}
	return nil
}

func txFromContext(ctx context.Context) (*sql.Tx, bool) {
	if ctx == nil {
		return nil, false
	}
	tx, ok := ctx.Value(txContextKey{}).(*sql.Tx)
	return tx, ok
}

// QueryerFromContext はコンテキスト内のトランザクションを返し、無ければ fallback を返します。
func QueryerFromContext(ctx context.Context, fallback Queryer) Queryer {
	if tx, ok := txFromContext(ctx); ok {
		return tx
	}
	return fallback
}
