package postgres

import (
	"context"
	"errors"
	"fmt"
)

// ErrNoTransaction はトランザクション外でアドバイザリロックを要求した場合に返されます。
var ErrNoTransaction = errors.New("postgres: advisory lock requires a transaction")

const advisoryLockQuery = `SELECT pg_advisory_xact_lock(hashtext($1))`

// AdvisoryLocker はキー単位のトランザクションスコープのアドバイザリロックです。
// ロックはトランザクション終了時に解放されるため、返す解放関数は何もしません。
type AdvisoryLocker struct{}

// NewAdvisoryLocker は AdvisoryLocker を生成します。
func NewAdvisoryLocker() *AdvisoryLocker {
	return &AdvisoryLocker{}
}

// Lock は key に対するロックを取得するまで待機します。
func (AdvisoryLocker) Lock(ctx context.Context, key string) (func(), error) {
	tx, ok := txFromContext(ctx)
	if !ok {
		return nil, ErrNoTransaction
	}
	if _, err := tx.Exec(ctx, advisoryLockQuery, key); err != nil {
		return nil, fmt.Errorf("postgres: advisory lock %q: %w", key, err)
	}
	return func() {}, nil
}
