package sqlite

import (
	"context"
	"database/sql"

	sqlitedb "github.com/ogurasousui/shift-scheduler/internal/platform/db/sqlite"
)

// withTx はコンテキストにトランザクションがあればそれを使い、無ければ単発のトランザクションで fn を実行します。
func withTx(ctx context.Context, db *sql.DB, fn func(sqlitedb.Queryer) error) error {
	return sqlitedb.NewTransactionManager(db).WithinReadWrite(ctx, func(txCtx context.Context) error {
		return fn(sqlitedb.QueryerFromContext(txCtx, db))
	})
}
