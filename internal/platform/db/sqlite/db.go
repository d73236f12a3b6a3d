package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/ogurasousui/shift-scheduler/internal/platform/db/sqlite/migrations"
)

// Open は SQLite データベースを開き、埋め込みマイグレーションを適用します。
//
// 書き込みトランザクションは BEGIN IMMEDIATE で開始されるため、
// 複数プロセスから同じファイルを開いても割り当ての検証とコミットは直列化されます。
func Open(ctx context.Context, path string) (*sql.DB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sqlite: path is required")
	}

	dsn := filepath.Clean(path) +
		"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_txlock=immediate"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: ping: %w", err)
	}
	if err := ApplyMigrations(ctx, db, migrations.FS); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// IsUniqueViolation は主キーまたは一意制約違反かを判定します。
func IsUniqueViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	switch sqliteErr.Code() {
	case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
		return true
	}
	return false
}

// IsForeignKeyViolation は外部キー制約違反かを判定します。
func IsForeignKeyViolation(err error) bool {
	var sqliteErr *msqlite.Error
	return errors.As(err, &sqliteErr) && sqliteErr.Code() == sqlite3lib.SQLITE_CONSTRAINT_FOREIGNKEY
}

// IsCheckViolation は CHECK 制約違反かを判定します。
func IsCheckViolation(err error) bool {
	var sqliteErr *msqlite.Error
	return errors.As(err, &sqliteErr) && sqliteErr.Code() == sqlite3lib.SQLITE_CONSTRAINT_CHECK
}
