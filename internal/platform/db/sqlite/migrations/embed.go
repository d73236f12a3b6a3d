package migrations

import "embed"

// FS は SQLite 用のスキーマ定義を保持します。
//
//go:embed *.sql
var FS embed.FS
