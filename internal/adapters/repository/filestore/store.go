// Package filestore は JSON ファイルを永続化先とするリポジトリ実装です。
//
// ディレクトリには employees.json、shifts.json、assignments.json、config.json を置きます。
// ファイルは操作のたびに読み直し、書き込みは一時ファイルからの rename で置き換えます。
// 排他はプロセス内のみで、同じディレクトリを複数プロセスから更新することは想定しません。
package filestore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const (
	employeesFile   = "employees.json"
	shiftsFile      = "shifts.json"
	assignmentsFile = "assignments.json"
	configFile      = "config.json"
)

// ErrMalformedData は保存済みファイルを解釈できない場合に返されます。
var ErrMalformedData = errors.New("filestore: malformed data")

// Store はデータディレクトリとその排他制御を保持します。
type Store struct {
	dir string
	mu  sync.RWMutex
}

// Open は dir を使う Store を返します。ディレクトリが無ければ作成します。
func Open(dir string) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("filestore: directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("filestore: create %s: %w", dir, err)
	}
	return &Store{dir: filepath.Clean(dir)}, nil
}

// Dir はデータディレクトリを返します。
func (s *Store) Dir() string {
	return s.dir
}

type lockContextKey struct{}

// heldLock はコンテキストが保持しているロックの連なりです。
type heldLock struct {
	store *Store
	outer *heldLock
}

// TransactionManager は Store のロックを fn の実行中ずっと保持します。
// ファイルへの書き込みはその場で反映されるため、ロールバックはありません。
type TransactionManager struct {
	store *Store
}

// NewTransactionManager は TransactionManager を生成します。
func NewTransactionManager(store *Store) *TransactionManager {
	return &TransactionManager{store: store}
}

// WithinReadOnly は共有ロックを取得して fn を実行します。
func (m *TransactionManager) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	if m.store.held(ctx) {
		return fn(ctx)
	}
	m.store.mu.RLock()
	defer m.store.mu.RUnlock()
	return fn(m.store.withHeld(ctx))
}

// WithinReadWrite は排他ロックを取得して fn を実行します。
func (m *TransactionManager) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	if m.store.held(ctx) {
		return fn(ctx)
	}
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	return fn(m.store.withHeld(ctx))
}

// held はこの Store のロックを ctx が既に保持しているかを返します。
func (s *Store) held(ctx context.Context) bool {
	if ctx == nil {
		return false
	}
	h, _ := ctx.Value(lockContextKey{}).(*heldLock)
	for ; h != nil; h = h.outer {
		if h.store == s {
			return true
		}
	}
	return false
}

func (s *Store) withHeld(ctx context.Context) context.Context {
	outer, _ := ctx.Value(lockContextKey{}).(*heldLock)
	return context.WithValue(ctx, lockContextKey{}, &heldLock{store: s, outer: outer})
}

// read は呼び出し元がロックを持っていなければ共有ロックを取って fn を実行します。
func (s *Store) read(ctx context.Context, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !s.held(ctx) {
		s.mu.RLock()
		defer s.mu.RUnlock()
	}
	return fn()
}

// write は呼び出し元がロックを持っていなければ排他ロックを取って fn を実行します。
func (s *Store) write(ctx context.Context, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !s.held(ctx) {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	return fn()
}

// loadList は JSON 配列のファイルを読み込みます。ファイルが無い場合は空として扱います。
func loadList[T any](s *Store, name string) ([]T, error) {
	b, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []T{}, nil
		}
		return nil, fmt.Errorf("filestore: read %s: %w", name, err)
	}
	if strings.TrimSpace(string(b)) == "" {
		return []T{}, nil
	}

	var items []T
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMalformedData, name, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func saveList[T any](s *Store, name string, items []T) error {
	b, err := json.MarshalIndent(items, "", "    ")
	if err != nil {
		return fmt.Errorf("filestore: encode %s: %w", name, err)
	}
	return s.replaceFile(name, b)
}

// replaceFile は同じディレクトリの一時ファイルに書いてから rename します。
func (s *Store) replaceFile(name string, content []byte) error {
	tmp, err := os.CreateTemp(s.dir, "."+name+".*")
	if err != nil {
		return fmt.Errorf("filestore: create temp for %s: %w", name, err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	content = append(bytes.TrimRight(content, "\n"), '\n')
	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("filestore: write %s: %w", name, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("filestore: sync %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("filestore: close %s: %w", name, err)
	}
	if err := os.Rename(tmpName, filepath.Join(s.dir, name)); err != nil {
		return fmt.Errorf("filestore: replace %s: %w", name, err)
	}
	return nil
}
