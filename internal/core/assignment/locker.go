package assignment

import (
	"context"
	"sync"
)

// Locker は社員単位で割り当て処理を直列化します。
// 戻り値の unlock は必ず呼び出してください。複数回呼んでも安全です。
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// KeyedMutex はプロセス内でキーごとの排他を提供する Locker です。
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyedLock
}

type keyedLock struct {
	sem  chan struct{}
	refs int
}

// NewKeyedMutex は KeyedMutex を生成します。
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: make(map[string]*keyedLock)}
}

// Lock はキーのロックを取得するか、ctx が終了するまで待ちます。
func (k *KeyedMutex) Lock(ctx context.Context, key string) (func(), error) {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]*keyedLock)
	}
	l, ok := k.locks[key]
	if !ok {
		l = &keyedLock{sem: make(chan struct{}, 1)}
		k.locks[key] = l
	}
	l.refs++
	k.mu.Unlock()

	select {
	case l.sem <- struct{}{}:
	case <-ctx.Done():
		k.release(key, l)
		return func() {}, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-l.sem
			k.release(key, l)
		})
	}, nil
}

func (k *KeyedMutex) release(key string, l *keyedLock) {
	k.mu.Lock()
	defer k.mu.Unlock()
	l.refs--
	if l.refs == 0 {
		delete(k.locks, key)
	}
}

// ChainLockers は複数の Locker を順に取得し、逆順で解放する Locker を返します。
func ChainLockers(lockers ...Locker) Locker {
	return lockerChain(lockers)
}

type lockerChain []Locker

func (c lockerChain) Lock(ctx context.Context, key string) (func(), error) {
	unlocks := make([]func(), 0, len(c))
	release := func() {
		for i := len(unlocks) - 1; i >= 0; i-- {
			unlocks[i]()
		}
	}

	for _, l := range c {
		if l == nil {
			continue
		}
		unlock, err := l.Lock(ctx, key)
		if err != nil {
			release()
			return func() {}, err
		}
		unlocks = append(unlocks, unlock)
	}

	var once sync.Once
	return func() { once.Do(release) }, nil
}
