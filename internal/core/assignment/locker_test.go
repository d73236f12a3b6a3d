package assignment

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestKeyedMutex_SerializesSameKey(t *testing.T) {
	t.Parallel()

	km := NewKeyedMutex()
	unlock, err := km.Lock(context.Background(), "E001")
	if err != nil {
		t.Fatalf("Lock returned error: %v", err)
	}

	var acquired atomic.Bool
	done := make(chan struct{})
	go func() {
		defer close(done)
		second, err := km.Lock(context.Background(), "E001")
		if err != nil {
			t.Errorf("second Lock returned error: %v", err)
			return
		}
		acquired.Store(true)
		second()
	}()

	time.Sleep(20 * time.Millisecond)
	if acquired.Load() {
		t.Fatalf("second lock acquired while first is held")
	}

	unlock()
	<-done
	if !acquired.Load() {
		t.Fatalf("second lock was never acquired")
	}
}

func TestKeyedMutex_DifferentKeysDoNotBlock(t *testing.T) {
	t.Parallel()

	km := NewKeyedMutex()
	unlockA, err := km.Lock(context.Background(), "E001")
	if err != nil {
		t.Fatalf("Lock returned error: %v", err)
	}
	defer unlockA()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	unlockB, err := km.Lock(ctx, "E002")
	if err != nil {
		t.Fatalf("expected independent key to lock, got %v", err)
	}
	unlockB()
}

func TestKeyedMutex_ContextCancel(t *testing.T) {
	t.Parallel()

	km := NewKeyedMutex()
	unlock, err := km.Lock(context.Background(), "E001")
	if err != nil {
		t.Fatalf("Lock returned error: %v", err)
	}
	defer unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := km.Lock(ctx, "E001"); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestKeyedMutex_ReleasesEntries(t *testing.T) {
	t.Parallel()

	km := NewKeyedMutex()
	unlock, err := km.Lock(context.Background(), "E001")
	if err != nil {
		t.Fatalf("Lock returned error: %v", err)
	}
	unlock()
	unlock()

	km.mu.Lock()
	defer km.mu.Unlock()
	if len(km.locks) != 0 {
		t.Fatalf("expected lock table to be empty, got %d entries", len(km.locks))
	}
}

type recordingLocker struct {
	name  string
	log   *[]string
	fails bool
}

func (r recordingLocker) Lock(context.Context, string) (func(), error) {
	if r.fails {
		return func() {}, errors.New("lock failed")
	}
	*r.log = append(*r.log, "lock "+r.name)
	return func() { *r.log = append(*r.log, "unlock "+r.name) }, nil
}

func TestChainLockers_ReleasesInReverse(t *testing.T) {
	t.Parallel()

	var log []string
	chain := ChainLockers(recordingLocker{name: "a", log: &log}, nil, recordingLocker{name: "b", log: &log})

	unlock, err := chain.Lock(context.Background(), "E001")
	if err != nil {
		t.Fatalf("Lock returned error: %v", err)
	}
	unlock()

	want := []string{"lock a", "lock b", "unlock b", "unlock a"}
	if len(log) != len(want) {
		t.Fatalf("unexpected log: %v", log)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("unexpected log: %v", log)
		}
	}
}

func TestChainLockers_FailureReleasesAcquired(t *testing.T) {
	t.Parallel()

	var log []string
	chain := ChainLockers(recordingLocker{name: "a", log: &log}, recordingLocker{name: "b", log: &log, fails: true})

	if _, err := chain.Lock(context.Background(), "E001"); err == nil {
		t.Fatalf("expected error")
	}
	if len(log) != 2 || log[1] != "unlock a" {
		t.Fatalf("expected first lock to be released, got %v", log)
	}
}
