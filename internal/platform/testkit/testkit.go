// Package testkit holds the few helpers tests across the platform share
package testkit

import (
	"sync"
	"testing"
)

// MustPanic fails t unless fn panics, and returns the recovered value
func MustPanic(t testing.TB, fn func()) (recovered any) {
	t.Helper()
	defer func() {
		recovered = recover()
		if recovered == nil {
			t.Fatal("expected a panic")
		}
	}()
	fn()
	return nil
}

var seams sync.Mutex

// Serial holds a process-wide lock until t ends; take it before Swap
func Serial(t testing.TB) {
	t.Helper()
	seams.Lock()
	t.Cleanup(seams.Unlock)
}

// Swap points *target at v until t ends
func Swap[T any](t testing.TB, target *T, v T) {
	t.Helper()
	prev := *target
	*target = v
	t.Cleanup(func() { *target = prev })
}
