package repokit

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type guardFunc func(context.Context) error

func (f guardFunc) Guard(ctx context.Context) error { return f(ctx) }

func TestMustGuard(t *testing.T) {
	MustGuard(context.Background(), guardFunc(func(context.Context) error { return nil }))

	defer func() {
		err, _ := recover().(error)
		if err == nil || !strings.Contains(err.Error(), "pg: connection refused") {
			t.Fatalf("panic = %v", err)
		}
	}()
	MustGuard(context.Background(), guardFunc(func(context.Context) error {
		return errors.New("pg: connection refused")
	}))
}
