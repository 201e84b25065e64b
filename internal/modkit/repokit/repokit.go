// Package repokit holds the seams SQL repos bind to
package repokit

import (
	"context"
	"fmt"

	"bankingops/internal/platform/store"
)

type (
	// Queryer is the read and write surface SQL repos use
	Queryer = store.RowQuerier

	// TxRunner is a Queryer that can also open transactions
	TxRunner = store.TxRunner
)

// Binder binds a repo implementation to a Queryer, either the pool or an open transaction
type Binder[T any] interface {
	Bind(Queryer) T
}

// MustGuard panics when a configured backend does not answer at startup
func MustGuard(ctx context.Context, st interface{ Guard(context.Context) error }) {
	if err := st.Guard(ctx); err != nil {
		panic(fmt.Errorf("dependency guard failed: %w", err))
	}
}
