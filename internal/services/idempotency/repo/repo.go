// Package repo persists operation marks in Postgres
package repo

import (
	"context"

	"bankingops/internal/modkit/repokit"
	perr "bankingops/internal/platform/errors"
	"bankingops/internal/platform/store"
	"bankingops/internal/services/idempotency/domain"
)

type (
	// PG is the Postgres binder for the marks repo
	PG struct{}

	queries struct{ q repokit.Queryer }
)

// Repo is the marks repository surface
type Repo interface {
	Exists(ctx context.Context, key domain.Key) (bool, error)
	// Insert reports false when the key was already marked
	Insert(ctx context.Context, m domain.Mark) (bool, error)
}

// NewPG returns a binder for the marks repo
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind binds a Queryer to the marks repo
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

const (
	existsSQL = `SELECT EXISTS (SELECT 1 FROM operation_marks WHERE key = $1)`

	insertSQL = `INSERT INTO operation_marks (key, recorded_at, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO NOTHING`
)

// Exists implements Repo
func (r *queries) Exists(ctx context.Context, key domain.Key) (bool, error) {
	ok, err := store.Scalar[bool](ctx, r.q, existsSQL, string(key))
	if err != nil {
		return false, perr.FromPostgresf(err, "check mark %s", key)
	}
	return ok, nil
}

// Insert implements Repo
func (r *queries) Insert(ctx context.Context, m domain.Mark) (bool, error) {
	tag, err := r.q.Exec(ctx, insertSQL, string(m.Key), m.RecordedAt, m.ExpiresAt)
	if err != nil {
		return false, perr.FromPostgresf(err, "mark %s", m.Key)
	}
	return tag.RowsAffected() == 1, nil
}
