// Package repo stores setting overrides in Postgres
package repo

import (
	"context"

	"bankingops/internal/modkit/repokit"
	perr "bankingops/internal/platform/errors"
	"bankingops/internal/platform/store"

	"github.com/google/uuid"
)

type (
	// PG is the Postgres binder for the settings repo
	PG struct{}

	queries struct{ q repokit.Queryer }
)

// Repo is the settings repository surface
type Repo interface {
	LookupOverride(ctx context.Context, name string) (string, bool, error)
	Upsert(ctx context.Context, name, value string) error
}

// NewPG returns a binder for the settings repo
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind binds a Queryer to the settings repo
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

const (
	lookupOverrideSQL = `SELECT v.value
		FROM setting_definitions d
		JOIN setting_values v ON v.definition_id = d.id
		WHERE d.schema_name = $1
		LIMIT 1`

	upsertOverrideSQL = `WITH def AS (
			INSERT INTO setting_definitions (id, schema_name) VALUES ($1::uuid, $2)
			ON CONFLICT (schema_name) DO UPDATE SET schema_name = EXCLUDED.schema_name
			RETURNING id
		)
		INSERT INTO setting_values (definition_id, value)
		SELECT id, $3 FROM def
		ON CONFLICT (definition_id) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`
)

// LookupOverride implements domain.OverrideStore
func (r *queries) LookupOverride(ctx context.Context, name string) (string, bool, error) {
	var v string
	if err := r.q.QueryRow(ctx, lookupOverrideSQL, name).Scan(&v); err != nil {
		if store.IsNoRows(err) {
			return "", false, nil
		}
		return "", false, perr.FromPostgresf(err, "lookup override %s", name)
	}
	return v, true, nil
}

// Upsert implements domain.OverrideWriter
func (r *queries) Upsert(ctx context.Context, name, value string) error {
	if name == "" {
		return perr.InvalidArgf("setting name is required")
	}
	if _, err := r.q.Exec(ctx, upsertOverrideSQL, uuid.NewString(), name, value); err != nil {
		return perr.FromPostgresf(err, "upsert override %s", name)
	}
	return nil
}
