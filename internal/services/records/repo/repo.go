// Package repo provides the Postgres-backed record store
package repo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"bankingops/internal/modkit/repokit"
	perr "bankingops/internal/platform/errors"
	"bankingops/internal/platform/store"
	"bankingops/internal/services/records/domain"

	"github.com/google/uuid"
)

type (
	// PG is the Postgres binder for the records repo
	PG struct{}

	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder for the records repo
func NewPG() repokit.Binder[domain.Store] { return PG{} }

// Bind binds a Queryer to the records repo
func (PG) Bind(q repokit.Queryer) domain.Store { return &queries{q: q} }

const (
	selectRecordSQL = `SELECT fields FROM records WHERE entity = $1 AND id = $2::uuid`

	// jsonb || merges top-level keys so untouched fields survive
	updateRecordSQL = `UPDATE records
		SET fields = fields || $3::jsonb, updated_at = now()
		WHERE entity = $1 AND id = $2::uuid`

	insertRecordSQL = `INSERT INTO records (entity, id, fields) VALUES ($1, $2::uuid, $3::jsonb)`
)

// Retrieve implements domain.Store
func (r *queries) Retrieve(ctx context.Context, entity, id string, fields ...string) (domain.Record, error) {
	if err := checkID(id); err != nil {
		return domain.Record{}, err
	}
	var raw []byte
	if err := r.q.QueryRow(ctx, selectRecordSQL, entity, id).Scan(&raw); err != nil {
		if store.IsNoRows(err) {
			return domain.Record{}, perr.NotFoundf("%s %s not found", entity, id)
		}
		return domain.Record{}, perr.FromPostgresf(err, "retrieve %s", entity)
	}
	all, err := decodeFields(raw)
	if err != nil {
		return domain.Record{}, err
	}
	return domain.Record{Entity: entity, ID: id, Fields: project(all, fields)}, nil
}

// Update implements domain.Store
func (r *queries) Update(ctx context.Context, entity, id string, fields map[string]any) error {
	if err := checkID(id); err != nil {
		return err
	}
	body, err := json.Marshal(fields)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "encode %s fields", entity)
	}
	tag, err := r.q.Exec(ctx, updateRecordSQL, entity, id, string(body))
	if err != nil {
		return perr.FromPostgresf(err, "update %s", entity)
	}
	if tag.RowsAffected() == 0 {
		return perr.NotFoundf("%s %s not found", entity, id)
	}
	return nil
}

// Create implements domain.Store
func (r *queries) Create(ctx context.Context, entity string, fields map[string]any) (string, error) {
	if fields == nil {
		fields = map[string]any{}
	}
	body, err := json.Marshal(fields)
	if err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeUnknown, "encode %s fields", entity)
	}
	id := uuid.NewString()
	if _, err := r.q.Exec(ctx, insertRecordSQL, entity, id, string(body)); err != nil {
		return "", perr.FromPostgresf(err, "create %s", entity)
	}
	return id, nil
}

// Query implements domain.Store
func (r *queries) Query(ctx context.Context, entity string, filters map[string]any, top int) ([]domain.Record, error) {
	sql, args, err := buildQuery(entity, filters, top)
	if err != nil {
		return nil, err
	}
	out, err := store.Many(ctx, r.q, func(row store.Row) (domain.Record, error) {
		var (
			id  string
			raw []byte
		)
		if err := row.Scan(&id, &raw); err != nil {
			return domain.Record{}, perr.FromPostgresf(err, "scan %s", entity)
		}
		fields, err := decodeFields(raw)
		if err != nil {
			return domain.Record{}, err
		}
		return domain.Record{Entity: entity, ID: id, Fields: fields}, nil
	}, sql, args...)
	if err != nil {
		if _, ok := perr.As(err); ok {
			return nil, err
		}
		return nil, perr.FromPostgresf(err, "query %s", entity)
	}
	return out, nil
}

func buildQuery(entity string, filters map[string]any, top int) (string, []any, error) {
	var sb strings.Builder
	args := []any{entity}
	arg := func(v any) string { args = append(args, v); return fmt.Sprintf("$%d", len(args)) }

	sb.WriteString("SELECT id::text, fields FROM records WHERE entity = $1")
	if len(filters) > 0 {
		body, err := json.Marshal(filters)
		if err != nil {
			return "", nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "encode %s filters", entity)
		}
		sb.WriteString(" AND fields @> " + arg(string(body)) + "::jsonb")
	}
	sb.WriteString(" ORDER BY created_at, id")
	if top > 0 {
		sb.WriteString(" LIMIT " + arg(top))
	}
	return sb.String(), args, nil
}

func checkID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return perr.InvalidArgf("record id %q is not a uuid", id)
	}
	return nil
}

// decodeFields keeps numbers as json.Number so money never passes through float64
func decodeFields(raw []byte) (map[string]any, error) {
	out := map[string]any{}
	if len(raw) == 0 {
		return out, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&out); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeDB, "decode record fields")
	}
	return out, nil
}

func project(all map[string]any, fields []string) map[string]any {
	if len(fields) == 0 {
		return all
	}
	out := make(map[string]any, len(fields))
	for _, f := range fields {
		if v, ok := all[f]; ok {
			out[f] = v
		}
	}
	return out
}
