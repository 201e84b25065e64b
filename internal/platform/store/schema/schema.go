// Package schema holds the DDL for the postgres and clickhouse stores
package schema

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"bankingops/internal/platform/store"
)

//go:embed pg.sql
var pgSQL string

//go:embed ch.sql
var chSQL string

// Postgres returns the postgres DDL split into statements
func Postgres() []string { return Statements(pgSQL) }

// Clickhouse returns the clickhouse DDL split into statements
func Clickhouse() []string { return Statements(chSQL) }

// Statements splits a script on semicolons, dropping comment-only and blank chunks
func Statements(script string) []string {
	var out []string
	for _, chunk := range strings.Split(script, ";") {
		var lines []string
		for _, ln := range strings.Split(chunk, "\n") {
			if t := strings.TrimSpace(ln); t != "" && !strings.HasPrefix(t, "--") {
				lines = append(lines, ln)
			}
		}
		if stmt := strings.TrimSpace(strings.Join(lines, "\n")); stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}

// ApplyPostgres runs every postgres statement inside one transaction
func ApplyPostgres(ctx context.Context, tx store.TxRunner) error {
	return tx.Tx(ctx, func(q store.RowQuerier) error {
		for i, stmt := range Postgres() {
			if _, err := q.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("schema: pg statement %d: %w", i, err)
			}
		}
		return nil
	})
}

// ApplyClickhouse creates the decision log table
func ApplyClickhouse(ctx context.Context, c store.Clickhouse) error {
	for i, stmt := range Clickhouse() {
		if err := c.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("schema: ch statement %d: %w", i, err)
		}
	}
	return nil
}
