// Package repo writes and reads the decision log in ClickHouse
package repo

import (
	"context"
	"fmt"
	"time"

	perr "bankingops/internal/platform/errors"
	"bankingops/internal/platform/store"
	"bankingops/internal/services/audit/domain"
)

const table = "rule_decisions"

var columns = []string{
	"at", "operation", "correlation_id", "record_id",
	"outcome", "category", "code", "elapsed_ms",
}

const recentSQL = `SELECT at, operation, correlation_id, record_id, outcome, category, code, elapsed_ms
	FROM rule_decisions
	ORDER BY at DESC
	LIMIT %d`

// CH is the ClickHouse decision log repo
type CH struct {
	db store.Clickhouse
}

// NewCH binds the repo to a ClickHouse seam
func NewCH(db store.Clickhouse) *CH { return &CH{db: db} }

// Insert writes decisions as one batch
func (r *CH) Insert(ctx context.Context, ds ...domain.Decision) error {
	if len(ds) == 0 {
		return nil
	}
	rows := make([][]any, 0, len(ds))
	for _, d := range ds {
		rows = append(rows, []any{
			d.At.UTC(), d.Operation, d.CorrelationID, d.RecordID,
			string(d.Outcome), d.Category, string(d.Code), d.ElapsedMS,
		})
	}
	return r.db.Insert(ctx, table, columns, rows)
}

// Recent returns the newest decisions first
func (r *CH) Recent(ctx context.Context, limit int) ([]domain.Decision, error) {
	if limit <= 0 || limit > 1000 {
		limit = 100
	}
	rows, err := r.db.Query(ctx, fmt.Sprintf(recentSQL, limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Decision
	for rows.Next() {
		var (
			d       domain.Decision
			at      time.Time
			outcome string
			code    string
		)
		if err := rows.Scan(&at, &d.Operation, &d.CorrelationID, &d.RecordID,
			&outcome, &d.Category, &code, &d.ElapsedMS); err != nil {
			return nil, err
		}
		d.At = at
		d.Outcome = domain.Outcome(outcome)
		d.Code = perr.ErrorCode(code)
		out = append(out, d)
	}
	return out, rows.Err()
}
