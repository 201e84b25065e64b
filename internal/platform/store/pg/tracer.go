package pg

import (
	"context"
	"strings"
	"time"

	"bankingops/internal/platform/logger"

	"github.com/rs/zerolog"
)

// QueryEvent is one finished statement. Bind values are never carried, only
// their count: they hold customer identifiers and amounts.
type QueryEvent struct {
	SQL     string
	NArgs   int
	Elapsed time.Duration
	Err     error
	Slow    bool
}

// QueryTracer receives a QueryEvent per statement
type QueryTracer interface {
	OnQuery(ctx context.Context, ev QueryEvent)
}

// Tracer logs every statement at info and slow ones at warn, whatever the root level
func Tracer(log logger.Logger) QueryTracer {
	return logTracer{log: log.Level(zerolog.DebugLevel).With().Str("component", "pg").Logger()}
}

type logTracer struct{ log logger.Logger }

func (t logTracer) OnQuery(_ context.Context, ev QueryEvent) {
	e := t.log.Info()
	if ev.Slow {
		e = t.log.Warn()
	}
	e.Dur("elapsed_ms", ev.Elapsed).
		Bool("slow", ev.Slow).
		Str("sql", oneLine(ev.SQL)).
		Int("nargs", ev.NArgs).
		Err(ev.Err).
		Msg("pg query")
}

// oneLine collapses whitespace runs so multi-line statements log on one line
func oneLine(sql string) string { return strings.Join(strings.Fields(sql), " ") }
