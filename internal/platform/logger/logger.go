// Package logger owns the process-wide zerolog logger and the request-scoped
// fields (request id, correlation id, operation) child loggers pick up from a context
package logger

import (
	"context"
	"io"
	"os"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"bankingops/internal/platform/config/raw"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

// Logger is zerolog's logger under the project name
type Logger = zerolog.Logger

// Options configures Init
type Options struct {
	Level       string
	Format      string // json or console
	Service     string
	Component   string
	Writer      io.Writer
	WithCaller  bool
	SampleEvery int
}

// FromEnv reads LOG_LEVEL, LOG_FORMAT, LOG_SERVICE, LOG_COMPONENT, LOG_CALLER and LOG_SAMPLE
func FromEnv() Options {
	env := raw.New().Prefix("LOG_")
	return Options{
		Level:       env.String("LEVEL", "info"),
		Format:      strings.ToLower(env.String("FORMAT", "json")),
		Service:     env.String("SERVICE", "bankingops"),
		Component:   env.String("COMPONENT", ""),
		WithCaller:  env.Bool("CALLER", false),
		SampleEvery: env.Int("SAMPLE", 0),
	}
}

var (
	mu   sync.RWMutex
	root *Logger
)

// Init builds the root logger. Only the first call takes effect, including
// the implicit one Get makes from FromEnv.
func Init(opt Options) {
	mu.Lock()
	defer mu.Unlock()
	if root != nil {
		return
	}
	l := build(opt)
	root = &l
}

func build(opt Options) Logger {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.TimeFieldFormat = time.RFC3339Nano

	out := opt.Writer
	if out == nil {
		out = os.Stdout
	}
	if opt.Format == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}

	b := zerolog.New(out).Level(level(opt.Level)).With().Timestamp()
	if bi, ok := debug.ReadBuildInfo(); ok {
		b = b.Str("go_version", bi.GoVersion)
	}
	if opt.Service != "" {
		b = b.Str("service", opt.Service)
	}
	if opt.Component != "" {
		b = b.Str("component", opt.Component)
	}
	if opt.WithCaller {
		b = b.Caller()
	}
	l := b.Logger()
	if opt.SampleEvery > 1 {
		l = l.Sample(&zerolog.BasicSampler{N: uint32(opt.SampleEvery)})
	}
	return l
}

// level falls back to info for blank or unknown names
func level(s string) zerolog.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		return zerolog.WarnLevel
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// Get returns the root logger, initialising it from the environment on first use
func Get() *Logger {
	mu.RLock()
	l := root
	mu.RUnlock()
	if l != nil {
		return l
	}
	Init(FromEnv())
	mu.RLock()
	defer mu.RUnlock()
	return root
}

// Named returns a child tagged with component
func Named(component string) *Logger {
	if component == "" {
		return Get()
	}
	l := Get().With().Str("component", component).Logger()
	return &l
}

type scopeKey struct{}

type scope struct{ requestID, correlationID, operation string }

func scopeOf(ctx context.Context) scope {
	s, _ := ctx.Value(scopeKey{}).(scope)
	return s
}

// WithRequest records the request and correlation ids on ctx; blanks keep
// whatever an outer call already set
func WithRequest(ctx context.Context, requestID, correlationID string) context.Context {
	s := scopeOf(ctx)
	if requestID != "" {
		s.requestID = requestID
	}
	if correlationID != "" {
		s.correlationID = correlationID
	}
	return context.WithValue(ctx, scopeKey{}, s)
}

// WithOperation records the operation being dispatched and its correlation id
func WithOperation(ctx context.Context, operation, correlationID string) context.Context {
	ctx = WithRequest(ctx, "", correlationID)
	if operation == "" {
		return ctx
	}
	s := scopeOf(ctx)
	s.operation = operation
	return context.WithValue(ctx, scopeKey{}, s)
}

// C returns a child of the root carrying the fields recorded on ctx
func C(ctx context.Context) *Logger {
	s := scopeOf(ctx)
	b := Get().With()
	if s.requestID != "" {
		b = b.Str("request_id", s.requestID)
	}
	if s.correlationID != "" {
		b = b.Str("correlation_id", s.correlationID)
	}
	if s.operation != "" {
		b = b.Str("operation", s.operation)
	}
	l := b.Logger()
	return &l
}
