// Package domain defines operation keys and the guard contract
package domain

import (
	"context"
	"strconv"
	"strings"
	"time"
)

// Key identifies one logical attempt at a rule
type Key string

// Kind prefixes a key with the rule that owns it
type Kind string

const (
	// KindValidate is the transaction validation rule
	KindValidate Kind = "txn-validate"
	// KindFraudScore is the fraud scoring rule
	KindFraudScore Kind = "txn-fraudscore"
)

// NewKey builds {kind}:{recordID}:{message}:{stage}
func NewKey(kind Kind, recordID, message string, stage int) Key {
	var sb strings.Builder
	sb.Grow(len(kind) + len(recordID) + len(message) + 8)
	sb.WriteString(string(kind))
	sb.WriteByte(':')
	sb.WriteString(recordID)
	sb.WriteByte(':')
	sb.WriteString(message)
	sb.WriteByte(':')
	sb.WriteString(strconv.Itoa(stage))
	return Key(sb.String())
}

// Mark is a persisted completed key
type Mark struct {
	Key        Key
	RecordedAt time.Time
	ExpiresAt  *time.Time
}

// Guard suppresses duplicate side effects for replayed operations
type Guard interface {
	// WasProcessed is false for absent keys, never an error for absence
	WasProcessed(ctx context.Context, key Key) (bool, error)
	// MarkProcessed must be the last side effect of a rule
	MarkProcessed(ctx context.Context, key Key, expiresAt *time.Time) error
}
