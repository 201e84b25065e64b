//go:build integration_pg

package repo

import (
	"context"
	"sync"
	"testing"
	"time"

	"bankingops/internal/platform/store/pgtest"
	"bankingops/internal/services/idempotency/domain"
)

func TestMarksPointLookupAndConflict(t *testing.T) {
	db := pgtest.Start(t)
	ctx := context.Background()
	r := NewPG().Bind(db)
	key := domain.NewKey(domain.KindValidate, "0d5c1b7e-0000-4000-8000-000000000001", "Create", 20)

	if ok, err := r.Exists(ctx, key); err != nil || ok {
		t.Fatalf("absent key: ok=%v err=%v", ok, err)
	}

	now := time.Now().UTC().Truncate(time.Microsecond)
	exp := now.Add(time.Hour)
	inserted, err := r.Insert(ctx, domain.Mark{Key: key, RecordedAt: now, ExpiresAt: &exp})
	if err != nil || !inserted {
		t.Fatalf("first insert: inserted=%v err=%v", inserted, err)
	}

	inserted, err = r.Insert(ctx, domain.Mark{Key: key, RecordedAt: now.Add(time.Minute)})
	if err != nil || inserted {
		t.Fatalf("duplicate insert should be a silent conflict: inserted=%v err=%v", inserted, err)
	}

	var at, expires time.Time
	row := db.QueryRow(ctx, `SELECT recorded_at, expires_at FROM operation_marks WHERE key = $1`, string(key))
	if err := row.Scan(&at, &expires); err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !at.Equal(now) || !expires.Equal(exp) {
		t.Fatalf("first mark should win, got recorded_at=%v expires_at=%v", at, expires)
	}
}

func TestMarksRacingInsertsSingleWinner(t *testing.T) {
	db := pgtest.Start(t)
	ctx := context.Background()
	r := NewPG().Bind(db)
	key := domain.NewKey(domain.KindFraudScore, "race", "Update", 40)

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := r.Insert(ctx, domain.Mark{Key: key, RecordedAt: time.Now().UTC()})
			if err != nil {
				t.Errorf("insert: %v", err)
				return
			}
			if ok {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	if wins != 1 {
		t.Fatalf("wins = %d, want exactly 1", wins)
	}
}
