package stores

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func newTestStore(t *testing.T) *GORMTraceStore {
	t.Helper()
	store, err := NewSQLiteTraceStore(filepath.Join(t.TempDir(), "traces.sqlite"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// storedTraces returns up to limit traces, newest first. A zero limit returns all.
func storedTraces(t *testing.T, store *GORMTraceStore, limit int) []*InteractionTrace {
	t.Helper()
	var traces []*InteractionTrace
	q := store.db.Order("created_at DESC").Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&traces).Error; err != nil {
		t.Fatalf("failed to read traces: %v", err)
	}
	return traces
}

func TestGORMTraceStore_SaveTrace(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	base := time.Now().Add(-time.Minute)

	traces := []*InteractionTrace{
		{CreatedAt: base, RequestID: "a", Mode: ModeChat, Status: StatusOK, DurationMS: 12},
		{CreatedAt: base.Add(time.Second), RequestID: "b", Mode: ModeTool, ToolName: "navigate",
			Args: map[string]any{"screen": "camera"}, Status: StatusOK},
		{CreatedAt: base.Add(2 * time.Second), RequestID: "c", Mode: ModeTool, Status: StatusNoAction},
	}
	for _, tr := range traces {
		if err := store.SaveTrace(ctx, tr); err != nil {
			t.Fatalf("SaveTrace failed: %v", err)
		}
	}

	got := storedTraces(t, store, 2)
	if len(got) != 2 {
		t.Fatalf("expected 2 traces, got %d", len(got))
	}
	if got[0].RequestID != "c" || got[1].RequestID != "b" {
		t.Errorf("expected newest first [c b], got [%s %s]", got[0].RequestID, got[1].RequestID)
	}
	if got[1].Args["screen"] != "camera" {
		t.Errorf("expected args to round-trip through ArgsJSON, got %v", got[1].Args)
	}

	if all := storedTraces(t, store, 0); len(all) != 3 {
		t.Errorf("expected 3 stored traces, got %d", len(all))
	}
}

func TestGORMTraceStore_DeleteOlderThan(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	now := time.Now()

	for i, age := range []time.Duration{48 * time.Hour, 30 * time.Hour, time.Hour} {
		tr := &InteractionTrace{CreatedAt: now.Add(-age), Mode: ModeChat, Status: StatusOK, DurationMS: int64(i)}
		if err := store.SaveTrace(ctx, tr); err != nil {
			t.Fatalf("SaveTrace failed: %v", err)
		}
	}

	n, err := store.DeleteOlderThan(ctx, now.Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("DeleteOlderThan failed: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 deleted, got %d", n)
	}
	if left := storedTraces(t, store, 0); len(left) != 1 {
		t.Errorf("expected 1 remaining trace, got %d", len(left))
	}
}

func TestGORMTraceStore_Ping(t *testing.T) {
	store := newTestStore(t)
	if err := store.Ping(context.Background()); err != nil {
		t.Errorf("expected ping to succeed, got %v", err)
	}

	store.Close()
	if err := store.Ping(context.Background()); err == nil {
		t.Error("expected ping to fail after close")
	}
}

func TestNopTraceStore_IsNotPinger(t *testing.T) {
	var s TraceStore = NopTraceStore{}
	if _, ok := s.(Pinger); ok {
		t.Error("a disabled store should not report health")
	}
	var g TraceStore = newTestStore(t)
	if _, ok := g.(Pinger); !ok {
		t.Error("expected gorm store to implement Pinger")
	}
}

func TestNewGORMTraceStore_NilDB(t *testing.T) {
	if _, err := NewGORMTraceStore(nil); err == nil {
		t.Error("expected error for nil database")
	}
}

func TestNewStore_Types(t *testing.T) {
	s, err := NewStore(NewStoreConfig("", ""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := s.(NopTraceStore); !ok {
		t.Errorf("expected NopTraceStore for empty type, got %T", s)
	}

	s, err = NewStore(NewStoreConfig("sqlite", filepath.Join(t.TempDir(), "f.sqlite")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer s.Close()
	if _, ok := s.(*GORMTraceStore); !ok {
		t.Errorf("expected *GORMTraceStore for sqlite, got %T", s)
	}

	if _, err := NewStore(NewStoreConfig("mysql", "")); err == nil {
		t.Error("expected error for unsupported type")
	}
}

func TestRetention_Prune(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	fixed := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)

	old := &InteractionTrace{CreatedAt: fixed.Add(-8 * 24 * time.Hour), Mode: ModeTool, Status: StatusOK}
	recent := &InteractionTrace{CreatedAt: fixed.Add(-time.Hour), Mode: ModeTool, Status: StatusOK}
	for _, tr := range []*InteractionTrace{old, recent} {
		if err := store.SaveTrace(ctx, tr); err != nil {
			t.Fatalf("SaveTrace failed: %v", err)
		}
	}

	r, err := NewRetention(store, "@daily", 7*24*time.Hour, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewRetention failed: %v", err)
	}
	r.now = func() time.Time { return fixed }

	n, err := r.Prune(ctx)
	if err != nil {
		t.Fatalf("Prune failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 pruned trace, got %d", n)
	}
}

func TestNewRetention_InvalidSchedule(t *testing.T) {
	if _, err := NewRetention(NopTraceStore{}, "every tuesday", time.Hour, zerolog.Nop()); err == nil {
		t.Error("expected error for invalid cron expression")
	}
	if _, err := NewRetention(NopTraceStore{}, "@daily", 0, zerolog.Nop()); err == nil {
		t.Error("expected error for non-positive max age")
	}
}

func TestRetention_StartStop(t *testing.T) {
	r, err := NewRetention(NopTraceStore{}, "*/5 * * * *", time.Hour, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewRetention failed: %v", err)
	}
	r.Start()
	r.Stop()
}
