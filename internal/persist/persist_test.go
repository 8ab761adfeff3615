package persist

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sandeepkv93/dashd/internal/logging"
	"github.com/sandeepkv93/dashd/internal/model"
	"github.com/sandeepkv93/dashd/internal/storage"
)

func newAdapter(t *testing.T) (*Adapter, *storage.MemoryKV, *bytes.Buffer) {
	t.Helper()
	kv := storage.NewMemoryKV(storage.Options{})
	var buf bytes.Buffer
	return New(kv, logging.NewWriter(&buf, log.DebugLevel, "")), kv, &buf
}

func strPtr(s string) *string { return &s }

func TestTasksRoundTrip(t *testing.T) {
	a, _, _ := newAdapter(t)
	ctx := context.Background()
	created := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	in := []model.Task{
		{ID: "b", Text: "buy milk", Priority: model.PriorityHigh, Category: "일반", CreatedAt: created.Add(time.Minute)},
		{ID: "a", Text: "file taxes", Completed: true, Priority: model.PriorityLow, Category: "업무", DueDate: strPtr("2026-03-01"), CreatedAt: created},
	}
	if err := a.SaveTasks(ctx, in); err != nil {
		t.Fatalf("save: %v", err)
	}
	got := a.LoadTasks(ctx)
	if !reflect.DeepEqual(got, in) {
		t.Fatalf("round trip mismatch:\n got %#v\nwant %#v", got, in)
	}
}

func TestCategoriesAndHistoryRoundTrip(t *testing.T) {
	a, _, _ := newAdapter(t)
	ctx := context.Background()

	cats := []string{"일반", "업무", "개인", "공부"}
	if err := a.SaveCategories(ctx, cats); err != nil {
		t.Fatalf("save categories: %v", err)
	}
	if got := a.LoadCategories(ctx); !reflect.DeepEqual(got, cats) {
		t.Fatalf("categories mismatch: %v", got)
	}

	hist := []string{"serendipity", "hello", "leverage"}
	if err := a.SaveHistory(ctx, hist); err != nil {
		t.Fatalf("save history: %v", err)
	}
	if got := a.LoadHistory(ctx); !reflect.DeepEqual(got, hist) {
		t.Fatalf("history mismatch: %v", got)
	}
}

func TestMissingKeysFallBackToDefaults(t *testing.T) {
	a, _, _ := newAdapter(t)
	ctx := context.Background()
	if got := a.LoadTasks(ctx); len(got) != 0 || got == nil {
		t.Fatalf("expected empty non-nil task list, got %#v", got)
	}
	if got := a.LoadCategories(ctx); !reflect.DeepEqual(got, model.DefaultCategories) {
		t.Fatalf("expected default categories, got %v", got)
	}
	if got := a.LoadHistory(ctx); len(got) != 0 {
		t.Fatalf("expected empty history, got %v", got)
	}
}

func TestMalformedEntryIsAbsentAndLogged(t *testing.T) {
	a, kv, buf := newAdapter(t)
	ctx := context.Background()
	if err := kv.Set(ctx, KeyTasks, `{"not":"a list"`); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if got := a.LoadTasks(ctx); len(got) != 0 {
		t.Fatalf("expected empty tasks for malformed JSON, got %#v", got)
	}
	if !strings.Contains(buf.String(), "malformed entry") {
		t.Fatalf("expected warning in log, got %q", buf.String())
	}

	if _, ok := Load[[]string](ctx, a, KeyTasks); ok {
		t.Fatal("generic load must report absent for malformed data")
	}
}

func TestLoadTasksRepairsAndDropsBadRecords(t *testing.T) {
	a, kv, _ := newAdapter(t)
	ctx := context.Background()
	raw := `[
		{"id":"1","text":"ok","priority":"bogus","category":"","createdAt":"2026-02-09T12:00:00Z"},
		{"id":"1","text":"dupe","priority":"low","category":"x","createdAt":"2026-02-09T12:00:00Z"},
		{"id":"2","text":"  ","priority":"low","category":"x","createdAt":"2026-02-09T12:00:00Z"}
	]`
	if err := kv.Set(ctx, KeyTasks, raw); err != nil {
		t.Fatalf("seed: %v", err)
	}
	got := a.LoadTasks(ctx)
	if len(got) != 1 {
		t.Fatalf("expected 1 surviving task, got %#v", got)
	}
	if got[0].Priority != model.PriorityMedium || got[0].Category != model.DefaultCategory {
		t.Fatalf("expected defaults to be applied, got %#v", got[0])
	}
}

func TestHistoryCapEnforcedOnWriteAndRead(t *testing.T) {
	a, kv, _ := newAdapter(t)
	ctx := context.Background()
	hist := make([]string, 0, 30)
	for i := 0; i < 30; i++ {
		hist = append(hist, fmt.Sprintf("w%02d", i))
	}
	if err := a.SaveHistory(ctx, hist); err != nil {
		t.Fatalf("save: %v", err)
	}
	got := a.LoadHistory(ctx)
	if len(got) != model.HistoryCap || got[0] != "w00" || got[model.HistoryCap-1] != "w19" {
		t.Fatalf("unexpected capped history: %v", got)
	}

	if err := kv.Set(ctx, KeyHistory, `["a","b","a","","c"]`); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if got := a.LoadHistory(ctx); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Fatalf("expected deduplicated history, got %v", got)
	}
}

func TestSaveFailureIsLoggedAndReturned(t *testing.T) {
	a, kv, buf := newAdapter(t)
	ctx := context.Background()
	kv.FailWrites(KeyTasks, storage.ErrQuotaExceeded)

	err := a.SaveTasks(ctx, []model.Task{{ID: "1", Text: "x", Priority: model.PriorityLow}})
	if !errors.Is(err, storage.ErrQuotaExceeded) {
		t.Fatalf("expected quota error, got %v", err)
	}
	if !strings.Contains(buf.String(), "write failed") {
		t.Fatalf("expected error log, got %q", buf.String())
	}
}
