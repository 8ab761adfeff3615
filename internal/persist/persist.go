// Package persist owns every read and write of dashd's durable state. Values
// are JSON documents under fixed keys; reads never fail, writes are best effort.
package persist

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/sandeepkv93/dashd/internal/model"
	"github.com/sandeepkv93/dashd/internal/storage"
)

const (
	KeyTasks      = "todos"
	KeyCategories = "todoCategories"
	KeyHistory    = "vocabHistory"
)

type Adapter struct {
	kv  storage.KV
	log *log.Logger
}

func New(kv storage.KV, logger *log.Logger) *Adapter {
	return &Adapter{kv: kv, log: logger.WithPrefix("persist")}
}

// Load decodes the JSON value under key. Missing, unreadable and malformed
// entries all report ok == false; the latter two are logged.
func Load[T any](ctx context.Context, a *Adapter, key string) (T, bool) {
	var out T
	raw, ok, err := a.kv.Get(ctx, key)
	if err != nil {
		a.log.Warn("read failed, using defaults", "key", key, "err", err)
		return out, false
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return out, false
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		a.log.Warn("malformed entry, using defaults", "key", key, "err", err)
		var zero T
		return zero, false
	}
	return out, true
}

// Save encodes v and writes it under key. The error is logged here and
// returned for callers that want to show it; in-memory state is never
// rolled back.
func (a *Adapter) Save(ctx context.Context, key string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		a.log.Error("encode failed", "key", key, "err", err)
		return err
	}
	if err := a.kv.Set(ctx, key, string(payload)); err != nil {
		a.log.Error("write failed", "key", key, "bytes", len(payload), "err", err)
		return err
	}
	a.log.Debug("saved", "key", key, "bytes", len(payload))
	return nil
}

func (a *Adapter) LoadTasks(ctx context.Context) []model.Task {
	tasks, ok := Load[[]model.Task](ctx, a, KeyTasks)
	if !ok {
		return []model.Task{}
	}
	out := make([]model.Task, 0, len(tasks))
	seen := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		if seen[t.ID] {
			a.log.Warn("dropping duplicate task id", "id", t.ID)
			continue
		}
		if !t.Priority.IsValid() {
			t.Priority = model.PriorityMedium
		}
		if strings.TrimSpace(t.Category) == "" {
			t.Category = model.DefaultCategory
		}
		if err := t.Validate(); err != nil {
			a.log.Warn("dropping invalid task", "id", t.ID, "err", err)
			continue
		}
		seen[t.ID] = true
		out = append(out, t)
	}
	return out
}

func (a *Adapter) SaveTasks(ctx context.Context, tasks []model.Task) error {
	if tasks == nil {
		tasks = []model.Task{}
	}
	return a.Save(ctx, KeyTasks, tasks)
}

// LoadCategories returns the persisted set, or the defaults when absent.
func (a *Adapter) LoadCategories(ctx context.Context) []string {
	cats, ok := Load[[]string](ctx, a, KeyCategories)
	if !ok {
		return append([]string(nil), model.DefaultCategories...)
	}
	return dedupe(cats, 0)
}

func (a *Adapter) SaveCategories(ctx context.Context, cats []string) error {
	return a.Save(ctx, KeyCategories, dedupe(cats, 0))
}

func (a *Adapter) LoadHistory(ctx context.Context) []string {
	hist, ok := Load[[]string](ctx, a, KeyHistory)
	if !ok {
		return []string{}
	}
	return dedupe(hist, model.HistoryCap)
}

// SaveHistory writes at most model.HistoryCap most-recent-first terms.
func (a *Adapter) SaveHistory(ctx context.Context, hist []string) error {
	return a.Save(ctx, KeyHistory, dedupe(hist, model.HistoryCap))
}

func dedupe(in []string, limit int) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}
