package todo

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/sandeepkv93/dashd/internal/model"
	"github.com/sandeepkv93/dashd/internal/persist"
)

// Board couples the task store and category set with write-through
// persistence. Every committed mutation is saved before returning; save
// failures are logged by the adapter and never undo the mutation.
type Board struct {
	store      *Store
	categories *Categories
	persist    *persist.Adapter
	log        *log.Logger
}

func NewBoard(store *Store, adapter *persist.Adapter, logger *log.Logger) *Board {
	return &Board{
		store:      store,
		categories: NewCategories(model.DefaultCategories),
		persist:    adapter,
		log:        logger.WithPrefix("todo"),
	}
}

// Hydrate loads tasks and categories once at start.
func (b *Board) Hydrate(ctx context.Context) {
	b.store.Replace(b.persist.LoadTasks(ctx))
	b.categories = NewCategories(b.persist.LoadCategories(ctx))
	completed, total := b.store.Counts()
	b.log.Info("hydrated", "tasks", total, "completed", completed, "categories", len(b.categories.Names()))
}

func (b *Board) Tasks() []model.Task          { return b.store.Tasks() }
func (b *Board) Categories() []string         { return b.categories.Names() }
func (b *Board) NextCategory(c string) string { return b.categories.Next(c) }
func (b *Board) Counts() (int, int)           { return b.store.Counts() }

func (b *Board) Get(id string) (model.Task, bool) { return b.store.Get(id) }

func (b *Board) Add(ctx context.Context, in NewTask) (model.Task, bool) {
	task, ok := b.store.Add(in)
	if !ok {
		return model.Task{}, false
	}
	b.log.Debug("task added", "id", task.ID, "priority", task.Priority, "category", task.Category)
	b.saveTasks(ctx)
	return task, true
}

func (b *Board) Toggle(ctx context.Context, id string) bool {
	return b.commit(ctx, b.store.Toggle(id))
}

func (b *Board) Delete(ctx context.Context, id string) bool {
	return b.commit(ctx, b.store.Delete(id))
}

func (b *Board) SetPriority(ctx context.Context, id string, p model.Priority) bool {
	return b.commit(ctx, b.store.SetPriority(id, p))
}

func (b *Board) ClearCompleted(ctx context.Context) int {
	n := b.store.ClearCompleted()
	b.commit(ctx, n > 0)
	return n
}

func (b *Board) AddCategory(ctx context.Context, name string) bool {
	if !b.categories.Add(name) {
		return false
	}
	_ = b.persist.SaveCategories(ctx, b.categories.Names())
	return true
}

func (b *Board) commit(ctx context.Context, changed bool) bool {
	if changed {
		b.saveTasks(ctx)
	}
	return changed
}

func (b *Board) saveTasks(ctx context.Context) {
	_ = b.persist.SaveTasks(ctx, b.store.Tasks())
}
