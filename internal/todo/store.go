package todo

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sandeepkv93/dashd/internal/model"
)

// Store is the in-memory task list, newest first. Mutators report whether
// anything changed; unknown ids are no-ops.
type Store struct {
	tasks []model.Task
	newID func() string
	now   func() time.Time
}

type Option func(*Store)

// WithIDFunc replaces the UUIDv7 id source.
func WithIDFunc(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

func WithClock(fn func() time.Time) Option {
	return func(s *Store) { s.now = fn }
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		tasks: []model.Task{},
		newID: newTaskID,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// newTaskID returns a time-ordered UUIDv7; uuid.NewV7 keeps ids strictly
// increasing within the same millisecond.
func newTaskID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Replace swaps in a hydrated list, keeping its order.
func (s *Store) Replace(tasks []model.Task) {
	s.tasks = append([]model.Task(nil), tasks...)
}

func (s *Store) Tasks() []model.Task {
	return append([]model.Task(nil), s.tasks...)
}

func (s *Store) Len() int { return len(s.tasks) }

func (s *Store) Get(id string) (model.Task, bool) {
	if i := s.index(id); i >= 0 {
		return s.tasks[i], true
	}
	return model.Task{}, false
}

type NewTask struct {
	Text     string
	Priority model.Priority
	Category string
	DueDate  string
}

// Add prepends a task. Blank text and a due date outside model.DateLayout
// are rejected silently.
func (s *Store) Add(in NewTask) (model.Task, bool) {
	if strings.TrimSpace(in.Text) == "" {
		return model.Task{}, false
	}
	priority := in.Priority
	if !priority.IsValid() {
		priority = model.PriorityMedium
	}
	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = model.DefaultCategory
	}
	var due *string
	if d := strings.TrimSpace(in.DueDate); d != "" {
		if _, err := time.Parse(model.DateLayout, d); err != nil {
			return model.Task{}, false
		}
		due = &d
	}
	task := model.Task{
		ID:        s.newID(),
		Text:      in.Text,
		Priority:  priority,
		Category:  category,
		DueDate:   due,
		CreatedAt: s.now().UTC().Round(0),
	}
	s.tasks = append([]model.Task{task}, s.tasks...)
	return task, true
}

func (s *Store) Toggle(id string) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.tasks[i].Completed = !s.tasks[i].Completed
	return true
}

func (s *Store) Delete(id string) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.tasks = append(s.tasks[:i:i], s.tasks[i+1:]...)
	return true
}

// SetPriority reports false for unknown ids, invalid priorities and
// unchanged values.
func (s *Store) SetPriority(id string, p model.Priority) bool {
	if !p.IsValid() {
		return false
	}
	i := s.index(id)
	if i < 0 || s.tasks[i].Priority == p {
		return false
	}
	s.tasks[i].Priority = p
	return true
}

// ClearCompleted drops every completed task and returns how many went.
func (s *Store) ClearCompleted() int {
	kept := make([]model.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if !t.Completed {
			kept = append(kept, t)
		}
	}
	removed := len(s.tasks) - len(kept)
	s.tasks = kept
	return removed
}

func (s *Store) Counts() (completed, total int) {
	for _, t := range s.tasks {
		if t.Completed {
			completed++
		}
	}
	return completed, len(s.tasks)
}

func (s *Store) index(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}
