package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidPriority = errors.New("model: invalid task priority")
	ErrInvalidStatus   = errors.New("model: invalid status filter")
	ErrInvalidSort     = errors.New("model: invalid sort option")
)

// DefaultCategory is assigned to tasks created without a category.
const DefaultCategory = "일반"

// DefaultCategories seeds the category set when nothing has been persisted.
var DefaultCategories = []string{"일반", "업무", "개인"}

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

// Rank orders priorities for sorting; higher is more urgent.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

func (p Priority) Label() string {
	switch p {
	case PriorityHigh:
		return "높음"
	case PriorityMedium:
		return "중간"
	case PriorityLow:
		return "낮음"
	default:
		return "없음"
	}
}

// Color is an ANSI 256 colour code suitable for lipgloss.Color.
func (p Priority) Color() string {
	switch p {
	case PriorityHigh:
		return "203"
	case PriorityMedium:
		return "215"
	case PriorityLow:
		return "77"
	default:
		return "245"
	}
}

// Raise returns the next more urgent priority, saturating at high.
func (p Priority) Raise() Priority {
	switch p {
	case PriorityLow:
		return PriorityMedium
	case PriorityMedium, PriorityHigh:
		return PriorityHigh
	default:
		return PriorityMedium
	}
}

// Lower returns the next less urgent priority, saturating at low.
func (p Priority) Lower() Priority {
	switch p {
	case PriorityHigh:
		return PriorityMedium
	case PriorityMedium, PriorityLow:
		return PriorityLow
	default:
		return PriorityMedium
	}
}

func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high", "h", "높음":
		return PriorityHigh, nil
	case "medium", "med", "m", "중간":
		return PriorityMedium, nil
	case "low", "l", "낮음":
		return PriorityLow, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPriority, s)
	}
}

type Task struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	Priority  Priority  `json:"priority"`
	Category  string    `json:"category"`
	DueDate   *string   `json:"dueDate"`
	CreatedAt time.Time `json:"createdAt"`
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if strings.TrimSpace(t.Text) == "" {
		return errors.New("model: task text is required")
	}
	if !t.Priority.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, t.Priority)
	}
	if t.DueDate != nil {
		if _, err := time.Parse(DateLayout, *t.DueDate); err != nil {
			return fmt.Errorf("model: invalid due date %q: %w", *t.DueDate, err)
		}
	}
	return nil
}

// DateLayout is the persisted due date format.
const DateLayout = "2006-01-02"

// Overdue reports whether the task is incomplete and its due date lies
// strictly before the calendar day of now.
func (t Task) Overdue(now time.Time) bool {
	if t.Completed || t.DueDate == nil {
		return false
	}
	due, err := time.ParseInLocation(DateLayout, *t.DueDate, now.Location())
	if err != nil {
		return false
	}
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	return due.Before(today)
}

type StatusFilter string

const (
	StatusAll       StatusFilter = "all"
	StatusActive    StatusFilter = "active"
	StatusCompleted StatusFilter = "completed"
)

func (s StatusFilter) IsValid() bool {
	switch s {
	case StatusAll, StatusActive, StatusCompleted:
		return true
	default:
		return false
	}
}

func (s StatusFilter) Next() StatusFilter {
	switch s {
	case StatusAll:
		return StatusActive
	case StatusActive:
		return StatusCompleted
	default:
		return StatusAll
	}
}

func (s StatusFilter) Label() string {
	switch s {
	case StatusActive:
		return "진행 중"
	case StatusCompleted:
		return "완료됨"
	default:
		return "모두 보기"
	}
}

func ParseStatusFilter(s string) (StatusFilter, error) {
	v := StatusFilter(strings.ToLower(strings.TrimSpace(s)))
	if !v.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return v, nil
}

type SortOption string

const (
	SortNewest   SortOption = "newest"
	SortOldest   SortOption = "oldest"
	SortPriority SortOption = "priority"
)

func (s SortOption) IsValid() bool {
	switch s {
	case SortNewest, SortOldest, SortPriority:
		return true
	default:
		return false
	}
}

func (s SortOption) Next() SortOption {
	switch s {
	case SortNewest:
		return SortOldest
	case SortOldest:
		return SortPriority
	default:
		return SortNewest
	}
}

func (s SortOption) Label() string {
	switch s {
	case SortOldest:
		return "오래된순"
	case SortPriority:
		return "우선순위순"
	default:
		return "최신순"
	}
}

func ParseSortOption(s string) (SortOption, error) {
	v := SortOption(strings.ToLower(strings.TrimSpace(s)))
	if !v.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidSort, s)
	}
	return v, nil
}
