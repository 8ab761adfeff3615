package update

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/dashd/internal/commands"
	"github.com/sandeepkv93/dashd/internal/model"
	"github.com/sandeepkv93/dashd/internal/todo"
)

func (m Model) handleTodoKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	switch {
	case key.Matches(msg, k.Up):
		m.Cursor = max(m.selected(m.visibleTasks())-1, 0)
	case key.Matches(msg, k.Down):
		m.Cursor = m.selected(m.visibleTasks()) + 1
		m.clampCursor()
	case key.Matches(msg, k.Toggle):
		return m.toggleSelected()
	case key.Matches(msg, k.Delete):
		return m.deleteSelected()
	case key.Matches(msg, k.PriorityUp):
		return m.shiftPriority(model.Priority.Raise)
	case key.Matches(msg, k.PriorityDown):
		return m.shiftPriority(model.Priority.Lower)
	case key.Matches(msg, k.Add):
		m.Focus = PanelTodo
		m.mode = modeAdd
		m.addInput.SetValue("")
		return m, m.addInput.Focus()
	case key.Matches(msg, k.Search):
		m.Focus = PanelTodo
		m.mode = modeSearch
		m.searchInput.SetValue(m.Filter.Search)
		m.searchInput.CursorEnd()
		return m, m.searchInput.Focus()
	case key.Matches(msg, k.Filter):
		m.Filter.Status = m.Filter.Status.Next()
		m.Cursor = 0
		m.setStatus("상태 필터: "+m.Filter.Status.Label(), false)
	case key.Matches(msg, k.Category):
		m.Filter.Category = m.svc.Board.NextCategory(m.Filter.Category)
		m.Cursor = 0
		m.setStatus("분류 필터: "+categoryLabel(m.Filter.Category), false)
	case key.Matches(msg, k.Sort):
		m.Sort = m.Sort.Next()
		m.setStatus("정렬: "+m.Sort.Label(), false)
	case key.Matches(msg, k.HideDone):
		m.Filter.ShowCompleted = !m.Filter.ShowCompleted
		m.clampCursor()
		m.setStatus("완료 항목 표시: "+onOff(m.Filter.ShowCompleted), false)
	case key.Matches(msg, k.ClearDone):
		n := m.svc.Board.ClearCompleted(context.Background())
		m.clampCursor()
		m.setStatus(fmt.Sprintf("완료된 할 일 %d개를 지웠습니다", n), false)
	}
	return m, nil
}

func (m Model) handleAddKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeNormal
		m.addInput.SetValue("")
		m.addInput.Blur()
		return m, nil
	case "enter":
		raw := strings.TrimSpace(m.addInput.Value())
		m.mode = modeNormal
		m.addInput.SetValue("")
		m.addInput.Blur()
		if raw == "" {
			return m, nil
		}
		cmd, err := commands.Parse("add " + raw)
		if err != nil {
			m.setStatus(err.Error(), true)
			return m, nil
		}
		res, err := m.addTask(*cmd.Add)
		if err != nil {
			m.setStatus(err.Error(), true)
			return m, nil
		}
		m.setStatus(res.Message, false)
		return m, nil
	}
	var cmd tea.Cmd
	m.addInput, cmd = m.addInput.Update(msg)
	return m, cmd
}

// handleSearchKey filters live while typing. Enter keeps the query, esc
// clears it.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeNormal
		m.searchInput.SetValue("")
		m.searchInput.Blur()
		m.Filter.Search = ""
		m.clampCursor()
		return m, nil
	case "enter":
		m.mode = modeNormal
		m.searchInput.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.Filter.Search = m.searchInput.Value()
	m.Cursor = 0
	return m, cmd
}

// addTask creates a task and moves the cursor onto it. Without an explicit
// category the task joins the category currently filtered on.
func (m *Model) addTask(a commands.AddArgs) (commands.Result, error) {
	category := a.Category
	if category == "" {
		category = m.Filter.Category
	}
	if category != "" {
		m.svc.Board.AddCategory(context.Background(), category)
	}
	task, ok := m.svc.Board.Add(context.Background(), todo.NewTask{
		Text:     a.Text,
		Priority: a.Priority,
		Category: category,
		DueDate:  a.DueDate,
	})
	if !ok {
		return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "task needs text and a YYYY-MM-DD due date"}
	}
	for i, t := range m.visibleTasks() {
		if t.ID == task.ID {
			m.Cursor = i
			break
		}
	}
	return commands.Result{Message: fmt.Sprintf("추가됨: %s", task.Text)}, nil
}

func (m Model) toggleSelected() (tea.Model, tea.Cmd) {
	task, ok := m.current()
	if !ok {
		return m, nil
	}
	m.svc.Board.Toggle(context.Background(), task.ID)
	m.clampCursor()
	return m, nil
}

func (m Model) deleteSelected() (tea.Model, tea.Cmd) {
	task, ok := m.current()
	if !ok {
		return m, nil
	}
	m.svc.Board.Delete(context.Background(), task.ID)
	m.clampCursor()
	m.setStatus("삭제됨: "+task.Text, false)
	return m, nil
}

func (m Model) shiftPriority(step func(model.Priority) model.Priority) (tea.Model, tea.Cmd) {
	task, ok := m.current()
	if !ok {
		return m, nil
	}
	next := step(task.Priority)
	if m.svc.Board.SetPriority(context.Background(), task.ID, next) {
		m.setStatus(fmt.Sprintf("우선순위: %s", next.Label()), false)
	}
	m.followTask(task.ID)
	return m, nil
}

func (m Model) current() (model.Task, bool) {
	visible := m.visibleTasks()
	i := m.selected(visible)
	if i < 0 {
		return model.Task{}, false
	}
	return visible[i], true
}

// followTask keeps the cursor on id after a re-sort.
func (m *Model) followTask(id string) {
	for i, t := range m.visibleTasks() {
		if t.ID == id {
			m.Cursor = i
			return
		}
	}
	m.clampCursor()
}

func categoryLabel(c string) string {
	if c == "" {
		return "전체"
	}
	return c
}

func onOff(b bool) string {
	if b {
		return "켜짐"
	}
	return "꺼짐"
}
