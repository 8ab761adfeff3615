package update

import (
	"context"
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/dashd/internal/commands"
	"github.com/sandeepkv93/dashd/internal/model"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closePalette()
		return m, nil
	case "enter":
		raw := m.commandInput.Value()
		m.closePalette()
		return m.executePaletteCommand(raw)
	}
	var cmd tea.Cmd
	m.commandInput, cmd = m.commandInput.Update(msg)
	return m, cmd
}

func (m *Model) closePalette() {
	m.mode = modeNormal
	m.commandInput.SetValue("")
	m.commandInput.Blur()
}

// executePaletteCommand parses and runs one palette line. Handlers that
// start background work leave their command in follow; an empty result
// message means the handler already set the status.
func (m Model) executePaletteCommand(raw string) (tea.Model, tea.Cmd) {
	cmd, err := commands.Parse(strings.TrimSpace(raw))
	if err != nil {
		m.setStatus(err.Error(), true)
		return m, nil
	}

	var follow tea.Cmd
	ctx := context.Background()
	target := func(t commands.TargetArgs) (model.Task, error) {
		visible := m.visibleTasks()
		return commands.ResolveTarget(t.Ref, visible, m.selected(visible))
	}

	res, err := commands.Execute(cmd, commands.Handlers{
		Add: m.addTask,
		Done: func(t commands.TargetArgs) (commands.Result, error) {
			task, err := target(t)
			if err != nil {
				return commands.Result{}, err
			}
			m.svc.Board.Toggle(ctx, task.ID)
			m.clampCursor()
			if done, _ := m.svc.Board.Get(task.ID); done.Completed {
				return commands.Result{Message: "완료: " + task.Text}, nil
			}
			return commands.Result{Message: "다시 진행: " + task.Text}, nil
		},
		Delete: func(t commands.TargetArgs) (commands.Result, error) {
			task, err := target(t)
			if err != nil {
				return commands.Result{}, err
			}
			m.svc.Board.Delete(ctx, task.ID)
			m.clampCursor()
			return commands.Result{Message: "삭제됨: " + task.Text}, nil
		},
		Priority: func(t commands.TargetArgs) (commands.Result, error) {
			task, err := target(t)
			if err != nil {
				return commands.Result{}, err
			}
			m.svc.Board.SetPriority(ctx, task.ID, t.Priority)
			m.followTask(task.ID)
			return commands.Result{Message: fmt.Sprintf("우선순위 %s: %s", t.Priority.Label(), task.Text)}, nil
		},
		Clear: func() (commands.Result, error) {
			n := m.svc.Board.ClearCompleted(ctx)
			m.clampCursor()
			return commands.Result{Message: fmt.Sprintf("완료된 할 일 %d개를 지웠습니다", n)}, nil
		},
		Filter: func(f commands.FilterArgs) (commands.Result, error) {
			m.Filter.Status = f.Status
			m.Cursor = 0
			return commands.Result{Message: "상태 필터: " + f.Status.Label()}, nil
		},
		Sort: func(f commands.FilterArgs) (commands.Result, error) {
			m.Sort = f.Sort
			return commands.Result{Message: "정렬: " + f.Sort.Label()}, nil
		},
		Category: func(f commands.FilterArgs) (commands.Result, error) {
			if f.Category != "" && !slices.Contains(m.svc.Board.Categories(), f.Category) {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown category %q", f.Category)}
			}
			m.Filter.Category = f.Category
			m.Cursor = 0
			return commands.Result{Message: "분류 필터: " + categoryLabel(f.Category)}, nil
		},
		NewCategory: func(f commands.FilterArgs) (commands.Result, error) {
			if !m.svc.Board.AddCategory(ctx, f.Category) {
				return commands.Result{Message: "이미 있는 분류: " + f.Category}, nil
			}
			return commands.Result{Message: "분류 추가: " + f.Category}, nil
		},
		Search: func(f commands.FilterArgs) (commands.Result, error) {
			m.Filter.Search = f.Search
			m.searchInput.SetValue(f.Search)
			m.Cursor = 0
			if f.Search == "" {
				return commands.Result{Message: "검색 해제"}, nil
			}
			return commands.Result{Message: "검색: " + f.Search}, nil
		},
		Show: func(f commands.FilterArgs) (commands.Result, error) {
			m.Filter.ShowCompleted = f.ShowCompleted
			m.clampCursor()
			return commands.Result{Message: "완료 항목 표시: " + onOff(f.ShowCompleted)}, nil
		},
		Vocab: func(v commands.VocabArgs) (commands.Result, error) {
			lang := v.Language
			if lang == "" {
				lang = m.Language
			}
			next, cmd := m.requestWord(lang)
			m = next.(Model)
			follow = cmd
			if cmd == nil {
				return commands.Result{}, nil
			}
			return commands.Result{Message: lang.Label() + " 단어를 가져오는 중..."}, nil
		},
		Speak: func(v commands.VocabArgs) (commands.Result, error) {
			next, cmd := m.speakWord(v.Text)
			m = next.(Model)
			follow = cmd
			return commands.Result{}, nil
		},
		Weather: func(w commands.WeatherArgs) (commands.Result, error) {
			next, cmd := m.refreshWeather(w.City)
			m = next.(Model)
			follow = cmd
			if cmd == nil {
				return commands.Result{}, nil
			}
			return commands.Result{Message: "날씨 새로고침: " + m.City}, nil
		},
	})
	if err != nil {
		m.setStatus(err.Error(), true)
		return m, follow
	}
	if res.Message != "" {
		m.setStatus(res.Message, false)
	}
	return m, follow
}
