package update

import (
	"fmt"
	"strings"
	"time"

	"github.com/sandeepkv93/dashd/internal/model"
	"github.com/sandeepkv93/dashd/internal/views"
	"github.com/sandeepkv93/dashd/internal/weather"
)

func (m Model) header() string {
	completed, total := m.svc.Board.Counts()
	return fmt.Sprintf("dashd | %s | 할 일 %d/%d", m.Focus, completed, total)
}

func (m Model) renderClockView() string {
	if m.svc.Clock == nil {
		return views.RenderClockPanel(views.ClockPanelData{
			Time:   m.Now.Format("15:04:05"),
			Date:   m.Now.Format("2006-01-02"),
			Use24h: true,
		})
	}
	face := m.svc.Clock.Face(m.Now)
	return views.RenderClockPanel(views.ClockPanelData{
		Time:   face.Time(),
		Date:   face.Date,
		Use24h: m.svc.Clock.Use24Hour(),
	})
}

func (m Model) renderWeatherView() string {
	data := views.WeatherPanelData{
		Loading: m.WeatherLoading,
		Spinner: m.syncSpinner.View(),
		Err:     m.WeatherErr,
	}
	if m.svc.Weather == nil {
		data.Err = "날씨 서비스가 설정되지 않았습니다"
	}
	if w := m.Weather; w != nil {
		data.City = w.City
		data.Glyph = weather.Glyph(w.Condition)
		data.Temp = fmt.Sprintf("%.1f°C", w.Temperature)
		data.Desc = w.Description
		data.UpdatedAt = w.FetchedAt.In(m.location()).Format("15:04")
		if w.FeelsLike != nil {
			data.Details = append(data.Details, fmt.Sprintf("체감 %.1f°C", *w.FeelsLike))
		}
		if w.Humidity != nil {
			data.Details = append(data.Details, fmt.Sprintf("습도 %d%%", *w.Humidity))
		}
		if w.WindSpeed != nil {
			data.Details = append(data.Details, fmt.Sprintf("바람 %.1fm/s", *w.WindSpeed))
		}
	}
	return views.RenderWeatherPanel(data)
}

func (m Model) renderVocabView() string {
	data := views.VocabPanelData{
		Title:      fmt.Sprintf("유용한 %s-한국어 단어", m.Language.Label()),
		Card:       m.wordCard,
		Loading:    m.VocabLoading,
		Spinner:    m.syncSpinner.View(),
		Err:        m.VocabErr,
		HistoryCap: model.HistoryCap,
	}
	if m.svc.Vocab != nil {
		data.History = len(m.svc.Vocab.History())
	}
	if data.Card == "" && m.Word != nil {
		data.Card = m.Word.Primary + "\n" + m.Word.Translation
	}
	return views.RenderVocabPanel(data)
}

func (m Model) renderTodoView() string {
	visible := m.visibleTasks()
	sel := m.selected(visible)
	now := m.Now.In(m.location())
	rows := make([]views.TodoRowData, 0, len(visible))
	for i, t := range visible {
		row := views.TodoRowData{
			Selected:      i == sel && m.Focus == PanelTodo,
			Completed:     t.Completed,
			Overdue:       t.Overdue(now),
			Text:          t.Text,
			PriorityLabel: t.Priority.Label(),
			PriorityColor: t.Priority.Color(),
			Category:      t.Category,
		}
		if t.DueDate != nil {
			row.Due = *t.DueDate
		}
		rows = append(rows, row)
	}
	completed, total := m.svc.Board.Counts()
	data := views.TodoPanelData{
		Rows:      rows,
		Completed: completed,
		Total:     total,
		Filters:   m.filterLine(),
	}
	switch m.mode {
	case modeAdd:
		data.Input = m.addInput.View()
	case modeSearch:
		data.Input = m.searchInput.View()
	}
	if total > 0 && len(rows) == 0 {
		data.Empty = "조건에 맞는 할 일이 없습니다"
	}
	return views.RenderTodoPanel(data)
}

func (m Model) filterLine() string {
	parts := []string{
		"상태: " + m.Filter.Status.Label(),
		"분류: " + categoryLabel(m.Filter.Category),
		"정렬: " + m.Sort.Label(),
		"완료 표시: " + onOff(m.Filter.ShowCompleted),
	}
	if m.Filter.Search != "" {
		parts = append(parts, "검색: "+m.Filter.Search)
	}
	return strings.Join(parts, " · ")
}

func (m Model) location() *time.Location {
	if m.svc.Clock == nil {
		return time.Local
	}
	return m.svc.Clock.Location()
}
