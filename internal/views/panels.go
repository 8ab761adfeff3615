package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	doneStyle    = lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("245"))
	overdueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	cursorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
)

type ClockPanelData struct {
	Time   string
	Date   string
	Use24h bool
}

func RenderClockPanel(data ClockPanelData) string {
	format := "12시간"
	if data.Use24h {
		format = "24시간"
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("현재 시간") + "\n")
	b.WriteString(data.Time + "\n")
	b.WriteString(data.Date + "\n")
	b.WriteString(mutedStyle.Render("형식: " + format))
	return b.String()
}

type WeatherPanelData struct {
	Loading   bool
	Spinner   string
	Err       string
	City      string
	Glyph     string
	Temp      string
	Desc      string
	Details   []string
	UpdatedAt string
}

func RenderWeatherPanel(data WeatherPanelData) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("날씨") + "\n")
	switch {
	case data.Loading && data.City == "":
		b.WriteString(strings.TrimSpace(data.Spinner + " 날씨 정보를 불러오는 중..."))
		return b.String()
	case data.Err != "" && data.City == "":
		b.WriteString(errorStyle.Render(data.Err) + "\n")
		b.WriteString(mutedStyle.Render("r: 다시 시도"))
		return b.String()
	case data.City == "":
		b.WriteString(mutedStyle.Render("날씨 정보 없음"))
		return b.String()
	}
	b.WriteString(data.City + "\n")
	b.WriteString(strings.TrimSpace(data.Glyph+" "+data.Temp) + "  " + data.Desc + "\n")
	for _, d := range data.Details {
		b.WriteString(d + "\n")
	}
	switch {
	case data.Loading:
		b.WriteString(strings.TrimSpace(data.Spinner + " 새로고침 중"))
	case data.Err != "":
		b.WriteString(errorStyle.Render(data.Err))
	default:
		b.WriteString(mutedStyle.Render("업데이트 " + data.UpdatedAt))
	}
	return b.String()
}

type TodoRowData struct {
	Selected      bool
	Completed     bool
	Overdue       bool
	Text          string
	PriorityLabel string
	PriorityColor string
	Category      string
	Due           string
}

type TodoPanelData struct {
	Rows      []TodoRowData
	Completed int
	Total     int
	Filters   string
	Input     string
	Empty     string
}

func RenderTodoPanel(data TodoPanelData) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("할 일 목록"))
	b.WriteString(mutedStyle.Render(fmt.Sprintf("  %d/%d 완료", data.Completed, data.Total)) + "\n")
	if data.Filters != "" {
		b.WriteString(mutedStyle.Render(data.Filters) + "\n")
	}
	if data.Input != "" {
		b.WriteString(data.Input + "\n")
	}
	if len(data.Rows) == 0 {
		empty := data.Empty
		if empty == "" {
			empty = "할 일이 없습니다"
		}
		b.WriteString(mutedStyle.Render(empty))
		return b.String()
	}
	for i, row := range data.Rows {
		b.WriteString(renderTodoRow(row))
		if i < len(data.Rows)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func renderTodoRow(row TodoRowData) string {
	cursor := "  "
	if row.Selected {
		cursor = cursorStyle.Render(">") + " "
	}
	check := "[ ]"
	text := row.Text
	if row.Completed {
		check = "[x]"
		text = doneStyle.Render(text)
	}
	prio := lipgloss.NewStyle().Foreground(lipgloss.Color(row.PriorityColor)).Render(row.PriorityLabel)
	line := fmt.Sprintf("%s%s %s %s %s", cursor, check, prio, text, mutedStyle.Render("#"+row.Category))
	if row.Due != "" {
		due := "마감 " + row.Due
		if row.Overdue {
			due = overdueStyle.Render(due + " (지남)")
		} else {
			due = mutedStyle.Render(due)
		}
		line += " " + due
	}
	return line
}

type VocabPanelData struct {
	Title      string
	Card       string
	Loading    bool
	Spinner    string
	Err        string
	History    int
	HistoryCap int
}

func RenderVocabPanel(data VocabPanelData) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(data.Title) + "\n")
	switch {
	case data.Loading:
		b.WriteString(strings.TrimSpace(data.Spinner+" 단어를 가져오는 중...") + "\n")
	case data.Card != "":
		b.WriteString(data.Card + "\n")
	default:
		b.WriteString(mutedStyle.Render("n: 새 단어 가져오기") + "\n")
	}
	if data.Err != "" {
		b.WriteString(errorStyle.Render(data.Err) + "\n")
	}
	b.WriteString(mutedStyle.Render(fmt.Sprintf("최근 단어 %d/%d", data.History, data.HistoryCap)))
	return b.String()
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: %s", input)
}

type HelpPanelData struct {
	Focused  string
	Bindings []string
	HelpView string
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help (%s):\n%s\n%s",
		data.Focused,
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}
