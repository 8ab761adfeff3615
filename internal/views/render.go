package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// AppData is one frame of the dashboard. Each pane is already rendered
// panel content; RenderApp only frames and arranges them.
type AppData struct {
	Width        int
	Header       string
	Clock        string
	Weather      string
	Vocab        string
	Todo         string
	Focused      string
	StatusLine   string
	StatusError  bool
	Palette      string
	Help         string
	Footer       string
	Notification string
}

// Pane names accepted in AppData.Focused.
const (
	PaneClock   = "clock"
	PaneWeather = "weather"
	PaneTodo    = "todo"
	PaneVocab   = "vocab"
)

const (
	defaultWidth = 100
	minWidth     = 60
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	panelStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	focusedStyle = panelStyle.BorderForeground(lipgloss.Color("12"))
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func RenderApp(data AppData) string {
	width := data.Width
	if width <= 0 {
		width = defaultWidth
	}
	if width < minWidth {
		width = minWidth
	}

	// Three small panes on top, the task list underneath. Borders and
	// padding take four columns per pane.
	third := width/3 - 4
	top := lipgloss.JoinHorizontal(lipgloss.Top,
		framePane(data, PaneClock, data.Clock, third),
		framePane(data, PaneWeather, data.Weather, third),
		framePane(data, PaneVocab, data.Vocab, width-2*(third+4)-4),
	)
	todo := framePane(data, PaneTodo, data.Todo, width-4)

	status := statusStyle.Render(data.StatusLine)
	if data.StatusError {
		status = errorStyle.Render(data.StatusLine)
	}

	lines := []string{headerStyle.Render(data.Header), top, todo}
	if data.Palette != "" {
		lines = append(lines, panelStyle.Width(width-4).Render(data.Palette))
	}
	if data.StatusLine != "" {
		lines = append(lines, status)
	}
	if data.Notification != "" {
		lines = append(lines, panelStyle.Render(data.Notification))
	}
	if data.Help != "" {
		lines = append(lines, panelStyle.Width(width-4).Render(data.Help))
	}
	if data.Footer != "" {
		lines = append(lines, footerStyle.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

func framePane(data AppData, name, body string, width int) string {
	style := panelStyle
	if data.Focused == name {
		style = focusedStyle
	}
	return style.Width(width).Render(body)
}

func RenderMarkdown(md string, width int) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
