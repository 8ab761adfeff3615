package update

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/dashd/internal/scheduler"
	"github.com/sandeepkv93/dashd/internal/views"
	"github.com/sandeepkv93/dashd/internal/weather"
)

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd()}
	if m.svc.Weather != nil {
		cmds = append(cmds, fetchWeatherCmd(m.svc.Weather, m.City), m.syncSpinner.Tick)
	}
	if m.svc.Scheduler != nil {
		cmds = append(cmds, waitForJobCmd(m.svc.Scheduler.C()))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if typed.String() == "ctrl+c" {
			m.Quitting = true
			return m, tea.Quit
		}
		switch m.mode {
		case modePalette:
			return m.handlePaletteKey(typed)
		case modeAdd:
			return m.handleAddKey(typed)
		case modeSearch:
			return m.handleSearchKey(typed)
		}
		return m.handleKey(typed)
	case tea.WindowSizeMsg:
		m.Width, m.Height = typed.Width, typed.Height
		m.helpModel.Width = typed.Width
		m.renderWordCard()
		return m, nil
	case TickMsg:
		m.Now = time.Time(typed)
		return m, tickCmd()
	case spinner.TickMsg:
		if m.WeatherLoading || m.VocabLoading {
			var cmd tea.Cmd
			m.syncSpinner, cmd = m.syncSpinner.Update(typed)
			return m, cmd
		}
		return m, nil
	case WeatherMsg:
		return m.onWeather(typed)
	case WordMsg:
		return m.onWord(typed)
	case SpokenMsg:
		if typed.Err != nil {
			m.setStatus("발음 재생 실패: "+typed.Err.Error(), true)
			return m, nil
		}
		m.setStatus(fmt.Sprintf("발음 재생: %s (%s)", typed.Text, typed.Source), false)
		return m, nil
	case JobDueMsg:
		return m.onJob(typed.Job)
	case SetStatusMsg:
		m.setStatus(typed.Text, typed.IsError)
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.setStatus(typed.Err.Error(), true)
			return m, nil
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	switch {
	case key.Matches(msg, k.Quit):
		m.Quitting = true
		return m, tea.Quit
	case key.Matches(msg, k.Help):
		m.HelpVisible = !m.HelpVisible
		return m, nil
	case msg.String() == "esc" && m.HelpVisible:
		m.HelpVisible = false
		return m, nil
	case key.Matches(msg, k.Palette):
		m.mode = modePalette
		m.commandInput.SetValue("")
		return m, m.commandInput.Focus()
	case key.Matches(msg, k.FocusNext):
		m.Focus = m.Focus.Next()
		return m, nil
	case key.Matches(msg, k.Activate):
		return m.activate()
	case key.Matches(msg, k.NextWord):
		return m.requestWord(m.Language)
	case key.Matches(msg, k.Language):
		return m.requestWord(m.Language.Toggle())
	case key.Matches(msg, k.Speak):
		return m.speakWord("")
	case key.Matches(msg, k.ClockFormat):
		return m.toggleClock()
	case key.Matches(msg, k.Refresh):
		return m.refreshWeather("")
	}
	return m.handleTodoKey(msg)
}

// activate runs the primary action of the focused panel.
func (m Model) activate() (tea.Model, tea.Cmd) {
	switch m.Focus {
	case PanelVocab:
		return m.requestWord(m.Language)
	case PanelWeather:
		return m.refreshWeather("")
	case PanelClock:
		return m.toggleClock()
	default:
		return m.toggleSelected()
	}
}

func (m Model) toggleClock() (tea.Model, tea.Cmd) {
	if m.svc.Clock == nil {
		return m, nil
	}
	m.svc.Clock.Toggle()
	if m.svc.Clock.Use24Hour() {
		m.setStatus("24시간 형식", false)
		return m, nil
	}
	m.setStatus("12시간 형식", false)
	return m, nil
}

func (m Model) onJob(job scheduler.Job) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch job.Kind {
	case scheduler.KindWeatherRefresh, scheduler.KindWeatherRetry:
		if !m.WeatherLoading {
			next, cmd := m.refreshWeather("")
			m = next.(Model)
			cmds = append(cmds, cmd)
		}
	case scheduler.KindStatusExpire:
		m.Status = StatusBar{}
	}
	if m.svc.Scheduler != nil {
		cmds = append(cmds, waitForJobCmd(m.svc.Scheduler.C()))
	}
	return m, tea.Batch(cmds...)
}

// setStatus shows text and, with a scheduler, arms its expiry. A newer
// status replaces the pending expiry of the previous one.
func (m *Model) setStatus(text string, isError bool) {
	m.Status = StatusBar{Text: text, IsError: isError}
	if isError {
		m.svc.Logger.Warn("status", "text", text)
	}
	m.scheduleAfter(scheduler.KindStatusExpire, m.set.StatusTTL)
}

func (m *Model) scheduleAfter(kind scheduler.Kind, d time.Duration) {
	if m.svc.Scheduler == nil {
		return
	}
	job := scheduler.Job{ID: string(kind), Kind: kind, TriggerAt: m.set.Now().Add(d)}
	if err := m.svc.Scheduler.Replace(job); err != nil {
		m.svc.Logger.Warn("schedule failed", "kind", kind, "err", err)
	}
}

// onWeather applies a fetch result. A result for a city the user has since
// switched away from is discarded and the current city is fetched instead.
func (m Model) onWeather(msg WeatherMsg) (tea.Model, tea.Cmd) {
	if msg.City != "" && m.svc.Weather != nil && !strings.EqualFold(msg.City, m.City) {
		m.svc.Logger.Debug("discarding stale weather", "fetched", msg.City, "city", m.City)
		return m, fetchWeatherCmd(m.svc.Weather, m.City)
	}
	m.WeatherLoading = false
	if msg.Err != nil {
		m.WeatherErr = msg.Err.Error()
		m.svc.Logger.Warn("weather fetch failed", "city", m.City, "err", msg.Err)
		if !errors.Is(msg.Err, weather.ErrNoAPIKey) {
			m.scheduleAfter(scheduler.KindWeatherRetry, m.set.RetryDelay)
		}
		return m, nil
	}
	w := msg.Weather
	m.Weather = &w
	m.WeatherErr = ""
	if m.svc.Scheduler != nil {
		m.svc.Scheduler.Cancel(scheduler.KindWeatherRetry)
	}
	m.scheduleAfter(scheduler.KindWeatherRefresh, m.set.Refresh)
	return m, nil
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}
	status := ""
	if m.Status.Text != "" {
		status = "status: " + m.Status.Text
		if m.Status.IsError {
			status = "status: error: " + m.Status.Text
		}
	}
	return views.RenderApp(views.AppData{
		Width:       m.Width,
		Header:      m.header(),
		Clock:       m.renderClockView(),
		Weather:     m.renderWeatherView(),
		Vocab:       m.renderVocabView(),
		Todo:        m.renderTodoView(),
		Focused:     string(m.Focus),
		StatusLine:  status,
		StatusError: m.Status.IsError,
		Palette:     views.RenderCommandPalette(m.mode == modePalette, m.commandInput.View()),
		Help:        m.renderHelpIfVisible(),
		Footer:      m.footer(),
	})
}
