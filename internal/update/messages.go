package update

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/dashd/internal/model"
	"github.com/sandeepkv93/dashd/internal/scheduler"
	"github.com/sandeepkv93/dashd/internal/vocab"
)

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

type TickMsg time.Time

// WeatherMsg carries the city it was fetched for.
type WeatherMsg struct {
	City    string
	Weather model.Weather
	Err     error
}

type JobDueMsg struct {
	Job scheduler.Job
}

type WordMsg struct {
	Language model.Language
	Pair     model.WordPair
	Err      error
}

type SpokenMsg struct {
	Text   string
	Source string
	Err    error
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func waitForJobCmd(ch <-chan scheduler.Job) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		job, ok := <-ch
		if !ok {
			return nil
		}
		return JobDueMsg{Job: job}
	}
}

func fetchWeatherCmd(src WeatherSource, city string) tea.Cmd {
	return func() tea.Msg {
		w, err := src.Fetch(context.Background(), city)
		return WeatherMsg{City: city, Weather: w, Err: err}
	}
}

func fetchWordCmd(ctrl *vocab.Controller, lang model.Language) tea.Cmd {
	return func() tea.Msg {
		pair, err := ctrl.Fetch(context.Background(), lang)
		return WordMsg{Language: lang, Pair: pair, Err: err}
	}
}

func speakCmd(sp Speaker, text, lang string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), speakTimeout)
		defer cancel()
		source, err := sp.Speak(ctx, text, lang)
		return SpokenMsg{Text: text, Source: source, Err: err}
	}
}
