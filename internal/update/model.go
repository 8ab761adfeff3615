package update

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/log"
	"github.com/sandeepkv93/dashd/internal/clock"
	"github.com/sandeepkv93/dashd/internal/config"
	"github.com/sandeepkv93/dashd/internal/logging"
	"github.com/sandeepkv93/dashd/internal/model"
	"github.com/sandeepkv93/dashd/internal/persist"
	"github.com/sandeepkv93/dashd/internal/scheduler"
	"github.com/sandeepkv93/dashd/internal/storage"
	"github.com/sandeepkv93/dashd/internal/todo"
	"github.com/sandeepkv93/dashd/internal/vocab"
	"github.com/sandeepkv93/dashd/internal/weather"
)

type Panel string

const (
	PanelTodo    Panel = "todo"
	PanelVocab   Panel = "vocab"
	PanelWeather Panel = "weather"
	PanelClock   Panel = "clock"
)

var panelOrder = []Panel{PanelTodo, PanelVocab, PanelWeather, PanelClock}

func (p Panel) Next() Panel {
	for i, candidate := range panelOrder {
		if candidate == p {
			return panelOrder[(i+1)%len(panelOrder)]
		}
	}
	return PanelTodo
}

type inputMode int

const (
	modeNormal inputMode = iota
	modeAdd
	modeSearch
	modePalette
)

type StatusBar struct {
	Text    string
	IsError bool
}

// WeatherSource is satisfied by *weather.Client.
type WeatherSource interface {
	Fetch(ctx context.Context, city string) (model.Weather, error)
}

// Speaker is satisfied by *speech.Speaker.
type Speaker interface {
	Speak(ctx context.Context, text, lang string) (string, error)
}

// Services are the long-lived collaborators the model drives. Any of them
// may be nil; the matching panel then reports itself unavailable.
type Services struct {
	Board     *todo.Board
	Vocab     *vocab.Controller
	Weather   WeatherSource
	Speaker   Speaker
	Clock     *clock.Clock
	Scheduler *scheduler.Engine
	Logger    *log.Logger
}

type Settings struct {
	City       string
	Refresh    time.Duration
	RetryDelay time.Duration
	StatusTTL  time.Duration
	Language   model.Language
	Filter     todo.Filter
	Sort       model.SortOption
	Keys       config.Keymap
	Now        func() time.Time
}

const (
	defaultRetryDelay = time.Minute
	defaultStatusTTL  = 4 * time.Second
	speakTimeout      = 30 * time.Second
)

type Model struct {
	Focus          Panel
	Filter         todo.Filter
	Sort           model.SortOption
	Cursor         int
	Language       model.Language
	Word           *model.WordPair
	VocabLoading   bool
	VocabErr       string
	Weather        *model.Weather
	WeatherLoading bool
	WeatherErr     string
	City           string
	Now            time.Time
	Status         StatusBar
	HelpVisible    bool
	Quitting       bool
	LastError      error
	Width          int
	Height         int

	svc          Services
	set          Settings
	keys         keyMap
	mode         inputMode
	addInput     textinput.Model
	searchInput  textinput.Model
	commandInput textinput.Model
	syncSpinner  spinner.Model
	helpModel    help.Model
	wordCard     string
}

func NewModel(svc Services, set Settings) Model {
	if svc.Logger == nil {
		svc.Logger = logging.Discard()
	}
	if svc.Board == nil {
		svc.Board = todo.NewBoard(todo.NewStore(), persist.New(storage.NewMemoryKV(storage.Options{}), svc.Logger), svc.Logger)
	}
	if set.Now == nil {
		set.Now = time.Now
	}
	if set.City == "" {
		set.City = weather.DefaultCity
	}
	if set.Refresh <= 0 {
		set.Refresh = weather.DefaultRefresh
	}
	if set.RetryDelay <= 0 {
		set.RetryDelay = defaultRetryDelay
	}
	if set.StatusTTL <= 0 {
		set.StatusTTL = defaultStatusTTL
	}
	if !set.Language.IsValid() {
		set.Language = model.LanguageEnglish
	}
	if !set.Sort.IsValid() {
		set.Sort = model.SortNewest
	}
	if !set.Filter.Status.IsValid() {
		set.Filter = todo.DefaultFilter()
	}
	if set.Keys == (config.Keymap{}) {
		set.Keys = config.Default().Keys
	}

	m := Model{
		Focus:          PanelTodo,
		Filter:         set.Filter,
		Sort:           set.Sort,
		Language:       set.Language,
		City:           set.City,
		Now:            set.Now(),
		WeatherLoading: svc.Weather != nil,
		svc:            svc,
		set:            set,
		keys:           newKeyMap(set.Keys),
	}
	if svc.Vocab != nil {
		if pair, ok := svc.Vocab.Current(); ok {
			m.Word = &pair
		}
	}
	m.initBubbleComponents()
	m.renderWordCard()
	return m
}

func (m *Model) initBubbleComponents() {
	m.addInput = textinput.New()
	m.addInput.Prompt = "새 할 일> "
	m.addInput.Placeholder = "할 일 !high #업무 due:2026-01-31"
	m.addInput.CharLimit = 200
	m.addInput.Width = 60

	m.searchInput = textinput.New()
	m.searchInput.Prompt = "검색> "
	m.searchInput.CharLimit = 100
	m.searchInput.Width = 40

	m.commandInput = textinput.New()
	m.commandInput.Prompt = ":"
	m.commandInput.Placeholder = "add, done, prio, filter, vocab, weather..."
	m.commandInput.CharLimit = 200
	m.commandInput.Width = 60

	m.syncSpinner = spinner.New()
	m.syncSpinner.Spinner = spinner.Dot
	m.helpModel = help.New()
}

// Board exposes the task board for callers that render or persist
// outside the update loop.
func (m Model) Board() *todo.Board { return m.svc.Board }

func (m Model) visibleTasks() []model.Task {
	return todo.Project(m.svc.Board.Tasks(), m.Filter, m.Sort)
}

// selected returns the cursor row clamped to the visible list, or -1 when
// the list is empty.
func (m Model) selected(visible []model.Task) int {
	if len(visible) == 0 {
		return -1
	}
	if m.Cursor < 0 {
		return 0
	}
	if m.Cursor >= len(visible) {
		return len(visible) - 1
	}
	return m.Cursor
}

func (m *Model) clampCursor() {
	m.Cursor = max(m.selected(m.visibleTasks()), 0)
}
