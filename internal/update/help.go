package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/sandeepkv93/dashd/internal/config"
	"github.com/sandeepkv93/dashd/internal/views"
)

type keyMap struct {
	Quit         key.Binding
	Add          key.Binding
	Up           key.Binding
	Down         key.Binding
	Toggle       key.Binding
	Delete       key.Binding
	PriorityUp   key.Binding
	PriorityDown key.Binding
	Search       key.Binding
	Filter       key.Binding
	Category     key.Binding
	Sort         key.Binding
	HideDone     key.Binding
	ClearDone    key.Binding
	NextWord     key.Binding
	Language     key.Binding
	Speak        key.Binding
	ClockFormat  key.Binding
	Refresh      key.Binding
	Palette      key.Binding
	Help         key.Binding
	FocusNext    key.Binding
	Activate     key.Binding
}

func newKeyMap(k config.Keymap) keyMap {
	bind := func(help string, keys ...string) key.Binding {
		return key.NewBinding(key.WithKeys(keys...), key.WithHelp(keyLabel(keys[0]), help))
	}
	return keyMap{
		Quit:         bind("종료", k.Quit, "ctrl+c"),
		Add:          bind("할 일 추가", k.Add),
		Up:           bind("위로", k.Up, "up"),
		Down:         bind("아래로", k.Down, "down"),
		Toggle:       bind("완료 전환", k.Toggle),
		Delete:       bind("삭제", k.Delete),
		PriorityUp:   bind("우선순위 올리기", k.PriorityUp),
		PriorityDown: bind("우선순위 내리기", k.PriorityDown),
		Search:       bind("검색", k.Search),
		Filter:       bind("상태 필터", k.Filter),
		Category:     bind("분류 필터", k.Category),
		Sort:         bind("정렬", k.Sort),
		HideDone:     bind("완료 항목 숨기기", k.HideDone),
		ClearDone:    bind("완료 항목 지우기", k.ClearDone),
		NextWord:     bind("새 단어", k.NextWord),
		Language:     bind("언어 전환", k.Language),
		Speak:        bind("발음 듣기", k.Speak),
		ClockFormat:  bind("12/24시간", k.ClockFormat),
		Refresh:      bind("날씨 새로고침", k.Refresh),
		Palette:      bind("명령", k.Palette),
		Help:         bind("도움말", k.Help),
		FocusNext:    bind("패널 이동", k.FocusNext),
		Activate:     bind("패널 실행", "enter"),
	}
}

func keyLabel(k string) string {
	if k == " " {
		return "space"
	}
	return k
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (k keyMap) short() []key.Binding {
	return []key.Binding{k.Add, k.Toggle, k.NextWord, k.Palette, k.Help, k.Quit}
}

func (k keyMap) full() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Add, k.Toggle, k.Delete, k.PriorityUp, k.PriorityDown},
		{k.Search, k.Filter, k.Category, k.Sort, k.HideDone, k.ClearDone},
		{k.NextWord, k.Language, k.Speak, k.ClockFormat, k.Refresh},
		{k.FocusNext, k.Activate, k.Palette, k.Help, k.Quit},
	}
}

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return m.renderHelpView()
}

func (m Model) renderHelpView() string {
	var plain []string
	for _, b := range m.panelBindings() {
		h := b.Help()
		plain = append(plain, fmt.Sprintf("- %s: %s", h.Key, h.Desc))
	}
	hm := m.helpModel
	hm.ShowAll = true
	return views.RenderHelpPanel(views.HelpPanelData{
		Focused:  string(m.Focus),
		Bindings: plain,
		HelpView: hm.View(helpKeyMap{short: m.keys.short(), full: m.keys.full()}),
	})
}

// panelBindings are the keys that act on the focused panel, including what
// enter does there.
func (m Model) panelBindings() []key.Binding {
	k := m.keys
	activate := func(desc string) key.Binding {
		return key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", desc))
	}
	switch m.Focus {
	case PanelVocab:
		return []key.Binding{activate("새 단어"), k.NextWord, k.Language, k.Speak}
	case PanelWeather:
		return []key.Binding{activate("날씨 새로고침"), k.Refresh}
	case PanelClock:
		return []key.Binding{activate("12/24시간"), k.ClockFormat}
	default:
		return []key.Binding{activate("완료 전환"), k.Up, k.Down, k.Toggle, k.Delete, k.PriorityUp, k.PriorityDown}
	}
}

func (m Model) footer() string {
	return m.helpModel.View(helpKeyMap{short: m.keys.short(), full: m.keys.full()})
}
