package update

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/dashd/internal/model"
	"github.com/sandeepkv93/dashd/internal/views"
	"github.com/sandeepkv93/dashd/internal/vocab"
)

// requestWord starts a vocabulary fetch for lang. A press while a fetch is
// outstanding is dropped with a notice.
func (m Model) requestWord(lang model.Language) (tea.Model, tea.Cmd) {
	if m.svc.Vocab == nil {
		m.setStatus("단어 서비스가 설정되지 않았습니다", true)
		return m, nil
	}
	if m.VocabLoading || m.svc.Vocab.Busy() {
		m.setStatus("이미 단어를 가져오는 중입니다", false)
		return m, nil
	}
	m.Language = lang
	m.VocabLoading = true
	m.VocabErr = ""
	return m, tea.Batch(fetchWordCmd(m.svc.Vocab, lang), m.syncSpinner.Tick)
}

func (m Model) onWord(msg WordMsg) (tea.Model, tea.Cmd) {
	if errors.Is(msg.Err, vocab.ErrInFlight) {
		return m, nil
	}
	m.VocabLoading = false
	if msg.Err != nil {
		m.VocabErr = wordErrorText(msg.Err)
		m.setStatus(m.VocabErr, true)
		return m, nil
	}
	pair := msg.Pair
	m.Word = &pair
	m.Language = msg.Language
	m.renderWordCard()
	m.setStatus("새 단어: "+pair.Primary, false)
	return m, nil
}

func wordErrorText(err error) string {
	switch {
	case errors.Is(err, vocab.ErrRetriesExhausted):
		return "새 단어를 찾지 못했습니다. 다시 시도하세요"
	case errors.Is(err, vocab.ErrNoAPIKey):
		return "단어 API 키가 설정되지 않았습니다"
	default:
		return "단어를 가져오지 못했습니다: " + err.Error()
	}
}

// speakWord plays text, or the current word when text is empty.
func (m Model) speakWord(text string) (tea.Model, tea.Cmd) {
	if m.svc.Speaker == nil {
		m.setStatus("음성 출력이 설정되지 않았습니다", true)
		return m, nil
	}
	lang := m.Language.Code()
	if strings.TrimSpace(text) == "" {
		if m.Word == nil {
			m.setStatus("읽을 단어가 없습니다", false)
			return m, nil
		}
		text = m.Word.Primary
		if m.Word.LanguageCode != "" {
			lang = m.Word.LanguageCode
		}
	}
	m.setStatus("발음 재생 중: "+text, false)
	return m, speakCmd(m.svc.Speaker, text, lang)
}

// refreshWeather fetches now. A non-empty city replaces the configured one.
func (m Model) refreshWeather(city string) (tea.Model, tea.Cmd) {
	if m.svc.Weather == nil {
		m.setStatus("날씨 서비스가 설정되지 않았습니다", true)
		return m, nil
	}
	if city = strings.TrimSpace(city); city != "" && !strings.EqualFold(city, m.City) {
		m.City = city
		m.Weather = nil
	}
	if m.WeatherLoading {
		return m, nil
	}
	m.WeatherLoading = true
	m.WeatherErr = ""
	return m, tea.Batch(fetchWeatherCmd(m.svc.Weather, m.City), m.syncSpinner.Tick)
}

func (m *Model) renderWordCard() {
	if m.Word == nil {
		m.wordCard = ""
		return
	}
	width := m.Width/3 - 6
	if width < 20 {
		width = 20
	}
	m.wordCard = views.RenderMarkdown(wordMarkdown(*m.Word), width)
}

func wordMarkdown(w model.WordPair) string {
	return fmt.Sprintf("## %s\n\n%s\n", w.Primary, w.Translation)
}
