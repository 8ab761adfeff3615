package views

import (
	"strings"
	"testing"
)

func TestRenderTodoPanelRows(t *testing.T) {
	out := RenderTodoPanel(TodoPanelData{
		Completed: 1,
		Total:     2,
		Filters:   "상태: 모두 보기",
		Rows: []TodoRowData{
			{Selected: true, Text: "buy milk", PriorityLabel: "높음", PriorityColor: "203", Category: "개인", Due: "2026-02-08", Overdue: true},
			{Completed: true, Text: "write report", PriorityLabel: "중간", PriorityColor: "215", Category: "업무"},
		},
	})
	for _, want := range []string{"1/2 완료", "상태: 모두 보기", "> [ ]", "buy milk", "#개인", "마감 2026-02-08 (지남)", "[x]", "write report"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in todo panel:\n%s", want, out)
		}
	}
}

func TestRenderTodoPanelEmpty(t *testing.T) {
	out := RenderTodoPanel(TodoPanelData{})
	if !strings.Contains(out, "할 일이 없습니다") {
		t.Fatalf("expected empty placeholder, got:\n%s", out)
	}
	out = RenderTodoPanel(TodoPanelData{Empty: "검색 결과가 없습니다"})
	if !strings.Contains(out, "검색 결과가 없습니다") {
		t.Fatalf("expected custom placeholder, got:\n%s", out)
	}
}

func TestRenderWeatherPanelStates(t *testing.T) {
	loading := RenderWeatherPanel(WeatherPanelData{Loading: true})
	if !strings.Contains(loading, "불러오는 중") {
		t.Fatalf("expected loading text, got:\n%s", loading)
	}
	failed := RenderWeatherPanel(WeatherPanelData{Err: "weather: status 401"})
	if !strings.Contains(failed, "status 401") || !strings.Contains(failed, "다시 시도") {
		t.Fatalf("expected error and retry hint, got:\n%s", failed)
	}
	ok := RenderWeatherPanel(WeatherPanelData{City: "Seoul", Temp: "21.5°C", Desc: "맑음", Details: []string{"습도 48%"}, UpdatedAt: "15:04"})
	for _, want := range []string{"Seoul", "21.5°C", "맑음", "습도 48%", "업데이트 15:04"} {
		if !strings.Contains(ok, want) {
			t.Fatalf("expected %q in weather panel:\n%s", want, ok)
		}
	}
}

func TestRenderVocabPanel(t *testing.T) {
	out := RenderVocabPanel(VocabPanelData{Title: "영어 단어", History: 3, HistoryCap: 20})
	if !strings.Contains(out, "n: 새 단어") || !strings.Contains(out, "3/20") {
		t.Fatalf("unexpected vocab panel:\n%s", out)
	}
	out = RenderVocabPanel(VocabPanelData{Title: "영어 단어", Loading: true, Card: "hello"})
	if !strings.Contains(out, "가져오는 중") || strings.Contains(out, "hello") {
		t.Fatalf("loading should replace the card:\n%s", out)
	}
}

func TestRenderAppIncludesPanes(t *testing.T) {
	out := RenderApp(AppData{
		Width:      90,
		Header:     "dashd",
		Clock:      "clock-pane",
		Weather:    "weather-pane",
		Vocab:      "vocab-pane",
		Todo:       "todo-pane",
		Focused:    PaneTodo,
		StatusLine: "ready",
		Palette:    RenderCommandPalette(true, "add milk"),
		Footer:     "q quit",
	})
	for _, want := range []string{"dashd", "clock-pane", "weather-pane", "vocab-pane", "todo-pane", "ready", "command: add milk", "q quit"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in app frame:\n%s", want, out)
		}
	}
	if RenderCommandPalette(false, "x") != "" {
		t.Fatal("inactive palette should render nothing")
	}
}

func TestRenderMarkdownBlank(t *testing.T) {
	if RenderMarkdown("   ", 40) != "" {
		t.Fatal("expected blank markdown to render empty")
	}
	if out := RenderMarkdown("**hello**", 40); !strings.Contains(out, "hello") {
		t.Fatalf("expected rendered markdown to keep text, got %q", out)
	}
}
