package vocab

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sandeepkv93/dashd/internal/model"
	"github.com/tidwall/gjson"
)

var ErrMalformedPayload = errors.New("vocab: malformed word payload")

// Generator produces one candidate word. avoid lists recently seen terms the
// model is asked to skip; the controller still checks for duplicates.
type Generator interface {
	Generate(ctx context.Context, lang model.Language, avoid []string) (model.WordPair, error)
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(ctx context.Context, lang model.Language, avoid []string) (model.WordPair, error)

func (f GeneratorFunc) Generate(ctx context.Context, lang model.Language, avoid []string) (model.WordPair, error) {
	return f(ctx, lang, avoid)
}

type prompt struct {
	System string
	User   string
}

func buildPrompt(lang model.Language, avoid []string) prompt {
	name := "영어"
	if lang == model.LanguageThai {
		name = "태국어"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "유용한 %s 단어나 표현 하나를 랜덤하게 선택해서 알려주세요. ", name)
	b.WriteString("실용적이고 일상생활이나 비즈니스에서 자주 쓰이는 것이 좋습니다. ")
	if len(avoid) > 0 {
		fmt.Fprintf(&b, "다음 단어는 제외하세요: %s. ", strings.Join(avoid, ", "))
	}
	fmt.Fprintf(&b, `응답은 반드시 {"word": "%s 단어나 표현", "meaning": "한글 번역"} 형태의 JSON 형식이어야 합니다.`, name)
	return prompt{
		System: fmt.Sprintf("당신은 %s 학습자를 위한 유용한 %s 단어나 표현과 그 한글 번역을 제공하는 도우미입니다. JSON 형식으로만 응답하세요.", name, name),
		User:   b.String(),
	}
}

var (
	primaryKeys     = []string{"word", "english", "thai"}
	translationKeys = []string{"meaning", "korean", "translation"}
)

// parsePayload reads {"word","meaning"} out of a model reply. Replies wrapped
// in prose or code fences are accepted as long as one JSON object is present.
func parsePayload(raw string, lang model.Language) (model.WordPair, error) {
	body := raw
	start, end := strings.Index(body, "{"), strings.LastIndex(body, "}")
	if start < 0 || end <= start {
		return model.WordPair{}, fmt.Errorf("%w: no JSON object in %q", ErrMalformedPayload, truncate(raw, 80))
	}
	body = body[start : end+1]
	if !gjson.Valid(body) {
		return model.WordPair{}, fmt.Errorf("%w: invalid JSON %q", ErrMalformedPayload, truncate(body, 80))
	}
	pair := model.WordPair{
		Primary:      firstString(body, primaryKeys),
		Translation:  firstString(body, translationKeys),
		LanguageCode: lang.Code(),
	}
	if pair.Primary == "" || pair.Translation == "" {
		return model.WordPair{}, fmt.Errorf("%w: missing word or meaning in %q", ErrMalformedPayload, truncate(body, 80))
	}
	return pair, nil
}

func firstString(body string, keys []string) string {
	for _, k := range keys {
		if v := gjson.Get(body, k); v.Type == gjson.String {
			if s := strings.TrimSpace(v.String()); s != "" {
				return s
			}
		}
	}
	return ""
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
