package vocab

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sandeepkv93/dashd/internal/model"
)

func TestParsePayload(t *testing.T) {
	cases := []struct {
		name    string
		raw     string
		want    model.WordPair
		wantErr bool
	}{
		{"word and meaning", `{"word":"serendipity","meaning":"뜻밖의 행운"}`, model.WordPair{Primary: "serendipity", Translation: "뜻밖의 행운", LanguageCode: "en"}, false},
		{"legacy keys", `{"english":"break the ice","korean":"어색함을 깨다"}`, model.WordPair{Primary: "break the ice", Translation: "어색함을 깨다", LanguageCode: "en"}, false},
		{"code fence", "```json\n{\"word\":\"deadline\",\"meaning\":\"마감\"}\n```", model.WordPair{Primary: "deadline", Translation: "마감", LanguageCode: "en"}, false},
		{"missing meaning", `{"word":"x"}`, model.WordPair{}, true},
		{"not json", `sorry, I cannot`, model.WordPair{}, true},
		{"broken json", `{"word": "x", "meaning": }`, model.WordPair{}, true},
		{"non string", `{"word": 3, "meaning": "셋"}`, model.WordPair{}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parsePayload(tc.raw, model.LanguageEnglish)
			if tc.wantErr {
				if !errors.Is(err, ErrMalformedPayload) {
					t.Fatalf("expected ErrMalformedPayload, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if got != tc.want {
				t.Fatalf("got %#v, want %#v", got, tc.want)
			}
		})
	}
}

func TestBuildPromptMentionsLanguageAndAvoidList(t *testing.T) {
	p := buildPrompt(model.LanguageThai, []string{"สวัสดี"})
	if !strings.Contains(p.System, "태국어") || !strings.Contains(p.User, "สวัสดี") {
		t.Fatalf("unexpected prompt %#v", p)
	}
	if p := buildPrompt(model.LanguageEnglish, nil); strings.Contains(p.User, "제외") {
		t.Fatalf("empty avoid list should not be mentioned: %q", p.User)
	}
}

func TestWithRetryRetriesTransientErrors(t *testing.T) {
	calls := 0
	rc := RetryConfig{MaxRetries: 3, InitBackoff: time.Millisecond, MaxBackoff: 2 * time.Millisecond}
	out, err := withRetry(context.Background(), rc, "test", func(context.Context) (string, error) {
		calls++
		if calls < 3 {
			return "", errors.New("429 Too Many Requests")
		}
		return "ok", nil
	})
	if err != nil || out != "ok" || calls != 3 {
		t.Fatalf("out=%q err=%v calls=%d", out, err, calls)
	}
}

func TestWithRetryStopsOnFatalErrors(t *testing.T) {
	rc := RetryConfig{MaxRetries: 3, InitBackoff: time.Millisecond}
	calls := 0
	_, err := withRetry(context.Background(), rc, "test", func(context.Context) (int, error) {
		calls++
		return 0, errors.New("402 payment required: insufficient credits")
	})
	if !errors.Is(err, ErrBilling) || calls != 1 {
		t.Fatalf("billing: err=%v calls=%d", err, calls)
	}

	calls = 0
	cause := errors.New("400 bad request")
	_, err = withRetry(context.Background(), rc, "test", func(context.Context) (int, error) {
		calls++
		return 0, cause
	})
	if !errors.Is(err, cause) || calls != 1 {
		t.Fatalf("non-retryable: err=%v calls=%d", err, calls)
	}

	calls = 0
	_, err = withRetry(context.Background(), rc, "test", func(context.Context) (int, error) {
		calls++
		return 0, errors.New("503 service unavailable")
	})
	if err == nil || calls != 4 {
		t.Fatalf("exhausted: err=%v calls=%d", err, calls)
	}
}

func TestNewGeneratorRequiresKeyAndKnownProvider(t *testing.T) {
	ctx := context.Background()
	if _, err := NewGenerator(ctx, Config{Provider: "openai"}); !errors.Is(err, ErrNoAPIKey) {
		t.Fatalf("expected ErrNoAPIKey, got %v", err)
	}
	if _, err := NewGenerator(ctx, Config{Provider: "anthropic"}); !errors.Is(err, ErrNoAPIKey) {
		t.Fatalf("expected ErrNoAPIKey, got %v", err)
	}
	if _, err := NewGenerator(ctx, Config{Provider: "mystery", APIKey: "k"}); !errors.Is(err, ErrUnsupportedProvider) {
		t.Fatalf("expected ErrUnsupportedProvider, got %v", err)
	}
	g, err := NewGenerator(ctx, Config{Provider: "anthropic", APIKey: "k"})
	if err != nil {
		t.Fatalf("anthropic generator: %v", err)
	}
	if _, ok := g.(*AnthropicGenerator); !ok {
		t.Fatalf("unexpected generator type %T", g)
	}
}

func TestOpenAIGeneratorAgainstStubServer(t *testing.T) {
	var gotPath, gotAuth, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		buf := new(strings.Builder)
		_, _ = io.Copy(buf, r.Body)
		gotBody = buf.String()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"created": 1,
			"model": "gpt-4o",
			"choices": [{
				"index": 0,
				"finish_reason": "stop",
				"message": {"role": "assistant", "content": "{\"word\":\"serendipity\",\"meaning\":\"뜻밖의 행운\"}"}
			}]
		}`))
	}))
	defer srv.Close()

	g, err := NewOpenAIGenerator(Config{APIKey: "test-key", BaseURL: srv.URL + "/"})
	if err != nil {
		t.Fatalf("new generator: %v", err)
	}
	pair, err := g.Generate(context.Background(), model.LanguageEnglish, []string{"hello"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if pair.Primary != "serendipity" || pair.Translation != "뜻밖의 행운" || pair.LanguageCode != "en" {
		t.Fatalf("unexpected pair %#v", pair)
	}
	if gotPath != "/chat/completions" || gotAuth != "Bearer test-key" {
		t.Fatalf("unexpected request path=%q auth=%q", gotPath, gotAuth)
	}
	if !strings.Contains(gotBody, `"json_object"`) || !strings.Contains(gotBody, "gpt-4o") {
		t.Fatalf("request body missing response format or model: %s", gotBody)
	}
}
