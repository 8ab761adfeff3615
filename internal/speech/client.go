// Package speech fetches pronunciation audio and plays it through a local
// command, falling back to a static clip and then to a local synthesizer.
package speech

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

const (
	DefaultBaseURL   = "https://translate.google.com/translate_tts"
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/58.0.3029.110 Safari/537.36"

	DefaultFallbackBase = "https://ssl.gstatic.com/dictionary/static/pronunciation/2022-03-02/audio"

	maxAudioBytes = 4 << 20
)

var (
	ErrEmptyText = errors.New("speech: text is required")
	ErrStatus    = errors.New("speech: unexpected status")
)

// Audio is either fetched bytes or, when the upstream failed, a static clip
// URL for the language.
type Audio struct {
	Data        []byte
	ContentType string
	FallbackURL string
}

func (a Audio) IsFallback() bool { return len(a.Data) == 0 && a.FallbackURL != "" }

// FallbackURL is the static clip under base used when synthesis is
// unavailable.
func FallbackURL(base, lang string) string {
	if lang == "th" {
		return base + "/th/สวัสดี.mp3"
	}
	return base + "/en/hello.mp3"
}

type Config struct {
	BaseURL      string
	FallbackBase string
	UserAgent    string
	Timeout      time.Duration
}

type Client struct {
	baseURL      string
	fallbackBase string
	userAgent    string
	http         *http.Client
	log          *log.Logger
}

func NewClient(cfg Config, logger *log.Logger) *Client {
	c := &Client{
		baseURL:      cfg.BaseURL,
		fallbackBase: strings.TrimSuffix(cfg.FallbackBase, "/"),
		userAgent:    cfg.UserAgent,
		http:         &http.Client{Timeout: cfg.Timeout},
		log:          logger.WithPrefix("speech"),
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.fallbackBase == "" {
		c.fallbackBase = DefaultFallbackBase
	}
	if c.userAgent == "" {
		c.userAgent = DefaultUserAgent
	}
	if c.http.Timeout <= 0 {
		c.http.Timeout = 10 * time.Second
	}
	return c
}

// Fetch synthesizes text in lang ("en", "th"). Upstream failures are not
// errors: they yield an Audio carrying the language's fallback clip URL.
func (c *Client) Fetch(ctx context.Context, text, lang string) (Audio, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Audio{}, ErrEmptyText
	}
	if lang == "" {
		lang = "th"
	}
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return Audio{}, fmt.Errorf("speech: bad base url: %w", err)
	}
	q := u.Query()
	q.Set("ie", "UTF-8")
	q.Set("tl", lang)
	q.Set("client", "tw-ob")
	q.Set("q", text)
	u.RawQuery = q.Encode()

	data, ctype, err := c.get(ctx, u.String())
	if err != nil {
		c.log.Warn("tts failed, using fallback clip", "lang", lang, "err", err)
		return Audio{FallbackURL: FallbackURL(c.fallbackBase, lang)}, nil
	}
	return Audio{Data: data, ContentType: ctype}, nil
}

// Download fetches a fallback clip.
func (c *Client) Download(ctx context.Context, rawURL string) ([]byte, error) {
	data, _, err := c.get(ctx, rawURL)
	return data, err
}

func (c *Client) get(ctx context.Context, rawURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("speech: create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("speech: request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("%w: %d", ErrStatus, resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxAudioBytes))
	if err != nil {
		return nil, "", fmt.Errorf("speech: read body: %w", err)
	}
	if len(data) == 0 {
		return nil, "", fmt.Errorf("speech: empty audio")
	}
	return data, resp.Header.Get("Content-Type"), nil
}
