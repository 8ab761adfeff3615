// Package weather reads current conditions from OpenWeatherMap.
package weather

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sandeepkv93/dashd/internal/model"
	"github.com/tidwall/gjson"
)

const (
	DefaultBaseURL = "https://api.openweathermap.org/data/2.5/weather"
	DefaultCity    = "Seoul"
	DefaultRefresh = 30 * time.Minute
)

var (
	ErrNoAPIKey  = errors.New("weather: api key is required")
	ErrStatus    = errors.New("weather: unexpected status")
	ErrMalformed = errors.New("weather: malformed response")
)

type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
	now     func() time.Time
}

func NewClient(cfg Config) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: base,
		http:    &http.Client{Timeout: timeout},
		now:     time.Now,
	}
}

// Fetch returns the current weather for city in metric units with Korean
// descriptions.
func (c *Client) Fetch(ctx context.Context, city string) (model.Weather, error) {
	if c.apiKey == "" {
		return model.Weather{}, ErrNoAPIKey
	}
	if strings.TrimSpace(city) == "" {
		city = DefaultCity
	}
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return model.Weather{}, fmt.Errorf("weather: bad base url: %w", err)
	}
	q := u.Query()
	q.Set("q", city)
	q.Set("appid", c.apiKey)
	q.Set("units", "metric")
	q.Set("lang", "kr")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return model.Weather{}, fmt.Errorf("weather: create request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return model.Weather{}, fmt.Errorf("weather: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return model.Weather{}, fmt.Errorf("weather: read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		msg := gjson.GetBytes(body, "message").String()
		return model.Weather{}, fmt.Errorf("%w %d: %s", ErrStatus, resp.StatusCode, msg)
	}
	return c.parse(body, city)
}

func (c *Client) parse(body []byte, city string) (model.Weather, error) {
	if !gjson.ValidBytes(body) {
		return model.Weather{}, fmt.Errorf("%w: invalid JSON", ErrMalformed)
	}
	doc := gjson.ParseBytes(body)
	temp := doc.Get("main.temp")
	if temp.Type != gjson.Number {
		return model.Weather{}, fmt.Errorf("%w: missing main.temp", ErrMalformed)
	}
	w := model.Weather{
		City:        city,
		Temperature: temp.Float(),
		Condition:   doc.Get("weather.0.main").String(),
		Description: Describe(doc.Get("weather.0.description").String()),
		Icon:        doc.Get("weather.0.icon").String(),
		FetchedAt:   c.now(),
	}
	if name := doc.Get("name").String(); name != "" {
		w.City = name
	}
	if v := doc.Get("main.feels_like"); v.Type == gjson.Number {
		f := v.Float()
		w.FeelsLike = &f
	}
	if v := doc.Get("main.humidity"); v.Type == gjson.Number {
		h := int(v.Int())
		w.Humidity = &h
	}
	if v := doc.Get("wind.speed"); v.Type == gjson.Number {
		s := v.Float()
		w.WindSpeed = &s
	}
	return w, nil
}
