package model

import "time"

type Weather struct {
	City        string    `json:"city"`
	Temperature float64   `json:"temperature"`
	FeelsLike   *float64  `json:"feelsLike,omitempty"`
	Condition   string    `json:"condition"`
	Description string    `json:"description"`
	Humidity    *int      `json:"humidity,omitempty"`
	WindSpeed   *float64  `json:"windSpeed,omitempty"`
	Icon        string    `json:"icon,omitempty"`
	FetchedAt   time.Time `json:"fetchedAt"`
}
