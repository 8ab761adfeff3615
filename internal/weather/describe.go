package weather

import "strings"

var koreanDescriptions = map[string]string{
	"clear sky":            "맑음",
	"few clouds":           "구름 조금",
	"scattered clouds":     "구름 조금",
	"broken clouds":        "구름 많음",
	"shower rain":          "소나기",
	"rain":                 "비",
	"thunderstorm":         "천둥번개",
	"snow":                 "눈",
	"mist":                 "안개",
	"overcast clouds":      "흐림",
	"light rain":           "약한 비",
	"moderate rain":        "중간 비",
	"heavy intensity rain": "강한 비",
	"very heavy rain":      "매우 강한 비",
	"extreme rain":         "극심한 비",
	"freezing rain":        "얼어붙는 비",
	"light snow":           "약한 눈",
	"heavy snow":           "강한 눈",
	"sleet":                "진눈깨비",
	"light shower snow":    "약한 눈 소나기",
	"heavy shower snow":    "강한 눈 소나기",
	"fog":                  "안개",
	"haze":                 "실안개",
}

// Describe maps an English OpenWeatherMap description to Korean. Unknown
// descriptions, including ones already localized by lang=kr, pass through.
func Describe(description string) string {
	if ko, ok := koreanDescriptions[strings.ToLower(strings.TrimSpace(description))]; ok {
		return ko
	}
	return description
}

// Glyph is a one-cell symbol for an OpenWeatherMap condition group.
func Glyph(condition string) string {
	switch strings.ToLower(condition) {
	case "clear":
		return "☀"
	case "clouds":
		return "☁"
	case "rain", "drizzle":
		return "☂"
	case "thunderstorm":
		return "⚡"
	case "snow":
		return "❄"
	case "mist", "fog", "haze", "smoke", "dust":
		return "≋"
	default:
		return "•"
	}
}
