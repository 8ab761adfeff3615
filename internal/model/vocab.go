package model

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidLanguage = errors.New("model: invalid vocabulary language")

// HistoryCap bounds the recently seen vocabulary terms.
const HistoryCap = 20

type Language string

const (
	LanguageEnglish Language = "english"
	LanguageThai    Language = "thai"
)

func (l Language) IsValid() bool {
	switch l {
	case LanguageEnglish, LanguageThai:
		return true
	default:
		return false
	}
}

// Code is the BCP 47 primary tag used by the speech and vocabulary services.
func (l Language) Code() string {
	switch l {
	case LanguageEnglish:
		return "en"
	case LanguageThai:
		return "th"
	default:
		return ""
	}
}

func (l Language) Label() string {
	switch l {
	case LanguageEnglish:
		return "영어"
	case LanguageThai:
		return "태국어"
	default:
		return string(l)
	}
}

func (l Language) Toggle() Language {
	if l == LanguageThai {
		return LanguageEnglish
	}
	return LanguageThai
}

func ParseLanguage(s string) (Language, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "english", "en":
		return LanguageEnglish, nil
	case "thai", "th":
		return LanguageThai, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidLanguage, s)
	}
}

type WordPair struct {
	Primary      string `json:"primary"`
	Translation  string `json:"translation"`
	LanguageCode string `json:"languageCode"`
}

func (w WordPair) Validate() error {
	if strings.TrimSpace(w.Primary) == "" {
		return errors.New("model: word primary term is required")
	}
	if strings.TrimSpace(w.Translation) == "" {
		return errors.New("model: word translation is required")
	}
	switch w.LanguageCode {
	case "en", "th":
		return nil
	default:
		return fmt.Errorf("%w: code %q", ErrInvalidLanguage, w.LanguageCode)
	}
}
