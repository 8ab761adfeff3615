package vocab

import (
	"strings"

	"github.com/sandeepkv93/dashd/internal/model"
)

// History is the most-recent-first list of accepted primary terms, capped at
// model.HistoryCap. Membership is case-insensitive.
type History struct {
	terms []string
}

func NewHistory(terms []string) *History {
	h := &History{}
	for i := len(terms) - 1; i >= 0; i-- {
		h.Push(terms[i])
	}
	return h
}

func (h *History) Contains(term string) bool {
	return h.index(term) >= 0
}

// Push moves term to the front, evicting the oldest entry past the cap.
func (h *History) Push(term string) {
	term = strings.TrimSpace(term)
	if term == "" {
		return
	}
	if i := h.index(term); i >= 0 {
		h.terms = append(h.terms[:i:i], h.terms[i+1:]...)
	}
	h.terms = append([]string{term}, h.terms...)
	if len(h.terms) > model.HistoryCap {
		h.terms = h.terms[:model.HistoryCap]
	}
}

func (h *History) Terms() []string {
	return append([]string(nil), h.terms...)
}

func (h *History) Len() int { return len(h.terms) }

func (h *History) index(term string) int {
	term = strings.TrimSpace(term)
	for i, t := range h.terms {
		if strings.EqualFold(t, term) {
			return i
		}
	}
	return -1
}
