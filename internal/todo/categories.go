package todo

import "strings"

// Categories is an insertion-ordered set of names. It only grows.
type Categories struct {
	names []string
}

func NewCategories(names []string) *Categories {
	c := &Categories{}
	for _, n := range names {
		c.Add(n)
	}
	return c
}

// Add reports false for blank or already present names.
func (c *Categories) Add(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" || c.Has(name) {
		return false
	}
	c.names = append(c.names, name)
	return true
}

func (c *Categories) Has(name string) bool {
	for _, n := range c.names {
		if n == name {
			return true
		}
	}
	return false
}

func (c *Categories) Names() []string {
	return append([]string(nil), c.names...)
}

// Next cycles through "" (no filter) and every name in order.
func (c *Categories) Next(current string) string {
	if current == "" {
		if len(c.names) == 0 {
			return ""
		}
		return c.names[0]
	}
	for i, n := range c.names {
		if n == current {
			if i+1 < len(c.names) {
				return c.names[i+1]
			}
			return ""
		}
	}
	return ""
}
