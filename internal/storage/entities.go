package storage

import "time"

type Entry struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}

// Options tune a store. A zero MaxValueBytes means unlimited.
type Options struct {
	MaxValueBytes int
}

const (
	DriverCGO    = "sqlite3"
	DriverPureGo = "sqlite"
)
