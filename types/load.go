package types

import "time"

// Category names a family of input files loaded in one transaction.
type Category string

const (
	CategorySongs Category = "songs"
	CategoryLogs  Category = "logs"
)

// LoadEvent describes a committed category and is published to the notifier.
type LoadEvent struct {
	Category    Category         `json:"category"`
	Root        string           `json:"root"`
	Files       int              `json:"files"`
	Rows        map[string]int64 `json:"rows"`
	StartedAt   time.Time        `json:"started_at"`
	CompletedAt time.Time        `json:"completed_at"`
}
