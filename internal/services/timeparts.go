package services

import (
	"time"

	"github.com/sparkify/etl/types"
)

// NewTimeEntry breaks a millisecond timestamp down in UTC. Week is the
// ISO-8601 week number and Weekday counts Monday as 0, so the last days of
// December can carry week 1 while Year stays the calendar year.
func NewTimeEntry(ts int64) types.TimeEntry {
	t := time.UnixMilli(ts).UTC()
	_, week := t.ISOWeek()

	return types.TimeEntry{
		StartTime: ts,
		Hour:      t.Hour(),
		Day:       t.Day(),
		Week:      week,
		Month:     int(t.Month()),
		Year:      t.Year(),
		Weekday:   (int(t.Weekday()) + 6) % 7,
	}
}
