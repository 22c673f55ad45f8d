package store

import (
	"context"
	"strconv"

	"github.com/sparkify/etl/types"
)

// TimeRepository handles persistence for the time dimension.
type TimeRepository struct {
	db DBTX
}

func NewTimeRepository(db DBTX) *TimeRepository {
	return &TimeRepository{db: db}
}

// InsertMany inserts time entries, skipping start times already present.
func (r *TimeRepository) InsertMany(ctx context.Context, entries []types.TimeEntry) (int64, error) {
	rows := make([][]any, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []any{e.StartTime, e.Hour, e.Day, e.Week, e.Month, e.Year, strconv.Itoa(e.Weekday)})
	}

	inserted, err := ExecMany(ctx, r.db, timeInsertQuery, rows)
	return inserted, storageErr("insert", "time", err)
}
