package store

import (
	"context"

	"github.com/lib/pq"
	"github.com/sparkify/etl/types"
)

// SongplayRepository handles the staging table and the songplays fact table.
type SongplayRepository struct {
	db DBTX
}

func NewSongplayRepository(db DBTX) *SongplayRepository {
	return &SongplayRepository{db: db}
}

// ClearStaging empties songplays_temp.
func (r *SongplayRepository) ClearStaging(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, stagingClearQuery)
	return storageErr("clear", stagingTable, err)
}

// Stage appends rows to songplays_temp with COPY FROM STDIN.
// Rows are not deduplicated.
func (r *SongplayRepository) Stage(ctx context.Context, rows []types.SongplayStaging) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	stmt, err := r.db.PrepareContext(ctx, pq.CopyIn(stagingTable, stagingColumns...))
	if err != nil {
		return 0, storageErr("copy", stagingTable, err)
	}
	defer stmt.Close()

	for _, row := range rows {
		if _, err := stmt.ExecContext(ctx,
			row.Ts,
			row.UserID,
			row.Level,
			row.SongTitle,
			row.SongLength,
			row.ArtistName,
			row.SessionID,
			row.Location,
			row.UserAgent,
		); err != nil {
			return 0, storageErr("copy", stagingTable, err)
		}
	}

	// The final argument-less exec flushes the COPY buffer.
	if _, err := stmt.ExecContext(ctx); err != nil {
		return 0, storageErr("copy", stagingTable, err)
	}
	return int64(len(rows)), nil
}

// Resolve inserts one songplay per distinct staged play, matching songs by
// title and duration and artists by name. Unmatched ids stay NULL.
func (r *SongplayRepository) Resolve(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, songplayResolveQuery)
	if err != nil {
		return 0, storageErr("resolve", "songplays", err)
	}
	inserted, err := result.RowsAffected()
	if err != nil {
		return 0, storageErr("resolve", "songplays", err)
	}
	return inserted, nil
}
