package store

import (
	"context"

	"github.com/sparkify/etl/types"
)

// SongRepository handles persistence for the songs dimension.
type SongRepository struct {
	db DBTX
}

func NewSongRepository(db DBTX) *SongRepository {
	return &SongRepository{db: db}
}

// InsertMany inserts songs, skipping ids that already exist.
// It returns the number of new rows.
func (r *SongRepository) InsertMany(ctx context.Context, songs []types.Song) (int64, error) {
	rows := make([][]any, 0, len(songs))
	for _, song := range songs {
		rows = append(rows, []any{song.ID, song.Title, song.ArtistID, song.Year, song.Duration})
	}

	inserted, err := ExecMany(ctx, r.db, songInsertQuery, rows)
	return inserted, storageErr("insert", "songs", err)
}

// ArtistRepository handles persistence for the artists dimension.
type ArtistRepository struct {
	db DBTX
}

func NewArtistRepository(db DBTX) *ArtistRepository {
	return &ArtistRepository{db: db}
}

// InsertMany inserts artists, skipping ids that already exist.
func (r *ArtistRepository) InsertMany(ctx context.Context, artists []types.Artist) (int64, error) {
	rows := make([][]any, 0, len(artists))
	for _, artist := range artists {
		rows = append(rows, []any{artist.ID, artist.Name, artist.Location, artist.Latitude, artist.Longitude})
	}

	inserted, err := ExecMany(ctx, r.db, artistInsertQuery, rows)
	return inserted, storageErr("insert", "artists", err)
}
