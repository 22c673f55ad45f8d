package services

import (
	"context"

	"github.com/sparkify/etl/internal/parse"
	"github.com/sparkify/etl/types"
)

// SongRepository defines persistence operations for the songs dimension.
type SongRepository interface {
	InsertMany(ctx context.Context, songs []types.Song) (int64, error)
}

// ArtistRepository defines persistence operations for the artists dimension.
type ArtistRepository interface {
	InsertMany(ctx context.Context, artists []types.Artist) (int64, error)
}

// SongResult summarizes one song-metadata load.
type SongResult struct {
	Files   int
	Songs   int64
	Artists int64
}

// Rows reports inserted rows per table.
func (r SongResult) Rows() map[string]int64 {
	return map[string]int64{"songs": r.Songs, "artists": r.Artists}
}

// SongService loads song-metadata files into the songs and artists tables.
type SongService struct {
	source  FileOpener
	songs   SongRepository
	artists ArtistRepository
	workers int
}

func NewSongService(source FileOpener, songs SongRepository, artists ArtistRepository, workers int) *SongService {
	return &SongService{source: source, songs: songs, artists: artists, workers: workerCount(workers)}
}

// Load parses every file before writing anything, then inserts songs and
// artists. Existing ids are left untouched.
func (s *SongService) Load(ctx context.Context, paths []string) (SongResult, error) {
	records, err := parseAll(ctx, s.source, paths, s.workers, parse.Song)
	if err != nil {
		return SongResult{}, err
	}

	songs := make([]types.Song, 0, len(records))
	artists := make([]types.Artist, 0, len(records))
	for _, record := range records {
		songs = append(songs, record.Song())
		artists = append(artists, record.Artist())
	}

	result := SongResult{Files: len(paths)}
	if result.Songs, err = s.songs.InsertMany(ctx, songs); err != nil {
		return SongResult{}, err
	}
	if result.Artists, err = s.artists.InsertMany(ctx, artists); err != nil {
		return SongResult{}, err
	}
	return result, nil
}
