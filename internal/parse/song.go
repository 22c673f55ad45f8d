package parse

import (
	"bytes"
	"errors"
	"io"

	"github.com/goccy/go-json"
	"github.com/sparkify/etl/types"
)

type rawSong struct {
	SongID          *string  `json:"song_id"`
	Title           *string  `json:"title"`
	ArtistID        *string  `json:"artist_id"`
	Year            *int     `json:"year"`
	Duration        *float64 `json:"duration"`
	ArtistName      *string  `json:"artist_name"`
	ArtistLocation  *string  `json:"artist_location"`
	ArtistLatitude  *float64 `json:"artist_latitude"`
	ArtistLongitude *float64 `json:"artist_longitude"`
}

// Song reads the single song record held by a song-metadata file.
// path is only used in errors.
func Song(r io.Reader, path string) (types.SongRecord, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return types.SongRecord{}, &ParseError{Path: path, Err: err}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return types.SongRecord{}, &ParseError{Path: path, Err: errors.New("empty file")}
	}

	var raw rawSong
	if err := json.Unmarshal(data, &raw); err != nil {
		return types.SongRecord{}, decodeError(path, 0, err)
	}

	required := []struct {
		field   string
		present bool
	}{
		{"song_id", raw.SongID != nil && *raw.SongID != ""},
		{"title", raw.Title != nil},
		{"artist_id", raw.ArtistID != nil && *raw.ArtistID != ""},
		{"year", raw.Year != nil},
		{"duration", raw.Duration != nil},
		{"artist_name", raw.ArtistName != nil},
	}
	for _, req := range required {
		if !req.present {
			return types.SongRecord{}, &ValidationError{Path: path, Field: req.field, Reason: reasonMissing}
		}
	}

	return types.SongRecord{
		SongID:          *raw.SongID,
		Title:           *raw.Title,
		ArtistID:        *raw.ArtistID,
		Year:            *raw.Year,
		Duration:        *raw.Duration,
		ArtistName:      *raw.ArtistName,
		ArtistLocation:  raw.ArtistLocation,
		ArtistLatitude:  raw.ArtistLatitude,
		ArtistLongitude: raw.ArtistLongitude,
	}, nil
}

// decodeError turns a type mismatch into a ValidationError and anything
// else into a ParseError.
func decodeError(path string, line int, err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return &ValidationError{Path: path, Line: line, Field: typeErr.Field, Reason: reasonType}
	}
	return &ParseError{Path: path, Line: line, Err: err}
}
