package types

// SongRecord is the flat shape of one song-metadata file.
// Each file under the song data root holds exactly one of these.
type SongRecord struct {
	SongID          string   `json:"song_id"`
	Title           string   `json:"title"`
	ArtistID        string   `json:"artist_id"`
	Year            int      `json:"year"`
	Duration        float64  `json:"duration"`
	ArtistName      string   `json:"artist_name"`
	ArtistLocation  *string  `json:"artist_location"`
	ArtistLatitude  *float64 `json:"artist_latitude"`
	ArtistLongitude *float64 `json:"artist_longitude"`
}

// Song is a row of the songs dimension.
type Song struct {
	// ID is the catalogue identifier of the song (e.g. "SOMZWCG12A8C13C480").
	ID string `json:"song_id" db:"song_id"`

	// Title is the song title. Log events reference songs by title.
	Title string `json:"title" db:"title"`

	// ArtistID references the artists dimension.
	ArtistID string `json:"artist_id" db:"artist_id"`

	// Year is the release year, 0 when unknown.
	Year int `json:"year" db:"year"`

	// Duration is the track length in seconds.
	// Log events carry the same value as "length".
	Duration float64 `json:"duration" db:"duration"`
}

// Artist is a row of the artists dimension.
type Artist struct {
	// ID is the catalogue identifier of the artist.
	ID string `json:"artist_id" db:"artist_id"`

	// Name is the artist name. Log events reference artists by name.
	Name string `json:"name" db:"name"`

	// Location is a free-form place name, nil when absent.
	Location *string `json:"location,omitempty" db:"location"`

	// Latitude and Longitude are nil when the catalogue has no coordinates.
	Latitude  *float64 `json:"latitude,omitempty" db:"latitude"`
	Longitude *float64 `json:"longitude,omitempty" db:"longitude"`
}

// Song projects the song columns of the record.
func (r SongRecord) Song() Song {
	return Song{
		ID:       r.SongID,
		Title:    r.Title,
		ArtistID: r.ArtistID,
		Year:     r.Year,
		Duration: r.Duration,
	}
}

// Artist projects the artist columns of the record.
func (r SongRecord) Artist() Artist {
	return Artist{
		ID:        r.ArtistID,
		Name:      r.ArtistName,
		Location:  r.ArtistLocation,
		Latitude:  r.ArtistLatitude,
		Longitude: r.ArtistLongitude,
	}
}
