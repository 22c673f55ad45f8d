package types

// PageNextSong is the page value of a play event.
const PageNextSong = "NextSong"

// LogEvent is one validated line of an activity log.
// Song, Length and Artist are nil when the event does not reference a song.
type LogEvent struct {
	Ts        int64    `json:"ts"`
	UserID    int64    `json:"userId"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Gender    string   `json:"gender"`
	Level     string   `json:"level"`
	Page      string   `json:"page"`
	Song      *string  `json:"song"`
	Length    *float64 `json:"length"`
	Artist    *string  `json:"artist"`
	SessionID int64    `json:"sessionId"`
	Location  string   `json:"location"`
	UserAgent string   `json:"userAgent"`
}

// User is a row of the users dimension.
type User struct {
	// ID is the numeric user identifier from the log.
	ID int64 `json:"user_id" db:"user_id"`

	FirstName string `json:"first_name" db:"first_name"`
	LastName  string `json:"last_name" db:"last_name"`
	Gender    string `json:"gender" db:"gender"`

	// Level is the subscription level ("free" or "paid").
	// It is the only column updated when a user is seen again.
	Level string `json:"level" db:"level"`
}

// TimeEntry is a row of the time dimension, keyed by the event timestamp.
type TimeEntry struct {
	// StartTime is the event time in milliseconds since the Unix epoch.
	StartTime int64 `json:"start_time" db:"start_time"`

	Hour  int `json:"hour" db:"hour"`
	Day   int `json:"day" db:"day"`
	Week  int `json:"week" db:"week"`
	Month int `json:"month" db:"month"`
	Year  int `json:"year" db:"year"`

	// Weekday counts from Monday=0 to Sunday=6.
	Weekday int `json:"weekday" db:"weekday"`
}

// SongplayStaging is a denormalized play event awaiting id resolution.
type SongplayStaging struct {
	Ts         int64    `db:"ts"`
	UserID     int64    `db:"user_id"`
	Level      string   `db:"level"`
	SongTitle  *string  `db:"song_title"`
	SongLength *float64 `db:"song_length"`
	ArtistName *string  `db:"artist_name"`
	SessionID  int64    `db:"session_id"`
	Location   string   `db:"location"`
	UserAgent  string   `db:"user_agent"`
}

// Songplay is a row of the songplays fact table.
type Songplay struct {
	ID        int64   `json:"songplay_id" db:"songplay_id"`
	StartTime int64   `json:"start_time" db:"start_time"`
	UserID    int64   `json:"user_id" db:"user_id"`
	Level     string  `json:"level" db:"level"`
	SongID    *string `json:"song_id" db:"song_id"`
	ArtistID  *string `json:"artist_id" db:"artist_id"`
	SessionID int64   `json:"session_id" db:"session_id"`
	Location  string  `json:"location" db:"location"`
	UserAgent string  `json:"user_agent" db:"user_agent"`
}

// User projects the user columns of the event.
func (e LogEvent) User() User {
	return User{
		ID:        e.UserID,
		FirstName: e.FirstName,
		LastName:  e.LastName,
		Gender:    e.Gender,
		Level:     e.Level,
	}
}

// Staging projects the event into a staging row.
func (e LogEvent) Staging() SongplayStaging {
	return SongplayStaging{
		Ts:         e.Ts,
		UserID:     e.UserID,
		Level:      e.Level,
		SongTitle:  e.Song,
		SongLength: e.Length,
		ArtistName: e.Artist,
		SessionID:  e.SessionID,
		Location:   e.Location,
		UserAgent:  e.UserAgent,
	}
}
