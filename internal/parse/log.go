package parse

import (
	"bufio"
	"bytes"
	"io"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/sparkify/etl/types"
)

const maxLineSize = 1 << 20

// LogFile is the parsed content of one activity-log file.
type LogFile struct {
	Path string
	// Records counts every non-blank line, whatever its page.
	Records int
	// Plays holds the validated NextSong events in line order.
	Plays []types.LogEvent
}

type rawEvent struct {
	Ts        *int64   `json:"ts"`
	UserID    userID   `json:"userId"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Gender    string   `json:"gender"`
	Level     string   `json:"level"`
	Page      *string  `json:"page"`
	Song      *string  `json:"song"`
	Length    *float64 `json:"length"`
	Artist    *string  `json:"artist"`
	SessionID *int64   `json:"sessionId"`
	Location  string   `json:"location"`
	UserAgent string   `json:"userAgent"`
}

// userID accepts both a JSON number and a numeric string. Logged-out
// events carry an empty string, which counts as absent.
type userID struct {
	raw string
	set bool
}

func (u *userID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		u.raw, u.set = s, s != ""
		return nil
	}
	u.raw, u.set = string(b), true
	return nil
}

// Log reads a line-delimited activity log. Blank lines are skipped and
// only NextSong events are validated and returned.
func Log(r io.Reader, path string) (LogFile, error) {
	file := LogFile{Path: path}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	line := 0
	for scanner.Scan() {
		line++
		text := bytes.TrimSpace(scanner.Bytes())
		if len(text) == 0 {
			continue
		}
		file.Records++

		var raw rawEvent
		if err := json.Unmarshal(text, &raw); err != nil {
			return LogFile{}, decodeError(path, line, err)
		}

		if raw.Page == nil {
			return LogFile{}, &ValidationError{Path: path, Line: line, Field: "page", Reason: reasonMissing}
		}
		if *raw.Page != types.PageNextSong {
			continue
		}

		event, err := raw.event(path, line)
		if err != nil {
			return LogFile{}, err
		}
		file.Plays = append(file.Plays, event)
	}
	if err := scanner.Err(); err != nil {
		return LogFile{}, &ParseError{Path: path, Line: line + 1, Err: err}
	}

	return file, nil
}

func (raw rawEvent) event(path string, line int) (types.LogEvent, error) {
	if raw.Ts == nil {
		return types.LogEvent{}, &ValidationError{Path: path, Line: line, Field: "ts", Reason: reasonMissing}
	}
	if !raw.UserID.set {
		return types.LogEvent{}, &ValidationError{Path: path, Line: line, Field: "userId", Reason: reasonMissing}
	}
	uid, err := strconv.ParseInt(raw.UserID.raw, 10, 64)
	if err != nil {
		return types.LogEvent{}, &ValidationError{Path: path, Line: line, Field: "userId", Reason: reasonType}
	}
	if raw.SessionID == nil {
		return types.LogEvent{}, &ValidationError{Path: path, Line: line, Field: "sessionId", Reason: reasonMissing}
	}

	return types.LogEvent{
		Ts:        *raw.Ts,
		UserID:    uid,
		FirstName: raw.FirstName,
		LastName:  raw.LastName,
		Gender:    raw.Gender,
		Level:     raw.Level,
		Page:      *raw.Page,
		Song:      raw.Song,
		Length:    raw.Length,
		Artist:    raw.Artist,
		SessionID: *raw.SessionID,
		Location:  raw.Location,
		UserAgent: raw.UserAgent,
	}, nil
}
