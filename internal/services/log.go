package services

import (
	"context"

	"github.com/sparkify/etl/internal/parse"
	"github.com/sparkify/etl/types"
)

// TimeRepository defines persistence operations for the time dimension.
type TimeRepository interface {
	InsertMany(ctx context.Context, entries []types.TimeEntry) (int64, error)
}

// UserRepository defines persistence operations for the users dimension.
type UserRepository interface {
	UpsertMany(ctx context.Context, users []types.User) (int64, error)
}

// SongplayRepository defines the staging and fact table operations.
type SongplayRepository interface {
	ClearStaging(ctx context.Context) error
	Stage(ctx context.Context, rows []types.SongplayStaging) (int64, error)
	Resolve(ctx context.Context) (int64, error)
}

// LogResult summarizes one activity-log load.
type LogResult struct {
	Files     int
	Records   int
	Plays     int
	Time      int64
	Users     int64
	Staged    int64
	Songplays int64
}

// Rows reports written rows per table.
func (r LogResult) Rows() map[string]int64 {
	return map[string]int64{
		"time":           r.Time,
		"users":          r.Users,
		"songplays_temp": r.Staged,
		"songplays":      r.Songplays,
	}
}

// LogService turns activity logs into the time and users dimensions and
// the songplays fact table.
type LogService struct {
	source    FileOpener
	times     TimeRepository
	users     UserRepository
	songplays SongplayRepository
	workers   int
}

func NewLogService(source FileOpener, times TimeRepository, users UserRepository, songplays SongplayRepository, workers int) *LogService {
	return &LogService{source: source, times: times, users: users, songplays: songplays, workers: workerCount(workers)}
}

// Load parses all files, writes the dimensions, stages every play and then
// resolves the staged plays into songplays. Song and artist ids are found by
// name in that last step, since log events do not carry them.
func (s *LogService) Load(ctx context.Context, paths []string) (LogResult, error) {
	files, err := parseAll(ctx, s.source, paths, s.workers, parse.Log)
	if err != nil {
		return LogResult{}, err
	}

	result := LogResult{Files: len(paths)}
	var plays []types.LogEvent
	for _, f := range files {
		result.Records += f.Records
		plays = append(plays, f.Plays...)
	}
	result.Plays = len(plays)

	entries := make([]types.TimeEntry, 0, len(plays))
	users := make([]types.User, 0, len(plays))
	staging := make([]types.SongplayStaging, 0, len(plays))
	for _, play := range plays {
		entries = append(entries, NewTimeEntry(play.Ts))
		users = append(users, play.User())
		staging = append(staging, play.Staging())
	}

	if result.Time, err = s.times.InsertMany(ctx, entries); err != nil {
		return LogResult{}, err
	}
	if result.Users, err = s.users.UpsertMany(ctx, users); err != nil {
		return LogResult{}, err
	}
	if err := s.songplays.ClearStaging(ctx); err != nil {
		return LogResult{}, err
	}
	if result.Staged, err = s.songplays.Stage(ctx, staging); err != nil {
		return LogResult{}, err
	}
	if result.Songplays, err = s.songplays.Resolve(ctx); err != nil {
		return LogResult{}, err
	}
	return result, nil
}
