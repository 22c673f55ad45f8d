package services

import (
	"context"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/sparkify/etl/types"
)

// memSource serves file contents from memory.
type memSource map[string]string

func (m memSource) Open(_ context.Context, path string) (io.ReadCloser, error) {
	content, ok := m[path]
	if !ok {
		return nil, &os.PathError{Op: "open", Path: path, Err: os.ErrNotExist}
	}
	return io.NopCloser(strings.NewReader(content)), nil
}

func (m memSource) paths() []string {
	paths := make([]string, 0, len(m))
	for p := range m {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// warehouse mimics the conflict policies and the resolution join of the
// postgres schema.
type warehouse struct {
	songs     map[string]types.Song
	artists   map[string]types.Artist
	users     map[int64]types.User
	times     map[int64]types.TimeEntry
	staging   []types.SongplayStaging
	songplays []types.Songplay

	failOn string
}

func newWarehouse() *warehouse {
	return &warehouse{
		songs:   map[string]types.Song{},
		artists: map[string]types.Artist{},
		users:   map[int64]types.User{},
		times:   map[int64]types.TimeEntry{},
	}
}

type errInjected string

func (e errInjected) Error() string { return "injected failure on " + string(e) }

func (w *warehouse) fail(op string) error {
	if w.failOn == op {
		return errInjected(op)
	}
	return nil
}

type songRepo struct{ w *warehouse }

func (r songRepo) InsertMany(_ context.Context, songs []types.Song) (int64, error) {
	if err := r.w.fail("songs"); err != nil {
		return 0, err
	}
	var n int64
	for _, s := range songs {
		if _, ok := r.w.songs[s.ID]; !ok {
			r.w.songs[s.ID] = s
			n++
		}
	}
	return n, nil
}

type artistRepo struct{ w *warehouse }

func (r artistRepo) InsertMany(_ context.Context, artists []types.Artist) (int64, error) {
	if err := r.w.fail("artists"); err != nil {
		return 0, err
	}
	var n int64
	for _, a := range artists {
		if _, ok := r.w.artists[a.ID]; !ok {
			r.w.artists[a.ID] = a
			n++
		}
	}
	return n, nil
}

type timeRepo struct{ w *warehouse }

func (r timeRepo) InsertMany(_ context.Context, entries []types.TimeEntry) (int64, error) {
	if err := r.w.fail("time"); err != nil {
		return 0, err
	}
	var n int64
	for _, e := range entries {
		if _, ok := r.w.times[e.StartTime]; !ok {
			r.w.times[e.StartTime] = e
			n++
		}
	}
	return n, nil
}

type userRepo struct{ w *warehouse }

func (r userRepo) UpsertMany(_ context.Context, users []types.User) (int64, error) {
	if err := r.w.fail("users"); err != nil {
		return 0, err
	}
	for _, u := range users {
		if existing, ok := r.w.users[u.ID]; ok {
			existing.Level = u.Level
			r.w.users[u.ID] = existing
			continue
		}
		r.w.users[u.ID] = u
	}
	return int64(len(users)), nil
}

type songplayRepo struct{ w *warehouse }

func (r songplayRepo) ClearStaging(context.Context) error {
	r.w.staging = nil
	return nil
}

func (r songplayRepo) Stage(_ context.Context, rows []types.SongplayStaging) (int64, error) {
	if err := r.w.fail("stage"); err != nil {
		return 0, err
	}
	r.w.staging = append(r.w.staging, rows...)
	return int64(len(rows)), nil
}

func (r songplayRepo) Resolve(context.Context) (int64, error) {
	type key struct {
		ts, user, session   int64
		level, song, artist string
		location, userAgent string
	}
	keyOf := func(sp types.Songplay) key {
		k := key{ts: sp.StartTime, user: sp.UserID, session: sp.SessionID, level: sp.Level, location: sp.Location, userAgent: sp.UserAgent}
		if sp.SongID != nil {
			k.song = *sp.SongID
		}
		if sp.ArtistID != nil {
			k.artist = *sp.ArtistID
		}
		return k
	}

	seen := map[key]bool{}
	for _, sp := range r.w.songplays {
		seen[keyOf(sp)] = true
	}

	var n int64
	for _, st := range r.w.staging {
		sp := types.Songplay{
			StartTime: st.Ts, UserID: st.UserID, Level: st.Level,
			SessionID: st.SessionID, Location: st.Location, UserAgent: st.UserAgent,
		}
		if st.ArtistName != nil {
			sp.ArtistID = r.w.artistIDByName(*st.ArtistName)
		}
		if st.SongTitle != nil && st.SongLength != nil {
			sp.SongID = r.w.songIDByTitle(*st.SongTitle, *st.SongLength)
		}
		k := keyOf(sp)
		if seen[k] {
			continue
		}
		seen[k] = true
		sp.ID = int64(len(r.w.songplays) + 1)
		r.w.songplays = append(r.w.songplays, sp)
		n++
	}
	return n, nil
}

// artistIDByName returns the smallest id among artists with that name.
func (w *warehouse) artistIDByName(name string) *string {
	var best *string
	for id, a := range w.artists {
		if a.Name == name && (best == nil || id < *best) {
			id := id
			best = &id
		}
	}
	return best
}

// songIDByTitle returns the smallest id among songs with that title and duration.
func (w *warehouse) songIDByTitle(title string, duration float64) *string {
	var best *string
	for id, s := range w.songs {
		if s.Title == title && s.Duration == duration && (best == nil || id < *best) {
			id := id
			best = &id
		}
	}
	return best
}
