package store

const (
	songInsertQuery = `
		INSERT INTO songs (song_id, title, artist_id, year, duration)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (song_id) DO NOTHING`

	artistInsertQuery = `
		INSERT INTO artists (artist_id, name, location, latitude, longitude)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (artist_id) DO NOTHING`

	userUpsertQuery = `
		INSERT INTO users (user_id, first_name, last_name, gender, level)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE SET level = excluded.level`

	timeInsertQuery = `
		INSERT INTO time (start_time, hour, day, week, month, year, weekday)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (start_time) DO NOTHING`

	stagingClearQuery = `DELETE FROM songplays_temp`

	// Ambiguous names resolve to the smallest id so each staging row
	// matches at most one song and one artist. The anti-join keeps reruns
	// from duplicating facts.
	songplayResolveQuery = `
		INSERT INTO songplays (start_time, user_id, level, song_id, artist_id, session_id, location, user_agent)
		SELECT DISTINCT t.ts, t.user_id, t.level, s.song_id, a.artist_id, t.session_id, t.location, t.user_agent
		FROM songplays_temp t
		LEFT JOIN (
			SELECT name, MIN(artist_id) AS artist_id FROM artists GROUP BY name
		) a ON t.artist_name = a.name
		LEFT JOIN (
			SELECT title, duration, MIN(song_id) AS song_id FROM songs GROUP BY title, duration
		) s ON t.song_title = s.title AND t.song_length = s.duration
		WHERE NOT EXISTS (
			SELECT 1 FROM songplays sp
			WHERE sp.start_time = t.ts
			  AND sp.user_id = t.user_id
			  AND sp.level = t.level
			  AND sp.song_id IS NOT DISTINCT FROM s.song_id
			  AND sp.artist_id IS NOT DISTINCT FROM a.artist_id
			  AND sp.session_id = t.session_id
			  AND sp.location = t.location
			  AND sp.user_agent = t.user_agent
		)`

	userGetQuery = `
		SELECT user_id, first_name, last_name, gender, level
		FROM users
		WHERE user_id = $1`
)

const stagingTable = "songplays_temp"

var stagingColumns = []string{
	"ts", "user_id", "level", "song_title", "song_length",
	"artist_name", "session_id", "location", "user_agent",
}

// Tables lists the star schema tables in load order.
var Tables = []string{"songs", "artists", "time", "users", "songplays_temp", "songplays"}
