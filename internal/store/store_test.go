package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/sparkify/etl/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })
	return mockDB, mock
}

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

func TestSongRepository_InsertMany(t *testing.T) {
	t.Parallel()

	songs := []types.Song{
		{ID: "SOUDSGM12AC9618304", Title: "Insatiable (Instrumental Version)", ArtistID: "ARNTLGG11E2835DDB9", Year: 0, Duration: 266.39628},
		{ID: "SOMZWCG12A8C13C480", Title: "I Didn't Mean To", ArtistID: "ARD7TVE1187B99BFB1", Year: 0, Duration: 218.93179},
	}

	tests := []struct {
		name         string
		mockConn     func(mock sqlmock.Sqlmock)
		want         int64
		wantErr      bool
		errorMessage string
	}{
		{
			name: "duplicates are counted as not inserted",
			mockConn: func(mock sqlmock.Sqlmock) {
				prep := mock.ExpectPrepare(songInsertQuery)
				prep.ExpectExec().
					WithArgs("SOUDSGM12AC9618304", "Insatiable (Instrumental Version)", "ARNTLGG11E2835DDB9", 0, 266.39628).
					WillReturnResult(sqlmock.NewResult(0, 1))
				prep.ExpectExec().
					WithArgs("SOMZWCG12A8C13C480", "I Didn't Mean To", "ARD7TVE1187B99BFB1", 0, 218.93179).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			want: 1,
		},
		{
			name: "exec errors are wrapped as storage errors",
			mockConn: func(mock sqlmock.Sqlmock) {
				prep := mock.ExpectPrepare(songInsertQuery)
				prep.ExpectExec().WillReturnError(errors.New("connection reset"))
			},
			wantErr:      true,
			errorMessage: "storage: insert songs: connection reset",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			db, mock := newMock(t)
			tt.mockConn(mock)

			got, err := NewSongRepository(db).InsertMany(context.Background(), songs)
			if tt.wantErr {
				require.EqualError(t, err, tt.errorMessage)
				var storageErr *StorageError
				require.ErrorAs(t, err, &storageErr)
				assert.Equal(t, "songs", storageErr.Table)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSongRepository_InsertManyEmpty(t *testing.T) {
	t.Parallel()

	db, mock := newMock(t)

	got, err := NewSongRepository(db).InsertMany(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestArtistRepository_InsertManyNullableColumns(t *testing.T) {
	t.Parallel()

	db, mock := newMock(t)
	prep := mock.ExpectPrepare(artistInsertQuery)
	prep.ExpectExec().
		WithArgs("ARD7TVE1187B99BFB1", "Casual", "California - LA", nil, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))
	prep.ExpectExec().
		WithArgs("ARMJAGH1187FB546F3", "The Box Tops", nil, 35.14968, -90.04892).
		WillReturnResult(sqlmock.NewResult(0, 1))

	artists := []types.Artist{
		{ID: "ARD7TVE1187B99BFB1", Name: "Casual", Location: strPtr("California - LA")},
		{ID: "ARMJAGH1187FB546F3", Name: "The Box Tops", Latitude: floatPtr(35.14968), Longitude: floatPtr(-90.04892)},
	}

	got, err := NewArtistRepository(db).InsertMany(context.Background(), artists)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_UpsertManyKeepsOrder(t *testing.T) {
	t.Parallel()

	db, mock := newMock(t)
	prep := mock.ExpectPrepare(userUpsertQuery)
	prep.ExpectExec().WithArgs(int64(80), "Tegan", "Levine", "F", "free").WillReturnResult(sqlmock.NewResult(0, 1))
	prep.ExpectExec().WithArgs(int64(80), "Tegan", "Levine", "F", "paid").WillReturnResult(sqlmock.NewResult(0, 1))

	users := []types.User{
		{ID: 80, FirstName: "Tegan", LastName: "Levine", Gender: "F", Level: "free"},
		{ID: 80, FirstName: "Tegan", LastName: "Levine", Gender: "F", Level: "paid"},
	}

	got, err := NewUserRepository(db).UpsertMany(context.Background(), users)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByID(t *testing.T) {
	t.Parallel()

	t.Run("found", func(t *testing.T) {
		t.Parallel()

		db, mock := newMock(t)
		mock.ExpectQuery(userGetQuery).WithArgs(int64(26)).
			WillReturnRows(sqlmock.NewRows([]string{"user_id", "first_name", "last_name", "gender", "level"}).
				AddRow(26, "Ryan", "Smith", "M", "free"))

		got, err := NewUserRepository(db).GetByID(context.Background(), 26)
		require.NoError(t, err)
		assert.Equal(t, types.User{ID: 26, FirstName: "Ryan", LastName: "Smith", Gender: "M", Level: "free"}, got)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing", func(t *testing.T) {
		t.Parallel()

		db, mock := newMock(t)
		mock.ExpectQuery(userGetQuery).WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"user_id", "first_name", "last_name", "gender", "level"}))

		_, err := NewUserRepository(db).GetByID(context.Background(), 1)
		require.ErrorIs(t, err, ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTimeRepository_InsertMany(t *testing.T) {
	t.Parallel()

	db, mock := newMock(t)
	prep := mock.ExpectPrepare(timeInsertQuery)
	prep.ExpectExec().
		WithArgs(int64(1541121934796), 1, 2, 44, 11, 2018, "4").
		WillReturnResult(sqlmock.NewResult(0, 1))

	entries := []types.TimeEntry{
		{StartTime: 1541121934796, Hour: 1, Day: 2, Week: 44, Month: 11, Year: 2018, Weekday: 4},
	}

	got, err := NewTimeRepository(db).InsertMany(context.Background(), entries)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSongplayRepository_Stage(t *testing.T) {
	t.Parallel()

	rows := []types.SongplayStaging{
		{
			Ts: 1541121934796, UserID: 26, Level: "free",
			SongTitle: strPtr("Fuck Kitty"), SongLength: floatPtr(241.3897), ArtistName: strPtr("Frumpies"),
			SessionID: 583, Location: "San Jose-Sunnyvale-Santa Clara, CA", UserAgent: "Mozilla/5.0",
		},
		{
			Ts: 1541122241796, UserID: 26, Level: "free",
			SessionID: 583, Location: "San Jose-Sunnyvale-Santa Clara, CA", UserAgent: "Mozilla/5.0",
		},
	}

	db, mock := newMock(t)
	prep := mock.ExpectPrepare(pq.CopyIn(stagingTable, stagingColumns...))
	prep.ExpectExec().
		WithArgs(int64(1541121934796), int64(26), "free", "Fuck Kitty", 241.3897, "Frumpies", int64(583), "San Jose-Sunnyvale-Santa Clara, CA", "Mozilla/5.0").
		WillReturnResult(sqlmock.NewResult(0, 1))
	prep.ExpectExec().
		WithArgs(int64(1541122241796), int64(26), "free", nil, nil, nil, int64(583), "San Jose-Sunnyvale-Santa Clara, CA", "Mozilla/5.0").
		WillReturnResult(sqlmock.NewResult(0, 1))
	prep.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 0))
	prep.WillBeClosed()

	got, err := NewSongplayRepository(db).Stage(context.Background(), rows)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSongplayRepository_ClearAndResolve(t *testing.T) {
	t.Parallel()

	db, mock := newMock(t)
	mock.ExpectExec(stagingClearQuery).WillReturnResult(sqlmock.NewResult(0, 12))
	mock.ExpectExec(songplayResolveQuery).WillReturnResult(sqlmock.NewResult(0, 7))

	repo := NewSongplayRepository(db)
	require.NoError(t, repo.ClearStaging(context.Background()))

	got, err := repo.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSongplayRepository_ResolveError(t *testing.T) {
	t.Parallel()

	db, mock := newMock(t)
	mock.ExpectExec(songplayResolveQuery).WillReturnError(errors.New("relation \"songplays\" does not exist"))

	_, err := NewSongplayRepository(db).Resolve(context.Background())
	require.EqualError(t, err, `storage: resolve songplays: relation "songplays" does not exist`)
}

func TestCountRows(t *testing.T) {
	t.Parallel()

	db, mock := newMock(t)
	for i, table := range Tables {
		mock.ExpectQuery("SELECT COUNT(1) FROM " + table).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(i * 10))
	}

	got, err := CountRows(context.Background(), db)
	require.NoError(t, err)
	require.Len(t, got, len(Tables))
	assert.Equal(t, TableCount{Table: "songs", Rows: 0}, got[0])
	assert.Equal(t, TableCount{Table: "songplays", Rows: 50}, got[5])
	require.NoError(t, mock.ExpectationsWereMet())
}
