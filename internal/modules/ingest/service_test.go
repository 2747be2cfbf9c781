package ingest

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridironhq/gridiron/internal/clients/sleeper"
	"github.com/gridironhq/gridiron/internal/database"
)

func setupTestDB(t *testing.T) *sql.DB {
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(database.Schema)
	require.NoError(t, err)

	return db
}

func newTestService(t *testing.T, baseURL string) (*Service, *sql.DB) {
	db := setupTestDB(t)
	repo := NewRepository(db, zerolog.Nop())
	client := sleeper.NewClient(baseURL, zerolog.Nop())
	return NewService(repo, client, zerolog.Nop()), db
}

func TestSyncPlayers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/players/nfl", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"100": {"first_name": "Justin", "last_name": "Jefferson", "position": "WR", "team": "MIN", "age": 26, "sport": "nfl"},
			"200": {"first_name": "", "last_name": "", "search_full_name": "sf deadpool", "fantasy_positions": ["DEF"], "sport": "nfl"},
			"300": {"first_name": "No", "last_name": "Position", "sport": "nfl"},
			"400": {"first_name": "Wrong", "last_name": "Sport", "position": "C", "sport": "cfl"}
		}`))
	}))
	defer srv.Close()

	service, db := newTestService(t, srv.URL)

	stats, err := service.SyncPlayers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Inserted)
	assert.Equal(t, 0, stats.Updated)
	assert.Equal(t, 2, stats.Skipped)

	var name, position string
	var team sql.NullString
	err = db.QueryRow(
		"SELECT full_name, position, nfl_team_code FROM players WHERE sleeper_id = '100'").
		Scan(&name, &position, &team)
	require.NoError(t, err)
	assert.Equal(t, "Justin Jefferson", name)
	assert.Equal(t, "WR", position)
	assert.Equal(t, "MIN", team.String)

	// Name falls back to search_full_name, position to fantasy_positions,
	// and an empty team stays NULL.
	err = db.QueryRow(
		"SELECT full_name, position, nfl_team_code FROM players WHERE sleeper_id = '200'").
		Scan(&name, &position, &team)
	require.NoError(t, err)
	assert.Equal(t, "sf deadpool", name)
	assert.Equal(t, "DEF", position)
	assert.False(t, team.Valid)

	t.Run("second run updates in place", func(t *testing.T) {
		stats, err := service.SyncPlayers(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 0, stats.Inserted)
		assert.Equal(t, 2, stats.Updated)
	})
}

func TestSyncTrending(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/v1/players/nfl/trending/add":
			w.Write([]byte(`[{"player_id": "1", "count": 900}, {"player_id": "2", "count": 300}, {"player_id": "ghost", "count": 50}]`))
		case "/v1/players/nfl/trending/drop":
			w.Write([]byte(`[{"player_id": "1", "count": 100}]`))
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	service, db := newTestService(t, srv.URL)

	for _, id := range []string{"1", "2"} {
		_, err := db.Exec(
			"INSERT INTO players (sleeper_id, full_name, position) VALUES (?, ?, 'WR')",
			id, "Player "+id)
		require.NoError(t, err)
	}

	// A stale row proves the table is replaced, not merged.
	_, err := db.Exec(
		"INSERT INTO player_trending (player_id, adds_24h, drops_24h) VALUES ('2', 1, 1)")
	require.NoError(t, err)

	stats, err := service.SyncTrending(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Inserted)
	assert.Equal(t, 1, stats.Skipped) // unknown id dropped

	var adds, drops int
	err = db.QueryRow(
		"SELECT adds_24h, drops_24h FROM player_trending WHERE player_id = '1'").Scan(&adds, &drops)
	require.NoError(t, err)
	assert.Equal(t, 900, adds)
	assert.Equal(t, 100, drops)

	err = db.QueryRow(
		"SELECT adds_24h, drops_24h FROM player_trending WHERE player_id = '2'").Scan(&adds, &drops)
	require.NoError(t, err)
	assert.Equal(t, 300, adds)
	assert.Equal(t, 0, drops)
}

func TestLoadValuations(t *testing.T) {
	service, db := newTestService(t, "http://unused")

	csv := "name;team;position;age;fantasycalcId;sleeperId;mflId;value;overallRank;positionRank;trend30day\n" +
		"Justin Jefferson;MIN;WR;26;1;100;m1;9500.5;1;1;120.5\n" +
		"No Sleeper Id;DAL;RB;24;2;;m2;500;50;20;1\n" +
		"Rookie Unknown;KC;TE;22;3;300;m3;250;80;10;\n"

	path := filepath.Join(t.TempDir(), "rankings.csv")
	require.NoError(t, os.WriteFile(path, []byte(csv), 0644))

	// A stale metric proves the table is replaced wholesale.
	_, err := db.Exec("INSERT INTO player_metrics (player_id, valuation) VALUES ('old', 1)")
	require.NoError(t, err)

	stats, err := service.LoadValuations(path)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Inserted)
	assert.Equal(t, 1, stats.Skipped)

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM player_metrics").Scan(&count))
	assert.Equal(t, 2, count)

	var valuation float64
	var trend sql.NullFloat64
	err = db.QueryRow(
		"SELECT valuation, trend_30d FROM player_metrics WHERE player_id = '100'").
		Scan(&valuation, &trend)
	require.NoError(t, err)
	assert.Equal(t, 9500.5, valuation)
	require.True(t, trend.Valid)
	assert.Equal(t, 120.5, trend.Float64)

	err = db.QueryRow(
		"SELECT trend_30d FROM player_metrics WHERE player_id = '300'").Scan(&trend)
	require.NoError(t, err)
	assert.False(t, trend.Valid)
}

func TestLoadValuationsMissingFile(t *testing.T) {
	service, _ := newTestService(t, "http://unused")

	_, err := service.LoadValuations(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
}

func TestLoadValuationsMissingColumns(t *testing.T) {
	service, _ := newTestService(t, "http://unused")

	path := filepath.Join(t.TempDir(), "bad.csv")
	require.NoError(t, os.WriteFile(path, []byte("name;team\nfoo;bar\n"), 0644))

	_, err := service.LoadValuations(path)
	require.Error(t, err)
}
