package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridironhq/gridiron/internal/database"
	"github.com/gridironhq/gridiron/internal/modules/players"
)

func setupRouter(t *testing.T) (*chi.Mux, *sql.DB) {
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(database.Schema)
	require.NoError(t, err)

	repo := players.NewRepository(db, zerolog.Nop())
	service := players.NewService(repo, zerolog.Nop())
	handler := NewHandler(service, zerolog.Nop())

	router := chi.NewRouter()
	handler.RegisterRoutes(router)

	return router, db
}

func insertPlayer(t *testing.T, db *sql.DB, id, name, position, team string, valuation float64) {
	_, err := db.Exec(
		"INSERT INTO players (sleeper_id, full_name, position, nfl_team_code) VALUES (?, ?, ?, ?)",
		id, name, position, team,
	)
	require.NoError(t, err)

	_, err = db.Exec(
		"INSERT INTO player_metrics (player_id, valuation) VALUES (?, ?)",
		id, valuation,
	)
	require.NoError(t, err)
}

func TestHandleListDefaults(t *testing.T) {
	router, db := setupRouter(t)
	insertPlayer(t, db, "1", "Justin Jefferson", "WR", "MIN", 95)

	req := httptest.NewRequest("GET", "/players/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var result map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 1.0, result["page"])
	assert.Equal(t, float64(players.DefaultPageSize), result["page_size"])
	assert.Equal(t, 1.0, result["total"])
	assert.Equal(t, "valuation", result["sort_by"])
	assert.Equal(t, "desc", result["order"])
}

func TestHandleListQueryParams(t *testing.T) {
	router, db := setupRouter(t)
	insertPlayer(t, db, "1", "Justin Jefferson", "WR", "MIN", 95)
	insertPlayer(t, db, "2", "Jalen Hurts", "QB", "PHI", 88)
	insertPlayer(t, db, "3", "Justice Hill", "RB", "BAL", 12)

	req := httptest.NewRequest("GET", "/players/?positions=WR,QB&min_val=50&sort_by=name&order=asc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var result struct {
		Total int `json:"total"`
		Items []struct {
			Name string `json:"name"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 2, result.Total)
	require.Len(t, result.Items, 2)
	assert.Equal(t, "Jalen Hurts", result.Items[0].Name)
}

func TestHandleListBadParams(t *testing.T) {
	router, _ := setupRouter(t)

	tests := []struct {
		name string
		url  string
	}{
		{"bad min_val", "/players/?min_val=abc"},
		{"bad max_val", "/players/?max_val=xyz"},
		{"bad page", "/players/?page=abc"},
		{"bad page_size", "/players/?page_size=many"},
		{"page size over cap", "/players/?page_size=9999"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.url, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHandleListPositionsAndTeams(t *testing.T) {
	router, db := setupRouter(t)
	insertPlayer(t, db, "1", "Back One", "RB", "SF", 50)
	insertPlayer(t, db, "2", "Back Two", "RB", "DAL", 40)

	req := httptest.NewRequest("GET", "/players/positions", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var positions []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &positions))
	require.Len(t, positions, 1)
	assert.Equal(t, "RB", positions[0]["position"])
	assert.Equal(t, 2.0, positions[0]["count"])

	req = httptest.NewRequest("GET", "/players/teams", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var teams []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &teams))
	assert.Len(t, teams, 2)
}

func TestHandleListEmptyDatabase(t *testing.T) {
	router, _ := setupRouter(t)

	req := httptest.NewRequest("GET", "/players/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var result struct {
		Total      int `json:"total"`
		TotalPages int `json:"total_pages"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 0, result.Total)
	assert.Equal(t, 0, result.TotalPages)
}
