package handlers

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridironhq/gridiron/internal/database"
	"github.com/gridironhq/gridiron/internal/modules/roster"
)

func setupRouter(t *testing.T) (*chi.Mux, *sql.DB) {
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(database.Schema)
	require.NoError(t, err)

	repo := roster.NewRepository(db, zerolog.Nop())
	service := roster.NewService(repo, zerolog.Nop())
	handler := NewHandler(service, zerolog.Nop())

	router := chi.NewRouter()
	handler.RegisterRoutes(router)

	return router, db
}

func insertPlayer(t *testing.T, db *sql.DB, id, name, position string, valuation float64) {
	_, err := db.Exec(
		"INSERT INTO players (sleeper_id, full_name, position) VALUES (?, ?, ?)",
		id, name, position,
	)
	require.NoError(t, err)

	_, err = db.Exec(
		"INSERT INTO player_metrics (player_id, valuation) VALUES (?, ?)",
		id, valuation,
	)
	require.NoError(t, err)
}

func createSession(t *testing.T, router *chi.Mux, numTeams int) roster.Session {
	body := fmt.Sprintf(`{"settings": {"num_teams": %d}}`, numTeams)
	req := httptest.NewRequest("POST", "/roster/init", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var session roster.Session
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &session))
	return session
}

func TestHandleCreateSession(t *testing.T) {
	router, _ := setupRouter(t)

	session := createSession(t, router, 4)
	assert.NotEmpty(t, session.ID)
	assert.Len(t, session.Teams, 4)
	// Omitted slot counts keep their defaults.
	assert.Equal(t, 2, session.Settings.RB)
	assert.Equal(t, 6, session.Settings.Bench)
}

func TestHandleCreateSessionInvalidSettings(t *testing.T) {
	router, _ := setupRouter(t)

	body := `{"settings": {"num_teams": 1}}`
	req := httptest.NewRequest("POST", "/roster/init", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleRenameTeam(t *testing.T) {
	router, _ := setupRouter(t)
	session := createSession(t, router, 2)

	url := fmt.Sprintf("/roster/%s/team/%d/rename", session.ID, session.Teams[0].ID)
	req := httptest.NewRequest("PUT", url, strings.NewReader(`{"name": "Renamed"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	t.Run("unknown team returns 404", func(t *testing.T) {
		url := fmt.Sprintf("/roster/%s/team/9999/rename", session.ID)
		req := httptest.NewRequest("PUT", url, strings.NewReader(`{"name": "Nope"}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestHandleSearchPlayers(t *testing.T) {
	router, db := setupRouter(t)
	insertPlayer(t, db, "1", "Justin Jefferson", "WR", 95)
	session := createSession(t, router, 2)

	req := httptest.NewRequest("GET", "/roster/"+session.ID+"/search?q=jeff", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var items []roster.SearchItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "Justin Jefferson", items[0].Name)
}

func TestHandleAddAndRemovePlayer(t *testing.T) {
	router, db := setupRouter(t)
	insertPlayer(t, db, "1", "Justin Jefferson", "WR", 95)
	session := createSession(t, router, 2)
	teamID := session.Teams[0].ID

	addURL := fmt.Sprintf("/roster/%s/team/%d/add_player", session.ID, teamID)
	req := httptest.NewRequest("POST", addURL, strings.NewReader(`{"player_id": "1"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	removeURL := fmt.Sprintf("/roster/%s/team/%d/remove_player", session.ID, teamID)
	req = httptest.NewRequest("POST", removeURL, strings.NewReader(`{"player_id": "1"}`))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	t.Run("removing an unassigned player returns 404", func(t *testing.T) {
		req := httptest.NewRequest("POST", removeURL, strings.NewReader(`{"player_id": "1"}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("missing player_id returns 400", func(t *testing.T) {
		req := httptest.NewRequest("POST", addURL, strings.NewReader(`{}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandleAnalyze(t *testing.T) {
	router, db := setupRouter(t)
	insertPlayer(t, db, "1", "Star Back", "RB", 100)
	session := createSession(t, router, 2)

	addURL := fmt.Sprintf("/roster/%s/team/%d/add_player", session.ID, session.Teams[0].ID)
	req := httptest.NewRequest("POST", addURL, strings.NewReader(`{"player_id": "1"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest("GET", "/roster/"+session.ID+"/analysis", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var analysis roster.SessionAnalysis
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &analysis))
	assert.Equal(t, session.ID, analysis.SessionID)
	require.Len(t, analysis.Teams, 2)
	assert.Equal(t, 100.0, analysis.Teams[0].TotalValue)

	t.Run("unknown session returns 404", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/roster/ghost/analysis", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
