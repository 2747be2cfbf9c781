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
	"github.com/gridironhq/gridiron/internal/modules/trade"
)

func setupRouter(t *testing.T) (*chi.Mux, *sql.DB) {
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(database.Schema)
	require.NoError(t, err)

	repo := trade.NewRepository(db, zerolog.Nop())
	resolver := trade.NewResolver(repo, zerolog.Nop())
	service := trade.NewService(repo, resolver, zerolog.Nop())
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

func TestHandleSearch(t *testing.T) {
	router, db := setupRouter(t)
	insertPlayer(t, db, "1", "Justin Jefferson", "WR", "MIN", 95)

	req := httptest.NewRequest("GET", "/trade/search?q=jeff", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var candidates []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &candidates))
	require.Len(t, candidates, 1)
	assert.Equal(t, "Justin Jefferson", candidates[0]["name"])
}

func TestHandleSearchLimit(t *testing.T) {
	router, db := setupRouter(t)
	for i := 1; i <= 12; i++ {
		insertPlayer(t, db, fmt.Sprintf("%d", i), fmt.Sprintf("Common Name %02d", i), "WR", "MIN", float64(100-i))
	}

	t.Run("requested limit is honored", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/trade/search?q=Common&limit=12", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var candidates []map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &candidates))
		assert.Len(t, candidates, 12)
	})

	t.Run("malformed limit returns 400", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/trade/search?q=Common&limit=abc", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("out-of-range limit returns 400", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/trade/search?q=Common&limit=51", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandleSimulateVerdict(t *testing.T) {
	router, db := setupRouter(t)
	insertPlayer(t, db, "1", "Christian McCaffrey", "RB", "SF", 110)
	insertPlayer(t, db, "2", "Justin Jefferson", "WR", "MIN", 95)

	body := `{"side_a": ["1"], "side_b": ["2"]}`
	req := httptest.NewRequest("POST", "/trade/simulate", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var result map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "A", result["winner"])
	assert.Equal(t, 15.0, result["delta"])
}

func TestHandleSimulateUnresolvedReturns422(t *testing.T) {
	router, db := setupRouter(t)
	insertPlayer(t, db, "1", "Justin Jefferson", "WR", "MIN", 95)
	insertPlayer(t, db, "2", "Justin Fields", "QB", "CHI", 40)

	body := `{"side_a": ["justin"], "side_b": ["1"]}`
	req := httptest.NewRequest("POST", "/trade/simulate", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var payload struct {
		Error      string `json:"error"`
		Unresolved []struct {
			Token      string                   `json:"token"`
			Candidates []map[string]interface{} `json:"candidates"`
		} `json:"unresolved"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Len(t, payload.Unresolved, 1)
	assert.Equal(t, "justin", payload.Unresolved[0].Token)
	assert.Len(t, payload.Unresolved[0].Candidates, 2)
}

func TestHandleSimulateValidationReturns400(t *testing.T) {
	router, db := setupRouter(t)
	insertPlayer(t, db, "1", "Justin Jefferson", "WR", "MIN", 95)

	body := `{"side_a": ["1"], "side_b": ["1"]}`
	req := httptest.NewRequest("POST", "/trade/simulate", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleSimulateBadBody(t *testing.T) {
	router, _ := setupRouter(t)

	req := httptest.NewRequest("POST", "/trade/simulate", strings.NewReader("not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleResolveAmbiguityIs200(t *testing.T) {
	router, db := setupRouter(t)
	insertPlayer(t, db, "1", "Justin Jefferson", "WR", "MIN", 95)
	insertPlayer(t, db, "2", "Justin Fields", "QB", "CHI", 40)

	body := `{"side_a": ["justin"], "side_b": []}`
	req := httptest.NewRequest("POST", "/trade/resolve", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	// Ambiguity is data on this endpoint, not a failure.
	require.Equal(t, http.StatusOK, rec.Code)

	var result map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	sideA := result["side_a"].(map[string]interface{})
	assert.Len(t, sideA["unresolved"], 1)
}
