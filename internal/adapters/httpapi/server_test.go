package httpapi_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chiitoi/Aurora/internal/adapters/httpapi"
	"github.com/Chiitoi/Aurora/internal/adapters/memory"
	"github.com/Chiitoi/Aurora/internal/adapters/sqlite"
	"github.com/Chiitoi/Aurora/internal/app"
	"github.com/Chiitoi/Aurora/internal/db"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()

	conn, err := db.Open(":memory:", nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, db.SeedFixtures(conn))

	ledger := app.NewLedgerService(sqlite.NewActionRepository(conn), nil)
	ships := app.NewShipService(sqlite.NewShipRepository(conn), memory.NewProposalBook(), ledger, 15*time.Minute, nil)
	return httpapi.NewHandler(ships, ledger, nil)
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := get(t, newTestHandler(t), "/health")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body httpapi.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body.Status)
	assert.NotEmpty(t, body.Build.Commit)
	assert.NotEmpty(t, body.Build.BuildTime)
}

func TestCountShips(t *testing.T) {
	h := newTestHandler(t)

	rec := get(t, h, fmt.Sprintf("/api/guilds/%d/ships", db.FixtureGuild))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body httpapi.ShipCountResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, httpapi.ShipCountResponse{GuildID: fmt.Sprint(db.FixtureGuild), Ships: 1}, body)

	rec = get(t, h, "/api/guilds/42/ships")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ships":0`)
}

func TestGetShip(t *testing.T) {
	h := newTestHandler(t)

	rec := get(t, h, fmt.Sprintf("/api/guilds/%d/ships/%d", db.FixtureGuild, db.FixtureBob))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body httpapi.ShipResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, fmt.Sprint(db.FixtureAlice), body.MemberOne)
	assert.Equal(t, fmt.Sprint(db.FixtureBob), body.MemberTwo)
	assert.Equal(t, "Bluenose", body.Name)
	assert.True(t, strings.HasPrefix(body.Age, "1d 2h"), "age %q", body.Age)
	assert.Equal(t, httpapi.CountsResponse{Cuddle: 4, Hug: 5, Kiss: 1}, body.Counts)
}

func TestGetShip_NotShipped(t *testing.T) {
	rec := get(t, newTestHandler(t), fmt.Sprintf("/api/guilds/%d/ships/%d", db.FixtureGuild, db.FixtureCarol))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetShip_BadID(t *testing.T) {
	rec := get(t, newTestHandler(t), "/api/guilds/abc/ships/1")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid guild id")
}

func TestGetCounts(t *testing.T) {
	rec := get(t, newTestHandler(t), fmt.Sprintf("/api/guilds/%d/counts/%d/%d", db.FixtureGuild, db.FixtureCarol, db.FixtureDaniel))
	require.Equal(t, http.StatusOK, rec.Code)

	var body httpapi.CountsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	// Pokes are not pair counts
	assert.Equal(t, httpapi.CountsResponse{}, body)
}

func TestGetKills(t *testing.T) {
	rec := get(t, newTestHandler(t), fmt.Sprintf("/api/guilds/%d/kills/%d/%d", db.FixtureGuild, db.FixtureAlice, db.FixtureBob))
	require.Equal(t, http.StatusOK, rec.Code)

	var body httpapi.KillsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, httpapi.KillsResponse{AToB: 2, BToA: 5}, body)
}

func TestMethodNotAllowed(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/health", nil)
	rec := httptest.NewRecorder()
	newTestHandler(t).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestCORS(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://example.com")
	rec := httptest.NewRecorder()
	newTestHandler(t).ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestServer_ShutsDownOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := httpapi.NewServer(ln.Addr().String(), newTestHandler(t), nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
