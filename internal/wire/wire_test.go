package wire

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chiitoi/Aurora/internal/config"
	"github.com/Chiitoi/Aurora/internal/db"
	"github.com/Chiitoi/Aurora/internal/models"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		DatabasePath: filepath.Join(t.TempDir(), "aurora.db"),
		HTTPAddr:     "127.0.0.1:0",
		ProposalTTL:  time.Minute,
		GIFAPIURL:    "https://gifs.test/gif",
		LogLevel:     "info",
		LogFormat:    config.LogFormatJSON,
	}
}

func TestNew(t *testing.T) {
	a, err := New(testConfig(t), nil)
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })

	assert.NotNil(t, a.Ledger)
	assert.NotNil(t, a.Kills)
	assert.NotNil(t, a.Ships)
	assert.NotNil(t, a.Bios)
	assert.NotNil(t, a.GIFs)
	assert.NotNil(t, a.Router())

	version, err := db.CurrentVersion(a.DB)
	require.NoError(t, err)
	assert.Equal(t, db.LatestVersion(), version)
}

func TestNew_BadGIFURL(t *testing.T) {
	cfg := testConfig(t)
	cfg.GIFAPIURL = "not a url"

	_, err := New(cfg, nil)
	assert.Error(t, err)
}

func TestApp_SeededStats(t *testing.T) {
	a, err := New(testConfig(t), nil)
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	require.NoError(t, db.SeedFixtures(a.DB))

	out := &bytes.Buffer{}
	view, err := a.StatsAdapterWithOutput(out).ShowShip(context.Background(), models.GuildID(db.FixtureGuild), models.UserID(db.FixtureAlice))
	require.NoError(t, err)
	require.NotNil(t, view)
	assert.Equal(t, uint16(5), view.Counts.Hug)
	assert.Contains(t, out.String(), "Bluenose")

	rec := httptest.NewRecorder()
	a.HTTPHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
