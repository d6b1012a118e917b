// Package wire assembles the Aurora application from its configuration.
package wire

import (
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"os"

	"go.uber.org/zap"

	cliadapter "github.com/Chiitoi/Aurora/internal/adapters/cli"
	"github.com/Chiitoi/Aurora/internal/adapters/discord"
	"github.com/Chiitoi/Aurora/internal/adapters/gif"
	"github.com/Chiitoi/Aurora/internal/adapters/httpapi"
	"github.com/Chiitoi/Aurora/internal/adapters/memory"
	"github.com/Chiitoi/Aurora/internal/adapters/sqlite"
	"github.com/Chiitoi/Aurora/internal/app"
	"github.com/Chiitoi/Aurora/internal/config"
	"github.com/Chiitoi/Aurora/internal/db"
	"github.com/Chiitoi/Aurora/internal/ports/primary"
	"github.com/Chiitoi/Aurora/internal/ports/secondary"
)

// App holds the services and the resources they share.
type App struct {
	Config *config.Config
	Logger *zap.Logger
	DB     *sql.DB

	Ledger    primary.LedgerService
	Kills     primary.KillService
	Ships     primary.ShipService
	Bios      primary.BioService
	Proposals *memory.ProposalBook
	GIFs      secondary.GIFProvider
}

// New opens the database and builds every service. Close releases it.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	database, err := db.Open(cfg.DatabasePath, logger)
	if err != nil {
		return nil, err
	}

	gifs, err := gif.NewClient(cfg.GIFAPIURL)
	if err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("failed to create gif client: %w", err)
	}

	// Create repository adapters (secondary ports)
	actionRepo := sqlite.NewActionRepository(database)
	shipRepo := sqlite.NewShipRepository(database)
	memberRepo := sqlite.NewMemberRepository(database)
	proposals := memory.NewProposalBook()

	// Create services (primary ports implementation)
	ledger := app.NewLedgerService(actionRepo, logger.Named("ledger"))

	return &App{
		Config:    cfg,
		Logger:    logger,
		DB:        database,
		Ledger:    ledger,
		Kills:     app.NewKillService(ledger),
		Ships:     app.NewShipService(shipRepo, proposals, ledger, cfg.ProposalTTL, logger.Named("ship")),
		Bios:      app.NewBioService(memberRepo),
		Proposals: proposals,
		GIFs:      gifs,
	}, nil
}

// Close closes the database.
func (a *App) Close() error {
	return a.DB.Close()
}

// Router returns the interaction router over the app's services.
func (a *App) Router() *discord.Router {
	return discord.NewRouter(discord.Services{
		Ledger: a.Ledger,
		Kill:   a.Kills,
		Ship:   a.Ships,
		Bio:    a.Bios,
		GIFs:   a.GIFs,
	}, a.Logger.Named("discord"))
}

// HTTPHandler returns the stats API handler.
func (a *App) HTTPHandler() http.Handler {
	return httpapi.NewHandler(a.Ships, a.Ledger, a.Logger.Named("http"))
}

// StatsAdapter returns a new StatsAdapter writing to stdout.
func (a *App) StatsAdapter() *cliadapter.StatsAdapter {
	return a.StatsAdapterWithOutput(os.Stdout)
}

// StatsAdapterWithOutput returns a new StatsAdapter writing to the given output.
func (a *App) StatsAdapterWithOutput(out io.Writer) *cliadapter.StatsAdapter {
	return cliadapter.NewStatsAdapter(a.Ships, a.Ledger, out)
}
