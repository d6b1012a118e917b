// Package httpapi serves a read-only JSON view of ships and counters.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/Chiitoi/Aurora/internal/core/action"
	coreship "github.com/Chiitoi/Aurora/internal/core/ship"
	"github.com/Chiitoi/Aurora/internal/models"
	"github.com/Chiitoi/Aurora/internal/ports/primary"
	"github.com/Chiitoi/Aurora/internal/version"
)

// CountsResponse is the JSON form of pair counts.
type CountsResponse struct {
	Cuddle   uint16 `json:"cuddle"`
	Handhold uint16 `json:"handhold"`
	Hug      uint16 `json:"hug"`
	Kiss     uint16 `json:"kiss"`
}

// ShipResponse is the JSON form of a ship view. IDs are strings because
// snowflakes do not fit in a JSON number.
type ShipResponse struct {
	GuildID   string         `json:"guild_id"`
	MemberOne string         `json:"member_one"`
	MemberTwo string         `json:"member_two"`
	Name      string         `json:"name"`
	CreatedAt time.Time      `json:"created_at"`
	AgeMs     uint64         `json:"age_ms"`
	Age       string         `json:"age"`
	Counts    CountsResponse `json:"counts"`
}

// KillsResponse is the JSON form of a kill rivalry.
type KillsResponse struct {
	AToB uint16 `json:"a_to_b"`
	BToA uint16 `json:"b_to_a"`
}

// ShipCountResponse is the JSON form of a guild's ship total.
type ShipCountResponse struct {
	GuildID string `json:"guild_id"`
	Ships   int    `json:"ships"`
}

// HealthResponse reports liveness and the running build.
type HealthResponse struct {
	Status string       `json:"status"`
	Build  version.Info `json:"build"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Handler serves the stats API.
type Handler struct {
	ships  primary.ShipService
	ledger primary.LedgerService
	logger *zap.Logger
}

// NewHandler builds the routed, CORS-wrapped API handler.
func NewHandler(ships primary.ShipService, ledger primary.LedgerService, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &Handler{ships: ships, ledger: ledger, logger: logger}

	r := mux.NewRouter()
	r.HandleFunc("/health", h.health).Methods(http.MethodGet)

	api := r.PathPrefix("/api/guilds/{guildID}").Subrouter()
	api.HandleFunc("/ships", h.countShips).Methods(http.MethodGet)
	api.HandleFunc("/ships/{userID}", h.getShip).Methods(http.MethodGet)
	api.HandleFunc("/counts/{userA}/{userB}", h.getCounts).Methods(http.MethodGet)
	api.HandleFunc("/kills/{userA}/{userB}", h.getKills).Methods(http.MethodGet)

	return cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(r)
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "healthy", Build: version.Get()})
}

func (h *Handler) countShips(w http.ResponseWriter, r *http.Request) {
	guildID, err := models.ParseGuildID(mux.Vars(r)["guildID"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	n, err := h.ships.CountShips(r.Context(), guildID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ShipCountResponse{GuildID: guildID.String(), Ships: n})
}

func (h *Handler) getShip(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	guildID, err := models.ParseGuildID(vars["guildID"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	userID, err := models.ParseUserID(vars["userID"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	view, err := h.ships.Show(r.Context(), guildID, userID)
	if errors.Is(err, primary.ErrNotPaired) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not shipped"})
		return
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ShipResponse{
		GuildID:   view.Ship.GuildID.String(),
		MemberOne: view.Ship.MemberOne.String(),
		MemberTwo: view.Ship.MemberTwo.String(),
		Name:      view.Ship.Name,
		CreatedAt: view.Ship.CreatedAt.UTC(),
		AgeMs:     view.AgeMilliseconds,
		Age:       coreship.Humanize(view.AgeMilliseconds),
		Counts:    toCountsResponse(view.Counts),
	})
}

func (h *Handler) getCounts(w http.ResponseWriter, r *http.Request) {
	guildID, a, b, ok := parsePair(w, r)
	if !ok {
		return
	}

	counts, err := h.ledger.PairCounts(r.Context(), guildID, a, b)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toCountsResponse(*counts))
}

func (h *Handler) getKills(w http.ResponseWriter, r *http.Request) {
	guildID, a, b, ok := parsePair(w, r)
	if !ok {
		return
	}

	aToB, bToA, err := h.ledger.DirectionalSums(r.Context(), guildID, a, b, action.KindKill)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, KillsResponse{AToB: aToB, BToA: bToA})
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error("stats request failed", zap.String("path", r.URL.Path), zap.Error(err))
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
}

func parsePair(w http.ResponseWriter, r *http.Request) (models.GuildID, models.UserID, models.UserID, bool) {
	vars := mux.Vars(r)
	guildID, err := models.ParseGuildID(vars["guildID"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return 0, 0, 0, false
	}
	a, err := models.ParseUserID(vars["userA"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return 0, 0, 0, false
	}
	b, err := models.ParseUserID(vars["userB"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return 0, 0, 0, false
	}
	return guildID, a, b, true
}

func toCountsResponse(c action.PairCounts) CountsResponse {
	return CountsResponse{Cuddle: c.Cuddle, Handhold: c.Handhold, Hug: c.Hug, Kiss: c.Kiss}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// Server runs the API until its context is canceled.
type Server struct {
	srv    *http.Server
	logger *zap.Logger
}

// NewServer creates a server for handler on addr.
func NewServer(addr string, handler http.Handler, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logger,
	}
}

// Run listens until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is canceled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("stats api listening", zap.String("addr", ln.Addr().String()))
		errCh <- s.srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		<-errCh
		return nil
	}
}
