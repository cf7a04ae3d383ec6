// Package server exposes the inventory and the price-guide proxy over
// HTTP. The proxy endpoint re-exposes the PriceCharting download under
// the same origin so a browser frontend needs no CORS workarounds.
package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"gamestash/pkg/config"
	"gamestash/pkg/inventory"
	"gamestash/pkg/models"
	"gamestash/pkg/pricecharting"
	"gamestash/pkg/service"
)

// Server handles HTTP requests for the inventory tracker.
type Server struct {
	config  *config.Config
	logger  *log.Logger
	mux     *http.ServeMux
	store   *inventory.Store
	updater *service.Updater
	catalog *pricecharting.Client

	// storeMu serializes store access; the store itself is not safe for
	// concurrent use.
	storeMu sync.Mutex
	// updating guards against overlapping refresh runs.
	updating atomic.Bool
}

// New creates a new HTTP server.
func New(cfg *config.Config, logger *log.Logger, store *inventory.Store, updater *service.Updater, catalog *pricecharting.Client) *Server {
	s := &Server{
		config:  cfg,
		logger:  logger,
		mux:     http.NewServeMux(),
		store:   store,
		updater: updater,
		catalog: catalog,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("GET /api/health", s.handleHealth)
	s.mux.HandleFunc("GET /api/pricecharting/{console}", s.handleProxy)
	s.mux.HandleFunc("GET /api/games", s.handleListGames)
	s.mux.HandleFunc("POST /api/games", s.handleAddGame)
	s.mux.HandleFunc("PUT /api/games/{id}", s.handleEditGame)
	s.mux.HandleFunc("DELETE /api/games/{id}", s.handleDeleteGame)
	s.mux.HandleFunc("GET /api/overrides", s.handleListOverrides)
	s.mux.HandleFunc("POST /api/overrides", s.handleAddOverride)
	s.mux.HandleFunc("DELETE /api/overrides", s.handleClearOverrides)
	s.mux.HandleFunc("POST /api/update-prices", s.handleUpdatePrices)
}

// Start starts the HTTP server.
func (s *Server) Start(addr string) error {
	s.logger.Info("listening", "addr", addr)
	return http.ListenAndServe(addr, s.mux)
}

// Handler returns the underlying mux, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to write response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	token := "missing"
	if s.config.APIToken != "" {
		token = "present"
	}
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":   "ok",
		"apiToken": token,
		"baseUrl":  s.config.BaseURL,
	})
}

// handleProxy forwards a catalog download, serving the provider's raw CSV
// under our own origin.
func (s *Server) handleProxy(w http.ResponseWriter, r *http.Request) {
	consoleID := r.PathValue("console")
	s.logger.Info("proxying catalog fetch", "console", consoleID)

	text, err := s.catalog.FetchCatalog(r.Context(), consoleID)
	if err != nil {
		s.logger.Error("catalog fetch failed", "console", consoleID, "error", err)
		s.writeError(w, http.StatusBadGateway, fmt.Sprintf("price guide fetch failed: %v", err))
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(text))
}

func (s *Server) handleListGames(w http.ResponseWriter, _ *http.Request) {
	s.storeMu.Lock()
	games := s.store.List()
	total := s.store.TotalValue()
	items := s.store.TotalItems()
	s.storeMu.Unlock()

	s.writeJSON(w, http.StatusOK, map[string]any{
		"games":      games,
		"totalValue": total,
		"totalItems": items,
	})
}

func (s *Server) handleAddGame(w http.ResponseWriter, r *http.Request) {
	var game models.Game
	if err := json.NewDecoder(r.Body).Decode(&game); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.storeMu.Lock()
	added, err := s.store.Add(game)
	s.storeMu.Unlock()
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.writeJSON(w, http.StatusCreated, added)
}

func (s *Server) handleEditGame(w http.ResponseWriter, r *http.Request) {
	var game models.Game
	if err := json.NewDecoder(r.Body).Decode(&game); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	game.ID = r.PathValue("id")

	s.storeMu.Lock()
	err := s.store.Edit(game)
	s.storeMu.Unlock()
	if err != nil {
		s.writeError(w, http.StatusNotFound, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, game)
}

func (s *Server) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	s.storeMu.Lock()
	err := s.store.Delete(r.PathValue("id"))
	s.storeMu.Unlock()
	if err != nil {
		s.writeError(w, http.StatusNotFound, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListOverrides(w http.ResponseWriter, _ *http.Request) {
	s.storeMu.Lock()
	titles := s.store.FixedTitles()
	s.storeMu.Unlock()
	s.writeJSON(w, http.StatusOK, map[string][]string{"titles": titles})
}

func (s *Server) handleAddOverride(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Title == "" {
		s.writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	s.storeMu.Lock()
	s.store.MarkFixed(payload.Title)
	s.storeMu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleClearOverrides(w http.ResponseWriter, _ *http.Request) {
	s.storeMu.Lock()
	s.store.ClearFixed()
	s.storeMu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

// handleUpdatePrices runs one refresh. Only one run may be in flight at a
// time; a second request gets 409 instead of queueing.
func (s *Server) handleUpdatePrices(w http.ResponseWriter, r *http.Request) {
	if !s.updating.CompareAndSwap(false, true) {
		s.writeError(w, http.StatusConflict, "a price update is already running")
		return
	}
	defer s.updating.Store(false)

	s.storeMu.Lock()
	summary := s.updater.UpdatePrices(r.Context())
	s.storeMu.Unlock()

	s.writeJSON(w, http.StatusOK, summary)
}
