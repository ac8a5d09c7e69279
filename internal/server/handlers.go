// Package server exposes the briefing and preferences over a small REST API.
package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/ohayoapp/ohayo/internal/clients/geolocate"
	"github.com/ohayoapp/ohayo/internal/common"
	"github.com/ohayoapp/ohayo/internal/interfaces"
	"github.com/ohayoapp/ohayo/internal/models"
)

// Server handles REST requests for the briefing consumer.
type Server struct {
	briefing    interfaces.BriefingService
	preferences interfaces.PreferenceService
	logger      *common.Logger
	startupTime time.Time
}

// NewServer creates a new REST server.
func NewServer(briefingService interfaces.BriefingService, preferenceService interfaces.PreferenceService, logger *common.Logger, startupTime time.Time) *Server {
	return &Server{
		briefing:    briefingService,
		preferences: preferenceService,
		logger:      logger,
		startupTime: startupTime,
	}
}

// Handler returns the HTTP handler with routing and middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/briefing", s.handleBriefing)
	mux.HandleFunc("/api/preferences", s.handlePreferences)
	mux.HandleFunc("/api/health", s.handleHealth)
	return applyMiddleware(mux, s.logger)
}

// handleBriefing handles GET /api/briefing — today's DailyRecord, from cache
// or refreshed. ?refresh=true forces the full aggregation path.
func (s *Server) handleBriefing(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	forceRefresh := r.URL.Query().Get("refresh") == "true"

	record, err := s.briefing.LoadBriefing(r.Context(), forceRefresh)
	if err != nil {
		if errors.Is(err, geolocate.ErrLocationUnavailable) {
			WriteErrorWithCode(w, http.StatusServiceUnavailable, "Location permission is needed for the daily brief", "location_unavailable")
			return
		}
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, record)
}

// handlePreferences handles GET and PUT /api/preferences.
func (s *Server) handlePreferences(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodPut) {
		return
	}

	ctx := r.Context()

	if r.Method == http.MethodGet {
		prefs, err := s.preferences.GetPreferences(ctx)
		if err != nil {
			WriteError(w, http.StatusInternalServerError, err.Error())
			return
		}
		WriteJSON(w, http.StatusOK, prefs)
		return
	}

	var req models.UserPreferences
	if !DecodeJSON(w, r, &req) {
		return
	}
	if req.UserName == "" {
		WriteError(w, http.StatusBadRequest, "userName is required")
		return
	}

	if err := s.preferences.SavePreferences(ctx, &req); err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, &req)
}

// handleHealth handles GET /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"version": common.GetVersion(),
		"uptime":  time.Since(s.startupTime).String(),
	})
}
