package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/bolao-nfl/bolao-hub/internal/application/query"
	"github.com/bolao-nfl/bolao-hub/internal/domain/shared"
	"github.com/bolao-nfl/bolao-hub/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// HEALTH & STATUS HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

// handleRoot serves the root endpoint with basic API information.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"name":    "bolao-hub",
		"version": s.config.Version,
		"endpoints": map[string]string{
			"health":        "/health",
			"ranking":       "/api/v1/ranking/season",
			"seasonRanking": "/api/v1/ranking/season/{season}",
		},
	})
}

// handleHealth reports every registered check.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.deps.HealthChecker == nil {
		writeJSON(w, http.StatusOK, map[string]any{
			"healthy": true,
			"uptime":  s.Uptime().Round(time.Second).String(),
		})
		return
	}

	status := s.deps.HealthChecker.Check(r.Context())
	code := http.StatusOK
	if !status.Healthy {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, status)
}

// handleReady handles the readiness probe.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.deps.HealthChecker != nil {
		if status := s.deps.HealthChecker.Check(r.Context()); !status.Ready {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not_ready",
				"reason": status.Message,
			})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// handleLive handles the liveness probe.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

// ══════════════════════════════════════════════════════════════════════════════
// RANKING HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

// handleGetCurrentRanking serves the configured season.
func (s *Server) handleGetCurrentRanking(w http.ResponseWriter, r *http.Request) {
	q := query.GetRankingQuery{
		Season:      s.deps.DefaultSeason,
		SeasonStart: s.deps.SeasonStart,
	}
	s.serveRanking(w, r, q)
}

// handleGetSeasonRanking serves any season. The kickoff comes from the
// ?seasonStart= parameter, else from the configured seasons.
func (s *Server) handleGetSeasonRanking(w http.ResponseWriter, r *http.Request) {
	season, err := strconv.Atoi(r.PathValue("season"))
	if err != nil || season <= 0 {
		writeJSONError(w, r, http.StatusBadRequest, "invalid_season", "season must be a positive integer")
		return
	}

	q := query.GetRankingQuery{Season: season, SeasonStart: s.seasonStart(season)}
	if raw := r.URL.Query().Get("seasonStart"); raw != "" {
		start, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeJSONError(w, r, http.StatusBadRequest, "invalid_season_start", "seasonStart must be epoch seconds")
			return
		}
		q.SeasonStart = start
	}

	s.serveRanking(w, r, q)
}

func (s *Server) seasonStart(season int) int64 {
	if season == s.deps.DefaultSeason {
		return s.deps.SeasonStart
	}
	return s.deps.SeasonStarts[season]
}

func (s *Server) serveRanking(w http.ResponseWriter, r *http.Request, q query.GetRankingQuery) {
	if s.deps.Rankings == nil {
		writeJSONError(w, r, http.StatusServiceUnavailable, "service_unavailable", "ranking service is not configured")
		return
	}

	start := time.Now()
	result, err := s.deps.Rankings.Handle(r.Context(), q)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	writeJSONData(w, r, http.StatusOK, result, &ResponseMeta{
		Season: q.Season,
		Took:   time.Since(start).Round(time.Millisecond).String(),
	})
}

// handleEvictWeek unlocks a cached week so the next request recomputes it.
func (s *Server) handleEvictWeek(w http.ResponseWriter, r *http.Request) {
	season, err := strconv.Atoi(r.PathValue("season"))
	if err != nil {
		writeJSONError(w, r, http.StatusBadRequest, "invalid_season", "season must be an integer")
		return
	}
	week, err := strconv.Atoi(r.PathValue("week"))
	if err != nil {
		writeJSONError(w, r, http.StatusBadRequest, "invalid_week", "week must be an integer")
		return
	}
	if s.deps.Rankings == nil {
		writeJSONError(w, r, http.StatusServiceUnavailable, "service_unavailable", "ranking service is not configured")
		return
	}

	if err := s.deps.Rankings.EvictWeek(r.Context(), season, week); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ══════════════════════════════════════════════════════════════════════════════
// ERROR MAPPING
// ══════════════════════════════════════════════════════════════════════════════

// statusFor maps domain errors to HTTP status codes and API error codes.
func statusFor(err error) (int, string) {
	switch {
	case shared.IsMissingRequiredField(err):
		return http.StatusBadRequest, "missing_required_field"
	case shared.IsValidation(err):
		return http.StatusBadRequest, "invalid_request"
	case shared.IsTeamNotFound(err):
		// Broken reference data, not a missing resource.
		return http.StatusInternalServerError, "team_not_found"
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, shared.ErrTimeout):
		return http.StatusGatewayTimeout, "timeout"
	case shared.IsDataUnavailable(err), shared.IsRetryable(err):
		return http.StatusServiceUnavailable, "data_unavailable"
	case shared.IsNotFound(err):
		return http.StatusNotFound, "not_found"
	default:
		return http.StatusInternalServerError, "internal_server_error"
	}
}

func (s *Server) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := statusFor(err)
	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error("request failed", logger.Err(err), logger.String("code", code))
	} else {
		log.Debug("request rejected", logger.Err(err), logger.String("code", code))
	}
	writeJSONError(w, r, status, code, err.Error())
}
