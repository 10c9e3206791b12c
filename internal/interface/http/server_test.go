package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bolao-nfl/bolao-hub/internal/application/query"
	"github.com/bolao-nfl/bolao-hub/internal/domain/ranking"
	"github.com/bolao-nfl/bolao-hub/internal/domain/shared"
	"github.com/bolao-nfl/bolao-hub/internal/interface/http/handlers"
	"github.com/bolao-nfl/bolao-hub/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// ─────────────────────────────────────────────────────────────────────────────
// FAKES
// ─────────────────────────────────────────────────────────────────────────────

type fakeRankings struct {
	result *ranking.Result
	err    error

	lastQuery query.GetRankingQuery
	evicted   []ranking.WeekKey
	evictErr  error
}

func (f *fakeRankings) Handle(_ context.Context, q query.GetRankingQuery) (*ranking.Result, error) {
	f.lastQuery = q
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return f.result, f.err
}

func (f *fakeRankings) EvictWeek(_ context.Context, season, week int) error {
	if f.evictErr != nil {
		return f.evictErr
	}
	f.evicted = append(f.evicted, ranking.WeekKey{Season: season, Week: week})
	return nil
}

const adminKey = "let-me-in"

func newTestServer(t *testing.T, svc *fakeRankings) *Server {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(adminKey), bcrypt.MinCost)
	require.NoError(t, err)

	cfg := DefaultConfig()
	cfg.AdminAPIKeyHashes = []string{string(hash)}

	return NewServer(cfg, Dependencies{
		Rankings:      svc,
		DefaultSeason: 10,
		SeasonStart:   1725580800,
		SeasonStarts:  map[int]int64{9: 1694044800},
		Logger:        logger.Discard(),
	})
}

func do(s *Server, method, path string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) JSONResponse {
	t.Helper()
	var body JSONResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

// ─────────────────────────────────────────────────────────────────────────────
// RANKING ROUTES
// ─────────────────────────────────────────────────────────────────────────────

func TestServer_CurrentSeasonRanking(t *testing.T) {
	svc := &fakeRankings{result: &ranking.Result{
		SeasonRanking: []ranking.Line{{User: ranking.UserSummary{ID: 1, Name: "ana", Position: 1}}},
		WeeklyRanking: []ranking.WeeklyRanking{},
	}}
	s := newTestServer(t, svc)

	rec := do(s, http.MethodGet, "/api/v1/ranking/season", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	assert.Equal(t, query.GetRankingQuery{Season: 10, SeasonStart: 1725580800}, svc.lastQuery)

	body := decode(t, rec)
	assert.True(t, body.Success)
	assert.Equal(t, 10, body.Meta.Season)
	assert.Contains(t, rec.Body.String(), `"seasonRanking"`)
	assert.Contains(t, rec.Body.String(), `"name":"ana"`)
}

func TestServer_SeasonRankingByPath(t *testing.T) {
	svc := &fakeRankings{result: &ranking.Result{}}
	s := newTestServer(t, svc)

	rec := do(s, http.MethodGet, "/api/v1/ranking/season/9", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(1694044800), svc.lastQuery.SeasonStart)

	rec = do(s, http.MethodGet, "/api/v1/ranking/season/8?seasonStart=1662000000", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, query.GetRankingQuery{Season: 8, SeasonStart: 1662000000}, svc.lastQuery)
}

func TestServer_SeasonRankingBadInput(t *testing.T) {
	s := newTestServer(t, &fakeRankings{result: &ranking.Result{}})

	tests := []struct {
		name string
		path string
		code string
	}{
		{"non numeric season", "/api/v1/ranking/season/abc", "invalid_season"},
		{"zero season", "/api/v1/ranking/season/0", "invalid_season"},
		{"bad season start", "/api/v1/ranking/season/9?seasonStart=soon", "invalid_season_start"},
		{"unknown season start", "/api/v1/ranking/season/7", "missing_required_field"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(s, http.MethodGet, tt.path, nil)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			body := decode(t, rec)
			assert.False(t, body.Success)
			assert.Equal(t, tt.code, body.Error.Code)
		})
	}
}

func TestServer_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"data unavailable", shared.DataUnavailable("GetRanking", "users", errors.New("conn refused")), http.StatusServiceUnavailable, "data_unavailable"},
		{"team not found", shared.TeamNotFound("GetRanking", 100, 99), http.StatusInternalServerError, "team_not_found"},
		{"deadline", context.DeadlineExceeded, http.StatusGatewayTimeout, "timeout"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal_server_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, &fakeRankings{err: tt.err})
			rec := do(s, http.MethodGet, "/api/v1/ranking/season", nil)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.code, decode(t, rec).Error.Code)
		})
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// ADMIN ROUTES
// ─────────────────────────────────────────────────────────────────────────────

func TestServer_EvictWeek(t *testing.T) {
	svc := &fakeRankings{}
	s := newTestServer(t, svc)
	path := "/api/v1/ranking/season/10/weeks/3"

	rec := do(s, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(s, http.MethodDelete, path, http.Header{"X-Api-Key": {"wrong"}})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, svc.evicted)

	rec = do(s, http.MethodDelete, path, http.Header{"X-Api-Key": {adminKey}})
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(s, http.MethodDelete, path, http.Header{"Authorization": {"Bearer " + adminKey}})
	assert.Equal(t, http.StatusNoContent, rec.Code)

	assert.Equal(t, []ranking.WeekKey{{Season: 10, Week: 3}, {Season: 10, Week: 3}}, svc.evicted)
}

func TestServer_EvictWeekErrors(t *testing.T) {
	svc := &fakeRankings{evictErr: shared.NewDomainError("ranking", "EvictWeek", shared.ErrInvalidInput, "week must not be negative")}
	s := newTestServer(t, svc)
	auth := http.Header{"X-Api-Key": {adminKey}}

	rec := do(s, http.MethodDelete, "/api/v1/ranking/season/10/weeks/x", auth)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(s, http.MethodDelete, "/api/v1/ranking/season/10/weeks/-1", auth)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_request", decode(t, rec).Error.Code)
}

func TestServer_EvictWeekWithoutConfiguredKeys(t *testing.T) {
	s := NewServer(DefaultConfig(), Dependencies{Rankings: &fakeRankings{}, Logger: logger.Discard()})

	rec := do(s, http.MethodDelete, "/api/v1/ranking/season/10/weeks/3", http.Header{"X-Api-Key": {adminKey}})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// ─────────────────────────────────────────────────────────────────────────────
// PROBES & MIDDLEWARE
// ─────────────────────────────────────────────────────────────────────────────

func TestServer_HealthProbes(t *testing.T) {
	checker := handlers.NewCompositeHealthChecker("test")
	checker.AddCheck("postgres", func(context.Context) error { return nil })

	s := NewServer(DefaultConfig(), Dependencies{Logger: logger.Discard(), HealthChecker: checker})

	assert.Equal(t, http.StatusOK, do(s, http.MethodGet, "/health", nil).Code)
	assert.Equal(t, http.StatusOK, do(s, http.MethodGet, "/ready", nil).Code)
	assert.Equal(t, http.StatusOK, do(s, http.MethodGet, "/live", nil).Code)

	checker.AddCheck("redis", func(context.Context) error { return errors.New("connection refused") })

	rec := do(s, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "connection refused")
	assert.Equal(t, http.StatusServiceUnavailable, do(s, http.MethodGet, "/ready", nil).Code)
	assert.Equal(t, http.StatusOK, do(s, http.MethodGet, "/live", nil).Code)
}

func TestServer_RequestIDPropagation(t *testing.T) {
	s := newTestServer(t, &fakeRankings{result: &ranking.Result{}})

	rec := do(s, http.MethodGet, "/api/v1/ranking/season", http.Header{"X-Request-Id": {"req-42"}})
	assert.Equal(t, "req-42", rec.Header().Get("X-Request-ID"))
	assert.Equal(t, "req-42", decode(t, rec).Meta.RequestID)
}

func TestServer_NotServingUnknownRoutes(t *testing.T) {
	s := newTestServer(t, &fakeRankings{})

	assert.Equal(t, http.StatusNotFound, do(s, http.MethodGet, "/api/v1/leaderboard", nil).Code)
	assert.Equal(t, http.StatusMethodNotAllowed, do(s, http.MethodPost, "/api/v1/ranking/season", nil).Code)
}

func TestServer_CORSPreflight(t *testing.T) {
	s := newTestServer(t, &fakeRankings{})

	rec := do(s, http.MethodOptions, "/api/v1/ranking/season", http.Header{"Origin": {"https://pool.example"}})
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://pool.example", rec.Header().Get("Access-Control-Allow-Origin"))
}
