// Package query contains read operations following CQRS pattern.
// Queries never modify state - they only read and return data.
// Each query is a self-contained use case with its own request/response types.
package query

import (
	"context"
	"time"

	"github.com/bolao-nfl/bolao-hub/internal/domain/pool"
	"github.com/bolao-nfl/bolao-hub/internal/domain/ranking"
	"github.com/bolao-nfl/bolao-hub/internal/domain/shared"
	"github.com/bolao-nfl/bolao-hub/pkg/logger"
	"golang.org/x/sync/errgroup"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET RANKING QUERY
// Builds the season leaderboard and the week-by-week rankings of a season.
// Users and matches are mandatory; extra bets degrade to no contribution.
// ══════════════════════════════════════════════════════════════════════════════

// GetRankingQuery contains the parameters of a ranking request.
type GetRankingQuery struct {
	// Season - season number (required, > 0).
	Season int

	// SeasonStart - epoch seconds of the season kickoff (required, > 0).
	SeasonStart int64
}

// Validate checks the query parameters.
func (q GetRankingQuery) Validate() error {
	if q.Season <= 0 {
		return shared.MissingRequiredField("GetRanking", "season")
	}
	if q.SeasonStart <= 0 {
		return shared.MissingRequiredField("GetRanking", "seasonStart")
	}
	return nil
}

// GetRankingHandler is the ranking orchestrator.
type GetRankingHandler struct {
	provider pool.DataProvider
	teams    pool.TeamCatalog
	cache    ranking.WeeklyCache
	weekly   *ranking.WeeklyBuilder
	season   *ranking.SeasonBuilder
	log      *logger.Logger
}

// NewGetRankingHandler creates the handler. cache may be nil, in which case
// no week is ever locked.
func NewGetRankingHandler(
	provider pool.DataProvider,
	teams pool.TeamCatalog,
	cache ranking.WeeklyCache,
	log *logger.Logger,
) *GetRankingHandler {
	if log == nil {
		log = logger.Default()
	}
	return &GetRankingHandler{
		provider: provider,
		teams:    teams,
		cache:    cache,
		weekly:   ranking.NewWeeklyBuilder(cache, log),
		season:   ranking.NewSeasonBuilder(),
		log:      log.With(logger.Component("get_ranking")),
	}
}

// WithClock makes both builders evaluate online status at now().
func (h *GetRankingHandler) WithClock(now ranking.Clock) *GetRankingHandler {
	c := *h
	c.weekly = h.weekly.WithClock(now)
	c.season = h.season.WithClock(now)
	return &c
}

// seasonData is everything fetched up front for one request.
type seasonData struct {
	users        []pool.User
	matches      []pool.Match
	teams        []pool.Team
	extrasByUser map[int]pool.ExtraPicks
	result       *pool.ExtraPicks
}

// Handle computes the season and weekly rankings.
func (h *GetRankingHandler) Handle(ctx context.Context, q GetRankingQuery) (*ranking.Result, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	log := h.log.With(logger.Season(q.Season))

	data, err := h.fetchRequiredData(ctx, q, log)
	if err != nil {
		return nil, err
	}

	matches, err := mergeTeams(data.matches, data.teams)
	if err != nil {
		return nil, err
	}

	book, err := h.loadStartedBets(ctx, matches)
	if err != nil {
		return nil, err
	}

	weeks := ranking.PartitionByWeek(matches)
	result := &ranking.Result{
		WeeklyRanking: h.weekly.Build(ctx, q.Season, weeks, data.users, book),
		SeasonRanking: h.season.Build(q.Season, data.users, matches, book, data.extrasByUser, data.result),
	}

	log.Debug("ranking computed",
		logger.Int("users", len(data.users)),
		logger.Int("matches", len(matches)),
		logger.Int("weeks", len(weeks)),
		logger.Int("bets", book.Len()),
		logger.Latency(time.Since(start)),
	)

	return result, nil
}

// fetchRequiredData runs the independent fetches concurrently. Every branch
// runs to completion; the first mandatory failure is returned.
func (h *GetRankingHandler) fetchRequiredData(ctx context.Context, q GetRankingQuery, log *logger.Logger) (*seasonData, error) {
	data := &seasonData{}
	var g errgroup.Group

	g.Go(func() error {
		users, err := h.provider.GetUsersForSeason(ctx, q.Season)
		if err != nil {
			return shared.DataUnavailable("GetRanking", "users", err)
		}
		data.users = users
		return nil
	})

	g.Go(func() error {
		matches, err := h.provider.GetMatchesForSeason(ctx, q.Season)
		if err != nil {
			return shared.DataUnavailable("GetRanking", "matches", err)
		}
		data.matches = matches
		return nil
	})

	g.Go(func() error {
		teams, err := h.teams.GetAllTeams(ctx)
		if err != nil {
			return shared.DataUnavailable("GetRanking", "teams", err)
		}
		data.teams = teams
		return nil
	})

	g.Go(func() error {
		bets, err := h.provider.GetExtraBetsForSeason(ctx, q.Season, q.SeasonStart)
		if err != nil {
			log.Warn("extra bets unavailable, ranking without extras", logger.Err(err))
			return nil
		}
		data.extrasByUser = indexExtras(bets)
		return nil
	})

	g.Go(func() error {
		res, err := h.provider.GetExtraBetResultForSeason(ctx, q.Season, q.SeasonStart)
		if err != nil {
			log.Warn("extra bet result unavailable, ranking without extras", logger.Err(err))
			return nil
		}
		if res != nil {
			picks := res.Picks
			data.result = &picks
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("ranking data unavailable", logger.Err(err))
		return nil, err
	}
	return data, nil
}

// loadStartedBets fetches the bets of started matches. No started match
// means no bets, without a round trip.
func (h *GetRankingHandler) loadStartedBets(ctx context.Context, matches []pool.Match) (*ranking.BetBook, error) {
	started := ranking.StartedMatches(matches)
	if len(started) == 0 {
		return ranking.NewBetBook(nil), nil
	}

	ids := make([]int, 0, len(started))
	for _, m := range started {
		ids = append(ids, m.ID)
	}

	bets, err := h.provider.GetStartedBetsForMatchIDs(ctx, ids)
	if err != nil {
		return nil, shared.DataUnavailable("GetRanking", "bets", err)
	}
	return ranking.NewBetBook(bets), nil
}

// EvictWeek drops a locked week so the next request recomputes it.
func (h *GetRankingHandler) EvictWeek(ctx context.Context, season, week int) error {
	if season <= 0 {
		return shared.MissingRequiredField("EvictWeek", "season")
	}
	if week < 0 {
		return shared.NewDomainError("ranking", "EvictWeek", shared.ErrInvalidInput, "week must not be negative")
	}
	if h.cache == nil {
		return nil
	}

	key := ranking.WeekKey{Season: season, Week: week}
	if err := h.cache.EvictWeek(ctx, key); err != nil {
		return shared.WrapError("ranking", "EvictWeek", shared.ErrServiceUnavailable, "could not evict "+key.String(), err)
	}
	h.log.Info("evicted locked weekly ranking", logger.CacheKey(key.String()))
	return nil
}

// indexExtras keys extra picks by user. A later row for the same user
// replaces an earlier one.
func indexExtras(bets []pool.ExtraBet) map[int]pool.ExtraPicks {
	byUser := make(map[int]pool.ExtraPicks, len(bets))
	for _, b := range bets {
		byUser[b.UserID] = b.Picks
	}
	return byUser
}

// mergeTeams returns a copy of matches with Home and Away filled in.
func mergeTeams(matches []pool.Match, teams []pool.Team) ([]pool.Match, error) {
	byID := make(map[int]*pool.Team, len(teams))
	for i := range teams {
		byID[teams[i].ID] = &teams[i]
	}

	merged := make([]pool.Match, len(matches))
	for i, m := range matches {
		home, ok := byID[m.HomeTeamID]
		if !ok {
			return nil, shared.TeamNotFound("GetRanking", m.ID, m.HomeTeamID)
		}
		away, ok := byID[m.AwayTeamID]
		if !ok {
			return nil, shared.TeamNotFound("GetRanking", m.ID, m.AwayTeamID)
		}
		m.Home, m.Away = home, away
		merged[i] = m
	}
	return merged, nil
}
