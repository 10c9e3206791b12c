package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/bolao-nfl/bolao-hub/internal/domain/pool"
	"github.com/bolao-nfl/bolao-hub/internal/domain/shared"
	"github.com/bolao-nfl/bolao-hub/pkg/logger"
	"github.com/bolao-nfl/bolao-hub/pkg/retry"
	"github.com/jackc/pgx/v5"
)

// ══════════════════════════════════════════════════════════════════════════════
// POOL REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// PoolRepository implements pool.DataProvider for PostgreSQL.
// Every read is retried on connection-level failures.
type PoolRepository struct {
	conn    *Connection
	retrier *retry.Retrier
	log     *logger.Logger
	now     func() time.Time
}

// NewPoolRepository creates a new PoolRepository.
func NewPoolRepository(conn *Connection, log *logger.Logger) *PoolRepository {
	return &PoolRepository{
		conn:    conn,
		retrier: retry.DatabaseRetrier(retry.WithRetryIf(isTransient)),
		log:     log.With(logger.Component("pool_repository")),
		now:     time.Now,
	}
}

var _ pool.DataProvider = (*PoolRepository)(nil)

// ─────────────────────────────────────────────────────────────────────────────
// USERS AND MATCHES
// ─────────────────────────────────────────────────────────────────────────────

// GetUsersForSeason returns the users enrolled in a season.
func (r *PoolRepository) GetUsersForSeason(ctx context.Context, season int) ([]pool.User, error) {
	return retry.DoWithData(ctx, r.retrier, func(ctx context.Context) ([]pool.User, error) {
		rows, err := r.conn.Query(ctx, `
			SELECT u.id, u.name,
			       COALESCE(ui.color, ''), COALESCE(ui.icon, ''),
			       COALESCE(EXTRACT(EPOCH FROM uo.timestamp)::BIGINT, 0)
			FROM users u
			INNER JOIN users_season us ON us.id_user = u.id AND us.id_season = $1
			LEFT JOIN users_icon ui ON ui.id_user = u.id
			LEFT JOIN users_online uo ON uo.id_user = u.id
			ORDER BY u.id
		`, season)
		if err != nil {
			return nil, fmt.Errorf("failed to query users: %w", err)
		}

		users, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (pool.User, error) {
			var u pool.User
			err := row.Scan(&u.ID, &u.Name, &u.Color, &u.Icon, &u.LastOnline)
			return u, err
		})
		if err != nil {
			return nil, fmt.Errorf("failed to scan users: %w", err)
		}
		return users, nil
	})
}

// GetMatchesForSeason returns every match of a season ordered by week and kickoff.
func (r *PoolRepository) GetMatchesForSeason(ctx context.Context, season int) ([]pool.Match, error) {
	return retry.DoWithData(ctx, r.retrier, func(ctx context.Context) ([]pool.Match, error) {
		rows, err := r.conn.Query(ctx, `
			SELECT id, id_season, week, timestamp, status,
			       home_score, away_score, id_home_team, id_away_team
			FROM matches
			WHERE id_season = $1
			ORDER BY week, timestamp, id
		`, season)
		if err != nil {
			return nil, fmt.Errorf("failed to query matches: %w", err)
		}

		matches, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (pool.Match, error) {
			var m pool.Match
			var status int16
			err := row.Scan(&m.ID, &m.Season, &m.Week, &m.Timestamp, &status,
				&m.HomeScore, &m.AwayScore, &m.HomeTeamID, &m.AwayTeamID)
			m.Status = pool.MatchStatus(status)
			return m, err
		})
		if err != nil {
			return nil, fmt.Errorf("failed to scan matches: %w", err)
		}
		return matches, nil
	})
}

// ─────────────────────────────────────────────────────────────────────────────
// BETS
// ─────────────────────────────────────────────────────────────────────────────

// GetStartedBetsForMatchIDs returns bets on the given matches whose kickoff
// has passed. Rows with an unknown bet value are skipped.
func (r *PoolRepository) GetStartedBetsForMatchIDs(ctx context.Context, matchIDs []int) ([]pool.Bet, error) {
	if len(matchIDs) == 0 {
		return nil, nil
	}

	now := r.now().Unix()
	bets, err := retry.DoWithData(ctx, r.retrier, func(ctx context.Context) ([]pool.Bet, error) {
		rows, err := r.conn.Query(ctx, `
			SELECT b.id_match, b.id_user, b.id_bet
			FROM bets b
			INNER JOIN matches m ON m.id = b.id_match
			WHERE b.id_match = ANY($1)
			  AND m.timestamp <= $2
			ORDER BY b.id
		`, matchIDs, now)
		if err != nil {
			return nil, fmt.Errorf("failed to query bets: %w", err)
		}

		return pgx.CollectRows(rows, func(row pgx.CollectableRow) (pool.Bet, error) {
			var b pool.Bet
			var value int16
			err := row.Scan(&b.MatchID, &b.UserID, &value)
			b.Value = pool.BetValue(value)
			return b, err
		})
	})
	if err != nil {
		return nil, err
	}

	return validBets(bets, r.log), nil
}

// validBets drops bets whose value is outside the known range, keeping order.
func validBets(bets []pool.Bet, log *logger.Logger) []pool.Bet {
	valid := make([]pool.Bet, 0, len(bets))
	for _, b := range bets {
		if !b.Value.IsValid() {
			log.Warn("skipping bet with unknown value",
				logger.UserID(b.UserID), logger.Int("match_id", b.MatchID), logger.Int("value", int(b.Value)))
			continue
		}
		valid = append(valid, b)
	}
	return valid
}

// GetExtraBetsForSeason returns the extra bets of a season once seasonStart
// has passed. A row holding a malformed document is logged and skipped.
func (r *PoolRepository) GetExtraBetsForSeason(ctx context.Context, season int, seasonStart int64) ([]pool.ExtraBet, error) {
	if r.now().Unix() < seasonStart {
		return nil, nil
	}

	type rawExtra struct {
		userID int
		doc    []byte
	}

	raws, err := retry.DoWithData(ctx, r.retrier, func(ctx context.Context) ([]rawExtra, error) {
		rows, err := r.conn.Query(ctx, `
			SELECT id_user, json
			FROM extra_bets
			WHERE id_season = $1
			ORDER BY id_user
		`, season)
		if err != nil {
			return nil, fmt.Errorf("failed to query extra bets: %w", err)
		}

		return pgx.CollectRows(rows, func(row pgx.CollectableRow) (rawExtra, error) {
			var e rawExtra
			err := row.Scan(&e.userID, &e.doc)
			return e, err
		})
	})
	if err != nil {
		return nil, err
	}

	bets := make([]pool.ExtraBet, 0, len(raws))
	for _, raw := range raws {
		picks, err := pool.ParseExtraPicks(raw.doc)
		if err != nil {
			r.log.Warn("skipping malformed extra bet",
				logger.Season(season), logger.UserID(raw.userID), logger.Err(err))
			continue
		}
		bets = append(bets, pool.ExtraBet{Season: season, UserID: raw.userID, Picks: picks})
	}
	return bets, nil
}

// GetExtraBetResultForSeason returns the published extra-bet outcome, or nil
// when the season has not started or no outcome exists yet.
func (r *PoolRepository) GetExtraBetResultForSeason(ctx context.Context, season int, seasonStart int64) (*pool.ExtraBetResult, error) {
	if r.now().Unix() < seasonStart {
		return nil, nil
	}

	doc, err := retry.DoWithData(ctx, r.retrier, func(ctx context.Context) ([]byte, error) {
		var doc []byte
		err := r.conn.QueryRow(ctx, `
			SELECT json FROM extra_bets_results WHERE id_season = $1
		`, season).Scan(&doc)
		return doc, err
	})
	if IsNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query extra bet result: %w", err)
	}

	picks, err := pool.ParseExtraPicks(doc)
	if err != nil {
		return nil, shared.WrapError("pool", "GetExtraBetResultForSeason", shared.ErrInvalidFormat,
			"malformed extra bet result document", err)
	}
	return &pool.ExtraBetResult{Season: season, Picks: picks}, nil
}
