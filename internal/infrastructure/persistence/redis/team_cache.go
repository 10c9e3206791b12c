package redis

import (
	"context"
	"errors"
	"time"

	"github.com/bolao-nfl/bolao-hub/internal/domain/pool"
	"github.com/bolao-nfl/bolao-hub/pkg/logger"
)

// TeamCache is a read-through pool.TeamCatalog.
// Cache failures fall back to the source and are only logged.
type TeamCache struct {
	store  Store
	source pool.TeamCatalog
	ttl    time.Duration
	log    *logger.Logger
}

// NewTeamCache wraps source. A non-positive ttl means TTLTeams.
func NewTeamCache(store Store, source pool.TeamCatalog, ttl time.Duration, log *logger.Logger) *TeamCache {
	if ttl <= 0 {
		ttl = TTLTeams
	}
	return &TeamCache{
		store:  store,
		source: source,
		ttl:    ttl,
		log:    log.With(logger.Component("team_cache")),
	}
}

var _ pool.TeamCatalog = (*TeamCache)(nil)

// GetAllTeams returns the cached catalog, loading it from source on a miss.
func (c *TeamCache) GetAllTeams(ctx context.Context) ([]pool.Team, error) {
	var teams []pool.Team
	err := c.store.Get(ctx, KeyTeams, &teams)
	if err == nil {
		return teams, nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		c.log.Warn("team cache read failed", logger.CacheKey(KeyTeams), logger.Err(err))
	}

	teams, err = c.source.GetAllTeams(ctx)
	if err != nil {
		return nil, err
	}

	if len(teams) > 0 {
		if err := c.store.Set(ctx, KeyTeams, teams, c.ttl); err != nil {
			c.log.Warn("team cache write failed", logger.CacheKey(KeyTeams), logger.Err(err))
		}
	}
	return teams, nil
}
