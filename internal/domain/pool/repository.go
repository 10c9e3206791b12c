package pool

import "context"

// ══════════════════════════════════════════════════════════════════════════════
// COLLABORATOR CONTRACTS
// ══════════════════════════════════════════════════════════════════════════════

// DataProvider supplies the records the ranking engine works on.
// Implementations live in the infrastructure layer (PostgreSQL).
// Every method may fail when the store is unavailable; retries are the
// implementation's business.
type DataProvider interface {
	// GetUsersForSeason returns the users taking part in a season.
	GetUsersForSeason(ctx context.Context, season int) ([]User, error)

	// GetMatchesForSeason returns every scheduled match of a season.
	GetMatchesForSeason(ctx context.Context, season int) ([]Match, error)

	// GetStartedBetsForMatchIDs returns the bets of matches whose kickoff has passed.
	GetStartedBetsForMatchIDs(ctx context.Context, matchIDs []int) ([]Bet, error)

	// GetExtraBetsForSeason returns the extra bets of a season once it has started.
	GetExtraBetsForSeason(ctx context.Context, season int, seasonStart int64) ([]ExtraBet, error)

	// GetExtraBetResultForSeason returns the canonical extra-bet outcome, or nil
	// when none has been published yet.
	GetExtraBetResultForSeason(ctx context.Context, season int, seasonStart int64) (*ExtraBetResult, error)
}

// TeamCatalog resolves team display metadata.
type TeamCatalog interface {
	GetAllTeams(ctx context.Context) ([]Team, error)
}
