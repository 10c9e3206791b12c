// Package pool contains the domain model of the season prediction pool.
//
// The package defines:
//
//   - Entities: User, Team, Match, Bet, ExtraBet, ExtraBetResult
//   - Value objects: MatchStatus, BetValue, ExtraType, ExtraPicks
//   - Collaborator contracts: DataProvider, TeamCatalog
//
// # Architectural principles
//
//  1. Zero external dependencies - standard library only
//  2. Dependency inversion - infrastructure implements the interfaces declared here
//  3. Records are validated at the provider boundary (see ParseExtraPicks), so the
//     scoring and ranking packages only ever see well-formed values
//
// # Extra bets
//
// Season-long predictions arrive as JSON documents keyed by outcome type:
//
//	{"1": 5, "2": 12, "12": [3, 7, 9]}
//
// Most types hold a single team id. The two wildcard types hold a set of ids
// because several teams qualify. ParseExtraPicks turns such a document into an
// ExtraPicks value with the two shapes kept apart.
package pool
