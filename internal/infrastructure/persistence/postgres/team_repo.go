package postgres

import (
	"context"
	"fmt"

	"github.com/bolao-nfl/bolao-hub/internal/domain/pool"
	"github.com/jackc/pgx/v5"
)

// TeamRepository implements pool.TeamCatalog for PostgreSQL.
type TeamRepository struct {
	conn *Connection
}

// NewTeamRepository creates a new TeamRepository.
func NewTeamRepository(conn *Connection) *TeamRepository {
	return &TeamRepository{conn: conn}
}

var _ pool.TeamCatalog = (*TeamRepository)(nil)

// GetAllTeams returns every team ordered by id.
func (r *TeamRepository) GetAllTeams(ctx context.Context) ([]pool.Team, error) {
	rows, err := r.conn.Query(ctx, `
		SELECT id, name, alias, code, conference, division, background, foreground
		FROM teams
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query teams: %w", err)
	}

	teams, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (pool.Team, error) {
		var t pool.Team
		err := row.Scan(&t.ID, &t.Name, &t.Alias, &t.Code, &t.Conference, &t.Division, &t.Background, &t.Foreground)
		return t, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan teams: %w", err)
	}
	return teams, nil
}
