package postgres

// GetMigrations returns all embedded migrations.
func GetMigrations() []Migration {
	return []Migration{
		{Version: 1, Name: "create_users", UpSQL: migration001Up},
		{Version: 2, Name: "create_teams_and_matches", UpSQL: migration002Up},
		{Version: 3, Name: "create_bets", UpSQL: migration003Up},
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// MIGRATION 001: SEASONS AND USERS
// ══════════════════════════════════════════════════════════════════════════════

const migration001Up = `
CREATE TABLE IF NOT EXISTS seasons (
    id INTEGER PRIMARY KEY,
    description VARCHAR(100) NOT NULL DEFAULT '',
    starts_at BIGINT NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS users (
    id SERIAL PRIMARY KEY,
    login VARCHAR(100) NOT NULL UNIQUE,
    name VARCHAR(100) NOT NULL,
    full_name VARCHAR(200) NOT NULL DEFAULT '',
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS users_season (
    id SERIAL PRIMARY KEY,
    id_user INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    id_season INTEGER NOT NULL REFERENCES seasons(id) ON DELETE CASCADE,
    UNIQUE (id_user, id_season)
);

CREATE TABLE IF NOT EXISTS users_icon (
    id_user INTEGER PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
    icon VARCHAR(50) NOT NULL DEFAULT '',
    color VARCHAR(20) NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS users_online (
    id_user INTEGER PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
    timestamp TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_users_season_season ON users_season(id_season);
`

// ══════════════════════════════════════════════════════════════════════════════
// MIGRATION 002: TEAMS AND MATCHES
// ══════════════════════════════════════════════════════════════════════════════

const migration002Up = `
CREATE TABLE IF NOT EXISTS teams (
    id INTEGER PRIMARY KEY,
    name VARCHAR(100) NOT NULL,
    alias VARCHAR(50) NOT NULL DEFAULT '',
    code VARCHAR(5) NOT NULL,
    conference VARCHAR(5) NOT NULL DEFAULT '',
    division VARCHAR(10) NOT NULL DEFAULT '',
    background VARCHAR(20) NOT NULL DEFAULT '',
    foreground VARCHAR(20) NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS matches (
    id SERIAL PRIMARY KEY,
    id_season INTEGER NOT NULL REFERENCES seasons(id) ON DELETE CASCADE,
    week INTEGER NOT NULL,
    timestamp BIGINT NOT NULL,
    status SMALLINT NOT NULL DEFAULT 0,
    id_home_team INTEGER NOT NULL REFERENCES teams(id),
    id_away_team INTEGER NOT NULL REFERENCES teams(id),
    home_score INTEGER NOT NULL DEFAULT 0,
    away_score INTEGER NOT NULL DEFAULT 0,

    CONSTRAINT valid_week CHECK (week >= 0),
    CONSTRAINT valid_status CHECK (status BETWEEN 0 AND 4)
);

CREATE INDEX IF NOT EXISTS idx_matches_season_week ON matches(id_season, week, timestamp);
`

// ══════════════════════════════════════════════════════════════════════════════
// MIGRATION 003: BETS
// ══════════════════════════════════════════════════════════════════════════════

const migration003Up = `
CREATE TABLE IF NOT EXISTS bets (
    id SERIAL PRIMARY KEY,
    id_match INTEGER NOT NULL REFERENCES matches(id) ON DELETE CASCADE,
    id_user INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    id_bet SMALLINT NOT NULL,
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),

    CONSTRAINT valid_bet CHECK (id_bet BETWEEN 0 AND 3),
    UNIQUE (id_match, id_user)
);

CREATE TABLE IF NOT EXISTS extra_bets (
    id_user INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    id_season INTEGER NOT NULL REFERENCES seasons(id) ON DELETE CASCADE,
    json JSONB NOT NULL DEFAULT '{}'::jsonb,
    PRIMARY KEY (id_user, id_season)
);

CREATE TABLE IF NOT EXISTS extra_bets_results (
    id_season INTEGER PRIMARY KEY REFERENCES seasons(id) ON DELETE CASCADE,
    json JSONB NOT NULL DEFAULT '{}'::jsonb
);

CREATE INDEX IF NOT EXISTS idx_bets_match ON bets(id_match);
`
