package database

// Schema is the full database layout. The players, player_metrics, and
// player_trending tables are replaced wholesale by the ingest loaders; the
// roster tables are owned by the roster module. Ranks and z-scores are
// derived on read, never stored.
const Schema = `
CREATE TABLE IF NOT EXISTS players (
    sleeper_id    TEXT PRIMARY KEY,
    full_name     TEXT NOT NULL,
    position      TEXT NOT NULL,
    nfl_team_code TEXT,
    age           INTEGER
);

CREATE INDEX IF NOT EXISTS idx_players_name ON players(full_name);
CREATE INDEX IF NOT EXISTS idx_players_position ON players(position);

CREATE TABLE IF NOT EXISTS player_metrics (
    player_id TEXT PRIMARY KEY REFERENCES players(sleeper_id),
    valuation REAL NOT NULL DEFAULT 0,
    trend_30d REAL
);

CREATE TABLE IF NOT EXISTS player_trending (
    player_id TEXT PRIMARY KEY REFERENCES players(sleeper_id),
    adds_24h  INTEGER NOT NULL DEFAULT 0,
    drops_24h INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS roster_session (
    id          TEXT PRIMARY KEY,
    created_at  TEXT NOT NULL,
    num_teams   INTEGER NOT NULL,
    qb_slots    INTEGER NOT NULL,
    rb_slots    INTEGER NOT NULL,
    wr_slots    INTEGER NOT NULL,
    te_slots    INTEGER NOT NULL,
    flex_slots  INTEGER NOT NULL,
    def_slots   INTEGER NOT NULL,
    k_slots     INTEGER NOT NULL,
    bench_slots INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS roster_team (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    session_id TEXT NOT NULL REFERENCES roster_session(id),
    name       TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_roster_team_session ON roster_team(session_id);

CREATE TABLE IF NOT EXISTS roster_team_player (
    team_id   INTEGER NOT NULL REFERENCES roster_team(id),
    player_id TEXT NOT NULL REFERENCES players(sleeper_id),
    PRIMARY KEY (team_id, player_id)
);
`
