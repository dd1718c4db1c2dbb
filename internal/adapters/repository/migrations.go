package repository

const schema = `
CREATE TABLE IF NOT EXISTS prospects (
    id            TEXT PRIMARY KEY,
    name          TEXT NOT NULL,
    position      TEXT NOT NULL DEFAULT '',
    rank          INTEGER NOT NULL DEFAULT 0,
    draft_class   INTEGER NOT NULL DEFAULT 0,
    age           REAL,
    games_played  INTEGER,
    ppg           REAL,
    rpg           REAL,
    apg           REAL,
    spg           REAL,
    bpg           REAL,
    fg_pct        REAL,
    three_pct     REAL,
    ft_pct        REAL,
    per           REAL,
    ts_pct        REAL,
    usage_rate    REAL,
    win_shares    REAL,
    vorp          REAL,
    bpm           REAL,
    height_raw    TEXT NOT NULL DEFAULT '',
    wingspan_raw  TEXT NOT NULL DEFAULT '',
    league        TEXT NOT NULL DEFAULT '',
    conference    TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_prospects_rank ON prospects(rank);
CREATE INDEX IF NOT EXISTS idx_prospects_class ON prospects(draft_class);

CREATE TABLE IF NOT EXISTS prospect_stats_history (
    id          TEXT PRIMARY KEY,
    prospect_id TEXT NOT NULL REFERENCES prospects(id),
    captured_at DATETIME NOT NULL,
    score       REAL NOT NULL DEFAULT 0,
    ppg         REAL NOT NULL DEFAULT 0,
    rpg         REAL NOT NULL DEFAULT 0,
    apg         REAL NOT NULL DEFAULT 0,
    per         REAL NOT NULL DEFAULT 0,
    ts_pct      REAL NOT NULL DEFAULT 0,
    bpm         REAL NOT NULL DEFAULT 0,
    win_shares  REAL NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_history_prospect ON prospect_stats_history(prospect_id);
CREATE INDEX IF NOT EXISTS idx_history_captured ON prospect_stats_history(captured_at);
`
