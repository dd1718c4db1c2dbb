package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go sqlite driver

	"github.com/hooplens/prospectrank/internal/domain/model"
)

// SQLiteStore implements ProspectSource and SnapshotStore on SQLite.
type SQLiteStore struct {
	db *sqlx.DB
}

// prospectRow maps the prospects table. Nullable columns land on the
// prospect's pointer fields directly.
type prospectRow struct {
	ID          string   `db:"id"`
	Name        string   `db:"name"`
	Position    string   `db:"position"`
	Rank        int      `db:"rank"`
	DraftClass  int      `db:"draft_class"`
	Age         *float64 `db:"age"`
	GamesPlayed *int     `db:"games_played"`
	PPG         *float64 `db:"ppg"`
	RPG         *float64 `db:"rpg"`
	APG         *float64 `db:"apg"`
	SPG         *float64 `db:"spg"`
	BPG         *float64 `db:"bpg"`
	FGPct       *float64 `db:"fg_pct"`
	ThreePct    *float64 `db:"three_pct"`
	FTPct       *float64 `db:"ft_pct"`
	PER         *float64 `db:"per"`
	TSPct       *float64 `db:"ts_pct"`
	UsageRate   *float64 `db:"usage_rate"`
	WinShares   *float64 `db:"win_shares"`
	VORP        *float64 `db:"vorp"`
	BPM         *float64 `db:"bpm"`
	HeightRaw   string   `db:"height_raw"`
	WingspanRaw string   `db:"wingspan_raw"`
	League      string   `db:"league"`
	Conference  string   `db:"conference"`
}

func (r prospectRow) toModel() model.Prospect {
	return model.Prospect{
		ID:          r.ID,
		Name:        r.Name,
		Position:    r.Position,
		Rank:        r.Rank,
		Age:         r.Age,
		GamesPlayed: r.GamesPlayed,
		PPG:         r.PPG,
		RPG:         r.RPG,
		APG:         r.APG,
		SPG:         r.SPG,
		BPG:         r.BPG,
		FGPct:       r.FGPct,
		ThreePct:    r.ThreePct,
		FTPct:       r.FTPct,
		PER:         r.PER,
		TSPct:       r.TSPct,
		UsageRate:   r.UsageRate,
		WinShares:   r.WinShares,
		VORP:        r.VORP,
		BPM:         r.BPM,
		HeightRaw:   r.HeightRaw,
		WingspanRaw: r.WingspanRaw,
		League:      r.League,
		Conference:  r.Conference,
	}
}

// NewSQLiteStore opens a SQLite database and runs migrations.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// FetchProspects returns raw records ordered by consensus rank.
func (s *SQLiteStore) FetchProspects(ctx context.Context, f Filter) ([]model.Prospect, error) {
	query := "SELECT * FROM prospects WHERE 1=1"
	var args []any

	if f.DraftClass > 0 {
		query += " AND draft_class = ?"
		args = append(args, f.DraftClass)
	}
	if f.Position != "" {
		query += " AND position = ?"
		args = append(args, f.Position)
	}
	query += " ORDER BY rank ASC"
	if f.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, f.Limit)
	}

	var rows []prospectRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("fetch prospects: %w", err)
	}
	prospects := make([]model.Prospect, len(rows))
	for i, r := range rows {
		prospects[i] = r.toModel()
	}
	return prospects, nil
}

// UpsertProspect writes a raw record, replacing any previous row for the
// same id. Used by loaders and tests; the engine itself only reads.
func (s *SQLiteStore) UpsertProspect(ctx context.Context, p model.Prospect, draftClass int) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO prospects (
			id, name, position, rank, draft_class, age, games_played,
			ppg, rpg, apg, spg, bpg, fg_pct, three_pct, ft_pct,
			per, ts_pct, usage_rate, win_shares, vorp, bpm,
			height_raw, wingspan_raw, league, conference
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			position = excluded.position,
			rank = excluded.rank,
			draft_class = excluded.draft_class,
			age = excluded.age,
			games_played = excluded.games_played,
			ppg = excluded.ppg, rpg = excluded.rpg, apg = excluded.apg,
			spg = excluded.spg, bpg = excluded.bpg,
			fg_pct = excluded.fg_pct, three_pct = excluded.three_pct, ft_pct = excluded.ft_pct,
			per = excluded.per, ts_pct = excluded.ts_pct, usage_rate = excluded.usage_rate,
			win_shares = excluded.win_shares, vorp = excluded.vorp, bpm = excluded.bpm,
			height_raw = excluded.height_raw, wingspan_raw = excluded.wingspan_raw,
			league = excluded.league, conference = excluded.conference
	`, p.ID, p.Name, p.Position, p.Rank, draftClass, p.Age, p.GamesPlayed,
		p.PPG, p.RPG, p.APG, p.SPG, p.BPG, p.FGPct, p.ThreePct, p.FTPct,
		p.PER, p.TSPct, p.UsageRate, p.WinShares, p.VORP, p.BPM,
		p.HeightRaw, p.WingspanRaw, p.League, p.Conference)
	if err != nil {
		return fmt.Errorf("upsert prospect %s: %w", p.ID, err)
	}
	return nil
}

// Append records one snapshot in the history table.
func (s *SQLiteStore) Append(ctx context.Context, snap model.Snapshot) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO prospect_stats_history (
			id, prospect_id, captured_at, score, ppg, rpg, apg, per, ts_pct, bpm, win_shares
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, snap.ID, snap.ProspectID, snap.CapturedAt, snap.Score,
		snap.PPG, snap.RPG, snap.APG, snap.PER, snap.TSPct, snap.BPM, snap.WinShares)
	if err != nil {
		return fmt.Errorf("append snapshot for %s: %w", snap.ProspectID, err)
	}
	return nil
}

// LatestPair returns the two most recent snapshots for a prospect in the
// window, newest first.
func (s *SQLiteStore) LatestPair(ctx context.Context, prospectID string, since time.Time) (model.Snapshot, model.Snapshot, bool, error) {
	var snaps []model.Snapshot
	err := s.db.SelectContext(ctx, &snaps, `
		SELECT * FROM prospect_stats_history
		WHERE prospect_id = ? AND captured_at >= ?
		ORDER BY captured_at DESC
		LIMIT 2
	`, prospectID, since)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return model.Snapshot{}, model.Snapshot{}, false, fmt.Errorf("latest snapshots for %s: %w", prospectID, err)
	}
	if len(snaps) < 2 {
		return model.Snapshot{}, model.Snapshot{}, false, nil
	}
	return snaps[0], snaps[1], true, nil
}

// ProspectIDsWithHistory lists prospects holding at least two snapshots
// in the window.
func (s *SQLiteStore) ProspectIDsWithHistory(ctx context.Context, since time.Time) ([]string, error) {
	var ids []string
	err := s.db.SelectContext(ctx, &ids, `
		SELECT prospect_id FROM prospect_stats_history
		WHERE captured_at >= ?
		GROUP BY prospect_id
		HAVING COUNT(*) >= 2
		ORDER BY prospect_id
	`, since)
	if err != nil {
		return nil, fmt.Errorf("prospects with history: %w", err)
	}
	return ids, nil
}
