// Package persistence provides SQLite-based game state storage.
package persistence

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/electionsim/internal/engine"
	"github.com/talgya/electionsim/internal/policy"
)

// ErrNoSavedGame means the database holds no resumable session.
var ErrNoSavedGame = errors.New("no saved game")

// DB wraps a SQLite connection for game state persistence.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS influence (
		region_id TEXT PRIMARY KEY,
		player1 REAL NOT NULL,
		player2 REAL NOT NULL,
		others REAL NOT NULL,
		p1_spent INTEGER NOT NULL,
		p2_spent INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS campaigns (
		category TEXT NOT NULL,
		idx INTEGER NOT NULL,
		p1_progress INTEGER NOT NULL,
		p2_progress INTEGER NOT NULL,
		completed INTEGER NOT NULL,
		PRIMARY KEY (category, idx)
	);

	CREATE TABLE IF NOT EXISTS actions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		phase INTEGER NOT NULL,
		description TEXT NOT NULL,
		category TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS game_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_actions_phase ON actions(phase);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveInfluence writes every region's tuple and spend totals (full replace).
func (db *DB) SaveInfluence(regions []engine.RegionState) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM influence"); err != nil {
		return err
	}

	stmt, err := tx.Preparex(`INSERT INTO influence
		(region_id, player1, player2, others, p1_spent, p2_spent)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range regions {
		_, err := stmt.Exec(r.ID, r.Influence.P1, r.Influence.P2, r.Influence.Others, r.P1Spent, r.P2Spent)
		if err != nil {
			return fmt.Errorf("insert influence %s: %w", r.ID, err)
		}
	}

	return tx.Commit()
}

// SaveCampaigns writes every campaign's progress (full replace).
func (db *DB) SaveCampaigns(campaigns []engine.Campaign) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM campaigns"); err != nil {
		return err
	}

	for _, c := range campaigns {
		completed := 0
		if c.Completed {
			completed = 1
		}
		_, err := tx.Exec(`INSERT INTO campaigns
			(category, idx, p1_progress, p2_progress, completed)
			VALUES (?, ?, ?, ?, ?)`,
			string(c.Key.Category), c.Key.Index, c.P1Progress, c.P2Progress, completed,
		)
		if err != nil {
			return fmt.Errorf("insert campaign %s/%d: %w", c.Key.Category, c.Key.Index, err)
		}
	}

	return tx.Commit()
}

// SaveActions replaces the stored action log with the session's.
func (db *DB) SaveActions(events []engine.Event) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM actions"); err != nil {
		return err
	}

	for _, e := range events {
		_, err := tx.Exec(
			"INSERT INTO actions (phase, description, category) VALUES (?, ?, ?)",
			e.Phase, e.Description, e.Category,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// SaveMeta stores a key-value pair in game metadata.
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO game_meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM game_meta WHERE key = ?", key)
	return value, err
}

// SaveGameState performs a full save of a session snapshot.
func (db *DB) SaveGameState(st engine.State, events []engine.Event) error {
	slog.Info("saving game state", "phase", st.Phase, "regions", len(st.Regions))

	if err := db.SaveInfluence(st.Regions); err != nil {
		return fmt.Errorf("save influence: %w", err)
	}
	if err := db.SaveCampaigns(st.Campaigns); err != nil {
		return fmt.Errorf("save campaigns: %w", err)
	}
	if err := db.SaveActions(events); err != nil {
		return fmt.Errorf("save actions: %w", err)
	}

	meta := map[string]string{
		"phase":           strconv.Itoa(st.Phase),
		"phase_remaining": strconv.Itoa(st.PhaseRemaining),
		"over":            strconv.FormatBool(st.Over),
		"outcome":         string(st.Outcome),
	}
	for _, p := range st.Players {
		meta[fmt.Sprintf("player%d_funds", p.ID)] = strconv.Itoa(p.Funds)
		meta[fmt.Sprintf("player%d_home", p.ID)] = p.HomeRegion
	}
	for k, v := range meta {
		if err := db.SaveMeta(k, v); err != nil {
			return fmt.Errorf("save meta %s: %w", k, err)
		}
	}

	slog.Info("game state saved")
	return nil
}

// LoadGameState reconstructs a saved snapshot, or ErrNoSavedGame when the
// database is empty.
func (db *DB) LoadGameState() (engine.State, error) {
	var st engine.State

	phaseStr, err := db.GetMeta("phase")
	if errors.Is(err, sql.ErrNoRows) {
		return st, ErrNoSavedGame
	}
	if err != nil {
		return st, fmt.Errorf("load meta: %w", err)
	}
	st.Phase, _ = strconv.Atoi(phaseStr)
	if v, err := db.GetMeta("phase_remaining"); err == nil {
		st.PhaseRemaining, _ = strconv.Atoi(v)
	}
	if v, err := db.GetMeta("over"); err == nil {
		st.Over, _ = strconv.ParseBool(v)
	}
	if v, err := db.GetMeta("outcome"); err == nil {
		st.Outcome = engine.Outcome(v)
	}

	for _, id := range []engine.PlayerID{engine.Player1, engine.Player2} {
		p := engine.Player{ID: id}
		if v, err := db.GetMeta(fmt.Sprintf("player%d_funds", id)); err == nil {
			p.Funds, _ = strconv.Atoi(v)
		}
		if v, err := db.GetMeta(fmt.Sprintf("player%d_home", id)); err == nil {
			p.HomeRegion = v
		}
		st.Players = append(st.Players, p)
	}

	rows, err := db.conn.Queryx("SELECT region_id, player1, player2, others, p1_spent, p2_spent FROM influence")
	if err != nil {
		return st, fmt.Errorf("load influence: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var r engine.RegionState
		if err := rows.Scan(&r.ID, &r.Influence.P1, &r.Influence.P2, &r.Influence.Others, &r.P1Spent, &r.P2Spent); err != nil {
			return st, err
		}
		st.Regions = append(st.Regions, r)
	}

	crows, err := db.conn.Queryx("SELECT category, idx, p1_progress, p2_progress, completed FROM campaigns")
	if err != nil {
		return st, fmt.Errorf("load campaigns: %w", err)
	}
	defer crows.Close()
	for crows.Next() {
		var (
			cat       string
			c         engine.Campaign
			completed int
		)
		if err := crows.Scan(&cat, &c.Key.Index, &c.P1Progress, &c.P2Progress, &completed); err != nil {
			return st, err
		}
		c.Key.Category = policy.Category(cat)
		c.Completed = completed == 1
		st.Campaigns = append(st.Campaigns, c)
	}

	return st, nil
}

// RecentActions returns the most recent N action log entries.
func (db *DB) RecentActions(limit int) ([]engine.Event, error) {
	var events []engine.Event
	err := db.conn.Select(&events,
		"SELECT phase, description, category FROM actions ORDER BY id DESC LIMIT ?",
		limit,
	)
	return events, err
}
