// Package ledger records the outcome of every run in a SQLite database:
// which games were written from which archive entries, and which files
// were skipped and why.
package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/vk/slp2graph/internal/batch"
	"github.com/vk/slp2graph/internal/nodeid"
)

const schema = `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		started_at TEXT NOT NULL,
		finished_at TEXT,
		games INTEGER
	);

	CREATE TABLE IF NOT EXISTS games (
		run_id INTEGER NOT NULL REFERENCES runs(id),
		game_index INTEGER NOT NULL,
		game_id TEXT NOT NULL,
		archive TEXT NOT NULL,
		entry TEXT NOT NULL,
		digest TEXT NOT NULL,
		frames INTEGER NOT NULL,
		players INTEGER NOT NULL,
		PRIMARY KEY (run_id, game_index)
	);

	CREATE TABLE IF NOT EXISTS skips (
		run_id INTEGER NOT NULL REFERENCES runs(id),
		archive TEXT NOT NULL,
		entry TEXT NOT NULL,
		reason TEXT NOT NULL,
		message TEXT NOT NULL
	);
`

// Ledger is one run's view of the database. It implements batch.Observer.
type Ledger struct {
	db    *sql.DB
	runID int64
	now   func() time.Time
}

var _ batch.Observer = (*Ledger)(nil)

// Open opens or creates the database at path and starts a new run.
func Open(ctx context.Context, path string) (*Ledger, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger: %w", err)
	}
	db.SetMaxOpenConns(1)

	l := &Ledger{db: db, now: time.Now}
	if err := l.init(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return l, nil
}

func (l *Ledger) init(ctx context.Context) error {
	if _, err := l.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create ledger schema: %w", err)
	}
	res, err := l.db.ExecContext(ctx, "INSERT INTO runs (started_at) VALUES (?)", l.stamp())
	if err != nil {
		return fmt.Errorf("failed to start run: %w", err)
	}
	if l.runID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("failed to start run: %w", err)
	}
	return nil
}

// RunID identifies the run this ledger records.
func (l *Ledger) RunID() int64 { return l.runID }

// GameWritten records a written game.
func (l *Ledger) GameWritten(ctx context.Context, w batch.Written) error {
	_, err := l.db.ExecContext(ctx, `
		INSERT INTO games (run_id, game_index, game_id, archive, entry, digest, frames, players)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		l.runID, w.Index, nodeid.GameID(w.Index), w.Archive, w.Entry, w.Digest, w.Frames, w.Players)
	if err != nil {
		return fmt.Errorf("failed to record game %d: %w", w.Index, err)
	}
	return nil
}

// FileSkipped records a skipped file or archive.
func (l *Ledger) FileSkipped(ctx context.Context, s batch.Skip) error {
	_, err := l.db.ExecContext(ctx,
		"INSERT INTO skips (run_id, archive, entry, reason, message) VALUES (?, ?, ?, ?, ?)",
		l.runID, s.Archive, s.Entry, batch.Reason(s.Err), s.Err.Error())
	if err != nil {
		return fmt.Errorf("failed to record skip: %w", err)
	}
	return nil
}

// Finish marks the run complete.
func (l *Ledger) Finish(ctx context.Context, games int) error {
	_, err := l.db.ExecContext(ctx,
		"UPDATE runs SET finished_at = ?, games = ? WHERE id = ?", l.stamp(), games, l.runID)
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}
	return nil
}

// Counts returns the number of games and skips recorded for this run.
func (l *Ledger) Counts(ctx context.Context) (games, skips int, err error) {
	err = l.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM games WHERE run_id = ?),
			(SELECT COUNT(*) FROM skips WHERE run_id = ?)`,
		l.runID, l.runID).Scan(&games, &skips)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count ledger rows: %w", err)
	}
	return games, skips, nil
}

// Close closes the database.
func (l *Ledger) Close() error { return l.db.Close() }

func (l *Ledger) stamp() string { return l.now().UTC().Format(time.RFC3339) }
