package leaderboard

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrNoStore is returned by Shared when no database path is configured.
var ErrNoStore = errors.New("leaderboard: no database path configured")

// Store is the backing sorted collection: entries keyed by the
// composite sort value, capped at Cap members. SQLite serializes
// writes, and insert+eviction run in one transaction, so two
// concurrent submissions can neither corrupt ranking nor both skip
// eviction.
type Store struct {
	db *sql.DB
}

// Open creates or opens the store at the given path, creating parent
// directories and running migrations.
func Open(dbPath string) (*Store, error) {
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("leaderboard: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("leaderboard: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: cannot open database: %w", err)
	}
	// SQLite allows one writer at a time; with a multi-connection pool
	// concurrent Add transactions would fail with SQLITE_BUSY instead
	// of queueing. A single connection serializes them.
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("leaderboard: cannot connect to database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("leaderboard: migration failed: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS entries (
			id       TEXT PRIMARY KEY,
			nick     TEXT NOT NULL,
			score    INTEGER NOT NULL,
			ts       INTEGER NOT NULL,
			sort_key REAL NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_entries_sort ON entries(sort_key DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Add inserts an entry and evicts the lowest-ranked surplus beyond Cap.
// Both happen in one transaction; the size check is re-run after every
// insert so concurrent submissions cannot race the cap into unbounded
// growth.
func (s *Store) Add(e Entry) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("leaderboard: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		"INSERT INTO entries (id, nick, score, ts, sort_key) VALUES (?, ?, ?, ?, ?)",
		e.ID, e.Nick, e.Score, e.Ts, SortKey(e.Score, e.Ts),
	)
	if err != nil {
		return fmt.Errorf("leaderboard: cannot insert entry: %w", err)
	}

	var total int
	if err := tx.QueryRow("SELECT COUNT(*) FROM entries").Scan(&total); err != nil {
		return fmt.Errorf("leaderboard: cannot count entries: %w", err)
	}
	if total > Cap {
		_, err = tx.Exec(
			`DELETE FROM entries WHERE id IN (
				SELECT id FROM entries ORDER BY sort_key ASC LIMIT ?
			)`,
			total-Cap,
		)
		if err != nil {
			return fmt.Errorf("leaderboard: cannot evict entries: %w", err)
		}
	}

	return tx.Commit()
}

// Top returns up to limit entries ordered by the composite key
// descending (highest score first, most recent first on ties).
// Malformed rows are dropped rather than failing the read.
func (s *Store) Top(limit int) ([]Entry, error) {
	rows, err := s.db.Query(
		`SELECT id, nick, score, ts FROM entries ORDER BY sort_key DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: cannot query entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Nick, &e.Score, &e.Ts); err != nil {
			continue
		}
		if e.Nick == "" {
			continue
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("leaderboard: row iteration error: %w", err)
	}
	return entries, nil
}

// Count returns the number of retained entries.
func (s *Store) Count() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM entries").Scan(&n); err != nil {
		return 0, fmt.Errorf("leaderboard: cannot count entries: %w", err)
	}
	return n, nil
}

var (
	sharedMu    sync.Mutex
	sharedStore *Store
)

// Shared returns the process-wide store handle, lazily opening it on
// first use and reusing it afterwards. Connect-or-reuse semantics: a
// second call with any path returns the already-open handle. Returns
// ErrNoStore when called before any path is configured.
func Shared(dbPath string) (*Store, error) {
	sharedMu.Lock()
	defer sharedMu.Unlock()

	if sharedStore != nil {
		return sharedStore, nil
	}
	if dbPath == "" {
		return nil, ErrNoStore
	}
	s, err := Open(dbPath)
	if err != nil {
		return nil, err
	}
	sharedStore = s
	return s, nil
}

// CloseShared closes and clears the process-wide handle. Mainly for
// shutdown paths and tests.
func CloseShared() error {
	sharedMu.Lock()
	defer sharedMu.Unlock()
	if sharedStore == nil {
		return nil
	}
	err := sharedStore.Close()
	sharedStore = nil
	return err
}
