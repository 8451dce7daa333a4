package store

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// SQLiteRegistry keeps subscribers in a SQLite database so subscriptions
// survive restarts.
type SQLiteRegistry struct {
	db  *sql.DB
	mu  sync.Mutex
	log zerolog.Logger
}

// NewSQLiteRegistry opens (or creates) the database and runs migrations.
func NewSQLiteRegistry(dbPath string, log zerolog.Logger) (*SQLiteRegistry, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so long-polling reads never block subscription writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRegistry{db: db, log: log.With().Str("component", "store").Logger()}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	r.log.Info().Str("path", dbPath).Msg("subscriber registry opened")
	return r, nil
}

func (r *SQLiteRegistry) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS subscribers (
			chat_id    INTEGER PRIMARY KEY,
			created_at INTEGER NOT NULL
		)`,
	}
	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRegistry) Add(chatID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT OR IGNORE INTO subscribers (chat_id, created_at) VALUES (?, ?)`,
		chatID, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("add subscriber: %w", err)
	}
	return nil
}

func (r *SQLiteRegistry) Remove(chatID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`DELETE FROM subscribers WHERE chat_id = ?`, chatID)
	if err != nil {
		return fmt.Errorf("remove subscriber: %w", err)
	}
	return nil
}

func (r *SQLiteRegistry) All() ([]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.Query(`SELECT chat_id FROM subscribers ORDER BY chat_id`)
	if err != nil {
		return nil, fmt.Errorf("list subscribers: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan subscriber: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *SQLiteRegistry) Close() error {
	r.log.Info().Msg("closing subscriber registry")
	return r.db.Close()
}
