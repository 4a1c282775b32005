// internal/db/store.go
package db

import (
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"podium/internal/debate"
)

type Store struct {
	db *sql.DB
}

// Summary is the archive listing row for a completed debate.
type Summary struct {
	ID           string
	Topic        string
	Participants string // comma-joined
	Format       string
	Turns        int
	FactChecks   int
	CreatedAt    time.Time
}

// Open opens (or creates) the archive database under dataDir.
func Open(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dataDir, "debates.db")
	conn, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, err
	}

	store := &Store{db: conn}
	if err := store.migrate(); err != nil {
		conn.Close()
		return nil, err
	}
	return store, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS debates (
		id TEXT PRIMARY KEY,
		topic TEXT NOT NULL,
		participants TEXT NOT NULL,
		format TEXT NOT NULL,
		turns INTEGER NOT NULL,
		fact_checks INTEGER NOT NULL,
		record TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_debates_topic ON debates(topic);
	CREATE INDEX IF NOT EXISTS idx_debates_created ON debates(created_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRecord archives a completed debate. The full record is stored as
// JSON; the metadata columns exist for listing and search.
func (s *Store) SaveRecord(rec *debate.Record, format string) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(
		`INSERT INTO debates (id, topic, participants, format, turns, fact_checks, record, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Topic, strings.Join(rec.Participants, ","), format,
		len(rec.TurnHistory), len(rec.FactChecks), string(payload), rec.CreatedAt,
	)
	return err
}

// GetRecord retrieves an archived debate by ID.
func (s *Store) GetRecord(id string) (*debate.Record, error) {
	row := s.db.QueryRow(`SELECT record FROM debates WHERE id = ?`, id)

	var payload string
	if err := row.Scan(&payload); err != nil {
		return nil, err
	}
	var rec debate.Record
	if err := json.Unmarshal([]byte(payload), &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// ListDebates returns archive summaries, newest first.
func (s *Store) ListDebates(limit int) ([]Summary, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT id, topic, participants, format, turns, fact_checks, created_at
		 FROM debates ORDER BY created_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var d Summary
		if err := rows.Scan(&d.ID, &d.Topic, &d.Participants, &d.Format, &d.Turns, &d.FactChecks, &d.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// DeleteRecord removes an archived debate.
func (s *Store) DeleteRecord(id string) error {
	_, err := s.db.Exec(`DELETE FROM debates WHERE id = ?`, id)
	return err
}
