package internal

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/xid"
)

type Status string

const (
	StatusSuccess Status = "SUCCESS"
	StatusFailed  Status = "FAILED"
)

// HistoryEntry is one compilation attempt.
type HistoryEntry struct {
	ID           string
	Time         time.Time
	Status       Status
	Source       string
	Instructions int
	Error        string
}

func newEntry(source string) HistoryEntry {
	return HistoryEntry{ID: xid.New().String(), Time: time.Now(), Source: source}
}

// HistoryStore keeps the compilation attempts in insertion order.
type HistoryStore interface {
	Append(ctx context.Context, entry HistoryEntry) error
	List(ctx context.Context) ([]HistoryEntry, error)
	Close() error
}

type MemoryHistory struct {
	entries []HistoryEntry
}

func NewMemoryHistory() *MemoryHistory {
	return &MemoryHistory{}
}

func (h *MemoryHistory) Append(ctx context.Context, entry HistoryEntry) error {
	h.entries = append(h.entries, entry)
	return nil
}

func (h *MemoryHistory) List(ctx context.Context) ([]HistoryEntry, error) {
	ret := make([]HistoryEntry, len(h.entries))
	copy(ret, h.entries)
	return ret, nil
}

func (h *MemoryHistory) Close() error {
	return nil
}

const createHistoryTable = `CREATE TABLE IF NOT EXISTS history (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	id TEXT NOT NULL UNIQUE,
	created_at INTEGER NOT NULL,
	status TEXT NOT NULL,
	source TEXT NOT NULL,
	instructions INTEGER NOT NULL,
	error TEXT NOT NULL
)`

// SQLiteHistory stores the history in a sqlite database, dsn is a file path or ":memory:".
type SQLiteHistory struct {
	db *sql.DB
}

func NewSQLiteHistory(ctx context.Context, dsn string) (*SQLiteHistory, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	// Every connection to ":memory:" is a different database.
	db.SetMaxOpenConns(1)
	_, err = db.ExecContext(ctx, createHistoryTable)
	if err != nil {
		db.Close()
		return nil, err
	}
	return &SQLiteHistory{db: db}, nil
}

func (h *SQLiteHistory) Append(ctx context.Context, entry HistoryEntry) error {
	_, err := h.db.ExecContext(ctx,
		`INSERT INTO history (id, created_at, status, source, instructions, error) VALUES (?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.Time.UnixNano(), string(entry.Status), entry.Source, entry.Instructions, entry.Error)
	return err
}

func (h *SQLiteHistory) List(ctx context.Context) ([]HistoryEntry, error) {
	rows, err := h.db.QueryContext(ctx,
		`SELECT id, created_at, status, source, instructions, error FROM history ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var entries []HistoryEntry
	for rows.Next() {
		var entry HistoryEntry
		var createdAt int64
		var status string
		err = rows.Scan(&entry.ID, &createdAt, &status, &entry.Source, &entry.Instructions, &entry.Error)
		if err != nil {
			return nil, err
		}
		entry.Time = time.Unix(0, createdAt)
		entry.Status = Status(status)
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (h *SQLiteHistory) Close() error {
	return h.db.Close()
}
