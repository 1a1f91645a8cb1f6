// Copyright © 2026 neovim-mac contributors
// SPDX-License-Identifier: MIT
//
// File: replay/store.go
// Summary: SQLite-backed store of redraw event batches for deterministic
//          session replay.
// Usage: The embedding binary records incoming batches as they arrive and
//        replays them later without a live editor process.

package replay

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/notbaab/neovim-mac/msg"
)

const schema = `
CREATE TABLE IF NOT EXISTS batches (
	id     INTEGER PRIMARY KEY AUTOINCREMENT,
	at_ns  INTEGER NOT NULL,
	events TEXT    NOT NULL
);
`

// Store records redraw batches in arrival order. Batches are stored as
// JSON, which survives the loosely-typed event values unchanged apart from
// numbers widening to float64 on the way back out; the msg accessors take
// integral floats for exactly this reason.
type Store struct {
	db *sql.DB
}

// Open opens or creates a trace store at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("replay: open %s: %w", path, err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("replay: create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Append records one redraw batch with the current timestamp.
func (s *Store) Append(batch []msg.Value) error {
	events, err := json.Marshal(batch)
	if err != nil {
		return fmt.Errorf("replay: encode batch: %w", err)
	}

	_, err = s.db.Exec("INSERT INTO batches (at_ns, events) VALUES (?, ?)",
		time.Now().UnixNano(), string(events))
	if err != nil {
		return fmt.Errorf("replay: append batch: %w", err)
	}
	return nil
}

// Count returns the number of recorded batches.
func (s *Store) Count() (int64, error) {
	var n int64
	if err := s.db.QueryRow("SELECT COUNT(*) FROM batches").Scan(&n); err != nil {
		return 0, fmt.Errorf("replay: count batches: %w", err)
	}
	return n, nil
}

// Replay invokes fn for every recorded batch in arrival order, together
// with the batch's recording time. Replay stops on the first error fn
// returns.
func (s *Store) Replay(fn func(at time.Time, batch []msg.Value) error) error {
	rows, err := s.db.Query("SELECT at_ns, events FROM batches ORDER BY id")
	if err != nil {
		return fmt.Errorf("replay: query batches: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var atNS int64
		var events string
		if err := rows.Scan(&atNS, &events); err != nil {
			return fmt.Errorf("replay: scan batch: %w", err)
		}

		var batch []msg.Value
		if err := json.Unmarshal([]byte(events), &batch); err != nil {
			return fmt.Errorf("replay: decode batch: %w", err)
		}

		if err := fn(time.Unix(0, atNS), batch); err != nil {
			return err
		}
	}
	return rows.Err()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
