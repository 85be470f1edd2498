//
// Copyright (C) 2024 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

// Package taglog persists decoded tag observations to a SQLite database
// so inventory runs survive process restarts. It stores one row per
// sighting, not a deduplicated inventory; consumers can aggregate.
package taglog

import (
	"context"
	"database/sql"
	"encoding/hex"
	"time"

	"github.com/pkg/errors"

	_ "modernc.org/sqlite" // SQLite driver

	"github.impcloud.net/RSP-Inventory-Suite/llrp-client/internal/llrp"
)

const schema = `
CREATE TABLE IF NOT EXISTS tag_reports (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	reader     TEXT    NOT NULL,
	epc        TEXT    NOT NULL,
	antenna_id INTEGER,
	rssi       REAL,
	seen_count INTEGER,
	seen_at    INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_tag_reports_epc ON tag_reports(epc);
CREATE INDEX IF NOT EXISTS idx_tag_reports_seen_at ON tag_reports(seen_at);
`

// Entry is one persisted tag sighting.
// Optional report fields are nil when the Reader didn't include them.
type Entry struct {
	ID        int64
	Reader    string
	EPC       string
	AntennaID *uint16
	RSSI      *float64
	SeenCount *uint16
	SeenAt    time.Time
}

// Log is a tag-report sink backed by a single SQLite file.
// Methods are safe for concurrent use.
type Log struct {
	db *sql.DB
}

// Open creates or opens the database at path and ensures the schema exists.
func Open(path string) (*Log, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open tag database %q", path)
	}

	// modernc's sqlite permits a single writer; serializing connections
	// here avoids SQLITE_BUSY instead of retrying on it.
	db.SetMaxOpenConns(1)

	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Wrapf(err, "failed to ping tag database %q", path)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, errors.Wrapf(err, "failed to set WAL mode on %q", path)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, errors.Wrapf(err, "failed to create schema in %q", path)
	}

	return &Log{db: db}, nil
}

// Close releases the database. Safe to call more than once.
func (l *Log) Close() error {
	if l.db == nil {
		return nil
	}
	err := l.db.Close()
	l.db = nil
	return errors.Wrap(err, "failed to close tag database")
}

// Record inserts one row per tag in the report, all in one transaction.
func (l *Log) Record(ctx context.Context, reader string, tags []llrp.TagReportData) error {
	if len(tags) == 0 {
		return nil
	}

	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin tag insert")
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO tag_reports
		(reader, epc, antenna_id, rssi, seen_count, seen_at)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		_ = tx.Rollback()
		return errors.Wrap(err, "failed to prepare tag insert")
	}
	defer stmt.Close()

	now := time.Now().UnixMicro()
	for i := range tags {
		var antenna, seen interface{}
		var rssi interface{}
		if tags[i].AntennaID != nil {
			antenna = int64(*tags[i].AntennaID)
		}
		if r, ok := tags[i].ExtractRSSI(); ok {
			rssi = r
		}
		if tags[i].TagSeenCount != nil {
			seen = int64(*tags[i].TagSeenCount)
		}

		seenAt := now
		if tags[i].LastSeenUTC != nil {
			seenAt = int64(*tags[i].LastSeenUTC)
		}

		if _, err := stmt.ExecContext(ctx, reader,
			hex.EncodeToString(tags[i].EPC()),
			antenna, rssi, seen, seenAt); err != nil {
			_ = tx.Rollback()
			return errors.Wrap(err, "failed to insert tag report")
		}
	}

	return errors.Wrap(tx.Commit(), "failed to commit tag insert")
}

// Recent returns up to limit sightings, newest first.
func (l *Log) Recent(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := l.db.QueryContext(ctx, `SELECT
		id, reader, epc, antenna_id, rssi, seen_count, seen_at
		FROM tag_reports ORDER BY seen_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query recent tags")
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var antenna, seen sql.NullInt64
		var rssi sql.NullFloat64
		var seenAt int64
		if err := rows.Scan(&e.ID, &e.Reader, &e.EPC,
			&antenna, &rssi, &seen, &seenAt); err != nil {
			return nil, errors.Wrap(err, "failed to scan tag row")
		}
		if antenna.Valid {
			v := uint16(antenna.Int64)
			e.AntennaID = &v
		}
		if rssi.Valid {
			v := rssi.Float64
			e.RSSI = &v
		}
		if seen.Valid {
			v := uint16(seen.Int64)
			e.SeenCount = &v
		}
		e.SeenAt = time.UnixMicro(seenAt).UTC()
		entries = append(entries, e)
	}
	return entries, errors.Wrap(rows.Err(), "failed to read tag rows")
}

// Count returns the total number of persisted sightings.
func (l *Log) Count(ctx context.Context) (int64, error) {
	var n int64
	err := l.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tag_reports`).Scan(&n)
	return n, errors.Wrap(err, "failed to count tag reports")
}

// UniqueEPCs returns the distinct EPCs seen, with sighting counts,
// most frequently seen first.
func (l *Log) UniqueEPCs(ctx context.Context) (map[string]int64, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT epc, COUNT(*) FROM tag_reports GROUP BY epc`)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query unique EPCs")
	}
	defer rows.Close()

	epcs := map[string]int64{}
	for rows.Next() {
		var epc string
		var n int64
		if err := rows.Scan(&epc, &n); err != nil {
			return nil, errors.Wrap(err, "failed to scan EPC row")
		}
		epcs[epc] = n
	}
	return epcs, errors.Wrap(rows.Err(), "failed to read EPC rows")
}
