package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
    id            INTEGER PRIMARY KEY,
    name          TEXT NOT NULL,
    email         TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    created_at    TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now'))
);

CREATE TABLE IF NOT EXISTS trips (
    id             INTEGER PRIMARY KEY,
    name           TEXT NOT NULL,
    dest_id        TEXT,
    dest_name      TEXT,
    dest_address   TEXT,
    dest_country   TEXT,
    latitude       REAL,
    longitude      REAL,
    place_id       TEXT,
    start_date     TEXT,
    end_date       TEXT,
    notes          TEXT,
    created_at     TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now')),
    CHECK(start_date IS NULL OR end_date IS NULL OR start_date <= end_date)
);

CREATE TABLE IF NOT EXISTS itinerary_items (
    id          TEXT PRIMARY KEY,
    trip_id     INTEGER NOT NULL REFERENCES trips(id),
    type        TEXT NOT NULL CHECK(type IN ('flight','train','cab','hotel','base','place','others')),
    name        TEXT NOT NULL,
    location    TEXT,
    details     TEXT,
    duration    TEXT,
    cost        TEXT,
    status      TEXT NOT NULL DEFAULT 'pending' CHECK(status IN ('confirmed','pending','cancelled')),
    time        TEXT,
    start_date  TEXT,
    start_time  TEXT,
    end_date    TEXT,
    end_time    TEXT,
    fields      TEXT,
    position    INTEGER NOT NULL DEFAULT 0,
    created_at  TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now'))
);

CREATE INDEX IF NOT EXISTS idx_trips_start_date ON trips(start_date DESC);
CREATE INDEX IF NOT EXISTS idx_items_trip_id ON itinerary_items(trip_id, position);
`

// Open opens or creates the SQLite database and initializes the schema.
func Open(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return db, nil
}

func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
