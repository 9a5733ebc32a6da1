package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"tripsee/internal/model"
)

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

func insertTripWithID(ctx context.Context, ex execer, t model.Trip) error {
	query := `
		INSERT INTO trips (id, name, dest_id, dest_name, dest_address, dest_country, latitude, longitude, place_id, start_date, end_date, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	createdAt := time.Now().UTC().Format(time.RFC3339)
	if !t.CreatedAt.IsZero() {
		createdAt = t.CreatedAt.UTC().Format(time.RFC3339)
	}

	args := append([]interface{}{t.ID, t.Name}, destinationArgs(t.Destination)...)
	args = append(args, nullString(t.StartDate), nullString(t.EndDate), nullString(t.Notes), createdAt)

	if _, err := ex.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert trip with id: %w", err)
	}
	return nil
}

// InsertTripWithID re-creates a trip under its original ID.
func InsertTripWithID(ctx context.Context, db *sql.DB, t model.Trip) error {
	return insertTripWithID(ctx, db, t)
}

// RestoreTrip re-creates a deleted trip together with its items.
func RestoreTrip(ctx context.Context, db *sql.DB, t model.Trip, items []model.ItineraryItem) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insertTripWithID(ctx, tx, t); err != nil {
		return err
	}

	for _, it := range items {
		it.TripID = t.ID
		if err := insertItemRow(ctx, tx, it); err != nil {
			return fmt.Errorf("failed to restore itinerary item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
