package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"tripsee/internal/domain"
	"tripsee/internal/model"
)

const tripColumns = `id, name, dest_id, dest_name, dest_address, dest_country, latitude, longitude,
	place_id, start_date, end_date, notes, created_at`

// ListTrips retrieves all trips with item counts, optionally filtered by name,
// destination or country.
func ListTrips(ctx context.Context, db *sql.DB, filter string) ([]model.TripRow, error) {
	query := `
		SELECT
			t.id,
			t.name,
			COALESCE(t.dest_name, ''),
			COALESCE(t.dest_country, ''),
			COALESCE(t.start_date, ''),
			COALESCE(t.end_date, ''),
			COUNT(i.id),
			COALESCE(SUM(CASE WHEN i.status = 'confirmed' THEN 1 ELSE 0 END), 0)
		FROM trips t
		LEFT JOIN itinerary_items i ON i.trip_id = t.id
		WHERE (? = '' OR t.name LIKE '%' || ? || '%' OR t.dest_name LIKE '%' || ? || '%' OR t.dest_country LIKE '%' || ? || '%')
		GROUP BY t.id
		ORDER BY t.start_date DESC, t.id DESC
	`

	rows, err := db.QueryContext(ctx, query, filter, filter, filter, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list trips: %w", err)
	}
	defer rows.Close()

	var results []model.TripRow
	for rows.Next() {
		var r model.TripRow
		if err := rows.Scan(&r.ID, &r.Name, &r.Destination, &r.Country, &r.StartDate, &r.EndDate, &r.ItemCount, &r.Confirmed); err != nil {
			return nil, fmt.Errorf("failed to scan trip row: %w", err)
		}
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trip rows: %w", err)
	}

	return results, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTrip(row rowScanner) (model.Trip, error) {
	var t model.Trip
	var destID, destName, destAddress, destCountry, placeID sql.NullString
	var lat, lng sql.NullFloat64
	var startDate, endDate, notes sql.NullString
	var createdAt string

	if err := row.Scan(&t.ID, &t.Name, &destID, &destName, &destAddress, &destCountry, &lat, &lng,
		&placeID, &startDate, &endDate, &notes, &createdAt); err != nil {
		return model.Trip{}, err
	}

	t.Destination = model.Destination{
		ID:      destID.String,
		Name:    destName.String,
		Address: destAddress.String,
		Country: destCountry.String,
		Coordinates: model.Coordinates{
			Lat: lat.Float64,
			Lng: lng.Float64,
		},
		PlaceID: placeID.String,
	}
	t.StartDate = startDate.String
	t.EndDate = endDate.String
	t.Notes = notes.String
	if ts, err := time.Parse(time.RFC3339, createdAt); err == nil {
		t.CreatedAt = ts
	}
	return t, nil
}

// GetTrip retrieves a single trip by ID.
func GetTrip(ctx context.Context, db *sql.DB, id int64) (model.Trip, error) {
	row := db.QueryRowContext(ctx, `SELECT `+tripColumns+` FROM trips WHERE id = ?`, id)
	t, err := scanTrip(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Trip{}, domain.NotFoundError{Resource: "trip", ID: strconv.FormatInt(id, 10), Err: err}
	}
	if err != nil {
		return model.Trip{}, fmt.Errorf("failed to get trip: %w", err)
	}
	return t, nil
}

// GetTripDetail retrieves a trip with its itinerary items in list order.
func GetTripDetail(ctx context.Context, db *sql.DB, id int64) (model.TripDetail, error) {
	trip, err := GetTrip(ctx, db, id)
	if err != nil {
		return model.TripDetail{}, err
	}
	items, err := ListItems(ctx, db, id)
	if err != nil {
		return model.TripDetail{}, err
	}
	return model.TripDetail{Trip: trip, Items: items}, nil
}

func destinationArgs(d model.Destination) []interface{} {
	var lat, lng interface{}
	if d.Name != "" {
		lat = d.Coordinates.Lat
		lng = d.Coordinates.Lng
	}
	return []interface{}{
		nullString(d.ID), nullString(d.Name), nullString(d.Address), nullString(d.Country),
		lat, lng, nullString(d.PlaceID),
	}
}

// InsertTrip creates a new trip.
func InsertTrip(ctx context.Context, db *sql.DB, t model.NewTrip) (int64, error) {
	query := `
		INSERT INTO trips (name, dest_id, dest_name, dest_address, dest_country, latitude, longitude, place_id, start_date, end_date, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	args := append([]interface{}{t.Name}, destinationArgs(t.Destination)...)
	args = append(args, nullString(t.StartDate), nullString(t.EndDate), nullString(t.Notes))

	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to insert trip: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert id: %w", err)
	}

	return id, nil
}

// UpdateTrip updates an existing trip.
func UpdateTrip(ctx context.Context, db *sql.DB, t model.UpdateTrip) error {
	query := `
		UPDATE trips
		SET name = ?, dest_id = ?, dest_name = ?, dest_address = ?, dest_country = ?, latitude = ?, longitude = ?,
			place_id = ?, start_date = ?, end_date = ?, notes = ?
		WHERE id = ?
	`

	args := append([]interface{}{t.Name}, destinationArgs(t.Destination)...)
	args = append(args, nullString(t.StartDate), nullString(t.EndDate), nullString(t.Notes), t.ID)

	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to update trip: %w", err)
	}

	return nil
}

// DeleteTrip deletes a trip and its itinerary items.
func DeleteTrip(ctx context.Context, db *sql.DB, id int64) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM itinerary_items WHERE trip_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete itinerary items: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM trips WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete trip: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
