package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"tripsee/internal/domain"
	"tripsee/internal/model"
)

const itemColumns = `id, trip_id, type, name, location, details, duration, cost, status, time,
	start_date, start_time, end_date, end_time, fields, position, created_at`

func scanItem(row rowScanner) (model.ItineraryItem, error) {
	var it model.ItineraryItem
	var itemType, status string
	var location, details, duration, cost, clock sql.NullString
	var startDate, startTime, endDate, endTime, fields sql.NullString
	var createdAt string

	if err := row.Scan(&it.ID, &it.TripID, &itemType, &it.Name, &location, &details, &duration, &cost, &status, &clock,
		&startDate, &startTime, &endDate, &endTime, &fields, &it.Position, &createdAt); err != nil {
		return model.ItineraryItem{}, err
	}

	it.Type = model.ItemType(itemType)
	it.Status = model.ItemStatus(status)
	it.Location = location.String
	it.Details = details.String
	it.Duration = duration.String
	it.Cost = cost.String
	it.Time = clock.String
	it.StartDate = startDate.String
	it.StartTime = startTime.String
	it.EndDate = endDate.String
	it.EndTime = endTime.String
	if fields.Valid && fields.String != "" {
		if err := json.Unmarshal([]byte(fields.String), &it.Fields); err != nil {
			return model.ItineraryItem{}, fmt.Errorf("failed to decode item fields: %w", err)
		}
	}
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		it.CreatedAt = t
	}
	return it, nil
}

func encodeFields(fields map[string]string) (interface{}, error) {
	if len(fields) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to encode item fields: %w", err)
	}
	return string(b), nil
}

// ListItems retrieves a trip's itinerary items in list order.
func ListItems(ctx context.Context, db *sql.DB, tripID int64) ([]model.ItineraryItem, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT `+itemColumns+`
		FROM itinerary_items
		WHERE trip_id = ?
		ORDER BY position, created_at
	`, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to list itinerary items: %w", err)
	}
	defer rows.Close()

	var items []model.ItineraryItem
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan itinerary item: %w", err)
		}
		items = append(items, it)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating itinerary items: %w", err)
	}

	return items, nil
}

// GetItem retrieves a single itinerary item by ID.
func GetItem(ctx context.Context, db *sql.DB, id string) (model.ItineraryItem, error) {
	row := db.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM itinerary_items WHERE id = ?`, id)
	it, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.ItineraryItem{}, domain.NotFoundError{Resource: "itinerary item", ID: id, Err: err}
	}
	if err != nil {
		return model.ItineraryItem{}, fmt.Errorf("failed to get itinerary item: %w", err)
	}
	return it, nil
}

// InsertItem stores a new itinerary item. A zero Position appends it after the
// trip's existing items. The stored item is returned.
func InsertItem(ctx context.Context, db *sql.DB, it model.ItineraryItem) (model.ItineraryItem, error) {
	if it.Position == 0 {
		var next int
		err := db.QueryRowContext(ctx,
			`SELECT COALESCE(MAX(position), 0) + 1 FROM itinerary_items WHERE trip_id = ?`, it.TripID,
		).Scan(&next)
		if err != nil {
			return model.ItineraryItem{}, fmt.Errorf("failed to get next item position: %w", err)
		}
		it.Position = next
	}
	if it.Status == "" {
		it.Status = model.StatusPending
	}
	if it.CreatedAt.IsZero() {
		it.CreatedAt = time.Now().UTC()
	}

	if err := insertItemRow(ctx, db, it); err != nil {
		return model.ItineraryItem{}, err
	}
	return it, nil
}

func insertItemRow(ctx context.Context, ex execer, it model.ItineraryItem) error {
	fields, err := encodeFields(it.Fields)
	if err != nil {
		return err
	}
	createdAt := time.Now().UTC()
	if !it.CreatedAt.IsZero() {
		createdAt = it.CreatedAt.UTC()
	}
	status := it.Status
	if status == "" {
		status = model.StatusPending
	}

	query := `
		INSERT INTO itinerary_items (id, trip_id, type, name, location, details, duration, cost, status, time,
			start_date, start_time, end_date, end_time, fields, position, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = ex.ExecContext(ctx, query,
		it.ID, it.TripID, string(it.Type), it.Name,
		nullString(it.Location), nullString(it.Details), nullString(it.Duration), nullString(it.Cost),
		string(status), nullString(it.Time),
		nullString(it.StartDate), nullString(it.StartTime), nullString(it.EndDate), nullString(it.EndTime),
		fields, it.Position, createdAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert itinerary item: %w", err)
	}
	return nil
}

// UpdateItem rewrites an item's fields. Type, trip and position are fixed.
func UpdateItem(ctx context.Context, db *sql.DB, it model.ItineraryItem) error {
	fields, err := encodeFields(it.Fields)
	if err != nil {
		return err
	}

	query := `
		UPDATE itinerary_items
		SET name = ?, location = ?, details = ?, duration = ?, cost = ?, status = ?, time = ?,
			start_date = ?, start_time = ?, end_date = ?, end_time = ?, fields = ?
		WHERE id = ?
	`
	result, err := db.ExecContext(ctx, query,
		it.Name, nullString(it.Location), nullString(it.Details), nullString(it.Duration), nullString(it.Cost),
		string(it.Status), nullString(it.Time),
		nullString(it.StartDate), nullString(it.StartTime), nullString(it.EndDate), nullString(it.EndTime),
		fields, it.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update itinerary item: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return domain.NotFoundError{Resource: "itinerary item", ID: it.ID}
	}
	return nil
}

// DeleteItem deletes an itinerary item.
func DeleteItem(ctx context.Context, db *sql.DB, id string) error {
	if _, err := db.ExecContext(ctx, "DELETE FROM itinerary_items WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete itinerary item: %w", err)
	}
	return nil
}
