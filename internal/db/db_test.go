package db

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"tripsee/internal/domain"
	"tripsee/internal/model"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "tripsee.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func paris() model.Destination {
	return model.Destination{
		ID: "dst-paris", Name: "Paris", Address: "Île-de-France", Country: "France",
		Coordinates: model.Coordinates{Lat: 48.8566, Lng: 2.3522}, PlaceID: "abc",
	}
}

func seedTrip(t *testing.T, db *sql.DB) int64 {
	t.Helper()
	id, err := InsertTrip(context.Background(), db, model.NewTrip{
		Name: "Spring in Paris", Destination: paris(), StartDate: "2024-03-01", EndDate: "2024-03-04",
	})
	if err != nil {
		t.Fatalf("InsertTrip: %v", err)
	}
	return id
}

func TestTripRoundTrip(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	id := seedTrip(t, db)

	trip, err := GetTrip(ctx, db, id)
	if err != nil {
		t.Fatalf("GetTrip: %v", err)
	}
	if trip.Name != "Spring in Paris" || trip.Destination != paris() || trip.StartDate != "2024-03-01" {
		t.Fatalf("unexpected trip %+v", trip)
	}
	if trip.CreatedAt.IsZero() {
		t.Fatalf("created_at not parsed")
	}

	err = UpdateTrip(ctx, db, model.UpdateTrip{ID: id, Name: "Paris", StartDate: "2024-03-02", EndDate: "2024-03-04", Notes: "pack light"})
	if err != nil {
		t.Fatalf("UpdateTrip: %v", err)
	}
	trip, _ = GetTrip(ctx, db, id)
	if trip.Notes != "pack light" || trip.Destination.Name != "" || trip.Destination.Coordinates.Lat != 0 {
		t.Fatalf("update not applied: %+v", trip)
	}

	if _, err := GetTrip(ctx, db, 999); !domain.IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestTripDatesChecked(t *testing.T) {
	db := openTestDB(t)
	_, err := InsertTrip(context.Background(), db, model.NewTrip{Name: "Backwards", StartDate: "2024-03-04", EndDate: "2024-03-01"})
	if err == nil {
		t.Fatalf("expected constraint failure for reversed dates")
	}
}

func TestItemRoundTripWithFields(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	tripID := seedTrip(t, db)

	flight := model.ItineraryItem{
		ID: "item-1", TripID: tripID, Type: model.ItemFlight, Name: "Paris to Rome",
		StartDate: "2024-03-03", StartTime: "22:00", EndDate: "2024-03-04", EndTime: "01:00",
		Duration: "3 Hours", Status: model.StatusConfirmed, Cost: "$120",
		Fields: map[string]string{"flightNumber": "AF1234", "departureAirport": "CDG"},
	}
	stored, err := InsertItem(ctx, db, flight)
	if err != nil {
		t.Fatalf("InsertItem: %v", err)
	}
	if stored.Position != 1 {
		t.Fatalf("position = %d, want 1", stored.Position)
	}
	second, err := InsertItem(ctx, db, model.ItineraryItem{ID: "item-2", TripID: tripID, Type: model.ItemPlace, Name: "Louvre"})
	if err != nil {
		t.Fatalf("InsertItem: %v", err)
	}
	if second.Position != 2 || second.Status != model.StatusPending {
		t.Fatalf("unexpected second item %+v", second)
	}

	got, err := GetItem(ctx, db, "item-1")
	if err != nil {
		t.Fatalf("GetItem: %v", err)
	}
	if got.Field("flightNumber") != "AF1234" || got.Field("departureAirport") != "CDG" {
		t.Fatalf("fields lost: %+v", got.Fields)
	}
	if got.Duration != "3 Hours" || got.EndTime != "01:00" || got.Type != model.ItemFlight {
		t.Fatalf("unexpected item %+v", got)
	}

	got.Name = "Paris to Milan"
	got.Fields = nil
	if err := UpdateItem(ctx, db, got); err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}
	detail, err := GetTripDetail(ctx, db, tripID)
	if err != nil {
		t.Fatalf("GetTripDetail: %v", err)
	}
	if len(detail.Items) != 2 || detail.Items[0].Name != "Paris to Milan" || detail.Items[0].Fields != nil {
		t.Fatalf("unexpected detail %+v", detail.Items)
	}

	if err := UpdateItem(ctx, db, model.ItineraryItem{ID: "missing", Name: "x", Status: model.StatusPending}); !domain.IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}

	if err := DeleteItem(ctx, db, "item-2"); err != nil {
		t.Fatalf("DeleteItem: %v", err)
	}
	if _, err := GetItem(ctx, db, "item-2"); !domain.IsNotFound(err) {
		t.Fatalf("expected deleted item to be gone, got %v", err)
	}
}

func TestListTripsCounts(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	tripID := seedTrip(t, db)
	if _, err := InsertTrip(ctx, db, model.NewTrip{Name: "Tokyo", StartDate: "2024-05-01", EndDate: "2024-05-02"}); err != nil {
		t.Fatalf("InsertTrip: %v", err)
	}
	for i, status := range []model.ItemStatus{model.StatusConfirmed, model.StatusPending, model.StatusConfirmed} {
		_, err := InsertItem(ctx, db, model.ItineraryItem{
			ID: "i" + string(rune('a'+i)), TripID: tripID, Type: model.ItemPlace, Name: "p", Status: status,
		})
		if err != nil {
			t.Fatalf("InsertItem: %v", err)
		}
	}

	rows, err := ListTrips(ctx, db, "")
	if err != nil {
		t.Fatalf("ListTrips: %v", err)
	}
	if len(rows) != 2 || rows[0].Name != "Tokyo" {
		t.Fatalf("unexpected rows %+v", rows)
	}
	if rows[1].ItemCount != 3 || rows[1].Confirmed != 2 || rows[1].Country != "France" {
		t.Fatalf("unexpected counts %+v", rows[1])
	}

	rows, err = ListTrips(ctx, db, "fran")
	if err != nil || len(rows) != 1 || rows[0].ID != tripID {
		t.Fatalf("filter by country = %+v, %v", rows, err)
	}
}

func TestDeleteAndRestoreTrip(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	tripID := seedTrip(t, db)
	_, err := InsertItem(ctx, db, model.ItineraryItem{
		ID: "stay", TripID: tripID, Type: model.ItemHotel, Name: "Lutetia",
		StartDate: "2024-03-01", EndDate: "2024-03-04", Fields: map[string]string{"roomType": "Double"},
	})
	if err != nil {
		t.Fatalf("InsertItem: %v", err)
	}
	detail, _ := GetTripDetail(ctx, db, tripID)

	if err := DeleteTrip(ctx, db, tripID); err != nil {
		t.Fatalf("DeleteTrip: %v", err)
	}
	if items, _ := ListItems(ctx, db, tripID); len(items) != 0 {
		t.Fatalf("items survived trip deletion: %+v", items)
	}

	if err := RestoreTrip(ctx, db, detail.Trip, detail.Items); err != nil {
		t.Fatalf("RestoreTrip: %v", err)
	}
	restored, err := GetTripDetail(ctx, db, tripID)
	if err != nil {
		t.Fatalf("GetTripDetail: %v", err)
	}
	if restored.Trip.Name != detail.Trip.Name || len(restored.Items) != 1 || restored.Items[0].Field("roomType") != "Double" {
		t.Fatalf("restore incomplete: %+v", restored)
	}
}

func TestUsers(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	store := UserStore{DB: db}

	if _, err := store.UserByEmail(ctx, "ada@example.com"); !domain.IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	id, err := store.InsertUser(ctx, model.User{Name: "Ada", Email: "ada@example.com", PasswordHash: "hash"})
	if err != nil {
		t.Fatalf("InsertUser: %v", err)
	}
	u, err := store.UserByEmail(ctx, "ada@example.com")
	if err != nil || u.ID != id || u.PasswordHash != "hash" {
		t.Fatalf("UserByEmail = %+v, %v", u, err)
	}
	if _, err := store.InsertUser(ctx, model.User{Name: "Ada", Email: "ada@example.com", PasswordHash: "x"}); err == nil {
		t.Fatalf("duplicate email accepted")
	}
	if n, err := CountUsers(ctx, db); err != nil || n != 1 {
		t.Fatalf("CountUsers = %d, %v", n, err)
	}
}

func TestListTrips_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM trips t").WillReturnError(errors.New("database is locked"))

	_, err = ListTrips(context.Background(), db, "")
	if err == nil || !strings.Contains(err.Error(), "failed to list trips") {
		t.Fatalf("expected wrapped error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDeleteTrip_RollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM itinerary_items").WithArgs(int64(7)).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("DELETE FROM trips").WithArgs(int64(7)).WillReturnError(errors.New("disk I/O error"))
	mock.ExpectRollback()

	err = DeleteTrip(context.Background(), db, 7)
	if err == nil || !strings.Contains(err.Error(), "failed to delete trip") {
		t.Fatalf("expected wrapped error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestInsertItem_PositionError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT COALESCE\\(MAX\\(position\\)").WithArgs(int64(3)).WillReturnError(sql.ErrConnDone)

	_, err = InsertItem(context.Background(), db, model.ItineraryItem{ID: "x", TripID: 3, Type: model.ItemPlace, Name: "p"})
	if !errors.Is(err, sql.ErrConnDone) {
		t.Fatalf("expected ErrConnDone, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
