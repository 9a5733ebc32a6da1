package ui

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"tripsee/internal/db"
	"tripsee/internal/domain"
	"tripsee/internal/model"
	"tripsee/internal/search"
)

func newTestApp(t *testing.T) (Model, string) {
	t.Helper()
	database := openTestDB(t)
	exports := t.TempDir()
	m := New(database, search.NewStaticCatalog(0, testDestinations...), exports)
	m = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	return m, exports
}

// send delivers msg and runs any single follow-up command to completion.
// Batched commands are left alone.
func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, cmd := m.Update(msg)
	m = next.(Model)
	if cmd == nil {
		return m
	}
	out := cmd()
	if _, batched := out.(tea.BatchMsg); batched || out == nil {
		return m
	}
	if _, quit := out.(tea.QuitMsg); quit {
		return m
	}
	return send(t, m, out)
}

func loadTrips(t *testing.T, m Model) Model {
	t.Helper()
	return send(t, m, m.Init()())
}

func TestApp_OpensItineraryAndDeletesWithUndo(t *testing.T) {
	m, _ := newTestApp(t)
	tripID := seedTrip(t, m.db)
	seedItem(t, m.db, tripID, model.ItineraryItem{
		ID: "stay", Type: model.ItemHotel, Name: "Hotel Lutetia",
		StartDate: "2024-03-01", EndDate: "2024-03-03",
	})

	m = loadTrips(t, m)
	m = send(t, m, keyPress("enter"))
	if m.screen != model.ScreenItinerary || m.itinerary == nil {
		t.Fatalf("expected itinerary screen, got %v", m.screen)
	}
	if !strings.Contains(m.View(), "Hotel Lutetia") {
		t.Fatalf("itinerary view missing item:\n%s", m.View())
	}

	m = send(t, m, keyPress("d"))
	if _, err := db.GetItem(context.Background(), m.db, "stay"); !domain.IsNotFound(err) {
		t.Fatalf("item not deleted: %v", err)
	}
	if len(m.undoStack) != 1 {
		t.Fatalf("undo stack = %d", len(m.undoStack))
	}

	m = send(t, m, keyPress("u"))
	if _, err := db.GetItem(context.Background(), m.db, "stay"); err != nil {
		t.Fatalf("undo did not restore item: %v", err)
	}
	if len(m.redoStack) != 1 || m.info != "Undid: hotel deleted" {
		t.Fatalf("unexpected state after undo: info=%q redo=%d", m.info, len(m.redoStack))
	}
}

func TestApp_UndoTripInsert(t *testing.T) {
	m, _ := newTestApp(t)
	m = loadTrips(t, m)

	m = send(t, m, keyPress("a"))
	if m.screen != model.ScreenTripForm || m.mode != model.ModeInsert {
		t.Fatalf("trip form not opened")
	}
	for _, field := range []struct {
		idx   int
		value string
	}{{tripFieldName, "Weekend"}, {tripFieldStart, "2024-06-01"}, {tripFieldEnd, "2024-06-02"}} {
		m.tripForm.focusedField = field.idx
		m.tripForm.inputs[field.idx].SetValue(field.value)
	}

	next, cmd := m.Update(keyPress("ctrl+s"))
	m = next.(Model)
	saved, ok := cmd().(model.TripSavedMsg)
	if !ok {
		t.Fatalf("expected TripSavedMsg")
	}
	next, _ = m.Update(saved)
	m = next.(Model)
	if m.mode != model.ModeNav || m.tripForm != nil {
		t.Fatalf("form should close after save")
	}

	m = send(t, m, keyPress("u"))
	if _, err := db.GetTrip(context.Background(), m.db, saved.ID); !domain.IsNotFound(err) {
		t.Fatalf("undo should delete the inserted trip, got %v", err)
	}
}

func TestApp_FormCancelReturnsToList(t *testing.T) {
	m, _ := newTestApp(t)
	m = loadTrips(t, m)
	m = send(t, m, keyPress("a"))
	m = send(t, m, keyPress("esc"))
	if m.screen != model.ScreenTrips || m.mode != model.ModeNav || m.tripForm != nil {
		t.Fatalf("cancel did not return to trips: screen=%v mode=%v", m.screen, m.mode)
	}
}

func TestApp_AlertBlocksInput(t *testing.T) {
	m, _ := newTestApp(t)
	m = loadTrips(t, m)
	m = send(t, m, model.AlertMsg{Title: "Registration failed", Body: "try again"})
	if !strings.Contains(m.View(), "Registration failed") {
		t.Fatalf("alert not rendered")
	}

	m = send(t, m, keyPress("a"))
	if m.mode != model.ModeNav || m.tripForm != nil {
		t.Fatalf("keys should be swallowed while the alert is open")
	}
	m = send(t, m, keyPress("enter"))
	if m.alert != nil {
		t.Fatalf("enter should dismiss the alert")
	}
	m = send(t, m, keyPress("a"))
	if m.tripForm == nil {
		t.Fatalf("input should resume after dismissal")
	}
}

func TestApp_ErrorRouting(t *testing.T) {
	m, _ := newTestApp(t)
	m = send(t, m, model.ErrorMsg{Err: domain.ServiceError{Op: "search", Msg: "timeout"}})
	if m.alert == nil || m.alert.body != "search: timeout" {
		t.Fatalf("service error should raise an alert, got %+v", m.alert)
	}

	m, _ = newTestApp(t)
	m = send(t, m, model.ErrorMsg{Err: domain.ValidationError{Msg: "bad input"}})
	if m.alert != nil || m.error != "bad input" {
		t.Fatalf("validation error should show in the banner: %q", m.error)
	}
}

func TestApp_MissingTripReturnsToList(t *testing.T) {
	m, _ := newTestApp(t)
	tripID := seedTrip(t, m.db)
	m = loadTrips(t, m)
	m = send(t, m, keyPress("enter"))
	if m.screen != model.ScreenItinerary {
		t.Fatalf("itinerary not opened")
	}

	if err := db.DeleteTrip(context.Background(), m.db, tripID); err != nil {
		t.Fatalf("DeleteTrip: %v", err)
	}
	m = send(t, m, model.ErrorMsg{Err: domain.NotFoundError{Resource: "trip", ID: "1"}})
	if m.screen != model.ScreenTrips || m.itinerary != nil {
		t.Fatalf("expected to land on trips, got %v", m.screen)
	}
	if len(m.trips.rows) != 0 {
		t.Fatalf("list not reloaded: %+v", m.trips.rows)
	}
}

func TestApp_ExportPDF(t *testing.T) {
	m, exports := newTestApp(t)
	tripID := seedTrip(t, m.db)
	seedItem(t, m.db, tripID, model.ItineraryItem{ID: "louvre", Type: model.ItemPlace, Name: "Louvre", StartDate: "2024-03-02"})
	m = loadTrips(t, m)
	m = send(t, m, keyPress("enter"))
	m = send(t, m, keyPress("x"))

	path := filepath.Join(exports, "spring-in-paris-2024-03-01.pdf")
	if m.info != "Exported to "+path {
		t.Fatalf("info = %q", m.info)
	}
	data, err := os.ReadFile(path)
	if err != nil || !strings.HasPrefix(string(data), "%PDF-") {
		t.Fatalf("pdf not written: %v", err)
	}
}

func TestApp_ExportWithoutDates(t *testing.T) {
	msg := exportPDFCmd(t.TempDir(), model.Trip{ID: 3, Name: "Someday"}, nil)()
	alert, ok := msg.(model.AlertMsg)
	if !ok || alert.Title != "Nothing to export" {
		t.Fatalf("expected alert, got %#v", msg)
	}
}

func TestExportFileName(t *testing.T) {
	cases := []struct {
		trip model.Trip
		want string
	}{
		{model.Trip{ID: 1, Name: "Spring in Paris!", StartDate: "2024-03-01"}, "spring-in-paris-2024-03-01.pdf"},
		{model.Trip{ID: 2, Name: "  Kyoto / Osaka  "}, "kyoto-osaka-2.pdf"},
		{model.Trip{ID: 3, Name: "東京", StartDate: "2024-05-01"}, "trip-2024-05-01.pdf"},
	}
	for _, tc := range cases {
		if got := ExportFileName(tc.trip); got != tc.want {
			t.Fatalf("ExportFileName(%q) = %q, want %q", tc.trip.Name, got, tc.want)
		}
	}
}

func TestApp_RemembersSelectedDay(t *testing.T) {
	m, _ := newTestApp(t)
	tripID := seedTrip(t, m.db)
	m = loadTrips(t, m)
	m = send(t, m, keyPress("enter"))
	m = send(t, m, keyPress("]"))
	m = send(t, m, keyPress("]"))
	if m.itinerary.DayIndex() != 2 {
		t.Fatalf("day = %d, want 2", m.itinerary.DayIndex())
	}

	m = send(t, m, keyPress("esc"))
	if m.screen != model.ScreenTrips {
		t.Fatalf("esc should go back to trips")
	}
	if loadUIPreferences().LastDay[tripKey(tripID)] != 2 {
		t.Fatalf("selected day not persisted")
	}
	m = send(t, m, keyPress("enter"))
	if m.itinerary.DayIndex() != 2 {
		t.Fatalf("day not restored: %d", m.itinerary.DayIndex())
	}
}

func TestRenderHelp_FollowsScreen(t *testing.T) {
	keys, formKeys := DefaultKeyMap(), DefaultFormKeyMap()
	trips := RenderHelp(keys, formKeys, model.ScreenTrips, model.ModeNav, 200)
	if !strings.Contains(trips, "new trip") || strings.Contains(trips, "next day") {
		t.Fatalf("trips footer = %q", trips)
	}
	days := RenderHelp(keys, formKeys, model.ScreenItinerary, model.ModeNav, 200)
	if !strings.Contains(days, "next day") || !strings.Contains(days, "export pdf") {
		t.Fatalf("itinerary footer = %q", days)
	}
	form := RenderHelp(keys, formKeys, model.ScreenItemForm, model.ModeInsert, 200)
	if !strings.Contains(form, "cycle status") {
		t.Fatalf("item form footer = %q", form)
	}
	if strings.Contains(RenderHelp(keys, formKeys, model.ScreenTripForm, model.ModeInsert, 200), "cycle status") {
		t.Fatalf("trip form has no status")
	}
}
