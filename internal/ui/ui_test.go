package ui

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"tripsee/internal/db"
	"tripsee/internal/model"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	database, err := db.Open(filepath.Join(t.TempDir(), "tripsee.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+t":
		return tea.KeyMsg{Type: tea.KeyCtrlT}
	case "ctrl+r":
		return tea.KeyMsg{Type: tea.KeyCtrlR}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func seedTrip(t *testing.T, database *sql.DB) int64 {
	t.Helper()
	id, err := db.InsertTrip(context.Background(), database, model.NewTrip{
		Name:        "Spring in Paris",
		Destination: model.Destination{ID: "dst-paris", Name: "Paris", Country: "France"},
		StartDate:   "2024-03-01",
		EndDate:     "2024-03-04",
	})
	if err != nil {
		t.Fatalf("InsertTrip: %v", err)
	}
	return id
}

func seedItem(t *testing.T, database *sql.DB, tripID int64, item model.ItineraryItem) model.ItineraryItem {
	t.Helper()
	item.TripID = tripID
	stored, err := db.InsertItem(context.Background(), database, item)
	if err != nil {
		t.Fatalf("InsertItem: %v", err)
	}
	return stored
}
