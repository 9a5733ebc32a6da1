package ui

import (
	"strings"
	"testing"

	"tripsee/internal/model"
)

func sampleDetail() model.TripDetail {
	return model.TripDetail{
		Trip: model.Trip{ID: 7, Name: "Spring in Paris", StartDate: "2024-03-01", EndDate: "2024-03-03",
			Destination: model.Destination{Name: "Paris", Country: "France"}},
		Items: []model.ItineraryItem{
			{ID: "h", Type: model.ItemHotel, Name: "Hotel Lutetia", StartDate: "2024-03-01", StartTime: "15:00",
				EndDate: "2024-03-03", EndTime: "11:00", Status: model.StatusConfirmed},
			{ID: "f", Type: model.ItemFlight, Name: "Rome to Paris", StartDate: "2024-03-01", StartTime: "08:00",
				EndDate: "2024-03-01", EndTime: "10:05",
				Fields: map[string]string{"departureAirport": "FCO", "arrivalAirport": "CDG"}},
			{ID: "p", Type: model.ItemPlace, Name: "Louvre", StartDate: "2024-03-02", Time: "10:00"},
		},
	}
}

func TestItinerary_DaysAndSelection(t *testing.T) {
	m := NewItineraryModel(sampleDetail(), 0)
	if len(m.Days()) != 3 {
		t.Fatalf("days = %d, want 3", len(m.Days()))
	}
	item, ok := m.SelectedItem()
	if !ok || item.ID != "f" {
		t.Fatalf("first item on day 1 = %+v, want the morning flight", item)
	}
	m.MoveDown()
	if item, _ := m.SelectedItem(); item.ID != "h" {
		t.Fatalf("second item = %q", item.ID)
	}

	m.NextDay()
	if m.SelectedDate() != "2024-03-02" || m.cursor != 0 {
		t.Fatalf("day 2 not selected: %s cursor=%d", m.SelectedDate(), m.cursor)
	}
	if item, _ := m.SelectedItem(); item.ID != "p" {
		t.Fatalf("hotel should not list on interior day, got %q", item.ID)
	}

	m.NextDay()
	m.NextDay()
	if m.DayIndex() != 2 {
		t.Fatalf("day index not clamped: %d", m.DayIndex())
	}
	m.PrevDay()
	m.PrevDay()
	m.PrevDay()
	if m.DayIndex() != 0 {
		t.Fatalf("day index not clamped at start: %d", m.DayIndex())
	}
}

func TestItinerary_RestoresDayAndClamps(t *testing.T) {
	if m := NewItineraryModel(sampleDetail(), 9); m.DayIndex() != 2 {
		t.Fatalf("day = %d, want 2", m.DayIndex())
	}
}

func TestItinerary_ViewShowsTagsForSelectedDay(t *testing.T) {
	m := NewItineraryModel(sampleDetail(), 0)
	view := m.View(100, 60)
	for _, want := range []string{"Paris, France", "Day 1", "Rome to Paris", "CHECK-IN", "DEPARTURE", "FCO → CDG"} {
		if !strings.Contains(view, want) {
			t.Fatalf("day 1 view missing %q:\n%s", want, view)
		}
	}

	m.SelectDay(2)
	view = m.View(100, 60)
	if !strings.Contains(view, "CHECK-OUT") || strings.Contains(view, "CHECK-IN") {
		t.Fatalf("day 3 should only tag check-out:\n%s", view)
	}
}

func TestItinerary_NoDatesListsFlat(t *testing.T) {
	detail := sampleDetail()
	detail.Trip.StartDate = ""
	m := NewItineraryModel(detail, 0)
	if len(m.Days()) != 0 || m.SelectedDate() != "" {
		t.Fatalf("expected no day plans")
	}
	if len(m.currentItems()) != 3 {
		t.Fatalf("items should list flat without dates")
	}
	if !strings.Contains(m.View(100, 60), "Set trip dates") {
		t.Fatalf("missing hint for undated trip")
	}
}

func TestRenderItemCard(t *testing.T) {
	cab := model.ItineraryItem{
		Type: model.ItemCab, Name: "Airport transfer", Status: model.StatusCancelled,
		StartDate: "2024-03-03", StartTime: "07:30", Cost: "€45",
		Fields: map[string]string{"pickupLocation": "Hotel lobby", "dropLocation": "CDG T2"},
	}
	card := renderItemCard(cab, []string{"DEPARTURE"}, 80, false)
	for _, want := range []string{"Airport transfer", "Hotel lobby → CDG T2", "Pickup Mar 03 07:30", "cancelled", "DEPARTURE", "€45"} {
		if !strings.Contains(card, want) {
			t.Fatalf("card missing %q:\n%s", want, card)
		}
	}
}
