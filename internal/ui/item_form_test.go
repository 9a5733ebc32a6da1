package ui

import (
	"strings"
	"testing"

	"tripsee/internal/itinerary"
	"tripsee/internal/model"
)

func fieldIndex(t *testing.T, m *ItemFormModel, key string) int {
	t.Helper()
	for i, f := range m.schema.Fields {
		if f.Key == key {
			return i
		}
	}
	t.Fatalf("field %q not in %s schema", key, m.schema.Type)
	return -1
}

func setField(t *testing.T, m *ItemFormModel, key, value string) {
	t.Helper()
	m.inputs[fieldIndex(t, m, key)].SetValue(value)
	m.refresh()
}

func focusField(t *testing.T, m *ItemFormModel, key string) {
	t.Helper()
	m.inputs[m.focusedField].Blur()
	m.focusedField = fieldIndex(t, m, key)
	m.inputs[m.focusedField].Focus()
}

func TestItemForm_PickTypeThenSchema(t *testing.T) {
	m := NewItemFormModel(nil, 1, "2024-03-02")
	if m.Type() != "" {
		t.Fatalf("new form should start in the type picker")
	}

	next, _ := m.Update(keyPress("j"))
	next, _ = next.Update(keyPress("enter"))
	if next.Type() != model.ItemTrain {
		t.Fatalf("picked %q, want train", next.Type())
	}
	if len(next.inputs) != len(itinerary.SchemaFor(model.ItemTrain).Fields) {
		t.Fatalf("inputs not built from schema")
	}
	d := next.Draft()
	if d.Get(itinerary.KeyStartDate) != "2024-03-02" || d.Get(itinerary.KeyStatus) != "pending" {
		t.Fatalf("defaults not applied: %+v", d.Values)
	}

	quick := NewItemFormModel(nil, 1, "")
	picked, _ := quick.Update(keyPress("4"))
	if picked.Type() != model.ItemHotel {
		t.Fatalf("quick pick = %q, want hotel", picked.Type())
	}
}

func TestItemForm_SameDayViolationBlocksSave(t *testing.T) {
	m := NewItemFormModel(nil, 1, "")
	m.chooseType(model.ItemFlight)
	setField(t, m, itinerary.KeyName, "Paris to Rome")
	setField(t, m, itinerary.KeyStartDate, "2024-03-01")
	setField(t, m, itinerary.KeyStartTime, "12:00")
	setField(t, m, itinerary.KeyEndDate, "2024-03-01")
	setField(t, m, itinerary.KeyEndTime, "10:00")

	want := "Arrival Time must be after Departure Time on the same day"
	if m.rangeError != want {
		t.Fatalf("live range error = %q, want %q", m.rangeError, want)
	}

	next, cmd := m.Update(keyPress("ctrl+s"))
	if cmd != nil {
		t.Fatalf("save must be blocked while the range is invalid")
	}
	if next.error != want || next.Type() != model.ItemFlight {
		t.Fatalf("form error = %q", next.error)
	}
	if !strings.Contains(next.View(100, 40), want) {
		t.Fatalf("view does not show the range error")
	}
}

func TestItemForm_DateOrderMessageUsesLabels(t *testing.T) {
	m := NewItemFormModel(nil, 1, "")
	m.chooseType(model.ItemHotel)
	setField(t, m, itinerary.KeyStartDate, "2024-03-04")
	setField(t, m, itinerary.KeyEndDate, "2024-03-01")
	if m.rangeError != "Check-out Date must be on or after Check-in Date" {
		t.Fatalf("range error = %q", m.rangeError)
	}
}

func TestItemForm_DurationRecomputedOnKeystroke(t *testing.T) {
	m := NewItemFormModel(nil, 1, "")
	m.chooseType(model.ItemTrain)
	setField(t, m, itinerary.KeyStartDate, "2024-03-01")
	setField(t, m, itinerary.KeyStartTime, "12:00")
	setField(t, m, itinerary.KeyEndDate, "2024-03-01")
	if m.duration != "" {
		t.Fatalf("duration without end time = %q", m.duration)
	}

	focusField(t, m, itinerary.KeyEndTime)
	next, _ := m.Update(keyPress("14:30"))
	if next.duration != "2 Hours 30 Minutes" {
		t.Fatalf("duration = %q", next.duration)
	}
}

func TestItemForm_RequiredFieldBlocksSave(t *testing.T) {
	m := NewItemFormModel(nil, 1, "")
	m.chooseType(model.ItemCab)
	setField(t, m, itinerary.KeyName, "Airport transfer")
	setField(t, m, itinerary.KeyStartDate, "2024-03-01")

	next, cmd := m.Update(keyPress("ctrl+s"))
	if cmd != nil || next.errorField != "pickupLocation" {
		t.Fatalf("expected pickupLocation error, got %q (%q)", next.errorField, next.error)
	}
}

func TestItemForm_SaveInsertsAndHandsBackItem(t *testing.T) {
	database := openTestDB(t)
	tripID := seedTrip(t, database)

	m := NewItemFormModel(database, tripID, "")
	m.chooseType(model.ItemFlight)
	setField(t, m, itinerary.KeyName, "Paris to Rome")
	setField(t, m, "flightNumber", "AF1234")
	setField(t, m, itinerary.KeyStartDate, "2024-03-01")
	setField(t, m, itinerary.KeyStartTime, "22:00")
	setField(t, m, itinerary.KeyEndDate, "2024-03-02")
	setField(t, m, itinerary.KeyEndTime, "01:00")

	_, cmd := m.Update(keyPress("ctrl+s"))
	if cmd == nil {
		t.Fatalf("valid form should save")
	}
	saved, ok := cmd().(model.ItemSavedMsg)
	if !ok {
		t.Fatalf("expected ItemSavedMsg")
	}
	if saved.Operation != "insert" || saved.After.Duration != "3 Hours" || saved.After.Field("flightNumber") != "AF1234" {
		t.Fatalf("unexpected saved item %+v", saved.After)
	}
	if saved.After.ID == "" || saved.After.TripID != tripID || saved.After.Position != 1 {
		t.Fatalf("item not stored: %+v", saved.After)
	}
}

func TestItemForm_EditKeepsTypeAndID(t *testing.T) {
	database := openTestDB(t)
	tripID := seedTrip(t, database)
	item := seedItem(t, database, tripID, model.ItineraryItem{
		ID: "louvre", Type: model.ItemPlace, Name: "Louvre", StartDate: "2024-03-02", Time: "10:00",
	})

	m := NewItemFormModel(database, tripID, "")
	m.LoadItem(item)
	if m.Type() != model.ItemPlace || m.Draft().Get(itinerary.KeyName) != "Louvre" {
		t.Fatalf("item not loaded: %+v", m.Draft())
	}
	setField(t, m, itinerary.KeyDuration, "2 Hours")

	_, cmd := m.Update(keyPress("ctrl+s"))
	saved := cmd().(model.ItemSavedMsg)
	if saved.Operation != "update" || saved.Before == nil || saved.Before.Duration != "" {
		t.Fatalf("unexpected update msg %+v", saved)
	}
	if saved.After.ID != "louvre" || saved.After.Duration != "2 Hours" || saved.After.Position != item.Position {
		t.Fatalf("unexpected after %+v", saved.After)
	}
}

func TestItemForm_StatusCycleAndCancel(t *testing.T) {
	m := NewItemFormModel(nil, 1, "")
	m.chooseType(model.ItemOthers)
	focusField(t, m, itinerary.KeyStatus)

	next, _ := m.Update(keyPress("ctrl+t"))
	if got := next.Draft().Get(itinerary.KeyStatus); got != "confirmed" {
		t.Fatalf("status after cycle = %q", got)
	}

	_, cmd := next.Update(keyPress("esc"))
	if _, ok := cmd().(model.FormCancelledMsg); !ok {
		t.Fatalf("esc should cancel the form")
	}
}
