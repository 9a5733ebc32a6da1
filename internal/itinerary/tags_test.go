package itinerary

import (
	"testing"

	"tripsee/internal/model"
)

func TestTagsForDay(t *testing.T) {
	span := func(typ model.ItemType) model.ItineraryItem {
		return model.ItineraryItem{Type: typ, StartDate: "2024-03-01", EndDate: "2024-03-03"}
	}
	cases := []struct {
		typ  model.ItemType
		day  string
		want string
	}{
		{model.ItemHotel, "2024-03-01", TagCheckIn},
		{model.ItemHotel, "2024-03-02", ""},
		{model.ItemHotel, "2024-03-03", TagCheckOut},
		{model.ItemBase, "2024-03-01", TagCheckIn},
		{model.ItemBase, "2024-03-02", TagStaying},
		{model.ItemBase, "2024-03-03", TagCheckOut},
		{model.ItemFlight, "2024-03-01", TagDeparture},
		{model.ItemFlight, "2024-03-02", ""},
		{model.ItemTrain, "2024-03-03", TagArrival},
		{model.ItemCab, "2024-03-03", TagArrival},
		{model.ItemOthers, "2024-03-01", TagStart},
		{model.ItemOthers, "2024-03-02", TagOngoing},
		{model.ItemOthers, "2024-03-03", TagEnd},
		{model.ItemPlace, "2024-03-01", ""},
		{model.ItemPlace, "2024-03-03", ""},
		{model.ItemHotel, "2024-03-04", ""},
	}
	for _, tc := range cases {
		got := TagsForDay(span(tc.typ), day(t, tc.day))
		if tc.want == "" {
			if len(got) != 0 {
				t.Fatalf("%s on %s: got %v, want none", tc.typ, tc.day, got)
			}
			continue
		}
		if len(got) != 1 || got[0] != tc.want {
			t.Fatalf("%s on %s: got %v, want [%s]", tc.typ, tc.day, got, tc.want)
		}
	}
}

func TestTagsForDay_SameDayGetsStartTagOnly(t *testing.T) {
	want := map[model.ItemType]string{
		model.ItemHotel:  TagCheckIn,
		model.ItemBase:   TagCheckIn,
		model.ItemFlight: TagDeparture,
		model.ItemTrain:  TagDeparture,
		model.ItemCab:    TagDeparture,
		model.ItemOthers: TagStart,
	}
	for typ, tag := range want {
		item := model.ItineraryItem{Type: typ, StartDate: "2024-03-01", EndDate: "2024-03-01"}
		got := TagsForDay(item, day(t, "2024-03-01"))
		if len(got) != 1 || got[0] != tag {
			t.Fatalf("%s same day: got %v, want [%s]", typ, got, tag)
		}
	}
}

func TestTagsForDay_RequiresBothDates(t *testing.T) {
	item := model.ItineraryItem{Type: model.ItemHotel, StartDate: "2024-03-01"}
	if got := TagsForDay(item, day(t, "2024-03-01")); len(got) != 0 {
		t.Fatalf("single-date item tagged: %v", got)
	}
}
