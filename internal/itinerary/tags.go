package itinerary

import (
	"time"

	"tripsee/internal/model"
)

// Boundary tags shown on multi-day items.
const (
	TagCheckIn   = "CHECK-IN"
	TagCheckOut  = "CHECK-OUT"
	TagStaying   = "STAYING"
	TagDeparture = "DEPARTURE"
	TagArrival   = "ARRIVAL"
	TagStart     = "START"
	TagEnd       = "END"
	TagOngoing   = "ONGOING"
)

type vocabulary struct {
	start, end, interior string
}

// vocabularyFor returns the tag words for t; ok is false for types that are
// never tagged.
func vocabularyFor(t model.ItemType) (vocabulary, bool) {
	switch t {
	case model.ItemHotel:
		return vocabulary{start: TagCheckIn, end: TagCheckOut}, true
	case model.ItemBase:
		return vocabulary{start: TagCheckIn, end: TagCheckOut, interior: TagStaying}, true
	case model.ItemFlight, model.ItemTrain, model.ItemCab:
		return vocabulary{start: TagDeparture, end: TagArrival}, true
	case model.ItemOthers:
		return vocabulary{start: TagStart, end: TagEnd, interior: TagOngoing}, true
	default:
		return vocabulary{}, false
	}
}

// TagsForDay returns the boundary tags for item on the displayed day. Only
// items carrying both anchor dates are tagged. The start day is tested before
// the end day, so a same-day item gets only the start tag.
func TagsForDay(item model.ItineraryItem, day time.Time) []string {
	if !item.HasRange() {
		return nil
	}
	vocab, ok := vocabularyFor(item.Type)
	if !ok {
		return nil
	}
	start, err := ParseDate(item.StartDate)
	if err != nil {
		return nil
	}
	end, err := ParseDate(item.EndDate)
	if err != nil {
		return nil
	}

	d := DateOnly(day)
	switch {
	case d.Equal(start):
		return []string{vocab.start}
	case d.Equal(end):
		return []string{vocab.end}
	case d.After(start) && d.Before(end) && vocab.interior != "":
		return []string{vocab.interior}
	}
	return nil
}

// showsInterior reports whether t is listed on the days strictly between its
// start and end dates.
func showsInterior(t model.ItemType) bool {
	vocab, ok := vocabularyFor(t)
	return ok && vocab.interior != ""
}
