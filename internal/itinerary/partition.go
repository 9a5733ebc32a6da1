package itinerary

import (
	"fmt"
	"sort"
	"time"

	"tripsee/internal/domain"
	"tripsee/internal/model"
)

// Partition splits items into one DayPlan per calendar day of [start, end].
//
// An item is placed by its own start date. When it spans several days it is
// repeated on its end day, and on the days in between for types that show
// interior days; places only appear on their start day. Items without a usable
// date, or whose days all fall outside the window, are spread round-robin in
// list order. Multi-day items repeat, so the total number of placed items may
// exceed len(items).
func Partition(start, end time.Time, items []model.ItineraryItem) []model.DayPlan {
	n := DayCount(start, end)
	if n == 0 {
		return nil
	}
	first := DateOnly(start)

	days := make([]model.DayPlan, n)
	for i := range days {
		days[i] = model.DayPlan{
			Date:      first.AddDate(0, 0, i),
			DayNumber: i + 1,
		}
	}

	undated := 0
	for _, item := range items {
		placed := false
		for _, idx := range dayIndexes(item, first, n) {
			days[idx].Items = append(days[idx].Items, item)
			placed = true
		}
		if !placed {
			idx := undated % n
			days[idx].Items = append(days[idx].Items, item)
			undated++
		}
	}

	for i := range days {
		sortDay(days[i].Date, days[i].Items)
	}
	return days
}

// dayIndexes returns the window offsets the item occupies, ascending.
func dayIndexes(item model.ItineraryItem, first time.Time, n int) []int {
	s, err := ParseDate(item.StartDate)
	if err != nil {
		return nil
	}
	e := s
	if item.EndDate != "" {
		if parsed, err := ParseDate(item.EndDate); err == nil && !parsed.Before(s) {
			e = parsed
		}
	}

	offset := func(t time.Time) int { return int(t.Sub(first) / (24 * time.Hour)) }
	inWindow := func(i int) bool { return i >= 0 && i < n }

	startIdx, endIdx := offset(s), offset(e)
	var out []int
	if inWindow(startIdx) {
		out = append(out, startIdx)
	}
	if item.Type == model.ItemPlace || endIdx == startIdx {
		return out
	}
	if showsInterior(item.Type) {
		for i := startIdx + 1; i < endIdx; i++ {
			if inWindow(i) {
				out = append(out, i)
			}
		}
	}
	if inWindow(endIdx) {
		out = append(out, endIdx)
	}
	return out
}

// sortDay orders a day's items by the clock time that applies on that day.
// Untimed items keep their relative order after the timed ones.
func sortDay(day time.Time, items []model.ItineraryItem) {
	sort.SliceStable(items, func(i, j int) bool {
		ti, okI := clockOn(items[i], day)
		tj, okJ := clockOn(items[j], day)
		switch {
		case okI && okJ:
			return ti < tj
		case okI:
			return true
		default:
			return false
		}
	})
}

// clockOn returns the minute of day at which item happens on day: its start
// time on the start day, its end time on the end day, otherwise Time.
func clockOn(item model.ItineraryItem, day time.Time) (int, bool) {
	d := FormatDate(day)
	clock := item.Time
	switch {
	case item.StartDate == d && item.StartTime != "":
		clock = item.StartTime
	case item.EndDate == d && item.EndTime != "":
		clock = item.EndTime
	}
	h, m, err := ParseClock(clock)
	if err != nil {
		return 0, false
	}
	return h*60 + m, true
}

// TimeOnDay returns the HH:MM at which item happens on day, or "" when it is
// untimed there.
func TimeOnDay(item model.ItineraryItem, day time.Time) string {
	minutes, ok := clockOn(item, day)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// PlanTrip partitions a trip's items over its dates. A trip without usable
// dates has no day plans.
func PlanTrip(detail model.TripDetail) ([]model.DayPlan, error) {
	start, err := ParseDate(detail.Trip.StartDate)
	if err != nil {
		return nil, domain.ValidationError{Field: KeyStartDate, Msg: "trip has no start date", Err: err}
	}
	end, err := ParseDate(detail.Trip.EndDate)
	if err != nil {
		return nil, domain.ValidationError{Field: KeyEndDate, Msg: "trip has no end date", Err: err}
	}
	return Partition(start, end, detail.Items), nil
}
