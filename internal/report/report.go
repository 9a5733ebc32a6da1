// Package report renders a trip's day plans for the terminal and as PDF.
package report

import (
	"strings"
	"time"

	"tripsee/internal/itinerary"
	"tripsee/internal/model"
)

// Line is one item as listed on one day.
type Line struct {
	Time   string
	Type   string
	Name   string
	Where  string
	Tags   string
	Status model.ItemStatus
	Cost   string
}

// LineFor describes item as it appears on day.
func LineFor(item model.ItineraryItem, day time.Time) Line {
	status := item.Status
	if status == "" {
		status = model.StatusPending
	}
	return Line{
		Time:   itinerary.TimeOnDay(item, day),
		Type:   item.Type.Label(),
		Name:   item.Name,
		Where:  where(item),
		Tags:   strings.Join(itinerary.TagsForDay(item, day), " "),
		Status: status,
		Cost:   item.Cost,
	}
}

func where(item model.ItineraryItem) string {
	switch item.Type {
	case model.ItemFlight:
		return arrow(item.Field("departureAirport"), item.Field("arrivalAirport"))
	case model.ItemTrain:
		return arrow(item.Field("departureStation"), item.Field("arrivalStation"))
	case model.ItemCab:
		return arrow(item.Field("pickupLocation"), item.Field("dropLocation"))
	case model.ItemBase:
		if a := item.Field("address"); a != "" {
			return a
		}
	}
	return item.Location
}

func arrow(from, to string) string {
	if from == "" || to == "" {
		return from + to
	}
	return from + " -> " + to
}
