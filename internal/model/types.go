package model

import "time"

// ItemType identifies the kind of itinerary item. It is fixed at creation.
type ItemType string

const (
	ItemFlight ItemType = "flight"
	ItemTrain  ItemType = "train"
	ItemCab    ItemType = "cab"
	ItemHotel  ItemType = "hotel"
	ItemBase   ItemType = "base"
	ItemPlace  ItemType = "place"
	ItemOthers ItemType = "others"
)

// ItemTypes lists every item type in picker order.
var ItemTypes = []ItemType{ItemFlight, ItemTrain, ItemCab, ItemHotel, ItemBase, ItemPlace, ItemOthers}

// Valid reports whether t is a known item type.
func (t ItemType) Valid() bool {
	for _, known := range ItemTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Label returns the display name of the type.
func (t ItemType) Label() string {
	switch t {
	case ItemFlight:
		return "Flight"
	case ItemTrain:
		return "Train"
	case ItemCab:
		return "Cab"
	case ItemHotel:
		return "Hotel"
	case ItemBase:
		return "Base Location"
	case ItemPlace:
		return "Place"
	case ItemOthers:
		return "Other"
	default:
		return string(t)
	}
}

// ItemStatus is the booking state of an itinerary item.
type ItemStatus string

const (
	StatusConfirmed ItemStatus = "confirmed"
	StatusPending   ItemStatus = "pending"
	StatusCancelled ItemStatus = "cancelled"
)

// Valid reports whether s is a known status.
func (s ItemStatus) Valid() bool {
	return s == StatusConfirmed || s == StatusPending || s == StatusCancelled
}

// ItineraryItem is the normalized record produced by the item form.
type ItineraryItem struct {
	ID       string
	TripID   int64
	Type     ItemType
	Name     string
	Location string
	Details  string
	Duration string
	Cost     string
	Status   ItemStatus
	Time     string // HH:MM or free form

	// Anchor pair. Dates are YYYY-MM-DD, times HH:MM. Labels vary by type
	// (departure/arrival, pickup/drop-off, check-in/check-out).
	StartDate string
	StartTime string
	EndDate   string
	EndTime   string

	// Type-specific fields keyed by schema field key.
	Fields map[string]string

	Position  int
	CreatedAt time.Time
}

// Field returns a type-specific field value or "".
func (i ItineraryItem) Field(key string) string {
	if i.Fields == nil {
		return ""
	}
	return i.Fields[key]
}

// HasRange reports whether both anchor dates are present.
func (i ItineraryItem) HasRange() bool {
	return i.StartDate != "" && i.EndDate != ""
}

// DayPlan is the derived set of items for one calendar day of a trip.
type DayPlan struct {
	Date      time.Time
	DayNumber int
	Items     []ItineraryItem
}

// Coordinates is a latitude/longitude pair.
type Coordinates struct {
	Lat float64
	Lng float64
}

// Destination is a search result for a trip destination.
type Destination struct {
	ID          string
	Name        string
	Address     string
	Country     string
	Coordinates Coordinates
	PlaceID     string
}

// Label returns "Name, Country" for display.
func (d Destination) Label() string {
	if d.Country == "" {
		return d.Name
	}
	return d.Name + ", " + d.Country
}

// Trip represents a planned trip.
type Trip struct {
	ID          int64
	Name        string
	Destination Destination
	StartDate   string // YYYY-MM-DD
	EndDate     string // YYYY-MM-DD
	Notes       string
	CreatedAt   time.Time
}

// TripRow represents a trip with aggregate stats for list display.
type TripRow struct {
	ID          int64
	Name        string
	Destination string
	Country     string
	StartDate   string
	EndDate     string
	ItemCount   int
	Confirmed   int
}

// TripDetail represents a trip with all its itinerary items.
type TripDetail struct {
	Trip  Trip
	Items []ItineraryItem
}

// NewTrip represents data for creating a trip.
type NewTrip struct {
	Name        string
	Destination Destination
	StartDate   string
	EndDate     string
	Notes       string
}

// UpdateTrip represents data for updating a trip.
type UpdateTrip struct {
	ID          int64
	Name        string
	Destination Destination
	StartDate   string
	EndDate     string
	Notes       string
}

// User is a registered traveller.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
