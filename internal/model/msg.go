package model

// Bubble Tea message types

// ErrorMsg represents an error message.
type ErrorMsg struct {
	Err error
}

// AlertMsg opens a blocking alert with a single acknowledgement action.
type AlertMsg struct {
	Title string
	Body  string
}

// TripsLoadedMsg is sent when trips are loaded.
type TripsLoadedMsg struct {
	Trips []TripRow
}

// TripDetailLoadedMsg is sent when a trip and its items are loaded.
type TripDetailLoadedMsg struct {
	Detail TripDetail
}

// TripSavedMsg is sent when a trip is successfully saved.
type TripSavedMsg struct {
	ID        int64
	Operation string // insert, update
	Before    *Trip
	After     Trip
}

// ItemSavedMsg is sent when an itinerary item is successfully saved.
type ItemSavedMsg struct {
	Operation string // insert, update
	Before    *ItineraryItem
	After     ItineraryItem
}

// FormCancelledMsg is sent when a form is cancelled.
type FormCancelledMsg struct{}

// DeleteTripMsg is sent after a trip is deleted.
type DeleteTripMsg struct {
	ID           int64
	Deleted      Trip
	DeletedItems []ItineraryItem
}

// DeleteItemMsg is sent after an itinerary item is deleted.
type DeleteItemMsg struct {
	ID      string
	Deleted ItineraryItem
}

// Screen represents different app screens.
type Screen int

const (
	ScreenTrips Screen = iota
	ScreenItinerary
	ScreenItemDetail
	ScreenTripForm
	ScreenItemForm
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNav Mode = iota
	ModeInsert
)
