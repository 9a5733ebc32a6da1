package itinerary

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"tripsee/internal/domain"
	"tripsee/internal/model"
)

// Kind tells the form how to edit and check a field.
type Kind int

const (
	KindText Kind = iota
	KindDate
	KindTime
	KindMoney
	KindStatus
)

// Keys of the fields stored directly on model.ItineraryItem. Anything else a
// schema declares goes into ItineraryItem.Fields.
const (
	KeyName      = "name"
	KeyLocation  = "location"
	KeyDetails   = "details"
	KeyDuration  = "duration"
	KeyCost      = "cost"
	KeyStatus    = "status"
	KeyTime      = "time"
	KeyStartDate = "startDate"
	KeyStartTime = "startTime"
	KeyEndDate   = "endDate"
	KeyEndTime   = "endTime"
)

var coreKeys = map[string]bool{
	KeyName: true, KeyLocation: true, KeyDetails: true, KeyDuration: true,
	KeyCost: true, KeyStatus: true, KeyTime: true,
	KeyStartDate: true, KeyStartTime: true, KeyEndDate: true, KeyEndTime: true,
}

// FieldSpec describes one input of the item form.
type FieldSpec struct {
	Key         string
	Label       string
	Kind        Kind
	Required    bool
	Placeholder string
}

// Schema is the ordered field list for one item type.
type Schema struct {
	Type   model.ItemType
	Fields []FieldSpec
}

// Field returns the spec for key.
func (s Schema) Field(key string) (FieldSpec, bool) {
	for _, f := range s.Fields {
		if f.Key == key {
			return f, true
		}
	}
	return FieldSpec{}, false
}

// Has reports whether the schema declares key.
func (s Schema) Has(key string) bool {
	_, ok := s.Field(key)
	return ok
}

// HasRange reports whether the type carries an anchor date pair.
func (s Schema) HasRange() bool {
	return s.Has(KeyStartDate) && s.Has(KeyEndDate)
}

func (s Schema) label(key string) string {
	if f, ok := s.Field(key); ok {
		return f.Label
	}
	return key
}

func text(key, label, placeholder string) FieldSpec {
	return FieldSpec{Key: key, Label: label, Kind: KindText, Placeholder: placeholder}
}

func required(f FieldSpec) FieldSpec {
	f.Required = true
	return f
}

func date(key, label string) FieldSpec {
	return FieldSpec{Key: key, Label: label, Kind: KindDate, Placeholder: "YYYY-MM-DD"}
}

func clock(key, label string) FieldSpec {
	return FieldSpec{Key: key, Label: label, Kind: KindTime, Placeholder: "HH:MM"}
}

// trailing fields every type ends with
func tail() []FieldSpec {
	return []FieldSpec{
		{Key: KeyCost, Label: "Cost", Kind: KindMoney, Placeholder: "e.g. 120 or $120.50"},
		{Key: KeyStatus, Label: "Status", Kind: KindStatus, Placeholder: "confirmed / pending / cancelled"},
		text(KeyDetails, "Notes", "Booking reference, reminders..."),
	}
}

var schemas = map[model.ItemType]Schema{
	model.ItemFlight: {Type: model.ItemFlight, Fields: append([]FieldSpec{
		required(text(KeyName, "Title", "Paris to Rome")),
		text("airline", "Airline", "Air France"),
		text("flightNumber", "Flight Number", "AF1234"),
		text("departureAirport", "From Airport", "CDG"),
		text("arrivalAirport", "To Airport", "FCO"),
		required(date(KeyStartDate, "Departure Date")),
		clock(KeyStartTime, "Departure Time"),
		date(KeyEndDate, "Arrival Date"),
		clock(KeyEndTime, "Arrival Time"),
	}, tail()...)},
	model.ItemTrain: {Type: model.ItemTrain, Fields: append([]FieldSpec{
		required(text(KeyName, "Title", "Milan to Venice")),
		text("carrier", "Operator", "Trenitalia"),
		text("trainNumber", "Train Number", "FR 9417"),
		text("departureStation", "From Station", "Milano Centrale"),
		text("arrivalStation", "To Station", "Venezia S. Lucia"),
		required(date(KeyStartDate, "Departure Date")),
		clock(KeyStartTime, "Departure Time"),
		date(KeyEndDate, "Arrival Date"),
		clock(KeyEndTime, "Arrival Time"),
	}, tail()...)},
	model.ItemCab: {Type: model.ItemCab, Fields: append([]FieldSpec{
		required(text(KeyName, "Title", "Airport transfer")),
		text("carrier", "Cab Service", "G7"),
		required(text("pickupLocation", "Pickup Location", "Hotel lobby")),
		text("dropLocation", "Drop-off Location", "CDG Terminal 2"),
		required(date(KeyStartDate, "Pickup Date")),
		clock(KeyStartTime, "Pickup Time"),
		date(KeyEndDate, "Drop-off Date"),
		clock(KeyEndTime, "Drop-off Time"),
	}, tail()...)},
	model.ItemHotel: {Type: model.ItemHotel, Fields: append([]FieldSpec{
		required(text(KeyName, "Hotel Name", "Hotel Lutetia")),
		text(KeyLocation, "Address", "45 Bd Raspail"),
		text("roomType", "Room Type", "Double"),
		required(date(KeyStartDate, "Check-in Date")),
		clock(KeyStartTime, "Check-in Time"),
		required(date(KeyEndDate, "Check-out Date")),
		clock(KeyEndTime, "Check-out Time"),
	}, tail()...)},
	model.ItemBase: {Type: model.ItemBase, Fields: append([]FieldSpec{
		required(text(KeyName, "Base Name", "Aunt's apartment")),
		required(text("address", "Address", "12 Rue Oberkampf")),
		text(KeyLocation, "Area", "11th arrondissement"),
		required(date(KeyStartDate, "Check-in Date")),
		clock(KeyStartTime, "Check-in Time"),
		required(date(KeyEndDate, "Check-out Date")),
		clock(KeyEndTime, "Check-out Time"),
	}, tail()...)},
	model.ItemPlace: {Type: model.ItemPlace, Fields: append([]FieldSpec{
		required(text(KeyName, "Place Name", "Louvre Museum")),
		text(KeyLocation, "Location", "Rue de Rivoli"),
		date(KeyStartDate, "Visit Date"),
		clock(KeyTime, "Visit Time"),
		text(KeyDuration, "Duration", "2 Hours"),
	}, tail()...)},
	model.ItemOthers: {Type: model.ItemOthers, Fields: append([]FieldSpec{
		required(text(KeyName, "Activity", "Cooking class")),
		text(KeyLocation, "Location", "Le Marais"),
		date(KeyStartDate, "Start Date"),
		clock(KeyStartTime, "Start Time"),
		date(KeyEndDate, "End Date"),
		clock(KeyEndTime, "End Time"),
	}, tail()...)},
}

// SchemaFor returns the form schema for t. Unknown types get the others
// schema.
func SchemaFor(t model.ItemType) Schema {
	if s, ok := schemas[t]; ok {
		return s
	}
	s := schemas[model.ItemOthers]
	s.Type = t
	return s
}

// NewItemID returns a fresh itinerary item id.
func NewItemID() string {
	return uuid.NewString()
}

// Draft is the unsaved state of the item form: the type plus the raw string
// value of every field. It is passed by value and thrown away on cancel.
type Draft struct {
	Type   model.ItemType
	Values map[string]string
}

// NewDraft returns an empty draft for t.
func NewDraft(t model.ItemType) Draft {
	return Draft{Type: t, Values: map[string]string{}}
}

// Get returns the trimmed value of key.
func (d Draft) Get(key string) string {
	return strings.TrimSpace(d.Values[key])
}

// Set stores v under key. Keys outside the type's schema are ignored.
func (d *Draft) Set(key, v string) {
	if !SchemaFor(d.Type).Has(key) {
		return
	}
	if d.Values == nil {
		d.Values = map[string]string{}
	}
	d.Values[key] = v
}

// CheckRange validates the anchor pair only. The form runs it on every
// keystroke.
func (d Draft) CheckRange() error {
	s := SchemaFor(d.Type)
	if !s.HasRange() {
		return nil
	}
	err := ValidateRange(d.Get(KeyStartDate), d.Get(KeyStartTime), d.Get(KeyEndDate), d.Get(KeyEndTime))
	if re, ok := AsRangeError(err); ok {
		switch re.Kind {
		case DateOrderViolation:
			re.Msg = fmt.Sprintf("%s must be on or after %s", s.label(KeyEndDate), s.label(KeyStartDate))
		case SameDayTimeViolation:
			re.Msg = fmt.Sprintf("%s must be after %s on the same day", s.label(KeyEndTime), s.label(KeyStartTime))
		}
		return re
	}
	return err
}

// Duration recomputes the read-only duration from the anchor pair.
func (d Draft) Duration() (string, bool) {
	if !SchemaFor(d.Type).HasRange() {
		return "", false
	}
	return ComputeDuration(d.Get(KeyStartDate), d.Get(KeyStartTime), d.Get(KeyEndDate), d.Get(KeyEndTime))
}

// Validate checks required fields, formats, the anchor pair, cost and status.
// The first failure is returned.
func (d Draft) Validate() error {
	s := SchemaFor(d.Type)
	if !d.Type.Valid() {
		return domain.ValidationError{Field: "type", Msg: fmt.Sprintf("unknown item type %q", d.Type)}
	}
	for _, f := range s.Fields {
		v := d.Get(f.Key)
		if v == "" {
			if f.Required {
				return domain.ValidationError{Field: f.Key, Msg: f.Label + " is required"}
			}
			continue
		}
		switch f.Kind {
		case KindDate:
			if _, err := ParseDate(v); err != nil {
				return domain.ValidationError{Field: f.Key, Msg: f.Label + " must be a date (YYYY-MM-DD)", Err: err}
			}
		case KindTime:
			if _, _, err := ParseClock(v); err != nil {
				return domain.ValidationError{Field: f.Key, Msg: f.Label + " must be a time (HH:MM, 24h)", Err: err}
			}
		case KindMoney:
			if _, err := ParseCost(v); err != nil {
				return domain.ValidationError{Field: f.Key, Msg: f.Label + " must be a non-negative amount", Err: err}
			}
		case KindStatus:
			if !model.ItemStatus(strings.ToLower(v)).Valid() {
				return domain.ValidationError{Field: f.Key, Msg: f.Label + " must be confirmed, pending or cancelled"}
			}
		}
	}
	return d.CheckRange()
}

// Build validates the draft and returns the normalized item. An empty id gets
// a fresh one.
func (d Draft) Build(id string, tripID int64) (model.ItineraryItem, error) {
	if err := d.Validate(); err != nil {
		return model.ItineraryItem{}, err
	}
	if id == "" {
		id = NewItemID()
	}
	s := SchemaFor(d.Type)

	item := model.ItineraryItem{
		ID:        id,
		TripID:    tripID,
		Type:      d.Type,
		Name:      d.Get(KeyName),
		Location:  d.Get(KeyLocation),
		Details:   d.Get(KeyDetails),
		Duration:  d.Get(KeyDuration),
		Cost:      d.Get(KeyCost),
		Status:    model.ItemStatus(strings.ToLower(d.Get(KeyStatus))),
		StartDate: d.Get(KeyStartDate),
		StartTime: NormalizeClock(d.Get(KeyStartTime)),
		EndDate:   d.Get(KeyEndDate),
		EndTime:   NormalizeClock(d.Get(KeyEndTime)),
	}
	if item.Status == "" {
		item.Status = model.StatusPending
	}
	if s.Has(KeyTime) {
		item.Time = d.Get(KeyTime)
		if n := NormalizeClock(item.Time); n != "" {
			item.Time = n
		}
	} else {
		item.Time = item.StartTime
	}
	if dur, ok := d.Duration(); ok {
		item.Duration = dur
	}

	for _, f := range s.Fields {
		if coreKeys[f.Key] {
			continue
		}
		if v := d.Get(f.Key); v != "" {
			if item.Fields == nil {
				item.Fields = map[string]string{}
			}
			item.Fields[f.Key] = v
		}
	}
	return item, nil
}

// DraftFromItem loads an existing item into a draft for editing.
func DraftFromItem(item model.ItineraryItem) Draft {
	d := NewDraft(item.Type)
	core := map[string]string{
		KeyName:      item.Name,
		KeyLocation:  item.Location,
		KeyDetails:   item.Details,
		KeyDuration:  item.Duration,
		KeyCost:      item.Cost,
		KeyStatus:    string(item.Status),
		KeyTime:      item.Time,
		KeyStartDate: item.StartDate,
		KeyStartTime: item.StartTime,
		KeyEndDate:   item.EndDate,
		KeyEndTime:   item.EndTime,
	}
	for _, f := range SchemaFor(item.Type).Fields {
		if v, ok := core[f.Key]; ok {
			d.Values[f.Key] = v
			continue
		}
		d.Values[f.Key] = item.Field(f.Key)
	}
	return d
}

// ParseCost reads an amount with an optional currency prefix ("$", "€",
// "EUR ") and thousands separators.
func ParseCost(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimLeft(s, "$€£¥₹")
	if len(s) > 3 && isUpperAlpha(s[:3]) {
		s = s[3:]
	}
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, fmt.Errorf("negative amount %v", v)
	}
	return v, nil
}

func isUpperAlpha(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
