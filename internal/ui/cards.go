package ui

import (
	"strings"
	"tripsee/internal/model"
	"tripsee/internal/util"

	"github.com/charmbracelet/lipgloss"
)

// renderItemCard renders one itinerary record. Cards are stateless; the
// caller decides selection and tags.
func renderItemCard(item model.ItineraryItem, tags []string, width int, selected bool) string {
	style := CardStyle
	if selected {
		style = SelectedCardStyle
	}
	inner := max(20, width-4)

	title := lipgloss.NewStyle().Foreground(typeColor(item.Type)).Bold(true).
		Render(util.TruncateString(item.Name, inner-24))
	right := renderStatus(item.Status)
	for _, tag := range tags {
		right = renderTag(tag, item.Type) + " " + right
	}
	header := title + strings.Repeat(" ", max(1, inner-lipgloss.Width(title)-lipgloss.Width(right))) + right

	lines := []string{header}
	for _, l := range cardBody(item) {
		if l != "" {
			lines = append(lines, util.TruncateString(l, inner))
		}
	}
	if item.Cost != "" || item.Duration != "" {
		var meta []string
		if item.Duration != "" {
			meta = append(meta, "⏱ "+item.Duration)
		}
		if item.Cost != "" {
			meta = append(meta, "💰 "+item.Cost)
		}
		lines = append(lines, HelpDescStyle.Render(strings.Join(meta, "   ")))
	}

	return style.Width(inner).Render(strings.Join(lines, "\n"))
}

func cardBody(item model.ItineraryItem) []string {
	switch item.Type {
	case model.ItemFlight:
		return []string{
			joinNonEmpty(" · ", item.Field("airline"), item.Field("flightNumber")),
			route(item.Field("departureAirport"), item.Field("arrivalAirport")),
			span("Depart", item.StartDate, item.StartTime, "Arrive", item.EndDate, item.EndTime),
		}
	case model.ItemTrain:
		return []string{
			joinNonEmpty(" · ", item.Field("carrier"), item.Field("trainNumber")),
			route(item.Field("departureStation"), item.Field("arrivalStation")),
			span("Depart", item.StartDate, item.StartTime, "Arrive", item.EndDate, item.EndTime),
		}
	case model.ItemCab:
		return []string{
			item.Field("carrier"),
			route(item.Field("pickupLocation"), item.Field("dropLocation")),
			span("Pickup", item.StartDate, item.StartTime, "Drop-off", item.EndDate, item.EndTime),
		}
	case model.ItemHotel:
		return []string{
			item.Location,
			joinNonEmpty(" · ", item.Field("roomType")),
			span("Check-in", item.StartDate, item.StartTime, "Check-out", item.EndDate, item.EndTime),
		}
	case model.ItemBase:
		return []string{
			joinNonEmpty(" · ", item.Field("address"), item.Location),
			span("Check-in", item.StartDate, item.StartTime, "Check-out", item.EndDate, item.EndTime),
		}
	case model.ItemPlace:
		when := ""
		if item.Time != "" {
			when = "at " + item.Time
		}
		return []string{joinNonEmpty(" · ", item.Location, when)}
	default:
		return []string{
			item.Location,
			span("Start", item.StartDate, item.StartTime, "End", item.EndDate, item.EndTime),
			item.Details,
		}
	}
}

func renderStatus(s model.ItemStatus) string {
	if s == "" {
		s = model.StatusPending
	}
	return lipgloss.NewStyle().Foreground(statusColor(s)).Render("● " + string(s))
}

func renderTag(tag string, t model.ItemType) string {
	return TagStyle.Background(typeColor(t)).Render(tag)
}

func route(from, to string) string {
	switch {
	case from == "" && to == "":
		return ""
	case to == "":
		return from
	case from == "":
		return "→ " + to
	}
	return from + " → " + to
}

func span(startLabel, startDate, startTime, endLabel, endDate, endTime string) string {
	start := joinNonEmpty(" ", util.FormatDateShort(startDate), startTime)
	end := joinNonEmpty(" ", util.FormatDateShort(endDate), endTime)
	switch {
	case start == "" && end == "":
		return ""
	case end == "":
		return startLabel + " " + start
	case start == "":
		return endLabel + " " + end
	}
	return startLabel + " " + start + "  →  " + endLabel + " " + end
}

func joinNonEmpty(sep string, parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
