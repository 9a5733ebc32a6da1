package ui

import (
	"fmt"
	"strings"
	"tripsee/internal/itinerary"
	"tripsee/internal/model"
	"tripsee/internal/util"

	"github.com/charmbracelet/lipgloss"
)

// ItineraryModel is the day-by-day view of one trip. Day plans are derived
// from the flat item list every time it changes and are never stored.
type ItineraryModel struct {
	detail   model.TripDetail
	days     []model.DayPlan
	dayIndex int
	cursor   int
}

// NewItineraryModel partitions the trip's items and selects day.
func NewItineraryModel(detail model.TripDetail, day int) *ItineraryModel {
	m := &ItineraryModel{detail: detail}
	// A trip without usable dates lists its items flat.
	m.days, _ = itinerary.PlanTrip(detail)
	m.SelectDay(day)
	return m
}

// Trip returns the trip shown.
func (m *ItineraryModel) Trip() model.Trip {
	return m.detail.Trip
}

// Days returns the derived day plans.
func (m *ItineraryModel) Days() []model.DayPlan {
	return m.days
}

// DayIndex returns the zero-based selected day.
func (m *ItineraryModel) DayIndex() int {
	return m.dayIndex
}

// SelectDay selects day i, clamped to the trip.
func (m *ItineraryModel) SelectDay(i int) {
	m.dayIndex = min(max(0, i), max(0, len(m.days)-1))
	m.cursor = 0
}

func (m *ItineraryModel) NextDay() {
	m.SelectDay(m.dayIndex + 1)
}

func (m *ItineraryModel) PrevDay() {
	m.SelectDay(m.dayIndex - 1)
}

// currentItems returns the items listed on the selected day, or every item
// when the trip has no usable dates.
func (m *ItineraryModel) currentItems() []model.ItineraryItem {
	if len(m.days) == 0 {
		return m.detail.Items
	}
	return m.days[m.dayIndex].Items
}

// SelectedItem returns the item under the cursor.
func (m *ItineraryModel) SelectedItem() (model.ItineraryItem, bool) {
	items := m.currentItems()
	if m.cursor >= len(items) {
		return model.ItineraryItem{}, false
	}
	return items[m.cursor], true
}

// SelectedDate returns the selected day as YYYY-MM-DD, or "".
func (m *ItineraryModel) SelectedDate() string {
	if len(m.days) == 0 {
		return ""
	}
	return itinerary.FormatDate(m.days[m.dayIndex].Date)
}

func (m *ItineraryModel) MoveDown() {
	if m.cursor < len(m.currentItems())-1 {
		m.cursor++
	}
}

func (m *ItineraryModel) MoveUp() {
	if m.cursor > 0 {
		m.cursor--
	}
}

func (m *ItineraryModel) JumpToTop() {
	m.cursor = 0
}

func (m *ItineraryModel) JumpToBottom() {
	m.cursor = max(0, len(m.currentItems())-1)
}

// View renders the trip header, day tabs and the selected day's cards.
func (m *ItineraryModel) View(width, height int) string {
	trip := m.detail.Trip

	summary := []string{util.FormatDateRange(trip.StartDate, trip.EndDate)}
	if trip.Destination.Name != "" {
		summary = append([]string{trip.Destination.Label()}, summary...)
	}
	if len(m.days) > 0 {
		summary = append(summary, util.FormatDays(len(m.days)))
	}
	summary = append(summary, fmt.Sprintf("%d items", len(m.detail.Items)))
	header := HelpDescStyle.Render(strings.Join(summary, "  ·  "))

	sections := []string{header}
	if len(m.days) == 0 {
		sections = append(sections, "", HelpDescStyle.Render("Set trip dates (E) to see day plans."))
	} else {
		sections = append(sections, m.renderDayTabs(width-4))
		day := m.days[m.dayIndex]
		sections = append(sections, LabelStyle.Render(util.FormatDayHeading(day.DayNumber, day.Date)))
	}

	items := m.currentItems()
	if len(items) == 0 {
		sections = append(sections, EmptyStateStyle.Render("Nothing planned for this day.\nPress  a  to add a flight, stay or place."))
		return lipgloss.NewStyle().Width(width).Height(height).Render(strings.Join(sections, "\n"))
	}

	used := lipgloss.Height(strings.Join(sections, "\n"))
	var cards []string
	for i, item := range items {
		var tags []string
		if len(m.days) > 0 {
			tags = itinerary.TagsForDay(item, m.days[m.dayIndex].Date)
		}
		cards = append(cards, renderItemCard(item, tags, width-4, i == m.cursor))
	}

	// Scroll so the selected card stays visible.
	start := 0
	for start < m.cursor && lipgloss.Height(strings.Join(cards[start:m.cursor+1], "\n")) > height-used-1 {
		start++
	}
	var shown []string
	total := used
	for _, c := range cards[start:] {
		h := lipgloss.Height(c)
		if total+h > height && len(shown) > 0 {
			break
		}
		shown = append(shown, c)
		total += h
	}

	sections = append(sections, shown...)
	return strings.Join(sections, "\n")
}

func (m *ItineraryModel) renderDayTabs(width int) string {
	var tabs []string
	for i, day := range m.days {
		label := fmt.Sprintf("D%d %s", day.DayNumber, day.Date.Format("Jan 02"))
		if n := len(day.Items); n > 0 {
			label += fmt.Sprintf(" (%d)", n)
		}
		style := DayTabStyle
		if i == m.dayIndex {
			style = ActiveDayTabStyle
		}
		tabs = append(tabs, style.Render(label))
	}

	// Window the tabs around the selected day when they overflow.
	first, last := 0, len(tabs)
	for lipgloss.Width(strings.Join(tabs[first:last], "")) > width && last-first > 1 {
		if m.dayIndex-first > last-1-m.dayIndex {
			first++
		} else {
			last--
		}
	}
	line := strings.Join(tabs[first:last], "")
	if first > 0 {
		line = HelpDescStyle.Render("‹ ") + line
	}
	if last < len(tabs) {
		line += HelpDescStyle.Render(" ›")
	}
	return line
}
