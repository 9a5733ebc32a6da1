package ui

import (
	"strings"
	"tripsee/internal/itinerary"
	"tripsee/internal/model"

	"github.com/charmbracelet/lipgloss"
)

// ItemDetailModel represents the item detail screen.
type ItemDetailModel struct {
	item model.ItineraryItem
}

// NewItemDetailModel creates a new item detail model.
func NewItemDetailModel(item model.ItineraryItem) *ItemDetailModel {
	return &ItemDetailModel{item: item}
}

// View renders every schema field of the item.
func (m *ItemDetailModel) View(width, height int) string {
	shortcuts := HelpDescStyle.Render("e edit  d delete  h back")

	schema := itinerary.SchemaFor(m.item.Type)
	values := itinerary.DraftFromItem(m.item).Values

	typeLine := lipgloss.NewStyle().Foreground(typeColor(m.item.Type)).Bold(true).Render(m.item.Type.Label())
	fields := []string{typeLine, ""}
	var notes string
	for _, f := range schema.Fields {
		switch f.Key {
		case itinerary.KeyDetails:
			notes = values[f.Key]
			continue
		case itinerary.KeyStatus:
			fields = append(fields, LabelStyle.Render(f.Label+":")+" "+renderStatus(m.item.Status))
			continue
		}
		fields = append(fields, renderField(f.Label, values[f.Key]))
		if f.Key == itinerary.KeyEndTime {
			fields = append(fields, renderField("Duration", m.item.Duration))
		}
	}

	divider := lipgloss.NewStyle().
		Foreground(ColorMuted).
		Render(strings.Repeat("─", max(0, width-8)))

	sections := []string{strings.Join(fields, "\n"), divider}
	if notes != "" {
		sections = append(sections, LabelStyle.Render("Notes:"), NormalRowStyle.Render(notes))
	} else {
		sections = append(sections, HelpDescStyle.Render("No notes for this item"))
	}

	content := PanelStyle.
		Width(width - 4).
		Render(strings.Join(sections, "\n\n"))

	header := lipgloss.NewStyle().
		Width(width - 4).
		Align(lipgloss.Right).
		Render(shortcuts)

	return lipgloss.JoinVertical(lipgloss.Left, header, content)
}

func renderField(label, value string) string {
	if value == "" {
		value = "—"
	}
	return LabelStyle.Render(label+":") + " " + NormalRowStyle.Render(value)
}
