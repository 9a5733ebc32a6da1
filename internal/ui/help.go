package ui

import (
	"strings"
	"tripsee/internal/model"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

func newHelpModel(width int) help.Model {
	h := help.New()
	h.Width = width
	h.ShortSeparator = "  "
	h.Styles.ShortKey = HelpKeyStyle
	h.Styles.ShortDesc = HelpDescStyle
	h.Styles.ShortSeparator = HelpDescStyle
	h.Styles.Ellipsis = HelpDescStyle
	return h
}

// RenderHelp renders the context-sensitive footer.
func RenderHelp(keys KeyMap, formKeys FormKeyMap, screen model.Screen, mode model.Mode, width int) string {
	var bindings []key.Binding
	switch {
	case mode == model.ModeInsert:
		bindings = formKeys.ShortHelp(screen == model.ScreenItemForm)
	case screen == model.ScreenTrips:
		bindings = keys.TripsHelp()
	case screen == model.ScreenItinerary:
		bindings = keys.ItineraryHelp()
	case screen == model.ScreenItemDetail:
		bindings = keys.ItemDetailHelp()
	default:
		bindings = []key.Binding{keys.Down, keys.Back, keys.Quit}
	}
	h := newHelpModel(max(0, width-2))
	return FooterStyle.Width(width).Render(h.ShortHelpView(bindings))
}

// RenderFullHelp renders the full help screen from the same bindings as the
// footer, grouped by screen.
func RenderFullHelp(keys KeyMap, formKeys FormKeyMap, width, height int) string {
	content := lipgloss.NewStyle().
		Width(width-4).
		Height(height-6).
		Padding(1, 2)

	sections := []string{
		titleSection("Navigation"),
		helpSection(keys.Down, keys.Up, keys.Left, keys.Right, keys.Top, keys.Bottom,
			keys.HalfPageDown, keys.HalfPageUp, keys.Undo, keys.Redo, keys.Help, keys.Quit),
		titleSection("Trips"),
		helpSection(keys.Add, keys.Edit, keys.Delete, keys.Select, keys.NextColumn, keys.PrevColumn,
			keys.ColumnJump, keys.SortAsc, keys.SortDesc, keys.HideColumn, keys.ShowColumns,
			keys.FilterValue, keys.ClearFilter),
		titleSection("Itinerary"),
		helpSection(keys.PrevDay, keys.NextDay, keys.AddItem, keys.Select, keys.Edit, keys.Delete,
			keys.EditTrip, keys.Export, keys.Back),
		titleSection("Forms"),
		helpSection(formKeys.NextField, formKeys.PrevField, formKeys.CycleStatus, formKeys.Save, formKeys.Cancel),
	}

	helpText := content.Render(strings.Join(sections, "\n\n"))

	return lipgloss.JoinVertical(
		lipgloss.Left,
		TitleStyle.Width(width).Render("Help"),
		helpText,
		FooterStyle.Width(width).Render(HelpKeyStyle.Render("esc")+" "+HelpDescStyle.Render("close help")),
	)
}

func titleSection(title string) string {
	return LabelStyle.Render(title)
}

func helpSection(bindings ...key.Binding) string {
	var lines []string
	for _, b := range bindings {
		h := b.Help()
		lines = append(lines, "  "+HelpKeyStyle.Width(14).Render(h.Key)+HelpDescStyle.Render(h.Desc))
	}
	return strings.Join(lines, "\n")
}
