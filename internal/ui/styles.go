package ui

import (
	"tripsee/internal/model"

	"github.com/charmbracelet/lipgloss"
)

// Palette: dusk blues with warm item accents.
var (
	ColorBase    = lipgloss.Color("#1B2128")
	ColorSurface = lipgloss.Color("#27313B")
	ColorMuted   = lipgloss.Color("#7D8A96")
	ColorText    = lipgloss.Color("#D8E1E8")
	ColorAccent  = lipgloss.Color("#7FB2C9")
	ColorGreen   = lipgloss.Color("#a6e3a1")
	ColorRed     = lipgloss.Color("#f38ba8")
	ColorYellow  = lipgloss.Color("#f9e2af")
)

// Styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true).
			Padding(0, 1)

	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true).
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(ColorMuted)

	TableHeaderStyle = lipgloss.NewStyle().
				Foreground(ColorAccent).
				Bold(true).
				Padding(0, 1).
				Background(ColorSurface)

	SelectedRowStyle = lipgloss.NewStyle().
				Foreground(ColorBase).
				Background(ColorAccent).
				Bold(false)

	NormalRowStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(ColorMuted)

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(ColorAccent)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorRed).
			Padding(0, 1)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorGreen).
			Padding(0, 1)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	BorderStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(ColorMuted).
			Padding(1, 2)

	ActiveBorderStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(ColorAccent).
				Padding(1, 2)

	PanelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(ColorMuted).
			Padding(1, 2)

	BreadcrumbStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	BreadcrumbActiveStyle = lipgloss.NewStyle().
				Foreground(ColorAccent)

	EmptyStateStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true).
			Padding(2, 4)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)
)

// Itinerary styles
var (
	ColorBlue   = lipgloss.Color("#89b4fa")
	ColorPeach  = lipgloss.Color("#fab387")
	ColorMauve  = lipgloss.Color("#cba6f7")
	ColorTeal   = lipgloss.Color("#94e2d5")
	ColorRowAlt = lipgloss.Color("#212931")

	CardStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorMuted).
			Padding(0, 1)

	SelectedCardStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(ColorAccent).
				Padding(0, 1)

	TagStyle = lipgloss.NewStyle().
			Foreground(ColorBase).
			Bold(true).
			Padding(0, 1)

	DayTabStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)

	ActiveDayTabStyle = lipgloss.NewStyle().
				Foreground(ColorBase).
				Background(ColorAccent).
				Bold(true).
				Padding(0, 1)

	ReadOnlyStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true)

	AlertStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.ThickBorder()).
			BorderForeground(ColorRed).
			Padding(1, 3)
)

// statusColor maps an item status to its colour.
func statusColor(s model.ItemStatus) lipgloss.Color {
	switch s {
	case model.StatusConfirmed:
		return ColorGreen
	case model.StatusCancelled:
		return ColorRed
	default:
		return ColorYellow
	}
}

// typeColor maps an item type to its accent colour.
func typeColor(t model.ItemType) lipgloss.Color {
	switch t {
	case model.ItemFlight, model.ItemTrain, model.ItemCab:
		return ColorBlue
	case model.ItemHotel, model.ItemBase:
		return ColorMauve
	case model.ItemPlace:
		return ColorPeach
	default:
		return ColorTeal
	}
}
