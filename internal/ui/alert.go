package ui

import (
	"tripsee/internal/model"

	"github.com/charmbracelet/lipgloss"
)

// alertModel is a blocking message box with a single OK action.
type alertModel struct {
	title string
	body  string
}

func newAlert(msg model.AlertMsg) *alertModel {
	title := msg.Title
	if title == "" {
		title = "Something went wrong"
	}
	return &alertModel{title: title, body: msg.Body}
}

func (a *alertModel) View(width, height int) string {
	boxWidth := min(60, max(30, width-10))
	box := AlertStyle.Width(boxWidth).Render(lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.NewStyle().Foreground(ColorRed).Bold(true).Render(a.title),
		"",
		NormalRowStyle.Width(boxWidth-6).Render(a.body),
		"",
		lipgloss.PlaceHorizontal(boxWidth-6, lipgloss.Right, SelectedRowStyle.Padding(0, 2).Render("OK")),
	))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
