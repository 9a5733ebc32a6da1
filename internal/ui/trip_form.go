package ui

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"
	"tripsee/internal/db"
	"tripsee/internal/domain"
	"tripsee/internal/itinerary"
	"tripsee/internal/model"
	"tripsee/internal/search"
	"tripsee/internal/util"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	tripFieldName = iota
	tripFieldDestination
	tripFieldStart
	tripFieldEnd
	tripFieldNotes
)

const searchDebounce = 300 * time.Millisecond

type destinationResultsMsg struct {
	seq     int
	results []model.Destination
	err     error
}

type debounceTick struct {
	seq int
}

// TripFormModel represents the trip form.
type TripFormModel struct {
	db           *sql.DB
	provider     search.Provider
	tripID       int64
	before       *model.Trip
	focusedField int
	inputs       []textinput.Model
	destination  model.Destination
	error        string

	// Autocomplete state
	searchSeq     int
	searchCancel  context.CancelFunc
	searchResults []model.Destination
	searchCursor  int
	showDropdown  bool
	searching     bool
	searchSpinner spinner.Model
}

// NewTripFormModel creates a new trip form.
func NewTripFormModel(database *sql.DB, provider search.Provider) *TripFormModel {
	inputs := make([]textinput.Model, 5)

	inputs[tripFieldName] = textinput.New()
	inputs[tripFieldName].Placeholder = "Spring in Paris"
	inputs[tripFieldName].Focus()
	inputs[tripFieldName].CharLimit = 100

	inputs[tripFieldDestination] = textinput.New()
	inputs[tripFieldDestination].Placeholder = "Search destination..."
	inputs[tripFieldDestination].CharLimit = 100

	inputs[tripFieldStart] = textinput.New()
	inputs[tripFieldStart].Placeholder = "2025-06-20, today, +7"
	inputs[tripFieldStart].CharLimit = 32

	inputs[tripFieldEnd] = textinput.New()
	inputs[tripFieldEnd].Placeholder = "2025-06-24"
	inputs[tripFieldEnd].CharLimit = 32

	inputs[tripFieldNotes] = textinput.New()
	inputs[tripFieldNotes].Placeholder = "Your notes..."
	inputs[tripFieldNotes].CharLimit = 500

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &TripFormModel{
		db:            database,
		provider:      provider,
		inputs:        inputs,
		searchSpinner: sp,
	}
}

// LoadTrip loads an existing trip for editing.
func (m *TripFormModel) LoadTrip(trip model.Trip) {
	before := trip
	m.tripID = trip.ID
	m.before = &before
	m.destination = trip.Destination
	m.inputs[tripFieldName].SetValue(trip.Name)
	m.inputs[tripFieldDestination].SetValue(trip.Destination.Name)
	m.inputs[tripFieldStart].SetValue(trip.StartDate)
	m.inputs[tripFieldEnd].SetValue(trip.EndDate)
	m.inputs[tripFieldNotes].SetValue(trip.Notes)
}

// Close cancels any in-flight destination search.
func (m *TripFormModel) Close() {
	if m.searchCancel != nil {
		m.searchCancel()
		m.searchCancel = nil
	}
}

// Update handles all messages.
func (m TripFormModel) Update(msg tea.Msg) (TripFormModel, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case debounceTick:
		if msg.seq == m.searchSeq && m.provider != nil {
			query := m.inputs[tripFieldDestination].Value()
			cmd := m.doSearch(query, msg.seq)
			return m, cmd
		}
		return m, nil
	case destinationResultsMsg:
		if msg.seq != m.searchSeq {
			return m, nil
		}
		m.searching = false
		m.searchCancel = nil
		if msg.err != nil {
			m.showDropdown = false
			if errors.Is(msg.err, context.Canceled) {
				return m, nil
			}
			err := msg.err
			return m, func() tea.Msg {
				return model.AlertMsg{Title: "Destination search failed", Body: err.Error()}
			}
		}
		m.error = ""
		m.searchResults = msg.results
		m.searchCursor = 0
		m.showDropdown = len(msg.results) > 0
		return m, nil
	case spinner.TickMsg:
		if !m.searching {
			return m, nil
		}
		var cmd tea.Cmd
		m.searchSpinner, cmd = m.searchSpinner.Update(msg)
		return m, cmd
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.showDropdown && m.focusedField == tripFieldDestination {
		switch keyMsg.String() {
		case "esc":
			m.showDropdown = false
			return m, nil
		case "down", "ctrl+n":
			if m.searchCursor < len(m.searchResults)-1 {
				m.searchCursor++
			}
			return m, nil
		case "up", "ctrl+p":
			if m.searchCursor > 0 {
				m.searchCursor--
			}
			return m, nil
		case "enter", "tab":
			if m.searchCursor < len(m.searchResults) {
				m.selectDestination(m.searchResults[m.searchCursor])
				m.nextField()
			}
			return m, nil
		}
	}

	switch keyMsg.String() {
	case "esc":
		m.Close()
		return m, func() tea.Msg {
			return model.FormCancelledMsg{}
		}
	case "ctrl+s":
		input, err := m.collect()
		if err != nil {
			m.error = errorText(err)
			return m, nil
		}
		m.error = ""
		m.Close()
		return m, m.save(input)
	case "tab", "enter":
		m.nextField()
		return m, nil
	case "shift+tab":
		m.prevField()
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focusedField], cmd = m.inputs[m.focusedField].Update(keyMsg)
	cmds = append(cmds, cmd)

	if m.focusedField == tripFieldDestination {
		// Typing over a picked destination drops its catalog data.
		if strings.TrimSpace(m.inputs[tripFieldDestination].Value()) != m.destination.Name {
			m.destination = model.Destination{}
		}
		if m.provider != nil {
			cmds = append(cmds, m.queueSearch())
		}
	}

	return m, tea.Batch(cmds...)
}

func (m *TripFormModel) queueSearch() tea.Cmd {
	query := strings.TrimSpace(m.inputs[tripFieldDestination].Value())
	m.searchSeq++
	m.Close()
	if len(query) < 2 {
		m.showDropdown = false
		m.searchResults = nil
		m.searching = false
		return nil
	}

	seq := m.searchSeq
	m.searching = true
	m.showDropdown = false
	return tea.Batch(
		m.searchSpinner.Tick,
		tea.Tick(searchDebounce, func(time.Time) tea.Msg {
			return debounceTick{seq: seq}
		}),
	)
}

func (m *TripFormModel) doSearch(query string, seq int) tea.Cmd {
	m.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	m.searchCancel = cancel
	provider := m.provider
	return func() tea.Msg {
		defer cancel()
		results, err := provider.Search(ctx, query)
		return destinationResultsMsg{seq: seq, results: results, err: err}
	}
}

func (m *TripFormModel) selectDestination(d model.Destination) {
	m.destination = d
	m.inputs[tripFieldDestination].SetValue(d.Name)
	m.showDropdown = false
	if strings.TrimSpace(m.inputs[tripFieldName].Value()) == "" {
		m.inputs[tripFieldName].SetValue("Trip to " + d.Name)
	}
}

type tripInput struct {
	name        string
	destination model.Destination
	startDate   string
	endDate     string
	notes       string
}

// collect validates the form and returns the normalized values.
func (m *TripFormModel) collect() (tripInput, error) {
	in := tripInput{
		name:        strings.TrimSpace(m.inputs[tripFieldName].Value()),
		destination: m.destination,
		notes:       strings.TrimSpace(m.inputs[tripFieldNotes].Value()),
	}
	if in.name == "" {
		return in, domain.ValidationError{Field: "name", Msg: "Trip name is required"}
	}
	if typed := strings.TrimSpace(m.inputs[tripFieldDestination].Value()); in.destination.Name == "" && typed != "" {
		in.destination = model.Destination{Name: typed}
	}

	var err error
	in.startDate, err = util.ParseDateInput(m.inputs[tripFieldStart].Value())
	if err != nil {
		return in, domain.ValidationError{Field: "startDate", Msg: "Start date must be a date (e.g. 2025-06-20)", Err: err}
	}
	in.endDate, err = util.ParseDateInput(m.inputs[tripFieldEnd].Value())
	if err != nil {
		return in, domain.ValidationError{Field: "endDate", Msg: "End date must be a date (e.g. 2025-06-24)", Err: err}
	}
	if in.startDate == "" {
		return in, domain.ValidationError{Field: "startDate", Msg: "Start date is required"}
	}
	if in.endDate == "" {
		return in, domain.ValidationError{Field: "endDate", Msg: "End date is required"}
	}
	if err := itinerary.ValidateRange(in.startDate, "", in.endDate, ""); err != nil {
		return in, err
	}
	return in, nil
}

// View renders the form.
func (m *TripFormModel) View(width, height int) string {
	var fields []string

	useSearchSidebar := m.shouldUseSearchSidebar(width)

	fields = append(fields, renderFormField("Trip Name *", m.inputs[tripFieldName], m.focusedField == tripFieldName))

	destField := renderFormField("Destination", m.inputs[tripFieldDestination], m.focusedField == tripFieldDestination)
	if !useSearchSidebar && m.showDropdown && len(m.searchResults) > 0 {
		destField = lipgloss.JoinVertical(lipgloss.Left, destField, m.renderDropdown(width-8))
	} else if !useSearchSidebar && m.searching && m.focusedField == tripFieldDestination {
		destField = lipgloss.JoinVertical(lipgloss.Left, destField, HelpDescStyle.Render(m.searchSpinner.View()+" Searching..."))
	} else if m.destination.Country != "" {
		destField = lipgloss.JoinVertical(lipgloss.Left, destField, HelpDescStyle.Render("  "+m.destination.Address+" · "+m.destination.Country))
	}
	fields = append(fields, destField)

	fields = append(fields, renderFormField("Start Date *", m.inputs[tripFieldStart], m.focusedField == tripFieldStart))
	fields = append(fields, renderFormField("End Date *", m.inputs[tripFieldEnd], m.focusedField == tripFieldEnd))
	fields = append(fields, renderFormField("Notes", m.inputs[tripFieldNotes], m.focusedField == tripFieldNotes))

	if m.error != "" {
		fields = append(fields, "")
		fields = append(fields, ErrorStyle.Render(m.error))
	}

	formContent := strings.Join(fields, "\n")
	if useSearchSidebar {
		leftWidth := max(44, (width-14)*55/100)
		rightWidth := max(30, (width-14)-leftWidth)
		left := lipgloss.NewStyle().Width(leftWidth).Render(formContent)
		right := m.renderSearchSidebar(rightWidth, height-10)
		formContent = lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
	}

	return PanelStyle.
		Width(width - 4).
		Height(height - 4).
		Render(formContent)
}

func (m *TripFormModel) destinationLine(d model.Destination, width int, selected bool) string {
	style := NormalRowStyle
	if selected {
		style = SelectedRowStyle
	}
	left := util.TruncateString(d.Name, 40)
	if d.Country != "" {
		left += "  ·  " + d.Country
	}
	right := ""
	if d.Address != "" {
		right = HelpDescStyle.Render(util.TruncateString(d.Address, 24))
	}
	padding := max(0, width-lipgloss.Width(left)-lipgloss.Width(right))
	return style.Width(width).Render(left + strings.Repeat(" ", padding) + right)
}

func (m *TripFormModel) renderDropdown(width int) string {
	var items []string
	for i, d := range m.searchResults {
		items = append(items, m.destinationLine(d, width-4, i == m.searchCursor))
	}
	if len(items) == 0 {
		items = append(items, HelpDescStyle.Render("No results"))
	}
	return BorderStyle.
		Width(width).
		Render(strings.Join(items, "\n"))
}

func (m *TripFormModel) shouldUseSearchSidebar(width int) bool {
	if width < 110 || m.focusedField != tripFieldDestination {
		return false
	}
	return m.showDropdown || m.searching
}

func (m *TripFormModel) renderSearchSidebar(width, availableHeight int) string {
	title := LabelStyle.Render("Destinations")

	if m.searching {
		body := HelpDescStyle.Render(m.searchSpinner.View() + " Searching...")
		return BorderStyle.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, title, "", body))
	}

	maxRows := min(12, max(5, availableHeight/2))
	var items []string
	for i := 0; i < len(m.searchResults) && i < maxRows; i++ {
		items = append(items, m.destinationLine(m.searchResults[i], max(10, width-8), i == m.searchCursor))
	}

	help := HelpDescStyle.Render("↑/↓ move  enter/tab select  esc close")
	body := lipgloss.JoinVertical(lipgloss.Left, items...)
	return BorderStyle.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, title, "", body, "", help))
}

func (m *TripFormModel) nextField() {
	m.inputs[m.focusedField].Blur()
	m.focusedField = (m.focusedField + 1) % len(m.inputs)
	m.inputs[m.focusedField].Focus()
	m.showDropdown = false
}

func (m *TripFormModel) prevField() {
	m.inputs[m.focusedField].Blur()
	m.focusedField--
	if m.focusedField < 0 {
		m.focusedField = len(m.inputs) - 1
	}
	m.inputs[m.focusedField].Focus()
	m.showDropdown = false
}

func (m *TripFormModel) save(in tripInput) tea.Cmd {
	database := m.db
	tripID := m.tripID
	before := m.before
	return func() tea.Msg {
		ctx := context.Background()
		if tripID > 0 {
			err := db.UpdateTrip(ctx, database, model.UpdateTrip{
				ID:          tripID,
				Name:        in.name,
				Destination: in.destination,
				StartDate:   in.startDate,
				EndDate:     in.endDate,
				Notes:       in.notes,
			})
			if err != nil {
				return model.ErrorMsg{Err: err}
			}
			after, err := db.GetTrip(ctx, database, tripID)
			if err != nil {
				return model.ErrorMsg{Err: err}
			}
			return model.TripSavedMsg{ID: tripID, Operation: "update", Before: before, After: after}
		}

		id, err := db.InsertTrip(ctx, database, model.NewTrip{
			Name:        in.name,
			Destination: in.destination,
			StartDate:   in.startDate,
			EndDate:     in.endDate,
			Notes:       in.notes,
		})
		if err != nil {
			return model.ErrorMsg{Err: err}
		}
		after, err := db.GetTrip(ctx, database, id)
		if err != nil {
			return model.ErrorMsg{Err: err}
		}
		return model.TripSavedMsg{ID: id, Operation: "insert", After: after}
	}
}

// errorText returns the user-facing message of a validation or range error.
func errorText(err error) string {
	var ve domain.ValidationError
	if errors.As(err, &ve) && ve.Msg != "" {
		return ve.Msg
	}
	if re, ok := itinerary.AsRangeError(err); ok {
		return re.Msg
	}
	return err.Error()
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func renderFormField(label string, input textinput.Model, focused bool) string {
	style := BorderStyle
	if focused {
		style = ActiveBorderStyle
	}

	field := lipgloss.JoinVertical(
		lipgloss.Left,
		LabelStyle.Render(label),
		input.View(),
	)

	return style.Render(field)
}
