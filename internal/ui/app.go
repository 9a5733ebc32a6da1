package ui

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"tripsee/internal/db"
	"tripsee/internal/domain"
	"tripsee/internal/itinerary"
	"tripsee/internal/model"
	"tripsee/internal/report"
	"tripsee/internal/search"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Model is the root Bubble Tea model.
type Model struct {
	db        *sql.DB
	provider  search.Provider
	exportDir string
	screen    model.Screen
	mode      model.Mode
	gState    GState

	width  int
	height int

	error       string
	info        string
	showingHelp bool
	columnJump  bool
	alert       *alertModel

	// Screen models
	trips      *TripsModel
	itinerary  *ItineraryModel
	itemDetail *ItemDetailModel
	tripForm   *TripFormModel
	itemForm   *ItemFormModel
	formReturn model.Screen

	keys      KeyMap
	formKeys  FormKeyMap
	prefs     UIPreferences
	undoStack []undoAction
	redoStack []undoAction
}

// New creates a new root model. PDF exports are written to exportDir.
func New(database *sql.DB, provider search.Provider, exportDir string) Model {
	return Model{
		db:        database,
		provider:  provider,
		exportDir: exportDir,
		screen:    model.ScreenTrips,
		mode:      model.ModeNav,
		gState:    GStateIdle,
		keys:      DefaultKeyMap(),
		formKeys:  DefaultFormKeyMap(),
		prefs:     loadUIPreferences(),
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return loadTripsCmd(m.db, "")
}

type editTripMsg struct {
	trip model.Trip
}

type exportDoneMsg struct {
	path string
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.closeForms()
			return m, tea.Quit
		}

		// The alert blocks everything until acknowledged.
		if m.alert != nil {
			if msg.String() == "enter" || msg.String() == "esc" {
				m.alert = nil
			}
			return m, nil
		}

		if m.mode == model.ModeNav && m.columnJump {
			if msg.String() == "esc" {
				m.columnJump = false
				m.info = ""
				return m, nil
			}
			if n, err := strconv.Atoi(msg.String()); err == nil {
				table := m.currentTable()
				if table != nil && table.JumpToColumn(n) {
					m.columnJump = false
					m.info = fmt.Sprintf("Jumped to column %d", n)
					m.persistCurrentTablePrefs()
					return m, nil
				}
				m.info = fmt.Sprintf("Column %d unavailable", n)
				return m, nil
			}
		}

		if key.Matches(msg, m.keys.Help) && m.mode == model.ModeNav {
			m.showingHelp = !m.showingHelp
			return m, nil
		}

		if m.showingHelp {
			if msg.String() == "esc" {
				m.showingHelp = false
			}
			return m, nil
		}

		if m.mode == model.ModeNav {
			return m.handleNavMode(msg)
		}
		return m.handleInsertMode(msg)

	case model.ErrorMsg:
		cmd := m.handleError(msg.Err)
		return m, cmd

	case model.AlertMsg:
		m.alert = newAlert(msg)
		return m, nil

	case model.TripsLoadedMsg:
		m.trips = NewTripsModel(msg.Trips)
		m.trips.ApplyPrefs(m.prefs.Trips)
		m.error = ""
		return m, nil

	case model.TripDetailLoadedMsg:
		day := m.prefs.LastDay[tripKey(msg.Detail.Trip.ID)]
		if m.itinerary != nil && m.itinerary.Trip().ID == msg.Detail.Trip.ID {
			day = m.itinerary.DayIndex()
		}
		m.itinerary = NewItineraryModel(msg.Detail, day)
		if m.mode == model.ModeNav {
			m.screen = model.ScreenItinerary
			m.itemDetail = nil
		}
		m.error = ""
		return m, nil

	case editTripMsg:
		m.openTripForm(&msg.trip)
		return m, nil

	case model.TripSavedMsg:
		if action := m.buildTripSaveAction(msg); action != nil {
			m.pushUndoAction(*action)
		}
		m.mode = model.ModeNav
		m.tripForm = nil
		m.info = "Trip saved"
		if msg.Operation == "insert" || m.formReturn != model.ScreenTrips {
			return m, tea.Batch(loadTripsCmd(m.db, ""), loadTripDetailCmd(m.db, msg.ID))
		}
		m.screen = model.ScreenTrips
		return m, loadTripsCmd(m.db, "")

	case model.ItemSavedMsg:
		if action := m.buildItemSaveAction(msg); action != nil {
			m.pushUndoAction(*action)
		}
		m.mode = model.ModeNav
		m.screen = model.ScreenItinerary
		m.itemForm = nil
		m.info = msg.After.Type.Label() + " saved"
		return m, tea.Batch(
			loadTripDetailCmd(m.db, msg.After.TripID),
			loadTripsCmd(m.db, ""),
		)

	case model.FormCancelledMsg:
		m.closeForms()
		m.mode = model.ModeNav
		m.screen = m.formReturn
		return m, nil

	case model.DeleteTripMsg:
		m.pushUndoAction(m.buildDeleteTripAction(msg))
		m.screen = model.ScreenTrips
		m.itinerary = nil
		m.itemDetail = nil
		m.info = "Trip deleted (u to undo)"
		return m, loadTripsCmd(m.db, "")

	case model.DeleteItemMsg:
		m.pushUndoAction(m.buildDeleteItemAction(msg))
		m.screen = model.ScreenItinerary
		m.itemDetail = nil
		m.info = msg.Deleted.Type.Label() + " deleted (u to undo)"
		return m, tea.Batch(
			loadTripDetailCmd(m.db, msg.Deleted.TripID),
			loadTripsCmd(m.db, ""),
		)

	case exportDoneMsg:
		log.Printf("exported %s", msg.path)
		m.info = "Exported to " + msg.path
		return m, nil

	case undoAppliedMsg:
		cmd := m.applyUndoResult(msg)
		return m, cmd

	default:
		// Async form messages (search results, debounce ticks, spinner).
		if m.mode == model.ModeInsert {
			return m.handleInsertMode(msg)
		}
	}

	return m, nil
}

// handleError routes service failures to the alert and everything else to
// the error banner. A vanished trip drops back to the list.
func (m *Model) handleError(err error) tea.Cmd {
	log.Printf("ui error (screen %d): %v", m.screen, err)
	switch {
	case domain.IsService(err):
		m.alert = newAlert(model.AlertMsg{Title: "Service unavailable", Body: err.Error()})
	case domain.IsNotFound(err) && m.mode == model.ModeNav && m.screen != model.ScreenTrips:
		m.screen = model.ScreenTrips
		m.itinerary = nil
		m.itemDetail = nil
		m.info = err.Error()
		return loadTripsCmd(m.db, "")
	default:
		m.error = err.Error()
	}
	return nil
}

func (m *Model) closeForms() {
	if m.tripForm != nil {
		m.tripForm.Close()
	}
	m.tripForm = nil
	m.itemForm = nil
}

func (m *Model) openTripForm(trip *model.Trip) {
	m.formReturn = m.screen
	m.mode = model.ModeInsert
	m.screen = model.ScreenTripForm
	m.tripForm = NewTripFormModel(m.db, m.provider)
	if trip != nil {
		m.tripForm.LoadTrip(*trip)
	}
}

func (m *Model) openItemForm(item *model.ItineraryItem) {
	if m.itinerary == nil {
		return
	}
	m.formReturn = m.screen
	m.mode = model.ModeInsert
	m.screen = model.ScreenItemForm
	m.itemForm = NewItemFormModel(m.db, m.itinerary.Trip().ID, m.itinerary.SelectedDate())
	if item != nil {
		m.itemForm.LoadItem(*item)
	}
}

// View renders the UI.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if m.showingHelp {
		return RenderFullHelp(m.keys, m.formKeys, m.width, m.height)
	}

	var content string
	breadcrumbParts := []string{"Trips"}

	// Header: 1 line + border, footer: 1 line + border
	contentHeight := m.height - 4
	if m.error != "" {
		contentHeight--
	}
	if m.info != "" {
		contentHeight--
	}

	switch m.screen {
	case model.ScreenTrips:
		if m.trips != nil {
			content = m.trips.View(m.width, contentHeight)
		}
	case model.ScreenItinerary:
		if m.itinerary != nil {
			breadcrumbParts = append(breadcrumbParts, m.itinerary.Trip().Name)
			content = m.itinerary.View(m.width, contentHeight)
		}
	case model.ScreenItemDetail:
		if m.itinerary != nil {
			breadcrumbParts = append(breadcrumbParts, m.itinerary.Trip().Name)
		}
		if m.itemDetail != nil {
			breadcrumbParts = append(breadcrumbParts, m.itemDetail.item.Name)
			content = m.itemDetail.View(m.width, contentHeight)
		}
	case model.ScreenTripForm:
		if m.tripForm != nil {
			label := "New Trip"
			if m.tripForm.tripID > 0 {
				label = "Edit Trip"
			}
			breadcrumbParts = append(breadcrumbParts, label)
			content = m.tripForm.View(m.width, contentHeight)
		}
	case model.ScreenItemForm:
		if m.itinerary != nil {
			breadcrumbParts = append(breadcrumbParts, m.itinerary.Trip().Name)
		}
		if m.itemForm != nil {
			label := "New Item"
			if t := m.itemForm.Type(); t != "" {
				label = t.Label()
			}
			breadcrumbParts = append(breadcrumbParts, label)
			content = m.itemForm.View(m.width, contentHeight)
		}
	}

	header := renderHeader(breadcrumbParts, m.width)
	footer := RenderHelp(m.keys, m.formKeys, m.screen, m.mode, m.width)

	if m.alert != nil {
		content = m.alert.View(m.width, contentHeight)
	}

	// Fill the available height so the footer stays at the bottom.
	content = lipgloss.NewStyle().
		Width(m.width).
		Height(contentHeight).
		MaxHeight(contentHeight).
		Render(content)

	parts := []string{header}
	if m.error != "" {
		parts = append(parts, ErrorStyle.Width(m.width).Render("Error: "+m.error))
	}
	if m.info != "" {
		parts = append(parts, SuccessStyle.Width(m.width).Render(m.info))
	}
	parts = append(parts, content, footer)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderHeader(breadcrumbParts []string, width int) string {
	title := HeaderStyle.Render("tripsee")

	var breadcrumb string
	if len(breadcrumbParts) > 0 {
		separator := BreadcrumbStyle.Render(" › ")
		parts := make([]string, len(breadcrumbParts))
		for i, part := range breadcrumbParts {
			if i == len(breadcrumbParts)-1 {
				parts[i] = BreadcrumbActiveStyle.Render(part)
			} else {
				parts[i] = BreadcrumbStyle.Render(part)
			}
		}
		breadcrumb = separator + strings.Join(parts, separator)
	}

	left := "  " + title + breadcrumb

	right := BreadcrumbStyle.Render(time.Now().Format("Mon 02 Jan")) + "  "

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}

	return TitleStyle.Width(width).Render(left + strings.Repeat(" ", padding) + right)
}

// handleNavMode handles navigation mode input.
func (m Model) handleNavMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if t := m.currentTable(); t != nil {
		switch {
		case key.Matches(msg, m.keys.NextColumn):
			t.NextColumn()
			m.persistCurrentTablePrefs()
			return m, nil
		case key.Matches(msg, m.keys.PrevColumn):
			t.PrevColumn()
			m.persistCurrentTablePrefs()
			return m, nil
		case key.Matches(msg, m.keys.ColumnJump):
			m.columnJump = true
			m.info = "Jump to column: press 1-9 (esc to cancel)"
			return m, nil
		case key.Matches(msg, m.keys.SortAsc):
			t.SortActiveColumn(false)
			m.info = "Sorted ascending"
			m.persistCurrentTablePrefs()
			return m, nil
		case key.Matches(msg, m.keys.SortDesc):
			t.SortActiveColumn(true)
			m.info = "Sorted descending"
			m.persistCurrentTablePrefs()
			return m, nil
		case key.Matches(msg, m.keys.HideColumn):
			if t.HideActiveColumn() {
				m.info = "Column hidden"
				m.persistCurrentTablePrefs()
			} else {
				m.info = "Cannot hide last visible column"
			}
			return m, nil
		case key.Matches(msg, m.keys.ShowColumns):
			t.ShowAllColumns()
			m.info = "All columns shown"
			m.persistCurrentTablePrefs()
			return m, nil
		case key.Matches(msg, m.keys.FilterValue):
			if t.FilterBySelectedValue() {
				m.info = "Filter applied from selected value"
				m.persistCurrentTablePrefs()
			} else {
				m.info = "No filterable value in selected cell"
			}
			return m, nil
		case key.Matches(msg, m.keys.ClearFilter):
			if t.ClearFilter() {
				m.info = "Filter cleared"
				m.persistCurrentTablePrefs()
			}
			return m, nil
		}
	}

	switch {
	case key.Matches(msg, m.keys.Undo):
		if len(m.undoStack) == 0 {
			m.info = "Nothing to undo"
			return m, nil
		}
		cmd := m.undoCmd()
		return m, cmd
	case key.Matches(msg, m.keys.Redo):
		if len(m.redoStack) == 0 {
			m.info = "Nothing to redo"
			return m, nil
		}
		cmd := m.redoCmd()
		return m, cmd
	}

	// "gg" state machine
	if key.Matches(msg, m.keys.Top) {
		if m.gState == GStateIdle {
			m.gState = GStateFirstG
			return m, nil
		}
		m.gState = GStateIdle
		return m.handleJumpToTop()
	}
	m.gState = GStateIdle

	switch m.screen {
	case model.ScreenTrips:
		return m.handleTripsNav(msg)
	case model.ScreenItinerary:
		return m.handleItineraryNav(msg)
	case model.ScreenItemDetail:
		return m.handleItemDetailNav(msg)
	}

	return m, nil
}

func (m *Model) currentTable() tableController {
	if m.screen == model.ScreenTrips && m.trips != nil {
		return m.trips
	}
	return nil
}

func (m *Model) persistCurrentTablePrefs() {
	if m.screen == model.ScreenTrips && m.trips != nil {
		m.prefs.Trips = m.trips.Prefs()
	}
	_ = saveUIPreferences(m.prefs)
}

func tripKey(id int64) string {
	return strconv.FormatInt(id, 10)
}

func (m *Model) persistSelectedDay() {
	if m.itinerary == nil {
		return
	}
	if m.prefs.LastDay == nil {
		m.prefs.LastDay = map[string]int{}
	}
	m.prefs.LastDay[tripKey(m.itinerary.Trip().ID)] = m.itinerary.DayIndex()
	_ = saveUIPreferences(m.prefs)
}

// handleInsertMode hands input and async messages to the open form.
func (m Model) handleInsertMode(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.screen {
	case model.ScreenTripForm:
		if m.tripForm != nil {
			newForm, cmd := m.tripForm.Update(msg)
			m.tripForm = &newForm
			return m, cmd
		}
	case model.ScreenItemForm:
		if m.itemForm != nil {
			newForm, cmd := m.itemForm.Update(msg)
			m.itemForm = &newForm
			return m, cmd
		}
	}
	return m, nil
}

func (m Model) handleJumpToTop() (tea.Model, tea.Cmd) {
	switch m.screen {
	case model.ScreenTrips:
		if m.trips != nil {
			m.trips.JumpToTop()
		}
	case model.ScreenItinerary:
		if m.itinerary != nil {
			m.itinerary.JumpToTop()
		}
	}
	return m, nil
}

func (m Model) handleTripsNav(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Add):
		m.openTripForm(nil)
		return m, nil
	}

	if m.trips == nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Select), key.Matches(msg, m.keys.Right):
		if row, ok := m.trips.Selected(); ok {
			return m, loadTripDetailCmd(m.db, row.ID)
		}
	case key.Matches(msg, m.keys.Edit):
		if row, ok := m.trips.Selected(); ok {
			return m, loadTripForEditCmd(m.db, row.ID)
		}
	case key.Matches(msg, m.keys.Delete):
		if row, ok := m.trips.Selected(); ok {
			return m, deleteTripCmd(m.db, row.ID)
		}
	case key.Matches(msg, m.keys.Down):
		m.trips.MoveDown()
	case key.Matches(msg, m.keys.Up):
		m.trips.MoveUp()
	case key.Matches(msg, m.keys.Bottom):
		m.trips.JumpToBottom()
	case key.Matches(msg, m.keys.HalfPageDown):
		m.trips.HalfPageDown(m.height / 2)
	case key.Matches(msg, m.keys.HalfPageUp):
		m.trips.HalfPageUp(m.height / 2)
	}
	return m, nil
}

func (m Model) handleItineraryNav(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.itinerary == nil {
		m.screen = model.ScreenTrips
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Left):
		m.screen = model.ScreenTrips
		m.itinerary = nil
		return m, nil
	case key.Matches(msg, m.keys.NextDay):
		m.itinerary.NextDay()
		m.persistSelectedDay()
	case key.Matches(msg, m.keys.PrevDay):
		m.itinerary.PrevDay()
		m.persistSelectedDay()
	case key.Matches(msg, m.keys.Down):
		m.itinerary.MoveDown()
	case key.Matches(msg, m.keys.Up):
		m.itinerary.MoveUp()
	case key.Matches(msg, m.keys.Bottom):
		m.itinerary.JumpToBottom()
	case key.Matches(msg, m.keys.AddItem):
		m.openItemForm(nil)
	case key.Matches(msg, m.keys.EditTrip):
		trip := m.itinerary.Trip()
		m.openTripForm(&trip)
	case key.Matches(msg, m.keys.Edit):
		if item, ok := m.itinerary.SelectedItem(); ok {
			m.openItemForm(&item)
		}
	case key.Matches(msg, m.keys.Delete):
		if item, ok := m.itinerary.SelectedItem(); ok {
			return m, deleteItemCmd(m.db, item.ID)
		}
	case key.Matches(msg, m.keys.Select), key.Matches(msg, m.keys.Right):
		if item, ok := m.itinerary.SelectedItem(); ok {
			m.itemDetail = NewItemDetailModel(item)
			m.screen = model.ScreenItemDetail
		}
	case key.Matches(msg, m.keys.Export):
		return m, exportPDFCmd(m.exportDir, m.itinerary.Trip(), m.itinerary.Days())
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleItemDetailNav(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.itemDetail == nil {
		m.screen = model.ScreenItinerary
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Left):
		m.screen = model.ScreenItinerary
		m.itemDetail = nil
	case key.Matches(msg, m.keys.Edit):
		item := m.itemDetail.item
		m.openItemForm(&item)
		m.formReturn = model.ScreenItinerary
	case key.Matches(msg, m.keys.Delete):
		return m, deleteItemCmd(m.db, m.itemDetail.item.ID)
	}
	return m, nil
}

// Commands

func loadTripsCmd(database *sql.DB, filter string) tea.Cmd {
	return func() tea.Msg {
		trips, err := db.ListTrips(context.Background(), database, filter)
		if err != nil {
			return model.ErrorMsg{Err: err}
		}
		return model.TripsLoadedMsg{Trips: trips}
	}
}

func loadTripDetailCmd(database *sql.DB, tripID int64) tea.Cmd {
	return func() tea.Msg {
		detail, err := db.GetTripDetail(context.Background(), database, tripID)
		if err != nil {
			return model.ErrorMsg{Err: fmt.Errorf("failed to load trip: %w", err)}
		}
		return model.TripDetailLoadedMsg{Detail: detail}
	}
}

func loadTripForEditCmd(database *sql.DB, tripID int64) tea.Cmd {
	return func() tea.Msg {
		trip, err := db.GetTrip(context.Background(), database, tripID)
		if err != nil {
			return model.ErrorMsg{Err: fmt.Errorf("failed to load trip: %w", err)}
		}
		return editTripMsg{trip: trip}
	}
}

func deleteTripCmd(database *sql.DB, tripID int64) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		detail, err := db.GetTripDetail(ctx, database, tripID)
		if err != nil {
			return model.ErrorMsg{Err: fmt.Errorf("failed to load trip before delete: %w", err)}
		}
		if err := db.DeleteTrip(ctx, database, tripID); err != nil {
			return model.ErrorMsg{Err: fmt.Errorf("failed to delete trip: %w", err)}
		}
		return model.DeleteTripMsg{ID: tripID, Deleted: detail.Trip, DeletedItems: detail.Items}
	}
}

func deleteItemCmd(database *sql.DB, itemID string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		item, err := db.GetItem(ctx, database, itemID)
		if err != nil {
			return model.ErrorMsg{Err: fmt.Errorf("failed to load item before delete: %w", err)}
		}
		if err := db.DeleteItem(ctx, database, itemID); err != nil {
			return model.ErrorMsg{Err: fmt.Errorf("failed to delete item: %w", err)}
		}
		return model.DeleteItemMsg{ID: itemID, Deleted: item}
	}
}

func exportPDFCmd(dir string, trip model.Trip, days []model.DayPlan) tea.Cmd {
	return func() tea.Msg {
		if len(days) == 0 {
			return model.AlertMsg{Title: "Nothing to export", Body: "Set the trip dates to build day plans first."}
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return model.ErrorMsg{Err: fmt.Errorf("failed to create export dir: %w", err)}
		}
		path := filepath.Join(dir, ExportFileName(trip))
		if err := report.WritePDF(path, trip, days); err != nil {
			return model.AlertMsg{Title: "Export failed", Body: err.Error()}
		}
		return exportDoneMsg{path: path}
	}
}

// ExportFileName returns a filesystem-safe PDF name for trip.
func ExportFileName(trip model.Trip) string {
	var b strings.Builder
	for _, r := range strings.ToLower(trip.Name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case b.Len() > 0 && !strings.HasSuffix(b.String(), "-"):
			b.WriteByte('-')
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		slug = "trip"
	}
	start := trip.StartDate
	if _, err := itinerary.ParseDate(start); err != nil {
		return fmt.Sprintf("%s-%d.pdf", slug, trip.ID)
	}
	return fmt.Sprintf("%s-%s.pdf", slug, start)
}
