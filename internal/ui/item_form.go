package ui

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"tripsee/internal/db"
	"tripsee/internal/domain"
	"tripsee/internal/itinerary"
	"tripsee/internal/model"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ItemFormModel is the add/edit form for itinerary items. A new item starts
// with a type picker; the inputs are then built from the type's schema.
type ItemFormModel struct {
	db          *sql.DB
	tripID      int64
	itemID      string
	before      *model.ItineraryItem
	defaultDate string

	picking    bool
	typeCursor int

	schema       itinerary.Schema
	inputs       []textinput.Model
	focusedField int

	rangeError string
	duration   string
	error      string
	errorField string
}

// NewItemFormModel opens the type picker for a new item. defaultDate
// pre-fills the start date once a type is chosen.
func NewItemFormModel(database *sql.DB, tripID int64, defaultDate string) *ItemFormModel {
	return &ItemFormModel{
		db:          database,
		tripID:      tripID,
		defaultDate: defaultDate,
		picking:     true,
	}
}

// LoadItem loads an existing item for editing. The type cannot change.
func (m *ItemFormModel) LoadItem(item model.ItineraryItem) {
	before := item
	m.itemID = item.ID
	m.tripID = item.TripID
	m.before = &before
	m.picking = false
	m.setDraft(itinerary.DraftFromItem(item))
}

// Type returns the item type being edited, or "" while picking.
func (m *ItemFormModel) Type() model.ItemType {
	if m.picking {
		return ""
	}
	return m.schema.Type
}

func (m *ItemFormModel) chooseType(t model.ItemType) {
	d := itinerary.NewDraft(t)
	if m.defaultDate != "" {
		d.Set(itinerary.KeyStartDate, m.defaultDate)
	}
	d.Set(itinerary.KeyStatus, string(model.StatusPending))
	m.picking = false
	m.setDraft(d)
}

func (m *ItemFormModel) setDraft(d itinerary.Draft) {
	m.schema = itinerary.SchemaFor(d.Type)
	m.inputs = make([]textinput.Model, len(m.schema.Fields))
	for i, f := range m.schema.Fields {
		in := textinput.New()
		in.Placeholder = f.Placeholder
		in.CharLimit = 200
		switch f.Kind {
		case itinerary.KindDate:
			in.CharLimit = 10
		case itinerary.KindTime:
			in.CharLimit = 5
		case itinerary.KindText:
			if f.Key == itinerary.KeyDetails {
				in.CharLimit = 500
			}
		}
		in.SetValue(d.Values[f.Key])
		m.inputs[i] = in
	}
	m.focusedField = 0
	if len(m.inputs) > 0 {
		m.inputs[0].Focus()
	}
	m.refresh()
}

// Draft returns the current input values as a draft.
func (m *ItemFormModel) Draft() itinerary.Draft {
	d := itinerary.NewDraft(m.schema.Type)
	for i, f := range m.schema.Fields {
		d.Set(f.Key, m.inputs[i].Value())
	}
	return d
}

// refresh re-runs the range check and recomputes the duration.
func (m *ItemFormModel) refresh() {
	d := m.Draft()
	m.rangeError = ""
	if re, ok := itinerary.AsRangeError(d.CheckRange()); ok {
		m.rangeError = re.Msg
	}
	m.duration = ""
	if dur, ok := d.Duration(); ok {
		m.duration = dur
	}
}

// Update handles all messages.
func (m ItemFormModel) Update(msg tea.Msg) (ItemFormModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if m.picking {
		return m.updatePicker(keyMsg)
	}

	switch keyMsg.String() {
	case "esc":
		return m, func() tea.Msg {
			return model.FormCancelledMsg{}
		}
	case "ctrl+s":
		item, err := m.Draft().Build(m.itemID, m.tripID)
		if err != nil {
			m.error = errorText(err)
			m.errorField = domain.FieldOf(err)
			if itinerary.IsRangeError(err) {
				m.errorField = itinerary.KeyEndDate
			}
			return m, nil
		}
		m.error = ""
		m.errorField = ""
		return m, m.save(item)
	case "tab", "enter", "down":
		m.nextField()
		return m, nil
	case "shift+tab", "up":
		m.prevField()
		return m, nil
	case "ctrl+t":
		if m.focusedSpec().Kind == itinerary.KindStatus {
			m.inputs[m.focusedField].SetValue(string(nextStatus(model.ItemStatus(m.inputs[m.focusedField].Value()))))
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focusedField], cmd = m.inputs[m.focusedField].Update(keyMsg)
	m.refresh()
	return m, cmd
}

func (m ItemFormModel) updatePicker(msg tea.KeyMsg) (ItemFormModel, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		return m, func() tea.Msg {
			return model.FormCancelledMsg{}
		}
	case "j", "down", "tab":
		if m.typeCursor < len(model.ItemTypes)-1 {
			m.typeCursor++
		}
	case "k", "up", "shift+tab":
		if m.typeCursor > 0 {
			m.typeCursor--
		}
	case "enter", "l":
		m.chooseType(model.ItemTypes[m.typeCursor])
	default:
		if n, err := strconv.Atoi(msg.String()); err == nil && n >= 1 && n <= len(model.ItemTypes) {
			m.typeCursor = n - 1
			m.chooseType(model.ItemTypes[n-1])
		}
	}
	return m, nil
}

func (m *ItemFormModel) focusedSpec() itinerary.FieldSpec {
	if m.focusedField < len(m.schema.Fields) {
		return m.schema.Fields[m.focusedField]
	}
	return itinerary.FieldSpec{}
}

func nextStatus(s model.ItemStatus) model.ItemStatus {
	switch model.ItemStatus(strings.ToLower(strings.TrimSpace(string(s)))) {
	case model.StatusPending:
		return model.StatusConfirmed
	case model.StatusConfirmed:
		return model.StatusCancelled
	default:
		return model.StatusPending
	}
}

func (m *ItemFormModel) nextField() {
	if len(m.inputs) == 0 {
		return
	}
	m.inputs[m.focusedField].Blur()
	m.focusedField = (m.focusedField + 1) % len(m.inputs)
	m.inputs[m.focusedField].Focus()
}

func (m *ItemFormModel) prevField() {
	if len(m.inputs) == 0 {
		return
	}
	m.inputs[m.focusedField].Blur()
	m.focusedField--
	if m.focusedField < 0 {
		m.focusedField = len(m.inputs) - 1
	}
	m.inputs[m.focusedField].Focus()
}

func (m *ItemFormModel) save(item model.ItineraryItem) tea.Cmd {
	database := m.db
	before := m.before
	return func() tea.Msg {
		ctx := context.Background()
		if before != nil {
			item.Position = before.Position
			item.CreatedAt = before.CreatedAt
			if err := db.UpdateItem(ctx, database, item); err != nil {
				return model.ErrorMsg{Err: err}
			}
			return model.ItemSavedMsg{Operation: "update", Before: before, After: item}
		}
		stored, err := db.InsertItem(ctx, database, item)
		if err != nil {
			return model.ErrorMsg{Err: err}
		}
		return model.ItemSavedMsg{Operation: "insert", After: stored}
	}
}

// View renders the picker or the form.
func (m *ItemFormModel) View(width, height int) string {
	if m.picking {
		return m.viewPicker(width, height)
	}

	title := lipgloss.NewStyle().Foreground(typeColor(m.schema.Type)).Bold(true).Render(m.schema.Type.Label())
	if m.before != nil {
		title += HelpDescStyle.Render("  editing")
	}

	labelWidth := 4
	for _, f := range m.schema.Fields {
		labelWidth = max(labelWidth, lipgloss.Width(f.Label)+2)
	}

	var lines []string
	for i, f := range m.schema.Fields {
		lines = append(lines, m.renderLine(i, f, labelWidth))
		if f.Key == itinerary.KeyEndTime || (f.Key == itinerary.KeyEndDate && !m.schema.Has(itinerary.KeyEndTime)) {
			lines = append(lines, m.renderDuration(labelWidth))
			if m.rangeError != "" {
				lines = append(lines, ErrorStyle.Render("  ✗ "+m.rangeError))
			}
		}
	}

	// Keep the focused line on screen for tall schemas.
	visible := max(4, height-10)
	start := 0
	if len(lines) > visible {
		start = min(max(0, m.focusedField-visible/2), len(lines)-visible)
		lines = lines[start : start+visible]
	}

	sections := []string{title, "", strings.Join(lines, "\n")}
	if m.error != "" {
		sections = append(sections, "", ErrorStyle.Render(m.error))
	}

	return PanelStyle.
		Width(width - 4).
		Height(height - 4).
		Render(strings.Join(sections, "\n"))
}

func (m *ItemFormModel) renderLine(i int, f itinerary.FieldSpec, labelWidth int) string {
	label := f.Label
	if f.Required {
		label += " *"
	}
	marker := "  "
	labelStyle := HelpDescStyle
	if i == m.focusedField {
		marker = HelpKeyStyle.Render("› ")
		labelStyle = LabelStyle
	}
	if m.errorField == f.Key {
		labelStyle = labelStyle.Foreground(ColorRed)
	}
	return marker + labelStyle.Width(labelWidth+2).Render(label) + m.inputs[i].View()
}

func (m *ItemFormModel) renderDuration(labelWidth int) string {
	value := m.duration
	if value == "" {
		value = "—"
	}
	return "  " + HelpDescStyle.Width(labelWidth+2).Render("Duration") + ReadOnlyStyle.Render(value+" (auto)")
}

func (m *ItemFormModel) viewPicker(width, height int) string {
	var lines []string
	lines = append(lines, LabelStyle.Render("What are you adding?"), "")
	for i, t := range model.ItemTypes {
		dot := lipgloss.NewStyle().Foreground(typeColor(t)).Render("●")
		line := fmt.Sprintf("%d  %s %s", i+1, dot, t.Label())
		if i == m.typeCursor {
			line = SelectedRowStyle.Render(fmt.Sprintf("%d  ● %s", i+1, t.Label()))
		}
		lines = append(lines, "  "+line)
	}
	lines = append(lines, "", HelpDescStyle.Render("j/k move  enter select  1-7 quick pick  esc cancel"))

	return PanelStyle.
		Width(width - 4).
		Height(height - 4).
		Render(strings.Join(lines, "\n"))
}
