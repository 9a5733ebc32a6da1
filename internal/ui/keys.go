package ui

import "github.com/charmbracelet/bubbles/key"

// GState tracks the first key of the "gg" chord.
type GState int

const (
	GStateIdle GState = iota
	GStateFirstG
)

// KeyMap holds the nav mode bindings. Help text doubles as the footer and
// the full help screen.
type KeyMap struct {
	// movement
	Up           key.Binding
	Down         key.Binding
	Left         key.Binding
	Right        key.Binding
	Select       key.Binding
	Back         key.Binding
	Top          key.Binding
	Bottom       key.Binding
	HalfPageDown key.Binding
	HalfPageUp   key.Binding

	// trips table
	NextColumn  key.Binding
	PrevColumn  key.Binding
	ColumnJump  key.Binding
	SortAsc     key.Binding
	SortDesc    key.Binding
	HideColumn  key.Binding
	ShowColumns key.Binding
	FilterValue key.Binding
	ClearFilter key.Binding

	// records
	Add      key.Binding
	Edit     key.Binding
	EditTrip key.Binding
	Delete   key.Binding
	AddItem  key.Binding
	Export   key.Binding
	PrevDay  key.Binding
	NextDay  key.Binding
	Undo     key.Binding
	Redo     key.Binding

	Help key.Binding
	Quit key.Binding
}

func binding(keys []string, helpKey, desc string) key.Binding {
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(helpKey, desc))
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:           binding([]string{"k", "up"}, "k/↑", "up"),
		Down:         binding([]string{"j", "down"}, "j/↓", "down"),
		Left:         binding([]string{"h", "left"}, "h/←", "back"),
		Right:        binding([]string{"l", "right"}, "l/→", "open"),
		Select:       binding([]string{"enter"}, "enter", "open"),
		Back:         binding([]string{"b", "esc"}, "b/esc", "back"),
		Top:          binding([]string{"g"}, "gg", "top"),
		Bottom:       binding([]string{"G"}, "G", "bottom"),
		HalfPageDown: binding([]string{"ctrl+d"}, "ctrl+d", "½ page down"),
		HalfPageUp:   binding([]string{"ctrl+u"}, "ctrl+u", "½ page up"),

		NextColumn:  binding([]string{"tab"}, "tab", "next col"),
		PrevColumn:  binding([]string{"shift+tab"}, "shift+tab", "prev col"),
		ColumnJump:  binding([]string{"/"}, "/ 1-9", "jump col"),
		SortAsc:     binding([]string{"s"}, "s", "sort asc"),
		SortDesc:    binding([]string{"S"}, "S", "sort desc"),
		HideColumn:  binding([]string{"c"}, "c", "hide col"),
		ShowColumns: binding([]string{"C"}, "C", "show cols"),
		FilterValue: binding([]string{"n"}, "n", "filter value"),
		ClearFilter: binding([]string{"N"}, "N", "clear filter"),

		Add:      binding([]string{"a"}, "a", "new trip"),
		Edit:     binding([]string{"e"}, "e", "edit"),
		EditTrip: binding([]string{"E"}, "E", "edit trip"),
		Delete:   binding([]string{"d"}, "d", "delete"),
		AddItem:  binding([]string{"a", "i"}, "a", "add item"),
		Export:   binding([]string{"x"}, "x", "export pdf"),
		PrevDay:  binding([]string{"[", "H"}, "[", "prev day"),
		NextDay:  binding([]string{"]", "L"}, "]", "next day"),
		Undo:     binding([]string{"u"}, "u", "undo"),
		Redo:     binding([]string{"ctrl+r"}, "ctrl+r", "redo"),

		Help: binding([]string{"?"}, "?", "help"),
		Quit: binding([]string{"q", "ctrl+c"}, "q", "quit"),
	}
}

// TripsHelp lists the footer bindings for the trips table.
func (k KeyMap) TripsHelp() []key.Binding {
	return []key.Binding{k.Down, k.NextColumn, k.SortAsc, k.FilterValue, k.Add, k.Edit, k.Delete, k.Select, k.Undo, k.Help}
}

// ItineraryHelp lists the footer bindings for the day view.
func (k KeyMap) ItineraryHelp() []key.Binding {
	return []key.Binding{k.PrevDay, k.NextDay, k.Down, k.AddItem, k.Select, k.Edit, k.Delete, k.EditTrip, k.Export, k.Back}
}

// ItemDetailHelp lists the footer bindings for a single item.
func (k KeyMap) ItemDetailHelp() []key.Binding {
	return []key.Binding{k.Back, k.Edit, k.Delete}
}

// FormKeyMap holds the insert mode bindings shown while a form is open.
// The forms match keys themselves; these drive the help text.
type FormKeyMap struct {
	NextField   key.Binding
	PrevField   key.Binding
	CycleStatus key.Binding
	Save        key.Binding
	Cancel      key.Binding
}

// DefaultFormKeyMap returns the default form keybindings.
func DefaultFormKeyMap() FormKeyMap {
	return FormKeyMap{
		NextField:   binding([]string{"tab", "down"}, "tab/↓", "next field"),
		PrevField:   binding([]string{"shift+tab", "up"}, "shift+tab/↑", "prev field"),
		CycleStatus: binding([]string{"ctrl+t"}, "ctrl+t", "cycle status"),
		Save:        binding([]string{"ctrl+s"}, "ctrl+s", "save"),
		Cancel:      binding([]string{"esc"}, "esc", "cancel"),
	}
}

// ShortHelp lists the footer bindings; only the item form cycles status.
func (k FormKeyMap) ShortHelp(itemForm bool) []key.Binding {
	if itemForm {
		return []key.Binding{k.NextField, k.PrevField, k.CycleStatus, k.Save, k.Cancel}
	}
	return []key.Binding{k.NextField, k.PrevField, k.Save, k.Cancel}
}
