package ui

import (
	"context"
	"fmt"
	"log"
	"strings"
	"tripsee/internal/db"
	"tripsee/internal/model"

	tea "github.com/charmbracelet/bubbletea"
)

type undoAction struct {
	label string
	undo  func() error
	redo  func() error
}

type undoAppliedMsg struct {
	err       error
	action    undoAction
	direction string // undo, redo
}

func (m *Model) pushUndoAction(action undoAction) {
	m.undoStack = append(m.undoStack, action)
	m.redoStack = nil
}

func (m *Model) undoCmd() tea.Cmd {
	if len(m.undoStack) == 0 {
		return nil
	}
	action := m.undoStack[len(m.undoStack)-1]
	m.undoStack = m.undoStack[:len(m.undoStack)-1]
	return func() tea.Msg {
		err := action.undo()
		return undoAppliedMsg{err: err, action: action, direction: "undo"}
	}
}

func (m *Model) redoCmd() tea.Cmd {
	if len(m.redoStack) == 0 {
		return nil
	}
	action := m.redoStack[len(m.redoStack)-1]
	m.redoStack = m.redoStack[:len(m.redoStack)-1]
	return func() tea.Msg {
		err := action.redo()
		return undoAppliedMsg{err: err, action: action, direction: "redo"}
	}
}

func (m *Model) buildTripSaveAction(msg model.TripSavedMsg) *undoAction {
	database := m.db
	ctx := context.Background()
	switch msg.Operation {
	case "insert":
		after := msg.After
		return &undoAction{
			label: "trip saved",
			undo: func() error {
				return db.DeleteTrip(ctx, database, after.ID)
			},
			redo: func() error {
				return db.InsertTripWithID(ctx, database, after)
			},
		}
	case "update":
		if msg.Before == nil {
			return nil
		}
		before := *msg.Before
		after := msg.After
		return &undoAction{
			label: "trip updated",
			undo: func() error {
				return db.UpdateTrip(ctx, database, tripToUpdate(before))
			},
			redo: func() error {
				return db.UpdateTrip(ctx, database, tripToUpdate(after))
			},
		}
	default:
		return nil
	}
}

func (m *Model) buildItemSaveAction(msg model.ItemSavedMsg) *undoAction {
	database := m.db
	ctx := context.Background()
	label := strings.ToLower(msg.After.Type.Label())
	switch msg.Operation {
	case "insert":
		after := msg.After
		return &undoAction{
			label: label + " added",
			undo: func() error {
				return db.DeleteItem(ctx, database, after.ID)
			},
			redo: func() error {
				_, err := db.InsertItem(ctx, database, after)
				return err
			},
		}
	case "update":
		if msg.Before == nil {
			return nil
		}
		before := *msg.Before
		after := msg.After
		return &undoAction{
			label: label + " updated",
			undo: func() error {
				return db.UpdateItem(ctx, database, before)
			},
			redo: func() error {
				return db.UpdateItem(ctx, database, after)
			},
		}
	default:
		return nil
	}
}

func (m *Model) buildDeleteTripAction(msg model.DeleteTripMsg) undoAction {
	database := m.db
	ctx := context.Background()
	deleted := msg.Deleted
	items := append([]model.ItineraryItem(nil), msg.DeletedItems...)
	return undoAction{
		label: "trip deleted",
		undo: func() error {
			return db.RestoreTrip(ctx, database, deleted, items)
		},
		redo: func() error {
			return db.DeleteTrip(ctx, database, deleted.ID)
		},
	}
}

func (m *Model) buildDeleteItemAction(msg model.DeleteItemMsg) undoAction {
	database := m.db
	ctx := context.Background()
	deleted := msg.Deleted
	return undoAction{
		label: strings.ToLower(deleted.Type.Label()) + " deleted",
		undo: func() error {
			_, err := db.InsertItem(ctx, database, deleted)
			return err
		},
		redo: func() error {
			return db.DeleteItem(ctx, database, deleted.ID)
		},
	}
}

func (m *Model) reloadCurrentTopLevelCmd() tea.Cmd {
	cmds := []tea.Cmd{loadTripsCmd(m.db, "")}
	if m.itinerary != nil && m.screen != model.ScreenTrips {
		cmds = append(cmds, loadTripDetailCmd(m.db, m.itinerary.Trip().ID))
	}
	return tea.Batch(cmds...)
}

func tripToUpdate(t model.Trip) model.UpdateTrip {
	return model.UpdateTrip{
		ID:          t.ID,
		Name:        t.Name,
		Destination: t.Destination,
		StartDate:   t.StartDate,
		EndDate:     t.EndDate,
		Notes:       t.Notes,
	}
}

func (m *Model) applyUndoResult(msg undoAppliedMsg) tea.Cmd {
	if msg.err != nil {
		log.Printf("%s %s failed: %v", msg.direction, msg.action.label, msg.err)
		m.error = fmt.Sprintf("%s failed: %v", msg.direction, msg.err)
		return nil
	}

	if msg.direction == "undo" {
		m.redoStack = append(m.redoStack, msg.action)
		m.info = "Undid: " + msg.action.label
	} else {
		m.undoStack = append(m.undoStack, msg.action)
		m.info = "Redid: " + msg.action.label
	}
	m.error = ""
	return m.reloadCurrentTopLevelCmd()
}
