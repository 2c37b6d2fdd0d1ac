package screens

import (
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/geobook/geobook/internal/signals"
	"github.com/geobook/geobook/internal/store"
)

// ListView is the render surface for the list screen. Reload tells it
// the projection changed and the rows must be drawn again.
type ListView interface {
	Reload()
}

// ListScreen presents every saved location as a selectable, deletable
// list and keeps itself consistent with background saves: each
// activation and each saved-location signal replaces the whole
// projection with a fresh read from the store.
type ListScreen struct {
	store      store.RecordStore
	bus        signals.Bus
	view       ListView
	openEditor func(id *uuid.UUID)
	logger     zerolog.Logger

	entries []store.Entry
	sub     signals.Subscription
}

// NewListScreen creates the list screen. openEditor is the navigation
// hand-off: a nil id means create mode, a non-nil id view mode.
func NewListScreen(recordStore store.RecordStore, bus signals.Bus, view ListView,
	openEditor func(id *uuid.UUID), logger zerolog.Logger) *ListScreen {
	return &ListScreen{
		store:      recordStore,
		bus:        bus,
		view:       view,
		openEditor: openEditor,
		logger:     logger,
	}
}

// Activate subscribes to the saved-location signal for the visible
// stretch and refreshes the projection. Re-activation replaces the old
// subscription, never duplicates it.
func (l *ListScreen) Activate() {
	if l.sub != nil {
		l.sub.Cancel()
	}
	l.sub = l.bus.Subscribe(signals.TopicNewLocation, l.refresh)

	l.refresh()
}

// Deactivate releases the signal subscription.
func (l *ListScreen) Deactivate() {
	if l.sub != nil {
		l.sub.Cancel()
		l.sub = nil
	}
}

// Count returns the number of rows.
func (l *ListScreen) Count() int {
	return len(l.entries)
}

// Title returns the label of row i.
func (l *ListScreen) Title(i int) string {
	if i < 0 || i >= len(l.entries) {
		return ""
	}
	return l.entries[i].Title
}

// Select opens the record at row i read-only.
func (l *ListScreen) Select(i int) error {
	if i < 0 || i >= len(l.entries) {
		return errors.New("row index out of range")
	}

	id := l.entries[i].ID
	l.openEditor(&id)
	return nil
}

// Add opens the editor in create mode.
func (l *ListScreen) Add() {
	l.openEditor(nil)
}

// Delete removes the record at row i from the store and, on success,
// drops the row from the projection without waiting for a fresh fetch.
func (l *ListScreen) Delete(i int) error {
	if i < 0 || i >= len(l.entries) {
		return errors.New("row index out of range")
	}

	id := l.entries[i].ID
	if err := l.store.DeleteByID(id); err != nil {
		l.logger.Error().Err(err).Str("id", id.String()).Msg("Failed to delete location record")
		return err
	}

	l.entries = append(l.entries[:i], l.entries[i+1:]...)
	l.view.Reload()
	return nil
}

// refresh replaces the projection with the store's current contents.
// A storage failure keeps the previous projection on screen.
func (l *ListScreen) refresh() {
	entries, err := l.store.FetchAll()
	if err != nil {
		l.logger.Error().Err(err).Msg("Failed to fetch location records")
		return
	}

	l.entries = entries
	l.view.Reload()
}
