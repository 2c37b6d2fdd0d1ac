package screens_test

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/geobook/geobook/internal/screens"
	"github.com/geobook/geobook/internal/signals"
	"github.com/geobook/geobook/internal/store"
)

func newListFixture(entries []store.Entry) (*mockRecordStore, *signals.SignalBus, *fakeListView, *[]*uuid.UUID, *screens.ListScreen) {
	recordStore := new(mockRecordStore)
	recordStore.On("FetchAll").Return(entries, nil)

	bus := signals.NewSignalBus(zerolog.Nop())
	view := &fakeListView{}

	var opened []*uuid.UUID
	list := screens.NewListScreen(recordStore, bus, view, func(id *uuid.UUID) {
		opened = append(opened, id)
	}, zerolog.Nop())

	return recordStore, bus, view, &opened, list
}

func TestListScreen_ActivateLoadsProjection(t *testing.T) {
	entries := []store.Entry{
		{ID: uuid.New(), Title: "Home"},
		{ID: uuid.New(), Title: "Office"},
	}
	recordStore, _, view, _, list := newListFixture(entries)

	list.Activate()

	assert.Equal(t, 2, list.Count())
	assert.Equal(t, "Home", list.Title(0))
	assert.Equal(t, "Office", list.Title(1))
	assert.Equal(t, 1, view.reloads)
	recordStore.AssertNumberOfCalls(t, "FetchAll", 1)
}

func TestListScreen_SavedSignalTriggersFullRefresh(t *testing.T) {
	recordStore, bus, _, _, list := newListFixture(nil)

	list.Activate()
	bus.Publish(signals.TopicNewLocation)

	recordStore.AssertNumberOfCalls(t, "FetchAll", 2)
}

func TestListScreen_ReactivationDoesNotDuplicateSubscription(t *testing.T) {
	recordStore, bus, _, _, list := newListFixture(nil)

	list.Activate()
	list.Activate()
	recordStore.AssertNumberOfCalls(t, "FetchAll", 2)

	// one registered listener means exactly one extra fetch per signal
	bus.Publish(signals.TopicNewLocation)
	recordStore.AssertNumberOfCalls(t, "FetchAll", 3)
}

func TestListScreen_DeactivateStopsSignalDelivery(t *testing.T) {
	recordStore, bus, _, _, list := newListFixture(nil)

	list.Activate()
	list.Deactivate()
	bus.Publish(signals.TopicNewLocation)

	recordStore.AssertNumberOfCalls(t, "FetchAll", 1)
}

func TestListScreen_SelectOpensEditorWithID(t *testing.T) {
	id := uuid.New()
	_, _, _, opened, list := newListFixture([]store.Entry{{ID: id, Title: "Home"}})

	list.Activate()
	assert.NoError(t, list.Select(0))

	assert.Len(t, *opened, 1)
	assert.Equal(t, id, *(*opened)[0])

	assert.Error(t, list.Select(5))
}

func TestListScreen_AddOpensEditorWithoutID(t *testing.T) {
	_, _, _, opened, list := newListFixture(nil)

	list.Activate()
	list.Add()

	assert.Len(t, *opened, 1)
	assert.Nil(t, (*opened)[0])
}

func TestListScreen_DeleteIsOptimistic(t *testing.T) {
	id := uuid.New()
	recordStore, _, view, _, list := newListFixture([]store.Entry{{ID: id, Title: "Home"}})
	recordStore.On("DeleteByID", id).Return(nil)

	list.Activate()
	assert.NoError(t, list.Delete(0))

	// the row is gone without a fresh fetch
	assert.Equal(t, 0, list.Count())
	assert.Equal(t, 2, view.reloads)
	recordStore.AssertNumberOfCalls(t, "FetchAll", 1)
}

func TestListScreen_DeleteFailureKeepsProjection(t *testing.T) {
	id := uuid.New()
	recordStore, _, _, _, list := newListFixture([]store.Entry{{ID: id, Title: "Home"}})
	recordStore.On("DeleteByID", id).Return(&store.StorageError{Op: "delete", Err: errors.New("disk full")})

	list.Activate()
	assert.Error(t, list.Delete(0))
	assert.Equal(t, 1, list.Count())
	assert.Equal(t, "Home", list.Title(0))
}

func TestListScreen_FetchFailureKeepsPreviousProjection(t *testing.T) {
	recordStore := new(mockRecordStore)
	entries := []store.Entry{{ID: uuid.New(), Title: "Home"}}
	recordStore.On("FetchAll").Return(entries, nil).Once()
	recordStore.On("FetchAll").Return(nil, &store.StorageError{Op: "fetch all", Err: errors.New("io error")})

	bus := signals.NewSignalBus(zerolog.Nop())
	list := screens.NewListScreen(recordStore, bus, &fakeListView{}, func(*uuid.UUID) {}, zerolog.Nop())

	list.Activate()
	assert.Equal(t, 1, list.Count())

	bus.Publish(signals.TopicNewLocation)
	assert.Equal(t, 1, list.Count(), "a failed refresh must not clear the list")
	assert.Equal(t, "Home", list.Title(0))

	recordStore.AssertExpectations(t)
}
