package screens_test

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/geobook/geobook/internal/models"
	"github.com/geobook/geobook/internal/store"
	"github.com/geobook/geobook/pkg/location"
	"github.com/geobook/geobook/pkg/mapview"
)

// mockRecordStore is a mock implementation of the store.RecordStore interface.
type mockRecordStore struct {
	mock.Mock
}

func (m *mockRecordStore) Create(title, subtitle string, latitude, longitude float64) (uuid.UUID, error) {
	args := m.Called(title, subtitle, latitude, longitude)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *mockRecordStore) FetchAll() ([]store.Entry, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.Entry), args.Error(1)
}

func (m *mockRecordStore) FetchByID(id uuid.UUID) (*models.LocationRecord, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LocationRecord), args.Error(1)
}

func (m *mockRecordStore) DeleteByID(id uuid.UUID) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *mockRecordStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

// fakeMapView records everything the screens drive on the map surface.
type fakeMapView struct {
	regions   []mapview.Region
	markers   []mapview.Marker
	longPress mapview.LongPressHandler
	callout   mapview.CalloutHandler
}

func (f *fakeMapView) SetRegion(region mapview.Region) {
	f.regions = append(f.regions, region)
}

func (f *fakeMapView) AddMarker(marker mapview.Marker) {
	f.markers = append(f.markers, marker)
}

func (f *fakeMapView) OnLongPress(fn mapview.LongPressHandler) {
	f.longPress = fn
}

func (f *fakeMapView) OnCalloutTap(fn mapview.CalloutHandler) {
	f.callout = fn
}

// stubPositionProvider serves the current device position to a Monitor.
// The position can be moved while the monitor polls.
type stubPositionProvider struct {
	mu     sync.Mutex
	fix    location.Location
	closed bool
}

func (s *stubPositionProvider) GetLocation() (location.Location, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fix, nil
}

func (s *stubPositionProvider) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *stubPositionProvider) move(latitude, longitude float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fix = location.Location{Latitude: latitude, Longitude: longitude}
}

func (s *stubPositionProvider) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// fakeDialogs records every presented message without blocking.
type fakeDialogs struct {
	messages []string
}

func (f *fakeDialogs) Present(message string) {
	f.messages = append(f.messages, message)
}

// fakeListView counts reloads.
type fakeListView struct {
	reloads int
}

func (f *fakeListView) Reload() {
	f.reloads++
}

// fakeResolver returns a fixed address or error.
type fakeResolver struct {
	address string
	err     error
	calls   int
}

func (f *fakeResolver) Resolve(_ context.Context, _, _ float64) (string, error) {
	f.calls++
	return f.address, f.err
}

// fakeLauncher records directions hand-offs.
type fakeLauncher struct {
	names     []string
	addresses []string
}

func (f *fakeLauncher) OpenDirections(name, address string, _, _ float64) {
	f.names = append(f.names, name)
	f.addresses = append(f.addresses, address)
}
