package screens

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/geobook/geobook/internal/signals"
	"github.com/geobook/geobook/internal/store"
	"github.com/geobook/geobook/internal/utils"
	"github.com/geobook/geobook/pkg/geocoder"
	"github.com/geobook/geobook/pkg/location"
	"github.com/geobook/geobook/pkg/mapview"
	"github.com/geobook/geobook/pkg/navigation"
)

// zoomSpanDegrees is the fixed map span used whenever the editor centers
// the camera on a coordinate.
const zoomSpanDegrees = 0.05

// EditorMode selects the editor's behavior for its whole lifetime. The
// mode is fixed at construction and never switches.
type EditorMode int

const (
	// ModeCreate collects a new record: editable fields, annotate
	// gesture, save.
	ModeCreate EditorMode = iota
	// ModeView displays an existing record read-only.
	ModeView
)

// EditorScreen either displays one saved location or builds a new one
// through the annotate-then-save workflow.
type EditorScreen struct {
	mode        EditorMode
	requestedID uuid.UUID

	store    store.RecordStore
	bus      signals.Bus
	mapView  mapview.MapView
	monitor  *location.Monitor
	resolver geocoder.Resolver
	launcher navigation.Launcher
	dialogs  DialogPresenter
	pool     *utils.WorkerPool
	onClose  func()
	logger   zerolog.Logger

	title    string
	subtitle string
	found    bool

	// pending coordinate; (0,0) means not yet annotated
	latitude  float64
	longitude float64

	following bool
}

// NewEditorScreen creates the editor. A nil requestedID selects create
// mode, a non-nil one view mode for that record. monitor, resolver and
// launcher may be nil when the composing application has no live
// position source or no external hand-off; the affected actions degrade
// to no-ops. onClose is invoked once after a successful save.
func NewEditorScreen(requestedID *uuid.UUID, recordStore store.RecordStore, bus signals.Bus,
	mapView mapview.MapView, monitor *location.Monitor, resolver geocoder.Resolver,
	launcher navigation.Launcher, dialogs DialogPresenter, pool *utils.WorkerPool,
	onClose func(), logger zerolog.Logger) *EditorScreen {

	e := &EditorScreen{
		mode:     ModeCreate,
		store:    recordStore,
		bus:      bus,
		mapView:  mapView,
		monitor:  monitor,
		resolver: resolver,
		launcher: launcher,
		dialogs:  dialogs,
		pool:     pool,
		onClose:  onClose,
		logger:   logger,
	}
	if requestedID != nil {
		e.mode = ModeView
		e.requestedID = *requestedID
	}
	return e
}

// Activate wires the map callbacks and enters the screen's mode: view
// mode loads and displays the requested record, create mode starts
// following the device position.
func (e *EditorScreen) Activate() {
	e.mapView.OnCalloutTap(e.calloutTapped)

	if e.mode == ModeView {
		e.loadRequested()
		return
	}

	e.mapView.OnLongPress(e.longPressed)
	e.startFollowing()
}

// Deactivate stops the position follow when one is running.
func (e *EditorScreen) Deactivate() {
	if e.following {
		if err := e.monitor.Stop(); err != nil {
			e.logger.Error().Err(err).Msg("Failed to stop location monitor")
		}
		e.following = false
	}
}

// Mode returns the mode fixed at construction.
func (e *EditorScreen) Mode() EditorMode {
	return e.mode
}

// Title returns the current title field.
func (e *EditorScreen) Title() string {
	return e.title
}

// Subtitle returns the current subtitle field.
func (e *EditorScreen) Subtitle() string {
	return e.subtitle
}

// Found reports whether view mode located its record. Create mode is
// always false.
func (e *EditorScreen) Found() bool {
	return e.found
}

// CanSave reports whether the save action is offered at all. View mode
// hides it.
func (e *EditorScreen) CanSave() bool {
	return e.mode == ModeCreate
}

// SetTitle updates the title field. Ignored in view mode, where the
// fields are not editable.
func (e *EditorScreen) SetTitle(title string) {
	if e.mode == ModeView {
		return
	}
	e.title = title
}

// SetSubtitle updates the subtitle field. Ignored in view mode.
func (e *EditorScreen) SetSubtitle(subtitle string) {
	if e.mode == ModeView {
		return
	}
	e.subtitle = subtitle
}

// Save validates the pending input, persists the record, closes the
// screen and broadcasts the saved-location signal. The broadcast happens
// strictly after the store commit, so any listener's refresh sees the
// new record. A storage failure keeps the screen open and broadcasts
// nothing.
func (e *EditorScreen) Save() error {
	if !e.CanSave() {
		return nil
	}

	if err := Validate(e.title, e.subtitle, e.latitude, e.longitude, true); err != nil {
		e.dialogs.Present(err.Error())
		return nil
	}

	id, err := e.store.Create(e.title, e.subtitle, e.latitude, e.longitude)
	if err != nil {
		e.logger.Error().Err(err).Msg("Failed to save location record")
		return err
	}

	e.logger.Info().Str("id", id.String()).Str("title", e.title).Msg("Location saved")
	e.onClose()
	e.bus.Publish(signals.TopicNewLocation)
	return nil
}

// longPressed handles a completed long press on the map: the fields are
// validated first (without the coordinate check), then a marker is
// dropped and the pending coordinate overwritten. Pressing again before
// save adds another marker and the last coordinate wins.
func (e *EditorScreen) longPressed(coord mapview.Coordinate) {
	if e.mode != ModeCreate {
		return
	}

	if err := Validate(e.title, e.subtitle, 0, 0, false); err != nil {
		e.dialogs.Present(err.Error())
		return
	}

	e.mapView.AddMarker(mapview.Marker{
		Title:      e.title,
		Subtitle:   e.subtitle,
		Coordinate: coord,
	})

	e.latitude = coord.Latitude
	e.longitude = coord.Longitude
	e.logger.Debug().
		Float64("latitude", coord.Latitude).
		Float64("longitude", coord.Longitude).
		Msg("Map annotated")
}

// calloutTapped resolves the displayed coordinate to an address and
// hands it to the external navigation launcher. View mode only; every
// failure on this path is swallowed.
func (e *EditorScreen) calloutTapped(marker mapview.Marker) {
	if e.mode != ModeView || e.resolver == nil || e.launcher == nil || e.pool == nil {
		return
	}

	latitude, longitude := e.latitude, e.longitude
	name := e.title

	e.pool.Submit(func() {
		address, err := e.resolver.Resolve(context.Background(), latitude, longitude)
		if err != nil {
			e.logger.Debug().Err(err).Msg("Reverse geocoding failed")
			return
		}
		if address == "" {
			return
		}

		e.launcher.OpenDirections(name, address, latitude, longitude)
	})
}

// loadRequested fetches the requested record and shows it. An absent
// record leaves the screen empty; that is not an error.
func (e *EditorScreen) loadRequested() {
	record, err := e.store.FetchByID(e.requestedID)
	if err != nil {
		e.logger.Error().Err(err).Str("id", e.requestedID.String()).Msg("Failed to fetch location record")
		return
	}
	if record == nil {
		e.logger.Warn().Str("id", e.requestedID.String()).Msg("Requested location no longer exists")
		return
	}

	e.found = true
	e.title = record.Title
	e.subtitle = record.Subtitle
	e.latitude = record.Latitude
	e.longitude = record.Longitude

	coord := mapview.Coordinate{Latitude: record.Latitude, Longitude: record.Longitude}
	e.centerOn(coord)
	e.mapView.AddMarker(mapview.Marker{
		Title:      record.Title,
		Subtitle:   record.Subtitle,
		Coordinate: coord,
	})
}

// startFollowing asks for the device position and re-centers the camera
// on every delivered fix until the screen is deactivated.
func (e *EditorScreen) startFollowing() {
	if e.monitor == nil {
		return
	}

	err := e.monitor.Start(func(fix location.Location) {
		e.centerOn(mapview.Coordinate{Latitude: fix.Latitude, Longitude: fix.Longitude})
	})
	if err != nil {
		// treated as a denied permission: the map stays where it was
		e.logger.Warn().Err(err).Msg("Current position unavailable")
		return
	}

	e.following = true
}

func (e *EditorScreen) centerOn(coord mapview.Coordinate) {
	e.mapView.SetRegion(mapview.Region{
		Center: coord,
		Span:   mapview.Span{LatitudeDelta: zoomSpanDegrees, LongitudeDelta: zoomSpanDegrees},
	})
}
