// Package mapview defines the contract between the screens and whatever
// map widget the composing application supplies. The core only ever sets
// the visible region, drops markers, and reacts to long-press and
// callout-tap events; rendering is entirely the widget's business.
package mapview

// Coordinate is a geographic point.
type Coordinate struct {
	Latitude  float64
	Longitude float64
}

// Span is the visible extent of the map around its center, in degrees.
type Span struct {
	LatitudeDelta  float64
	LongitudeDelta float64
}

// Region is a center plus the span to display around it.
type Region struct {
	Center Coordinate
	Span   Span
}

// Marker is a titled pin on the map.
type Marker struct {
	Title      string
	Subtitle   string
	Coordinate Coordinate
}

// LongPressHandler receives the geographic coordinate under a completed
// long press. The widget enforces the minimum hold duration itself.
type LongPressHandler func(Coordinate)

// CalloutHandler receives the marker whose callout accessory was tapped.
type CalloutHandler func(Marker)

// MapView is the widget surface the screens drive.
type MapView interface {
	SetRegion(region Region)
	AddMarker(marker Marker)
	OnLongPress(fn LongPressHandler)
	OnCalloutTap(fn CalloutHandler)
}
