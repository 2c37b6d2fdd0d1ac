package console

import (
	"fmt"
	"io"
	"time"

	"github.com/geobook/geobook/pkg/mapview"
)

// MapWidget is a text rendition of the map surface. It prints region
// changes and markers instead of drawing tiles, and it simulates the
// press gesture: a press shorter than the minimum hold is ignored, a
// long enough one is delivered to the registered handler with its
// coordinate, exactly like the platform gesture recognizer would.
type MapWidget struct {
	out      io.Writer
	minPress time.Duration

	region    mapview.Region
	markers   []mapview.Marker
	longPress mapview.LongPressHandler
	callout   mapview.CalloutHandler
}

// NewMapWidget creates a MapWidget writing to out, requiring minPress
// for the annotate gesture.
func NewMapWidget(out io.Writer, minPress time.Duration) *MapWidget {
	return &MapWidget{out: out, minPress: minPress}
}

// SetRegion centers the visible map.
func (w *MapWidget) SetRegion(region mapview.Region) {
	w.region = region
	fmt.Fprintf(w.out, "[map] centered on %.4f, %.4f (span %.2f°)\n",
		region.Center.Latitude, region.Center.Longitude, region.Span.LatitudeDelta)
}

// AddMarker drops a pin.
func (w *MapWidget) AddMarker(marker mapview.Marker) {
	w.markers = append(w.markers, marker)
	fmt.Fprintf(w.out, "[map] pin %q at %.4f, %.4f\n",
		marker.Title, marker.Coordinate.Latitude, marker.Coordinate.Longitude)
}

// OnLongPress registers the long-press handler.
func (w *MapWidget) OnLongPress(fn mapview.LongPressHandler) {
	w.longPress = fn
}

// OnCalloutTap registers the callout-tap handler.
func (w *MapWidget) OnCalloutTap(fn mapview.CalloutHandler) {
	w.callout = fn
}

// Press simulates a press held for the given duration at a coordinate.
func (w *MapWidget) Press(coord mapview.Coordinate, held time.Duration) {
	if held < w.minPress {
		fmt.Fprintf(w.out, "[map] press too short, hold for %s to drop a pin\n", w.minPress)
		return
	}
	if w.longPress != nil {
		w.longPress(coord)
	}
}

// TapCallout simulates tapping the callout of the most recent marker.
func (w *MapWidget) TapCallout() {
	if len(w.markers) == 0 || w.callout == nil {
		return
	}
	w.callout(w.markers[len(w.markers)-1])
}

// Reset clears markers and handlers for the next screen.
func (w *MapWidget) Reset() {
	w.markers = nil
	w.longPress = nil
	w.callout = nil
}
