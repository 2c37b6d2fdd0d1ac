package geocoder

import (
	"context"
	"time"

	"googlemaps.github.io/maps"
)

// Resolver turns a coordinate into a human-readable address. An empty
// address with a nil error means no candidate was found.
type Resolver interface {
	Resolve(ctx context.Context, latitude, longitude float64) (string, error)
}

// GoogleGeocoder resolves addresses through the Google Maps reverse
// geocoding API, using the first candidate the API returns.
type GoogleGeocoder struct {
	client *maps.Client
}

// NewGoogleGeocoder creates a GoogleGeocoder with the given API key.
func NewGoogleGeocoder(apiKey string) (*GoogleGeocoder, error) {
	c, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	return &GoogleGeocoder{client: c}, nil
}

// Resolve reverse-geocodes the coordinate and returns the first
// formatted address, or "" when the API has no candidates.
func (g *GoogleGeocoder) Resolve(ctx context.Context, latitude, longitude float64) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	req := &maps.GeocodingRequest{
		LatLng: &maps.LatLng{Lat: latitude, Lng: longitude},
	}

	results, err := g.client.ReverseGeocode(ctx, req)
	if err != nil {
		return "", err
	}
	if len(results) == 0 {
		return "", nil
	}

	return results[0].FormattedAddress, nil
}
