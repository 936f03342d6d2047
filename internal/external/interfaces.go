package external

import "context"

// Geocoder resolves free-form place names to coordinates. Handlers depend on
// this rather than the concrete Nominatim client so tests can stub it.
type Geocoder interface {
	Geocode(ctx context.Context, location string) (*Coordinates, error)
}

var _ Geocoder = (*NominatimClient)(nil)
