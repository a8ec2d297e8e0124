package valueobject

import "github.com/paulmach/orb"

// GeoPoint is a latitude/longitude pair. The frame it is expressed in is
// carried by whatever holds it (a Dataset's CRS, or the working CRS for
// selections made on the map).
type GeoPoint struct {
	Lat float64
	Lng float64
}

func NewGeoPoint(lat, lng float64) GeoPoint {
	return GeoPoint{Lat: lat, Lng: lng}
}

// GeoPointFromOrb reads an orb point, which stores X=lng and Y=lat.
func GeoPointFromOrb(p orb.Point) GeoPoint {
	return GeoPoint{Lat: p.Y(), Lng: p.X()}
}

func (p GeoPoint) Orb() orb.Point {
	return orb.Point{p.Lng, p.Lat}
}

func (p GeoPoint) IsValid() bool {
	return p.Lat >= -90 && p.Lat <= 90 &&
		p.Lng >= -180 && p.Lng <= 180
}
