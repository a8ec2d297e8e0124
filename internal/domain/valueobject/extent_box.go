package valueobject

import (
	"math"

	"github.com/paulmach/orb"
)

// ExtentBox is an axis-aligned rectangle with Min.Lat <= Max.Lat and
// Min.Lng <= Max.Lng. Build it with FromCorners to get that guarantee.
type ExtentBox struct {
	Min GeoPoint
	Max GeoPoint
}

// FromCorners normalizes two arbitrary corners. Latitude and longitude are
// sorted independently, so (5,1) and (1,5) give min (1,1) and max (5,5).
func FromCorners(a, b GeoPoint) ExtentBox {
	return ExtentBox{
		Min: GeoPoint{Lat: math.Min(a.Lat, b.Lat), Lng: math.Min(a.Lng, b.Lng)},
		Max: GeoPoint{Lat: math.Max(a.Lat, b.Lat), Lng: math.Max(a.Lng, b.Lng)},
	}
}

// Corners returns min, (max.lat,min.lng), max, (min.lat,max.lng).
func (b ExtentBox) Corners() [4]GeoPoint {
	return [4]GeoPoint{
		b.Min,
		{Lat: b.Max.Lat, Lng: b.Min.Lng},
		b.Max,
		{Lat: b.Min.Lat, Lng: b.Max.Lng},
	}
}

// Ring is the corner sequence closed back onto its first point.
func (b ExtentBox) Ring() orb.Ring {
	c := b.Corners()
	return orb.Ring{c[0].Orb(), c[1].Orb(), c[2].Orb(), c[3].Orb(), c[0].Orb()}
}

func (b ExtentBox) Bound() orb.Bound {
	return orb.Bound{Min: b.Min.Orb(), Max: b.Max.Orb()}
}

// Contains is inclusive on every edge.
func (b ExtentBox) Contains(p GeoPoint) bool {
	return p.Lat >= b.Min.Lat && p.Lat <= b.Max.Lat &&
		p.Lng >= b.Min.Lng && p.Lng <= b.Max.Lng
}

func (b ExtentBox) IsValid() bool {
	return b.Min.Lat <= b.Max.Lat &&
		b.Min.Lng <= b.Max.Lng &&
		b.Min.IsValid() && b.Max.IsValid()
}

func (b ExtentBox) IsDegenerate() bool {
	return b.Min.Lat == b.Max.Lat || b.Min.Lng == b.Max.Lng
}

// Extend grows the box to cover p.
func (b ExtentBox) Extend(p GeoPoint) ExtentBox {
	return ExtentBox{
		Min: GeoPoint{Lat: math.Min(b.Min.Lat, p.Lat), Lng: math.Min(b.Min.Lng, p.Lng)},
		Max: GeoPoint{Lat: math.Max(b.Max.Lat, p.Lat), Lng: math.Max(b.Max.Lng, p.Lng)},
	}
}

// Union covers both boxes.
func (b ExtentBox) Union(other ExtentBox) ExtentBox {
	return b.Extend(other.Min).Extend(other.Max)
}
