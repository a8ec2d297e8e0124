package entity

import (
	"slices"

	"github.com/paulmach/orb"

	"github.com/marcos-nsantos/geocrop/internal/domain/valueobject"
)

type GeometryKind string

const (
	KindPoint           GeometryKind = "Point"
	KindMultiPoint      GeometryKind = "MultiPoint"
	KindLineString      GeometryKind = "LineString"
	KindMultiLineString GeometryKind = "MultiLineString"
	KindPolygon         GeometryKind = "Polygon"
	KindMultiPolygon    GeometryKind = "MultiPolygon"
	KindUnknown         GeometryKind = "Unknown"
)

func KindOf(g orb.Geometry) GeometryKind {
	if g == nil {
		return KindUnknown
	}
	switch g.GeoJSONType() {
	case "Point":
		return KindPoint
	case "MultiPoint":
		return KindMultiPoint
	case "LineString":
		return KindLineString
	case "MultiLineString":
		return KindMultiLineString
	case "Polygon":
		return KindPolygon
	case "MultiPolygon":
		return KindMultiPolygon
	default:
		return KindUnknown
	}
}

type FieldType string

const (
	FieldString  FieldType = "string"
	FieldInteger FieldType = "integer"
	FieldFloat   FieldType = "float"
	FieldBoolean FieldType = "boolean"
	FieldDate    FieldType = "date"
)

// Field is one attribute column. Size and Precision are only meaningful to
// formats with fixed-width columns.
type Field struct {
	Name      string
	Type      FieldType
	Size      int
	Precision int
}

type Schema []Field

func (s Schema) Index(name string) int {
	for i, f := range s {
		if f.Name == name {
			return i
		}
	}
	return -1
}

func (s Schema) Names() []string {
	names := make([]string, len(s))
	for i, f := range s {
		names[i] = f.Name
	}
	return names
}

type Attribute struct {
	Name  string
	Value any
}

// Feature is one geometry plus its attribute values in schema order. ID is
// the source's own feature identifier, when the format carries one. Z and M
// hold per-vertex elevation and measure values in EachVertex order; they are
// nil unless the source stores them.
type Feature struct {
	ID         any
	Geometry   orb.Geometry
	Attributes []Attribute
	Z          []float64
	M          []float64
}

func (f Feature) Attribute(name string) (any, bool) {
	for _, a := range f.Attributes {
		if a.Name == name {
			return a.Value, true
		}
	}
	return nil, false
}

// Clone deep-copies the geometry and the attribute slice.
func (f Feature) Clone() Feature {
	out := Feature{
		ID:         f.ID,
		Attributes: make([]Attribute, len(f.Attributes)),
		Z:          slices.Clone(f.Z),
		M:          slices.Clone(f.M),
	}
	copy(out.Attributes, f.Attributes)
	if f.Geometry != nil {
		out.Geometry = orb.Clone(f.Geometry)
	}
	return out
}

// Coordinates flattens every vertex of the geometry, rings and parts
// included, in storage order.
func (f Feature) Coordinates() []valueobject.GeoPoint {
	var pts []valueobject.GeoPoint
	EachVertex(f.Geometry, func(p orb.Point) bool {
		pts = append(pts, valueobject.GeoPointFromOrb(p))
		return true
	})
	return pts
}

// EachVertex calls fn for every vertex of g until fn returns false. It
// reports whether the walk ran to completion.
func EachVertex(g orb.Geometry, fn func(orb.Point) bool) bool {
	switch geom := g.(type) {
	case nil:
		return true
	case orb.Point:
		return fn(geom)
	case orb.MultiPoint:
		for _, p := range geom {
			if !fn(p) {
				return false
			}
		}
	case orb.LineString:
		for _, p := range geom {
			if !fn(p) {
				return false
			}
		}
	case orb.Ring:
		for _, p := range geom {
			if !fn(p) {
				return false
			}
		}
	case orb.MultiLineString:
		for _, ls := range geom {
			if !EachVertex(ls, fn) {
				return false
			}
		}
	case orb.Polygon:
		for _, r := range geom {
			if !EachVertex(r, fn) {
				return false
			}
		}
	case orb.MultiPolygon:
		for _, p := range geom {
			if !EachVertex(p, fn) {
				return false
			}
		}
	case orb.Collection:
		for _, c := range geom {
			if !EachVertex(c, fn) {
				return false
			}
		}
	case orb.Bound:
		return EachVertex(geom.ToRing(), fn)
	}
	return true
}
