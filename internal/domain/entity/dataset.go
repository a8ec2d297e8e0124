package entity

import (
	"github.com/paulmach/orb"

	"github.com/marcos-nsantos/geocrop/internal/domain/valueobject"
)

// Dataset is a format-independent vector layer: a schema, a CRS and an
// ordered feature sequence. HasZ and HasM mark layers whose features carry
// Z or M values.
type Dataset struct {
	Name     string
	Kind     GeometryKind
	CRS      valueobject.CRS
	Schema   Schema
	HasZ     bool
	HasM     bool
	Features []Feature
}

// NewDataset returns an empty dataset that shares nothing with the given
// schema slice.
func NewDataset(name string, kind GeometryKind, crs valueobject.CRS, schema Schema) *Dataset {
	s := make(Schema, len(schema))
	copy(s, schema)
	return &Dataset{
		Name:   name,
		Kind:   kind,
		CRS:    crs,
		Schema: s,
	}
}

// EmptyLike copies schema, geometry kind, dimensions and CRS but no
// features.
func (d *Dataset) EmptyLike(name string) *Dataset {
	out := NewDataset(name, d.Kind, d.CRS, d.Schema)
	out.HasZ, out.HasM = d.HasZ, d.HasM
	return out
}

func (d *Dataset) Add(f Feature) {
	d.Features = append(d.Features, f)
}

func (d *Dataset) Len() int {
	return len(d.Features)
}

// Extent covers every vertex of every feature. ok is false when the dataset
// has no vertices.
func (d *Dataset) Extent() (box valueobject.ExtentBox, ok bool) {
	for _, f := range d.Features {
		EachVertex(f.Geometry, func(p orb.Point) bool {
			gp := valueobject.GeoPointFromOrb(p)
			if !ok {
				box = valueobject.FromCorners(gp, gp)
				ok = true
				return true
			}
			box = box.Extend(gp)
			return true
		})
	}
	return box, ok
}
