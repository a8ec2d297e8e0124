package crop

import (
	"github.com/paulmach/orb"

	"github.com/marcos-nsantos/geocrop/internal/domain/entity"
	"github.com/marcos-nsantos/geocrop/internal/domain/valueobject"
)

// Includes reports whether any vertex of g lies inside box, edges included.
//
// This is a vertex hit test, not an intersection: a polygon that surrounds
// the box without a vertex inside it is not included, and a feature with a
// single vertex inside is kept whole. Geometries with no vertices are never
// included.
func Includes(g orb.Geometry, box valueobject.ExtentBox) bool {
	hit := false
	entity.EachVertex(g, func(p orb.Point) bool {
		if box.Contains(valueobject.GeoPointFromOrb(p)) {
			hit = true
			return false
		}
		return true
	})
	return hit
}

// indexThreshold is the dataset size from which Select builds an R-tree
// before running the vertex test.
const indexThreshold = 64

// Select returns, in ascending order, the indexes of the geometries that
// Includes accepts.
func Select(geoms []orb.Geometry, box valueobject.ExtentBox) []int {
	candidates := allIndexes(len(geoms))
	if len(geoms) >= indexThreshold {
		candidates = NewFeatureIndex(geoms).Candidates(box)
	}

	keep := make([]int, 0, len(candidates))
	for _, i := range candidates {
		if Includes(geoms[i], box) {
			keep = append(keep, i)
		}
	}
	return keep
}

func allIndexes(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
