package crop

import (
	"sort"

	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"

	"github.com/marcos-nsantos/geocrop/internal/domain/entity"
	"github.com/marcos-nsantos/geocrop/internal/domain/valueobject"
)

// pad widens every rectangle so points and axis-aligned lines get a
// non-zero extent; rtreego rejects zero lengths.
const pad = 1e-9

// FeatureIndex narrows a feature set to those whose bounds touch a box. It
// over-approximates: every feature with a vertex in the box is a candidate,
// and the vertex test still decides.
type FeatureIndex struct {
	tree *rtreego.Rtree
}

type indexedFeature struct {
	index int
	rect  rtreego.Rect
}

func (f *indexedFeature) Bounds() rtreego.Rect {
	return f.rect
}

func NewFeatureIndex(geoms []orb.Geometry) *FeatureIndex {
	tree := rtreego.NewTree(2, 25, 50)
	for i, g := range geoms {
		if !hasVertex(g) {
			continue
		}
		rect, err := paddedRect(g.Bound())
		if err != nil {
			continue
		}
		tree.Insert(&indexedFeature{index: i, rect: rect})
	}
	return &FeatureIndex{tree: tree}
}

// Candidates returns candidate indexes in ascending order.
func (x *FeatureIndex) Candidates(box valueobject.ExtentBox) []int {
	rect, err := paddedRect(box.Bound())
	if err != nil {
		return nil
	}

	hits := x.tree.SearchIntersect(rect)
	out := make([]int, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.(*indexedFeature).index)
	}
	sort.Ints(out)
	return out
}

func (x *FeatureIndex) Size() int {
	return x.tree.Size()
}

func paddedRect(b orb.Bound) (rtreego.Rect, error) {
	return rtreego.NewRect(
		rtreego.Point{b.Min[0] - pad, b.Min[1] - pad},
		[]float64{b.Max[0] - b.Min[0] + 2*pad, b.Max[1] - b.Min[1] + 2*pad},
	)
}

func hasVertex(g orb.Geometry) bool {
	found := false
	entity.EachVertex(g, func(orb.Point) bool {
		found = true
		return false
	})
	return found
}
