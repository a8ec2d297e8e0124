// Package projection moves geometries between coordinate reference systems
// using the pure Go PROJ port in ctessum/geom.
package projection

import (
	"fmt"
	"math"
	"sync"

	"github.com/ctessum/geom/proj"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"

	"github.com/marcos-nsantos/geocrop/internal/domain"
	"github.com/marcos-nsantos/geocrop/internal/domain/valueobject"
)

// Reprojector caches parsed reference systems and transforms by their
// definitions. It is safe for concurrent use.
type Reprojector struct {
	mu         sync.RWMutex
	systems    map[string]*proj.SR
	transforms map[[2]string]proj.Transformer
}

func NewReprojector() *Reprojector {
	return &Reprojector{
		systems:    make(map[string]*proj.SR),
		transforms: make(map[[2]string]proj.Transformer),
	}
}

// Reproject returns a copy of g with every vertex mapped from one CRS to the
// other. The geometry is returned as is when both describe the same frame.
// Any vertex that cannot be transformed fails the whole geometry.
func (r *Reprojector) Reproject(g orb.Geometry, from, to valueobject.CRS) (orb.Geometry, error) {
	if g == nil || from.Same(to) {
		return g, nil
	}

	t, err := r.transform(from, to)
	if err != nil {
		return nil, err
	}

	var failed error
	out := project.Geometry(orb.Clone(g), func(p orb.Point) orb.Point {
		if failed != nil {
			return p
		}
		x, y, err := t(p[0], p[1])
		if err == nil && (math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0)) {
			err = fmt.Errorf("non-finite result")
		}
		if err != nil {
			failed = fmt.Errorf("point (%g, %g) from %s to %s: %v: %w", p[0], p[1], from, to, err, domain.ErrProjection)
			return p
		}
		return orb.Point{x, y}
	})
	if failed != nil {
		return nil, failed
	}
	return out, nil
}

// ReprojectBox maps the four corners of a box and returns their envelope.
func (r *Reprojector) ReprojectBox(box valueobject.ExtentBox, from, to valueobject.CRS) (valueobject.ExtentBox, error) {
	g, err := r.Reproject(box.Ring(), from, to)
	if err != nil {
		return valueobject.ExtentBox{}, err
	}
	b := g.Bound()
	return valueobject.FromCorners(valueobject.GeoPointFromOrb(b.Min), valueobject.GeoPointFromOrb(b.Max)), nil
}

// Supports reports whether c can be resolved to a usable definition.
func (r *Reprojector) Supports(c valueobject.CRS) bool {
	_, err := r.system(c)
	return err == nil
}

func (r *Reprojector) transform(from, to valueobject.CRS) (proj.Transformer, error) {
	src, err := r.system(from)
	if err != nil {
		return nil, err
	}
	dst, err := r.system(to)
	if err != nil {
		return nil, err
	}

	key := [2]string{definitionKey(from), definitionKey(to)}
	r.mu.RLock()
	t, ok := r.transforms[key]
	r.mu.RUnlock()
	if ok {
		return t, nil
	}

	t, err = src.NewTransform(dst)
	if err != nil {
		return nil, fmt.Errorf("transform %s to %s: %v: %w", from, to, err, domain.ErrProjection)
	}

	r.mu.Lock()
	r.transforms[key] = t
	r.mu.Unlock()
	return t, nil
}

func (r *Reprojector) system(c valueobject.CRS) (*proj.SR, error) {
	def, err := resolve(c)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	sr, ok := r.systems[def]
	r.mu.RUnlock()
	if ok {
		return sr, nil
	}

	sr, err = proj.Parse(def)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %v: %w", c, err, domain.ErrProjection)
	}

	r.mu.Lock()
	r.systems[def] = sr
	r.mu.Unlock()
	return sr, nil
}

// resolve picks the definition to parse: a known EPSG code first, then an
// explicit PROJ.4 string, then WKT.
func resolve(c valueobject.CRS) (string, error) {
	if c.Code != 0 {
		if def, ok := definitionFor(c.Code); ok {
			return def, nil
		}
	}
	if c.Definition != "" {
		return c.Definition, nil
	}
	if c.WKT != "" {
		return c.WKT, nil
	}
	return "", fmt.Errorf("no definition for %s: %w", c, domain.ErrProjection)
}

func definitionKey(c valueobject.CRS) string {
	def, _ := resolve(c)
	return def
}
