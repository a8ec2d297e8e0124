// Package mapview converts between screen pixels of a web-mercator map and
// geographic points.
package mapview

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"

	"github.com/marcos-nsantos/geocrop/internal/domain"
	"github.com/marcos-nsantos/geocrop/internal/domain/entity"
	"github.com/marcos-nsantos/geocrop/internal/domain/valueobject"
)

const TileSize = 256

// Viewport is the visible map: its center, zoom level and pixel size.
// Pixel (0,0) is the top-left corner.
type Viewport struct {
	Center valueobject.GeoPoint
	Zoom   int
	Width  int
	Height int
}

func (v Viewport) Validate() error {
	if v.Zoom < entity.MinZoom || v.Zoom > entity.MaxZoom {
		return fmt.Errorf("%w: zoom %d outside [%d, %d]", domain.ErrInvalidPoint, v.Zoom, entity.MinZoom, entity.MaxZoom)
	}
	if v.Width <= 0 || v.Height <= 0 {
		return fmt.Errorf("%w: viewport size %dx%d", domain.ErrInvalidPoint, v.Width, v.Height)
	}
	if !v.Center.IsValid() {
		return fmt.Errorf("%w: viewport center %v", domain.ErrInvalidPoint, v.Center)
	}
	return nil
}

// Resolution is meters per pixel at the equator.
func (v Viewport) Resolution() float64 {
	return 2 * math.Pi * orb.EarthRadius / (TileSize * math.Exp2(float64(v.Zoom)))
}

// PixelToGeo maps a click inside the viewport to a geographic point.
func (v Viewport) PixelToGeo(x, y float64) (valueobject.GeoPoint, error) {
	if err := v.Validate(); err != nil {
		return valueobject.GeoPoint{}, err
	}
	if x < 0 || y < 0 || x > float64(v.Width) || y > float64(v.Height) {
		return valueobject.GeoPoint{}, fmt.Errorf("%w: pixel (%g, %g) outside %dx%d viewport", domain.ErrInvalidPoint, x, y, v.Width, v.Height)
	}

	res := v.Resolution()
	c := project.WGS84.ToMercator(v.Center.Orb())
	m := orb.Point{
		c[0] + (x-float64(v.Width)/2)*res,
		c[1] - (y-float64(v.Height)/2)*res,
	}
	p := valueobject.GeoPointFromOrb(project.Mercator.ToWGS84(m))
	if !p.IsValid() {
		return valueobject.GeoPoint{}, fmt.Errorf("%w: pixel (%g, %g) maps off the world", domain.ErrInvalidPoint, x, y)
	}
	return p, nil
}

// GeoToPixel is the inverse of PixelToGeo. The result may fall outside the
// viewport.
func (v Viewport) GeoToPixel(p valueobject.GeoPoint) (float64, float64) {
	res := v.Resolution()
	c := project.WGS84.ToMercator(v.Center.Orb())
	m := project.WGS84.ToMercator(p.Orb())
	return (m[0]-c[0])/res + float64(v.Width)/2, (c[1]-m[1])/res + float64(v.Height)/2
}
