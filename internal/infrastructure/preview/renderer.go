// Package preview draws a session as a PNG: each target's extent in its
// display color and the crop selection on top.
package preview

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"

	"github.com/marcos-nsantos/geocrop/internal/domain/entity"
	"github.com/marcos-nsantos/geocrop/internal/domain/valueobject"
)

const (
	DefaultWidth  = 512
	DefaultHeight = 512
	MaxSize       = 4096

	fillAlpha   = 80
	strokeWidth = 2
	padding     = 16
)

var (
	background = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	cropColor  = color.NRGBA{R: 0xff, A: 0xff}
)

type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render draws targets and crop into a width x height PNG. Coordinates are
// drawn equirectangular, fitted to the union of everything drawn.
func (r *Renderer) Render(targets []*entity.CropTarget, crop *valueobject.ExtentBox, width, height int) ([]byte, error) {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	if width > MaxSize || height > MaxSize {
		return nil, fmt.Errorf("preview size %dx%d exceeds %d", width, height, MaxSize)
	}

	img := imaging.New(width, height, background)

	frame, ok := union(targets, crop)
	if ok {
		fit := newFitter(frame, width, height)
		for _, t := range targets {
			if t.Extent == nil {
				continue
			}
			fill := t.Color
			fill.A = fillAlpha
			stroke := t.Color
			stroke.A = 0xff
			img = drawBox(img, fit.rect(*t.Extent), fill, stroke)
		}
		if crop != nil {
			img = drawBox(img, fit.rect(*crop), color.NRGBA{}, cropColor)
		}
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encoding preview: %w", err)
	}
	return buf.Bytes(), nil
}

func union(targets []*entity.CropTarget, crop *valueobject.ExtentBox) (valueobject.ExtentBox, bool) {
	var out valueobject.ExtentBox
	found := false
	add := func(b valueobject.ExtentBox) {
		if !found {
			out, found = b, true
			return
		}
		out = out.Union(b)
	}
	for _, t := range targets {
		if t.Extent != nil {
			add(*t.Extent)
		}
	}
	if crop != nil {
		add(*crop)
	}
	return out, found
}

type fitter struct {
	frame         valueobject.ExtentBox
	scale         float64
	offX, offY    float64
	width, height int
}

func newFitter(frame valueobject.ExtentBox, width, height int) fitter {
	spanX := frame.Max.Lng - frame.Min.Lng
	spanY := frame.Max.Lat - frame.Min.Lat
	availX := float64(max(width-2*padding, 1))
	availY := float64(max(height-2*padding, 1))

	scale := 1.0
	switch {
	case spanX > 0 && spanY > 0:
		scale = math.Min(availX/spanX, availY/spanY)
	case spanX > 0:
		scale = availX / spanX
	case spanY > 0:
		scale = availY / spanY
	}

	return fitter{
		frame:  frame,
		scale:  scale,
		offX:   (float64(width) - spanX*scale) / 2,
		offY:   (float64(height) - spanY*scale) / 2,
		width:  width,
		height: height,
	}
}

// rect maps box to pixels; north is up. Boxes collapse to at least one pixel.
func (f fitter) rect(box valueobject.ExtentBox) image.Rectangle {
	x0 := f.offX + (box.Min.Lng-f.frame.Min.Lng)*f.scale
	x1 := f.offX + (box.Max.Lng-f.frame.Min.Lng)*f.scale
	y0 := f.offY + (f.frame.Max.Lat-box.Max.Lat)*f.scale
	y1 := f.offY + (f.frame.Max.Lat-box.Min.Lat)*f.scale

	r := image.Rect(int(math.Floor(x0)), int(math.Floor(y0)), int(math.Ceil(x1)), int(math.Ceil(y1)))
	if r.Dx() == 0 {
		r.Max.X++
	}
	if r.Dy() == 0 {
		r.Max.Y++
	}
	return r.Intersect(image.Rect(0, 0, f.width, f.height))
}

func drawBox(img *image.NRGBA, r image.Rectangle, fill, stroke color.NRGBA) *image.NRGBA {
	if r.Empty() {
		return img
	}
	if fill.A > 0 {
		img = imaging.Overlay(img, imaging.New(r.Dx(), r.Dy(), fill), r.Min, 1.0)
	}

	w := min(strokeWidth, r.Dx())
	h := min(strokeWidth, r.Dy())
	edges := []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+h),
		image.Rect(r.Min.X, r.Max.Y-h, r.Max.X, r.Max.Y),
		image.Rect(r.Min.X, r.Min.Y, r.Min.X+w, r.Max.Y),
		image.Rect(r.Max.X-w, r.Min.Y, r.Max.X, r.Max.Y),
	}
	for _, e := range edges {
		img = imaging.Overlay(img, imaging.New(e.Dx(), e.Dy(), stroke), e.Min, 1.0)
	}
	return img
}
