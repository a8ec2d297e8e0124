package request

import (
	"fmt"

	"github.com/marcos-nsantos/geocrop/internal/domain/valueobject"
	"github.com/marcos-nsantos/geocrop/internal/infrastructure/mapview"
	"github.com/marcos-nsantos/geocrop/internal/usecase/session"
)

type DatasetRequest struct {
	Name       string `json:"name" binding:"omitempty,max=255"`
	Source     string `json:"source" binding:"required"`
	OutputPath string `json:"output_path" binding:"required"`
	Color      string `json:"color" binding:"omitempty,hexcolor"`
}

type CreateSessionRequest struct {
	Datasets []DatasetRequest `json:"datasets" binding:"required,min=1,max=64,dive"`
}

func (r CreateSessionRequest) Inputs() []session.DatasetInput {
	out := make([]session.DatasetInput, 0, len(r.Datasets))
	for _, d := range r.Datasets {
		out = append(out, session.DatasetInput{
			Name:       d.Name,
			Source:     d.Source,
			OutputPath: d.OutputPath,
			Color:      d.Color,
		})
	}
	return out
}

type ListSessionsRequest struct {
	Page    int `form:"page" binding:"omitempty,min=1"`
	PerPage int `form:"per_page" binding:"omitempty,min=1,max=100"`
}

type LatLng struct {
	Lat float64 `json:"lat" binding:"min=-90,max=90"`
	Lng float64 `json:"lng" binding:"min=-180,max=180"`
}

type ViewportRequest struct {
	Center LatLng `json:"center"`
	Zoom   int    `json:"zoom" binding:"required,min=1,max=24"`
	Width  int    `json:"width" binding:"required,min=1"`
	Height int    `json:"height" binding:"required,min=1"`
}

// RegisterPointRequest takes either lat/lng or a pixel x/y with the
// viewport it was clicked in.
type RegisterPointRequest struct {
	Lat      *float64         `json:"lat" binding:"omitempty,min=-90,max=90"`
	Lng      *float64         `json:"lng" binding:"omitempty,min=-180,max=180"`
	X        *float64         `json:"x" binding:"omitempty,min=0"`
	Y        *float64         `json:"y" binding:"omitempty,min=0"`
	Viewport *ViewportRequest `json:"viewport"`
}

func (r RegisterPointRequest) Input() (session.PointInput, error) {
	geo := r.Lat != nil || r.Lng != nil
	pixel := r.X != nil || r.Y != nil

	switch {
	case geo && pixel:
		return session.PointInput{}, fmt.Errorf("give either lat/lng or x/y, not both")
	case geo:
		if r.Lat == nil || r.Lng == nil {
			return session.PointInput{}, fmt.Errorf("lat and lng are both required")
		}
		p := valueobject.NewGeoPoint(*r.Lat, *r.Lng)
		return session.PointInput{Point: &p}, nil
	case pixel:
		if r.X == nil || r.Y == nil || r.Viewport == nil {
			return session.PointInput{}, fmt.Errorf("x, y and viewport are all required")
		}
		return session.PointInput{Pixel: &session.PixelPoint{
			X: *r.X,
			Y: *r.Y,
			Viewport: mapview.Viewport{
				Center: valueobject.NewGeoPoint(r.Viewport.Center.Lat, r.Viewport.Center.Lng),
				Zoom:   r.Viewport.Zoom,
				Width:  r.Viewport.Width,
				Height: r.Viewport.Height,
			},
		}}, nil
	default:
		return session.PointInput{}, fmt.Errorf("a point is required")
	}
}

type UpdateTargetRequest struct {
	Selected *bool `json:"selected" binding:"required"`
}

type PreviewRequest struct {
	Width  int `form:"width" binding:"omitempty,min=16,max=4096"`
	Height int `form:"height" binding:"omitempty,min=16,max=4096"`
}
