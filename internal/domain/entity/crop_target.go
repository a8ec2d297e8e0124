package entity

import (
	"fmt"
	"image/color"

	"github.com/google/uuid"

	"github.com/marcos-nsantos/geocrop/internal/domain/valueobject"
)

// CropTarget is one dataset under management in a session.
type CropTarget struct {
	ID          uuid.UUID
	Name        string
	Source      string
	Format      string
	NativeCRS   valueobject.CRS
	Selected    bool
	Color       color.NRGBA
	OutputPath  string
	Extent      *valueobject.ExtentBox
	CurrentCrop *valueobject.ExtentBox
}

func NewCropTarget(name, source, outputPath string, c color.NRGBA) *CropTarget {
	return &CropTarget{
		ID:         uuid.New(),
		Name:       name,
		Source:     source,
		OutputPath: outputPath,
		Color:      c,
		Selected:   true,
	}
}

func (t *CropTarget) SetCrop(box valueobject.ExtentBox) {
	b := box
	t.CurrentCrop = &b
}

func (t *CropTarget) ClearCrop() {
	t.CurrentCrop = nil
}

// ColorHex renders the display color as #rrggbb.
func (t *CropTarget) ColorHex() string {
	return fmt.Sprintf("#%02x%02x%02x", t.Color.R, t.Color.G, t.Color.B)
}

var palette = []color.NRGBA{
	{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff},
	{R: 0xff, G: 0x7f, B: 0x0e, A: 0xff},
	{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff},
	{R: 0x94, G: 0x67, B: 0xbd, A: 0xff},
	{R: 0x8c, G: 0x56, B: 0x4b, A: 0xff},
	{R: 0xe3, G: 0x77, B: 0xc2, A: 0xff},
	{R: 0x7f, G: 0x7f, B: 0x7f, A: 0xff},
	{R: 0xbc, G: 0xbd, B: 0x22, A: 0xff},
	{R: 0x17, G: 0xbe, B: 0xcf, A: 0xff},
}

// PaletteColor picks a display color for the i-th target.
func PaletteColor(i int) color.NRGBA {
	if i < 0 {
		i = -i
	}
	return palette[i%len(palette)]
}

// ParseColorHex accepts #rgb and #rrggbb.
func ParseColorHex(s string) (color.NRGBA, error) {
	c := color.NRGBA{A: 0xff}
	var err error
	switch len(s) {
	case 7:
		_, err = fmt.Sscanf(s, "#%02x%02x%02x", &c.R, &c.G, &c.B)
	case 4:
		_, err = fmt.Sscanf(s, "#%1x%1x%1x", &c.R, &c.G, &c.B)
		c.R *= 17
		c.G *= 17
		c.B *= 17
	default:
		err = fmt.Errorf("invalid color %q", s)
	}
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("parsing color %q: %w", s, err)
	}
	return c, nil
}
