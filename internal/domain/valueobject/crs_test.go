package valueobject_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/marcos-nsantos/geocrop/internal/domain/valueobject"
)

func TestParseEPSG(t *testing.T) {
	tests := []struct {
		in   string
		code int
		ok   bool
	}{
		{"EPSG:3857", 3857, true},
		{"epsg:32633", 32633, true},
		{"4326", 4326, true},
		{"urn:ogc:def:crs:EPSG::27700", 27700, true},
		{"urn:ogc:def:crs:OGC:1.3:CRS84", 4326, true},
		{"EPSG:abc", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			crs, ok := valueobject.ParseEPSG(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.code, crs.Code)
		})
	}
}

func TestCRS_Same(t *testing.T) {
	assert.True(t, valueobject.WGS84.Same(valueobject.EPSG(4326)))
	assert.False(t, valueobject.EPSG(3857).Same(valueobject.EPSG(4326)))
	assert.True(t, valueobject.CRS{Definition: "+proj=merc"}.Same(valueobject.CRS{Definition: "+proj=merc"}))
	assert.False(t, valueobject.CRS{}.Same(valueobject.CRS{}))
}
