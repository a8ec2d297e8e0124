package valueobject

import (
	"fmt"
	"strconv"
	"strings"
)

// CRS describes a coordinate reference system. Code is an EPSG code when
// known; Definition is a PROJ.4 string and WKT the well-known text, either of
// which may be empty.
type CRS struct {
	Code       int
	Name       string
	Definition string
	WKT        string
}

const EPSGWGS84 = 4326

// WGS84 is the working frame every ExtentBox is expressed in.
var WGS84 = CRS{
	Code:       EPSGWGS84,
	Name:       "WGS 84",
	Definition: "+proj=longlat +ellps=WGS84 +datum=WGS84 +no_defs",
}

func EPSG(code int) CRS {
	return CRS{Code: code, Name: fmt.Sprintf("EPSG:%d", code)}
}

// ParseEPSG accepts "EPSG:3857", "epsg:3857", "3857" and the OGC URN forms
// "urn:ogc:def:crs:EPSG::3857" / "urn:ogc:def:crs:OGC:1.3:CRS84".
func ParseEPSG(s string) (CRS, bool) {
	s = strings.TrimSpace(s)
	upper := strings.ToUpper(s)
	if strings.HasSuffix(upper, "CRS84") {
		return WGS84, true
	}
	if i := strings.LastIndex(s, ":"); i >= 0 {
		s = s[i+1:]
	}
	code, err := strconv.Atoi(s)
	if err != nil || code <= 0 {
		return CRS{}, false
	}
	if code == EPSGWGS84 {
		return WGS84, true
	}
	return EPSG(code), true
}

func (c CRS) IsZero() bool {
	return c.Code == 0 && c.Definition == "" && c.WKT == ""
}

// Same reports whether both descriptors certainly name the same frame.
func (c CRS) Same(other CRS) bool {
	if c.Code != 0 && other.Code != 0 {
		return c.Code == other.Code
	}
	if c.Definition != "" && c.Definition == other.Definition {
		return true
	}
	return c.WKT != "" && c.WKT == other.WKT
}

func (c CRS) String() string {
	switch {
	case c.Name != "":
		return c.Name
	case c.Code != 0:
		return fmt.Sprintf("EPSG:%d", c.Code)
	case c.Definition != "":
		return c.Definition
	case c.WKT != "":
		return "custom WKT"
	default:
		return "unknown"
	}
}
