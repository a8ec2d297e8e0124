package vectorstore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/marcos-nsantos/geocrop/internal/domain/valueobject"
)

const gcsWGS84 = `GEOGCS["GCS_WGS_1984",DATUM["D_WGS_1984",SPHEROID["WGS_1984",6378137.0,298.257223563]],PRIMEM["Greenwich",0.0],UNIT["Degree",0.0174532925199433]]`

const webMercatorWKT = `PROJCS["WGS_1984_Web_Mercator_Auxiliary_Sphere",` + gcsWGS84 +
	`,PROJECTION["Mercator_Auxiliary_Sphere"],PARAMETER["False_Easting",0.0],PARAMETER["False_Northing",0.0],` +
	`PARAMETER["Central_Meridian",0.0],PARAMETER["Standard_Parallel_1",0.0],PARAMETER["Auxiliary_Sphere_Type",0.0],UNIT["Meter",1.0]]`

var (
	authorityRe = regexp.MustCompile(`AUTHORITY\[\s*"EPSG"\s*,\s*"?(\d+)"?\s*\]`)
	utmRe       = regexp.MustCompile(`(?i)PROJCS\[\s*"(?:WGS_1984_UTM_Zone_|WGS 84 / UTM zone )(\d{1,2})([NS])"`)
	mercatorRe  = regexp.MustCompile(`(?i)PROJCS\[\s*"(?:WGS_1984_Web_Mercator(?:_Auxiliary_Sphere)?|WGS 84 / Pseudo-Mercator)"`)
	wgs84GeogRe = regexp.MustCompile(`(?i)^\s*GEOGCS\[\s*"(?:GCS_WGS_1984|WGS 84|WGS84)"`)
)

// readPrj loads a .prj sidecar. A missing file yields the zero CRS.
func readPrj(path string) (valueobject.CRS, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return valueobject.CRS{}, nil
	}
	if err != nil {
		return valueobject.CRS{}, err
	}
	return crsFromWKT(string(data)), nil
}

// crsFromWKT keeps the WKT and recognizes the EPSG code when the text
// carries one or names a well-known frame.
func crsFromWKT(wkt string) valueobject.CRS {
	wkt = strings.TrimSpace(wkt)
	if wkt == "" {
		return valueobject.CRS{}
	}

	crs := valueobject.CRS{WKT: wkt, Name: wktName(wkt)}
	if m := authorityRe.FindAllStringSubmatch(wkt, -1); len(m) > 0 {
		// The outermost authority closes the definition.
		if code, err := strconv.Atoi(m[len(m)-1][1]); err == nil {
			crs.Code = code
			return crs
		}
	}
	if m := utmRe.FindStringSubmatch(wkt); m != nil {
		zone, _ := strconv.Atoi(m[1])
		crs.Code = 32600 + zone
		if strings.EqualFold(m[2], "S") {
			crs.Code = 32700 + zone
		}
		return crs
	}
	if mercatorRe.MatchString(wkt) {
		crs.Code = 3857
		return crs
	}
	if wgs84GeogRe.MatchString(wkt) && !strings.Contains(strings.ToUpper(wkt), "PROJCS") {
		crs.Code = valueobject.EPSGWGS84
	}
	return crs
}

func wktName(wkt string) string {
	start := strings.Index(wkt, `["`)
	if start < 0 {
		return ""
	}
	rest := wkt[start+2:]
	end := strings.Index(rest, `"`)
	if end < 0 {
		return ""
	}
	return rest[:end]
}

// wktFor renders the WKT to store for crs. It is empty for frames that
// have neither WKT nor a code this package can describe.
func wktFor(crs valueobject.CRS) string {
	if crs.WKT != "" {
		return crs.WKT
	}
	switch code := crs.Code; {
	case code == valueobject.EPSGWGS84:
		return gcsWGS84
	case code == 3857 || code == 900913:
		return webMercatorWKT
	case code >= 32601 && code <= 32660:
		return utmWKT(code-32600, false)
	case code >= 32701 && code <= 32760:
		return utmWKT(code-32700, true)
	}
	return ""
}

func utmWKT(zone int, south bool) string {
	hemi, northing := "N", 0.0
	if south {
		hemi, northing = "S", 10000000.0
	}
	return fmt.Sprintf(`PROJCS["WGS_1984_UTM_Zone_%d%s",%s,PROJECTION["Transverse_Mercator"],`+
		`PARAMETER["False_Easting",500000.0],PARAMETER["False_Northing",%.1f],`+
		`PARAMETER["Central_Meridian",%.1f],PARAMETER["Scale_Factor",0.9996],`+
		`PARAMETER["Latitude_Of_Origin",0.0],UNIT["Meter",1.0]]`,
		zone, hemi, gcsWGS84, northing, float64(6*zone-183))
}

// writePrj skips the sidecar when the CRS cannot be described.
func writePrj(path string, crs valueobject.CRS) error {
	wkt := wktFor(crs)
	if wkt == "" {
		return nil
	}
	return os.WriteFile(path, []byte(wkt), 0o644)
}
