package projection

import "fmt"

// epsgDefinitions carries PROJ.4 strings for the codes datasets in the field
// actually use. Datasets in any other frame need a .prj or explicit
// definition.
var epsgDefinitions = map[int]string{
	4326:   "+proj=longlat +ellps=WGS84 +datum=WGS84 +no_defs",
	4269:   "+proj=longlat +ellps=GRS80 +datum=NAD83 +no_defs",
	4258:   "+proj=longlat +ellps=GRS80 +no_defs",
	4674:   "+proj=longlat +ellps=GRS80 +no_defs",
	3857:   "+proj=merc +a=6378137 +b=6378137 +lat_ts=0 +lon_0=0 +x_0=0 +y_0=0 +k=1 +units=m +no_defs",
	900913: "+proj=merc +a=6378137 +b=6378137 +lat_ts=0 +lon_0=0 +x_0=0 +y_0=0 +k=1 +units=m +no_defs",
	27700:  "+proj=tmerc +lat_0=49 +lon_0=-2 +k=0.9996012717 +x_0=400000 +y_0=-100000 +ellps=airy +units=m +no_defs",
	2193:   "+proj=tmerc +lat_0=0 +lon_0=173 +k=0.9996 +x_0=1600000 +y_0=10000000 +ellps=GRS80 +units=m +no_defs",
	3035:   "+proj=laea +lat_0=52 +lon_0=10 +x_0=4321000 +y_0=3210000 +ellps=GRS80 +units=m +no_defs",
	5070:   "+proj=aea +lat_1=29.5 +lat_2=45.5 +lat_0=23 +lon_0=-96 +x_0=0 +y_0=0 +ellps=GRS80 +datum=NAD83 +units=m +no_defs",
}

// definitionFor returns the PROJ.4 string for an EPSG code. WGS 84 / UTM
// zones (326xx north, 327xx south) are generated.
func definitionFor(code int) (string, bool) {
	if def, ok := epsgDefinitions[code]; ok {
		return def, true
	}
	switch {
	case code >= 32601 && code <= 32660:
		return fmt.Sprintf("+proj=utm +zone=%d +ellps=WGS84 +datum=WGS84 +units=m +no_defs", code-32600), true
	case code >= 32701 && code <= 32760:
		return fmt.Sprintf("+proj=utm +zone=%d +south +ellps=WGS84 +datum=WGS84 +units=m +no_defs", code-32700), true
	}
	return "", false
}
