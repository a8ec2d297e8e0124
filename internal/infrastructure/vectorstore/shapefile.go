package vectorstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/jonas-p/go-shp"
	"github.com/paulmach/orb"

	"github.com/marcos-nsantos/geocrop/internal/domain"
	"github.com/marcos-nsantos/geocrop/internal/domain/entity"
)

const dbfDateLayout = "20060102"

// sidecars are the files that make up one shapefile dataset, .shp first.
var sidecars = []string{".shp", ".shx", ".dbf", ".prj", ".cpg"}

// ShapefileStore reads and writes ESRI shapefiles. The CRS comes from the
// .prj sidecar.
type ShapefileStore struct{}

func NewShapefileStore() *ShapefileStore {
	return &ShapefileStore{}
}

func (s *ShapefileStore) Format() string {
	return "shapefile"
}

func (s *ShapefileStore) Extensions() []string {
	return []string{".shp"}
}

func (s *ShapefileStore) Read(ctx context.Context, source string) (*entity.Dataset, error) {
	r, err := shp.Open(source)
	if err != nil {
		return nil, ioError("opening", source, err)
	}
	defer r.Close()

	base := strings.TrimSuffix(source, filepath.Ext(source))
	crs, err := readPrj(base + ".prj")
	if err != nil {
		return nil, ioError("reading projection of", source, err)
	}

	fields := r.Fields()
	schema := make(entity.Schema, len(fields))
	for i, f := range fields {
		schema[i] = fieldFromDBF(f)
	}

	name := filepath.Base(base)
	ds := entity.NewDataset(name, kindFromShapeType(r.GeometryType), crs, schema)
	ds.HasZ, ds.HasM = dimsOf(r.GeometryType)

	for r.Next() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		row, shape := r.Shape()
		geom, z, m, err := geometryFromShape(shape)
		if err != nil {
			return nil, fmt.Errorf("row %d of %s: %w", row, source, err)
		}

		attrs := make([]entity.Attribute, len(fields))
		for i := range fields {
			attrs[i] = entity.Attribute{
				Name:  schema[i].Name,
				Value: parseDBFValue(schema[i], r.ReadAttribute(row, i)),
			}
		}
		ds.Add(entity.Feature{Geometry: geom, Attributes: attrs, Z: z, M: m})
	}
	if err := r.Err(); err != nil {
		return nil, ioError("reading", source, err)
	}

	return ds, nil
}

// Write builds the dataset in a scratch directory next to path and moves
// the finished sidecars into place, so a failed write leaves nothing at
// path.
func (s *ShapefileStore) Write(ctx context.Context, path string, ds *entity.Dataset, overwrite bool) ([]string, error) {
	base := strings.TrimSuffix(path, filepath.Ext(path))
	if !overwrite {
		for _, ext := range sidecars[:3] {
			if _, err := os.Stat(base + ext); err == nil {
				return nil, fmt.Errorf("%s: %w", base+ext, domain.ErrOutputExists)
			}
		}
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, ioError("creating directory", dir, err)
	}
	scratch, err := os.MkdirTemp(dir, ".geocrop-*")
	if err != nil {
		return nil, ioError("creating scratch directory in", dir, err)
	}
	defer os.RemoveAll(scratch)

	tmpBase := filepath.Join(scratch, filepath.Base(base))
	if err := writeShapefile(ctx, tmpBase, ds); err != nil {
		return nil, err
	}

	var produced []string
	for _, ext := range sidecars {
		src := tmpBase + ext
		dst := base + ext
		if _, err := os.Stat(src); err != nil {
			// Drop a stale sidecar of a replaced dataset.
			if overwrite {
				_ = os.Remove(dst)
			}
			continue
		}
		if err := os.Rename(src, dst); err != nil {
			return produced, ioError("moving", dst, err)
		}
		produced = append(produced, dst)
	}

	return produced, nil
}

func writeShapefile(ctx context.Context, base string, ds *entity.Dataset) error {
	flat, err := shapeTypeFor(ds)
	if err != nil {
		return err
	}
	shapeType := withDims(flat, ds.HasZ, ds.HasM)

	w, err := shp.Create(base+".shp", shapeType)
	if err != nil {
		return ioError("creating", base+".shp", err)
	}
	closed := false
	defer func() {
		if !closed {
			w.Close()
		}
	}()

	fields, err := dbfFields(ds.Schema)
	if err != nil {
		return err
	}
	if err := w.SetFields(fields); err != nil {
		return ioError("writing fields of", base+".dbf", err)
	}

	for _, f := range ds.Features {
		if err := ctx.Err(); err != nil {
			return err
		}

		shape, err := shapeFromGeometry(f.Geometry, shapeType, measures{z: f.Z, m: f.M})
		if err != nil {
			return err
		}
		row := int(w.Write(shape))

		for i, field := range ds.Schema {
			v, ok := f.Attribute(field.Name)
			if !ok || v == nil {
				continue
			}
			dv, err := dbfValue(field, v)
			if err != nil {
				return fmt.Errorf("field %s: %w", field.Name, err)
			}
			if str, ok := dv.(string); ok && len(str) > int(fields[i].Size) {
				dv = str[:fields[i].Size]
			}
			if err := w.WriteAttribute(row, i, dv); err != nil {
				return ioError("writing attribute to", base+".dbf", err)
			}
		}
	}
	w.Close()
	closed = true

	if err := writePrj(base+".prj", ds.CRS); err != nil {
		return ioError("writing", base+".prj", err)
	}
	return os.WriteFile(base+".cpg", []byte("UTF-8"), 0o644)
}

func ioError(op, path string, err error) error {
	return fmt.Errorf("%s %s: %w: %w", op, path, domain.ErrIO, err)
}

func kindFromShapeType(t shp.ShapeType) entity.GeometryKind {
	switch t {
	case shp.POINT, shp.POINTZ, shp.POINTM:
		return entity.KindPoint
	case shp.MULTIPOINT, shp.MULTIPOINTZ, shp.MULTIPOINTM:
		return entity.KindMultiPoint
	case shp.POLYLINE, shp.POLYLINEZ, shp.POLYLINEM:
		return entity.KindLineString
	case shp.POLYGON, shp.POLYGONZ, shp.POLYGONM:
		return entity.KindPolygon
	default:
		return entity.KindUnknown
	}
}

// shapeTypeFor picks the single shape type a shapefile needs. Points mixed
// with multipoints are widened to MULTIPOINT; any other mix is rejected.
func shapeTypeFor(ds *entity.Dataset) (shp.ShapeType, error) {
	var found []shp.ShapeType
	add := func(t shp.ShapeType) {
		for _, f := range found {
			if f == t {
				return
			}
		}
		found = append(found, t)
	}
	for _, f := range ds.Features {
		if f.Geometry == nil {
			continue
		}
		t, err := shapeTypeOf(entity.KindOf(f.Geometry))
		if err != nil {
			return shp.NULL, err
		}
		add(t)
	}

	switch len(found) {
	case 0:
		if ds.Kind == entity.KindUnknown || ds.Kind == "" {
			return shp.POINT, nil
		}
		return shapeTypeOf(ds.Kind)
	case 1:
		return found[0], nil
	case 2:
		if (found[0] == shp.POINT && found[1] == shp.MULTIPOINT) ||
			(found[0] == shp.MULTIPOINT && found[1] == shp.POINT) {
			return shp.MULTIPOINT, nil
		}
	}
	return shp.NULL, fmt.Errorf("mixed geometry types: %w", domain.ErrUnsupportedGeometry)
}

func shapeTypeOf(kind entity.GeometryKind) (shp.ShapeType, error) {
	switch kind {
	case entity.KindPoint:
		return shp.POINT, nil
	case entity.KindMultiPoint:
		return shp.MULTIPOINT, nil
	case entity.KindLineString, entity.KindMultiLineString:
		return shp.POLYLINE, nil
	case entity.KindPolygon, entity.KindMultiPolygon:
		return shp.POLYGON, nil
	default:
		return shp.NULL, fmt.Errorf("%s: %w", kind, domain.ErrUnsupportedGeometry)
	}
}

// dimsOf reports whether records of type t carry Z and M values. Z types
// always carry an M array, even when it is unused.
func dimsOf(t shp.ShapeType) (hasZ, hasM bool) {
	switch t {
	case shp.POINTZ, shp.MULTIPOINTZ, shp.POLYLINEZ, shp.POLYGONZ:
		return true, true
	case shp.POINTM, shp.MULTIPOINTM, shp.POLYLINEM, shp.POLYGONM:
		return false, true
	default:
		return false, false
	}
}

// withDims turns a flat shape type into its Z or M variant.
func withDims(t shp.ShapeType, hasZ, hasM bool) shp.ShapeType {
	switch {
	case hasZ:
		return t + 10
	case hasM:
		return t + 20
	default:
		return t
	}
}

func flatType(t shp.ShapeType) shp.ShapeType {
	switch {
	case t > 20 && t < 30:
		return t - 20
	case t > 10 && t < 20:
		return t - 10
	default:
		return t
	}
}

// geometryFromShape converts a record to orb and returns its Z and M values
// in vertex order.
func geometryFromShape(s shp.Shape) (orb.Geometry, []float64, []float64, error) {
	switch v := s.(type) {
	case nil, *shp.Null:
		return nil, nil, nil, nil
	case *shp.Point:
		return orb.Point{v.X, v.Y}, nil, nil, nil
	case *shp.PointZ:
		return orb.Point{v.X, v.Y}, []float64{v.Z}, []float64{v.M}, nil
	case *shp.PointM:
		return orb.Point{v.X, v.Y}, nil, []float64{v.M}, nil
	case *shp.MultiPoint:
		return multiPoint(v.Points), nil, nil, nil
	case *shp.MultiPointZ:
		return multiPoint(v.Points), v.ZArray, v.MArray, nil
	case *shp.MultiPointM:
		return multiPoint(v.Points), nil, v.MArray, nil
	case *shp.PolyLine:
		return lines(splitParts(v.Parts, v.Points)), nil, nil, nil
	case *shp.PolyLineZ:
		return lines(splitParts(v.Parts, v.Points)), v.ZArray, v.MArray, nil
	case *shp.PolyLineM:
		return lines(splitParts(v.Parts, v.Points)), nil, v.MArray, nil
	case *shp.Polygon:
		return polygons(splitParts(v.Parts, v.Points)), nil, nil, nil
	case *shp.PolygonZ:
		return polygons(splitParts(v.Parts, v.Points)), v.ZArray, v.MArray, nil
	case *shp.PolygonM:
		return polygons(splitParts(v.Parts, v.Points)), nil, v.MArray, nil
	default:
		return nil, nil, nil, fmt.Errorf("shape %T: %w", s, domain.ErrUnsupportedGeometry)
	}
}

func multiPoint(pts []shp.Point) orb.MultiPoint {
	mp := make(orb.MultiPoint, len(pts))
	for i, p := range pts {
		mp[i] = orb.Point{p.X, p.Y}
	}
	return mp
}

func splitParts(parts []int32, pts []shp.Point) [][]orb.Point {
	out := make([][]orb.Point, 0, len(parts))
	for i, start := range parts {
		end := int32(len(pts))
		if i+1 < len(parts) {
			end = parts[i+1]
		}
		if start < 0 || start > end || int(end) > len(pts) {
			break
		}
		part := make([]orb.Point, 0, end-start)
		for _, p := range pts[start:end] {
			part = append(part, orb.Point{p.X, p.Y})
		}
		out = append(out, part)
	}
	return out
}

func lines(parts [][]orb.Point) orb.Geometry {
	if len(parts) == 1 {
		return orb.LineString(parts[0])
	}
	mls := make(orb.MultiLineString, len(parts))
	for i, p := range parts {
		mls[i] = orb.LineString(p)
	}
	return mls
}

// polygons groups rings by orientation: a clockwise ring opens a new
// polygon and counter-clockwise rings are holes of the polygon before them.
func polygons(parts [][]orb.Point) orb.Geometry {
	var mp orb.MultiPolygon
	for _, p := range parts {
		ring := orb.Ring(p)
		if len(ring) > 2 && ring.Orientation() == orb.CCW && len(mp) > 0 {
			mp[len(mp)-1] = append(mp[len(mp)-1], ring)
			continue
		}
		mp = append(mp, orb.Polygon{ring})
	}
	if len(mp) == 1 {
		return mp[0]
	}
	return mp
}

// measures are per-vertex Z and M values in the flattened point order of a
// shape. Missing values are written as zero.
type measures struct {
	z, m []float64
}

func (ms measures) zValues(n int) []float64 { return padded(ms.z, n) }
func (ms measures) mValues(n int) []float64 { return padded(ms.m, n) }

func padded(v []float64, n int) []float64 {
	out := make([]float64, n)
	copy(out, v)
	return out
}

func valueRange(v []float64) [2]float64 {
	if len(v) == 0 {
		return [2]float64{}
	}
	r := [2]float64{v[0], v[0]}
	for _, x := range v[1:] {
		r[0] = min(r[0], x)
		r[1] = max(r[1], x)
	}
	return r
}

func shapeFromGeometry(g orb.Geometry, t shp.ShapeType, ms measures) (shp.Shape, error) {
	flat := flatType(t)
	if p, ok := g.(orb.Point); ok && flat == shp.MULTIPOINT {
		g = orb.MultiPoint{p}
	}

	var shape shp.Shape
	switch v := g.(type) {
	case nil:
		// go-shp stamps every record with the file's shape type, so a null
		// record cannot be expressed.
		return nil, fmt.Errorf("null geometry: %w", domain.ErrUnsupportedGeometry)
	case orb.Point:
		shape = &shp.Point{X: v[0], Y: v[1]}
	case orb.MultiPoint:
		pts := shpPoints(v)
		shape = &shp.MultiPoint{
			Box:       shp.BBoxFromPoints(pts),
			NumPoints: int32(len(pts)),
			Points:    pts,
		}
	case orb.LineString:
		shape = shp.NewPolyLine([][]shp.Point{shpPoints(v)})
	case orb.MultiLineString:
		parts := make([][]shp.Point, len(v))
		for i, ls := range v {
			parts[i] = shpPoints(ls)
		}
		shape = shp.NewPolyLine(parts)
	case orb.Polygon:
		parts, oriented := ringParts(v, ms, 0)
		ms = oriented
		poly := shp.Polygon(*shp.NewPolyLine(parts))
		shape = &poly
	case orb.MultiPolygon:
		var parts [][]shp.Point
		offset := 0
		for _, p := range v {
			rings, oriented := ringParts(p, ms, offset)
			ms = oriented
			for _, r := range rings {
				offset += len(r)
			}
			parts = append(parts, rings...)
		}
		poly := shp.Polygon(*shp.NewPolyLine(parts))
		shape = &poly
	default:
		return nil, fmt.Errorf("%s: %w", g.GeoJSONType(), domain.ErrUnsupportedGeometry)
	}

	if t == flat {
		return shape, nil
	}
	return withMeasures(shape, t, ms), nil
}

// withMeasures widens a flat shape to the Z or M record type t.
func withMeasures(shape shp.Shape, t shp.ShapeType, ms measures) shp.Shape {
	switch v := shape.(type) {
	case *shp.Point:
		z, m := ms.zValues(1), ms.mValues(1)
		if t == shp.POINTZ {
			return &shp.PointZ{X: v.X, Y: v.Y, Z: z[0], M: m[0]}
		}
		return &shp.PointM{X: v.X, Y: v.Y, M: m[0]}
	case *shp.MultiPoint:
		n := len(v.Points)
		m := ms.mValues(n)
		if t == shp.MULTIPOINTZ {
			z := ms.zValues(n)
			return &shp.MultiPointZ{
				Box: v.Box, NumPoints: v.NumPoints, Points: v.Points,
				ZRange: valueRange(z), ZArray: z,
				MRange: valueRange(m), MArray: m,
			}
		}
		return &shp.MultiPointM{
			Box: v.Box, NumPoints: v.NumPoints, Points: v.Points,
			MRange: valueRange(m), MArray: m,
		}
	case *shp.PolyLine:
		n := len(v.Points)
		m := ms.mValues(n)
		if t == shp.POLYLINEZ {
			z := ms.zValues(n)
			return &shp.PolyLineZ{
				Box: v.Box, NumParts: v.NumParts, NumPoints: v.NumPoints, Parts: v.Parts, Points: v.Points,
				ZRange: valueRange(z), ZArray: z,
				MRange: valueRange(m), MArray: m,
			}
		}
		return &shp.PolyLineM{
			Box: v.Box, NumParts: v.NumParts, NumPoints: v.NumPoints, Parts: v.Parts, Points: v.Points,
			MRange: valueRange(m), MArray: m,
		}
	case *shp.Polygon:
		n := len(v.Points)
		m := ms.mValues(n)
		rec := shp.PolyLineZ{
			Box: v.Box, NumParts: v.NumParts, NumPoints: v.NumPoints, Parts: v.Parts, Points: v.Points,
			MRange: valueRange(m), MArray: m,
		}
		if t == shp.POLYGONZ {
			rec.ZArray = ms.zValues(n)
			rec.ZRange = valueRange(rec.ZArray)
			poly := shp.PolygonZ(rec)
			return &poly
		}
		poly := shp.PolygonM(rec)
		return &poly
	default:
		return shape
	}
}

// ringParts orients the outer ring clockwise and holes counter-clockwise.
// Reversed rings take their Z and M values with them; offset is the index
// of the polygon's first vertex in ms.
func ringParts(p orb.Polygon, ms measures, offset int) ([][]shp.Point, measures) {
	parts := make([][]shp.Point, len(p))
	for i, r := range p {
		ring := r.Clone()
		want := orb.CW
		if i > 0 {
			want = orb.CCW
		}
		if len(ring) > 2 && ring.Orientation() != want {
			ring.Reverse()
			ms = ms.reversed(offset, offset+len(ring))
		}
		parts[i] = shpPoints(ring)
		offset += len(ring)
	}
	return parts, ms
}

// reversed returns ms with the values in [from, to) reversed. The input
// slices are left untouched.
func (ms measures) reversed(from, to int) measures {
	flip := func(v []float64) []float64 {
		if to > len(v) {
			return v
		}
		out := slices.Clone(v)
		slices.Reverse(out[from:to])
		return out
	}
	return measures{z: flip(ms.z), m: flip(ms.m)}
}

func shpPoints[T ~[]orb.Point](pts T) []shp.Point {
	out := make([]shp.Point, len(pts))
	for i, p := range pts {
		out[i] = shp.Point{X: p[0], Y: p[1]}
	}
	return out
}

func fieldFromDBF(f shp.Field) entity.Field {
	field := entity.Field{
		Name:      f.String(),
		Size:      int(f.Size),
		Precision: int(f.Precision),
	}
	switch f.Fieldtype {
	case 'N':
		field.Type = entity.FieldInteger
		if f.Precision > 0 {
			field.Type = entity.FieldFloat
		}
	case 'F':
		field.Type = entity.FieldFloat
	case 'L':
		field.Type = entity.FieldBoolean
	case 'D':
		field.Type = entity.FieldDate
	default:
		field.Type = entity.FieldString
	}
	return field
}

// parseDBFValue converts a raw DBF cell. Blank cells read as nil. String
// cells keep their content; only NUL padding is dropped.
func parseDBFValue(field entity.Field, raw string) any {
	raw = strings.TrimRight(raw, "\x00")
	if field.Type == entity.FieldString {
		return raw
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	switch field.Type {
	case entity.FieldInteger:
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return f
		}
	case entity.FieldFloat:
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return f
		}
	case entity.FieldBoolean:
		switch raw {
		case "T", "t", "Y", "y":
			return true
		case "F", "f", "N", "n":
			return false
		}
		return nil
	case entity.FieldDate:
		if t, err := time.Parse(dbfDateLayout, raw); err == nil {
			return t
		}
	}
	return raw
}

// dbfFields maps the schema onto DBF columns. DBF names are capped at ten
// bytes, so long names are truncated and de-duplicated with a numeric
// suffix.
func dbfFields(schema entity.Schema) ([]shp.Field, error) {
	seen := make(map[string]bool, len(schema))
	out := make([]shp.Field, len(schema))
	for i, f := range schema {
		name := dbfName(f.Name, seen)
		seen[name] = true

		switch f.Type {
		case entity.FieldString:
			out[i] = shp.StringField(name, clampSize(f.Size, 254, 254))
		case entity.FieldInteger:
			out[i] = shp.NumberField(name, clampSize(f.Size, 18, 20))
		case entity.FieldFloat:
			prec := f.Precision
			if prec <= 0 {
				prec = 8
			}
			out[i] = shp.FloatField(name, clampSize(f.Size, 24, 32), uint8(min(prec, 15)))
		case entity.FieldBoolean:
			field := shp.Field{Fieldtype: 'L', Size: 1}
			copy(field.Name[:], name)
			out[i] = field
		case entity.FieldDate:
			out[i] = shp.DateField(name)
		default:
			return nil, fmt.Errorf("field %s has type %q: %w", f.Name, f.Type, domain.ErrIO)
		}
	}
	return out, nil
}

func dbfName(name string, seen map[string]bool) string {
	if len(name) > 10 {
		name = name[:10]
	}
	if !seen[name] {
		return name
	}
	for n := 1; ; n++ {
		suffix := strconv.Itoa(n)
		candidate := name
		if len(candidate)+len(suffix) > 10 {
			candidate = candidate[:10-len(suffix)]
		}
		candidate += suffix
		if !seen[candidate] {
			return candidate
		}
	}
}

func clampSize(size, def, limit int) uint8 {
	if size <= 0 {
		size = def
	}
	return uint8(min(size, limit))
}

// dbfValue converts v into one of the types go-shp can write: int, float64
// or string.
func dbfValue(field entity.Field, v any) (any, error) {
	switch field.Type {
	case entity.FieldInteger:
		switch n := v.(type) {
		case int:
			return n, nil
		case int32:
			return int(n), nil
		case int64:
			return int(n), nil
		case float64:
			return int(n), nil
		case float32:
			return int(n), nil
		case string:
			if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
				return i, nil
			}
		}
	case entity.FieldFloat:
		switch n := v.(type) {
		case float64:
			return n, nil
		case float32:
			return float64(n), nil
		case int:
			return float64(n), nil
		case int64:
			return float64(n), nil
		case int32:
			return float64(n), nil
		case string:
			if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
				return f, nil
			}
		}
	case entity.FieldBoolean:
		if b, ok := v.(bool); ok {
			if b {
				return "T", nil
			}
			return "F", nil
		}
	case entity.FieldDate:
		switch d := v.(type) {
		case time.Time:
			return d.Format(dbfDateLayout), nil
		case string:
			if t, err := time.Parse(time.DateOnly, d); err == nil {
				return t.Format(dbfDateLayout), nil
			}
			return d, nil
		}
	default:
		return fmt.Sprint(v), nil
	}
	return nil, fmt.Errorf("cannot store %v (%T) as %s: %w", v, v, field.Type, domain.ErrIO)
}
