package vectorstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/paulmach/orb/geojson"

	"github.com/marcos-nsantos/geocrop/internal/domain"
	"github.com/marcos-nsantos/geocrop/internal/domain/entity"
	"github.com/marcos-nsantos/geocrop/internal/domain/valueobject"
)

// GeoJSONStore reads and writes FeatureCollection files. Coordinates are
// WGS 84 unless the legacy "crs" member names another frame.
type GeoJSONStore struct{}

func NewGeoJSONStore() *GeoJSONStore {
	return &GeoJSONStore{}
}

func (s *GeoJSONStore) Format() string {
	return "geojson"
}

func (s *GeoJSONStore) Extensions() []string {
	return []string{".geojson", ".json"}
}

func (s *GeoJSONStore) Read(ctx context.Context, source string) (*entity.Dataset, error) {
	data, err := os.ReadFile(source)
	if err != nil {
		return nil, ioError("reading", source, err)
	}

	single := false
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil || fc.Type != "FeatureCollection" {
		f, ferr := geojson.UnmarshalFeature(data)
		if ferr != nil {
			if err == nil {
				err = ferr
			}
			return nil, ioError("decoding", source, err)
		}
		fc = geojson.NewFeatureCollection()
		fc.Append(f)
		single = true
	}
	order, err := propertyOrder(data, single)
	if err != nil {
		return nil, ioError("decoding", source, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	crs := valueobject.WGS84
	if named, ok := legacyCRS(fc.ExtraMembers); ok {
		crs = named
	}

	schema := inferSchema(fc.Features, order)
	name := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	ds := entity.NewDataset(name, datasetKind(fc.Features), crs, schema)

	for _, f := range fc.Features {
		attrs := make([]entity.Attribute, len(schema))
		for i, field := range schema {
			attrs[i] = entity.Attribute{Name: field.Name, Value: f.Properties[field.Name]}
		}
		ds.Add(entity.Feature{ID: f.ID, Geometry: f.Geometry, Attributes: attrs})
	}

	return ds, nil
}

// Write replaces path through a temporary file in the same directory.
func (s *GeoJSONStore) Write(ctx context.Context, path string, ds *entity.Dataset, overwrite bool) ([]string, error) {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return nil, fmt.Errorf("%s: %w", path, domain.ErrOutputExists)
		}
	}

	fc := collectionJSON{Type: "FeatureCollection", Features: make([]featureJSON, 0, len(ds.Features))}
	for _, f := range ds.Features {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out := featureJSON{
			Type:       "Feature",
			ID:         f.ID,
			Properties: make(orderedProperties, len(ds.Schema)),
		}
		if f.Geometry != nil {
			out.Geometry = geojson.NewGeometry(f.Geometry)
		}
		for i, field := range ds.Schema {
			v, _ := f.Attribute(field.Name)
			out.Properties[i] = entity.Attribute{Name: field.Name, Value: jsonValue(v)}
		}
		fc.Features = append(fc.Features, out)
	}
	if member, ok := legacyCRSMember(ds.CRS); ok {
		fc.CRS = member
	}

	data, err := json.Marshal(fc)
	if err != nil {
		return nil, ioError("encoding", path, err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, ioError("creating directory", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".geocrop-*.geojson")
	if err != nil {
		return nil, ioError("creating temporary file in", dir, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return nil, ioError("writing", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return nil, ioError("closing", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return nil, ioError("moving", path, err)
	}

	return []string{path}, nil
}

// legacyCRS reads {"crs": {"type": "name", "properties": {"name": ...}}}.
func legacyCRS(members geojson.Properties) (valueobject.CRS, bool) {
	raw, ok := members["crs"].(map[string]any)
	if !ok {
		return valueobject.CRS{}, false
	}
	props, ok := raw["properties"].(map[string]any)
	if !ok {
		return valueobject.CRS{}, false
	}
	name, ok := props["name"].(string)
	if !ok {
		return valueobject.CRS{}, false
	}
	return valueobject.ParseEPSG(name)
}

func legacyCRSMember(crs valueobject.CRS) (map[string]any, bool) {
	if crs.Code == 0 || crs.Code == valueobject.EPSGWGS84 {
		return nil, false
	}
	return map[string]any{
		"type": "name",
		"properties": map[string]any{
			"name": fmt.Sprintf("urn:ogc:def:crs:EPSG::%d", crs.Code),
		},
	}, true
}

// collectionJSON and featureJSON write properties in schema order; a
// geojson.Properties map would come out with sorted keys.
type collectionJSON struct {
	Type     string         `json:"type"`
	CRS      map[string]any `json:"crs,omitempty"`
	Features []featureJSON  `json:"features"`
}

type featureJSON struct {
	Type       string            `json:"type"`
	ID         any               `json:"id,omitempty"`
	Geometry   *geojson.Geometry `json:"geometry"`
	Properties orderedProperties `json:"properties"`
}

type orderedProperties []entity.Attribute

func (p orderedProperties) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, a := range p {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(a.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(a.Value)
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", a.Name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// propertyOrder lists property keys in the order they first appear in the
// document. Decoding into geojson.Properties loses that order.
func propertyOrder(data []byte, single bool) ([]string, error) {
	var raws []json.RawMessage
	if single {
		var f struct {
			Properties json.RawMessage `json:"properties"`
		}
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, err
		}
		raws = append(raws, f.Properties)
	} else {
		var fc struct {
			Features []struct {
				Properties json.RawMessage `json:"properties"`
			} `json:"features"`
		}
		if err := json.Unmarshal(data, &fc); err != nil {
			return nil, err
		}
		for _, f := range fc.Features {
			raws = append(raws, f.Properties)
		}
	}

	var order []string
	seen := make(map[string]bool)
	for _, raw := range raws {
		keys, err := objectKeys(raw)
		if err != nil {
			return nil, err
		}
		for _, k := range keys {
			if !seen[k] {
				seen[k] = true
				order = append(order, k)
			}
		}
	}
	return order, nil
}

func objectKeys(raw json.RawMessage) ([]string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	if tok, err := dec.Token(); err != nil {
		return nil, err
	} else if tok != json.Delim('{') {
		return nil, fmt.Errorf("properties must be an object")
	}

	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v", tok)
		}
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, nil
}

// inferSchema keeps the properties in document order and types each
// column from its non-null values.
func inferSchema(features []*geojson.Feature, order []string) entity.Schema {
	types := make(map[string]entity.FieldType, len(order))
	for _, f := range features {
		for k, v := range f.Properties {
			t, ok := jsonFieldType(v)
			if !ok {
				if _, seen := types[k]; !seen {
					types[k] = ""
				}
				continue
			}
			types[k] = mergeFieldType(types[k], t)
		}
	}

	names := make([]string, 0, len(types))
	for _, k := range order {
		if _, ok := types[k]; ok {
			names = append(names, k)
		}
	}

	schema := make(entity.Schema, len(names))
	for i, name := range names {
		t := types[name]
		if t == "" {
			t = entity.FieldString
		}
		schema[i] = entity.Field{Name: name, Type: t}
	}
	return schema
}

func jsonFieldType(v any) (entity.FieldType, bool) {
	switch n := v.(type) {
	case nil:
		return "", false
	case bool:
		return entity.FieldBoolean, true
	case float64:
		if n == math.Trunc(n) && math.Abs(n) < 1e15 {
			return entity.FieldInteger, true
		}
		return entity.FieldFloat, true
	default:
		return entity.FieldString, true
	}
}

func mergeFieldType(prev, next entity.FieldType) entity.FieldType {
	switch {
	case prev == "" || prev == next:
		return next
	case (prev == entity.FieldInteger && next == entity.FieldFloat) ||
		(prev == entity.FieldFloat && next == entity.FieldInteger):
		return entity.FieldFloat
	default:
		return entity.FieldString
	}
}

func datasetKind(features []*geojson.Feature) entity.GeometryKind {
	kind := entity.KindUnknown
	for _, f := range features {
		if f.Geometry == nil {
			continue
		}
		k := entity.KindOf(f.Geometry)
		switch {
		case kind == entity.KindUnknown:
			kind = k
		case kind != k:
			return entity.KindUnknown
		}
	}
	return kind
}

func jsonValue(v any) any {
	if t, ok := v.(time.Time); ok {
		return t.Format(time.DateOnly)
	}
	return v
}
