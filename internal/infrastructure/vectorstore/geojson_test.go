package vectorstore_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcos-nsantos/geocrop/internal/domain"
	"github.com/marcos-nsantos/geocrop/internal/domain/entity"
	"github.com/marcos-nsantos/geocrop/internal/domain/valueobject"
	"github.com/marcos-nsantos/geocrop/internal/infrastructure/vectorstore"
)

const roadsGeoJSON = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "geometry": {"type": "LineString", "coordinates": [[0, 0], [1, 1]]},
     "properties": {"name": "a", "lanes": 2, "width": 7.5, "paved": true}},
    {"type": "Feature", "geometry": {"type": "LineString", "coordinates": [[5, 5], [6, 6]]},
     "properties": {"name": "b", "lanes": 1, "width": 3, "surveyor": null}}
  ]
}`

func TestGeoJSONStore_Read(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roads.geojson")
	require.NoError(t, os.WriteFile(path, []byte(roadsGeoJSON), 0o644))

	ds, err := vectorstore.NewGeoJSONStore().Read(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "roads", ds.Name)
	assert.Equal(t, entity.KindLineString, ds.Kind)
	assert.True(t, ds.CRS.Same(valueobject.WGS84))
	assert.Equal(t, []string{"name", "lanes", "width", "paved", "surveyor"}, ds.Schema.Names())

	types := map[string]entity.FieldType{}
	for _, f := range ds.Schema {
		types[f.Name] = f.Type
	}
	assert.Equal(t, entity.FieldInteger, types["lanes"])
	assert.Equal(t, entity.FieldString, types["name"])
	assert.Equal(t, entity.FieldBoolean, types["paved"])
	assert.Equal(t, entity.FieldString, types["surveyor"])
	assert.Equal(t, entity.FieldFloat, types["width"])

	require.Equal(t, 2, ds.Len())
	assert.Equal(t, orb.LineString{{5, 5}, {6, 6}}, ds.Features[1].Geometry)
	paved, _ := ds.Features[1].Attribute("paved")
	assert.Nil(t, paved)
}

func TestGeoJSONStore_LegacyCRS(t *testing.T) {
	ctx := context.Background()
	store := vectorstore.NewGeoJSONStore()
	path := filepath.Join(t.TempDir(), "merc.geojson")

	ds := entity.NewDataset("merc", entity.KindPoint, valueobject.EPSG(3857), entity.Schema{
		{Name: "id", Type: entity.FieldInteger},
	})
	ds.Add(entity.Feature{
		Geometry:   orb.Point{1113194.9, 0},
		Attributes: []entity.Attribute{{Name: "id", Value: int64(7)}},
	})

	_, err := store.Write(ctx, path, ds, false)
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "urn:ogc:def:crs:EPSG::3857")

	got, err := store.Read(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 3857, got.CRS.Code)
	id, _ := got.Features[0].Attribute("id")
	assert.Equal(t, float64(7), id)
}

func TestGeoJSONStore_Write(t *testing.T) {
	ctx := context.Background()
	store := vectorstore.NewGeoJSONStore()

	t.Run("wgs84 output omits the crs member", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.geojson")
		ds := entity.NewDataset("out", entity.KindPoint, valueobject.WGS84, nil)
		ds.Add(entity.Feature{Geometry: orb.Point{1, 2}})

		files, err := store.Write(ctx, path, ds, false)
		require.NoError(t, err)

		assert.Equal(t, []string{path}, files)
		raw, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.NotContains(t, string(raw), `"crs"`)
	})

	t.Run("refuses to replace without overwrite", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.geojson")
		require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))

		_, err := store.Write(ctx, path, entity.NewDataset("out", entity.KindPoint, valueobject.WGS84, nil), false)

		assert.ErrorIs(t, err, domain.ErrOutputExists)
		raw, _ := os.ReadFile(path)
		assert.Equal(t, "{}", string(raw))
	})

	t.Run("leaves no temporary files", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "out.geojson")

		_, err := store.Write(ctx, path, entity.NewDataset("out", entity.KindPoint, valueobject.WGS84, nil), true)
		require.NoError(t, err)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "out.geojson", entries[0].Name())
	})
}

func TestGeoJSONStore_CopiesFeaturesVerbatim(t *testing.T) {
	ctx := context.Background()
	store := vectorstore.NewGeoJSONStore()
	dir := t.TempDir()

	src := filepath.Join(dir, "in.geojson")
	require.NoError(t, os.WriteFile(src, []byte(`{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "id": "f1", "geometry": {"type": "Point", "coordinates": [1, 2]},
     "properties": {"zeta": 1, "alpha": "x"}},
    {"type": "Feature", "id": 42, "geometry": {"type": "Point", "coordinates": [3, 4]},
     "properties": {"alpha": "y", "mid": true, "zeta": 2}}
  ]
}`), 0o644))

	ds, err := store.Read(ctx, src)
	require.NoError(t, err)
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, ds.Schema.Names())
	assert.Equal(t, "f1", ds.Features[0].ID)
	assert.Equal(t, float64(42), ds.Features[1].ID)

	out := filepath.Join(dir, "out.geojson")
	_, err = store.Write(ctx, out, ds, true)
	require.NoError(t, err)

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"id":"f1"`)
	assert.Contains(t, string(raw), `"id":42`)
	assert.Contains(t, string(raw), `"properties":{"zeta":1,"alpha":"x","mid":null}`)

	again, err := store.Read(ctx, out)
	require.NoError(t, err)
	assert.Equal(t, ds.Schema.Names(), again.Schema.Names())
	assert.Equal(t, "f1", again.Features[0].ID)
}

func TestGeoJSONStore_ReadErrors(t *testing.T) {
	store := vectorstore.NewGeoJSONStore()
	dir := t.TempDir()

	_, err := store.Read(context.Background(), filepath.Join(dir, "missing.geojson"))
	assert.ErrorIs(t, err, domain.ErrIO)

	bad := filepath.Join(dir, "bad.geojson")
	require.NoError(t, os.WriteFile(bad, []byte("not json"), 0o644))
	_, err = store.Read(context.Background(), bad)
	assert.ErrorIs(t, err, domain.ErrIO)
}
