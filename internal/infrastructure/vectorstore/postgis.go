package vectorstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkb"

	"github.com/marcos-nsantos/geocrop/internal/domain"
	"github.com/marcos-nsantos/geocrop/internal/domain/entity"
	"github.com/marcos-nsantos/geocrop/internal/domain/valueobject"
)

// PostGISPrefix marks a source handle as a table, e.g.
// "postgis:public.parcels".
const PostGISPrefix = "postgis:"

// PostGISStore reads whole tables with a geometry column and writes crops
// into new tables.
type PostGISStore struct {
	pool *pgxpool.Pool
}

func NewPostGISStore(pool *pgxpool.Pool) *PostGISStore {
	return &PostGISStore{pool: pool}
}

func (s *PostGISStore) Format() string {
	return "postgis"
}

func (s *PostGISStore) Extensions() []string {
	return nil
}

type tableRef struct {
	Schema string
	Table  string
}

// parseTableRef accepts "postgis:schema.table" and "postgis:table".
func parseTableRef(source string) (tableRef, error) {
	name := strings.TrimPrefix(source, PostGISPrefix)
	if name == "" || name == source {
		return tableRef{}, fmt.Errorf("%q is not a postgis table: %w", source, domain.ErrUnsupportedFormat)
	}
	schema, table, ok := strings.Cut(name, ".")
	if !ok {
		schema, table = "public", name
	}
	if schema == "" || table == "" {
		return tableRef{}, fmt.Errorf("%q is not a postgis table: %w", source, domain.ErrUnsupportedFormat)
	}
	return tableRef{Schema: schema, Table: table}, nil
}

func (r tableRef) ident() string {
	return pgx.Identifier{r.Schema, r.Table}.Sanitize()
}

type pgColumn struct {
	field entity.Field
	expr  string
}

func (s *PostGISStore) Read(ctx context.Context, source string) (*entity.Dataset, error) {
	ref, err := parseTableRef(source)
	if err != nil {
		return nil, err
	}

	var geomCol, geomType string
	var srid int
	err = s.pool.QueryRow(ctx, `
		SELECT f_geometry_column, srid, type
		FROM geometry_columns
		WHERE f_table_schema = $1 AND f_table_name = $2
		LIMIT 1
	`, ref.Schema, ref.Table).Scan(&geomCol, &srid, &geomType)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%s has no geometry column: %w", ref.ident(), domain.ErrIO)
	}
	if err != nil {
		return nil, ioError("inspecting", ref.ident(), err)
	}

	crs, err := s.crsFor(ctx, srid)
	if err != nil {
		return nil, ioError("reading spatial_ref_sys for", ref.ident(), err)
	}

	columns, err := s.columns(ctx, ref, geomCol)
	if err != nil {
		return nil, ioError("listing columns of", ref.ident(), err)
	}

	schema := make(entity.Schema, len(columns))
	selects := []string{fmt.Sprintf("ST_AsBinary(%s)", pgx.Identifier{geomCol}.Sanitize())}
	for i, c := range columns {
		schema[i] = c.field
		selects = append(selects, c.expr)
	}

	ds := entity.NewDataset(ref.Table, kindFromPostGIS(geomType), crs, schema)

	rows, err := s.pool.Query(ctx, fmt.Sprintf("SELECT %s FROM %s", strings.Join(selects, ", "), ref.ident()))
	if err != nil {
		return nil, ioError("querying", ref.ident(), err)
	}
	defer rows.Close()

	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, ioError("scanning", ref.ident(), err)
		}

		var geom orb.Geometry
		if b, ok := values[0].([]byte); ok && b != nil {
			geom, err = wkb.Unmarshal(b)
			if err != nil {
				return nil, fmt.Errorf("decoding geometry of %s: %w", ref.ident(), errors.Join(domain.ErrUnsupportedGeometry, err))
			}
		}

		attrs := make([]entity.Attribute, len(columns))
		for i, c := range columns {
			attrs[i] = entity.Attribute{Name: c.field.Name, Value: fromPG(values[i+1])}
		}
		ds.Add(entity.Feature{Geometry: geom, Attributes: attrs})
	}
	if err := rows.Err(); err != nil {
		return nil, ioError("reading", ref.ident(), err)
	}

	return ds, nil
}

func (s *PostGISStore) crsFor(ctx context.Context, srid int) (valueobject.CRS, error) {
	if srid <= 0 {
		return valueobject.CRS{}, nil
	}
	if srid == valueobject.EPSGWGS84 {
		return valueobject.WGS84, nil
	}

	crs := valueobject.EPSG(srid)
	err := s.pool.QueryRow(ctx, `
		SELECT COALESCE(proj4text, ''), COALESCE(srtext, '')
		FROM spatial_ref_sys
		WHERE srid = $1
	`, srid).Scan(&crs.Definition, &crs.WKT)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return valueobject.CRS{}, err
	}
	crs.Definition = strings.TrimSpace(crs.Definition)
	return crs, nil
}

func (s *PostGISStore) columns(ctx context.Context, ref tableRef, geomCol string) ([]pgColumn, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT column_name, data_type,
			   COALESCE(character_maximum_length, 0),
			   COALESCE(numeric_scale, 0)
		FROM information_schema.columns
		WHERE table_schema = $1 AND table_name = $2 AND column_name <> $3
		ORDER BY ordinal_position
	`, ref.Schema, ref.Table, geomCol)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []pgColumn
	for rows.Next() {
		var name, dataType string
		var size, scale int
		if err := rows.Scan(&name, &dataType, &size, &scale); err != nil {
			return nil, err
		}
		out = append(out, pgColumnFor(name, dataType, size, scale))
	}
	return out, rows.Err()
}

// pgColumnFor types a column and builds its select expression. Numerics
// are read as double precision and anything exotic as text.
func pgColumnFor(name, dataType string, size, scale int) pgColumn {
	quoted := pgx.Identifier{name}.Sanitize()
	field := entity.Field{Name: name, Size: size, Precision: scale}

	switch dataType {
	case "smallint", "integer", "bigint":
		field.Type = entity.FieldInteger
		return pgColumn{field: field, expr: quoted + "::bigint"}
	case "real", "double precision", "numeric":
		field.Type = entity.FieldFloat
		return pgColumn{field: field, expr: quoted + "::double precision"}
	case "boolean":
		field.Type = entity.FieldBoolean
		return pgColumn{field: field, expr: quoted}
	case "date", "timestamp without time zone", "timestamp with time zone":
		field.Type = entity.FieldDate
		return pgColumn{field: field, expr: quoted + "::date"}
	default:
		field.Type = entity.FieldString
		return pgColumn{field: field, expr: quoted + "::text"}
	}
}

func fromPG(v any) any {
	switch n := v.(type) {
	case int16:
		return int64(n)
	case int32:
		return int64(n)
	case float32:
		return float64(n)
	default:
		return v
	}
}

func kindFromPostGIS(t string) entity.GeometryKind {
	switch strings.TrimRight(strings.ToUpper(t), "ZM") {
	case "POINT":
		return entity.KindPoint
	case "MULTIPOINT":
		return entity.KindMultiPoint
	case "LINESTRING":
		return entity.KindLineString
	case "MULTILINESTRING":
		return entity.KindMultiLineString
	case "POLYGON":
		return entity.KindPolygon
	case "MULTIPOLYGON":
		return entity.KindMultiPolygon
	default:
		return entity.KindUnknown
	}
}

// Write creates the target table and fills it in one transaction, so a
// failure leaves no table behind.
func (s *PostGISStore) Write(ctx context.Context, path string, ds *entity.Dataset, overwrite bool) ([]string, error) {
	ref, err := parseTableRef(path)
	if err != nil {
		return nil, err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, ioError("beginning transaction for", ref.ident(), err)
	}
	defer tx.Rollback(ctx)

	var exists bool
	if err := tx.QueryRow(ctx, "SELECT to_regclass($1) IS NOT NULL", ref.ident()).Scan(&exists); err != nil {
		return nil, ioError("checking", ref.ident(), err)
	}
	if exists {
		if !overwrite {
			return nil, fmt.Errorf("%s: %w", ref.ident(), domain.ErrOutputExists)
		}
		if _, err := tx.Exec(ctx, "DROP TABLE "+ref.ident()); err != nil {
			return nil, ioError("dropping", ref.ident(), err)
		}
	}

	srid := ds.CRS.Code
	defs := []string{"fid serial PRIMARY KEY", fmt.Sprintf("geom geometry(Geometry, %d)", srid)}
	cols := []string{"geom"}
	for _, f := range ds.Schema {
		quoted := pgx.Identifier{f.Name}.Sanitize()
		defs = append(defs, quoted+" "+pgType(f.Type))
		cols = append(cols, quoted)
	}
	if _, err := tx.Exec(ctx, fmt.Sprintf("CREATE TABLE %s (%s)", ref.ident(), strings.Join(defs, ", "))); err != nil {
		return nil, ioError("creating", ref.ident(), err)
	}

	placeholders := []string{fmt.Sprintf("ST_GeomFromWKB($1, %d)", srid)}
	for i := range ds.Schema {
		placeholders = append(placeholders, fmt.Sprintf("$%d", i+2))
	}
	insert := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		ref.ident(), strings.Join(cols, ", "), strings.Join(placeholders, ", "))

	batch := &pgx.Batch{}
	for _, f := range ds.Features {
		args := make([]any, 0, len(ds.Schema)+1)
		if f.Geometry == nil {
			args = append(args, nil)
		} else {
			b, err := wkb.Marshal(f.Geometry)
			if err != nil {
				return nil, fmt.Errorf("encoding geometry for %s: %w", ref.ident(), errors.Join(domain.ErrUnsupportedGeometry, err))
			}
			args = append(args, b)
		}
		for _, field := range ds.Schema {
			v, _ := f.Attribute(field.Name)
			args = append(args, toPG(field, v))
		}
		batch.Queue(insert, args...)
	}

	if batch.Len() > 0 {
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return nil, ioError("inserting into", ref.ident(), err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, ioError("committing", ref.ident(), err)
	}

	return []string{PostGISPrefix + ref.Schema + "." + ref.Table}, nil
}

func pgType(t entity.FieldType) string {
	switch t {
	case entity.FieldInteger:
		return "bigint"
	case entity.FieldFloat:
		return "double precision"
	case entity.FieldBoolean:
		return "boolean"
	case entity.FieldDate:
		return "date"
	default:
		return "text"
	}
}

func toPG(field entity.Field, v any) any {
	if v == nil {
		return nil
	}
	switch field.Type {
	case entity.FieldInteger:
		switch n := v.(type) {
		case float64:
			return int64(n)
		case int:
			return int64(n)
		}
	case entity.FieldFloat:
		switch n := v.(type) {
		case int64:
			return float64(n)
		case int:
			return float64(n)
		}
	case entity.FieldDate:
		if s, ok := v.(string); ok {
			if t, err := time.Parse(time.DateOnly, s); err == nil {
				return t
			}
		}
	case entity.FieldString:
		if _, ok := v.(string); !ok {
			return fmt.Sprint(v)
		}
	}
	return v
}
