package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/marcos-nsantos/geocrop/internal/domain/entity"
	"github.com/marcos-nsantos/geocrop/internal/domain/valueobject"
)

type ExportRepo struct {
	pool *pgxpool.Pool
}

func NewExportRepo(pool *pgxpool.Pool) *ExportRepo {
	return &ExportRepo{pool: pool}
}

func (r *ExportRepo) CreateBatch(ctx context.Context, records []entity.ExportRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO crop_exports (
			id, session_id, target_id, target_name, output_path,
			features_read, features_written, error_kind, error_message,
			extent, duration_ms, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, ST_MakeEnvelope($10, $11, $12, $13, 4326), $14, $15)
	`
	for _, rec := range records {
		_, err := tx.Exec(ctx, query,
			rec.ID, rec.SessionID, rec.TargetID, rec.TargetName, rec.OutputPath,
			rec.FeaturesRead, rec.FeaturesWritten,
			nullableString(rec.ErrorKind), nullableString(rec.ErrorMessage),
			rec.Extent.Min.Lng, rec.Extent.Min.Lat, rec.Extent.Max.Lng, rec.Extent.Max.Lat,
			rec.Duration.Milliseconds(), rec.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("inserting export record: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

func (r *ExportRepo) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]entity.ExportRecord, error) {
	query := `
		SELECT id, session_id, target_id, target_name, output_path,
			   features_read, features_written, error_kind, error_message,
			   ST_YMin(extent), ST_XMin(extent), ST_YMax(extent), ST_XMax(extent),
			   duration_ms, created_at
		FROM crop_exports
		WHERE session_id = $1
		ORDER BY created_at, target_name
	`
	rows, err := r.pool.Query(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("querying export records: %w", err)
	}
	defer rows.Close()

	var records []entity.ExportRecord
	for rows.Next() {
		var rec entity.ExportRecord
		var errKind, errMsg *string
		var minLat, minLng, maxLat, maxLng float64
		var durationMs int64

		if err := rows.Scan(
			&rec.ID, &rec.SessionID, &rec.TargetID, &rec.TargetName, &rec.OutputPath,
			&rec.FeaturesRead, &rec.FeaturesWritten, &errKind, &errMsg,
			&minLat, &minLng, &maxLat, &maxLng,
			&durationMs, &rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning export record: %w", err)
		}

		rec.Extent = valueobject.FromCorners(
			valueobject.NewGeoPoint(minLat, minLng),
			valueobject.NewGeoPoint(maxLat, maxLng),
		)
		rec.Duration = time.Duration(durationMs) * time.Millisecond
		if errKind != nil {
			rec.ErrorKind = *errKind
		}
		if errMsg != nil {
			rec.ErrorMessage = *errMsg
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating export records: %w", err)
	}

	return records, nil
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
