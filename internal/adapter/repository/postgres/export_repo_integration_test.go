package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcos-nsantos/geocrop/internal/adapter/repository/postgres"
	"github.com/marcos-nsantos/geocrop/internal/domain/entity"
	"github.com/marcos-nsantos/geocrop/internal/domain/valueobject"
)

func TestIntegrationExportRepo(t *testing.T) {
	db := SetupTestDB(t)
	defer db.Cleanup(t)

	repo := postgres.NewExportRepo(db.Pool)
	ctx := context.Background()

	box := valueobject.FromCorners(valueobject.NewGeoPoint(-33.5, -70.7), valueobject.NewGeoPoint(-33.3, -70.5))

	t.Run("stores and lists records of a session", func(t *testing.T) {
		db.Truncate(t, "crop_exports")
		sessionID := uuid.New()
		now := time.Now().UTC().Truncate(time.Millisecond)

		records := []entity.ExportRecord{
			{
				ID: uuid.New(), SessionID: sessionID, TargetID: uuid.New(),
				TargetName: "a", OutputPath: "/out/a.shp",
				FeaturesRead: 10, FeaturesWritten: 4,
				Extent: box, Duration: 1500 * time.Millisecond, CreatedAt: now,
			},
			{
				ID: uuid.New(), SessionID: sessionID, TargetID: uuid.New(),
				TargetName: "b", OutputPath: "/out/b.shp",
				FeaturesRead: 3, ErrorKind: "IOError", ErrorMessage: "disk full",
				Extent: box, CreatedAt: now,
			},
		}
		require.NoError(t, repo.CreateBatch(ctx, records))
		require.NoError(t, repo.CreateBatch(ctx, []entity.ExportRecord{{
			ID: uuid.New(), SessionID: uuid.New(), TargetID: uuid.New(),
			TargetName: "other", OutputPath: "/out/o.shp", Extent: box, CreatedAt: now,
		}}))

		got, err := repo.ListBySession(ctx, sessionID)
		require.NoError(t, err)
		require.Len(t, got, 2)

		assert.Equal(t, "a", got[0].TargetName)
		assert.True(t, got[0].Succeeded())
		assert.Equal(t, 4, got[0].FeaturesWritten)
		assert.Equal(t, 1500*time.Millisecond, got[0].Duration)
		assert.InDelta(t, -33.5, got[0].Extent.Min.Lat, 1e-9)
		assert.InDelta(t, -70.5, got[0].Extent.Max.Lng, 1e-9)

		assert.Equal(t, "b", got[1].TargetName)
		assert.False(t, got[1].Succeeded())
		assert.Equal(t, "IOError", got[1].ErrorKind)
		assert.Equal(t, "disk full", got[1].ErrorMessage)
	})

	t.Run("empty batch is a no-op", func(t *testing.T) {
		assert.NoError(t, repo.CreateBatch(ctx, nil))
	})

	t.Run("unknown session lists nothing", func(t *testing.T) {
		got, err := repo.ListBySession(ctx, uuid.New())
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}
