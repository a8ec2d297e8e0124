package storage_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcos-nsantos/geocrop/internal/infrastructure/config"
	"github.com/marcos-nsantos/geocrop/internal/infrastructure/storage"
)

func TestNewS3Storage_RequiresBucket(t *testing.T) {
	_, err := storage.NewS3Storage(config.S3Config{Region: "us-east-1"})
	assert.Error(t, err)
}

func TestS3Storage_URLs(t *testing.T) {
	t.Run("public url", func(t *testing.T) {
		s, err := storage.NewS3Storage(config.S3Config{
			Bucket: "crops", Region: "us-east-1", PublicURL: "https://cdn.example.com/", KeyPrefix: "/exports/",
		})
		require.NoError(t, err)

		key := s.Key("abc", "parcels.shp")
		assert.Equal(t, "exports/abc/parcels.shp", key)
		assert.Equal(t, "https://cdn.example.com/exports/abc/parcels.shp", s.GetURL(key))
	})

	t.Run("bucket url", func(t *testing.T) {
		s, err := storage.NewS3Storage(config.S3Config{Bucket: "crops", Region: "us-east-1"})
		require.NoError(t, err)
		assert.Equal(t, "https://crops.s3.amazonaws.com/a.geojson", s.GetURL(s.Key("a.geojson")))
	})

	t.Run("signed url", func(t *testing.T) {
		s, err := storage.NewS3Storage(config.S3Config{
			Bucket: "crops", Region: "us-east-1", AccessKeyID: "key", SecretAccessKey: "secret",
			Endpoint: "http://localhost:9000", UsePathStyle: true,
		})
		require.NoError(t, err)

		url, err := s.GetSignedURL(context.Background(), "crops/a.shp", 15*time.Minute)
		require.NoError(t, err)
		assert.Contains(t, url, "http://localhost:9000/crops/crops/a.shp")
		assert.Contains(t, url, "X-Amz-Expires=900")
	})
}

func TestContentType(t *testing.T) {
	tests := map[string]string{
		"out.geojson": "application/geo+json",
		"out.PRJ":     "text/plain",
		"out.dbf":     "application/dbase",
		"out.shp":     "application/octet-stream",
	}
	for name, want := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, want, storage.ContentType(name))
		})
	}
}
