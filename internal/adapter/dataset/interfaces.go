package dataset

import (
	"context"

	"github.com/marcos-nsantos/geocrop/internal/domain/entity"
)

//go:generate mockgen -source=interfaces.go -destination=../../mocks/dataset_mocks.go -package=mocks

// Store is the one capability every vector format implements: read a whole
// dataset, write a whole dataset. Write must not leave a partial output
// behind when it fails.
type Store interface {
	// Format names the storage format, e.g. "shapefile".
	Format() string
	// Extensions lists the path suffixes this format expects; the first one
	// is appended to output paths carrying none of them. Empty for
	// non-file stores.
	Extensions() []string
	Read(ctx context.Context, source string) (*entity.Dataset, error)
	// Write persists ds at path and returns the files it produced.
	Write(ctx context.Context, path string, ds *entity.Dataset, overwrite bool) ([]string, error)
}

// Resolver picks the Store responsible for a source handle.
type Resolver interface {
	StoreFor(source string) (Store, error)
}
