package session

import (
	"context"
	"fmt"
	"os"

	"github.com/marcos-nsantos/geocrop/internal/adapter/storage"
	objectstore "github.com/marcos-nsantos/geocrop/internal/infrastructure/storage"
)

func uploadFile(ctx context.Context, store storage.ObjectStorage, key, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	if err := store.Upload(ctx, key, f, objectstore.ContentType(path), info.Size()); err != nil {
		return fmt.Errorf("publishing %s: %w", path, err)
	}
	return nil
}
