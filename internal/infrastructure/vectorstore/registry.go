// Package vectorstore holds the concrete vector dataset formats and the
// registry that picks one for a source handle.
package vectorstore

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/marcos-nsantos/geocrop/internal/adapter/dataset"
	"github.com/marcos-nsantos/geocrop/internal/domain"
)

// Registry resolves sources by prefix first, then by file extension.
type Registry struct {
	byPrefix    map[string]dataset.Store
	byExtension map[string]dataset.Store
	stores      []dataset.Store
}

func NewRegistry(stores ...dataset.Store) *Registry {
	r := &Registry{
		byPrefix:    make(map[string]dataset.Store),
		byExtension: make(map[string]dataset.Store),
	}
	for _, s := range stores {
		r.Register(s)
	}
	return r
}

// Register adds s. Stores without extensions are reached through a
// "<format>:" prefix.
func (r *Registry) Register(s dataset.Store) {
	r.stores = append(r.stores, s)
	exts := s.Extensions()
	if len(exts) == 0 {
		r.byPrefix[s.Format()+":"] = s
		return
	}
	for _, ext := range exts {
		r.byExtension[strings.ToLower(ext)] = s
	}
}

func (r *Registry) StoreFor(source string) (dataset.Store, error) {
	for prefix, s := range r.byPrefix {
		if strings.HasPrefix(source, prefix) {
			return s, nil
		}
	}
	ext := strings.ToLower(filepath.Ext(source))
	if s, ok := r.byExtension[ext]; ok {
		return s, nil
	}
	return nil, fmt.Errorf("%q: %w", source, domain.ErrUnsupportedFormat)
}

// Formats lists the registered format names in registration order.
func (r *Registry) Formats() []string {
	out := make([]string, len(r.stores))
	for i, s := range r.stores {
		out[i] = s.Format()
	}
	return out
}
