package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/marcos-nsantos/geocrop/internal/domain/valueobject"
	"github.com/marcos-nsantos/geocrop/internal/infrastructure/vectorstore"
	"github.com/marcos-nsantos/geocrop/internal/usecase/session"
)

// Manifest lists the datasets a crop run works on. Relative paths are
// taken from the manifest's directory.
type Manifest struct {
	OutputDir  string            `mapstructure:"output_dir"`
	Overwrite  bool              `mapstructure:"overwrite"`
	Workers    int               `mapstructure:"workers"`
	PostGISDSN string            `mapstructure:"postgis_dsn"`
	Datasets   []ManifestDataset `mapstructure:"datasets"`
}

type ManifestDataset struct {
	Name       string `mapstructure:"name"`
	Source     string `mapstructure:"source"`
	OutputPath string `mapstructure:"output_path"`
	Color      string `mapstructure:"color"`
}

// LoadManifest reads a YAML or JSON manifest; the format follows the file
// extension.
func LoadManifest(path string) (*Manifest, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("CROPCTL")
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	var m Manifest
	if err := v.Unmarshal(&m); err != nil {
		return nil, fmt.Errorf("decoding manifest: %w", err)
	}
	if len(m.Datasets) == 0 {
		return nil, fmt.Errorf("manifest %s lists no datasets", path)
	}

	base := filepath.Dir(path)
	m.OutputDir = anchor(base, m.OutputDir)
	for i := range m.Datasets {
		d := &m.Datasets[i]
		if d.Source == "" || d.OutputPath == "" {
			return nil, fmt.Errorf("dataset %d: source and output_path are required", i)
		}
		d.Source = anchor(base, d.Source)
	}
	return &m, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("output_dir", ".")
	v.SetDefault("overwrite", true)
	v.SetDefault("workers", 1)
}

func anchor(base, p string) string {
	if p == "" || filepath.IsAbs(p) || strings.HasPrefix(p, vectorstore.PostGISPrefix) {
		return p
	}
	return filepath.Join(base, p)
}

func (m *Manifest) Inputs() []session.DatasetInput {
	out := make([]session.DatasetInput, 0, len(m.Datasets))
	for _, d := range m.Datasets {
		out = append(out, session.DatasetInput{
			Name:       d.Name,
			Source:     d.Source,
			OutputPath: d.OutputPath,
			Color:      d.Color,
		})
	}
	return out
}

// parseCorner reads "LAT,LNG".
func parseCorner(s string) (valueobject.GeoPoint, error) {
	latStr, lngStr, ok := strings.Cut(s, ",")
	if !ok {
		return valueobject.GeoPoint{}, fmt.Errorf("corner %q: want LAT,LNG", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		return valueobject.GeoPoint{}, fmt.Errorf("corner %q: latitude: %w", s, err)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(lngStr), 64)
	if err != nil {
		return valueobject.GeoPoint{}, fmt.Errorf("corner %q: longitude: %w", s, err)
	}
	p := valueobject.NewGeoPoint(lat, lng)
	if !p.IsValid() {
		return valueobject.GeoPoint{}, fmt.Errorf("corner %q: out of range", s)
	}
	return p, nil
}
