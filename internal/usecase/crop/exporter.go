package crop

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/paulmach/orb"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/marcos-nsantos/geocrop/internal/adapter/dataset"
	"github.com/marcos-nsantos/geocrop/internal/domain"
	"github.com/marcos-nsantos/geocrop/internal/domain/entity"
	"github.com/marcos-nsantos/geocrop/internal/domain/valueobject"
	"github.com/marcos-nsantos/geocrop/internal/pkg/metrics"
)

//go:generate mockgen -source=exporter.go -destination=../../mocks/crop_mocks.go -package=mocks

// Reprojector maps every coordinate of a geometry from one CRS to another,
// keeping its structure.
type Reprojector interface {
	Reproject(g orb.Geometry, from, to valueobject.CRS) (orb.Geometry, error)
}

type Options struct {
	// OutputDir anchors relative output paths of file-based stores.
	OutputDir string
	Overwrite bool
	// Workers bounds how many targets export at once. Values below 2 keep
	// the batch sequential.
	Workers int
}

type Exporter struct {
	resolver    dataset.Resolver
	reprojector Reprojector
	logger      *zap.Logger
	opts        Options
}

func NewExporter(resolver dataset.Resolver, reprojector Reprojector, logger *zap.Logger, opts Options) *Exporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Exporter{
		resolver:    resolver,
		reprojector: reprojector,
		logger:      logger,
		opts:        opts,
	}
}

// Export crops one target with box, which is in the working CRS. The
// returned result carries the same error as the second return value.
func (e *Exporter) Export(ctx context.Context, target *entity.CropTarget, box valueobject.ExtentBox) (entity.TargetResult, error) {
	start := time.Now()
	res := entity.TargetResult{TargetID: target.ID, Name: target.Name}

	format, kept, dropped, err := e.export(ctx, target, box, &res)
	res.Duration = time.Since(start)
	res.Err = err
	metrics.ObserveExport(format, err, kept, dropped, res.Duration)

	fields := []zap.Field{
		zap.String("target_id", target.ID.String()),
		zap.String("target", target.Name),
		zap.String("source", target.Source),
		zap.String("output_path", res.OutputPath),
		zap.Int("features_read", res.FeaturesRead),
		zap.Int("features_written", res.FeaturesWritten),
		zap.Duration("duration", res.Duration),
	}
	if err != nil {
		e.logger.Warn("crop export failed", append(fields, zap.String("kind", ErrorKind(err)), zap.Error(err))...)
		return res, err
	}
	e.logger.Info("crop exported", fields...)
	return res, nil
}

func (e *Exporter) export(ctx context.Context, target *entity.CropTarget, box valueobject.ExtentBox, res *entity.TargetResult) (string, int, int, error) {
	store, err := e.resolver.StoreFor(target.Source)
	if err != nil {
		return "", 0, 0, fmt.Errorf("resolving store for %s: %w", target.Source, err)
	}

	src, err := store.Read(ctx, target.Source)
	if err != nil {
		return store.Format(), 0, 0, fmt.Errorf("reading %s: %w", target.Source, err)
	}
	res.FeaturesRead = src.Len()

	native := src.CRS
	if native.IsZero() {
		native = target.NativeCRS
	}

	working, err := e.toWorking(src, native)
	if err != nil {
		return store.Format(), 0, 0, err
	}

	keep := Select(working, box)

	out := src.EmptyLike(src.Name)
	out.CRS = native
	for _, i := range keep {
		// The native geometry is copied, so output coordinates never pick
		// up reprojection error from the filtering step.
		out.Add(src.Features[i].Clone())
	}

	path := e.outputPath(target.OutputPath, store.Extensions())
	res.OutputPath = path

	files, err := store.Write(ctx, path, out, e.opts.Overwrite)
	if err != nil {
		return store.Format(), 0, 0, fmt.Errorf("writing %s: %w", path, err)
	}
	res.Files = files
	res.FeaturesWritten = out.Len()

	return store.Format(), len(keep), src.Len() - len(keep), nil
}

func (e *Exporter) toWorking(src *entity.Dataset, native valueobject.CRS) ([]orb.Geometry, error) {
	working := make([]orb.Geometry, len(src.Features))
	for i, f := range src.Features {
		g, err := e.reprojector.Reproject(f.Geometry, native, valueobject.WGS84)
		if err != nil {
			return nil, fmt.Errorf("reprojecting feature %d from %s: %w", i, native, err)
		}
		working[i] = g
	}
	return working, nil
}

func (e *Exporter) outputPath(path string, exts []string) string {
	if len(exts) == 0 {
		return path
	}
	if e.opts.OutputDir != "" && !filepath.IsAbs(path) {
		path = filepath.Join(e.opts.OutputDir, path)
	}
	return WithExtension(path, exts)
}

// WithExtension appends exts[0] unless path already ends in one of exts,
// compared case-insensitively.
func WithExtension(path string, exts []string) string {
	if len(exts) == 0 {
		return path
	}
	lower := strings.ToLower(path)
	for _, ext := range exts {
		if strings.HasSuffix(lower, strings.ToLower(ext)) {
			return path
		}
	}
	return path + exts[0]
}

// ExportAll exports every target with the shared box. A nil box rejects
// the whole batch with ErrInvalidSelection before any target is touched.
// Individual failures are recorded in their result and never stop sibling
// targets; results keep the order of targets.
func (e *Exporter) ExportAll(ctx context.Context, targets []*entity.CropTarget, box *valueobject.ExtentBox) ([]entity.TargetResult, error) {
	if box == nil {
		return nil, domain.ErrInvalidSelection
	}
	shared := *box

	results := make([]entity.TargetResult, len(targets))
	if e.opts.Workers < 2 {
		for i, t := range targets {
			results[i], _ = e.Export(ctx, t, shared)
		}
		return results, nil
	}

	var g errgroup.Group
	g.SetLimit(e.opts.Workers)
	for i, t := range targets {
		g.Go(func() error {
			results[i], _ = e.Export(ctx, t, shared)
			return nil
		})
	}
	_ = g.Wait()

	return results, nil
}
