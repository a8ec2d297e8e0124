package main

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/marcos-nsantos/geocrop/internal/adapter/repository/memory"
	"github.com/marcos-nsantos/geocrop/internal/domain/entity"
	"github.com/marcos-nsantos/geocrop/internal/domain/valueobject"
	"github.com/marcos-nsantos/geocrop/internal/infrastructure/messaging"
	"github.com/marcos-nsantos/geocrop/internal/infrastructure/observability"
	"github.com/marcos-nsantos/geocrop/internal/infrastructure/projection"
	"github.com/marcos-nsantos/geocrop/internal/infrastructure/vectorstore"
	"github.com/marcos-nsantos/geocrop/internal/usecase/crop"
	"github.com/marcos-nsantos/geocrop/internal/usecase/session"
)

const (
	logLevelFlag = "log-level"
	manifestFlag = "manifest"
	cornerFlag   = "corner"
	workersFlag  = "workers"
)

func newCropCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "crop",
		Short:   "Crop every dataset in a manifest to the box spanned by two corners",
		Example: "  cropctl crop --manifest targets.yaml --corner -33.40,-70.70 --corner -33.50,-70.55",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			path, _ := cmd.Flags().GetString(manifestFlag)
			m, err := LoadManifest(path)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed(workersFlag) {
				m.Workers, _ = cmd.Flags().GetInt(workersFlag)
			}

			raw, _ := cmd.Flags().GetStringArray(cornerFlag)
			if len(raw) != 2 {
				return fmt.Errorf("exactly two --%s values are required, got %d", cornerFlag, len(raw))
			}
			var corners [2]valueobject.GeoPoint
			for i, s := range raw {
				if corners[i], err = parseCorner(s); err != nil {
					return err
				}
			}

			logger, err := newLogger(cmd)
			if err != nil {
				return err
			}
			defer logger.Sync()

			report, err := runCrop(ctx, m, corners, logger)
			if err != nil {
				return err
			}
			printReport(cmd.OutOrStdout(), report)

			if failed := len(report.Failed()); failed > 0 {
				return fmt.Errorf("%d of %d targets failed", failed, len(report.Results))
			}
			return nil
		},
	}

	cmd.Flags().StringP(manifestFlag, "m", "", "path to the dataset manifest (yaml or json)")
	cmd.Flags().StringArray(cornerFlag, nil, "box corner as LAT,LNG; give exactly two")
	cmd.Flags().IntP(workersFlag, "w", 1, "targets exported in parallel")
	_ = cmd.MarkFlagRequired(manifestFlag)
	_ = cmd.MarkFlagRequired(cornerFlag)
	return cmd
}

func newLogger(cmd *cobra.Command) (*zap.Logger, error) {
	level, _ := cmd.Flags().GetString(logLevelFlag)
	return observability.NewLogger(level, "console")
}

// openRegistry returns the file formats plus PostGIS when dsn is set. The
// returned func releases the database pool.
func openRegistry(ctx context.Context, dsn string) (*vectorstore.Registry, func(), error) {
	registry := vectorstore.NewRegistry(vectorstore.NewShapefileStore(), vectorstore.NewGeoJSONStore())
	if dsn == "" {
		return registry, func() {}, nil
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to postgis: %w", err)
	}
	registry.Register(vectorstore.NewPostGISStore(pool))
	return registry, pool.Close, nil
}

// runCrop drives one session the same way the HTTP API does: open, two
// clicks, export.
func runCrop(ctx context.Context, m *Manifest, corners [2]valueobject.GeoPoint, logger *zap.Logger) (*entity.ExportReport, error) {
	registry, closeRegistry, err := openRegistry(ctx, m.PostGISDSN)
	if err != nil {
		return nil, err
	}
	defer closeRegistry()

	reprojector := projection.NewReprojector()
	svc := session.NewService(session.Deps{
		Sessions: memory.NewSessionRepo(),
		Resolver: registry,
		Boxes:    reprojector,
		Exporter: crop.NewExporter(registry, reprojector, logger, crop.Options{
			OutputDir: m.OutputDir,
			Overwrite: m.Overwrite,
			Workers:   m.Workers,
		}),
		Notifier: messaging.Noop{},
		Logger:   logger,
	}, session.Options{})

	operator := uuid.New()
	s, err := svc.Create(ctx, session.CreateInput{OperatorID: operator, Datasets: m.Inputs()})
	if err != nil {
		return nil, err
	}
	for _, p := range corners {
		if _, err := svc.RegisterPoint(ctx, operator, s.ID, session.PointInput{Point: &p}); err != nil {
			return nil, err
		}
	}
	return svc.Export(ctx, operator, s.ID)
}

func printReport(w io.Writer, report *entity.ExportReport) {
	fmt.Fprintf(w, "box: %.6f,%.6f .. %.6f,%.6f\n",
		report.Box.Min.Lat, report.Box.Min.Lng, report.Box.Max.Lat, report.Box.Max.Lng)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TARGET\tSTATUS\tREAD\tWRITTEN\tOUTPUT")
	for _, r := range report.Results {
		if r.Err != nil {
			fmt.Fprintf(tw, "%s\t%s\t%d\t-\t%v\n", r.Name, crop.ErrorKind(r.Err), r.FeaturesRead, r.Err)
			continue
		}
		fmt.Fprintf(tw, "%s\tok\t%d\t%d\t%s\n", r.Name, r.FeaturesRead, r.FeaturesWritten, r.OutputPath)
	}
	tw.Flush()
}
