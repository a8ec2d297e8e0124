package session_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/marcos-nsantos/geocrop/internal/adapter/repository/memory"
	"github.com/marcos-nsantos/geocrop/internal/domain"
	"github.com/marcos-nsantos/geocrop/internal/domain/entity"
	"github.com/marcos-nsantos/geocrop/internal/domain/selection"
	"github.com/marcos-nsantos/geocrop/internal/domain/valueobject"
	"github.com/marcos-nsantos/geocrop/internal/infrastructure/mapview"
	"github.com/marcos-nsantos/geocrop/internal/mocks"
	"github.com/marcos-nsantos/geocrop/internal/usecase/session"
)

type fixture struct {
	svc      *session.Service
	repo     *memory.SessionRepo
	resolver *mocks.MockResolver
	store    *mocks.MockStore
	boxes    *mocks.MockBoxProjector
	exporter *mocks.MockExporter
	notifier *mocks.MockNotifier
	exports  *mocks.MockExportRepository
	storage  *mocks.MockObjectStorage
	operator uuid.UUID
}

type fixtureOpts struct {
	withExports bool
	withStorage bool
	signedTTL   time.Duration
}

func newFixture(t *testing.T, o fixtureOpts) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &fixture{
		repo:     memory.NewSessionRepo(),
		resolver: mocks.NewMockResolver(ctrl),
		store:    mocks.NewMockStore(ctrl),
		boxes:    mocks.NewMockBoxProjector(ctrl),
		exporter: mocks.NewMockExporter(ctrl),
		notifier: mocks.NewMockNotifier(ctrl),
		exports:  mocks.NewMockExportRepository(ctrl),
		storage:  mocks.NewMockObjectStorage(ctrl),
		operator: uuid.New(),
	}

	deps := session.Deps{
		Sessions: f.repo,
		Resolver: f.resolver,
		Boxes:    f.boxes,
		Exporter: f.exporter,
		Notifier: f.notifier,
	}
	if o.withExports {
		deps.Exports = f.exports
	}
	if o.withStorage {
		deps.Storage = f.storage
	}
	f.svc = session.NewService(deps, session.Options{SessionTTL: 2 * time.Hour, SignedURLTTL: o.signedTTL})
	return f
}

func pointDataset(crs valueobject.CRS, pts ...orb.Point) *entity.Dataset {
	ds := entity.NewDataset("pts", entity.KindPoint, crs, nil)
	for _, p := range pts {
		ds.Add(entity.Feature{Geometry: p})
	}
	return ds
}

// openSession creates a session over one WGS84 point dataset.
func (f *fixture) openSession(t *testing.T) *entity.Session {
	t.Helper()
	ds := pointDataset(valueobject.WGS84, orb.Point{1, 1}, orb.Point{9, 9})

	f.resolver.EXPECT().StoreFor("/data/pts.geojson").Return(f.store, nil)
	f.store.EXPECT().Read(gomock.Any(), "/data/pts.geojson").Return(ds, nil)
	f.store.EXPECT().Format().Return("geojson")
	f.boxes.EXPECT().ReprojectBox(gomock.Any(), valueobject.WGS84, valueobject.WGS84).
		DoAndReturn(func(b valueobject.ExtentBox, _, _ valueobject.CRS) (valueobject.ExtentBox, error) { return b, nil })

	s, err := f.svc.Create(context.Background(), session.CreateInput{
		OperatorID: f.operator,
		Datasets:   []session.DatasetInput{{Source: "/data/pts.geojson", OutputPath: "/out/pts"}},
	})
	require.NoError(t, err)
	return s
}

func geo(lat, lng float64) session.PointInput {
	p := valueobject.NewGeoPoint(lat, lng)
	return session.PointInput{Point: &p}
}

func (f *fixture) finalize(t *testing.T, s *entity.Session) valueobject.ExtentBox {
	t.Helper()
	ctx := context.Background()
	f.notifier.EXPECT().SelectionFinalized(gomock.Any(), s.ID, gomock.Any(), gomock.Any()).Return(nil)

	_, err := f.svc.RegisterPoint(ctx, f.operator, s.ID, geo(8, 8))
	require.NoError(t, err)
	view, err := f.svc.RegisterPoint(ctx, f.operator, s.ID, geo(2, 2))
	require.NoError(t, err)
	require.NotNil(t, view.Box)
	return *view.Box
}

func TestService_Create(t *testing.T) {
	t.Run("derives name, color and extent", func(t *testing.T) {
		f := newFixture(t, fixtureOpts{})
		s := f.openSession(t)

		require.Len(t, s.Targets, 1)
		target := s.Targets[0]
		assert.Equal(t, "pts", target.Name)
		assert.Equal(t, "geojson", target.Format)
		assert.Equal(t, entity.PaletteColor(0), target.Color)
		assert.True(t, target.Selected)
		assert.Equal(t, valueobject.EPSGWGS84, target.NativeCRS.Code)
		require.NotNil(t, target.Extent)
		assert.Equal(t, valueobject.NewGeoPoint(1, 1), target.Extent.Min)
		assert.Equal(t, valueobject.NewGeoPoint(9, 9), target.Extent.Max)
		assert.Nil(t, target.CurrentCrop)
		assert.Equal(t, selection.StateEmpty, s.Selection.State())

		stored, err := f.repo.GetByID(context.Background(), s.ID)
		require.NoError(t, err)
		assert.Same(t, s, stored)
	})

	t.Run("keeps target when extent cannot be projected", func(t *testing.T) {
		f := newFixture(t, fixtureOpts{})
		utm := valueobject.EPSG(32719)
		ds := pointDataset(utm, orb.Point{300000, 6200000})

		f.resolver.EXPECT().StoreFor("/data/utm.shp").Return(f.store, nil)
		f.store.EXPECT().Read(gomock.Any(), "/data/utm.shp").Return(ds, nil)
		f.store.EXPECT().Format().Return("shapefile")
		f.boxes.EXPECT().ReprojectBox(gomock.Any(), utm, valueobject.WGS84).
			Return(valueobject.ExtentBox{}, domain.ErrProjection)

		s, err := f.svc.Create(context.Background(), session.CreateInput{
			OperatorID: f.operator,
			Datasets:   []session.DatasetInput{{Name: "utm", Source: "/data/utm.shp", OutputPath: "/out/utm", Color: "#00ff00"}},
		})

		require.NoError(t, err)
		assert.Nil(t, s.Targets[0].Extent)
		assert.Equal(t, "#00ff00", s.Targets[0].ColorHex())
	})

	t.Run("fails when a dataset cannot be opened", func(t *testing.T) {
		f := newFixture(t, fixtureOpts{})
		f.resolver.EXPECT().StoreFor("/data/missing.shp").Return(f.store, nil)
		f.store.EXPECT().Read(gomock.Any(), "/data/missing.shp").Return(nil, fmt.Errorf("open: %w", domain.ErrIO))

		_, err := f.svc.Create(context.Background(), session.CreateInput{
			OperatorID: f.operator,
			Datasets:   []session.DatasetInput{{Source: "/data/missing.shp", OutputPath: "/out/x"}},
		})

		assert.ErrorIs(t, err, domain.ErrIO)
	})

	t.Run("rejects empty input", func(t *testing.T) {
		f := newFixture(t, fixtureOpts{})
		_, err := f.svc.Create(context.Background(), session.CreateInput{OperatorID: f.operator})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("rejects bad color", func(t *testing.T) {
		f := newFixture(t, fixtureOpts{})
		_, err := f.svc.Create(context.Background(), session.CreateInput{
			OperatorID: f.operator,
			Datasets:   []session.DatasetInput{{Source: "/a.shp", OutputPath: "/b", Color: "blue"}},
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestService_RegisterPoint(t *testing.T) {
	t.Run("two points finalize, third clears and restarts", func(t *testing.T) {
		f := newFixture(t, fixtureOpts{})
		s := f.openSession(t)
		ctx := context.Background()

		want := valueobject.FromCorners(valueobject.NewGeoPoint(8, 8), valueobject.NewGeoPoint(2, 2))
		gomock.InOrder(
			f.notifier.EXPECT().SelectionFinalized(gomock.Any(), s.ID, want, s.Targets).Return(nil),
			f.notifier.EXPECT().SelectionCleared(gomock.Any(), s.ID).Return(nil),
		)

		view, err := f.svc.RegisterPoint(ctx, f.operator, s.ID, geo(8, 8))
		require.NoError(t, err)
		assert.Equal(t, selection.StateOnePoint, view.State)
		assert.Nil(t, view.Box)

		view, err = f.svc.RegisterPoint(ctx, f.operator, s.ID, geo(2, 2))
		require.NoError(t, err)
		assert.Equal(t, selection.StateFinalized, view.State)
		require.NotNil(t, view.Box)
		assert.Equal(t, want, *view.Box)
		require.NotNil(t, s.Targets[0].CurrentCrop)
		assert.Equal(t, want, *s.Targets[0].CurrentCrop)

		view, err = f.svc.RegisterPoint(ctx, f.operator, s.ID, geo(5, 5))
		require.NoError(t, err)
		assert.Equal(t, selection.StateOnePoint, view.State)
		assert.Equal(t, []valueobject.GeoPoint{valueobject.NewGeoPoint(5, 5)}, view.Buffer)
		assert.Nil(t, s.Targets[0].CurrentCrop)
	})

	t.Run("converts pixel clicks through the viewport", func(t *testing.T) {
		f := newFixture(t, fixtureOpts{})
		s := f.openSession(t)

		view, err := f.svc.RegisterPoint(context.Background(), f.operator, s.ID, session.PointInput{
			Pixel: &session.PixelPoint{
				X: 128, Y: 128,
				Viewport: mapview.Viewport{Zoom: 2, Width: 256, Height: 256},
			},
		})

		require.NoError(t, err)
		require.Len(t, view.Buffer, 1)
		assert.InDelta(t, 0, view.Buffer[0].Lat, 1e-9)
		assert.InDelta(t, 0, view.Buffer[0].Lng, 1e-9)
	})

	t.Run("notification failures do not fail the call", func(t *testing.T) {
		f := newFixture(t, fixtureOpts{})
		s := f.openSession(t)
		f.notifier.EXPECT().SelectionFinalized(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("nats: connection closed"))

		_, err := f.svc.RegisterPoint(context.Background(), f.operator, s.ID, geo(1, 1))
		require.NoError(t, err)
		view, err := f.svc.RegisterPoint(context.Background(), f.operator, s.ID, geo(3, 3))

		require.NoError(t, err)
		assert.Equal(t, selection.StateFinalized, view.State)
	})

	t.Run("rejects invalid point", func(t *testing.T) {
		f := newFixture(t, fixtureOpts{})
		s := f.openSession(t)

		_, err := f.svc.RegisterPoint(context.Background(), f.operator, s.ID, geo(95, 0))
		assert.ErrorIs(t, err, domain.ErrInvalidPoint)
		assert.Equal(t, selection.StateEmpty, s.Selection.State())
	})

	t.Run("another operator is forbidden", func(t *testing.T) {
		f := newFixture(t, fixtureOpts{})
		s := f.openSession(t)

		_, err := f.svc.RegisterPoint(context.Background(), uuid.New(), s.ID, geo(1, 1))
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("unknown session", func(t *testing.T) {
		f := newFixture(t, fixtureOpts{})
		_, err := f.svc.RegisterPoint(context.Background(), f.operator, uuid.New(), geo(1, 1))
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})
}

func TestService_Reset(t *testing.T) {
	f := newFixture(t, fixtureOpts{})
	s := f.openSession(t)
	f.finalize(t, s)
	f.notifier.EXPECT().SelectionCleared(gomock.Any(), s.ID).Return(nil)

	view, err := f.svc.Reset(context.Background(), f.operator, s.ID)

	require.NoError(t, err)
	assert.Equal(t, selection.StateEmpty, view.State)
	assert.Empty(t, view.Buffer)
	assert.Nil(t, view.Box)
	assert.Nil(t, s.Targets[0].CurrentCrop)
}

func TestService_SetSelected(t *testing.T) {
	f := newFixture(t, fixtureOpts{})
	s := f.openSession(t)
	ctx := context.Background()

	target, err := f.svc.SetSelected(ctx, f.operator, s.ID, s.Targets[0].ID, false)
	require.NoError(t, err)
	assert.False(t, target.Selected)

	_, err = f.svc.SetSelected(ctx, f.operator, s.ID, uuid.New(), true)
	assert.ErrorIs(t, err, domain.ErrTargetNotFound)
}

func TestService_Export(t *testing.T) {
	t.Run("without a finalized box the session stays open", func(t *testing.T) {
		f := newFixture(t, fixtureOpts{})
		s := f.openSession(t)

		_, err := f.svc.RegisterPoint(context.Background(), f.operator, s.ID, geo(1, 1))
		require.NoError(t, err)

		_, err = f.svc.Export(context.Background(), f.operator, s.ID)

		assert.ErrorIs(t, err, domain.ErrInvalidSelection)
		assert.False(t, s.IsClosed())
		assert.Equal(t, selection.StateOnePoint, s.Selection.State())
	})

	t.Run("exports selected targets, closes and records history", func(t *testing.T) {
		f := newFixture(t, fixtureOpts{withExports: true})
		s := f.openSession(t)
		box := f.finalize(t, s)
		target := s.Targets[0]

		results := []entity.TargetResult{{
			TargetID:        target.ID,
			Name:            target.Name,
			OutputPath:      "/out/pts.geojson",
			Files:           []string{"/out/pts.geojson"},
			FeaturesRead:    2,
			FeaturesWritten: 0,
		}}
		f.exporter.EXPECT().ExportAll(gomock.Any(), []*entity.CropTarget{target}, &box).Return(results, nil)
		f.notifier.EXPECT().ExportCompleted(gomock.Any(), gomock.Any()).Return(nil)
		f.exports.EXPECT().CreateBatch(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, records []entity.ExportRecord) error {
				require.Len(t, records, 1)
				assert.Equal(t, s.ID, records[0].SessionID)
				assert.Equal(t, box, records[0].Extent)
				assert.True(t, records[0].Succeeded())
				return nil
			})

		report, err := f.svc.Export(context.Background(), f.operator, s.ID)

		require.NoError(t, err)
		assert.Equal(t, box, report.Box)
		assert.Len(t, report.Succeeded(), 1)
		assert.True(t, s.IsClosed())
		assert.Same(t, report, s.LastReport)

		_, err = f.svc.Export(context.Background(), f.operator, s.ID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
		_, err = f.svc.RegisterPoint(context.Background(), f.operator, s.ID, geo(1, 1))
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)

		got, err := f.svc.Get(context.Background(), f.operator, s.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.SessionClosed, got.Status)
	})

	t.Run("cancelled request still exports every selected target", func(t *testing.T) {
		f := newFixture(t, fixtureOpts{withExports: true})
		s := f.openSession(t)
		box := f.finalize(t, s)
		target := s.Targets[0]

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		f.exporter.EXPECT().ExportAll(gomock.Any(), []*entity.CropTarget{target}, &box).
			DoAndReturn(func(ctx context.Context, targets []*entity.CropTarget, _ *valueobject.ExtentBox) ([]entity.TargetResult, error) {
				require.NoError(t, ctx.Err())
				return []entity.TargetResult{{TargetID: targets[0].ID, Name: targets[0].Name}}, nil
			})
		f.notifier.EXPECT().ExportCompleted(gomock.Any(), gomock.Any()).Return(nil)
		f.exports.EXPECT().CreateBatch(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, records []entity.ExportRecord) error {
				assert.NoError(t, ctx.Err())
				assert.Len(t, records, 1)
				return nil
			})

		report, err := f.svc.Export(ctx, f.operator, s.ID)

		require.NoError(t, err)
		assert.Len(t, report.Succeeded(), 1)
		assert.True(t, s.IsClosed())
	})

	t.Run("history save failure does not fail the export", func(t *testing.T) {
		f := newFixture(t, fixtureOpts{withExports: true})
		s := f.openSession(t)
		f.finalize(t, s)

		f.exporter.EXPECT().ExportAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]entity.TargetResult{{
			TargetID: s.Targets[0].ID,
			Err:      fmt.Errorf("writing: %w", domain.ErrIO),
		}}, nil)
		f.notifier.EXPECT().ExportCompleted(gomock.Any(), gomock.Any()).Return(nil)
		f.exports.EXPECT().CreateBatch(gomock.Any(), gomock.Any()).Return(errors.New("connection refused"))

		report, err := f.svc.Export(context.Background(), f.operator, s.ID)

		require.NoError(t, err)
		assert.True(t, report.HasFailures())
	})

	t.Run("batch-level failure keeps the session open", func(t *testing.T) {
		f := newFixture(t, fixtureOpts{})
		s := f.openSession(t)
		f.finalize(t, s)

		f.exporter.EXPECT().ExportAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, context.Canceled)

		_, err := f.svc.Export(context.Background(), f.operator, s.ID)

		assert.ErrorIs(t, err, context.Canceled)
		assert.False(t, s.IsClosed())
	})
}

func writeFiles(t *testing.T, names ...string) []string {
	t.Helper()
	dir := t.TempDir()
	var paths []string
	for _, n := range names {
		p := filepath.Join(dir, n)
		require.NoError(t, os.WriteFile(p, []byte("data-"+n), 0o644))
		paths = append(paths, p)
	}
	return paths
}

func TestService_ExportPublishing(t *testing.T) {
	t.Run("uploads outputs and signs urls", func(t *testing.T) {
		f := newFixture(t, fixtureOpts{withStorage: true, signedTTL: 15 * time.Minute})
		s := f.openSession(t)
		f.finalize(t, s)
		tid := s.Targets[0].ID
		files := writeFiles(t, "pts.shp", "pts.dbf")
		sid := s.ID.String()

		f.exporter.EXPECT().ExportAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]entity.TargetResult{{
			TargetID: tid,
			Files:    append(files, "postgis:public.pts"),
		}}, nil)
		gomock.InOrder(
			f.storage.EXPECT().Key(sid, tid.String(), "pts.shp").Return("crops/pts.shp"),
			f.storage.EXPECT().Upload(gomock.Any(), "crops/pts.shp", gomock.Any(), gomock.Any(), int64(len("data-pts.shp"))).Return(nil),
			f.storage.EXPECT().Key(sid, tid.String(), "pts.dbf").Return("crops/pts.dbf"),
			f.storage.EXPECT().Upload(gomock.Any(), "crops/pts.dbf", gomock.Any(), gomock.Any(), gomock.Any()).Return(nil),
			f.storage.EXPECT().GetSignedURL(gomock.Any(), "crops/pts.shp", 15*time.Minute).Return("https://s3/pts.shp?sig", nil),
			f.storage.EXPECT().GetSignedURL(gomock.Any(), "crops/pts.dbf", 15*time.Minute).Return("https://s3/pts.dbf?sig", nil),
		)
		f.notifier.EXPECT().ExportCompleted(gomock.Any(), gomock.Any()).Return(nil)

		report, err := f.svc.Export(context.Background(), f.operator, s.ID)

		require.NoError(t, err)
		res := report.Results[0]
		assert.NoError(t, res.PublishErr)
		assert.Equal(t, []string{"https://s3/pts.shp?sig", "https://s3/pts.dbf?sig"}, res.PublishedURLs)
	})

	t.Run("failed upload removes the partial set", func(t *testing.T) {
		f := newFixture(t, fixtureOpts{withStorage: true})
		s := f.openSession(t)
		f.finalize(t, s)
		tid := s.Targets[0].ID
		files := writeFiles(t, "pts.shp", "pts.dbf")

		f.exporter.EXPECT().ExportAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]entity.TargetResult{{
			TargetID: tid,
			Files:    files,
		}}, nil)
		f.storage.EXPECT().Key(gomock.Any(), gomock.Any(), "pts.shp").Return("k/pts.shp")
		f.storage.EXPECT().Key(gomock.Any(), gomock.Any(), "pts.dbf").Return("k/pts.dbf")
		f.storage.EXPECT().Upload(gomock.Any(), "k/pts.shp", gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.storage.EXPECT().Upload(gomock.Any(), "k/pts.dbf", gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("access denied"))
		f.storage.EXPECT().Delete(gomock.Any(), "k/pts.shp").Return(nil)
		f.notifier.EXPECT().ExportCompleted(gomock.Any(), gomock.Any()).Return(nil)

		report, err := f.svc.Export(context.Background(), f.operator, s.ID)

		require.NoError(t, err)
		res := report.Results[0]
		assert.True(t, res.Succeeded())
		assert.Error(t, res.PublishErr)
		assert.Empty(t, res.PublishedURLs)
	})

	t.Run("failed targets are not published", func(t *testing.T) {
		f := newFixture(t, fixtureOpts{withStorage: true})
		s := f.openSession(t)
		f.finalize(t, s)

		f.exporter.EXPECT().ExportAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]entity.TargetResult{{
			TargetID: s.Targets[0].ID,
			Files:    []string{"/nowhere"},
			Err:      domain.ErrIO,
		}}, nil)
		f.notifier.EXPECT().ExportCompleted(gomock.Any(), gomock.Any()).Return(nil)

		_, err := f.svc.Export(context.Background(), f.operator, s.ID)
		require.NoError(t, err)
	})
}

func TestService_History(t *testing.T) {
	t.Run("falls back to the last report", func(t *testing.T) {
		f := newFixture(t, fixtureOpts{})
		s := f.openSession(t)
		ctx := context.Background()

		records, err := f.svc.History(ctx, f.operator, s.ID)
		require.NoError(t, err)
		assert.Empty(t, records)

		f.finalize(t, s)
		f.exporter.EXPECT().ExportAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]entity.TargetResult{
			{TargetID: s.Targets[0].ID, Name: "pts", Err: fmt.Errorf("%w: bad srs", domain.ErrProjection)},
		}, nil)
		f.notifier.EXPECT().ExportCompleted(gomock.Any(), gomock.Any()).Return(nil)
		_, err = f.svc.Export(ctx, f.operator, s.ID)
		require.NoError(t, err)

		records, err = f.svc.History(ctx, f.operator, s.ID)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "ProjectionError", records[0].ErrorKind)
	})

	t.Run("reads the repository when configured", func(t *testing.T) {
		f := newFixture(t, fixtureOpts{withExports: true})
		s := f.openSession(t)
		want := []entity.ExportRecord{{ID: uuid.New(), SessionID: s.ID, TargetName: "pts"}}
		f.exports.EXPECT().ListBySession(gomock.Any(), s.ID).Return(want, nil)

		got, err := f.svc.History(context.Background(), f.operator, s.ID)

		require.NoError(t, err)
		assert.Equal(t, want, got)
	})
}

func TestService_Preview(t *testing.T) {
	f := newFixture(t, fixtureOpts{})
	s := f.openSession(t)
	f.finalize(t, s)

	png, err := f.svc.Preview(context.Background(), f.operator, s.ID, 64, 64)

	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), png[:4])
}

func TestService_ListAndDelete(t *testing.T) {
	f := newFixture(t, fixtureOpts{})
	s := f.openSession(t)
	ctx := context.Background()

	sessions, info, err := f.svc.List(ctx, session.ListInput{OperatorID: f.operator})
	require.NoError(t, err)
	assert.Len(t, sessions, 1)
	assert.Equal(t, 1, info.TotalItems)

	others, _, err := f.svc.List(ctx, session.ListInput{OperatorID: uuid.New()})
	require.NoError(t, err)
	assert.Empty(t, others)

	assert.ErrorIs(t, f.svc.Delete(ctx, uuid.New(), s.ID), domain.ErrForbidden)
	require.NoError(t, f.svc.Delete(ctx, f.operator, s.ID))

	_, err = f.svc.Get(ctx, f.operator, s.ID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestService_Sweep(t *testing.T) {
	f := newFixture(t, fixtureOpts{})
	s := f.openSession(t)
	ctx := context.Background()

	n, err := f.svc.Sweep(ctx, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = f.svc.Sweep(ctx, time.Now().Add(3*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = f.svc.Get(ctx, f.operator, s.ID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestService_RunSweeper(t *testing.T) {
	t.Run("non-positive interval disables sweeping", func(t *testing.T) {
		f := newFixture(t, fixtureOpts{})

		done := make(chan struct{})
		go func() {
			f.svc.RunSweeper(context.Background(), 0)
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("sweeper kept running with a zero interval")
		}
	})

	t.Run("stops when the context is done", func(t *testing.T) {
		f := newFixture(t, fixtureOpts{})
		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan struct{})
		go func() {
			f.svc.RunSweeper(ctx, time.Millisecond)
			close(done)
		}()
		cancel()

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("sweeper ignored cancellation")
		}
	})
}
