package session

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/marcos-nsantos/geocrop/internal/adapter/dataset"
	"github.com/marcos-nsantos/geocrop/internal/adapter/messaging"
	"github.com/marcos-nsantos/geocrop/internal/adapter/repository"
	"github.com/marcos-nsantos/geocrop/internal/adapter/storage"
	"github.com/marcos-nsantos/geocrop/internal/domain"
	"github.com/marcos-nsantos/geocrop/internal/domain/entity"
	"github.com/marcos-nsantos/geocrop/internal/domain/selection"
	"github.com/marcos-nsantos/geocrop/internal/domain/valueobject"
	"github.com/marcos-nsantos/geocrop/internal/infrastructure/mapview"
	"github.com/marcos-nsantos/geocrop/internal/infrastructure/preview"
	"github.com/marcos-nsantos/geocrop/internal/infrastructure/vectorstore"
	"github.com/marcos-nsantos/geocrop/internal/pkg/metrics"
	"github.com/marcos-nsantos/geocrop/internal/pkg/pagination"
)

//go:generate mockgen -source=service.go -destination=../../mocks/session_mocks.go -package=mocks

// Exporter runs a batch crop over targets sharing one box.
type Exporter interface {
	ExportAll(ctx context.Context, targets []*entity.CropTarget, box *valueobject.ExtentBox) ([]entity.TargetResult, error)
}

// BoxProjector reprojects a dataset extent for the map overlay.
type BoxProjector interface {
	ReprojectBox(box valueobject.ExtentBox, from, to valueobject.CRS) (valueobject.ExtentBox, error)
}

type Deps struct {
	Sessions repository.SessionRepository
	// Exports is optional; without it history comes from the last report.
	Exports  repository.ExportRepository
	Resolver dataset.Resolver
	Boxes    BoxProjector
	Exporter Exporter
	Notifier messaging.Notifier
	// Storage is optional; without it outputs stay where they were written.
	Storage storage.ObjectStorage
	Preview *preview.Renderer
	Logger  *zap.Logger
}

type Options struct {
	SessionTTL   time.Duration
	SignedURLTTL time.Duration
}

type Service struct {
	sessions repository.SessionRepository
	exports  repository.ExportRepository
	resolver dataset.Resolver
	boxes    BoxProjector
	exporter Exporter
	notifier messaging.Notifier
	storage  storage.ObjectStorage
	preview  *preview.Renderer
	logger   *zap.Logger
	opts     Options
}

func NewService(deps Deps, opts Options) *Service {
	s := &Service{
		sessions: deps.Sessions,
		exports:  deps.Exports,
		resolver: deps.Resolver,
		boxes:    deps.Boxes,
		exporter: deps.Exporter,
		notifier: deps.Notifier,
		storage:  deps.Storage,
		preview:  deps.Preview,
		logger:   deps.Logger,
		opts:     opts,
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.preview == nil {
		s.preview = preview.NewRenderer()
	}
	return s
}

type DatasetInput struct {
	Name       string
	Source     string
	OutputPath string
	Color      string
}

type CreateInput struct {
	OperatorID uuid.UUID
	Datasets   []DatasetInput
}

// Create opens every dataset once to learn its format, CRS and extent, and
// starts a session over them. All targets start selected.
func (s *Service) Create(ctx context.Context, input CreateInput) (*entity.Session, error) {
	if len(input.Datasets) == 0 {
		return nil, fmt.Errorf("%w: at least one dataset is required", domain.ErrInvalidInput)
	}

	targets := make([]*entity.CropTarget, 0, len(input.Datasets))
	for i, in := range input.Datasets {
		t, err := s.openTarget(ctx, i, in)
		if err != nil {
			return nil, err
		}
		targets = append(targets, t)
	}

	session := entity.NewSession(input.OperatorID, targets)
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}
	metrics.SessionsLive.Inc()

	s.logger.Info("session opened",
		zap.String("session_id", session.ID.String()),
		zap.Int("targets", len(targets)),
	)
	return session, nil
}

func (s *Service) openTarget(ctx context.Context, i int, in DatasetInput) (*entity.CropTarget, error) {
	if strings.TrimSpace(in.Source) == "" || strings.TrimSpace(in.OutputPath) == "" {
		return nil, fmt.Errorf("%w: dataset %d needs a source and an output path", domain.ErrInvalidInput, i)
	}

	name := in.Name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(in.Source), filepath.Ext(in.Source))
	}

	c := entity.PaletteColor(i)
	if in.Color != "" {
		parsed, err := entity.ParseColorHex(in.Color)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
		}
		c = parsed
	}

	store, err := s.resolver.StoreFor(in.Source)
	if err != nil {
		return nil, fmt.Errorf("opening %q: %w", name, err)
	}
	ds, err := store.Read(ctx, in.Source)
	if err != nil {
		return nil, fmt.Errorf("opening %q: %w", name, err)
	}

	t := entity.NewCropTarget(name, in.Source, in.OutputPath, c)
	t.Format = store.Format()
	t.NativeCRS = ds.CRS

	if extent, ok := ds.Extent(); ok && !ds.CRS.IsZero() {
		working, err := s.boxes.ReprojectBox(extent, ds.CRS, valueobject.WGS84)
		if err != nil {
			s.logger.Warn("dataset extent not projectable",
				zap.String("target", name),
				zap.String("crs", ds.CRS.String()),
				zap.Error(err),
			)
		} else {
			t.Extent = &working
		}
	}
	return t, nil
}

type ListInput struct {
	OperatorID uuid.UUID
	Page       int
	PerPage    int
}

func (s *Service) List(ctx context.Context, input ListInput) ([]*entity.Session, *pagination.Info, error) {
	sessions, info, err := s.sessions.List(ctx, input.OperatorID, pagination.NewParams(input.Page, input.PerPage))
	if err != nil {
		return nil, nil, fmt.Errorf("listing sessions: %w", err)
	}
	return sessions, info, nil
}

// Get returns a session owned by operatorID, open or closed.
func (s *Service) Get(ctx context.Context, operatorID, sessionID uuid.UUID) (*entity.Session, error) {
	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.OperatorID != operatorID {
		return nil, domain.ErrForbidden
	}
	return session, nil
}

// open is Get for operations that mutate the session. Closed sessions are
// gone as far as those are concerned.
func (s *Service) open(ctx context.Context, operatorID, sessionID uuid.UUID) (*entity.Session, error) {
	session, err := s.Get(ctx, operatorID, sessionID)
	if err != nil {
		return nil, err
	}
	session.Lock()
	closed := session.IsClosed()
	session.Unlock()
	if closed {
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

// PixelPoint is a click on the map in screen pixels.
type PixelPoint struct {
	X, Y     float64
	Viewport mapview.Viewport
}

// PointInput carries either a geographic point or a pixel click.
type PointInput struct {
	Point *valueobject.GeoPoint
	Pixel *PixelPoint
}

type SelectionView struct {
	State  selection.State
	Buffer []valueobject.GeoPoint
	Box    *valueobject.ExtentBox
}

func (s *Service) RegisterPoint(ctx context.Context, operatorID, sessionID uuid.UUID, input PointInput) (*SelectionView, error) {
	p, err := resolvePoint(input)
	if err != nil {
		return nil, err
	}

	session, err := s.open(ctx, operatorID, sessionID)
	if err != nil {
		return nil, err
	}

	session.Lock()
	if session.IsClosed() {
		session.Unlock()
		return nil, domain.ErrSessionNotFound
	}
	before := session.Selection.State()
	box, finalized := session.Selection.Register(p)
	session.Touch()
	view := selectionView(session.Selection)
	targets := append([]*entity.CropTarget(nil), session.Targets...)
	session.Unlock()

	switch {
	case finalized:
		s.notify("selection finalized", session.ID, s.notifier.SelectionFinalized(ctx, session.ID, box, targets))
	case before == selection.StateFinalized:
		s.notify("selection cleared", session.ID, s.notifier.SelectionCleared(ctx, session.ID))
	}

	return view, nil
}

func resolvePoint(input PointInput) (valueobject.GeoPoint, error) {
	switch {
	case input.Point != nil:
		if !input.Point.IsValid() {
			return valueobject.GeoPoint{}, fmt.Errorf("%w: %v", domain.ErrInvalidPoint, *input.Point)
		}
		return *input.Point, nil
	case input.Pixel != nil:
		return input.Pixel.Viewport.PixelToGeo(input.Pixel.X, input.Pixel.Y)
	default:
		return valueobject.GeoPoint{}, fmt.Errorf("%w: no point given", domain.ErrInvalidPoint)
	}
}

func selectionView(m *selection.Machine) *SelectionView {
	view := &SelectionView{State: m.State(), Buffer: m.Buffer()}
	if box, ok := m.Box(); ok {
		view.Box = &box
	}
	return view
}

// Reset discards the selection and every target's crop.
func (s *Service) Reset(ctx context.Context, operatorID, sessionID uuid.UUID) (*SelectionView, error) {
	session, err := s.open(ctx, operatorID, sessionID)
	if err != nil {
		return nil, err
	}

	session.Lock()
	session.Selection.Reset()
	session.Touch()
	view := selectionView(session.Selection)
	session.Unlock()

	s.notify("selection cleared", session.ID, s.notifier.SelectionCleared(ctx, session.ID))
	return view, nil
}

// Selection reports the current selection state.
func (s *Service) Selection(ctx context.Context, operatorID, sessionID uuid.UUID) (*SelectionView, error) {
	session, err := s.Get(ctx, operatorID, sessionID)
	if err != nil {
		return nil, err
	}
	session.Lock()
	defer session.Unlock()
	return selectionView(session.Selection), nil
}

func (s *Service) SetSelected(ctx context.Context, operatorID, sessionID, targetID uuid.UUID, selected bool) (*entity.CropTarget, error) {
	session, err := s.open(ctx, operatorID, sessionID)
	if err != nil {
		return nil, err
	}

	session.Lock()
	defer session.Unlock()

	target, err := session.Target(targetID)
	if err != nil {
		return nil, err
	}
	target.Selected = selected
	session.Touch()
	return target, nil
}

// Export crops every selected target with the finalized box and closes the
// session. Per-target failures live in the report; the returned error is
// only for failures that stop the whole batch.
func (s *Service) Export(ctx context.Context, operatorID, sessionID uuid.UUID) (*entity.ExportReport, error) {
	session, err := s.open(ctx, operatorID, sessionID)
	if err != nil {
		return nil, err
	}

	session.Lock()
	defer session.Unlock()

	if session.IsClosed() {
		return nil, domain.ErrSessionNotFound
	}

	box, ok := session.Selection.Box()
	if !ok {
		return nil, domain.ErrInvalidSelection
	}

	report := &entity.ExportReport{
		SessionID: session.ID,
		Box:       box,
		StartedAt: time.Now().UTC(),
	}

	// Once started, the batch runs over every target even if the caller
	// goes away.
	ctx = context.WithoutCancel(ctx)

	results, err := s.exporter.ExportAll(ctx, session.SelectedTargets(), &box)
	if err != nil {
		return nil, fmt.Errorf("exporting session: %w", err)
	}
	if s.storage != nil {
		for i := range results {
			s.publish(ctx, session.ID, &results[i])
		}
	}
	report.Results = results
	report.FinishedAt = time.Now().UTC()

	session.LastReport = report
	session.Close()

	s.logger.Info("session exported",
		zap.String("session_id", session.ID.String()),
		zap.Int("succeeded", len(report.Succeeded())),
		zap.Int("failed", len(report.Failed())),
		zap.Duration("duration", report.FinishedAt.Sub(report.StartedAt)),
	)

	s.notify("export completed", session.ID, s.notifier.ExportCompleted(ctx, report))
	if s.exports != nil {
		if err := s.exports.CreateBatch(ctx, Records(report)); err != nil {
			s.logger.Warn("export history not saved", zap.String("session_id", session.ID.String()), zap.Error(err))
		}
	}

	return report, nil
}

// publish uploads the files of a successful result. A failed upload keeps
// the local output and is recorded in PublishErr.
func (s *Service) publish(ctx context.Context, sessionID uuid.UUID, res *entity.TargetResult) {
	if !res.Succeeded() || len(res.Files) == 0 {
		return
	}

	var uploaded []string
	for _, file := range res.Files {
		if strings.HasPrefix(file, vectorstore.PostGISPrefix) {
			continue
		}
		key := s.storage.Key(sessionID.String(), res.TargetID.String(), filepath.Base(file))
		if err := uploadFile(ctx, s.storage, key, file); err != nil {
			res.PublishErr = err
			break
		}
		uploaded = append(uploaded, key)
	}

	if res.PublishErr != nil {
		for _, key := range uploaded {
			if err := s.storage.Delete(ctx, key); err != nil {
				s.logger.Warn("removing partial upload", zap.String("key", key), zap.Error(err))
			}
		}
		s.logger.Warn("publishing output failed",
			zap.String("target_id", res.TargetID.String()),
			zap.Error(res.PublishErr),
		)
		return
	}

	for _, key := range uploaded {
		url, err := s.objectURL(ctx, key)
		if err != nil {
			res.PublishErr = err
			return
		}
		res.PublishedURLs = append(res.PublishedURLs, url)
	}
}

func (s *Service) objectURL(ctx context.Context, key string) (string, error) {
	if s.opts.SignedURLTTL > 0 {
		return s.storage.GetSignedURL(ctx, key, s.opts.SignedURLTTL)
	}
	return s.storage.GetURL(key), nil
}

// History lists the recorded exports of a session.
func (s *Service) History(ctx context.Context, operatorID, sessionID uuid.UUID) ([]entity.ExportRecord, error) {
	session, err := s.Get(ctx, operatorID, sessionID)
	if err != nil {
		return nil, err
	}
	if s.exports != nil {
		records, err := s.exports.ListBySession(ctx, session.ID)
		if err != nil {
			return nil, fmt.Errorf("listing export history: %w", err)
		}
		return records, nil
	}

	session.Lock()
	defer session.Unlock()
	if session.LastReport == nil {
		return nil, nil
	}
	return Records(session.LastReport), nil
}

// Preview renders the targets' extents with the finalized box, or with the
// exported box once the session is closed.
func (s *Service) Preview(ctx context.Context, operatorID, sessionID uuid.UUID, width, height int) ([]byte, error) {
	session, err := s.Get(ctx, operatorID, sessionID)
	if err != nil {
		return nil, err
	}

	session.Lock()
	var crop *valueobject.ExtentBox
	if box, ok := session.Selection.Box(); ok {
		crop = &box
	} else if session.LastReport != nil {
		box := session.LastReport.Box
		crop = &box
	}
	targets := append([]*entity.CropTarget(nil), session.Targets...)
	session.Unlock()

	return s.preview.Render(targets, crop, width, height)
}

func (s *Service) Delete(ctx context.Context, operatorID, sessionID uuid.UUID) error {
	session, err := s.Get(ctx, operatorID, sessionID)
	if err != nil {
		return err
	}
	if err := s.sessions.Delete(ctx, session.ID); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	metrics.SessionsLive.Dec()
	return nil
}

// Sweep drops sessions idle for longer than the session TTL.
func (s *Service) Sweep(ctx context.Context, now time.Time) (int, error) {
	if s.opts.SessionTTL <= 0 {
		return 0, nil
	}
	n, err := s.sessions.DeleteIdleSince(ctx, now.Add(-s.opts.SessionTTL))
	if err != nil {
		return 0, fmt.Errorf("sweeping sessions: %w", err)
	}
	if n > 0 {
		metrics.SessionsLive.Sub(float64(n))
		s.logger.Info("idle sessions removed", zap.Int("count", n))
	}
	return n, nil
}

// RunSweeper calls Sweep every interval until ctx is done. A non-positive
// interval disables sweeping.
func (s *Service) RunSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if _, err := s.Sweep(ctx, now); err != nil && !errors.Is(err, context.Canceled) {
				s.logger.Error("session sweep failed", zap.Error(err))
			}
		}
	}
}

func (s *Service) notify(event string, sessionID uuid.UUID, err error) {
	if err != nil {
		s.logger.Warn("notification failed",
			zap.String("event", event),
			zap.String("session_id", sessionID.String()),
			zap.Error(err),
		)
	}
}
