package entity

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/marcos-nsantos/geocrop/internal/domain"
	"github.com/marcos-nsantos/geocrop/internal/domain/selection"
	"github.com/marcos-nsantos/geocrop/internal/domain/valueobject"
)

type SessionStatus string

const (
	SessionOpen   SessionStatus = "open"
	SessionClosed SessionStatus = "closed"
)

const (
	DefaultZoom = 10
	MinZoom     = 1
	MaxZoom     = 24
)

// Session is one interactive crop: a set of targets sharing a single
// selection. Callers serialize access with Lock/Unlock.
type Session struct {
	ID         uuid.UUID
	OperatorID uuid.UUID
	Targets    []*CropTarget
	Selection  *selection.Machine
	Status     SessionStatus
	LastReport *ExportReport
	CreatedAt  time.Time
	UpdatedAt  time.Time
	ClosedAt   *time.Time

	mu sync.Mutex
}

func NewSession(operatorID uuid.UUID, targets []*CropTarget) *Session {
	now := time.Now().UTC()
	s := &Session{
		ID:         uuid.New(),
		OperatorID: operatorID,
		Targets:    targets,
		Status:     SessionOpen,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	s.Selection = selection.NewMachine(targetCropSync{session: s})
	return s
}

func (s *Session) Lock()   { s.mu.Lock() }
func (s *Session) Unlock() { s.mu.Unlock() }

// TryLock reports whether the session lock was free and is now held.
func (s *Session) TryLock() bool { return s.mu.TryLock() }

func (s *Session) Touch() {
	s.UpdatedAt = time.Now().UTC()
}

func (s *Session) Close() {
	now := time.Now().UTC()
	s.Status = SessionClosed
	s.ClosedAt = &now
	s.UpdatedAt = now
}

func (s *Session) IsClosed() bool {
	return s.Status == SessionClosed
}

func (s *Session) Target(id uuid.UUID) (*CropTarget, error) {
	for _, t := range s.Targets {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, domain.ErrTargetNotFound
}

func (s *Session) SelectedTargets() []*CropTarget {
	var out []*CropTarget
	for _, t := range s.Targets {
		if t.Selected {
			out = append(out, t)
		}
	}
	return out
}

// Viewport is where the map opens: the max corner of the last target's
// extent, or the origin when no extent is known.
func (s *Session) Viewport() (valueobject.GeoPoint, int) {
	center := valueobject.GeoPoint{}
	for _, t := range s.Targets {
		if t.Extent != nil {
			center = t.Extent.Max
		}
	}
	return center, DefaultZoom
}

// targetCropSync mirrors the shared selection onto every target.
type targetCropSync struct {
	session *Session
}

func (o targetCropSync) SelectionFinalized(box valueobject.ExtentBox) {
	for _, t := range o.session.Targets {
		t.SetCrop(box)
	}
}

func (o targetCropSync) SelectionDiscarded() {
	ResetAll(o.session.Targets)
}

// ResetAll clears the current crop of every target.
func ResetAll(targets []*CropTarget) {
	for _, t := range targets {
		t.ClearCrop()
	}
}
