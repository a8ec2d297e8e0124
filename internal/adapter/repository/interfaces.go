package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/marcos-nsantos/geocrop/internal/domain/entity"
	"github.com/marcos-nsantos/geocrop/internal/pkg/pagination"
)

//go:generate mockgen -source=interfaces.go -destination=../../mocks/repository_mocks.go -package=mocks

// SessionRepository keeps live crop sessions. Sessions are never written to
// durable storage.
type SessionRepository interface {
	Create(ctx context.Context, session *entity.Session) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Session, error)
	List(ctx context.Context, operatorID uuid.UUID, params pagination.Params) ([]*entity.Session, *pagination.Info, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// DeleteIdleSince drops sessions not updated after cutoff and returns
	// how many were removed.
	DeleteIdleSince(ctx context.Context, cutoff time.Time) (int, error)
}

// ExportRepository keeps the history of finished exports.
type ExportRepository interface {
	CreateBatch(ctx context.Context, records []entity.ExportRecord) error
	ListBySession(ctx context.Context, sessionID uuid.UUID) ([]entity.ExportRecord, error)
}
