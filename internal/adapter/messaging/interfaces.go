package messaging

import (
	"context"

	"github.com/google/uuid"

	"github.com/marcos-nsantos/geocrop/internal/domain/entity"
	"github.com/marcos-nsantos/geocrop/internal/domain/valueobject"
)

//go:generate mockgen -source=interfaces.go -destination=../../mocks/messaging_mocks.go -package=mocks

// Notifier is the visual feedback channel. Nothing in a session depends on
// what a Notifier does with the events.
type Notifier interface {
	SelectionFinalized(ctx context.Context, sessionID uuid.UUID, box valueobject.ExtentBox, targets []*entity.CropTarget) error
	SelectionCleared(ctx context.Context, sessionID uuid.UUID) error
	ExportCompleted(ctx context.Context, report *entity.ExportReport) error
}
