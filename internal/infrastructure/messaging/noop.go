package messaging

import (
	"context"

	"github.com/google/uuid"

	"github.com/marcos-nsantos/geocrop/internal/domain/entity"
	"github.com/marcos-nsantos/geocrop/internal/domain/valueobject"
)

// Noop drops every event. Used when no broker is configured.
type Noop struct{}

func (Noop) SelectionFinalized(context.Context, uuid.UUID, valueobject.ExtentBox, []*entity.CropTarget) error {
	return nil
}

func (Noop) SelectionCleared(context.Context, uuid.UUID) error { return nil }

func (Noop) ExportCompleted(context.Context, *entity.ExportReport) error { return nil }
