package handler

import (
	"context"

	"github.com/google/uuid"

	"github.com/marcos-nsantos/geocrop/internal/domain/entity"
	"github.com/marcos-nsantos/geocrop/internal/pkg/pagination"
	"github.com/marcos-nsantos/geocrop/internal/usecase/auth"
	"github.com/marcos-nsantos/geocrop/internal/usecase/session"
)

//go:generate mockgen -source=interfaces.go -destination=../../mocks/handler_mocks.go -package=mocks

type AuthService interface {
	Login(ctx context.Context, input auth.LoginInput) (*auth.Token, *entity.Operator, error)
}

type SessionService interface {
	Create(ctx context.Context, input session.CreateInput) (*entity.Session, error)
	List(ctx context.Context, input session.ListInput) ([]*entity.Session, *pagination.Info, error)
	Get(ctx context.Context, operatorID, sessionID uuid.UUID) (*entity.Session, error)
	Delete(ctx context.Context, operatorID, sessionID uuid.UUID) error
	RegisterPoint(ctx context.Context, operatorID, sessionID uuid.UUID, input session.PointInput) (*session.SelectionView, error)
	Reset(ctx context.Context, operatorID, sessionID uuid.UUID) (*session.SelectionView, error)
	Selection(ctx context.Context, operatorID, sessionID uuid.UUID) (*session.SelectionView, error)
	SetSelected(ctx context.Context, operatorID, sessionID, targetID uuid.UUID, selected bool) (*entity.CropTarget, error)
	Export(ctx context.Context, operatorID, sessionID uuid.UUID) (*entity.ExportReport, error)
	History(ctx context.Context, operatorID, sessionID uuid.UUID) ([]entity.ExportRecord, error)
	Preview(ctx context.Context, operatorID, sessionID uuid.UUID, width, height int) ([]byte, error)
}
