package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/marcos-nsantos/geocrop/internal/domain"
	"github.com/marcos-nsantos/geocrop/internal/domain/entity"
	"github.com/marcos-nsantos/geocrop/internal/infrastructure/auth"
)

type Service struct {
	operator       *entity.Operator
	jwtSvc         *auth.JWTService
	passwordHasher *auth.PasswordHasher
}

func NewService(operator *entity.Operator, jwtSvc *auth.JWTService, passwordHasher *auth.PasswordHasher) *Service {
	return &Service{
		operator:       operator,
		jwtSvc:         jwtSvc,
		passwordHasher: passwordHasher,
	}
}

type Token struct {
	AccessToken string
	ExpiresAt   time.Time
}

type LoginInput struct {
	Name     string
	Password string
}

func (s *Service) Login(ctx context.Context, input LoginInput) (*Token, *entity.Operator, error) {
	nameOK := subtle.ConstantTimeCompare([]byte(input.Name), []byte(s.operator.Name)) == 1
	// The hash is always compared so a wrong name costs as much as a wrong
	// password.
	passErr := s.passwordHasher.Compare(s.operator.PasswordHash, input.Password)
	if !nameOK || passErr != nil {
		return nil, nil, domain.ErrInvalidCredentials
	}

	accessToken, expiresAt, err := s.jwtSvc.GenerateAccessToken(s.operator.ID, s.operator.Name)
	if err != nil {
		return nil, nil, fmt.Errorf("generating access token: %w", err)
	}

	return &Token{AccessToken: accessToken, ExpiresAt: expiresAt}, s.operator, nil
}
