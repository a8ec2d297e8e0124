package domain

import "errors"

var (
	ErrInvalidSelection    = errors.New("no finalized crop selection")
	ErrInvalidInput        = errors.New("invalid input")
	ErrInvalidPoint        = errors.New("invalid point")
	ErrProjection          = errors.New("projection error")
	ErrIO                  = errors.New("dataset i/o error")
	ErrUnsupportedFormat   = errors.New("unsupported dataset format")
	ErrUnsupportedGeometry = errors.New("unsupported geometry type")
	ErrOutputExists        = errors.New("output dataset already exists")
	ErrSessionNotFound     = errors.New("session not found")
	ErrTargetNotFound      = errors.New("crop target not found")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrTokenInvalid        = errors.New("token invalid")
)
