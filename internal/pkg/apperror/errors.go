package apperror

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/marcos-nsantos/geocrop/internal/domain"
)

type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Err        error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

func NotFound(resource string) *AppError {
	return &AppError{
		Code:       "NOT_FOUND",
		Message:    fmt.Sprintf("%s not found", resource),
		StatusCode: http.StatusNotFound,
	}
}

func BadRequest(message string) *AppError {
	return &AppError{
		Code:       "BAD_REQUEST",
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func Unauthorized(message string) *AppError {
	return &AppError{
		Code:       "UNAUTHORIZED",
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

func Forbidden(message string) *AppError {
	return &AppError{
		Code:       "FORBIDDEN",
		Message:    message,
		StatusCode: http.StatusForbidden,
	}
}

func Conflict(message string) *AppError {
	return &AppError{
		Code:       "CONFLICT",
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

func Internal(err error) *AppError {
	return &AppError{
		Code:       "INTERNAL_ERROR",
		Message:    "an internal error occurred",
		StatusCode: http.StatusInternalServerError,
		Err:        err,
	}
}

func Wrap(err error, message string) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return &AppError{
			Code:       appErr.Code,
			Message:    message,
			StatusCode: appErr.StatusCode,
			Err:        err,
		}
	}
	return Internal(fmt.Errorf("%s: %w", message, err))
}

func Is(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

func StatusCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

func UnprocessableEntity(code, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: http.StatusUnprocessableEntity,
	}
}

// FromDomain maps domain sentinel errors onto HTTP errors. Anything it does
// not recognize becomes an internal error.
func FromDomain(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var mapped *AppError
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		mapped = NotFound("session")
	case errors.Is(err, domain.ErrTargetNotFound):
		mapped = NotFound("crop target")
	case errors.Is(err, domain.ErrForbidden):
		mapped = Forbidden("access denied")
	case errors.Is(err, domain.ErrInvalidCredentials):
		mapped = New("INVALID_CREDENTIALS", "invalid name or password", http.StatusUnauthorized)
	case errors.Is(err, domain.ErrTokenInvalid), errors.Is(err, domain.ErrUnauthorized):
		mapped = Unauthorized("invalid or expired token")
	case errors.Is(err, domain.ErrInvalidSelection):
		mapped = UnprocessableEntity("INVALID_SELECTION", "no finalized crop selection; register two points first")
	case errors.Is(err, domain.ErrInvalidPoint):
		mapped = New("INVALID_POINT", err.Error(), http.StatusBadRequest)
	case errors.Is(err, domain.ErrInvalidInput):
		mapped = BadRequest(err.Error())
	case errors.Is(err, domain.ErrUnsupportedFormat):
		mapped = New("UNSUPPORTED_FORMAT", err.Error(), http.StatusBadRequest)
	case errors.Is(err, domain.ErrProjection):
		mapped = UnprocessableEntity("PROJECTION_ERROR", err.Error())
	case errors.Is(err, domain.ErrIO), errors.Is(err, domain.ErrUnsupportedGeometry):
		mapped = UnprocessableEntity("DATASET_IO_ERROR", err.Error())
	case errors.Is(err, domain.ErrOutputExists):
		mapped = Conflict(err.Error())
	default:
		return Internal(err)
	}
	mapped.Err = err
	return mapped
}
