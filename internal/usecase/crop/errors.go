package crop

import (
	"errors"

	"github.com/marcos-nsantos/geocrop/internal/domain"
)

// Error kinds reported per target.
const (
	KindInvalidSelection = "InvalidSelection"
	KindProjection       = "ProjectionError"
	KindIO               = "IOError"
	KindUnknown          = "Error"
)

// ErrorKind classifies err for export reports. It returns "" for nil.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, domain.ErrInvalidSelection):
		return KindInvalidSelection
	case errors.Is(err, domain.ErrProjection):
		return KindProjection
	case errors.Is(err, domain.ErrIO),
		errors.Is(err, domain.ErrUnsupportedFormat),
		errors.Is(err, domain.ErrUnsupportedGeometry),
		errors.Is(err, domain.ErrOutputExists):
		return KindIO
	default:
		return KindUnknown
	}
}
