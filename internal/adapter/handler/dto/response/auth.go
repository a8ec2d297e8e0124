package response

import (
	"time"

	"github.com/google/uuid"
)

type OperatorResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type LoginResponse struct {
	Operator    OperatorResponse `json:"operator"`
	AccessToken string           `json:"access_token"`
	ExpiresAt   time.Time        `json:"expires_at"`
}
