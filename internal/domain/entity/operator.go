package entity

import (
	"github.com/google/uuid"
)

// Operator is the person driving crop sessions. Operators are configured,
// not stored; the ID is derived from the name so tokens survive restarts.
type Operator struct {
	ID           uuid.UUID
	Name         string
	PasswordHash string
}

func NewOperator(name, passwordHash string) *Operator {
	return &Operator{
		ID:           uuid.NewSHA1(uuid.NameSpaceOID, []byte("geocrop-operator:"+name)),
		Name:         name,
		PasswordHash: passwordHash,
	}
}
