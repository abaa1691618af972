package models

import (
	"time"

	"github.com/google/uuid"
)

type TokenType string

const TokenTypeEmail TokenType = "EMAIL"

type VerificationToken struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	OTPToken  string    `json:"-"`
	Type      TokenType `json:"type"`
	Expires   time.Time `json:"expires"`
	CreatedAt time.Time `json:"createdAt"`
}
