package models

import (
	"time"

	"github.com/google/uuid"
)

type Tenant struct {
	Versioned

	ID            uuid.UUID `json:"id"`
	BusinessID    uuid.UUID `json:"businessId"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	CINOrPassport string    `json:"cinOrPassport"`
	IsTourist     bool      `json:"isTourist"`
	DateOfBirth   time.Time `json:"dateOfBirth"`
	PhoneNumber   string    `json:"phoneNumber"`
	Address       string    `json:"address"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (t *Tenant) GetID() string { return t.ID.String() }
