package models

import (
	"time"

	"github.com/google/uuid"
)

type Unit struct {
	ID          uuid.UUID `json:"id"`
	PropertyID  uuid.UUID `json:"propertyId"`
	Number      string    `json:"number"`
	IsAvailable bool      `json:"isAvailable"`
	CreatedAt   time.Time `json:"createdAt"`
}
