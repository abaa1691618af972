package models

import (
	"time"

	"github.com/google/uuid"
)

// Business is the partition key for properties, tenants and rentals.
type Business struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
