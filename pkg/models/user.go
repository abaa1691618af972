package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	Versioned

	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	PasswordHash  string     `json:"-"`
	PhoneNumber   string     `json:"phoneNumber"`
	EmailVerified *time.Time `json:"emailVerified,omitempty"`
	ShowAPIDoc    bool       `json:"showAPIDoc"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

func (u *User) GetID() string { return u.ID.String() }
