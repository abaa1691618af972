package dtos

import "github.com/AbdellahHatouchi/property-management/pkg/models"

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=3"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken string       `json:"accessToken"`
	TokenType   string       `json:"tokenType"`
	ExpiresIn   int64        `json:"expiresIn"`
	User        *models.User `json:"user"`
}

type VerifyEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required,len=6,numeric"`
}

type UpdateUserInfoRequest struct {
	Name        string `json:"name" validate:"omitempty,min=3"`
	Email       string `json:"email" validate:"omitempty,email"`
	PhoneNumber string `json:"phoneNumber" validate:"omitempty,min=4"`
}

type SettingRequest struct {
	ShowAPIDoc *bool `json:"showAPIDoc" validate:"required"`
}

type CreateBusinessRequest struct {
	Name string `json:"name" validate:"required"`
}
