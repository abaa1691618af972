package dtos

type TenantRequest struct {
	Name          string `json:"name" validate:"required,min=3"`
	Email         string `json:"email" validate:"required,email"`
	CINOrPassport string `json:"cinOrPassport" validate:"required,min=4"`
	IsTourist     bool   `json:"isTourist"`
	DateOfBirth   string `json:"dateOfBirth" validate:"required"`
	PhoneNumber   string `json:"phoneNumber" validate:"required,min=4"`
	Address       string `json:"address" validate:"required"`
}
