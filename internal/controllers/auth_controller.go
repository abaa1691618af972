package controllers

import (
	"net/http"

	"github.com/AbdellahHatouchi/property-management/internal/dtos"
	"github.com/AbdellahHatouchi/property-management/internal/services"
	"github.com/AbdellahHatouchi/property-management/pkg/utils"
)

type AuthController struct {
	authService         *services.AuthService
	verificationService *services.VerificationService
}

func NewAuthController(authService *services.AuthService, verificationService *services.VerificationService) *AuthController {
	return &AuthController{authService: authService, verificationService: verificationService}
}

// POST /api/auth/register
func (c *AuthController) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.RegisterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	user, err := c.authService.Register(r.Context(), req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, user)
}

// POST /api/auth/login
func (c *AuthController) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	resp, err := c.authService.Login(r.Context(), req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// POST /api/auth/verify-email
func (c *AuthController) VerifyEmailHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.VerifyEmailRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	if err := c.verificationService.Verify(r.Context(), req.Email, req.OTP); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.MessageResponse{Message: "Email verified successfully"})
}

// POST /api/auth/resend-email
func (c *AuthController) ResendEmailHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	if err := c.verificationService.Resend(r.Context(), userID); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.MessageResponse{Message: "Verification email sent successfully."})
}
