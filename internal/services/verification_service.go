package services

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AbdellahHatouchi/property-management/internal/config"
	"github.com/AbdellahHatouchi/property-management/internal/constants"
	internal_utils "github.com/AbdellahHatouchi/property-management/internal/utils"
	"github.com/AbdellahHatouchi/property-management/pkg/models"
	"github.com/AbdellahHatouchi/property-management/pkg/repositories"
	"github.com/AbdellahHatouchi/property-management/pkg/utils"
)

// VerificationService issues and checks the email OTPs. A user holds at
// most one live code; issuing a new one drops the previous.
type VerificationService struct {
	cfg    *config.Config
	users  repositories.UserRepository
	tokens repositories.VerificationTokenRepository
	mailer Mailer
	now    func() time.Time
}

func NewVerificationService(
	cfg *config.Config,
	users repositories.UserRepository,
	tokens repositories.VerificationTokenRepository,
	mailer Mailer,
) *VerificationService {
	return &VerificationService{cfg: cfg, users: users, tokens: tokens, mailer: mailer, now: time.Now}
}

// SendCode replaces any outstanding code for email and mails a fresh one.
func (s *VerificationService) SendCode(ctx context.Context, email string) error {
	existing, err := s.tokens.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		if err := s.tokens.Delete(ctx, existing.ID); err != nil {
			return err
		}
	}

	token := &models.VerificationToken{
		ID:       uuid.New(),
		Email:    email,
		OTPToken: utils.RandomNumericString(constants.OTPLength),
		Type:     models.TokenTypeEmail,
		Expires:  s.now().Add(constants.OTPTTL),
	}
	if err := s.tokens.Create(ctx, token); err != nil {
		return err
	}

	return s.mailer.Send(ctx, verificationMessage(s.cfg.OrganizationName, email, token.OTPToken))
}

// Resend mails a new code to the authenticated user.
func (s *VerificationService) Resend(ctx context.Context, userID uuid.UUID) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return internalError(err)
	}
	if user == nil {
		return &utils.AppError{
			StatusCode: http.StatusForbidden,
			Code:       utils.ErrCodeUnauthenticated,
			Message:    "Unauthenticated",
		}
	}
	if err := s.SendCode(ctx, user.Email); err != nil {
		return &utils.AppError{
			StatusCode: http.StatusInternalServerError,
			Code:       utils.ErrCodeExternalServiceFailure,
			Message:    "Failed to send verification email. Please try again later.",
			Err:        err,
		}
	}
	return nil
}

// Verify consumes a matching, unexpired code and stamps emailVerified.
func (s *VerificationService) Verify(ctx context.Context, email, otp string) error {
	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return internalError(err)
	}
	if user == nil {
		return &utils.AppError{
			StatusCode: http.StatusForbidden,
			Code:       utils.ErrCodeUnauthorized,
			Message:    "Invalid User",
		}
	}

	token, err := s.tokens.Get(ctx, user.Email, otp, models.TokenTypeEmail)
	if err != nil {
		return internalError(err)
	}
	now := s.now()
	if token == nil || !token.Expires.After(now) {
		return &utils.AppError{
			StatusCode: http.StatusBadRequest,
			Code:       utils.ErrCodeInvalidOTP,
			Message:    "Invalid OTP Code",
			Err:        internal_utils.ErrInvalidOTP,
		}
	}

	if err := s.tokens.Delete(ctx, token.ID); err != nil {
		return internalError(err)
	}
	if err := s.users.MarkEmailVerified(ctx, user.ID, now); err != nil {
		return asAppError(err)
	}
	return nil
}
