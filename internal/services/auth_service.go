package services

import (
	"context"
	"crypto/rsa"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/AbdellahHatouchi/property-management/internal/config"
	"github.com/AbdellahHatouchi/property-management/internal/dtos"
	"github.com/AbdellahHatouchi/property-management/pkg/middleware"
	"github.com/AbdellahHatouchi/property-management/pkg/models"
	"github.com/AbdellahHatouchi/property-management/pkg/repositories"
	"github.com/AbdellahHatouchi/property-management/pkg/utils"
)

type AuthService struct {
	cfg          *config.Config
	users        repositories.UserRepository
	verification *VerificationService
}

func NewAuthService(
	cfg *config.Config,
	users repositories.UserRepository,
	verification *VerificationService,
) *AuthService {
	return &AuthService{cfg: cfg, users: users, verification: verification}
}

// Register creates the account and mails the first verification code. A
// failed mail does not fail the registration; the user can resend.
func (s *AuthService) Register(ctx context.Context, req dtos.RegisterRequest) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, internalError(err)
	}
	if existing != nil {
		return nil, conflict("Email already in use!", utils.ErrEmailExists)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, internalError(err)
	}

	user := &models.User{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if utils.IsUniqueViolation(err) {
			return nil, conflict("Email already in use!", utils.ErrEmailExists)
		}
		return nil, internalError(err)
	}
	user.RowVersion = 1

	if err := s.verification.SendCode(ctx, user.Email); err != nil {
		utils.Logger.WithError(err).Warnf("Failed to send verification code to %s", user.Email)
	}
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, req dtos.LoginRequest) (*dtos.LoginResponse, error) {
	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		return nil, internalError(err)
	}
	if user == nil || user.PasswordHash == "" || !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, &utils.AppError{
			StatusCode: http.StatusUnauthorized,
			Code:       utils.ErrCodeInvalidCredentials,
			Message:    "Invalid credentials!",
		}
	}

	token, err := GenerateAccessToken(s.cfg.RSAPrivateKey, user.ID, s.cfg.AccessTokenTTL)
	if err != nil {
		return nil, internalError(err)
	}
	return &dtos.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.cfg.AccessTokenTTL.Seconds()),
		User:        user,
	}, nil
}

// GenerateAccessToken signs an RS256 token the auth middleware accepts.
func GenerateAccessToken(key *rsa.PrivateKey, userID uuid.UUID, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"iss": middleware.TokenIssuer,
		"sub": userID.String(),
		"exp": now.Add(ttl).Unix(),
		"iat": now.Unix(),
		"jti": uuid.NewString(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	return token.SignedString(key)
}
