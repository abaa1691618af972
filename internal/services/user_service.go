package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/AbdellahHatouchi/property-management/internal/dtos"
	"github.com/AbdellahHatouchi/property-management/pkg/models"
	"github.com/AbdellahHatouchi/property-management/pkg/repositories"
	"github.com/AbdellahHatouchi/property-management/pkg/utils"
)

type UserService struct {
	users repositories.UserRepository
}

func NewUserService(users repositories.UserRepository) *UserService {
	return &UserService{users: users}
}

// UpdateInfo applies the non-empty fields of req.
func (s *UserService) UpdateInfo(ctx context.Context, userID uuid.UUID, req dtos.UpdateUserInfoRequest) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email != "" {
		other, err := s.users.GetByEmail(ctx, email)
		if err != nil {
			return nil, internalError(err)
		}
		if other != nil && other.ID != userID {
			return nil, conflict("Email already in use!", utils.ErrEmailExists)
		}
	}

	err := s.users.UpdateWithRetry(ctx, userID, func(u *models.User) error {
		if name := strings.TrimSpace(req.Name); name != "" {
			u.Name = name
		}
		if email != "" {
			u.Email = email
		}
		if req.PhoneNumber != "" {
			u.PhoneNumber = req.PhoneNumber
		}
		return nil
	})
	if err != nil {
		return nil, asAppError(err)
	}
	return s.reload(ctx, userID)
}

func (s *UserService) UpdateSettings(ctx context.Context, userID uuid.UUID, showAPIDoc bool) (*models.User, error) {
	err := s.users.UpdateWithRetry(ctx, userID, func(u *models.User) error {
		u.ShowAPIDoc = showAPIDoc
		return nil
	})
	if err != nil {
		return nil, asAppError(err)
	}
	return s.reload(ctx, userID)
}

func (s *UserService) reload(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, internalError(err)
	}
	if u == nil {
		return nil, notFound("User Not Found", nil)
	}
	return u, nil
}
