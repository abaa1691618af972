package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/AbdellahHatouchi/property-management/internal/dtos"
	"github.com/AbdellahHatouchi/property-management/pkg/models"
	"github.com/AbdellahHatouchi/property-management/pkg/repositories"
)

type BusinessService struct {
	businesses repositories.BusinessRepository
}

func NewBusinessService(businesses repositories.BusinessRepository) *BusinessService {
	return &BusinessService{businesses: businesses}
}

func (s *BusinessService) Create(ctx context.Context, userID uuid.UUID, req dtos.CreateBusinessRequest) (*models.Business, error) {
	b := &models.Business{
		ID:     uuid.New(),
		UserID: userID,
		Name:   strings.TrimSpace(req.Name),
	}
	if err := s.businesses.Create(ctx, b); err != nil {
		return nil, asAppError(err)
	}
	return b, nil
}

func (s *BusinessService) List(ctx context.Context, userID uuid.UUID) ([]*models.Business, error) {
	list, err := s.businesses.ListByUserID(ctx, userID)
	if err != nil {
		return nil, internalError(err)
	}
	return list, nil
}
