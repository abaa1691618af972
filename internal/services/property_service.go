package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/AbdellahHatouchi/property-management/internal/dtos"
	internal_utils "github.com/AbdellahHatouchi/property-management/internal/utils"
	"github.com/AbdellahHatouchi/property-management/pkg/models"
	"github.com/AbdellahHatouchi/property-management/pkg/repositories"
	"github.com/AbdellahHatouchi/property-management/pkg/utils"
)

type PropertyService struct {
	repos        repositories.Repos
	store        repositories.Store
	availability *AvailabilityService
}

func NewPropertyService(
	repos repositories.Repos,
	store repositories.Store,
	availability *AvailabilityService,
) *PropertyService {
	return &PropertyService{repos: repos, store: store, availability: availability}
}

// Create inserts the property and its units together. The property starts
// available iff at least one unit does.
func (s *PropertyService) Create(
	ctx context.Context,
	userID, businessID uuid.UUID,
	req dtos.PropertyRequest,
) (*models.Property, error) {
	if _, err := authorizeBusiness(ctx, s.repos.Businesses, userID, businessID); err != nil {
		return nil, err
	}

	p := &models.Property{
		ID:         uuid.New(),
		BusinessID: businessID,
	}
	applyPropertyRequest(p, req)
	p.Units = req.ToUnits(p.ID)
	p.IsAvailable = anyUnitAvailable(p.Units)

	err := s.store.WithTx(ctx, func(tx repositories.Repos) error {
		if err := tx.Properties.Create(ctx, p); err != nil {
			return err
		}
		return tx.Units.CreateMany(ctx, p.Units)
	})
	if err != nil {
		return nil, asAppError(err)
	}
	return p, nil
}

func (s *PropertyService) Get(ctx context.Context, userID, businessID, propertyID uuid.UUID) (*models.Property, error) {
	if _, err := authorizeBusiness(ctx, s.repos.Businesses, userID, businessID); err != nil {
		return nil, err
	}
	p, err := s.repos.Properties.GetForBusiness(ctx, businessID, propertyID)
	if err != nil {
		return nil, internalError(err)
	}
	if p == nil {
		return nil, notFound("Property Not Found", internal_utils.ErrPropertyNotFound)
	}
	if p.Units, err = s.repos.Units.ListByPropertyID(ctx, p.ID); err != nil {
		return nil, internalError(err)
	}
	return p, nil
}

func (s *PropertyService) List(ctx context.Context, userID, businessID uuid.UUID, page dtos.Page) ([]*models.Property, error) {
	if _, err := authorizeBusiness(ctx, s.repos.Businesses, userID, businessID); err != nil {
		return nil, err
	}
	list, err := s.repos.Properties.ListByBusinessID(ctx, businessID, page.Limit(), page.Offset())
	if err != nil {
		return nil, internalError(err)
	}
	for _, p := range list {
		if p.Units, err = s.repos.Units.ListByPropertyID(ctx, p.ID); err != nil {
			return nil, internalError(err)
		}
	}
	return list, nil
}

// Update replaces the property's fields and its whole unit set, then
// re-derives the property's availability from the new units.
func (s *PropertyService) Update(
	ctx context.Context,
	userID, businessID, propertyID uuid.UUID,
	req dtos.PropertyRequest,
) (*models.Property, error) {
	if _, err := authorizeBusiness(ctx, s.repos.Businesses, userID, businessID); err != nil {
		return nil, err
	}

	err := s.store.WithTx(ctx, func(tx repositories.Repos) error {
		p, err := tx.Properties.GetForBusiness(ctx, businessID, propertyID)
		if err != nil {
			return err
		}
		if p == nil {
			return internal_utils.ErrPropertyNotFound
		}
		applyPropertyRequest(p, req)
		if err := tx.Properties.Update(ctx, p); err != nil {
			return err
		}
		if err := tx.Units.DeleteByPropertyID(ctx, p.ID); err != nil {
			return err
		}
		if err := tx.Units.CreateMany(ctx, req.ToUnits(p.ID)); err != nil {
			return err
		}
		return s.availability.Recompute(ctx, tx, p.ID)
	})
	if errors.Is(err, internal_utils.ErrPropertyNotFound) || errors.Is(err, pgx.ErrNoRows) {
		return nil, notFound("Property Not Found", err)
	}
	if err != nil {
		return nil, asAppError(err)
	}
	return s.Get(ctx, userID, businessID, propertyID)
}

// Delete removes the property with its units and rentals.
func (s *PropertyService) Delete(ctx context.Context, userID, businessID, propertyID uuid.UUID) error {
	if _, err := authorizeBusiness(ctx, s.repos.Businesses, userID, businessID); err != nil {
		return err
	}
	err := s.store.WithTx(ctx, func(tx repositories.Repos) error {
		if err := tx.Rentals.DeleteByPropertyID(ctx, propertyID); err != nil {
			return err
		}
		if err := tx.Units.DeleteByPropertyID(ctx, propertyID); err != nil {
			return err
		}
		return tx.Properties.Delete(ctx, businessID, propertyID)
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return notFound("Property Not Found", internal_utils.ErrPropertyNotFound)
	}
	if err != nil {
		return asAppError(err)
	}
	utils.Logger.WithField("business_id", businessID).Infof("Deleted property %s", propertyID)
	return nil
}

func applyPropertyRequest(p *models.Property, req dtos.PropertyRequest) {
	p.Name = strings.TrimSpace(req.Name)
	p.Type = models.PropertyType(req.Type)
	p.DailyRentalCost = req.DailyRentalCost
	p.MonthlyRentalCost = req.MonthlyRentalCost
	p.Address = req.Address
}

func anyUnitAvailable(units []*models.Unit) bool {
	for _, u := range units {
		if u.IsAvailable {
			return true
		}
	}
	return false
}
