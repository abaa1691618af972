package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/AbdellahHatouchi/property-management/internal/constants"
	"github.com/AbdellahHatouchi/property-management/internal/dtos"
	internal_utils "github.com/AbdellahHatouchi/property-management/internal/utils"
	"github.com/AbdellahHatouchi/property-management/pkg/models"
	"github.com/AbdellahHatouchi/property-management/pkg/repositories"
	"github.com/AbdellahHatouchi/property-management/pkg/utils"
)

// RentalService is the rental ledger. Every mutation runs in one
// transaction together with the availability updates it implies.
type RentalService struct {
	repos        repositories.Repos
	store        repositories.Store
	availability *AvailabilityService
	now          func() time.Time
}

func NewRentalService(
	repos repositories.Repos,
	store repositories.Store,
	availability *AvailabilityService,
) *RentalService {
	return &RentalService{
		repos:        repos,
		store:        store,
		availability: availability,
		now:          time.Now,
	}
}

func (s *RentalService) Create(
	ctx context.Context,
	userID, businessID uuid.UUID,
	req dtos.CreateRentalRequest,
) (*models.Rental, error) {
	if _, err := authorizeBusiness(ctx, s.repos.Businesses, userID, businessID); err != nil {
		return nil, err
	}

	propertyID, err := uuid.Parse(req.PropertyID)
	if err != nil {
		return nil, invalidData("Invalid data!", err)
	}
	tenantID, err := uuid.Parse(req.TenantID)
	if err != nil {
		return nil, invalidData("Invalid data!", err)
	}

	property, err := s.repos.Properties.GetForBusiness(ctx, businessID, propertyID)
	if err != nil {
		return nil, internalError(err)
	}
	if property == nil {
		return nil, notFound("Property Not Found", internal_utils.ErrPropertyNotFound)
	}

	unit, err := s.repos.Units.GetByNumber(ctx, propertyID, req.Unit)
	if err != nil {
		return nil, internalError(err)
	}
	if unit == nil {
		return nil, notFound("Unit Not Found", internal_utils.ErrUnitNotFound)
	}
	if !unit.IsAvailable {
		return nil, unitNotAvailable()
	}

	tenant, err := s.repos.Tenants.GetForBusiness(ctx, businessID, tenantID)
	if err != nil {
		return nil, internalError(err)
	}
	if tenant == nil {
		return nil, notFound("Tenant Not Found", internal_utils.ErrTenantNotFound)
	}

	rentalType := models.RentalType(req.RentalType)
	total := internal_utils.CalculateAmount(internal_utils.PricingInput{
		DailyRentalCost:   property.DailyRentalCost,
		MonthlyRentalCost: property.MonthlyRentalCost,
		RentalType:        rentalType,
		DateRange:         req.RentalDateRange,
	})
	if total == 0 {
		return nil, invalidData("Invalid data!", internal_utils.ErrInvalidRentalData)
	}

	rental := &models.Rental{
		ID:           uuid.New(),
		BusinessID:   businessID,
		PropertyID:   propertyID,
		TenantID:     tenantID,
		Unit:         unit.Number,
		RentalNumber: req.RentalNumber,
		RentalType:   rentalType,
		RentalCost:   internal_utils.RentalCost(rentalType, property.DailyRentalCost, property.MonthlyRentalCost),
		TotalAmount:  total,
		StartDate:    req.RentalDateRange.From,
		EndDate:      req.RentalDateRange.To,
	}

	err = s.store.WithTx(ctx, func(tx repositories.Repos) error {
		if rental.RentalNumber == "" {
			number, err := nextRentalNumber(ctx, tx.Rentals)
			if err != nil {
				return err
			}
			rental.RentalNumber = number
		}
		if err := tx.Rentals.Create(ctx, rental); err != nil {
			return err
		}
		return s.availability.Reserve(ctx, tx, propertyID, unit.Number)
	})
	if err != nil {
		if utils.IsUniqueViolation(err) {
			return nil, conflict("Rental number already in use", err)
		}
		return nil, asAppError(err)
	}

	utils.Logger.WithFields(logrus.Fields{
		"rental_id":   rental.ID,
		"business_id": businessID,
		"unit":        rental.Unit,
	}).Infof("Created rental %s", rental.RentalNumber)
	return rental, nil
}

// Delete removes the rental and frees its unit. The deleted row is returned.
func (s *RentalService) Delete(ctx context.Context, userID, businessID, rentalID uuid.UUID) (*models.Rental, error) {
	if _, err := authorizeBusiness(ctx, s.repos.Businesses, userID, businessID); err != nil {
		return nil, err
	}

	var deleted *models.Rental
	err := s.store.WithTx(ctx, func(tx repositories.Repos) error {
		r, err := tx.Rentals.Delete(ctx, businessID, rentalID)
		if err != nil {
			return err
		}
		if r == nil {
			return internal_utils.ErrRentalNotFound
		}
		deleted = r
		return s.availability.Release(ctx, tx, r.PropertyID, r.Unit)
	})
	if errors.Is(err, internal_utils.ErrRentalNotFound) {
		return nil, notFound("Rental Not Found", err)
	}
	if err != nil {
		return nil, asAppError(err)
	}
	return deleted, nil
}

// Settle marks the rental paid now. Repeated calls move datePaid forward.
func (s *RentalService) Settle(ctx context.Context, userID, businessID, rentalID uuid.UUID) (*models.Rental, error) {
	if _, err := authorizeBusiness(ctx, s.repos.Businesses, userID, businessID); err != nil {
		return nil, err
	}
	r, err := s.repos.Rentals.Settle(ctx, businessID, rentalID, s.now())
	if err != nil {
		return nil, internalError(err)
	}
	if r == nil {
		return nil, notFound("Rental Not Found", internal_utils.ErrRentalNotFound)
	}
	return r, nil
}

func (s *RentalService) Get(ctx context.Context, userID, businessID, rentalID uuid.UUID) (*models.Rental, error) {
	if _, err := authorizeBusiness(ctx, s.repos.Businesses, userID, businessID); err != nil {
		return nil, err
	}
	r, err := s.repos.Rentals.GetForBusiness(ctx, businessID, rentalID)
	if err != nil {
		return nil, internalError(err)
	}
	if r == nil {
		return nil, notFound("Rental Not Found", internal_utils.ErrRentalNotFound)
	}
	return r, nil
}

func (s *RentalService) List(ctx context.Context, userID, businessID uuid.UUID, page dtos.Page) ([]*models.Rental, error) {
	if _, err := authorizeBusiness(ctx, s.repos.Businesses, userID, businessID); err != nil {
		return nil, err
	}
	rentals, err := s.repos.Rentals.ListByBusinessID(ctx, businessID, page.Limit(), page.Offset())
	if err != nil {
		return nil, internalError(err)
	}
	return rentals, nil
}

// ListExpired returns the business's expired rentals that are still unpaid.
func (s *RentalService) ListExpired(ctx context.Context, userID, businessID uuid.UUID) ([]*models.Rental, error) {
	if _, err := authorizeBusiness(ctx, s.repos.Businesses, userID, businessID); err != nil {
		return nil, err
	}
	rentals, err := s.repos.Rentals.ListExpiredUnsettled(ctx, businessID, s.now())
	if err != nil {
		return nil, internalError(err)
	}
	return rentals, nil
}

// NextRentalNumber previews the number the next rental would receive.
func (s *RentalService) NextRentalNumber(ctx context.Context) (string, error) {
	number, err := nextRentalNumber(ctx, s.repos.Rentals)
	if err != nil {
		return "", internalError(err)
	}
	return number, nil
}

func nextRentalNumber(ctx context.Context, rentals repositories.RentalRepository) (string, error) {
	seq, err := rentals.MaxRentalSequence(ctx)
	if err != nil {
		return "", err
	}
	if seq < constants.RentalNumberBase {
		seq = constants.RentalNumberBase
	}
	return fmt.Sprintf("%s%d", constants.RentalNumberPrefix, seq+1), nil
}
