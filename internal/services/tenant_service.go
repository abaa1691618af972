package services

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/twilio/twilio-go"

	"github.com/AbdellahHatouchi/property-management/internal/dtos"
	internal_utils "github.com/AbdellahHatouchi/property-management/internal/utils"
	"github.com/AbdellahHatouchi/property-management/pkg/models"
	"github.com/AbdellahHatouchi/property-management/pkg/repositories"
	"github.com/AbdellahHatouchi/property-management/pkg/utils"
)

type TenantService struct {
	repos        repositories.Repos
	store        repositories.Store
	availability *AvailabilityService
	twilioClient *twilio.RestClient
}

// NewTenantService takes an optional Twilio client; with nil, phone numbers
// are only checked syntactically by the request validator.
func NewTenantService(
	repos repositories.Repos,
	store repositories.Store,
	availability *AvailabilityService,
	twilioClient *twilio.RestClient,
) *TenantService {
	return &TenantService{
		repos:        repos,
		store:        store,
		availability: availability,
		twilioClient: twilioClient,
	}
}

func (s *TenantService) Create(ctx context.Context, userID, businessID uuid.UUID, req dtos.TenantRequest) (*models.Tenant, error) {
	if _, err := authorizeBusiness(ctx, s.repos.Businesses, userID, businessID); err != nil {
		return nil, err
	}
	if err := s.checkPhone(ctx, req.PhoneNumber); err != nil {
		return nil, err
	}

	t := &models.Tenant{ID: uuid.New(), BusinessID: businessID}
	if err := applyTenantRequest(t, req); err != nil {
		return nil, err
	}
	if err := s.repos.Tenants.Create(ctx, t); err != nil {
		return nil, asAppError(err)
	}
	t.RowVersion = 1
	return t, nil
}

func (s *TenantService) Get(ctx context.Context, userID, businessID, tenantID uuid.UUID) (*models.Tenant, error) {
	if _, err := authorizeBusiness(ctx, s.repos.Businesses, userID, businessID); err != nil {
		return nil, err
	}
	return s.getForBusiness(ctx, businessID, tenantID)
}

func (s *TenantService) List(ctx context.Context, userID, businessID uuid.UUID, page dtos.Page) ([]*models.Tenant, error) {
	if _, err := authorizeBusiness(ctx, s.repos.Businesses, userID, businessID); err != nil {
		return nil, err
	}
	list, err := s.repos.Tenants.ListByBusinessID(ctx, businessID, page.Limit(), page.Offset())
	if err != nil {
		return nil, internalError(err)
	}
	return list, nil
}

func (s *TenantService) Update(
	ctx context.Context,
	userID, businessID, tenantID uuid.UUID,
	req dtos.TenantRequest,
) (*models.Tenant, error) {
	if _, err := authorizeBusiness(ctx, s.repos.Businesses, userID, businessID); err != nil {
		return nil, err
	}
	if _, err := s.getForBusiness(ctx, businessID, tenantID); err != nil {
		return nil, err
	}
	if err := s.checkPhone(ctx, req.PhoneNumber); err != nil {
		return nil, err
	}

	err := s.repos.Tenants.UpdateWithRetry(ctx, tenantID, func(t *models.Tenant) error {
		return applyTenantRequest(t, req)
	})
	if err != nil {
		return nil, asAppError(err)
	}
	return s.getForBusiness(ctx, businessID, tenantID)
}

// Delete removes the tenant and its rentals, handing each rented unit back
// to the availability pool first.
func (s *TenantService) Delete(ctx context.Context, userID, businessID, tenantID uuid.UUID) error {
	if _, err := authorizeBusiness(ctx, s.repos.Businesses, userID, businessID); err != nil {
		return err
	}
	if _, err := s.getForBusiness(ctx, businessID, tenantID); err != nil {
		return err
	}

	err := s.store.WithTx(ctx, func(tx repositories.Repos) error {
		rentals, err := tx.Rentals.ListByTenantID(ctx, tenantID)
		if err != nil {
			return err
		}
		for _, r := range rentals {
			if err := s.availability.Release(ctx, tx, r.PropertyID, r.Unit); err != nil {
				return err
			}
		}
		if err := tx.Rentals.DeleteByTenantID(ctx, tenantID); err != nil {
			return err
		}
		return tx.Tenants.Delete(ctx, businessID, tenantID)
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return notFound("Tenant Not Found", internal_utils.ErrTenantNotFound)
	}
	if err != nil {
		return asAppError(err)
	}
	return nil
}

func (s *TenantService) getForBusiness(ctx context.Context, businessID, tenantID uuid.UUID) (*models.Tenant, error) {
	t, err := s.repos.Tenants.GetForBusiness(ctx, businessID, tenantID)
	if err != nil {
		return nil, internalError(err)
	}
	if t == nil {
		return nil, notFound("Tenant Not Found", internal_utils.ErrTenantNotFound)
	}
	return t, nil
}

func (s *TenantService) checkPhone(ctx context.Context, phone string) error {
	ok, err := utils.ValidatePhoneNumber(ctx, phone, s.twilioClient)
	if err != nil {
		return &utils.AppError{
			StatusCode: http.StatusBadGateway,
			Code:       utils.ErrCodeExternalServiceFailure,
			Message:    "Phone validation is unavailable, please retry later",
			Err:        err,
		}
	}
	if !ok {
		return invalidData("Invalid phone number", utils.ErrInvalidPhone)
	}
	return nil
}

func applyTenantRequest(t *models.Tenant, req dtos.TenantRequest) error {
	dob, err := models.ParseDate(req.DateOfBirth)
	if err != nil {
		return invalidData("Invalid date of birth", err)
	}
	t.Name = strings.TrimSpace(req.Name)
	t.Email = strings.ToLower(strings.TrimSpace(req.Email))
	t.CINOrPassport = strings.TrimSpace(req.CINOrPassport)
	t.IsTourist = req.IsTourist
	t.DateOfBirth = dob
	t.PhoneNumber = req.PhoneNumber
	t.Address = req.Address
	return nil
}
