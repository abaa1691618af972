package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/AbdellahHatouchi/property-management/internal/dtos"
	"github.com/AbdellahHatouchi/property-management/internal/services"
	"github.com/AbdellahHatouchi/property-management/pkg/models"
	"github.com/AbdellahHatouchi/property-management/pkg/repositories"
	"github.com/AbdellahHatouchi/property-management/pkg/utils"
)

var (
	seedOwnerID    = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	seedBusinessID = uuid.MustParse("22222222-2222-2222-2222-222222222222")
)

const (
	seedOwnerEmail    = "demo.owner@rent-master.ma"
	seedOwnerPassword = "demo-password"
)

// SeedAllTestData creates a demo owner with one business, an apartment
// building, a villa, two tenants and a few rentals. It is a no-op when the
// demo owner already exists.
func SeedAllTestData(
	ctx context.Context,
	repos repositories.Repos,
	propertyService *services.PropertyService,
	tenantService *services.TenantService,
	rentalService *services.RentalService,
) error {
	if existing, err := repos.Users.GetByID(ctx, seedOwnerID); err != nil {
		return fmt.Errorf("check existing seed owner: %w", err)
	} else if existing != nil {
		utils.Logger.Info("Seed data already present; skipping seeding")
		return nil
	}

	if err := seedOwner(ctx, repos); err != nil {
		return fmt.Errorf("seed owner: %w", err)
	}

	building, err := propertyService.Create(ctx, seedOwnerID, seedBusinessID, dtos.PropertyRequest{
		Name:              "Residence Al Amal",
		Type:              string(models.PropertyTypeApartment),
		DailyRentalCost:   350,
		MonthlyRentalCost: 6000,
		Address:           "12 Rue Ibn Batouta, Casablanca",
		Units:             []dtos.UnitRequest{{Number: "A1"}, {Number: "A2"}, {Number: "B1"}},
	})
	if err != nil {
		return fmt.Errorf("seed building: %w", err)
	}
	villa, err := propertyService.Create(ctx, seedOwnerID, seedBusinessID, dtos.PropertyRequest{
		Name:              "Villa Palmeraie",
		Type:              string(models.PropertyTypeVilla),
		DailyRentalCost:   1200,
		MonthlyRentalCost: 25000,
		Address:           "Circuit de la Palmeraie, Marrakech",
		Units:             []dtos.UnitRequest{{Number: "V1"}},
	})
	if err != nil {
		return fmt.Errorf("seed villa: %w", err)
	}

	resident, err := tenantService.Create(ctx, seedOwnerID, seedBusinessID, dtos.TenantRequest{
		Name:          "Youssef El Idrissi",
		Email:         "youssef.demo@rent-master.ma",
		CINOrPassport: "BK123456",
		DateOfBirth:   "1990-04-12",
		PhoneNumber:   "+212600000001",
		Address:       "Casablanca",
	})
	if err != nil {
		return fmt.Errorf("seed resident tenant: %w", err)
	}
	tourist, err := tenantService.Create(ctx, seedOwnerID, seedBusinessID, dtos.TenantRequest{
		Name:          "Claire Martin",
		Email:         "claire.demo@rent-master.ma",
		CINOrPassport: "19FR44021",
		IsTourist:     true,
		DateOfBirth:   "1985-09-30",
		PhoneNumber:   "+33600000002",
		Address:       "Lyon",
	})
	if err != nil {
		return fmt.Errorf("seed tourist tenant: %w", err)
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)

	// Running monthly lease on A1.
	if _, err := rentalService.Create(ctx, seedOwnerID, seedBusinessID, dtos.CreateRentalRequest{
		PropertyID: building.ID.String(),
		Unit:       "A1",
		TenantID:   resident.ID.String(),
		RentalType: string(models.RentalTypeMonthly),
		RentalDateRange: &models.DateRange{
			From: today.AddDate(0, 0, -10),
			To:   today.AddDate(0, 0, 50),
		},
	}); err != nil {
		return fmt.Errorf("seed monthly rental: %w", err)
	}

	// Expired and settled stay on the villa, released by the next sweep.
	expired, err := rentalService.Create(ctx, seedOwnerID, seedBusinessID, dtos.CreateRentalRequest{
		PropertyID: villa.ID.String(),
		Unit:       "V1",
		TenantID:   tourist.ID.String(),
		RentalType: string(models.RentalTypeDaily),
		RentalDateRange: &models.DateRange{
			From: today.AddDate(0, 0, -7),
			To:   today.AddDate(0, 0, -2),
		},
	})
	if err != nil {
		return fmt.Errorf("seed expired rental: %w", err)
	}
	if _, err := rentalService.Settle(ctx, seedOwnerID, seedBusinessID, expired.ID); err != nil {
		return fmt.Errorf("settle expired rental: %w", err)
	}

	utils.Logger.Infof("Seeded demo owner %s (password %q)", seedOwnerEmail, seedOwnerPassword)
	return nil
}

func seedOwner(ctx context.Context, repos repositories.Repos) error {
	hash, err := utils.HashPassword(seedOwnerPassword)
	if err != nil {
		return err
	}
	owner := &models.User{
		ID:           seedOwnerID,
		Name:         "Demo Owner",
		Email:        seedOwnerEmail,
		PasswordHash: hash,
		PhoneNumber:  "+212600000000",
	}
	if err := repos.Users.Create(ctx, owner); err != nil {
		if utils.IsUniqueViolation(err) {
			return fmt.Errorf("email %s is taken by another account", seedOwnerEmail)
		}
		return err
	}
	if err := repos.Users.MarkEmailVerified(ctx, seedOwnerID, time.Now()); err != nil {
		return err
	}

	err = repos.Businesses.Create(ctx, &models.Business{
		ID:     seedBusinessID,
		UserID: seedOwnerID,
		Name:   "Rent Master Demo",
	})
	if err != nil && !utils.IsUniqueViolation(err) {
		return err
	}
	return nil
}
