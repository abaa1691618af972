package services

import (
	"context"

	"github.com/google/uuid"

	internal_utils "github.com/AbdellahHatouchi/property-management/internal/utils"
	"github.com/AbdellahHatouchi/property-management/pkg/repositories"
	"github.com/AbdellahHatouchi/property-management/pkg/utils"
)

// AvailabilityService keeps unit and property availability in step with the
// rental ledger. Every method runs against the repositories it is handed so
// the caller's transaction covers the ledger write and the flag flips.
type AvailabilityService struct{}

func NewAvailabilityService() *AvailabilityService {
	return &AvailabilityService{}
}

// Reserve marks the unit taken. When no unit of the property remains
// available the property is marked unavailable too. A unit that was already
// taken yields ErrUnitNotAvailable, which also covers two creates racing for
// the same unit.
func (s *AvailabilityService) Reserve(ctx context.Context, repos repositories.Repos, propertyID uuid.UUID, unit string) error {
	rows, err := repos.Units.SetAvailability(ctx, propertyID, unit, false)
	if err != nil {
		return err
	}
	if rows == 0 {
		return internal_utils.ErrUnitNotAvailable
	}

	available, err := repos.Units.CountAvailable(ctx, propertyID)
	if err != nil {
		return err
	}
	if available == 0 {
		return repos.Properties.SetAvailability(ctx, propertyID, false)
	}
	return nil
}

// Release marks the unit free again. The property is flipped back only on
// the transition from zero to one available unit: exactly one row changed
// and the property now has exactly one available unit.
func (s *AvailabilityService) Release(ctx context.Context, repos repositories.Repos, propertyID uuid.UUID, unit string) error {
	rows, err := repos.Units.SetAvailability(ctx, propertyID, unit, true)
	if err != nil {
		return err
	}
	if rows != 1 {
		utils.Logger.WithField("property_id", propertyID).Debugf("unit %s already available, nothing to release", unit)
		return nil
	}

	available, err := repos.Units.CountAvailable(ctx, propertyID)
	if err != nil {
		return err
	}
	if available == 1 {
		return repos.Properties.SetAvailability(ctx, propertyID, true)
	}
	return nil
}

// Recompute derives the property flag from its current unit set.
func (s *AvailabilityService) Recompute(ctx context.Context, repos repositories.Repos, propertyID uuid.UUID) error {
	available, err := repos.Units.CountAvailable(ctx, propertyID)
	if err != nil {
		return err
	}
	return repos.Properties.SetAvailability(ctx, propertyID, available > 0)
}
