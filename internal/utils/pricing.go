package utils

import (
	"math"
	"time"

	"github.com/AbdellahHatouchi/property-management/pkg/models"
)

// DaysPerBillingMonth is the month length used for Monthly rentals.
const DaysPerBillingMonth = 30

type PricingInput struct {
	DailyRentalCost   float64
	MonthlyRentalCost float64
	RentalType        models.RentalType
	DateRange         *models.DateRange
}

// CalculateAmount returns the total price of a rental. It returns 0 when the
// range is missing, inverted or the rental type is unknown; callers treat 0
// as invalid input.
func CalculateAmount(in PricingInput) float64 {
	if in.DateRange == nil {
		return 0
	}
	days := RentalDays(in.DateRange.From, in.DateRange.To)
	if days <= 0 {
		return 0
	}

	switch in.RentalType {
	case models.RentalTypeDaily:
		return float64(days) * in.DailyRentalCost
	case models.RentalTypeMonthly:
		months := math.Ceil(float64(days) / DaysPerBillingMonth)
		return months * in.MonthlyRentalCost
	}
	return 0
}

// RentalDays is the span in whole days, rounded up.
func RentalDays(from, to time.Time) int {
	return int(math.Ceil(to.Sub(from).Hours() / 24))
}

// RentalCost picks the per-period rate stored on the rental.
func RentalCost(t models.RentalType, daily, monthly float64) float64 {
	if t == models.RentalTypeDaily {
		return daily
	}
	return monthly
}
