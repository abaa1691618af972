package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type RentalType string

const (
	RentalTypeDaily   RentalType = "Daily"
	RentalTypeMonthly RentalType = "Monthly"
)

// DateRange is the rental period as submitted by clients.
type DateRange struct {
	From time.Time `json:"from" validate:"required"`
	To   time.Time `json:"to" validate:"required"`
}

// UnmarshalJSON parses both bounds with ParseDate.
func (d *DateRange) UnmarshalJSON(b []byte) error {
	var raw struct {
		From string `json:"from"`
		To   string `json:"to"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	var err error
	if d.From, err = ParseDate(raw.From); err != nil {
		return fmt.Errorf("from: %w", err)
	}
	if d.To, err = ParseDate(raw.To); err != nil {
		return fmt.Errorf("to: %w", err)
	}
	return nil
}

// ParseDate accepts RFC 3339 timestamps and bare YYYY-MM-DD dates.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse(time.DateOnly, s)
}

// Rental is a ledger entry binding a tenant to a unit for a date range.
// Unit holds the unit number, unique within PropertyID.
type Rental struct {
	ID           uuid.UUID  `json:"id"`
	BusinessID   uuid.UUID  `json:"businessId"`
	PropertyID   uuid.UUID  `json:"propertyId"`
	TenantID     uuid.UUID  `json:"tenantId"`
	Unit         string     `json:"unit"`
	RentalNumber string     `json:"rentalNumber"`
	RentalType   RentalType `json:"rentalType"`
	RentalCost   float64    `json:"rentalCost"`
	TotalAmount  float64    `json:"totalAmount"`
	StartDate    time.Time  `json:"startDate"`
	EndDate      time.Time  `json:"endDate"`
	Settled      bool       `json:"settled"`
	DatePaid     *time.Time `json:"datePaid,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// IsExpired matches the endDate <= now predicate used by queries.
func (r *Rental) IsExpired(now time.Time) bool {
	return !r.EndDate.After(now)
}

// ExpiredRental is a rental joined with the contacts the expiry sweep notifies.
type ExpiredRental struct {
	Rental
	TenantName  string `json:"tenantName"`
	TenantEmail string `json:"tenantEmail"`
	OwnerName   string `json:"ownerName"`
	OwnerEmail  string `json:"ownerEmail"`
}
