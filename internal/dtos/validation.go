package dtos

import (
	"errors"
	"regexp"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/AbdellahHatouchi/property-management/internal/constants"
	internal_utils "github.com/AbdellahHatouchi/property-management/internal/utils"
	"github.com/AbdellahHatouchi/property-management/pkg/models"
)

var (
	cinRegex = regexp.MustCompile(constants.CINPattern)

	validateOnce sync.Once
	validate     *validator.Validate
)

// Validator returns the shared validator with the domain rules registered.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New()
		_ = v.RegisterValidation("property_type", func(fl validator.FieldLevel) bool {
			return models.PropertyType(fl.Field().String()).IsValid()
		})
		v.RegisterStructValidation(propertyStructLevel, PropertyRequest{})
		v.RegisterStructValidation(tenantStructLevel, TenantRequest{})
		v.RegisterStructValidation(rentalStructLevel, CreateRentalRequest{})
		validate = v
	})
	return validate
}

func propertyStructLevel(sl validator.StructLevel) {
	req := sl.Current().Interface().(PropertyRequest)

	if models.PropertyType(req.Type) == models.PropertyTypeHouse && len(req.Units) > 1 {
		sl.ReportError(req.Units, "Units", "units", "house_single_unit", "")
	}

	seen := make(map[string]struct{}, len(req.Units))
	for _, u := range req.Units {
		if _, dup := seen[u.Number]; dup {
			sl.ReportError(req.Units, "Units", "units", "unique_unit_number", u.Number)
			return
		}
		seen[u.Number] = struct{}{}
	}
}

func tenantStructLevel(sl validator.StructLevel) {
	req := sl.Current().Interface().(TenantRequest)
	if !req.IsTourist && !cinRegex.MatchString(req.CINOrPassport) {
		sl.ReportError(req.CINOrPassport, "CINOrPassport", "cinOrPassport", "cin", "")
	}
	if req.DateOfBirth != "" {
		if _, err := models.ParseDate(req.DateOfBirth); err != nil {
			sl.ReportError(req.DateOfBirth, "DateOfBirth", "dateOfBirth", "date", "")
		}
	}
}

func rentalStructLevel(sl validator.StructLevel) {
	req := sl.Current().Interface().(CreateRentalRequest)
	r := req.RentalDateRange
	if r == nil || r.From.IsZero() || r.To.IsZero() {
		return
	}
	if r.To.Before(r.From) {
		sl.ReportError(r, "RentalDateRange", "rentalDateRange", "range_order", "")
		return
	}
	if models.RentalType(req.RentalType) == models.RentalTypeMonthly {
		if internal_utils.RentalDays(r.From, r.To)%internal_utils.DaysPerBillingMonth != 0 {
			sl.ReportError(r, "RentalDateRange", "rentalDateRange", "monthly_span", "")
		}
	}
}

// FieldError is the client-facing shape of one failed rule.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// ValidationDetails flattens validator errors for the response body.
func ValidationDetails(err error) []FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Rule: fe.Tag()})
	}
	return out
}
