package services

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	internal_utils "github.com/AbdellahHatouchi/property-management/internal/utils"
	"github.com/AbdellahHatouchi/property-management/pkg/models"
	"github.com/AbdellahHatouchi/property-management/pkg/repositories"
	"github.com/AbdellahHatouchi/property-management/pkg/utils"
)

// authorizeBusiness loads the business and checks that userID owns it.
// Anything else is reported as 405, the status clients already expect for
// cross-business access.
func authorizeBusiness(
	ctx context.Context,
	businesses repositories.BusinessRepository,
	userID, businessID uuid.UUID,
) (*models.Business, error) {
	b, err := businesses.GetForUser(ctx, businessID, userID)
	if err != nil {
		return nil, internalError(err)
	}
	if b == nil {
		return nil, &utils.AppError{
			StatusCode: http.StatusMethodNotAllowed,
			Code:       utils.ErrCodeUnauthorized,
			Message:    "Unauthorized",
			Err:        internal_utils.ErrBusinessNotOwned,
		}
	}
	return b, nil
}

func internalError(err error) error {
	return &utils.AppError{
		StatusCode: http.StatusInternalServerError,
		Code:       utils.ErrCodeInternal,
		Message:    "Internal server error",
		Err:        err,
	}
}

func notFound(message string, err error) error {
	return &utils.AppError{
		StatusCode: http.StatusNotFound,
		Code:       utils.ErrCodeNotFound,
		Message:    message,
		Err:        err,
	}
}

func invalidData(message string, err error) error {
	return &utils.AppError{
		StatusCode: http.StatusBadRequest,
		Code:       utils.ErrCodeValidation,
		Message:    message,
		Err:        err,
	}
}

func conflict(message string, err error) error {
	return &utils.AppError{
		StatusCode: http.StatusConflict,
		Code:       utils.ErrCodeConflict,
		Message:    message,
		Err:        err,
	}
}

func unitNotAvailable() error {
	return &utils.AppError{
		StatusCode: http.StatusBadRequest,
		Code:       utils.ErrCodeUnitNotAvailable,
		Message:    "Unit Not Available",
		Err:        internal_utils.ErrUnitNotAvailable,
	}
}

// asAppError passes AppErrors through and maps the rest to 500.
func asAppError(err error) error {
	var appErr *utils.AppError
	if errors.As(err, &appErr) {
		return err
	}
	switch {
	case errors.Is(err, internal_utils.ErrUnitNotAvailable):
		return unitNotAvailable()
	case errors.Is(err, pgx.ErrNoRows):
		return notFound("Not Found", err)
	case errors.Is(err, utils.ErrRowVersionConflict):
		return &utils.AppError{
			StatusCode: http.StatusConflict,
			Code:       utils.ErrCodeRowVersionConflict,
			Message:    "Record was modified concurrently, please retry",
			Err:        err,
		}
	case utils.IsUniqueViolation(err):
		return conflict("Already exists", err)
	}
	return internalError(err)
}
