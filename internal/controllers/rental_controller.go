package controllers

import (
	"net/http"

	"github.com/AbdellahHatouchi/property-management/internal/dtos"
	"github.com/AbdellahHatouchi/property-management/internal/services"
	"github.com/AbdellahHatouchi/property-management/pkg/models"
	"github.com/AbdellahHatouchi/property-management/pkg/utils"
)

type RentalController struct {
	rentalService *services.RentalService
}

func NewRentalController(rentalService *services.RentalService) *RentalController {
	return &RentalController{rentalService: rentalService}
}

// POST /api/{businessId}/rentals
func (c *RentalController) CreateHandler(w http.ResponseWriter, r *http.Request) {
	userID, businessID, ok := scope(w, r)
	if !ok {
		return
	}
	var req dtos.CreateRentalRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	rental, err := c.rentalService.Create(r.Context(), userID, businessID, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, rental)
}

// GET /api/{businessId}/rentals and /api/{businessId}/rentals/expired-rental
func (c *RentalController) ListExpiredHandler(w http.ResponseWriter, r *http.Request) {
	userID, businessID, ok := scope(w, r)
	if !ok {
		return
	}
	list, err := c.rentalService.ListExpired(r.Context(), userID, businessID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	if list == nil {
		list = []*models.Rental{}
	}
	utils.RespondWithJSON(w, http.StatusOK, list)
}

// GET /api/{businessId}/rentals/all
func (c *RentalController) ListHandler(w http.ResponseWriter, r *http.Request) {
	userID, businessID, ok := scope(w, r)
	if !ok {
		return
	}
	page := dtos.PageFromRequest(r)
	list, err := c.rentalService.List(r.Context(), userID, businessID, page)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.PagedResponse[*models.Rental]{
		Items: list, Page: page.Page, PageSize: page.PageSize,
	})
}

// GET /api/{businessId}/rentals/{rentalId}
func (c *RentalController) GetHandler(w http.ResponseWriter, r *http.Request) {
	userID, businessID, ok := scope(w, r)
	if !ok {
		return
	}
	rentalID, ok := pathUUID(w, r, "rentalId")
	if !ok {
		return
	}
	rental, err := c.rentalService.Get(r.Context(), userID, businessID, rentalID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, rental)
}

// PUT /api/{businessId}/rentals/{rentalId} marks the rental paid.
func (c *RentalController) SettleHandler(w http.ResponseWriter, r *http.Request) {
	userID, businessID, ok := scope(w, r)
	if !ok {
		return
	}
	rentalID, ok := pathUUID(w, r, "rentalId")
	if !ok {
		return
	}
	rental, err := c.rentalService.Settle(r.Context(), userID, businessID, rentalID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, rental)
}

// DELETE /api/{businessId}/rentals/{rentalId}
func (c *RentalController) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	userID, businessID, ok := scope(w, r)
	if !ok {
		return
	}
	rentalID, ok := pathUUID(w, r, "rentalId")
	if !ok {
		return
	}
	rental, err := c.rentalService.Delete(r.Context(), userID, businessID, rentalID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, rental)
}

// GET /api/rentals/next-number
func (c *RentalController) NextNumberHandler(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUserID(w, r); !ok {
		return
	}
	number, err := c.rentalService.NextRentalNumber(r.Context())
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.RentalNumberResponse{RentalNumber: number})
}
