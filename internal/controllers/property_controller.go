package controllers

import (
	"net/http"

	"github.com/AbdellahHatouchi/property-management/internal/dtos"
	"github.com/AbdellahHatouchi/property-management/internal/services"
	"github.com/AbdellahHatouchi/property-management/pkg/models"
	"github.com/AbdellahHatouchi/property-management/pkg/utils"
)

type PropertyController struct {
	propertyService *services.PropertyService
}

func NewPropertyController(propertyService *services.PropertyService) *PropertyController {
	return &PropertyController{propertyService: propertyService}
}

// GET /api/{businessId}/properties
func (c *PropertyController) ListHandler(w http.ResponseWriter, r *http.Request) {
	userID, businessID, ok := scope(w, r)
	if !ok {
		return
	}
	page := dtos.PageFromRequest(r)
	list, err := c.propertyService.List(r.Context(), userID, businessID, page)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.PagedResponse[*models.Property]{
		Items: list, Page: page.Page, PageSize: page.PageSize,
	})
}

// POST /api/{businessId}/properties
func (c *PropertyController) CreateHandler(w http.ResponseWriter, r *http.Request) {
	userID, businessID, ok := scope(w, r)
	if !ok {
		return
	}
	var req dtos.PropertyRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	p, err := c.propertyService.Create(r.Context(), userID, businessID, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, p)
}

// GET /api/{businessId}/properties/{propertyId}
func (c *PropertyController) GetHandler(w http.ResponseWriter, r *http.Request) {
	userID, businessID, ok := scope(w, r)
	if !ok {
		return
	}
	propertyID, ok := pathUUID(w, r, "propertyId")
	if !ok {
		return
	}
	p, err := c.propertyService.Get(r.Context(), userID, businessID, propertyID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, p)
}

// PATCH /api/{businessId}/properties/{propertyId}
func (c *PropertyController) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	userID, businessID, ok := scope(w, r)
	if !ok {
		return
	}
	propertyID, ok := pathUUID(w, r, "propertyId")
	if !ok {
		return
	}
	var req dtos.PropertyRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	p, err := c.propertyService.Update(r.Context(), userID, businessID, propertyID, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, p)
}

// DELETE /api/{businessId}/properties/{propertyId}
func (c *PropertyController) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	userID, businessID, ok := scope(w, r)
	if !ok {
		return
	}
	propertyID, ok := pathUUID(w, r, "propertyId")
	if !ok {
		return
	}
	if err := c.propertyService.Delete(r.Context(), userID, businessID, propertyID); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.MessageResponse{Message: "Property deleted"})
}
