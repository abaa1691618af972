package controllers

import (
	"net/http"

	"github.com/AbdellahHatouchi/property-management/internal/dtos"
	"github.com/AbdellahHatouchi/property-management/internal/services"
	"github.com/AbdellahHatouchi/property-management/pkg/models"
	"github.com/AbdellahHatouchi/property-management/pkg/utils"
)

type TenantController struct {
	tenantService *services.TenantService
}

func NewTenantController(tenantService *services.TenantService) *TenantController {
	return &TenantController{tenantService: tenantService}
}

// GET /api/{businessId}/tenants
func (c *TenantController) ListHandler(w http.ResponseWriter, r *http.Request) {
	userID, businessID, ok := scope(w, r)
	if !ok {
		return
	}
	page := dtos.PageFromRequest(r)
	list, err := c.tenantService.List(r.Context(), userID, businessID, page)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.PagedResponse[*models.Tenant]{
		Items: list, Page: page.Page, PageSize: page.PageSize,
	})
}

// POST /api/{businessId}/tenants
func (c *TenantController) CreateHandler(w http.ResponseWriter, r *http.Request) {
	userID, businessID, ok := scope(w, r)
	if !ok {
		return
	}
	var req dtos.TenantRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	t, err := c.tenantService.Create(r.Context(), userID, businessID, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, t)
}

// GET /api/{businessId}/tenants/{tenantId}
func (c *TenantController) GetHandler(w http.ResponseWriter, r *http.Request) {
	userID, businessID, ok := scope(w, r)
	if !ok {
		return
	}
	tenantID, ok := pathUUID(w, r, "tenantId")
	if !ok {
		return
	}
	t, err := c.tenantService.Get(r.Context(), userID, businessID, tenantID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, t)
}

// PATCH /api/{businessId}/tenants/{tenantId}
func (c *TenantController) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	userID, businessID, ok := scope(w, r)
	if !ok {
		return
	}
	tenantID, ok := pathUUID(w, r, "tenantId")
	if !ok {
		return
	}
	var req dtos.TenantRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	t, err := c.tenantService.Update(r.Context(), userID, businessID, tenantID, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, t)
}

// DELETE /api/{businessId}/tenants/{tenantId}
func (c *TenantController) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	userID, businessID, ok := scope(w, r)
	if !ok {
		return
	}
	tenantID, ok := pathUUID(w, r, "tenantId")
	if !ok {
		return
	}
	if err := c.tenantService.Delete(r.Context(), userID, businessID, tenantID); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.MessageResponse{Message: "Tenant deleted"})
}
