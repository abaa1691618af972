package controllers

import (
	"net/http"

	"github.com/AbdellahHatouchi/property-management/internal/dtos"
	"github.com/AbdellahHatouchi/property-management/internal/services"
	"github.com/AbdellahHatouchi/property-management/pkg/utils"
)

type BusinessController struct {
	businessService *services.BusinessService
}

func NewBusinessController(businessService *services.BusinessService) *BusinessController {
	return &BusinessController{businessService: businessService}
}

// GET /api/business
func (c *BusinessController) ListHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	list, err := c.businessService.List(r.Context(), userID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, list)
}

// POST /api/business
func (c *BusinessController) CreateHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	var req dtos.CreateBusinessRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	b, err := c.businessService.Create(r.Context(), userID, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, b)
}
