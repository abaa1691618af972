package controllers

import (
	"net/http"

	"github.com/AbdellahHatouchi/property-management/internal/dtos"
	"github.com/AbdellahHatouchi/property-management/internal/services"
	"github.com/AbdellahHatouchi/property-management/pkg/utils"
)

type UserController struct {
	userService *services.UserService
}

func NewUserController(userService *services.UserService) *UserController {
	return &UserController{userService: userService}
}

// PUT /api/update-user-info
func (c *UserController) UpdateInfoHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	var req dtos.UpdateUserInfoRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	user, err := c.userService.UpdateInfo(r.Context(), userID, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, user)
}

// PUT /api/setting
func (c *UserController) SettingHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	var req dtos.SettingRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	user, err := c.userService.UpdateSettings(r.Context(), userID, utils.Val(req.ShowAPIDoc))
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, user)
}
