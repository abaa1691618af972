package controllers

import (
	"context"
	"net/http"

	"github.com/AbdellahHatouchi/property-management/internal/dtos"
	"github.com/AbdellahHatouchi/property-management/pkg/utils"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// HealthController checks DB connectivity.
type HealthController struct {
	db pinger
}

func NewHealthController(db pinger) *HealthController {
	return &HealthController{db: db}
}

// HealthCheckHandler => GET /health
func (c *HealthController) HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	if err := c.db.Ping(r.Context()); err != nil {
		utils.RespondErrorWithCode(w, http.StatusServiceUnavailable, utils.ErrCodeInternal, "Database unreachable", nil, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.HealthCheckResponse{Status: "OK"})
}
