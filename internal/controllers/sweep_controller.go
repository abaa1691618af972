package controllers

import (
	"net/http"

	"github.com/AbdellahHatouchi/property-management/internal/dtos"
	"github.com/AbdellahHatouchi/property-management/internal/services"
	"github.com/AbdellahHatouchi/property-management/pkg/utils"
)

type SweepController struct {
	sweepService *services.ExpirySweepService
}

func NewSweepController(sweepService *services.ExpirySweepService) *SweepController {
	return &SweepController{sweepService: sweepService}
}

// GET /api/update-rental-status
//
// Public so that an external scheduler can drive it. Send failures do not
// fail the request; only the release phase can.
func (c *SweepController) UpdateRentalStatusHandler(w http.ResponseWriter, r *http.Request) {
	res, err := c.sweepService.Sweep(r.Context())
	if err != nil {
		utils.Logger.WithError(err).Error("Expiry sweep failed")
		utils.RespondWithJSON(w, http.StatusInternalServerError, utils.MessageResponse{Message: "Internal server error"})
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.SweepResponse{
		Message:  "Rental statuses updated and notifications sent successfully",
		Expired:  res.Expired,
		Released: res.Released,
		Sent:     res.Sent,
		Failed:   res.Failed,
	})
}
