package handlers

import (
	"time"

	"github.com/bluestock/ipo-platform/services"
	"github.com/gofiber/fiber/v2"
)

// DashboardHandler buckets the full IPO listing by lifecycle state. The clock
// is injectable so the bucketing is testable at fixed instants.
type DashboardHandler struct {
	Service *services.IPOService
	Now     func() time.Time
}

func NewDashboardHandler(service *services.IPOService) *DashboardHandler {
	return &DashboardHandler{Service: service, Now: time.Now}
}

func (h *DashboardHandler) GetDashboard(c *fiber.Ctx) error {
	rows, err := h.Service.FetchDashboardIPOs(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(services.CategorizeIPOs(rows, h.Now()))
}
