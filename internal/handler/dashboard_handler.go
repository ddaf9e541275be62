package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BTEC2025/automatic-timetable-backend/internal/service"
	"github.com/BTEC2025/automatic-timetable-backend/pkg/response"
)

// DashboardHandler serves the aggregated dashboard payload.
type DashboardHandler struct {
	service *service.DashboardService
}

// NewDashboardHandler constructs a dashboard handler.
func NewDashboardHandler(svc *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: svc}
}

// Summary godoc
// @Summary Catalog totals and the latest generation report
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /dashboard [get]
func (h *DashboardHandler) Summary(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary, nil)
}
