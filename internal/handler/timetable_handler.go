package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BTEC2025/automatic-timetable-backend/internal/models"
	"github.com/BTEC2025/automatic-timetable-backend/internal/service"
	"github.com/BTEC2025/automatic-timetable-backend/pkg/response"
)

type dashboardInvalidator interface {
	Invalidate(ctx context.Context)
}

// TimetableHandler exposes generation and schedule endpoints.
type TimetableHandler struct {
	service   *service.TimetableService
	exporter  *service.ExportService
	dashboard dashboardInvalidator
}

// NewTimetableHandler constructs a timetable handler.
func NewTimetableHandler(svc *service.TimetableService, exporter *service.ExportService, dashboard dashboardInvalidator) *TimetableHandler {
	return &TimetableHandler{service: svc, exporter: exporter, dashboard: dashboard}
}

// Generate godoc
// @Summary Generate the weekly timetable from current catalog data
// @Tags Timetable
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /admin/timetable/generate [post]
func (h *TimetableHandler) Generate(c *gin.Context) {
	report, err := h.service.Generate(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	if h.dashboard != nil {
		h.dashboard.Invalidate(c.Request.Context())
	}
	response.JSON(c, http.StatusOK, report, nil)
}

// GetSchedule godoc
// @Summary List persisted schedule entries
// @Tags Timetable
// @Produce json
// @Param group query string false "Filter by group code"
// @Param teacher query string false "Filter by teacher code"
// @Param room query string false "Filter by room code"
// @Success 200 {object} response.Envelope
// @Router /schedule [get]
func (h *TimetableHandler) GetSchedule(c *gin.Context) {
	filter := scheduleFilterFromQuery(c)
	entries, err := h.service.GetSchedule(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries, nil)
}

// LastReport godoc
// @Summary Return the most recent generation report
// @Tags Timetable
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /schedule/report [get]
func (h *TimetableHandler) LastReport(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.LastReport(), nil)
}

// Export godoc
// @Summary Export the schedule as CSV or PDF
// @Tags Timetable
// @Produce octet-stream
// @Param format query string true "csv or pdf"
// @Param group query string false "Filter by group code"
// @Param teacher query string false "Filter by teacher code"
// @Param room query string false "Filter by room code"
// @Success 200 {file} binary
// @Router /schedule/export [get]
func (h *TimetableHandler) Export(c *gin.Context) {
	filter := scheduleFilterFromQuery(c)
	result, err := h.exporter.Export(c.Request.Context(), c.DefaultQuery("format", service.ExportFormatCSV), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	c.Data(http.StatusOK, result.ContentType, result.Data)
}

func scheduleFilterFromQuery(c *gin.Context) models.ScheduleFilter {
	return models.ScheduleFilter{
		GroupCode:   strings.ToUpper(strings.TrimSpace(c.Query("group"))),
		TeacherCode: strings.ToUpper(strings.TrimSpace(c.Query("teacher"))),
		RoomCode:    strings.ToUpper(strings.TrimSpace(c.Query("room"))),
	}
}
