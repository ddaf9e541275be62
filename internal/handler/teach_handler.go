package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BTEC2025/automatic-timetable-backend/internal/service"
	appErrors "github.com/BTEC2025/automatic-timetable-backend/pkg/errors"
	"github.com/BTEC2025/automatic-timetable-backend/pkg/response"
)

// TeachHandler handles teacher/subject eligibility endpoints.
type TeachHandler struct {
	service *service.TeachService
}

// NewTeachHandler constructs a teach handler.
func NewTeachHandler(svc *service.TeachService) *TeachHandler {
	return &TeachHandler{service: svc}
}

// List returns every eligibility.
func (h *TeachHandler) List(c *gin.Context) {
	rows, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows, nil)
}

// Create declares that a teacher may teach a subject.
func (h *TeachHandler) Create(c *gin.Context) {
	var req service.TeachRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	eligibility, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, eligibility)
}

// Delete removes an eligibility.
func (h *TeachHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
