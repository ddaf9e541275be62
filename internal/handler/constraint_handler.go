package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BTEC2025/automatic-timetable-backend/internal/service"
	appErrors "github.com/BTEC2025/automatic-timetable-backend/pkg/errors"
	"github.com/BTEC2025/automatic-timetable-backend/pkg/response"
)

// ConstraintHandler handles scheduling rule endpoints.
type ConstraintHandler struct {
	service *service.ConstraintService
}

// NewConstraintHandler constructs a constraint handler.
func NewConstraintHandler(svc *service.ConstraintService) *ConstraintHandler {
	return &ConstraintHandler{service: svc}
}

// List godoc
// @Summary List scheduling constraints
// @Tags Constraints
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/constraints [get]
func (h *ConstraintHandler) List(c *gin.Context) {
	constraints, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, constraints, nil)
}

// Get returns a constraint by id.
func (h *ConstraintHandler) Get(c *gin.Context) {
	constraint, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, constraint, nil)
}

// Create godoc
// @Summary Create scheduling constraint
// @Tags Constraints
// @Accept json
// @Produce json
// @Param payload body service.ConstraintRequest true "Constraint payload"
// @Success 201 {object} response.Envelope
// @Router /admin/constraints [post]
func (h *ConstraintHandler) Create(c *gin.Context) {
	var req service.ConstraintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	constraint, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, constraint)
}

// Update modifies a constraint.
func (h *ConstraintHandler) Update(c *gin.Context) {
	var req service.ConstraintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	constraint, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, constraint, nil)
}

// Delete removes a constraint.
func (h *ConstraintHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
