package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BTEC2025/automatic-timetable-backend/internal/service"
	appErrors "github.com/BTEC2025/automatic-timetable-backend/pkg/errors"
	"github.com/BTEC2025/automatic-timetable-backend/pkg/response"
)

// StudentGroupHandler handles student group catalog endpoints.
type StudentGroupHandler struct {
	service *service.StudentGroupService
}

// NewStudentGroupHandler constructs a student group handler.
func NewStudentGroupHandler(svc *service.StudentGroupService) *StudentGroupHandler {
	return &StudentGroupHandler{service: svc}
}

// List godoc
// @Summary List student groups
// @Tags StudentGroups
// @Produce json
// @Param search query string false "Search keyword"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /admin/student-groups [get]
func (h *StudentGroupHandler) List(c *gin.Context) {
	search := strings.TrimSpace(c.Query("search"))
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	groups, pagination, err := h.service.List(c.Request.Context(), search, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, groups, pagination)
}

// Get returns a student group by id.
func (h *StudentGroupHandler) Get(c *gin.Context) {
	group, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, group, nil)
}

// Create godoc
// @Summary Create student group
// @Tags StudentGroups
// @Accept json
// @Produce json
// @Param payload body service.CreateStudentGroupRequest true "Student group payload"
// @Success 201 {object} response.Envelope
// @Router /admin/student-groups [post]
func (h *StudentGroupHandler) Create(c *gin.Context) {
	var req service.CreateStudentGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	group, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, group)
}

// Update modifies a student group.
func (h *StudentGroupHandler) Update(c *gin.Context) {
	var req service.UpdateStudentGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	group, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, group, nil)
}

// Delete removes a student group.
func (h *StudentGroupHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
