package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BTEC2025/automatic-timetable-backend/internal/service"
	appErrors "github.com/BTEC2025/automatic-timetable-backend/pkg/errors"
	"github.com/BTEC2025/automatic-timetable-backend/pkg/response"
)

// ImportHandler accepts catalog CSV uploads.
type ImportHandler struct {
	service     *service.ImportService
	maxFileSize int64
}

// NewImportHandler constructs an import handler.
func NewImportHandler(svc *service.ImportService, maxFileSize int64) *ImportHandler {
	if maxFileSize <= 0 {
		maxFileSize = 5 << 20
	}
	return &ImportHandler{service: svc, maxFileSize: maxFileSize}
}

// Import godoc
// @Summary Import catalog rows from a CSV file
// @Tags Import
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param entity path string true "teachers, rooms, subjects, student-groups, teaches, or registrations"
// @Param file formData file true "CSV file"
// @Success 200 {object} response.Envelope
// @Router /admin/import/{entity} [post]
func (h *ImportHandler) Import(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "file field is required"))
		return
	}
	if fileHeader.Size > h.maxFileSize {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "file exceeds the size limit"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open upload"))
		return
	}
	defer file.Close()

	summary, err := h.service.Import(c.Request.Context(), c.Param("entity"), file)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary, nil)
}
