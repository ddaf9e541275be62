package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BTEC2025/automatic-timetable-backend/internal/middleware"
	"github.com/BTEC2025/automatic-timetable-backend/internal/models"
	"github.com/BTEC2025/automatic-timetable-backend/internal/service"
)

// Handlers groups every HTTP handler for route registration.
type Handlers struct {
	Auth          *AuthHandler
	Timetable     *TimetableHandler
	Dashboard     *DashboardHandler
	Import        *ImportHandler
	Teachers      *TeacherHandler
	Rooms         *RoomHandler
	Subjects      *SubjectHandler
	Timeslots     *TimeslotHandler
	StudentGroups *StudentGroupHandler
	Departments   *DepartmentHandler
	YearLevels    *YearLevelHandler
	Constraints   *ConstraintHandler
	Teaches       *TeachHandler
	Registrations *RegistrationHandler
}

// RegisterRoutes mounts the API under the configured prefix. Catalog
// mutation routes require an admin token; schedule reads only need a
// valid login.
func RegisterRoutes(r *gin.Engine, prefix string, auth *service.AuthService, metrics *service.MetricsService, h Handlers) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := r.Group(prefix)

	api.POST("/auth/login", h.Auth.Login)

	authed := api.Group("")
	authed.Use(middleware.JWT(auth))
	authed.GET("/auth/me", h.Auth.Me)
	authed.GET("/schedule", h.Timetable.GetSchedule)
	authed.GET("/schedule/report", h.Timetable.LastReport)
	authed.GET("/schedule/export", h.Timetable.Export)
	if h.Dashboard != nil {
		authed.GET("/dashboard", h.Dashboard.Summary)
	}

	admin := api.Group("/admin")
	admin.Use(middleware.JWT(auth), middleware.RequireRoles(models.RoleAdmin))

	admin.POST("/timetable/generate", h.Timetable.Generate)
	admin.POST("/import/:entity", h.Import.Import)

	admin.GET("/teachers", h.Teachers.List)
	admin.GET("/teachers/:id", h.Teachers.Get)
	admin.POST("/teachers", h.Teachers.Create)
	admin.PUT("/teachers/:id", h.Teachers.Update)
	admin.DELETE("/teachers/:id", h.Teachers.Delete)

	admin.GET("/rooms", h.Rooms.List)
	admin.GET("/rooms/:id", h.Rooms.Get)
	admin.POST("/rooms", h.Rooms.Create)
	admin.PUT("/rooms/:id", h.Rooms.Update)
	admin.DELETE("/rooms/:id", h.Rooms.Delete)

	admin.GET("/subjects", h.Subjects.List)
	admin.GET("/subjects/:id", h.Subjects.Get)
	admin.POST("/subjects", h.Subjects.Create)
	admin.PUT("/subjects/:id", h.Subjects.Update)
	admin.DELETE("/subjects/:id", h.Subjects.Delete)

	admin.GET("/timeslots", h.Timeslots.List)
	admin.GET("/timeslots/:id", h.Timeslots.Get)
	admin.POST("/timeslots", h.Timeslots.Create)
	admin.PUT("/timeslots/:id", h.Timeslots.Update)
	admin.DELETE("/timeslots/:id", h.Timeslots.Delete)

	admin.GET("/student-groups", h.StudentGroups.List)
	admin.GET("/student-groups/:id", h.StudentGroups.Get)
	admin.POST("/student-groups", h.StudentGroups.Create)
	admin.PUT("/student-groups/:id", h.StudentGroups.Update)
	admin.DELETE("/student-groups/:id", h.StudentGroups.Delete)

	admin.GET("/departments", h.Departments.List)
	admin.GET("/departments/:id", h.Departments.Get)
	admin.POST("/departments", h.Departments.Create)
	admin.PUT("/departments/:id", h.Departments.Update)
	admin.DELETE("/departments/:id", h.Departments.Delete)

	admin.GET("/year-levels", h.YearLevels.List)
	admin.GET("/year-levels/:id", h.YearLevels.Get)
	admin.POST("/year-levels", h.YearLevels.Create)
	admin.PUT("/year-levels/:id", h.YearLevels.Update)
	admin.DELETE("/year-levels/:id", h.YearLevels.Delete)

	admin.GET("/constraints", h.Constraints.List)
	admin.GET("/constraints/:id", h.Constraints.Get)
	admin.POST("/constraints", h.Constraints.Create)
	admin.PUT("/constraints/:id", h.Constraints.Update)
	admin.DELETE("/constraints/:id", h.Constraints.Delete)

	admin.GET("/teaches", h.Teaches.List)
	admin.POST("/teaches", h.Teaches.Create)
	admin.DELETE("/teaches/:id", h.Teaches.Delete)

	admin.GET("/registrations", h.Registrations.List)
	admin.POST("/registrations", h.Registrations.Create)
	admin.DELETE("/registrations/:id", h.Registrations.Delete)
}
