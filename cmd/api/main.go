package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/BTEC2025/automatic-timetable-backend/api/swagger"
	"github.com/BTEC2025/automatic-timetable-backend/internal/engine"
	"github.com/BTEC2025/automatic-timetable-backend/internal/handler"
	"github.com/BTEC2025/automatic-timetable-backend/internal/middleware"
	"github.com/BTEC2025/automatic-timetable-backend/internal/repository"
	"github.com/BTEC2025/automatic-timetable-backend/internal/service"
	"github.com/BTEC2025/automatic-timetable-backend/pkg/cache"
	"github.com/BTEC2025/automatic-timetable-backend/pkg/config"
	"github.com/BTEC2025/automatic-timetable-backend/pkg/database"
	"github.com/BTEC2025/automatic-timetable-backend/pkg/logger"
	corsmiddleware "github.com/BTEC2025/automatic-timetable-backend/pkg/middleware/cors"
	reqidmiddleware "github.com/BTEC2025/automatic-timetable-backend/pkg/middleware/requestid"
)

// @title Automatic Timetable API
// @version 1.0.0
// @description Greedy timetable generation for vocational course schedules
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
		redisClient = nil
	}

	validate := validator.New()

	teacherRepo := repository.NewTeacherRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	subjectRepo := repository.NewSubjectRepository(db)
	timeslotRepo := repository.NewTimeslotRepository(db)
	groupRepo := repository.NewStudentGroupRepository(db)
	departmentRepo := repository.NewDepartmentRepository(db)
	yearLevelRepo := repository.NewYearLevelRepository(db)
	constraintRepo := repository.NewConstraintRepository(db)
	teachRepo := repository.NewTeachRepository(db)
	registrationRepo := repository.NewRegistrationRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)
	userRepo := repository.NewUserRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	metricsSvc := service.NewMetricsService()
	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		Secret:     cfg.JWT.Secret,
		Expiration: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	teacherSvc := service.NewTeacherService(teacherRepo, validate, logr)
	roomSvc := service.NewRoomService(roomRepo, validate, logr)
	subjectSvc := service.NewSubjectService(subjectRepo, validate, logr)
	timeslotSvc := service.NewTimeslotService(timeslotRepo, validate, logr)
	groupSvc := service.NewStudentGroupService(groupRepo, validate, logr)
	departmentSvc := service.NewDepartmentService(departmentRepo, validate, logr)
	yearLevelSvc := service.NewYearLevelService(yearLevelRepo, validate, logr)
	constraintSvc := service.NewConstraintService(constraintRepo, validate, logr)
	teachSvc := service.NewTeachService(teachRepo, teacherRepo, subjectRepo, validate, logr)
	registrationSvc := service.NewRegistrationService(registrationRepo, groupRepo, subjectRepo, validate, logr)

	timetableSvc := service.NewTimetableService(
		timeslotRepo, roomRepo, teacherRepo, subjectRepo, groupRepo,
		teachRepo, registrationRepo, constraintRepo, scheduleRepo,
		db, engine.NewGreedy(logr), metricsSvc, logr,
	)

	exportSvc := service.NewExportService(scheduleRepo, timeslotRepo, nil, nil, logr)
	importSvc := service.NewImportService(teacherSvc, roomSvc, subjectSvc, groupSvc, teachSvc, registrationSvc, logr)

	var dashboardSvc *service.DashboardService
	if cfg.Dashboard.Enabled {
		dashboardSvc = service.NewDashboardService(service.DashboardServiceParams{
			Teachers:      teacherRepo,
			Rooms:         roomRepo,
			Subjects:      subjectRepo,
			Groups:        groupRepo,
			Registrations: registrationRepo,
			Schedules:     scheduleRepo,
			Reports:       timetableSvc,
			Cache:         cacheRepo,
			Metrics:       metricsSvc,
			Logger:        logr,
			Config: service.DashboardServiceConfig{
				Enabled:  redisClient != nil,
				CacheTTL: cfg.Dashboard.CacheTTL,
			},
		})
	}

	handlers := handler.Handlers{
		Auth:          handler.NewAuthHandler(authSvc),
		Timetable:     handler.NewTimetableHandler(timetableSvc, exportSvc, dashboardSvc),
		Import:        handler.NewImportHandler(importSvc, cfg.Import.MaxFileSizeBytes),
		Teachers:      handler.NewTeacherHandler(teacherSvc),
		Rooms:         handler.NewRoomHandler(roomSvc),
		Subjects:      handler.NewSubjectHandler(subjectSvc),
		Timeslots:     handler.NewTimeslotHandler(timeslotSvc),
		StudentGroups: handler.NewStudentGroupHandler(groupSvc),
		Departments:   handler.NewDepartmentHandler(departmentSvc),
		YearLevels:    handler.NewYearLevelHandler(yearLevelSvc),
		Constraints:   handler.NewConstraintHandler(constraintSvc),
		Teaches:       handler.NewTeachHandler(teachSvc),
		Registrations: handler.NewRegistrationHandler(registrationSvc),
	}
	if dashboardSvc != nil {
		handlers.Dashboard = handler.NewDashboardHandler(dashboardSvc)
	}

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	handler.RegisterRoutes(r, cfg.APIPrefix, authSvc, metricsSvc, handlers)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
