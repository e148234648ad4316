package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/adewale-oss/timetable-api/api/swagger"
	"github.com/adewale-oss/timetable-api/internal/handler"
	internalmiddleware "github.com/adewale-oss/timetable-api/internal/middleware"
	"github.com/adewale-oss/timetable-api/internal/models"
	"github.com/adewale-oss/timetable-api/internal/repository"
	"github.com/adewale-oss/timetable-api/internal/scheduler"
	"github.com/adewale-oss/timetable-api/internal/service"
	"github.com/adewale-oss/timetable-api/pkg/cache"
	"github.com/adewale-oss/timetable-api/pkg/config"
	"github.com/adewale-oss/timetable-api/pkg/database"
	"github.com/adewale-oss/timetable-api/pkg/logger"
	corsmiddleware "github.com/adewale-oss/timetable-api/pkg/middleware/cors"
	reqidmiddleware "github.com/adewale-oss/timetable-api/pkg/middleware/requestid"
)

// @title Course Timetable API
// @version 1.0.0
// @description Constraint-based course timetable generation and management
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

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
		logr.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, caching disabled", zap.Error(err))
		redisClient = nil
	}

	validate := validator.New()

	userRepo := repository.NewUserRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	lecturerRepo := repository.NewLecturerRepository(db)
	venueRepo := repository.NewVenueRepository(db)
	timeSlotRepo := repository.NewTimeSlotRepository(db)
	timetableRepo := repository.NewTimetableRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	defer cacheRepo.Close()

	metricsSvc := service.NewMetricsService()

	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret:  cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.Expiration,
		RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
		Issuer:             "timetable-api",
	})
	courseSvc := service.NewCourseService(courseRepo, lecturerRepo, validate, logr)
	catalogSvc := service.NewCatalogService(lecturerRepo, venueRepo, timeSlotRepo, validate, logr)
	timetableSvc := service.NewTimetableService(
		courseRepo,
		timeSlotRepo,
		lecturerRepo,
		venueRepo,
		timetableRepo,
		cacheRepo,
		db,
		metricsSvc,
		validate,
		logr,
		service.TimetableConfig{
			Seed:            cfg.Scheduler.Seed,
			MaxSteps:        cfg.Scheduler.MaxSteps,
			GenerateTimeout: cfg.Scheduler.GenerateTimeout,
			Blackout:        blackoutFromConfig(cfg.Scheduler, logr),
			GridTTL:         cfg.Cache.GridTTL,
			StatsTTL:        cfg.Cache.StatsTTL,
			JobQueueSize:    cfg.Jobs.QueueSize,
		},
	)
	exportSvc := service.NewExportService(timetableSvc, nil, nil, service.ExportConfig{Title: cfg.Exports.Title}, logr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	timetableSvc.StartWorkers(ctx)
	defer timetableSvc.StopWorkers()

	authHandler := handler.NewAuthHandler(authSvc)
	courseHandler := handler.NewCourseHandler(courseSvc)
	catalogHandler := handler.NewCatalogHandler(catalogSvc)
	timetableHandler := handler.NewTimetableHandler(timetableSvc, exportSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)

	secured := api.Group("")
	secured.Use(internalmiddleware.JWT(authSvc))

	secured.POST("/auth/logout", authHandler.Logout)
	secured.GET("/auth/me", authHandler.Me)

	staffUp := internalmiddleware.RequireRoles(models.RoleAdmin, models.RoleStaff)
	adminOnly := internalmiddleware.RequireRoles(models.RoleAdmin)

	secured.GET("/courses", courseHandler.List)
	secured.GET("/courses/:id", courseHandler.Get)
	secured.POST("/courses", staffUp, courseHandler.Create)
	secured.PUT("/courses/:id", staffUp, courseHandler.Update)
	secured.DELETE("/courses/:id", staffUp, courseHandler.Delete)

	secured.GET("/lecturers", catalogHandler.ListLecturers)
	secured.GET("/lecturers/:id", catalogHandler.GetLecturer)
	secured.POST("/lecturers", staffUp, catalogHandler.CreateLecturer)
	secured.PUT("/lecturers/:id", staffUp, catalogHandler.UpdateLecturer)
	secured.DELETE("/lecturers/:id", staffUp, catalogHandler.DeleteLecturer)

	secured.GET("/venues", catalogHandler.ListVenues)
	secured.GET("/venues/:id", catalogHandler.GetVenue)
	secured.POST("/venues", staffUp, catalogHandler.CreateVenue)
	secured.PUT("/venues/:id", staffUp, catalogHandler.UpdateVenue)
	secured.DELETE("/venues/:id", staffUp, catalogHandler.DeleteVenue)

	secured.GET("/timeslots", catalogHandler.ListTimeSlots)
	secured.POST("/timeslots", adminOnly, catalogHandler.CreateTimeSlot)
	secured.DELETE("/timeslots/:id", adminOnly, catalogHandler.DeleteTimeSlot)

	secured.GET("/timetables", timetableHandler.List)
	secured.GET("/timetables/stats", timetableHandler.Stats)
	secured.GET("/timetables/:id", timetableHandler.Get)
	secured.GET("/timetables/:id/grid", timetableHandler.Grid)
	secured.POST("/timetables/generate", adminOnly, timetableHandler.Generate)
	secured.POST("/timetables/generate/async", adminOnly, timetableHandler.GenerateAsync)
	secured.GET("/timetables/jobs/:id", timetableHandler.JobStatus)
	secured.POST("/timetables/:id/publish", adminOnly, timetableHandler.Publish)
	secured.DELETE("/timetables/:id", adminOnly, timetableHandler.Delete)
	secured.PATCH("/timetables/:id/entries/:entryId", staffUp, timetableHandler.UpdateEntry)
	if cfg.Exports.Enabled {
		secured.GET("/timetables/:id/export", timetableHandler.Export)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{Addr: addr, Handler: r}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}

// blackoutFromConfig parses the configured blackout window, falling back to
// the default Friday 13:00-15:00 window on malformed values.
func blackoutFromConfig(cfg config.SchedulerConfig, logr *zap.Logger) scheduler.Blackout {
	day, err := scheduler.ParseDay(cfg.BlackoutDay)
	if err != nil {
		logr.Warn("invalid blackout day, using default", zap.String("day", cfg.BlackoutDay))
		return scheduler.DefaultBlackout()
	}
	start, err := scheduler.ParseClock(cfg.BlackoutStart)
	if err != nil {
		logr.Warn("invalid blackout start, using default", zap.String("start", cfg.BlackoutStart))
		return scheduler.DefaultBlackout()
	}
	end, err := scheduler.ParseClock(cfg.BlackoutEnd)
	if err != nil {
		logr.Warn("invalid blackout end, using default", zap.String("end", cfg.BlackoutEnd))
		return scheduler.DefaultBlackout()
	}
	return scheduler.Blackout{Day: day, Start: start, End: end}
}
