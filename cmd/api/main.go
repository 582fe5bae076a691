package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/campusdesk/campusdesk-api/api/swagger"
	"github.com/campusdesk/campusdesk-api/internal/handler"
	internalmiddleware "github.com/campusdesk/campusdesk-api/internal/middleware"
	"github.com/campusdesk/campusdesk-api/internal/repository"
	"github.com/campusdesk/campusdesk-api/internal/service"
	"github.com/campusdesk/campusdesk-api/internal/store"
	"github.com/campusdesk/campusdesk-api/pkg/config"
	"github.com/campusdesk/campusdesk-api/pkg/logger"
	corsmiddleware "github.com/campusdesk/campusdesk-api/pkg/middleware/cors"
	reqidmiddleware "github.com/campusdesk/campusdesk-api/pkg/middleware/requestid"
	"github.com/campusdesk/campusdesk-api/pkg/storage"
)

// @title CampusDesk API
// @version 0.1.0
// @description Role-based academic records service backed by JSON documents
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

	metricsSvc := service.NewMetricsService()

	st, err := store.New(cfg.Data.Dir, logr, metricsSvc)
	if err != nil {
		logr.Sugar().Fatalw("failed to open document store", "error", err)
	}
	if err := st.Init(); err != nil {
		logr.Sugar().Fatalw("failed to initialize documents", "error", err)
	}

	uploads, err := storage.NewUploadStore(cfg.Data.UploadDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to open upload store", "error", err)
	}

	validate := validator.New()

	userRepo := repository.NewUserRepository(st, validate, logr)
	courseRepo := repository.NewCourseRepository(st, validate, logr)
	departmentRepo := repository.NewDepartmentRepository(st, validate, logr)
	attendanceRepo := repository.NewAttendanceRepository(st, validate, logr)
	assignmentRepo := repository.NewAssignmentRepository(st, validate, logr)
	projectRepo := repository.NewProjectRepository(st, validate, logr)
	submissionRepo := repository.NewSubmissionRepository(st, validate, logr)
	certificateRepo := repository.NewCertificateRepository(st, validate, logr)
	announcementRepo := repository.NewAnnouncementRepository(st, validate, logr)
	examRepo := repository.NewExamRepository(st, validate, logr)

	if cfg.Bootstrap.Enabled {
		ctx := context.Background()
		if err := userRepo.Seed(ctx); err != nil {
			logr.Sugar().Fatalw("failed to seed default accounts", "error", err)
		}
		if err := departmentRepo.Seed(ctx); err != nil {
			logr.Sugar().Fatalw("failed to seed default departments", "error", err)
		}
	}

	authService := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		Secret:     cfg.JWT.Secret,
		Expiration: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	reportService := service.NewReportService(service.ReportServiceDeps{
		Users:         userRepo,
		Courses:       courseRepo,
		Departments:   departmentRepo,
		Attendance:    attendanceRepo,
		Submissions:   submissionRepo,
		Certificates:  certificateRepo,
		Exams:         examRepo,
		Projects:      projectRepo,
		Announcements: announcementRepo,
	}, logr)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handler.RegisterRoutes(r, cfg.APIPrefix, authService, handler.Handlers{
		Auth:         handler.NewAuthHandler(authService),
		User:         handler.NewUserHandler(userRepo),
		Course:       handler.NewCourseHandler(courseRepo, attendanceRepo),
		Attendance:   handler.NewAttendanceHandler(attendanceRepo),
		Assignment:   handler.NewAssignmentHandler(assignmentRepo),
		Project:      handler.NewProjectHandler(projectRepo),
		Submission:   handler.NewSubmissionHandler(submissionRepo),
		Certificate:  handler.NewCertificateHandler(certificateRepo),
		Announcement: handler.NewAnnouncementHandler(announcementRepo),
		Department:   handler.NewDepartmentHandler(departmentRepo),
		Exam:         handler.NewExamHandler(examRepo),
		Report:       handler.NewReportHandler(reportService),
		Upload:       handler.NewUploadHandler(uploads),
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
