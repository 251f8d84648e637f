package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/campus-go-api/internal/config"
	"github.com/noah-isme/campus-go-api/internal/database"
	"github.com/noah-isme/campus-go-api/internal/handler"
	"github.com/noah-isme/campus-go-api/internal/middleware"
	"github.com/noah-isme/campus-go-api/internal/models"
	"github.com/noah-isme/campus-go-api/internal/repository"
	"github.com/noah-isme/campus-go-api/internal/router"
	"github.com/noah-isme/campus-go-api/internal/service"
	cloud "github.com/noah-isme/campus-go-api/pkg/cloudinary"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Faculty{},
		&models.Department{},
		&models.Programme{},
		&models.Student{},
		&models.AttendanceSession{},
		&models.AttendanceRecord{},
		&models.ExamCycle{},
		&models.ExamSchedule{},
		&models.CourseResult{},
		&models.Applicant{},
		&models.Announcement{},
		&models.ActivityLog{},
		&models.UploadRecord{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
	}

	var natsConn *nats.Conn
	if cfg.NATSURL != "" {
		natsConn, err = database.ConnectNATS(cfg.NATSURL)
		if err != nil {
			log.Fatalf("failed to connect to nats: %v", err)
		}
		defer natsConn.Close()
	}

	var uploader service.ImportStorage
	if cfg.CloudinaryCloudName != "" {
		cloudUploader, err := cloud.New(cloud.Config{
			CloudName: cfg.CloudinaryCloudName,
			APIKey:    cfg.CloudinaryAPIKey,
			APISecret: cfg.CloudinaryAPISecret,
			Folder:    cfg.CloudinaryUploadFolder,
		}, logger)
		if err != nil {
			log.Fatalf("failed to create cloudinary client: %v", err)
		}
		uploader = cloudUploader
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	attendanceRepo := repository.NewAttendanceRepository(db)
	examRepo := repository.NewExamRepository(db)
	resultRepo := repository.NewResultRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	applicantRepo := repository.NewApplicantRepository(db)
	announcementRepo := repository.NewAnnouncementRepository(db)
	activityRepo := repository.NewActivityLogRepository(db)
	uploadRepo := repository.NewUploadRepository(db)

	activityService := service.NewActivityService(activityRepo, logger)
	feedService := service.NewAttendanceFeedService(redisClient, cfg.EventChannel, natsConn, logger)
	attendanceService := service.NewAttendanceService(attendanceRepo, studentRepo, catalogRepo, validate, feedService, activityService, cfg.ShareBaseURL, logger)
	examService := service.NewExamService(examRepo, validate, activityService, logger)
	gradingService := service.NewGradingService(resultRepo, studentRepo, validate, activityService, logger)
	admissionService := service.NewAdmissionService(applicantRepo, catalogRepo, validate, activityService, logger)
	catalogService := service.NewCatalogService(catalogRepo, redisClient, cfg.CatalogCacheTTL, validate, logger)
	dashboardService := service.NewDashboardService(attendanceRepo, resultRepo, applicantRepo, studentRepo, redisClient, cfg.DashboardCacheTTL, logger)
	announcementService := service.NewAnnouncementService(announcementRepo, validate, activityService, logger)
	uploadService := service.NewUploadService(uploader, uploadRepo, cfg.UploadMaxMB, logger)
	seedService := service.NewSeedService(catalogRepo, studentRepo, cfg.SeedEnabled, cfg.SeedToken, logger)

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	feedService.Start(appCtx)

	attendanceHandler := handler.NewAttendanceHandler(attendanceService, feedService, logger)
	examHandler := handler.NewExamHandler(examService, logger)
	gradingHandler := handler.NewGradingHandler(gradingService, logger)
	admissionHandler := handler.NewAdmissionHandler(admissionService, logger)
	catalogHandler := handler.NewCatalogHandler(catalogService, logger)
	dashboardHandler := handler.NewDashboardHandler(dashboardService, logger)
	announcementHandler := handler.NewAnnouncementHandler(announcementService, logger)
	activityHandler := handler.NewActivityHandler(activityService, logger)
	uploadHandler := handler.NewUploadHandler(uploadService, logger)
	seedHandler := handler.NewSeedHandler(seedService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		AttendanceHandler:   attendanceHandler,
		ExamHandler:         examHandler,
		GradingHandler:      gradingHandler,
		AdmissionHandler:    admissionHandler,
		CatalogHandler:      catalogHandler,
		DashboardHandler:    dashboardHandler,
		AnnouncementHandler: announcementHandler,
		ActivityHandler:     activityHandler,
		UploadHandler:       uploadHandler,
		SeedHandler:         seedHandler,
		JWTMiddleware:       middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
