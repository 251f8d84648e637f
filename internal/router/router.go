package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/campus-go-api/internal/config"
	"github.com/noah-isme/campus-go-api/internal/handler"
	"github.com/noah-isme/campus-go-api/internal/middleware"
	"github.com/noah-isme/campus-go-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AttendanceHandler   *handler.AttendanceHandler
	ExamHandler         *handler.ExamHandler
	GradingHandler      *handler.GradingHandler
	AdmissionHandler    *handler.AdmissionHandler
	CatalogHandler      *handler.CatalogHandler
	DashboardHandler    *handler.DashboardHandler
	AnnouncementHandler *handler.AnnouncementHandler
	ActivityHandler     *handler.ActivityHandler
	UploadHandler       *handler.UploadHandler
	SeedHandler         *handler.SeedHandler
	JWTMiddleware       fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))
	app.Get("/metrics", observability.MetricsHandler())

	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	adminOnly := middleware.RequireRole("super_admin", "school_admin")
	staffOrAdmin := middleware.RequireRole("staff", "school_admin", "super_admin")

	// Public share link for attendance sessions, guarded by its token alone.
	// Unauthenticated, so it carries a per-IP rate limit.
	if deps.AttendanceHandler != nil {
		deps.AttendanceHandler.RegisterPublic(api, middleware.RateLimit("share_link", 60, time.Minute))

		attendance := api.Group("/attendance", jwtMiddleware, staffOrAdmin)
		deps.AttendanceHandler.Register(attendance)
	}

	if deps.ExamHandler != nil {
		exams := api.Group("/exams", jwtMiddleware, staffOrAdmin)
		deps.ExamHandler.Register(exams)
	}

	if deps.GradingHandler != nil {
		grading := api.Group("/grading", jwtMiddleware, staffOrAdmin)
		deps.GradingHandler.Register(grading)
	}

	if deps.AdmissionHandler != nil {
		admissions := api.Group("/admissions", jwtMiddleware, adminOnly)
		deps.AdmissionHandler.Register(admissions)
	}

	if deps.CatalogHandler != nil {
		catalog := api.Group("/catalog", jwtMiddleware)
		deps.CatalogHandler.Register(catalog)
	}

	if deps.DashboardHandler != nil {
		dashboard := api.Group("/dashboard", jwtMiddleware, adminOnly)
		deps.DashboardHandler.Register(dashboard)
	}

	if deps.AnnouncementHandler != nil {
		announcements := api.Group("/announcements", jwtMiddleware, staffOrAdmin)
		deps.AnnouncementHandler.Register(announcements)
	}

	if deps.ActivityHandler != nil {
		activity := api.Group("/activity", jwtMiddleware, adminOnly)
		deps.ActivityHandler.Register(activity)
	}

	if deps.UploadHandler != nil {
		uploads := api.Group("/uploads", jwtMiddleware, staffOrAdmin)
		deps.UploadHandler.Register(uploads)
	}

	if deps.SeedHandler != nil {
		seed := api.Group("/seed", middleware.RateLimit("seed", 10, time.Minute))
		deps.SeedHandler.Register(seed)
	}
}
