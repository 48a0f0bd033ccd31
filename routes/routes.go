package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/adiletkanalbekov5-byte/techschool/config"
	"github.com/adiletkanalbekov5-byte/techschool/handlers"
	"github.com/adiletkanalbekov5-byte/techschool/metrics"
	"github.com/adiletkanalbekov5-byte/techschool/middlewares"
)

// Register wires all HTTP routes.
func Register(e *echo.Echo, cfg *config.Config) {
	// ===== Handlers (shared singletons) =====
	auth := handlers.NewAuthHandler(cfg)
	crs := handlers.NewCourseHandler()
	lsn := handlers.NewLessonHandler()
	enr := handlers.NewEnrollmentHandler()
	cert := handlers.NewCertificateHandler()
	tch := handlers.NewTeacherProfileHandler()
	dir := handlers.NewDirectorProfileHandler()
	grp := handlers.NewGroupHandler()
	jrn := handlers.NewJournalHandler()
	vid := handlers.NewVideoHandler()
	app := handlers.NewApplicationHandler()
	usr := handlers.NewAdminUserHandler()

	e.GET("/health", handlers.Health)
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	authMW := middlewares.RequireAuth(cfg.JWTSecret)
	optMW := middlewares.OptionalAuth(cfg.JWTSecret)

	api := e.Group("/api")

	// ===== Auth / Tokens =====
	api.POST("/auth/register", auth.Register)
	api.POST("/token", auth.Token)
	api.POST("/token/refresh", auth.Refresh)

	// ===== Catalog (อ่านสาธารณะ เขียนต้องล็อกอิน) =====
	api.GET("/courses", crs.List)
	api.GET("/courses/:slug", crs.GetBySlug)
	api.POST("/courses", crs.Create, authMW)
	api.PUT("/courses/:slug", crs.Update, authMW)
	api.PATCH("/courses/:slug", crs.Update, authMW)
	api.DELETE("/courses/:slug", crs.Delete, authMW)

	api.GET("/lessons", lsn.List)
	api.GET("/lessons/:id", lsn.Get)
	api.POST("/lessons", lsn.Create, authMW)
	api.PUT("/lessons/:id", lsn.Update, authMW)
	api.PATCH("/lessons/:id", lsn.Update, authMW)
	api.DELETE("/lessons/:id", lsn.Delete, authMW)

	// ===== Enrollment =====
	api.GET("/enrollments", enr.List, authMW)
	api.POST("/enrollments", enr.Create, authMW)
	api.GET("/enrollments/:id", enr.Get, authMW)
	api.PUT("/enrollments/:id", enr.Update, authMW)
	api.PATCH("/enrollments/:id", enr.Update, authMW)
	api.DELETE("/enrollments/:id", enr.Delete, authMW)

	// ===== Certificates (อ่านสาธารณะ; ออกใบต้องล็อกอิน) =====
	api.GET("/certificates", cert.List)
	api.GET("/certificates/by-number", cert.ByNumber)
	api.GET("/certificates/:id", cert.Get)
	api.POST("/certificates", cert.Issue, authMW)

	// ===== Profiles =====
	api.GET("/teachers", tch.List, authMW)
	api.POST("/teachers", tch.Create, authMW)
	api.GET("/teachers/:id", tch.Get, authMW)
	api.PUT("/teachers/:id", tch.Update, authMW)
	api.PATCH("/teachers/:id", tch.Update, authMW)
	api.DELETE("/teachers/:id", tch.Delete, authMW)

	api.GET("/directors", dir.List, authMW)
	api.POST("/directors", dir.Create, authMW)
	api.GET("/directors/:id", dir.Get, authMW)
	api.PUT("/directors/:id", dir.Update, authMW)
	api.PATCH("/directors/:id", dir.Update, authMW)
	api.DELETE("/directors/:id", dir.Delete, authMW)

	// ===== Groups & Journal =====
	api.GET("/groups", grp.List, authMW)
	api.POST("/groups", grp.Create, authMW)
	api.GET("/groups/:id", grp.Get, authMW)
	api.PUT("/groups/:id", grp.Update, authMW)
	api.PATCH("/groups/:id", grp.Update, authMW)
	api.DELETE("/groups/:id", grp.Delete, authMW)

	journal := api.Group("/journal", authMW, middlewares.RequirePermission("journal", "any"))
	journal.GET("", jrn.List)
	journal.POST("", jrn.Create)
	journal.GET("/:id", jrn.Get)
	journal.PUT("/:id", jrn.Update)
	journal.PATCH("/:id", jrn.Update)
	journal.DELETE("/:id", jrn.Delete)

	// ===== Video lessons (อ่านสาธารณะ) =====
	api.GET("/videos", vid.List)
	api.GET("/videos/:id", vid.Get)
	api.POST("/videos", vid.Create, authMW)
	api.PUT("/videos/:id", vid.Update, authMW)
	api.PATCH("/videos/:id", vid.Update, authMW)
	api.DELETE("/videos/:id", vid.Delete, authMW)

	// ===== Application intake (สร้างได้ไม่ต้องล็อกอิน) =====
	api.POST("/applications", app.Create, optMW)

	// ===== Admin =====
	adminApps := api.Group("/admin/applications", authMW, middlewares.RequirePermission("applications", "any"))
	adminApps.GET("", app.List)
	adminApps.GET("/:id", app.Get)
	adminApps.PUT("/:id", app.Update)
	adminApps.PATCH("/:id", app.Update)
	adminApps.DELETE("/:id", app.Delete)

	adminUsers := api.Group("/admin/users", authMW, middlewares.RequirePermission("users", "any"))
	adminUsers.GET("", usr.List)
	adminUsers.POST("", usr.Create)
	adminUsers.GET("/:id", usr.Get)
	adminUsers.PUT("/:id", usr.Update)
	adminUsers.PATCH("/:id", usr.Update)
	adminUsers.DELETE("/:id", usr.Delete)
}
