package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/akti/portal-api/docs"
	"github.com/akti/portal-api/internal/api/handler"
	"github.com/akti/portal-api/internal/api/middleware"
	"github.com/akti/portal-api/internal/core/ports"
	"github.com/akti/portal-api/internal/core/service"
	"github.com/akti/portal-api/internal/core/token"
	"github.com/akti/portal-api/internal/infrastructure/config"
	mongodb "github.com/akti/portal-api/internal/infrastructure/db/mongo"
	redisdb "github.com/akti/portal-api/internal/infrastructure/db/redis"
	"github.com/akti/portal-api/internal/infrastructure/http/handlers"
)

// NewRouter builds the Echo instance with all routes registered. rdb
// may be nil: the token denylist is then disabled and logout falls
// back to the stateless cookie overwrite.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger, audit ports.AuditRecorder) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Token lifecycle ---
	issuer := token.NewIssuer(cfg.JWTSecret, token.DefaultTTL)
	verifier := token.NewVerifier(cfg.JWTSecret)
	var revocations ports.TokenRevocations
	if rdb != nil {
		revocations = redisdb.NewDenylist(rdb)
	}

	// The session gate runs pre-router so no handler, matched or not,
	// is reachable on a scoped prefix without verified claims.
	e.Pre(middleware.SessionGate(verifier, revocations))

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("portal"))

	// --- Repositories ---
	principalRepo := mongodb.NewPrincipalRepository(db)
	csrRepo := mongodb.NewCSRRepository(db)
	courseRepo := mongodb.NewCourseRepository(db)
	studentRepo := mongodb.NewStudentRepository(db)
	coworkerRepo := mongodb.NewCoWorkerRepository(db)

	// --- Services ---
	authService := service.NewAuthService(principalRepo, issuer, verifier, revocations, audit, log)
	csrService := service.NewCSRService(csrRepo, audit, log)
	courseService := service.NewCourseService(courseRepo, audit, log)
	studentService := service.NewStudentService(studentRepo, audit, log)
	coworkerService := service.NewCoWorkerService(coworkerRepo, audit, log)
	reportService := service.NewReportService(csrRepo, courseRepo, studentRepo, coworkerRepo, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService, cfg.Env == "production")
	csrHandler := handler.NewCSRHandler(csrService)
	courseHandler := handler.NewCourseHandler(courseService)
	studentHandler := handler.NewStudentHandler(studentService)
	coworkerHandler := handler.NewCoWorkerHandler(coworkerService)
	reportHandler := handler.NewReportHandler(reportService)

	// --- Public surface ---
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"service": "portal-api", "login": "/api/login"})
	})
	e.POST("/api/login", authHandler.Login)
	e.GET("/api/logout", authHandler.Logout)

	// --- Admin surface (gated: isAdmin) ---
	admin := e.Group("/admin")
	admin.GET("/dashboard", reportHandler.AdminDashboard)
	admin.GET("/reports", reportHandler.AdminReport)
	admin.POST("/csrs", csrHandler.Create)
	admin.GET("/csrs", csrHandler.List)
	admin.GET("/csrs/:id", csrHandler.Get)
	admin.PUT("/csrs/:id", csrHandler.Update)
	admin.DELETE("/csrs/:id", csrHandler.Delete)
	admin.POST("/courses", courseHandler.Create)
	admin.GET("/courses", courseHandler.List)
	admin.GET("/courses/:id", courseHandler.Get)
	admin.PUT("/courses/:id", courseHandler.Update)
	admin.DELETE("/courses/:id", courseHandler.Delete)

	// --- CSR surface (gated: isCSR or isAdmin) ---
	csr := e.Group("/csr")
	csr.GET("/csr-dashboard", reportHandler.CSRDashboard)
	csr.POST("/students", studentHandler.Create)
	csr.GET("/students", studentHandler.List)
	csr.GET("/students/:id", studentHandler.Get)
	csr.PUT("/students/:id", studentHandler.Update)
	csr.DELETE("/students/:id", studentHandler.Delete)
	csr.POST("/co-workers", coworkerHandler.Create)
	csr.GET("/co-workers", coworkerHandler.List)
	csr.GET("/co-workers/:id", coworkerHandler.Get)
	csr.PUT("/co-workers/:id", coworkerHandler.Update)
	csr.DELETE("/co-workers/:id", coworkerHandler.Delete)

	// --- Operational surface (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
