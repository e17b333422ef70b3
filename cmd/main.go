package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/ddarnold/Online-Tutoring-Platform/internal/handler"
	"github.com/ddarnold/Online-Tutoring-Platform/internal/lib/logger/sl"
	"github.com/ddarnold/Online-Tutoring-Platform/internal/middleware"
	"github.com/ddarnold/Online-Tutoring-Platform/internal/repository/postgres"

	_ "github.com/ddarnold/Online-Tutoring-Platform/docs"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (customValidator *CustomValidator) Validate(i interface{}) error {
	if err := customValidator.validator.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// @title Online Tutoring Platform API
// @version 1.0
// @description Tutoring marketplace: course and tutor search, enrollment, ratings and meeting scheduling with database-enforced conflict detection

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @BasePath /api
// @schemes https http

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	godotenv.Load()

	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	e := echo.New()

	e.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.DELETE, echo.PATCH},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(echoMiddleware.RateLimiter(echoMiddleware.NewRateLimiterMemoryStore(rate.Limit(20))))

	e.Validator = &CustomValidator{validator: validator.New()}

	connString := os.Getenv("DATABASE_URL")
	if connString == "" {
		log.Error("DATABASE_URL not set")
		os.Exit(1)
	}

	storage, err := postgres.NewConnection(connString)
	if err != nil {
		log.Error("failed to connect to database", sl.Err(err))
		os.Exit(1)
	}
	defer storage.Close()

	ctx := context.Background()

	if err := storage.EnsureRoles(ctx); err != nil {
		log.Error("failed to seed roles", sl.Err(err))
		os.Exit(1)
	}

	// Scheduling invariants are dropped and recreated on every start so
	// the interval definition can evolve without migration scripts. By
	// default a failure here is logged and the service keeps running
	// without enforcement; STRICT_SCHEDULING=true makes it fatal.
	report, err := storage.ApplyMeetingConstraints(ctx)
	if err != nil {
		if os.Getenv("STRICT_SCHEDULING") == "true" {
			log.Error("scheduling constraints could not be applied", sl.Err(err))
			os.Exit(1)
		}
		log.Warn("running without scheduling constraints", sl.Err(err), slog.String("report", report))
	} else {
		log.Info(report)
	}

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	authMiddleware := middleware.JWTAuth()
	handler.SetupAuthRoutes(e, storage, authMiddleware)
	handler.SetupUserRoutes(e, storage, authMiddleware)
	handler.SetupCourseRoutes(e, storage, authMiddleware)
	handler.SetupMeetingRoutes(e, storage, authMiddleware)
	handler.SetupStudentRoutes(e, storage, authMiddleware)
	handler.SetupAdminRoutes(e, storage, authMiddleware)
	handler.SetupSearchRoutes(e, storage)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	e.Logger.Fatal(e.Start(":" + port))
}
