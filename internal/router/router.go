package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"jobtrack/internal/auth"
	"jobtrack/internal/config"
	"jobtrack/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	jwtService *auth.JWTService,
	authHandler *handler.AuthHandler,
	applicationHandler *handler.ApplicationHandler,
	seedHandler *handler.SeedHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	if !cfg.IsProduction() {
		api.POST("/seed/applications", seedHandler.SeedApplications)
	}

	// Secured routes (require a valid bearer token)
	secured := api.Group("", auth.Middleware(jwtService))

	secured.GET("/me", func(c echo.Context) error {
		claims := auth.CurrentUser(c)
		if claims == nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
		}
		return c.JSON(http.StatusOK, echo.Map{
			"user_id":  claims.UserID,
			"username": claims.Username,
		})
	})

	// Application routes
	secured.GET("/applications", applicationHandler.List)
	secured.POST("/applications", applicationHandler.Create)
	secured.GET("/applications/:id", applicationHandler.GetByID)
	secured.PUT("/applications/:id", applicationHandler.Update)
	secured.DELETE("/applications/:id", applicationHandler.Delete)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
