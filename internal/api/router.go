package api

import (
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/climawatch/weather-api/internal/api/handler"
	"github.com/climawatch/weather-api/internal/api/middleware"
	"github.com/climawatch/weather-api/internal/core/domain"
	"github.com/climawatch/weather-api/internal/core/ports"
)

// Route allow-lists. These are the authorization policy table; every entry
// is checked against the role enumeration when the routes are registered.
var (
	staffRoles  = []domain.Role{domain.RoleAdmin, domain.RoleTeacher}
	ingestRoles = []domain.Role{domain.RoleSensor, domain.RoleAdmin}
	anyRole     = domain.Roles
)

// Deps carries everything the router wires together.
type Deps struct {
	Logger      zerolog.Logger
	Development bool
	CookieTTL   time.Duration
	CORSOrigins []string

	// OpenRegistration / OpenSensorIngest control whether POST /register and
	// POST /weather are reachable without a token. Both default closed.
	OpenRegistration bool
	OpenSensorIngest bool

	Auth     ports.AuthService
	Users    ports.UserService
	Readings ports.ReadingService
	Tokens   ports.TokenService
	Resolver middleware.UserResolver
	Denylist ports.TokenDenylist

	Mongo *mongo.Database
	Redis *redis.Client
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger, deps.Development)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     deps.CORSOrigins,
		AllowCredentials: true,
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth, deps.CookieTTL)
	userHandler := handler.NewUserHandler(deps.Users)
	weatherHandler := handler.NewWeatherHandler(deps.Readings)

	authn := middleware.Authenticate(deps.Tokens, deps.Resolver, deps.Denylist)

	// --- Auth routes ---
	api := e.Group("/api")

	if deps.OpenRegistration {
		api.POST("/register", authHandler.Register)
	} else {
		api.POST("/register", authHandler.Register, authn, middleware.RequireRoles(domain.RoleAdmin))
	}
	api.POST("/login", authHandler.Login)
	api.GET("/logout", authHandler.Logout)

	// --- User routes (static paths before :id) ---
	users := api.Group("/users", authn, middleware.RequireRoles(staffRoles...))
	users.DELETE("/deleteStudents", userHandler.DeleteStudents)
	users.PUT("/updateRole", userHandler.UpdateRole)
	users.GET("", userHandler.List)
	users.GET("/:id", userHandler.Get)
	users.PUT("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete)

	// --- Weather routes ---
	if deps.OpenSensorIngest {
		api.POST("/weather", weatherHandler.Insert)
	} else {
		api.POST("/weather", weatherHandler.Insert, authn, middleware.RequireRoles(ingestRoles...))
	}
	api.POST("/weather/multiple", weatherHandler.InsertBulk, authn, middleware.RequireRoles(ingestRoles...))

	authed := middleware.RequireRoles(anyRole...)
	api.GET("/weather/max-temperature", weatherHandler.MaxTemperature, authn, authed)
	api.GET("/weather/temperature-humidity", weatherHandler.HumidityWindow, authn, authed)
	api.GET("/weather/:deviceName/max-precipitation", weatherHandler.MaxPrecipitation, authn, authed)
	api.GET("/weather/:deviceName/:time", weatherHandler.StationAt, authn, authed)
	api.GET("/weather/:id", weatherHandler.Get, authn, authed)

	staff := middleware.RequireRoles(staffRoles...)
	api.PUT("/weather/:id", weatherHandler.Update, authn, staff)
	api.PUT("/weather/:id/precipitation", weatherHandler.UpdatePrecipitation, authn, staff)
	api.DELETE("/weather/:id", weatherHandler.Delete, authn, staff)

	// --- Observability (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return e
}
