package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/careerconnect/jobboard/docs"
	"github.com/careerconnect/jobboard/internal/api/handler"
	"github.com/careerconnect/jobboard/internal/api/middleware"
	"github.com/careerconnect/jobboard/internal/core/domain"
	"github.com/careerconnect/jobboard/internal/core/ports"
)

// Dependencies is everything the HTTP layer needs from the rest of the
// application.
type Dependencies struct {
	Auth     ports.AuthService
	Tokens   ports.TokenIssuer
	Identity ports.IdentityResolver
	Users    ports.UserService
	Jobs     ports.JobService
	Messages ports.MessageService

	// Health lists the dependencies checked by /health/ready.
	Health map[string]handler.Pinger
	// Metrics, when set, enables request metrics and serves /metrics from it.
	Metrics *prometheus.Registry

	Logger zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger(deps.Logger))
	e.Use(echomiddleware.CORS())
	e.Use(echomiddleware.BodyLimit("1M"))
	if deps.Metrics != nil {
		e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
			Namespace:  "jobboard",
			Registerer: deps.Metrics,
			Skipper: func(c echo.Context) bool {
				return c.Path() == "/metrics"
			},
		}))
		e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
			Gatherer: deps.Metrics,
		}))
	}

	// --- Health checks and docs (no auth required) ---
	healthHandler := handler.NewHealthHandler(deps.Health)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	authMW := middleware.Auth(deps.Tokens, deps.Identity)
	api := e.Group("/api")

	// --- Users ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	userHandler := handler.NewUserHandler(deps.Users)

	users := api.Group("/users")
	users.POST("/register", authHandler.Register)
	users.POST("/login", authHandler.Login)
	users.GET("/profile", userHandler.GetProfile, authMW)
	users.PATCH("/profile", userHandler.UpdateProfile, authMW)
	users.PUT("/password", authHandler.ChangePassword, authMW)
	users.GET("", userHandler.ListUsers, authMW, middleware.RBAC(domain.RoleAdmin))
	users.GET("/:id", userHandler.GetUser, authMW)

	// --- Jobs ---
	jobHandler := handler.NewJobHandler(deps.Jobs)

	jobs := api.Group("/jobs")
	jobs.GET("", jobHandler.List)
	jobs.POST("", jobHandler.Create, authMW, middleware.RBAC(domain.RoleEmployer, domain.RoleAdmin))
	jobs.GET("/matches", jobHandler.Matches, authMW)
	jobs.GET("/mine", jobHandler.Mine, authMW)
	jobs.GET("/:id", jobHandler.Get)
	jobs.PUT("/:id", jobHandler.Update, authMW)
	jobs.DELETE("/:id", jobHandler.Delete, authMW)
	jobs.POST("/:id/apply", jobHandler.Apply, authMW)

	// --- Messages ---
	messageHandler := handler.NewMessageHandler(deps.Messages)

	messages := api.Group("/messages", authMW)
	messages.POST("", messageHandler.Send)
	messages.GET("/conversations", messageHandler.Conversations)
	messages.GET("/unread", messageHandler.Unread)
	messages.GET("/user/:userId", messageHandler.Conversation)
	messages.PATCH("/:id/read", messageHandler.MarkRead)
	messages.DELETE("/:id", messageHandler.Delete)

	return e
}

// requestLogger replaces echo's text logger with one structured zerolog
// entry per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= 500 {
				ev = log.Error().Err(v.Error)
			} else if v.Status >= 400 {
				ev = log.Warn()
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}

// ShutdownTimeout bounds graceful shutdown of the HTTP server.
const ShutdownTimeout = 10 * time.Second
