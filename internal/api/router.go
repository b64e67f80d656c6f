package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/gigboard/marketplace/docs"
	"github.com/gigboard/marketplace/internal/api/handler"
	"github.com/gigboard/marketplace/internal/api/middleware"
	"github.com/gigboard/marketplace/internal/core/domain"
	"github.com/gigboard/marketplace/internal/core/ports"
)

// Deps are the collaborators the HTTP layer is built from.
type Deps struct {
	Identity  ports.IdentityService
	Jobs      ports.JobService
	Messages  ports.MessageService
	Queue     handler.Enqueuer
	Tokens    handler.TokenIssuer
	JWTSecret string
	// Pingers are probed by /health/ready, keyed by dependency name.
	Pingers map[string]handler.Pinger

	// Registerer and Gatherer back the request metrics and /metrics.
	// Nil means the Prometheus default registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer

	Log zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	if d.Registerer == nil {
		d.Registerer = prometheus.DefaultRegisterer
	}
	if d.Gatherer == nil {
		d.Gatherer = prometheus.DefaultGatherer
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "http",
		Registerer: d.Registerer,
	}))

	authHandler := handler.NewAuthHandler(d.Identity, d.Tokens)
	jobHandler := handler.NewJobHandler(d.Jobs)
	messageHandler := handler.NewMessageHandler(d.Messages, d.Queue)
	healthHandler := handler.NewHealthHandler(d.Pingers)

	auth := middleware.Auth(d.JWTSecret)
	clientOnly := middleware.RBAC(domain.RoleClient)
	freelancerOnly := middleware.RBAC(domain.RoleFreelancer)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout)
	e.GET("/auth/session", authHandler.Session)

	v1 := e.Group("/v1")

	// --- Jobs ---
	v1.GET("/jobs", jobHandler.List)
	v1.GET("/jobs/:id", jobHandler.Get)
	v1.POST("/jobs", jobHandler.Create, auth, clientOnly)
	v1.GET("/jobs/:id/applications", jobHandler.ApplicationsForJob, auth, clientOnly)
	v1.GET("/me/jobs", jobHandler.MyJobs, auth, clientOnly)

	// --- Applications ---
	v1.POST("/jobs/:id/applications", jobHandler.Apply, auth, freelancerOnly)
	v1.GET("/me/applications", jobHandler.MyApplications, auth, freelancerOnly)
	v1.PATCH("/applications/:id", jobHandler.Decide, auth, clientOnly)

	// --- Messaging ---
	conv := v1.Group("/conversations", auth)
	conv.GET("", messageHandler.List)
	conv.POST("", messageHandler.Start)
	conv.GET("/:id/messages", messageHandler.Messages)
	conv.POST("/:id/messages", messageHandler.Send)

	// --- Health probes (no auth required) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)

	// --- Ops ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: d.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger writes one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
