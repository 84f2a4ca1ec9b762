package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/vetclinic-api/internal/middleware"
	"github.com/jwalitptl/vetclinic-api/pkg/metrics"
)

type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

// SessionHandler registers routes on both the public and the authenticated
// group.
type SessionHandler interface {
	RegisterRoutes(public, protected *gin.RouterGroup)
}

type Handlers struct {
	Health        Handler
	Auth          SessionHandler
	Clients       Handler
	Animals       Handler
	Veterinarians Handler
	Procedures    Handler
	Consultations Handler
	Reports       Handler
}

type RouterConfig struct {
	Mode           string
	Logger         zerolog.Logger
	RateLimit      rate.Limit
	RateBurst      int
	RateEnabled    bool
	CORSConfig     middleware.CORSConfig
	HSTS           bool
	MaxBodyBytes   int64
	RequestTimeout time.Duration
	// ReportMaxAge is the browser cache lifetime of report responses, in
	// seconds.
	ReportMaxAge   int
	TrustedProxies []string
}

type Router struct {
	engine      *gin.Engine
	auth        *middleware.AuthMiddleware
	invalidator middleware.Invalidator
	metrics     *metrics.Metrics
	handlers    Handlers
	config      RouterConfig
}

func NewRouter(
	auth *middleware.AuthMiddleware,
	invalidator middleware.Invalidator,
	m *metrics.Metrics,
	handlers Handlers,
	config RouterConfig,
) (*Router, error) {
	if config.Mode != "" {
		gin.SetMode(config.Mode)
	}
	if err := middleware.RegisterValidators(); err != nil {
		return nil, err
	}

	engine := gin.New()
	if err := engine.SetTrustedProxies(config.TrustedProxies); err != nil {
		return nil, err
	}

	r := &Router{
		engine:      engine,
		auth:        auth,
		invalidator: invalidator,
		metrics:     m,
		handlers:    handlers,
		config:      config,
	}

	engine.Use(
		middleware.RequestID(),
		middleware.Logger(config.Logger),
		middleware.Recovery(),
		middleware.ErrorHandler(),
		middleware.Metrics(m),
		middleware.SecurityHeaders(middleware.DefaultSecurityConfig(config.HSTS)),
		middleware.CORS(config.CORSConfig),
	)

	if config.RateEnabled {
		limiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
			Rate:  config.RateLimit,
			Burst: config.RateBurst,
		})
		engine.Use(limiter.RateLimit())
	}

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "route not found"})
	})

	return r, nil
}

func (r *Router) Setup() {
	r.engine.GET("/metrics", gin.WrapH(r.metrics.Handler()))

	api := r.engine.Group("/api/v1")
	api.Use(
		middleware.SizeLimit(r.config.MaxBodyBytes),
		middleware.Timeout(r.config.RequestTimeout),
	)

	r.handlers.Health.RegisterRoutes(api)

	protected := api.Group("")
	protected.Use(r.auth.Authenticate())
	r.handlers.Auth.RegisterRoutes(api, protected)

	entities := protected.Group("")
	entities.Use(
		middleware.CacheControl(0),
		middleware.InvalidateCache(r.invalidator),
	)
	r.handlers.Clients.RegisterRoutes(entities)
	r.handlers.Animals.RegisterRoutes(entities)
	r.handlers.Veterinarians.RegisterRoutes(entities)
	r.handlers.Procedures.RegisterRoutes(entities)
	r.handlers.Consultations.RegisterRoutes(entities)

	reports := protected.Group("")
	reports.Use(middleware.CacheControl(r.config.ReportMaxAge))
	r.handlers.Reports.RegisterRoutes(reports)
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func (r *Router) Run(addr string) error {
	return r.engine.Run(addr)
}
