// Package gateway serves the client stores to a local UI process over HTTP.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/hms/hms/internal/domain/admin"
	"github.com/hms/hms/internal/domain/auth"
	"github.com/hms/hms/internal/domain/bloodbank"
	"github.com/hms/hms/internal/domain/patient"
	"github.com/hms/hms/internal/platform/apiclient"
	"github.com/hms/hms/internal/platform/middleware"
	"github.com/hms/hms/internal/platform/telemetry"
	"github.com/hms/hms/internal/platform/websocket"
)

var streamingPaths = []string{"/api/events", "/api/ws"}

type Options struct {
	CORSOrigins []string
	// RequestTimeout bounds every request except the event stream. Zero
	// disables it.
	RequestTimeout time.Duration
	// Gatherer backs /metrics; nil uses the default registry.
	Gatherer prometheus.Gatherer
	// KeepAlive is the comment interval on the event stream.
	KeepAlive time.Duration
}

// Deps are the domain components exposed under /api. A nil field leaves its
// routes unmounted.
type Deps struct {
	Auth      *auth.Service
	Patient   *patient.Store
	Admin     *admin.Store
	BloodBank *bloodbank.Service
}

type Server struct {
	echo   *echo.Echo
	logger zerolog.Logger
	opts   Options
	deps   Deps
	hub    *websocket.Hub
	stop   context.CancelFunc
}

func New(opts Options, deps Deps, logger zerolog.Logger) *Server {
	if opts.KeepAlive <= 0 {
		opts.KeepAlive = 15 * time.Second
	}
	s := &Server{
		echo:   echo.New(),
		logger: logger,
		opts:   opts,
		deps:   deps,
		hub:    websocket.NewHub(logger.With().Str("component", "websocket").Logger()),
	}

	e := s.echo
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = s.handleError

	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger, "/health", "/metrics"))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: opts.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut},
		AllowHeaders: []string{"Content-Type", middleware.RequestIDHeader},
	}))
	e.Use(middleware.SecurityHeaders())
	if opts.RequestTimeout > 0 {
		e.Use(middleware.RequestTimeout(opts.RequestTimeout, streamingPaths...))
	}

	e.GET("/health", s.health)
	e.GET("/metrics", echo.WrapHandler(telemetry.Handler(opts.Gatherer)))

	api := e.Group("/api")
	if deps.Auth != nil {
		auth.NewHandler(deps.Auth).RegisterRoutes(api)
	}
	if deps.Patient != nil {
		patient.NewHandler(deps.Patient).RegisterRoutes(api)
	}
	if deps.Admin != nil {
		admin.NewHandler(deps.Admin).RegisterRoutes(api)
	}
	if deps.BloodBank != nil {
		bloodbank.NewHandler(deps.BloodBank).RegisterRoutes(api)
	}
	api.GET("/events", s.events)
	websocket.NewHandler(s.hub, opts.CORSOrigins).RegisterRoutes(api)

	ctx, cancel := context.WithCancel(context.Background())
	s.stop = cancel
	if deps.Patient != nil {
		s.bridge(ctx, "patient", deps.Patient.Subscribe, func() interface{} { return deps.Patient.Snapshot() })
	}
	if deps.Admin != nil {
		s.bridge(ctx, "admin", deps.Admin.Subscribe, func() interface{} { return deps.Admin.Snapshot() })
	}

	return s
}

// bridge publishes a store's snapshots to websocket subscribers of topic.
func (s *Server) bridge(ctx context.Context, topic string, subscribe func() (<-chan struct{}, func()), snap websocket.SnapshotFunc) {
	s.hub.AddSource(topic, snap)
	changes, cancel := subscribe()
	go func() {
		defer cancel()
		s.hub.Bridge(ctx, topic, changes)
	}()
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.echo }

func (s *Server) Start(addr string) error {
	s.logger.Info().Str("addr", addr).Msg("starting gateway")
	return s.echo.Start(addr)
}

// Shutdown stops the store bridges and drains the HTTP server. Hijacked
// websocket connections are not tracked by the server and close with the
// process.
func (s *Server) Shutdown(ctx context.Context) error {
	s.stop()
	return s.echo.Shutdown(ctx)
}

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"patient": s.deps.Patient != nil,
		"admin":   s.deps.Admin != nil,
	})
}

// handleError renders every failure as {"error": message}.
func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var code int
	var msg string
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		msg = fmt.Sprint(he.Message)
		if he.Internal != nil {
			s.logger.Debug().Err(he.Internal).Int("status", code).Msg("internal error detail")
		}
	} else {
		code = apiclient.HTTPStatus(err)
		msg = apiclient.Describe(err)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, map[string]string{"error": msg})
	}
	if err != nil {
		s.logger.Error().Err(err).Msg("write error response")
	}
}
