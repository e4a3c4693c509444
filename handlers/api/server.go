package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/nijaru/video-api/config"
	"github.com/nijaru/video-api/docs"
	"github.com/nijaru/video-api/errors"
	"github.com/nijaru/video-api/metrics"
	"github.com/nijaru/video-api/middleware"
	"github.com/nijaru/video-api/models"
	"github.com/nijaru/video-api/services/video"
	"github.com/nijaru/video-api/validation"
	"github.com/sirupsen/logrus"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	base      *Handler
	videoSvc  video.Service
	video     *VideoHandler
	docs      *DocsHandler
	store     Pinger
	config    *config.Config
	logger    *logrus.Logger
	metrics   *metrics.Collector
	server    *http.Server
	startTime time.Time
}

type ServerOption func(*Server)

// NewServer creates a new API server with the provided services and options.
func NewServer(cfg *config.Config, opts ...ServerOption) (*Server, error) {
	s := &Server{
		config:    cfg,
		logger:    logrus.StandardLogger(),
		startTime: time.Now(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.metrics == nil && cfg.Metrics.Enabled {
		s.metrics = metrics.New()
	}

	s.base = &Handler{logger: s.logger, metrics: s.metrics}

	if s.videoSvc != nil {
		s.video = NewVideoHandler(s.base, s.videoSvc, validation.NewValidator(models.VideoFields))
	}

	if cfg.Docs.Enabled {
		document, err := docs.Register(docs.New(cfg.Version))
		if err != nil {
			return nil, errors.Internal("api.NewServer", err, "failed to build API documentation")
		}
		s.docs = NewDocsHandler(s.base, document)
	}

	s.server = &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      s.routes(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return s, nil
}

// WithVideoService wires the video resource handlers.
func WithVideoService(svc video.Service) ServerOption {
	return func(s *Server) {
		s.videoSvc = svc
	}
}

// WithStore sets the store checked by the health endpoint.
func WithStore(store Pinger) ServerOption {
	return func(s *Server) {
		s.store = store
	}
}

// WithLogger sets a custom logger for the server
func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetrics sets the collector used when metrics are enabled.
func WithMetrics(collector *metrics.Collector) ServerOption {
	return func(s *Server) {
		s.metrics = collector
	}
}

// Handler returns the fully wired HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.WithField("port", s.config.ServerPort).Info("Starting server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")
	return s.server.Shutdown(ctx)
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(s.logger))
	r.Use(middleware.Recovery(s.logger))
	if s.metrics != nil {
		r.Use(middleware.Metrics(s.metrics))
	}
	r.Use(middleware.CORS(s.config.CORS))

	r.NotFound(s.handleNotFound)
	r.MethodNotAllowed(s.handleMethodNotAllowed)

	if s.video != nil {
		r.Route("/api/videos", func(r chi.Router) {
			r.Get("/", s.video.HandleList)
			r.Route("/{id:[0-9]+}", func(r chi.Router) {
				r.Get("/", s.video.HandleGet)
				r.Put("/", s.video.HandleCreate)
				r.Patch("/", s.video.HandleUpdate)
				r.Delete("/", s.video.HandleDelete)
			})
		})
	}

	if s.docs != nil {
		r.Get(swaggerJSONPath, s.docs.HandleSpec)
		r.Get(docsPath, s.docs.HandleRedirect)
		r.Get(docsPath+"/*", s.docs.HandleUI)
	}

	r.Get("/health", s.handleHealth)

	if s.metrics != nil {
		r.Handle("/metrics", s.metrics.Handler())
	}

	return r
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:  "ok",
		Version: s.config.Version,
		Uptime:  time.Since(s.startTime).Round(time.Second).String(),
	}
	code := http.StatusOK

	if s.store != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := s.store.Ping(ctx); err != nil {
			middleware.GetLogger(r.Context()).WithError(err).Error("Health check failed")
			resp.Status = "unavailable"
			code = http.StatusServiceUnavailable
		}
	}

	s.base.respondJSON(w, r, code, resp)
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.base.respondJSON(w, r, http.StatusNotFound, ErrorResponse{Message: "Resource not found"})
}

func (s *Server) handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	s.base.respondJSON(w, r, http.StatusMethodNotAllowed, ErrorResponse{Message: "Method not allowed"})
}
