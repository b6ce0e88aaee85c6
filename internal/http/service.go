package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel"

	"github.com/tuanvumaihuynh/brewery/internal/apperr"
	"github.com/tuanvumaihuynh/brewery/internal/config"
	"github.com/tuanvumaihuynh/brewery/internal/http/apierr"
	"github.com/tuanvumaihuynh/brewery/internal/http/metric"
	"github.com/tuanvumaihuynh/brewery/internal/http/middleware"
	"github.com/tuanvumaihuynh/brewery/internal/http/swagger"
	"github.com/tuanvumaihuynh/brewery/internal/service"
	"github.com/tuanvumaihuynh/brewery/internal/storage/db"
	"github.com/tuanvumaihuynh/brewery/pkg/validator"
)

var tracer = otel.Tracer("internal/http")

// Service represents the HTTP service.
type Service struct {
	cfg       config.HTTP
	logger    *slog.Logger
	metrics   *metric.Metrics
	validator validator.Validator
	health    db.HealthChecker

	beerSvc service.BeerService
}

type CleanupFunc func(ctx context.Context) error

func New(
	cfg config.HTTP,
	log *slog.Logger,
	validator validator.Validator,
	beerSvc service.BeerService,
	health db.HealthChecker,
) *Service {
	return &Service{
		cfg:       cfg,
		logger:    log.With(slog.String("service", "http")),
		metrics:   metric.New(),
		validator: validator,
		health:    health,
		beerSvc:   beerSvc,
	}
}

func (s *Service) Run(ctx context.Context) (CleanupFunc, error) {
	handler, err := s.Handler(ctx)
	if err != nil {
		return nil, err
	}

	return s.RunWithServer(ctx, handler)
}

// Handler builds the router with every middleware and route registered.
func (s *Service) Handler(ctx context.Context) (http.Handler, error) {
	r := chi.NewRouter()
	s.RegisterMiddlewares(r)

	if s.cfg.Swagger {
		if err := swagger.Register(ctx, r); err != nil {
			return nil, fmt.Errorf("register swagger: %w", err)
		}
	}

	s.RegisterHandlers(r)

	return r, nil
}

func (s *Service) RunWithServer(ctx context.Context, handler http.Handler) (CleanupFunc, error) {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Port),
		Handler:           handler,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 16, // 64 KB
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", srv.Addr, err)
	}

	go func() {
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.logger.ErrorContext(ctx, "http server stopped", slog.Any("error", err))
		}
	}()

	s.logger.InfoContext(ctx, "http server listening", slog.String("addr", ln.Addr().String()))

	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}, nil
}

func (s *Service) RegisterMiddlewares(r chi.Router) {
	r.Use(
		middleware.Recoverer(s.logger),
		middleware.Trace(tracer),
		middleware.Metrics(s.metrics),
		middleware.CorrelationID(),
		middleware.Cors(s.cfg.CorsOrigins),
		middleware.Logging(s.logger),
	)
}

type handlerFunc func(w http.ResponseWriter, r *http.Request) error

type route struct {
	method  string
	pattern string
	handler handlerFunc
}

// routes is the API route table. v1 paths are aliases kept for older clients.
func (s *Service) routes() []route {
	h := newBeerHandler(s.beerSvc, s.validator, s.cfg.PublicURL)

	return []route{
		{http.MethodGet, "/api/v2/beer/{beerId}", h.GetBeerByID},
		{http.MethodGet, "/api/v2/beerUpc/{beerUpc}", h.GetBeerByUPC},
		{http.MethodPost, "/api/v2/beer", h.CreateBeer},
		{http.MethodDelete, "/api/v2/beer/{beerId}", h.DeleteBeerByID},

		{http.MethodGet, "/api/v1/beer", h.ListBeers},
		{http.MethodGet, "/api/v1/beer/{beerId}", h.GetBeerByID},
		{http.MethodGet, "/api/v1/beerUpc/{beerUpc}", h.GetBeerByUPC},
	}
}

func (s *Service) RegisterHandlers(r chi.Router) {
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	r.Group(func(r chi.Router) {
		r.Use(
			middleware.AcceptJSON(s.handleResponseError),
			chimiddleware.AllowContentType("application/json"),
			chimiddleware.RequestSize(int64(s.cfg.MaxBodySize)),
		)

		for _, rt := range s.routes() {
			r.Method(rt.method, rt.pattern, s.handle(rt.handler))
		}
	})

	r.Get("/healthz", s.handle(s.healthz))
	r.Handle(middleware.MetricsPath, s.metrics.Handler())
}

func (s *Service) healthz(w http.ResponseWriter, r *http.Request) error {
	ok, err := s.health.IsHealthy(r.Context())
	if err != nil || !ok {
		return apperr.DatabaseUnavailableErr.WrapParent(err)
	}

	w.WriteHeader(http.StatusOK)
	return nil
}

func (s *Service) handle(fn handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			s.handleResponseError(w, r, err)
		}
	}
}

func (s *Service) handleResponseError(w http.ResponseWriter, r *http.Request, err error) {
	res := apierr.New(err)

	logLevel := slog.LevelInfo
	if res.StatusCode >= 500 {
		logLevel = slog.LevelError
	} else if res.StatusCode >= 400 {
		logLevel = slog.LevelWarn
	}
	s.logger.Log(r.Context(), logLevel, "http response error", slog.Any("error", err))

	// absent resources are reported by status alone
	if res.StatusCode == http.StatusNotFound {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(res.StatusCode)

	if err := json.NewEncoder(w).Encode(res); err != nil {
		s.logger.ErrorContext(r.Context(), "error encoding error response",
			slog.Any("error", err))
	}
}
