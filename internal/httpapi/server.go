// Package httpapi serves the back-office JSON API.
package httpapi

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/mesh-intelligence/backoffice/internal/auth"
	"github.com/mesh-intelligence/backoffice/internal/media"
	"github.com/mesh-intelligence/backoffice/internal/resource"
	"github.com/mesh-intelligence/backoffice/pkg/table"
)

// Login throttling: a burst of attempts per identifier, refilled slowly.
const (
	loginBurst  = 5
	loginRefill = rate.Limit(1.0 / 30)
)

// Config holds the server settings. TrustProxy takes the client address
// from X-Forwarded-For and X-Real-IP; enable it only behind a proxy that
// sets them.
type Config struct {
	Addr              string
	SessionSecret     string
	SecureCookies     bool
	TrustProxy        bool
	PageSize          int
	LowStockThreshold int64
	Features          Features

	Logger   *slog.Logger
	Media    media.Store
	Registry *prometheus.Registry
	Provider auth.Provider
}

// Server binds the resource services to HTTP.
type Server struct {
	svc      *resource.Services
	cfg      Config
	logger   *slog.Logger
	sessions *sessions.CookieStore
	throttle *auth.Throttle
	provider auth.Provider
	metrics  *httpMetrics
	audits   sync.WaitGroup
}

// NewServer creates a server for svc. A missing session secret is replaced
// by a random one, which invalidates sessions on restart.
func NewServer(svc *resource.Services, cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = table.DefaultItemsPerPage
	}
	if cfg.LowStockThreshold <= 0 {
		cfg.LowStockThreshold = resource.DefaultLowStockThreshold
	}
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if cfg.Provider == nil {
		cfg.Provider = auth.NewLocalProvider(svc.Admins, cfg.Logger)
	}
	secret := []byte(cfg.SessionSecret)
	if len(secret) == 0 {
		secret = make([]byte, 32)
		_, _ = rand.Read(secret)
		cfg.Logger.Warn("no session secret configured; sessions will not survive a restart")
	}

	store := sessions.NewCookieStore(secret)
	store.MaxAge(86400 * 7)
	store.Options.Path = "/"
	store.Options.HttpOnly = true
	store.Options.Secure = cfg.SecureCookies
	store.Options.SameSite = http.SameSiteLaxMode

	var reg prometheus.Registerer
	if cfg.Registry != nil {
		reg = cfg.Registry
	}

	return &Server{
		svc:      svc,
		cfg:      cfg,
		logger:   cfg.Logger,
		sessions: store,
		throttle: auth.NewThrottle(loginRefill, loginBurst),
		provider: cfg.Provider,
		metrics:  newHTTPMetrics(reg),
	}
}

// Handler returns the routed API.
func (s *Server) Handler() http.Handler {
	r := chi.NewMux()
	r.Use(middleware.RequestID)
	if s.cfg.TrustProxy {
		r.Use(middleware.RealIP)
	}
	r.Use(
		s.requestLogger,
		middleware.Recoverer,
		s.metrics.middleware,
	)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if s.cfg.Registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.cfg.Registry, promhttp.HandlerOpts{}))
	}
	if fs, ok := s.cfg.Media.(*media.Filesystem); ok {
		r.Handle("/media/*", http.StripPrefix("/media/", http.FileServer(http.Dir(fs.Root()))))
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", s.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(s.requireSession)

			r.Post("/auth/logout", s.handleLogout)
			r.Get("/auth/me", s.handleMe)
			r.Get("/menu", s.handleMenu)
			r.Get("/dashboard", s.handleDashboard)

			r.Route("/products", s.productRoutes)
			r.Route("/categories", s.categoryRoutes)
			r.Route("/orders", s.orderRoutes)
			r.Route("/customers", s.customerRoutes)
			if s.cfg.Features.Reviews {
				r.Route("/reviews", s.reviewRoutes)
			}
			if s.cfg.Features.Banners {
				r.Route("/banners", s.bannerRoutes)
				r.Route("/showcases", s.showcaseRoutes)
			}
			if s.cfg.Features.LegalTexts {
				r.Route("/legal-texts", s.legalTextRoutes)
			}
			if s.cfg.Media != nil {
				r.Post("/media", s.handleUpload)
			}
			r.Route("/admin-users", s.adminRoutes)
		})
	})
	return r
}

// Serve listens on cfg.Addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context) error {
	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    s.cfg.Addr,
		Handler: s.Handler(),
		BaseContext: func(net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	eg.Go(func() error {
		s.logger.Info("starting admin API", slog.String("addr", s.cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down admin API")
		return srv.Shutdown(shutdownCtx)
	})

	err := eg.Wait()
	s.Wait()
	return err
}
