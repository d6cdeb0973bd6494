package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	pchttp "github.com/Strob0t/PartnerConsole/internal/adapter/http"
	pcotel "github.com/Strob0t/PartnerConsole/internal/adapter/otel"
	"github.com/Strob0t/PartnerConsole/internal/adapter/ristretto"
	"github.com/Strob0t/PartnerConsole/internal/adapter/tenantapi"
	"github.com/Strob0t/PartnerConsole/internal/config"
	"github.com/Strob0t/PartnerConsole/internal/logger"
	"github.com/Strob0t/PartnerConsole/internal/middleware"
	"github.com/Strob0t/PartnerConsole/internal/resilience"
	"github.com/Strob0t/PartnerConsole/internal/service"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	log, closer := logger.New(cfg.Logging)
	defer closer.Close()
	slog.SetDefault(log)

	slog.Info("config loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Logging.Level,
		"api_base_url", cfg.API.BaseURL,
		"otel_enabled", cfg.Otel.Enabled,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Telemetry ---
	shutdownOtel, err := pcotel.Setup(ctx, cfg.Otel)
	if err != nil {
		return fmt.Errorf("otel: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownOtel(shutdownCtx); err != nil {
			slog.Warn("otel shutdown", "error", err)
		}
	}()

	metrics, err := pcotel.NewMetrics()
	if err != nil {
		return fmt.Errorf("otel metrics: %w", err)
	}

	// --- Infrastructure ---
	store, err := ristretto.NewMB(cfg.Cache.L1MaxSizeMB)
	if err != nil {
		return fmt.Errorf("session cache: %w", err)
	}
	defer store.Close()

	api := tenantapi.NewClient(cfg.API.BaseURL, cfg.API.Timeout)
	api.SetBreaker(resilience.NewBreaker(cfg.Breaker.MaxFailures, cfg.Breaker.Timeout,
		resilience.WithFailurePredicate(tenantapi.CountsAsFailure)))
	api.SetTransport(pcotel.Transport(nil))
	api.SetToggleTimeout(cfg.API.ToggleTimeout)
	api.SetRegistrationSource(cfg.API.RegistrationSource)
	api.SetRecorder(metrics)

	// --- Services ---
	sessions := service.NewSessionService(store, cfg.Session)
	authSvc := service.NewAuthService(api)
	authSvc.SetMetrics(metrics)
	tenantSvc := service.NewTenantService(api)
	tenantSvc.SetMetrics(metrics)
	onboardingSvc := service.NewOnboardingService(api, sessions)
	onboardingSvc.SetMetrics(metrics)

	// --- HTTP ---
	cookie := middleware.SessionCookie{Name: cfg.Session.CookieName, Secure: cfg.Server.SecureCookie}
	handlers, err := pchttp.NewHandlers(authSvc, tenantSvc, onboardingSvc, sessions, cookie)
	if err != nil {
		return fmt.Errorf("handlers: %w", err)
	}

	throttle := middleware.NewLoginThrottle(cfg.Server.LoginPerMin, cfg.Server.LoginBurst)
	throttle.StartCleanup(ctx, 5*time.Minute, 30*time.Minute)
	handlers.LoginLimit = throttle.Handler

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(pchttp.Logger)
	r.Use(chimw.Recoverer)
	r.Use(pcotel.HTTPMiddleware(cfg.Otel.ServiceName))
	r.Use(pchttp.SecurityHeaders)
	r.Use(middleware.Language(languages(cfg.API)))

	pchttp.MountRoutes(r, handlers, middleware.Session(sessions, cookie))

	addr := ":" + cfg.Server.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("starting server", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// languages puts the default language first so it is the negotiation
// fallback.
func languages(api config.API) []string {
	out := []string{api.DefaultLanguage}
	for _, l := range api.Languages {
		if l != api.DefaultLanguage {
			out = append(out, l)
		}
	}
	return out
}
