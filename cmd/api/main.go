package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/vetclinic-api/internal/cache"
	"github.com/jwalitptl/vetclinic-api/internal/config"
	animalHandler "github.com/jwalitptl/vetclinic-api/internal/handler/animal"
	authHandler "github.com/jwalitptl/vetclinic-api/internal/handler/auth"
	clientHandler "github.com/jwalitptl/vetclinic-api/internal/handler/client"
	consultationHandler "github.com/jwalitptl/vetclinic-api/internal/handler/consultation"
	"github.com/jwalitptl/vetclinic-api/internal/handler/health"
	procedureHandler "github.com/jwalitptl/vetclinic-api/internal/handler/procedure"
	reportHandler "github.com/jwalitptl/vetclinic-api/internal/handler/report"
	veterinarianHandler "github.com/jwalitptl/vetclinic-api/internal/handler/veterinarian"
	"github.com/jwalitptl/vetclinic-api/internal/middleware"
	"github.com/jwalitptl/vetclinic-api/internal/repository/postgres"
	"github.com/jwalitptl/vetclinic-api/internal/router"
	animalService "github.com/jwalitptl/vetclinic-api/internal/service/animal"
	authService "github.com/jwalitptl/vetclinic-api/internal/service/auth"
	clientService "github.com/jwalitptl/vetclinic-api/internal/service/client"
	consultationService "github.com/jwalitptl/vetclinic-api/internal/service/consultation"
	procedureService "github.com/jwalitptl/vetclinic-api/internal/service/procedure"
	reportService "github.com/jwalitptl/vetclinic-api/internal/service/report"
	veterinarianService "github.com/jwalitptl/vetclinic-api/internal/service/veterinarian"
	"github.com/jwalitptl/vetclinic-api/pkg/auth"
	"github.com/jwalitptl/vetclinic-api/pkg/logger"
	"github.com/jwalitptl/vetclinic-api/pkg/metrics"
	"github.com/jwalitptl/vetclinic-api/pkg/security"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.Setup(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})

	if err := run(cfg); err != nil {
		appLogger.Fatal().Err(err).Msg("server stopped")
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.NewDB(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := postgres.Migrate(ctx, db); err != nil {
		return err
	}

	store, closeCache, err := cache.New(ctx, cache.Options{
		Driver:     cfg.Cache.Driver,
		DefaultTTL: cfg.Cache.DashboardTTL,
		Redis: cache.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		},
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := closeCache(); err != nil {
			log.Warn().Err(err).Msg("failed to close cache")
		}
	}()

	// Repositories
	base := postgres.NewBaseRepository(db)
	clientRepo := postgres.NewClientRepository(base)
	animalRepo := postgres.NewAnimalRepository(base)
	vetRepo := postgres.NewVeterinarianRepository(base)
	procedureRepo := postgres.NewProcedureRepository(base)
	consultationRepo := postgres.NewConsultationRepository(base)
	userRepo := postgres.NewUserRepository(base)
	reportRepo := postgres.NewReportRepository(base)

	m := metrics.New("vetclinic")
	loc := cfg.Reports.Location()

	// Services
	tokens := auth.NewTokenService(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expiry)
	authSvc := authService.NewService(userRepo, tokens, security.NewBcryptHasher(bcrypt.DefaultCost))
	reportSvc := reportService.NewService(reportService.Deps{
		Clients:       clientRepo,
		Animals:       animalRepo,
		Veterinarians: vetRepo,
		Procedures:    procedureRepo,
		Consultations: consultationRepo,
		Reports:       reportRepo,
		Cache:         store,
		Metrics:       m,
	}, reportService.WithLocation(loc), reportService.WithDashboardTTL(cfg.Cache.DashboardTTL))

	handlers := router.Handlers{
		Health: health.NewHandler(db),
		Auth: authHandler.NewHandler(authSvc, authHandler.CookieConfig{
			Name:   cfg.JWT.CookieName,
			Secure: cfg.JWT.CookieSecure,
		}),
		Clients:       clientHandler.NewHandler(clientService.NewService(clientRepo), loc),
		Animals:       animalHandler.NewHandler(animalService.NewService(animalRepo, clientRepo), loc),
		Veterinarians: veterinarianHandler.NewHandler(veterinarianService.NewService(vetRepo), loc),
		Procedures:    procedureHandler.NewHandler(procedureService.NewService(procedureRepo), loc),
		Consultations: consultationHandler.NewHandler(
			consultationService.NewService(consultationRepo, animalRepo, vetRepo, procedureRepo), loc,
		),
		Reports: reportHandler.NewHandler(reportSvc),
	}

	r, err := router.NewRouter(
		middleware.NewAuthMiddleware(authSvc, cfg.JWT.CookieName),
		reportSvc,
		m,
		handlers,
		router.RouterConfig{
			Mode:           cfg.Server.Mode,
			Logger:         log.Logger,
			RateEnabled:    cfg.RateLimit.Enabled,
			RateLimit:      rate.Limit(cfg.RateLimit.RequestsPerSecond),
			RateBurst:      cfg.RateLimit.Burst,
			CORSConfig:     middleware.DefaultCORSConfig(cfg.Security.AllowedOrigins),
			HSTS:           cfg.JWT.CookieSecure,
			MaxBodyBytes:   cfg.Server.MaxBodyBytes,
			RequestTimeout: cfg.Server.RequestTimeout,
			ReportMaxAge:   60,
			TrustedProxies: cfg.Server.TrustedProxies,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to build router: %w", err)
	}
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("cache", cfg.Cache.Driver).Str("timezone", loc.String()).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	log.Info().Msg("server exited")
	return nil
}
