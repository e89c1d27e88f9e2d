package app

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

	"membership-api/internal/auth"
	"membership-api/internal/config"
	"membership-api/internal/database"
	"membership-api/internal/handler"
	"membership-api/internal/middleware"
	"membership-api/internal/observability"
	"membership-api/internal/repository"
	"membership-api/internal/router"
	"membership-api/internal/service"
)

type App struct {
	server *http.Server
	db     *database.DB
}

func New(cfg *config.Config) (*App, error) {
	ctx := context.Background()

	slog.Info("connecting to PostgreSQL")
	db, err := database.New(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	pool := db.Pool
	userRepo := repository.NewUserRepository(pool)
	memberRepo := repository.NewMemberRepository(pool)
	societyRepo := repository.NewMedicalSocietyRepository(pool)
	spaceRepo := repository.NewSpaceRepository(pool)
	slog.Info("database ready")

	keys, err := auth.NewHMACKeys(cfg.JWTSecret)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to load signing keys: %w", err)
	}

	authService, err := service.NewAuthService(
		userRepo,
		auth.NewPasswordHasher(auth.DefaultArgon2Params),
		auth.NewTokenIssuer(keys),
		auth.NewTokenValidator(keys),
		cfg.JWTAccessTTL,
	)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize auth service: %w", err)
	}

	if _, err := authService.EnsureAdmin(ctx, cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to bootstrap admin user: %w", err)
	}

	metrics := observability.NewMetrics()
	authMiddleware := middleware.NewAuthMiddleware(authService, authService)

	appRouter := router.New(cfg, authMiddleware, metrics, router.Handlers{
		Auth:           handler.NewAuthHandler(authService, metrics, cfg.CookieSecure),
		Members:        handler.NewMemberHandler(service.NewMemberService(memberRepo)),
		MedicalSociety: handler.NewMedicalSocietyHandler(service.NewMedicalSocietyService(societyRepo)),
		Spaces:         handler.NewSpaceHandler(service.NewSpaceService(spaceRepo)),
		Health:         handler.NewHealthHandler(db),
	})

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           appRouter,
		ReadHeaderTimeout: cfg.ServerReadHeaderTimeout,
		WriteTimeout:      cfg.ServerWriteTimeout,
		IdleTimeout:       cfg.ServerIdleTimeout,
	}

	return &App{server: server, db: db}, nil
}

func (a *App) Run() error {
	serveErr := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case err := <-serveErr:
		a.db.Close()
		return fmt.Errorf("server failed: %w", err)
	case sig := <-stop:
		slog.Info("shutdown requested", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	shutdownErr := a.server.Shutdown(ctx)
	a.db.Close()
	if shutdownErr != nil {
		return fmt.Errorf("graceful shutdown failed: %w", shutdownErr)
	}

	slog.Info("server stopped")
	return nil
}
