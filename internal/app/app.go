// Package app wires the link shortener's dependencies and runs the HTTP server.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/httplog/v2"
	"github.com/vadimbarashkov/link-shortener/internal/auth"
	"github.com/vadimbarashkov/link-shortener/internal/config"
	"github.com/vadimbarashkov/link-shortener/internal/ui"
	"github.com/vadimbarashkov/link-shortener/internal/usecase"
	"github.com/vadimbarashkov/link-shortener/migrations"
	"github.com/vadimbarashkov/link-shortener/pkg/postgres"
	"github.com/vadimbarashkov/link-shortener/pkg/redis"
	"golang.org/x/sync/errgroup"

	rediscache "github.com/vadimbarashkov/link-shortener/internal/adapter/cache/redis"
	delivery "github.com/vadimbarashkov/link-shortener/internal/adapter/delivery/http"
	repository "github.com/vadimbarashkov/link-shortener/internal/adapter/repository/postgres"
)

const shutdownTimeout = 10 * time.Second

func Run(ctx context.Context, cfg *config.Config, logger *httplog.Logger) error {
	const op = "app.Run"

	if err := postgres.RunMigrations(migrations.FS, ".", cfg.Postgres.DSN()); err != nil {
		return fmt.Errorf("%s: failed to run migrations: %w", op, err)
	}

	db, err := postgres.New(
		ctx,
		cfg.Postgres.DSN(),
		postgres.WithConnMaxIdleTime(cfg.Postgres.ConnMaxIdleTime),
		postgres.WithConnMaxLifetime(cfg.Postgres.ConnMaxLifetime),
		postgres.WithMaxIdleConns(cfg.Postgres.MaxIdleConns),
		postgres.WithMaxOpenConns(cfg.Postgres.MaxOpenConns),
	)
	if err != nil {
		return fmt.Errorf("%s: failed to connect to database: %w", op, err)
	}
	defer db.Close()

	useCaseOpts := []usecase.Option{usecase.WithLogger(logger.Logger)}

	if cfg.Redis.Enabled() {
		client, err := redis.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return fmt.Errorf("%s: failed to connect to redis: %w", op, err)
		}
		defer client.Close()

		useCaseOpts = append(useCaseOpts, usecase.WithCache(rediscache.NewLinkCache(client, cfg.Redis.LinkTTL)))
	} else {
		logger.Info("redis is not configured, link cache disabled")
	}

	verifier, err := newVerifier(cfg.Auth)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	frontendAPI, err := auth.FrontendAPI(cfg.Auth.PublishableKey)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	pages, err := ui.New(ui.Shell{
		PublishableKey: cfg.Auth.PublishableKey,
		FrontendAPI:    frontendAPI,
		Appearance:     ui.DefaultAppearance(),
	})
	if err != nil {
		return fmt.Errorf("%s: failed to load page templates: %w", op, err)
	}

	linkRepo := repository.NewLinkRepository(db)
	linkUseCase := usecase.NewLinkUseCase(linkRepo, useCaseOpts...)

	r := delivery.NewRouter(logger, linkUseCase, verifier, pages, cfg.Auth.SessionCookie)

	server := &http.Server{
		Addr:           cfg.HTTPServer.Addr(),
		Handler:        r,
		ReadTimeout:    cfg.HTTPServer.ReadTimeout,
		WriteTimeout:   cfg.HTTPServer.WriteTimeout,
		IdleTimeout:    cfg.HTTPServer.IdleTimeout,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error

		logger.Info("starting server", slog.String("addr", server.Addr), slog.String("env", cfg.Env))

		switch cfg.Env {
		case config.EnvProd:
			err = server.ListenAndServeTLS(cfg.HTTPServer.CertFile, cfg.HTTPServer.KeyFile)
		default:
			err = server.ListenAndServe()
		}

		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("%s: server error occurred: %w", op, err)
		}

		return nil
	})

	g.Go(func() error {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: failed to shutdown server: %w", op, err)
		}

		logger.Info("server stopped")

		return nil
	})

	return g.Wait()
}

func newVerifier(cfg config.Auth) (*auth.Verifier, error) {
	key, err := cfg.PublicKey()
	if err != nil {
		return nil, err
	}

	opts := []auth.Option{auth.WithLeeway(cfg.ClockSkew)}
	if len(cfg.AuthorizedParties) > 0 {
		opts = append(opts, auth.WithAuthorizedParties(cfg.AuthorizedParties...))
	}

	return auth.NewVerifier(key, opts...)
}
