// Package app wires configuration, database, middleware, and routes into
// a running HTTP server with a background session reaper.
package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/puzzle-server/internal/config"
	"github.com/vancomm/puzzle-server/internal/database"
	"github.com/vancomm/puzzle-server/internal/middleware"
	"github.com/vancomm/puzzle-server/internal/repository"
)

// Anonymous sessions nobody has touched for this long get reaped.
const staleSessionMaxAge = 7 * 24 * time.Hour

type App struct {
	logger     *slog.Logger
	router     *http.ServeMux
	db         *pgxpool.Pool
	cookies    *config.Cookies
	jwt        *config.JWT
	ws         *config.WebSocket
	migrations fs.FS
}

func New(logger *slog.Logger, migrations fs.FS) *App {
	return &App{
		logger:     logger,
		router:     http.NewServeMux(),
		migrations: migrations,
	}
}

func (a *App) Start(ctx context.Context) error {
	db, err := database.ConnectAndMigrate(ctx, a.migrations)
	if err != nil {
		return fmt.Errorf("unable to connect to db: %w", err)
	}
	a.db = db

	jwt, err := config.NewJWT()
	if err != nil {
		return err
	}
	a.jwt = jwt

	cookies, err := config.NewCookies(jwt)
	if err != nil {
		return err
	}
	a.cookies = cookies

	ws, err := config.NewWebSocket()
	if err != nil {
		return err
	}
	a.ws = ws

	a.loadRoutes()

	addr := ":" + config.Port()
	if addr == ":" {
		addr = ":8080"
	}

	var handler http.Handler = a.router
	if base := config.BasePath(); base != "" {
		handler = http.StripPrefix(base, handler)
	}

	server := &http.Server{
		Addr: addr,
		Handler: middleware.Wrap(
			handler,
			middleware.Cors(),
			middleware.Logging(a.logger),
			middleware.Auth(a.logger, cookies),
		),
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.logger.Info("server listening", slog.String("addr", addr))
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		return a.reapStaleSessions(ctx)
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second*30)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// reapStaleSessions deletes stale anonymous sessions once an hour until
// the context is cancelled.
func (a *App) reapStaleSessions(ctx context.Context) error {
	repo := repository.New(a.db)
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			n, err := repo.DeleteStaleAnonymousSessions(ctx, staleSessionMaxAge)
			if err != nil {
				a.logger.Error("unable to reap stale sessions", "error", err)
				continue
			}
			if n > 0 {
				a.logger.Info("reaped stale anonymous sessions", slog.Int64("count", n))
			}
		}
	}
}
