package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/finansgold/backend/internal/config"
	"github.com/finansgold/backend/internal/database"
	"github.com/finansgold/backend/internal/logger"
	"github.com/finansgold/backend/internal/quote"
	"github.com/finansgold/backend/internal/server"
	"github.com/finansgold/backend/internal/session"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := zerolog.New(os.Stderr)
		bootLog.Fatal().Err(err).Msg("failed to load config")
	}

	log := logger.New(cfg.Log.Level, cfg.IsProduction())
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
	log.Info().Msg("server stopped")
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	db, err := database.New(cfg.Database, log)
	if err != nil {
		return err
	}
	defer db.Close()

	store, closeStore, err := sessionStore(ctx, cfg, db, log)
	if err != nil {
		return err
	}
	defer closeStore()

	sessions := session.NewManager(store, cfg.Session.Secret, cfg.Session.Lifetime, log)
	quotes := quote.NewGateway(quote.NewYahooClient(cfg.Quote, log), log)

	httpServer := server.NewServer(cfg, db, sessions, quotes, log).HTTPServer()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", httpServer.Addr).Str("env", cfg.Server.Env).Msg("server starting")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// sessionStore prefers Redis when an address is configured and falls back to the sessions table
func sessionStore(ctx context.Context, cfg *config.Config, db database.Service, log zerolog.Logger) (session.Store, func(), error) {
	if cfg.Redis.Addr == "" {
		log.Info().Msg("sessions stored in database")
		return session.NewDBStore(db.GetDB()), func() {}, nil
	}

	rdb, err := session.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		return nil, nil, err
	}
	log.Info().Str("addr", cfg.Redis.Addr).Msg("sessions stored in redis")
	return session.NewRedisStore(rdb), func() { _ = rdb.Close() }, nil
}
