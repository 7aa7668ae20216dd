// Command server runs the job board HTTP API.
//
// @title                       Job Board API
// @version                     1.0
// @description                 Users, job postings, applications and direct messages.
// @BasePath                    /api
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/careerconnect/jobboard/internal/api"
	"github.com/careerconnect/jobboard/internal/api/handler"
	"github.com/careerconnect/jobboard/internal/api/metrics"
	"github.com/careerconnect/jobboard/internal/core/service"
	"github.com/careerconnect/jobboard/internal/infrastructure/db/mongo"
	"github.com/careerconnect/jobboard/internal/infrastructure/db/redis"
	"github.com/careerconnect/jobboard/internal/infrastructure/queue"
	"github.com/careerconnect/jobboard/internal/pkg/config"
	"github.com/careerconnect/jobboard/pkg/logger"
)

func main() {
	cfg := config.MustLoad()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "jobboard",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("connect mongo")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("disconnect mongo")
		}
	}()
	if err := mongo.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("ensure indexes")
	}

	rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("connect redis")
	}
	defer rdb.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	if err := metrics.Register(reg); err != nil {
		log.Fatal().Err(err).Msg("register metrics")
	}

	// --- Repositories ---
	users := mongo.NewUserRepository(db)
	jobs := mongo.NewJobRepository(db)
	messages := mongo.NewMessageRepository(db)
	identities := redis.NewIdentityCache(rdb, cfg.Redis.IdentityTTL)

	// --- Services ---
	tokens := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	authService := service.NewAuthService(users, tokens, identities, logger.Component("auth"))
	notices := queue.NewDispatcher(cfg.NoticeWorkers, service.NewNoticeService(messages, logger.Component("notices")), logger.Component("dispatcher"))
	notices.Start(ctx)

	router := api.NewRouter(api.Dependencies{
		Auth:     authService,
		Tokens:   tokens,
		Identity: authService,
		Users:    service.NewUserService(users, identities, logger.Component("users")),
		Jobs:     service.NewJobService(jobs, users, notices, logger.Component("jobs")),
		Messages: service.NewMessageService(messages, users, logger.Component("messages")),
		Health: map[string]handler.Pinger{
			"mongodb": handler.PingFunc(func(ctx context.Context) error { return mongo.Ping(ctx, db) }),
			"redis":   handler.PingFunc(func(ctx context.Context) error { return redis.Ping(ctx, rdb) }),
		},
		Metrics: reg,
		Logger:  logger.Component("http"),
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server listening")
		if err := router.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), api.ShutdownTimeout)
	defer cancel()
	if err := router.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown")
	}
	notices.Wait()
	log.Info().Msg("server exited")
}
