package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fintrack/backend/api"
	"github.com/fintrack/backend/auth"
	"github.com/fintrack/backend/config"
	"github.com/fintrack/backend/db"
	_ "github.com/fintrack/backend/docs"
	"github.com/fintrack/backend/logging"
	"github.com/fintrack/backend/notify"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const shutdownTimeout = 10 * time.Second

// @title Fintrack API
// @version 1.0
// @description Personal finance tracker: authentication, transactions, categories and savings goals.
// @BasePath /
// @SecurityDefinitions.apikey ApiKeyAuth
// @In header
// @Name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		l := zerolog.New(os.Stderr).With().Timestamp().Logger()
		l.Fatal().Err(err).Msg("invalid configuration")
	}
	logger := logging.New(cfg.LogLevel, cfg.Env)
	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	storage, err := db.NewStorage(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer storage.Close()

	tokens, err := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create token manager")
	}

	var opts []api.Option
	var sessions auth.SessionStore
	if cfg.RedisURL != "" {
		rdb, err := connectRedis(ctx, cfg.RedisURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer rdb.Close()
		sessions = auth.NewRedisSessionStore(rdb, auth.DefaultSessionPrefix)
		opts = append(opts, api.WithLoginLimiter(auth.NewLoginLimiter(rdb, cfg.LoginMaxAttempts, cfg.LoginCooldown)))
		logger.Info().Msg("session store enabled")
	} else {
		logger.Warn().Msg("REDIS_URL not set, tokens are validated without a session store")
	}

	if cfg.AMQPURL != "" {
		publisher, err := notify.NewRabbitMQPublisher(cfg.AMQPURL, cfg.NotificationsQueue)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to rabbitmq")
		}
		defer publisher.Close()
		opts = append(opts, api.WithPublisher(publisher))
	}
	opts = append(opts, api.WithEnvironment(cfg.Env, cfg.Port))

	handler := api.NewHandler(storage, auth.NewService(tokens, sessions), opts...)
	r := api.NewRouter(logger, cfg.CORSOrigins)
	handler.Register(r)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func connectRedis(ctx context.Context, url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opt)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, err
	}
	return rdb, nil
}
