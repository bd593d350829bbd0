package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"coworkspace/internal/app"
	"coworkspace/internal/config"
	"coworkspace/internal/database"
	"coworkspace/internal/events"
	"coworkspace/internal/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("config")
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	if cfg.IsProd() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg.DatabaseURL, log)
	if err != nil {
		log.WithError(err).Fatal("database connect")
	}
	if err := database.Migrate(db); err != nil {
		log.WithError(err).Fatal("database migrate")
	}

	rdb := connectRedis(cfg.Redis, log)
	if rdb != nil {
		defer rdb.Close()
	}

	pub := connectPublisher(cfg.AMQP, log)
	defer pub.Close()

	router, err := app.NewRouter(app.Deps{Config: cfg, DB: db, Log: log, Redis: rdb, Events: pub})
	if err != nil {
		log.WithError(err).Fatal("router")
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.WithField("addr", cfg.HTTPAddr).Info("http server started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("http server")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("http server shutdown")
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// connectRedis returns nil when redis is not configured or unreachable;
// rate limiting is then disabled.
func connectRedis(cfg config.RedisConfig, log logrus.FieldLogger) *redis.Client {
	if cfg.Addr == "" {
		return nil
	}
	rdb := redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.WithError(err).Warn("redis unavailable, rate limiting disabled")
		_ = rdb.Close()
		return nil
	}
	return rdb
}

func connectPublisher(cfg config.AMQPConfig, log logrus.FieldLogger) events.Publisher {
	if cfg.URL == "" {
		return events.NoopPublisher{}
	}
	pub, err := events.NewAMQPPublisher(cfg.URL, cfg.Exchange)
	if err != nil {
		log.WithError(err).Warn("amqp unavailable, booking events disabled")
		return events.NoopPublisher{}
	}
	return pub
}
