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

	"github.com/gin-gonic/gin"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tgcs/experience-api/internal/bootstrap"
	"github.com/tgcs/experience-api/internal/config"
	"github.com/tgcs/experience-api/internal/infra/cache"
	"github.com/tgcs/experience-api/internal/infra/db"
	"github.com/tgcs/experience-api/internal/infra/mailer"
	mq "github.com/tgcs/experience-api/internal/infra/queue"
	"github.com/tgcs/experience-api/internal/middleware"
	"github.com/tgcs/experience-api/internal/modules/handler"
	"github.com/tgcs/experience-api/internal/modules/service"
	"github.com/tgcs/experience-api/internal/router"
	"github.com/tgcs/experience-api/internal/telemetry"
)

// @title						Experience Catalogue API
// @version					1.0
// @description				Read, mutation, auth, scraper and recommendation endpoints for the experiences catalogue.
// @BasePath					/
// @securityDefinitions.apikey	SessionCookie
// @in							header
// @name						Cookie
func main() {
	inj := bootstrap.BuildContainer()
	cfg := do.MustInvoke[*config.Config](inj)
	log := do.MustInvoke[*zap.Logger](inj)
	defer func() { _ = log.Sync() }()

	switch cfg.App.Env {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
		gin.SetMode(cfg.App.Env)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	if err := middleware.RegisterValidators(); err != nil {
		log.Fatal("register validators", zap.Error(err))
	}

	// tracing must be set up before the gorm and redis plugins are registered
	if _, err := telemetry.SetupTracing(cfg); err != nil {
		log.Warn("tracing disabled", zap.Error(err))
	}
	tracing := cfg.Telemetry.Enabled && cfg.Telemetry.OtlpEndpoint != ""

	gdb := do.MustInvoke[*gorm.DB](inj)
	rdb := do.MustInvoke[*redis.Client](inj)
	if tracing {
		if err := db.RegisterOpenTelemetryPlugin(gdb); err != nil {
			log.Warn("gorm tracing plugin", zap.Error(err))
		}
		if err := cache.RegisterOpenTelemetryPlugin(rdb); err != nil {
			log.Warn("redis tracing plugin", zap.Error(err))
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, err := do.Invoke[*amqp.Connection](inj)
	if err != nil {
		log.Warn("rabbitmq unavailable, mail consumer not started", zap.Error(err))
	} else {
		go runMailConsumer(ctx, conn, cfg, do.MustInvoke[*mailer.Mailer](inj), log)
	}

	engine := router.NewRouter(router.RouterDeps{
		Config:                cfg,
		Log:                   log,
		Auth:                  do.MustInvoke[service.AuthService](inj),
		CatalogueHandler:      do.MustInvoke[*handler.CatalogueHandler](inj),
		TableHandler:          do.MustInvoke[*handler.TableHandler](inj),
		AuthHandler:           do.MustInvoke[*handler.AuthHandler](inj),
		ScraperHandler:        do.MustInvoke[*handler.ScraperHandler](inj),
		RecommendationHandler: do.MustInvoke[*handler.RecommendationHandler](inj),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.App.Host, cfg.App.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("http server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http server shutdown", zap.Error(err))
	}
	if err := telemetry.Shutdown(shutdownCtx); err != nil {
		log.Error("tracer shutdown", zap.Error(err))
	}
	if conn != nil {
		_ = conn.Close()
	}
	if err := rdb.Close(); err != nil {
		log.Error("redis close", zap.Error(err))
	}
	if err := db.Close(gdb); err != nil {
		log.Error("db close", zap.Error(err))
	}
}

func runMailConsumer(ctx context.Context, conn *amqp.Connection, cfg *config.Config, m *mailer.Mailer, log *zap.Logger) {
	consumer, err := mq.NewConsumer(conn, cfg.RabbitMQ.MailQueue, cfg.RabbitMQ.Prefetch, log, cfg)
	if err != nil {
		log.Error("mail consumer", zap.Error(err))
		return
	}
	defer consumer.Close()

	log.Info("mail consumer started", zap.String("queue", cfg.RabbitMQ.MailQueue))
	if err := consumer.Handle(ctx, m.HandleDelivery); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("mail consumer stopped", zap.Error(err))
	}
}
