package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/quickbite/order-service/internal/app"
	"github.com/quickbite/order-service/internal/auth"
	"github.com/quickbite/order-service/internal/config"
	"github.com/quickbite/order-service/internal/events"
	"github.com/quickbite/order-service/internal/handler"
	"github.com/quickbite/order-service/internal/middleware"
	"github.com/quickbite/order-service/internal/postgres"
	"github.com/quickbite/order-service/internal/repo"
	"github.com/quickbite/order-service/internal/service"
	"github.com/quickbite/order-service/pkg/cache"
	"github.com/quickbite/order-service/pkg/trm"

	"github.com/joho/godotenv"
)

// @title           Food Order Service API
// @version         1.0
// @description     Order lifecycle and authorization HTTP API
func main() {
	conf := config.New()
	logger := newLogger(conf.Env)
	panicIfErr("invalid config", conf.Validate())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	db, err := postgres.New(conf.Postgres)
	panicIfErr("failed to connect to db", err)
	defer db.Close()
	logger.Info("postgres connected")

	store := repo.NewPostgresRepo(db)
	txManager := trm.NewManager(db)

	orderCache := cache.NewLRUCache(conf.Cache.Capacity, conf.Cache.TTL)
	orderCache.StartJanitor(ctx)

	tokens := auth.NewTokenCodec(conf.JWT.Secret, conf.JWT.TTL)

	application := app.New(logger, conf)

	var publisher service.EventPublisher = events.NopPublisher{}
	if len(conf.Kafka.Brokers) > 0 {
		kafkaPublisher := events.NewKafkaPublisher(logger, conf.Kafka)
		application.AddCloser(kafkaPublisher)
		publisher = kafkaPublisher
		logger.Info("kafka publisher enabled", slog.String("topic", conf.Kafka.Topic))
	}

	orderService := service.NewOrderService(logger, txManager, store, orderCache, publisher, conf.Orders)
	authService := service.NewAuthService(logger, store, tokens)

	application.SetHTTPHandlers(
		handler.NewOrderHandler(logger, orderService, middleware.Auth(tokens)),
		handler.NewAuthHandler(logger, authService),
	)

	panicIfErr("application failed", application.Run(ctx))
}

func init() {
	godotenv.Load()
}

func newLogger(env string) *slog.Logger {
	switch env {
	case "production":
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}

func panicIfErr(prefix string, err error) {
	if err != nil {
		panic(prefix + ": " + err.Error())
	}
}
