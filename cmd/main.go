package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"florist-marketplace/internal/cache"
	"florist-marketplace/internal/db"
	"florist-marketplace/internal/geo"
	"florist-marketplace/internal/kafka"
	"florist-marketplace/internal/logger"
	"florist-marketplace/internal/repository/postgresql"
	"florist-marketplace/internal/server"
	"florist-marketplace/internal/storage"
)

const (
	defaultPort        = "9000"
	outboxPollInterval = 2 * time.Second
	outboxBatchSize    = 50
	outboxMaxAttempts  = 5
)

func main() {
	zl := logger.New()
	defer func() {
		_ = zl.Sync()
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	database, err := db.NewDB(ctx)
	if err != nil {
		log.Fatalf("Database init error: %v", err)
	}
	defer database.Close()

	floristRepo := cache.NewFloristCache(postgresql.NewFloristRepo(database))
	if err := floristRepo.LoadInitialData(ctx); err != nil {
		log.Printf("WARN: failed to warm florist cache: %v", err)
	}

	orderRepo := postgresql.NewOrderRepo(database)
	historyRepo := postgresql.NewHistoryRepo(database)
	userRepo := postgresql.NewUserRepo(database)
	outboxRepo := postgresql.NewOutboxTaskRepo(outboxMaxAttempts)

	marketplace := storage.NewMarketplaceStorage(
		database,
		floristRepo,
		orderRepo,
		historyRepo,
		outboxRepo,
		geo.NewEstimateProvider(),
	)

	producer := newProducer()
	publisher := kafka.NewPublisher(database, outboxRepo, producer, kafka.PublisherConfig{
		PollInterval: outboxPollInterval,
		BatchSize:    outboxBatchSize,
		MaxAttempts:  outboxMaxAttempts,
	})

	srv := server.New(marketplace, userRepo)

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = defaultPort
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return srv.Run(gctx, port)
	})

	g.Go(func() error {
		publisher.Run(gctx)
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("Service exited with error: %v", err)
	}

	log.Println("Service stopped")
}

// newProducer picks the Kafka producer when brokers are configured and
// falls back to console output otherwise.
func newProducer() kafka.Producer {
	brokers := os.Getenv("KAFKA_BROKERS")
	if brokers == "" {
		return kafka.NewConsoleProducer()
	}
	return kafka.NewKafkaProducer(strings.Split(brokers, ","))
}
