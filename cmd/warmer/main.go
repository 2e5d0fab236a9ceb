package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/sky-yttr/final-exam-devops-soumaya-khady/internal/catalog"
	"github.com/sky-yttr/final-exam-devops-soumaya-khady/internal/config"
	kafkax "github.com/sky-yttr/final-exam-devops-soumaya-khady/internal/kafka"
	"github.com/sky-yttr/final-exam-devops-soumaya-khady/internal/postgres"
	"github.com/sky-yttr/final-exam-devops-soumaya-khady/internal/redisx"
	"github.com/sky-yttr/final-exam-devops-soumaya-khady/internal/warmer"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer db.Close()

	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	svc := &warmer.Service{
		Store: &catalog.Repo{DB: db},
		Cache: catalog.NewListingCache(rdb, cfg.ProductCacheTTL),
	}

	cons := kafkax.NewConsumer(cfg.KafkaBrokers, cfg.WarmerGroup, catalog.TopicOrderCreated, cfg.WarmerWorkers)

	go func() {
		log.Printf("warmer consumer started: group=%s topic=%s workers=%d", cfg.WarmerGroup, catalog.TopicOrderCreated, cfg.WarmerWorkers)
		if err := cons.Start(ctx, svc.HandleOrderCreated); err != nil {
			log.Printf("consumer exit: %v", err)
			cancel()
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sig:
	case <-ctx.Done():
	}
	log.Println("shutting down warmer...")
	cancel()
}
