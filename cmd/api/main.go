package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/sky-yttr/final-exam-devops-soumaya-khady/internal/catalog"
	"github.com/sky-yttr/final-exam-devops-soumaya-khady/internal/config"
	"github.com/sky-yttr/final-exam-devops-soumaya-khady/internal/httpx"
	kafkax "github.com/sky-yttr/final-exam-devops-soumaya-khady/internal/kafka"
	"github.com/sky-yttr/final-exam-devops-soumaya-khady/internal/postgres"
	"github.com/sky-yttr/final-exam-devops-soumaya-khady/internal/redisx"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer db.Close()

	repo := &catalog.Repo{DB: db}
	if cfg.Bootstrap {
		if err := postgres.Bootstrap(ctx, db); err != nil {
			log.Fatalf("schema bootstrap: %v", err)
		}
		if err := repo.SeedProducts(ctx, catalog.DemoProducts()); err != nil {
			log.Fatalf("seed products: %v", err)
		}
	}

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Kafka producer
	prod := kafkax.NewProducer(cfg.KafkaBrokers, catalog.TopicOrderCreated, 1024)
	prod.Start(ctx)

	svc := &catalog.Service{
		Store:     repo,
		Cache:     catalog.NewListingCache(rdb, cfg.ProductCacheTTL),
		Publisher: prod,
		Name:      cfg.ServiceName,
	}

	router := httpx.NewRouter()
	ch := &httpx.CatalogHandler{Svc: svc}
	ch.Register(router)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	go func() {
		log.Printf("HTTP listening at %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	prod.Close() // stop intake, flush buffered events
	prod.WaitClosed()
}
