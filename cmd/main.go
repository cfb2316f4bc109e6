/**
 * @description
 * Main entry point for the insights-service. Initializes configuration,
 * the database pool, the event producer, the application service and
 * the HTTP server, and wires everything together.
 */
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/transfa/insights-service/internal/api"
	"github.com/transfa/insights-service/internal/app"
	"github.com/transfa/insights-service/internal/config"
	"github.com/transfa/insights-service/internal/store"
	"github.com/transfa/insights-service/pkg/rabbitmq"
)

func main() {
	// Load .env in local development; environment wins in deployment.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("level=fatal component=bootstrap msg=\"config load failed\" err=%v", err)
	}

	log.Printf("level=info component=bootstrap msg=\"starting insights-service\" port=%s", cfg.ServerPort)

	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("level=fatal component=bootstrap msg=\"database url parse failed\" err=%v", err)
	}
	poolConfig.MaxConns = 50
	poolConfig.MinConns = 5
	poolConfig.MaxConnLifetime = 30 * time.Minute
	poolConfig.MaxConnIdleTime = 5 * time.Minute

	dbpool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		log.Fatalf("level=fatal component=bootstrap msg=\"database connection failed\" err=%v", err)
	}
	defer dbpool.Close()
	log.Println("level=info component=bootstrap msg=\"database connected\"")

	// The event producer is optional: assessments still run when the
	// broker is down, the completed events are just dropped.
	var publisher rabbitmq.Publisher
	if strings.TrimSpace(cfg.RabbitMQURL) == "" {
		log.Println("level=warn component=bootstrap msg=\"rabbitmq url missing; events disabled\" env=RABBITMQ_URL")
		publisher = rabbitmq.NoopPublisher{}
	} else if producer, err := rabbitmq.NewEventProducer(cfg.RabbitMQURL); err != nil {
		log.Printf("level=warn component=bootstrap msg=\"rabbitmq producer unavailable; using fallback\" err=%v", err)
		publisher = rabbitmq.NoopPublisher{}
	} else {
		defer producer.Close()
		publisher = producer
		log.Println("level=info component=bootstrap msg=\"rabbitmq producer connected\"")
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	repo := store.NewRepository(dbpool)
	service := app.NewService(repo, publisher, cfg.EventExchange, logger)
	router := api.NewRouter(api.NewHandler(service), cfg.InternalAPIKey)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("level=fatal component=bootstrap msg=\"server failed\" err=%v", err)
		}
	}()
	log.Printf("level=info component=bootstrap msg=\"insights-service listening\" addr=%s", server.Addr)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("level=warn component=bootstrap msg=\"graceful shutdown failed\" err=%v", err)
	}
	log.Println("level=info component=bootstrap msg=\"insights-service stopped\"")
}
