package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/PattyWambere/KapeeFrontend/config"
	"github.com/PattyWambere/KapeeFrontend/internal/broker"
	"github.com/PattyWambere/KapeeFrontend/internal/devserver"
	"github.com/PattyWambere/KapeeFrontend/internal/devserver/store"
	"github.com/PattyWambere/KapeeFrontend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
)

func main() {

	cfg := config.Load()

	if err := util.InitLogger(cfg.Server.Env); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer util.SyncLogger()

	logger := util.GetLogger()
	logger.Info("Starting Kapee development API server")

	tp, err := util.InitTracer("kapee-devapi", cfg.Observ.JaegerEndpoint)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("Error shutting down tracer: %v", err)
		}
	}()

	var st store.Store
	switch cfg.Database.Driver {
	case "postgres":
		st, err = store.NewPostgres(cfg.Database.URL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		log.Println("Database connected")
	default:
		st = store.NewMemory()
		log.Println("Using in-memory store")
	}
	defer st.Close()

	var publisher *broker.EventPublisher
	var producer *broker.Producer
	if cfg.Kafka.Enabled {
		producer = broker.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.TopicOrder)
		defer producer.Close()
		publisher = broker.NewEventPublisher(producer)
		log.Println("Kafka producer initialized")
	}

	ctx := context.Background()
	if cfg.Server.Seed {
		if err := devserver.Seed(ctx, st); err != nil {
			log.Fatalf("Failed to seed store: %v", err)
		}
		log.Println("Store seeded")
	}

	sessionTTL := time.Duration(cfg.Server.SessionTTLMinutes) * time.Minute
	server := devserver.New(st, publisher, sessionTTL)

	sweeper := cron.New()
	if _, err := sweeper.AddFunc("@every 15m", server.SweepSessions); err != nil {
		log.Fatalf("Failed to schedule session sweep: %v", err)
	}
	sweeper.Start()
	defer sweeper.Stop()

	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	var fulfillment *devserver.FulfillmentWorker
	if cfg.Kafka.Enabled {
		consumer := broker.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.TopicOrder, cfg.Kafka.ConsumerGroup)
		fulfillment = devserver.NewFulfillmentWorker(consumer, st, publisher)
		go func() {
			if err := fulfillment.Start(workerCtx); err != nil {
				log.Printf("Fulfillment worker error: %v", err)
			}
		}()
	}

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: server.Router(),
	}

	go func() {
		log.Printf("Starting HTTP server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	workerCancel()
	if fulfillment != nil {
		fulfillment.Stop()
	}

	log.Println("Server exited")
}
