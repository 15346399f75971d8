package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/PattyWambere/KapeeFrontend/config"
	"github.com/PattyWambere/KapeeFrontend/internal/app"
	"github.com/PattyWambere/KapeeFrontend/internal/util"

	"go.uber.org/zap"
)

func main() {

	cfg := config.Load()

	if err := util.InitLogger(cfg.Server.Env); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer util.SyncLogger()

	logger := util.GetLogger()

	tp, err := util.InitTracer("kapee-storefront", cfg.Observ.JaegerEndpoint)
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

	a, err := app.New(cfg)
	if err != nil {
		logger.Fatal("Failed to build client", zap.Error(err))
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.Start(ctx)

	if user := a.Session.User(); user != nil {
		logger.Info("Resumed session", zap.String("email", user.Email))
	} else {
		logger.Info("Browsing as guest")
	}

	products, err := a.Products.List(ctx)
	if err != nil {
		logger.Fatal("Failed to load catalog", zap.Error(err))
	}
	for _, p := range products {
		fmt.Printf("%-36s  %-30s  $%.2f\n", p.ID, p.Name, p.Price)
	}

	fmt.Printf("\nCart: %d item(s), subtotal $%.2f\n", a.Cart.Len(), a.Cart.Subtotal())
}
