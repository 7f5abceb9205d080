package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"dogohouse/internal/config"
	"dogohouse/internal/db"
	"dogohouse/internal/httpserver"
	menurepo "dogohouse/internal/repository/menu"
	cartsvc "dogohouse/internal/service/cart"
	catalogsvc "dogohouse/internal/service/catalog"
	checkoutsvc "dogohouse/internal/service/checkout"
	"dogohouse/internal/service/pricing"
	"dogohouse/internal/whatsapp"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	menuRepo := menurepo.NewPostgres(dbpool, logger)
	catalogService, err := catalogsvc.Load(ctx, menuRepo, logger)
	if err != nil {
		logger.Fatalf("load catalog: %v", err)
	}

	priceEngine := pricing.New(catalogService)
	cartService := cartsvc.New(priceEngine, logger)
	formatter := whatsapp.NewFormatter(cfg.BusinessName, catalogService)
	checkoutService := checkoutsvc.New(checkoutsvc.Config{
		TaxRate:               cfg.TaxRate,
		FreeDeliveryThreshold: cfg.FreeDeliveryThreshold,
		FlatDeliveryFee:       cfg.FlatDeliveryFee,
		BusinessPhones:        cfg.BusinessPhones,
	}, cartService, formatter, logger)

	srv := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		Catalog:  catalogService,
		Carts:    cartService,
		Checkout: checkoutService,
	}, cfg.AllowedOrigins)

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
