package main

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/ahmadzkh/ecommerce-zaky/internal/analytics"
	"github.com/ahmadzkh/ecommerce-zaky/internal/config"
	"github.com/ahmadzkh/ecommerce-zaky/internal/dataset"
	"github.com/ahmadzkh/ecommerce-zaky/internal/handler"
	"github.com/ahmadzkh/ecommerce-zaky/internal/logger"
	"github.com/ahmadzkh/ecommerce-zaky/internal/metrics"
	"github.com/ahmadzkh/ecommerce-zaky/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Initialize logger
	log, err := logger.New(cfg.ServiceEnvironment)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer func(log *zap.Logger) {
		err := log.Sync()
		if err != nil {
			log.Error("Failed to sync logger", zap.Error(err))
		}
	}(log)

	log.Info("Starting order analytics service",
		zap.String("environment", cfg.ServiceEnvironment),
		zap.String("port", cfg.ServiceAPIPort))

	// Load the order-line table once; it stays read-only for the process
	// lifetime.
	store, err := dataset.LoadCSV(cfg.DatasetPath)
	if err != nil {
		log.Fatal("Failed to load dataset",
			zap.String("path", cfg.DatasetPath),
			zap.Error(err))
	}
	log.Info("Dataset loaded",
		zap.String("path", cfg.DatasetPath),
		zap.Int("rows", store.Len()))

	// Initialize metrics registry
	m := metrics.NewRegistry()

	// Initialize aggregation pipeline
	pipeline := analytics.NewPipeline(analytics.Options{
		TopCategories: cfg.TopCategoriesLimit,
		TopCustomers:  cfg.TopCustomersLimit,
	})

	// Initialize report service
	reportService := service.NewReportService(store, pipeline, m, log)

	// Initialize handler
	h := handler.NewHandler(reportService, m.Handler(), log)

	addr := fmt.Sprintf(":%s", cfg.ServiceAPIPort)
	log.Info("API server starting", zap.String("address", addr))

	if err := http.ListenAndServe(addr, h); err != nil {
		log.Fatal("Failed to start API server", zap.Error(err))
	}
}
