package main

import (
	"log"

	"go.uber.org/zap"

	"automation-dashboard/internal/compute"
	"automation-dashboard/internal/config"
	"automation-dashboard/internal/httpserver"
	"automation-dashboard/pkg/logger"
)

func main() {
	cfg := config.Load()

	logger := logger.NewLogger()
	defer logger.Sync()

	wrapper := compute.NewWrapper(logger)
	invokeHandler := compute.NewInvokeHandler(wrapper, logger)

	router := httpserver.NewComputeRouter(invokeHandler)

	logger.Info("Starting compute service", zap.String("port", cfg.ComputeServer.Port))
	if err := router.Run(cfg.ComputeServer.Port); err != nil {
		log.Fatalf("server start failed: %v", err)
	}
}
