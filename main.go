package main

import (
	"github.com/wfunc/maestro/config"
	"github.com/wfunc/maestro/logger"
	"github.com/wfunc/maestro/monitor"
	"github.com/wfunc/maestro/server"
)

func main() {
	// Initialize logger
	logger.Init()

	// Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		logger.Log.Fatalf("Failed to load configuration: %v", err)
	}

	// Metrics endpoint
	mon := monitor.NewMonitor("maestro")
	mon.StartServer(cfg.Server.MonitorAddress)

	// Initialize Game Server
	gameServer := server.NewGameServer(cfg.Server.HTTPAddress, mon)

	// Start Server
	logger.Log.Infof("Starting maestro server on %s", cfg.Server.HTTPAddress)
	if err := gameServer.Start(); err != nil {
		logger.Log.Fatalf("Failed to start server: %v", err)
	}
}
