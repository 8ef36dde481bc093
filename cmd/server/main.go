// Package main - Entry point for the grain classification server
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"presolar/api"
	"presolar/internal/config"
	"presolar/internal/logging"
)

const version = "0.3.0"

func main() {
	addr := flag.String("addr", "", "Server address (default from config)")
	cfgPath := flag.String("config", "", "Path to a JSON or HCL config file")
	flag.Parse()

	cfg := config.Default()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
	defer logging.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := api.NewServer(version, cfg)
	logging.Warn("presolar server listening",
		zap.String("addr", cfg.Server.Addr),
		zap.String("version", version))

	if err := server.ListenAndServe(ctx, cfg.Server.Addr); err != nil {
		logging.Error("server stopped", zap.Error(err))
		logging.Sync()
		os.Exit(1)
	}
}
