package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"front-of-house/internal/app/kitchen"
	"front-of-house/internal/app/notify"
	"front-of-house/internal/app/server"
	"front-of-house/internal/config"
	"front-of-house/internal/logger"
)

func main() {
	mode := flag.String("mode", "server", "server | kitchen-worker | notification-subscriber")
	port := flag.Int("port", 0, "override HTTP port (server mode)")
	station := flag.String("station", "", "override station id (kitchen-worker mode)")
	flag.Parse()

	cfg := config.Load()
	if *port != 0 {
		cfg.HTTPPort = *port
	}
	if *station != "" {
		cfg.Station = *station
	}

	lg := logger.New("bootstrap")
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var err error
	switch *mode {
	case "server":
		lg.Info("service_started", map[string]any{"service": "server", "port": cfg.HTTPPort, "store": cfg.StoreBackend})
		err = server.Run(ctx, cfg)
	case "kitchen-worker":
		lg.Info("service_started", map[string]any{"service": "kitchen-worker", "station": cfg.Station})
		err = kitchen.Run(ctx, cfg)
	case "notification-subscriber":
		lg.Info("service_started", map[string]any{"service": "notification-subscriber"})
		err = notify.Run(ctx, cfg)
	default:
		fmt.Fprintln(os.Stderr, "--mode must be one of: server | kitchen-worker | notification-subscriber")
		os.Exit(2)
	}
	if err != nil {
		lg.Error("fatal", err, nil)
		os.Exit(1)
	}
}
