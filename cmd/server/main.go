package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/calyxlabs/calyx/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config load failed: ", err)
	}

	server, err := NewServer(cfg)
	if err != nil {
		log.Fatal("server init failed: ", err)
	}

	if err := server.Start(); err != nil {
		log.Fatal("server start failed: ", err)
	}

	server.infra.Logger.Info(
		"calyx running",
		"version", cfg.Version,
		"addr", cfg.Server.Addr(),
		"env", cfg.Env(),
	)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	if err := server.Shutdown(cfg.ShutdownTimeoutDuration()); err != nil {
		server.infra.Logger.Error("shutdown error", "error", err)
	}

	server.infra.Logger.Info("calyx stopped")
}
