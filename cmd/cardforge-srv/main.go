package main

import (
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/exp/slog"

	"github.com/cardhelper/cardforge/generator"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout))

	cfg := generator.DefaultConfig()
	if v := os.Getenv("HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := os.Getenv("DEFAULT_BIN"); v != "" {
		cfg.DefaultBIN = v
	}

	app := generator.NewApp(logger, cfg)
	if err := app.Start(); err != nil {
		logger.Error("starting app", "err", err)
		os.Exit(1)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	app.Shutdown()
}
