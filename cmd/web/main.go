package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"taskBoard/internal/app"
	"taskBoard/internal/config"
	"taskBoard/internal/logger"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	configPath := pflag.StringP("config", "c", "config.yml", "path to the YAML config file")
	dev := pflag.Bool("dev", false, "force development logging")
	pflag.Parse()

	cfg, err := config.Load(*configPath)
	usedDefaults := errors.Is(err, fs.ErrNotExist)
	if usedDefaults {
		def := config.Default()
		cfg, err = &def, config.ApplyEnv(&def)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if *dev {
		cfg.Logging.Development = true
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := app.New(cfg)
	if err := a.Init(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "init: %v\n", err)
		os.Exit(1)
	}
	if usedDefaults {
		logger.Warn("App: config file not found, using defaults", zap.String("path", *configPath))
	}

	if err := a.Run(ctx); err != nil {
		logger.Error("App: stopped with error", err)
		logger.Sync()
		os.Exit(1)
	}
}
