// Package main is the entry point for the LearnOpenGL harness.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/learngl/internal/app"
	"github.com/Faultbox/learngl/internal/config"
	"github.com/Faultbox/learngl/internal/logger"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if config.SaveRequested() {
		path, err := cfg.Save()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Save config: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("config written to", path)
		return
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	log := logger.Named("main")
	log.Info("=== LearnOpenGL ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	a, err := app.New(cfg)
	if err != nil {
		log.Error("failed to start harness", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	defer a.Close()

	if err := a.Run(); err != nil {
		log.Error("frame loop error", zap.Error(err))
		a.Close()
		logger.Sync()
		os.Exit(1)
	}

	log.Info("harness closed normally")
}
