package main

import (
	"context"
	"errors"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/uta/internal/services"
	"github.com/desertthunder/uta/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	if level, err := log.ParseLevel(config.Log.Level); err == nil {
		shared.SetLogLevel(logger, level)
	}

	backend := services.NewBackendClient(config.Backend.BaseURL, nil)
	catalog := services.NewITunesCatalog(config.Catalog, nil)

	runner := NewRunner(RunnerOpts{
		Config:  config,
		Backend: backend,
		Catalog: catalog,
		Logger:  logger,
	})
	defer runner.Close()

	app := &cli.Command{
		Name:     "uta",
		Usage:    "Manage a karaoke song repertoire",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, shared.ErrValidation) || errors.Is(err, shared.ErrAuth) {
			logger.Error(err)
			os.Exit(1)
		}
		logger.Fatalf("application error: %v", err)
	}
}
