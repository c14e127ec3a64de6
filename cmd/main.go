package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/arf3lix/songorder/internal/services"
	"github.com/arf3lix/songorder/internal/shared"
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

	timeout := time.Duration(config.Catalog.TimeoutSeconds) * time.Second
	httpClient := &http.Client{Timeout: timeout}

	stored, err := loadSession()
	if err != nil {
		logger.Debug("no stored session", "err", err)
	} else {
		httpClient = services.NewSessionClient(context.Background(), stored.Token, timeout)
	}

	catalog := services.NewCatalogService(config.Catalog.BaseURL, httpClient, config.Catalog.SearchRate, logger)
	orders := services.NewOrderService(config.Catalog.BaseURL, httpClient)
	auth := services.NewAuthService(config.Catalog.BaseURL, httpClient)

	runner := NewRunner(RunnerOpts{
		Config:     config,
		Catalog:    catalog,
		Orders:     orders,
		Auth:       auth,
		Stored:     stored,
		HTTPClient: httpClient,
		Logger:     logger,
	})

	app := &cli.Command{
		Name:     "songorder",
		Usage:    "Build and submit music orders from streaming catalog searches",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}
