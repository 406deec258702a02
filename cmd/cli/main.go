package main

import (
	"context"
	"os"

	"github.com/dmitrijs2005/nutritrack/internal/buildinfo"
	"github.com/dmitrijs2005/nutritrack/internal/client/cli"
	"github.com/dmitrijs2005/nutritrack/internal/client/config"
	"github.com/dmitrijs2005/nutritrack/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.New(cfg.LogLevel, os.Stderr)

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "failed to start", "err", err)
		os.Exit(1)
	}

	app.Run(ctx)

}
