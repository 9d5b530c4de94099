package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/tablebook/tablebook/internal/buildinfo"
	"github.com/tablebook/tablebook/internal/client/cli"
	"github.com/tablebook/tablebook/internal/client/config"
	"github.com/tablebook/tablebook/internal/logging"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.NewJSON(os.Stderr, "tablebook", parseLevel(cfg.LogLevel))

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}
