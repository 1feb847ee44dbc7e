package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/soocke/pixel-sorter-go/app"
	"github.com/soocke/pixel-sorter-go/config"
	"github.com/soocke/pixel-sorter-go/debug"
)

func main() {
	cfgPath := flag.String("config", "", "path to config file (defaults to the XDG config dir)")
	debugFlag := flag.Bool("debug", false, "enable debug logging and runtime metrics")
	flag.Parse()

	path := *cfgPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		slog.Error("config load failed", "path", path, "error", err)
		os.Exit(1)
	}
	if *debugFlag {
		cfg.Debug = true
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := NewLogger(level)
	logger.Info("starting", "config", path)

	if cfg.Debug {
		debug.StartGoroutineLogger(5*time.Second, logger)
		debug.StartMemLogger(5*time.Second, logger)
	}

	application := app.NewApp("Pixel Sorter", cfg, logger)
	application.Start()
}
