// Command sitejury assesses the quality of a website.
//
// Usage:
//
//	sitejury -url https://example.com                 # assess with defaults
//	sitejury -config sitejury.yaml -url https://...   # assess with config
//
// The JSON report is written to stdout; logs go to stderr.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/sitejury/sitejury/observability"
	"github.com/sitejury/sitejury/pipeline"
)

func main() {
	pageURL := flag.String("url", "", "URL of the page to assess (required)")
	outDir := flag.String("out", "", "directory for screenshots and the markdown snapshot")
	configPath := flag.String("config", "", "path to sitejury.yaml config file")
	historyDB := flag.String("history-db", "", "SQLite run history database (overrides config)")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	flag.Parse()

	var level slog.Level
	switch *logLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger, *pageURL, *outDir, *configPath, *historyDB); err != nil {
		logger.Error("sitejury: fatal", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, pageURL, outDir, configPath, historyDB string) error {
	if pageURL == "" {
		fmt.Fprintln(os.Stderr, "usage: sitejury -url <url> [-out <dir>] [-config <file>]")
		os.Exit(1)
	}

	cfg := pipeline.DefaultConfig()
	if configPath != "" {
		loaded, err := pipeline.LoadConfigFile(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	if historyDB != "" {
		cfg.HistoryDB = historyDB
	}

	var history *observability.Store
	if cfg.HistoryDB != "" {
		db, err := observability.Open(cfg.HistoryDB)
		if err != nil {
			return fmt.Errorf("open history db: %w", err)
		}
		defer db.Close()
		history = observability.NewStore(db, logger)
	}

	p := pipeline.New(cfg, logger, history)
	report, err := p.Assess(ctx, pageURL, outDir)
	if err != nil {
		return err
	}

	logger.Info("sitejury: assessment complete",
		"url", report.URL,
		"verdict", report.Consensus.FinalVerdict.String(),
		"weighted_score", report.Consensus.WeightedScore,
		"elapsed_ms", report.ElapsedMS)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
