package main

import (
	"fmt"
	"os"

	"github.com/ironsheep/strip-reader-mcp/internal/config"
	"github.com/ironsheep/strip-reader-mcp/internal/history"
	"github.com/ironsheep/strip-reader-mcp/internal/logger"
	"github.com/ironsheep/strip-reader-mcp/internal/server"
	"github.com/ironsheep/strip-reader-mcp/internal/strip"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("strip-reader-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("strip-reader-mcp - MCP server that reads urine glucose test strips")
			fmt.Println()
			fmt.Println("Usage: strip-reader-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  STRIP_MCP_LOG_LEVEL=debug           Log level (debug, info, warn, error)")
			fmt.Println("  STRIP_MCP_LOG_FORMAT=console        Human-readable logs instead of JSON")
			fmt.Println("  STRIP_MCP_CALIBRATION=<file.json>   Calibration profile (default: glucose reference)")
			fmt.Println("  STRIP_MCP_HISTORY_LIMIT=50          Results kept per requester (0 = unlimited)")
			fmt.Println("  STRIP_MCP_CACHE_SIZE=32             Decoded images kept in memory (0 = unlimited)")
			fmt.Println("  STRIP_MCP_LOCATOR=opencv            Strip locator (otsu, or opencv in -tags gocv builds)")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			return
		}
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	// Logs go to stderr; stdout is for MCP protocol
	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	log.Info("main", "starting", map[string]interface{}{
		"version": Version, "build_time": BuildTime, "commit": GitCommit,
	})

	cal := strip.GlucoseCalibration()
	if cfg.CalibrationPath != "" {
		cal, err = strip.LoadCalibration(cfg.CalibrationPath)
		if err != nil {
			log.Error("main", err, map[string]interface{}{"path": cfg.CalibrationPath})
			os.Exit(1)
		}
	}

	locator, err := newLocator(cfg.Locator)
	if err != nil {
		log.Error("main", err, map[string]interface{}{"locator": cfg.Locator})
		os.Exit(1)
	}

	analyzer, err := strip.NewAnalyzer(cal, strip.WithLocator(locator), strip.WithLogger(log))
	if err != nil {
		log.Error("main", err, nil)
		os.Exit(1)
	}
	if a, b, d, ok := cal.ClosestPair(); ok {
		log.Info("main", "calibration loaded", map[string]interface{}{
			"name": cal.Name, "templates": len(cal.Templates),
			"closest_pair": a + " / " + b, "closest_delta_e": d,
		})
	}

	srv, err := server.New(server.Options{
		Analyzer:  analyzer,
		History:   history.NewMemoryStore(cfg.HistoryLimit),
		Logger:    log,
		CacheSize: cfg.CacheSize,
		Version:   Version,
	})
	if err != nil {
		log.Error("main", err, nil)
		os.Exit(1)
	}
	if err := srv.Run(); err != nil {
		log.Error("main", err, nil)
		os.Exit(1)
	}
}
