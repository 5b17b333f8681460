// Command strip-classify reads glucose test strip photos and prints one JSON
// result per file.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/ironsheep/strip-reader-mcp/internal/imaging"
	"github.com/ironsheep/strip-reader-mcp/internal/logger"
	"github.com/ironsheep/strip-reader-mcp/internal/report"
	"github.com/ironsheep/strip-reader-mcp/internal/strip"
)

type result struct {
	File string `json:"file"`
	report.Report
	Hex   string `json:"hex,omitempty"`
	Error string `json:"error,omitempty"`
}

func main() {
	calPath := flag.String("calibration", "", "Calibration profile JSON (default: glucose reference)")
	verbose := flag.Bool("v", false, "Log pipeline stages to stderr")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Println("Usage: strip-classify [-calibration profile.json] [-v] <image>...")
		os.Exit(1)
	}

	level := "warn"
	if *verbose {
		level = "debug"
	}
	log := logger.New(level, "console")

	cal := strip.GlucoseCalibration()
	if *calPath != "" {
		var err error
		cal, err = strip.LoadCalibration(*calPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load calibration: %v\n", err)
			os.Exit(1)
		}
	}
	analyzer, err := strip.NewAnalyzer(cal, strip.WithLogger(log))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	failed := 0
	for _, path := range flag.Args() {
		r := classifyFile(analyzer, path)
		if !r.OK {
			failed++
		}
		if err := enc.Encode(r); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write result: %v\n", err)
			os.Exit(1)
		}
	}

	if failed > 0 {
		os.Exit(2)
	}
}

func classifyFile(analyzer *strip.Analyzer, path string) result {
	f, err := os.Open(path)
	if err != nil {
		return result{File: path, Report: report.Failure(err), Error: err.Error()}
	}
	defer f.Close()

	img, _, err := imaging.Decode(f)
	if err != nil {
		return result{File: path, Report: report.Failure(err), Error: err.Error()}
	}

	res, err := analyzer.Analyze(img)
	if err != nil {
		r := result{File: path, Report: report.Failure(err), Error: err.Error()}
		if res != nil {
			r.Hex = res.Sample.Hex
		}
		return r
	}
	return result{File: path, Report: report.Build(res.Match), Hex: res.Sample.Hex}
}
