package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"canvas-cropper/internal/batch"
	"canvas-cropper/internal/config"
	"canvas-cropper/internal/logging"
	"canvas-cropper/internal/raster"
	"canvas-cropper/internal/transform"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	jobsFile := flag.String("jobs", "", "Path to jobs.json (array of {source, width, height, ops, output})")
	inputDir := flag.String("input", "", "Directory relative job sources are resolved against")
	outputDir := flag.String("output", "", "Output directory (default: current directory)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	format := flag.String("format", "", "Export format: png or webp (default: png)")
	quality := flag.String("quality", "", "Resampling: bilinear or nearest")
	testN := flag.Int("test", 0, "Process only the first N jobs")
	logLevel := flag.String("log-level", "", "Log level (default: info)")

	flag.Parse()

	if *jobsFile == "" {
		fmt.Fprintln(os.Stderr, "Error: -jobs is required.")
		flag.Usage()
		os.Exit(2)
	}

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	if err := cfg.Resolve(config.Flags{
		OutputDir: *outputDir,
		Format:    *format,
		Workers:   *workers,
		LogLevel:  *logLevel,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logging.Setup(os.Stderr, cfg.Level())

	q, err := raster.ParseQuality(*quality)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	jobs, err := batch.LoadJobs(*jobsFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading jobs: %v\n", err)
		os.Exit(1)
	}

	// Limit for testing
	if *testN > 0 && *testN < len(jobs) {
		jobs = jobs[:*testN]
	}

	if len(jobs) == 0 {
		fmt.Println("No jobs to process.")
		os.Exit(0)
	}

	fmt.Printf("Canvas cropper batch -> %s\n", cfg.Format)
	fmt.Printf("Jobs: %d, Workers: %d\n", len(jobs), cfg.Workers)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()

	results := batch.Run(ctx, batch.Config{
		InputDir:  *inputDir,
		OutputDir: cfg.OutputDir,
		Format:    cfg.ExportFormat(),
		Engine: transform.Options{
			Device:     cfg.DeviceClass(),
			Resolution: cfg.Resolution(),
			MinScale:   cfg.MinScale,
			ZoomStep:   cfg.ZoomStep,
			Quality:    q,
		},
		Workers: cfg.Workers,
	}, jobs)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	var failed []batch.Result
	for _, r := range results {
		if !r.Success {
			failed = append(failed, r)
		}
	}

	fmt.Printf("Exported: %d/%d\n", len(results)-len(failed), len(jobs))

	if len(failed) > 0 {
		fmt.Printf("\nFailed (%d):\n", len(failed))
		limit := min(len(failed), 20)
		for _, r := range failed[:limit] {
			fmt.Printf("  %s: %s\n", r.Source, r.Error)
		}
	}

	// Write manifest
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := batch.WriteManifest(manifestPath, results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if len(failed) > 0 {
		os.Exit(1)
	}
}
