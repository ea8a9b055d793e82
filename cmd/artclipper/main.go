package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/Tera-Dark/ArtClipper-AI/internal/analyzer"
	"github.com/Tera-Dark/ArtClipper-AI/internal/config"
	"github.com/Tera-Dark/ArtClipper-AI/internal/imaging"
	"github.com/Tera-Dark/ArtClipper-AI/internal/manifest"
	"github.com/Tera-Dark/ArtClipper-AI/internal/orchestrator"
	"github.com/Tera-Dark/ArtClipper-AI/internal/source"
	"github.com/Tera-Dark/ArtClipper-AI/internal/system"
)

func main() {
	system.InitResourceLimits()

	configPtr := flag.String("config", "artclipper.yaml", "Path to YAML config file")
	inputPtr := flag.String("input", "", "Image file, image directory or PDF to slice")
	outputPtr := flag.String("output", "", "Manifest output path (default: slices.yaml)")
	modePtr := flag.String("mode", "", "Detection mode: local or external")
	colorPtr := flag.Int("color-threshold", 0, "Foreground color distance for component detection")
	gutterPtr := flag.Int("gutter-threshold", 0, "Gutter split sensitivity (1-100)")
	concurrencyPtr := flag.Int("concurrency", 0, "Concurrent detections per round (1-5, 0 = auto)")
	debugPtr := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	cfg, err := config.Load(*configPtr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config %s: %v\n", *configPtr, err)
		os.Exit(1)
	}
	applyFlags(cfg, *inputPtr, *outputPtr, *modePtr, *colorPtr, *gutterPtr, *concurrencyPtr, *debugPtr)
	_ = cfg.Validate()

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := newLogger(level)

	if cfg.InputPath == "" {
		fmt.Fprintln(os.Stderr, "no input: pass -input <file|dir|pdf>")
		os.Exit(1)
	}
	if cfg.Mode == "external" {
		// Transport toward a recognizer is wired by embedding applications
		// through normalizer.Recognizer; the CLI only ships the local path.
		fmt.Fprintln(os.Stderr, "external mode requires an embedding application to supply a recognizer")
		os.Exit(1)
	}

	src, err := openSource(cfg.InputPath)
	if err != nil {
		logger.Error("open input", "path", cfg.InputPath, "error", err)
		os.Exit(1)
	}
	defer src.Close()

	if err := run(cfg, logger, src); err != nil {
		logger.Error("run failed", "error", err)
		os.Exit(1)
	}
}

// applyFlags overlays explicitly set command-line flags onto the config.
func applyFlags(cfg *config.Config, input, output, mode string, color, gutter, concurrency int, debug bool) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "input":
			cfg.InputPath = input
		case "output":
			cfg.ManifestOutput = output
		case "mode":
			cfg.Mode = mode
		case "color-threshold":
			cfg.ColorThreshold = color
		case "gutter-threshold":
			cfg.GutterThreshold = gutter
		case "concurrency":
			cfg.Concurrency = concurrency
		case "debug":
			cfg.Debug = debug
		}
	})
}

func openSource(path string) (source.Source, error) {
	if strings.HasSuffix(strings.ToLower(path), ".pdf") {
		return source.NewPDFSource(path)
	}
	return source.NewImageSource(path)
}

// run queues every source item, drives the orchestrator to completion and
// writes the slice manifest.
func run(cfg *config.Config, logger *slog.Logger, src source.Source) error {
	count := src.ItemCount()
	if count == 0 {
		return fmt.Errorf("input contains no items")
	}
	logger.Info("batch prepared", "items", count, "mode", cfg.Mode)

	set := orchestrator.NewJobSet()
	jobByItem := make(map[string]int, count)
	for i := 0; i < count; i++ {
		job := orchestrator.NewJob(src.ItemName(i), i, orchestrator.ModeLocal, cfg.GutterThreshold)
		set.Add(job)
		jobByItem[job.ID] = i
	}

	var detector analyzer.Detector = &analyzer.SliceDetector{
		ColorThreshold:  cfg.ColorThreshold,
		GutterThreshold: cfg.GutterThreshold,
	}

	// dims are captured during detection for the manifest
	var dimsMu sync.Mutex
	dims := make(map[string][2]int, count)

	detect := func(ctx context.Context, job orchestrator.Job) ([]analyzer.Region, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		img, err := src.Load(jobByItem[job.ID])
		if err != nil {
			return nil, err
		}
		buf := imaging.FromImage(img)
		defer buf.Release()
		dimsMu.Lock()
		dims[job.ID] = [2]int{buf.W, buf.H}
		dimsMu.Unlock()
		return detector.Detect(buf)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	orch := orchestrator.New(logger)
	runHandle, err := orch.Start(ctx, set, cfg.Concurrency, detect)
	if err != nil {
		return err
	}

	items := make([]manifest.Item, count)
	for outcome := range runHandle.Outcomes() {
		idx := jobByItem[outcome.JobID]
		item := manifest.Item{Name: src.ItemName(idx)}
		dimsMu.Lock()
		if d, ok := dims[outcome.JobID]; ok {
			item.Width, item.Height = d[0], d[1]
		}
		dimsMu.Unlock()
		if outcome.Err != nil {
			item.Error = outcome.Err.Error()
		} else {
			item.Slices = outcome.Regions
		}
		items[idx] = item
		logger.Info("item finished", "item", item.Name, "status", outcome.Status, "slices", len(item.Slices))
	}

	// an interrupted run leaves zero-value entries for jobs no round reached
	final := items[:0]
	for _, item := range items {
		if item.Name != "" {
			final = append(final, item)
		}
	}

	m := &manifest.Manifest{Version: "1.0", Items: final}
	if err := manifest.Write(m, cfg.ManifestOutput); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	logger.Info("manifest written", "path", cfg.ManifestOutput)
	return nil
}
