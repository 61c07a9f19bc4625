// Command processor runs the derivation pipeline over every well-log
// table in a directory and writes CSV and XLSX reports.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"rocklog/internal/config"
	"rocklog/internal/exporter"
	"rocklog/internal/infrastructure"
	"rocklog/internal/ingest"
	"rocklog/internal/services"
	"rocklog/internal/validation"
)

func main() {
	inDir := flag.String("in", "", "input directory with .csv/.xlsx well logs (default from config)")
	outDir := flag.String("out", "", "output directory for derived reports (default from config)")
	configPath := flag.String("config", "", "optional YAML config file")
	format := flag.String("format", "both", "report format: csv, xlsx or both")
	workers := flag.Int("workers", 4, "number of files processed concurrently")
	flag.Parse()

	if err := run(*inDir, *outDir, *configPath, *format, *workers); err != nil {
		slog.Error("processing failed", "error", err)
		os.Exit(1)
	}
}

func run(inDir, outDir, configPath, format string, workers int) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	defer infrastructure.CloseLogFile()

	if inDir == "" {
		inDir = cfg.Paths.InputDir
	}
	if outDir == "" {
		outDir = cfg.Paths.ReportDir
	}

	writeCSV := format == "csv" || format == "both"
	writeXLSX := format == "xlsx" || format == "both"
	if !writeCSV && !writeXLSX {
		return fmt.Errorf("unknown format %q (want csv, xlsx or both)", format)
	}

	validator := validation.NewFileValidator(logger)
	if err := validator.ValidateInputDirectory(inDir); err != nil {
		return err
	}
	if err := validator.ValidateOutputDirectory(outDir); err != nil {
		return err
	}

	files, err := ingest.Discover(inDir)
	if err != nil {
		return fmt.Errorf("discover input files: %w", err)
	}
	if len(files) == 0 {
		logger.Warn("no well-log files found", slog.String("directory", inDir))
		return nil
	}

	logger.Info("processing well logs",
		slog.Int("files", len(files)),
		slog.String("in", inDir),
		slog.String("out", outDir))

	service := services.NewComputeService(logger, nil, nil)

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(workers)
	for _, path := range files {
		g.Go(func() error {
			return processFile(ctx, service, logger, path, outDir, writeCSV, writeXLSX)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("all files processed", slog.Int("files", len(files)))
	return nil
}

func processFile(ctx context.Context, service *services.ComputeService, logger *slog.Logger, path, outDir string, writeCSV, writeXLSX bool) error {
	result, err := service.ComputeFile(ctx, path)
	if err != nil {
		return fmt.Errorf("process %s: %w", path, err)
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if writeCSV {
		target := filepath.Join(outDir, base+"_derived.csv")
		if err := exporter.ExportCSV(target, result.Samples); err != nil {
			return fmt.Errorf("export %s: %w", target, err)
		}
	}
	if writeXLSX {
		target := filepath.Join(outDir, base+"_derived.xlsx")
		if err := exporter.ExportXLSX(target, result.Samples); err != nil {
			return fmt.Errorf("export %s: %w", target, err)
		}
	}

	logger.Info("file processed",
		slog.String("file", filepath.Base(path)),
		slog.Int("rows_in", result.RowsIn),
		slog.Int("rows_dropped", result.RowsDropped),
		slog.Int("samples", len(result.Samples)))
	return nil
}
