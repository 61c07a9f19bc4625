// Package services holds the application layer between transport and
// the derivation pipeline.
package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"rocklog/internal/geomech"
	"rocklog/internal/infrastructure"
	"rocklog/internal/ingest"
)

// ComputeRequest carries one log table through the pipeline. Overrides
// let the caller pin or correct the detected column mapping.
type ComputeRequest struct {
	Filename  string
	Reader    io.Reader
	Overrides geomech.ColumnMapping
}

// ComputeResult is the outcome of one derivation run.
type ComputeResult struct {
	ID          uuid.UUID
	Filename    string
	Mapping     geomech.ColumnMapping
	Samples     []geomech.DerivedSample
	RowsIn      int
	RowsDropped int
	Elapsed     time.Duration
}

// ComputeService decodes a log table, detects its columns, validates
// rows and runs the derivation.
type ComputeService struct {
	logger  *slog.Logger
	tracer  trace.Tracer
	metrics *infrastructure.PipelineMetrics
}

// NewComputeService creates a compute service. tracer and metrics may
// be nil; tracing then degrades to a no-op and metrics are skipped.
func NewComputeService(logger *slog.Logger, tracer trace.Tracer, metrics *infrastructure.PipelineMetrics) *ComputeService {
	if logger == nil {
		logger = slog.Default()
	}
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer(infrastructure.MeterName)
	}
	return &ComputeService{
		logger:  logger,
		tracer:  tracer,
		metrics: metrics,
	}
}

// Compute runs the full pipeline on one table: decode, map columns,
// prepare rows, derive.
func (s *ComputeService) Compute(ctx context.Context, req ComputeRequest) (*ComputeResult, error) {
	ctx, span := s.tracer.Start(ctx, "compute",
		trace.WithAttributes(attribute.String("filename", req.Filename)))
	defer span.End()

	start := time.Now()

	table, err := ingest.Decode(req.Reader, req.Filename)
	if err != nil {
		s.fail(ctx, req.Filename, start, 0, err)
		return nil, fmt.Errorf("decode %s: %w", req.Filename, err)
	}

	mapping := geomech.MapColumns(table.Headers)
	for field, header := range req.Overrides {
		mapping[field] = header
	}

	samples, err := geomech.PrepareSamples(table.Rows, mapping)
	if err != nil {
		s.fail(ctx, req.Filename, start, len(table.Rows), err)
		return nil, fmt.Errorf("prepare %s: %w", req.Filename, err)
	}

	derived := geomech.Derive(samples)
	elapsed := time.Since(start)

	result := &ComputeResult{
		ID:          uuid.New(),
		Filename:    req.Filename,
		Mapping:     mapping,
		Samples:     derived,
		RowsIn:      len(table.Rows),
		RowsDropped: len(table.Rows) - len(samples),
		Elapsed:     elapsed,
	}

	infrastructure.RecordComputation(ctx, s.metrics, req.Filename, elapsed, result.RowsIn, result.RowsDropped, true)
	s.logger.InfoContext(ctx, "derivation complete",
		slog.String("id", result.ID.String()),
		slog.String("filename", req.Filename),
		slog.Int("rows_in", result.RowsIn),
		slog.Int("rows_dropped", result.RowsDropped),
		slog.Int("samples", len(derived)),
		slog.Duration("elapsed", elapsed))

	return result, nil
}

// ComputeFile runs the pipeline on a file on disk.
func (s *ComputeService) ComputeFile(ctx context.Context, path string) (*ComputeResult, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	return s.Compute(ctx, ComputeRequest{
		Filename: filepath.Base(path),
		Reader:   file,
	})
}

func (s *ComputeService) fail(ctx context.Context, filename string, start time.Time, rowsIn int, err error) {
	infrastructure.RecordError(ctx, err)
	infrastructure.RecordComputation(ctx, s.metrics, filename, time.Since(start), rowsIn, 0, false)
	s.logger.ErrorContext(ctx, "derivation failed",
		slog.String("filename", filename),
		slog.String("error", err.Error()))
}
