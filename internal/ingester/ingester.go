// Copyright (c) 2026 The Traceforge Authors.
// SPDX-License-Identifier: Apache-2.0

// Package ingester orchestrates the span ingestion pipeline:
// parse -> filter -> normalize -> batch write.
package ingester

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/traceforge/traceforge/internal/normalizer"
	"github.com/traceforge/traceforge/internal/otlp"
	"github.com/traceforge/traceforge/internal/sanitizer"
	"github.com/traceforge/traceforge/internal/storage/spanstore"
)

// ErrStorageNotConfigured is returned when a batch arrives but no writer is
// wired, signaled distinctly from other failures because the data would be
// silently lost.
var ErrStorageNotConfigured = errors.New("storage is not configured")

// Result statuses.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Result is the outcome envelope handed back to the transport layer.
type Result struct {
	Status     string `json:"status"`
	Message    string `json:"message"`
	TraceCount int    `json:"traceCount"`
	Error      string `json:"error,omitempty"`
}

// Ingester processes incoming span batches. Each batch is handled within a
// single invocation with no shared scratch state, so concurrent batches need
// no coordination.
type Ingester struct {
	writer     spanstore.Writer
	noiseScope string
	logger     *zap.Logger
	metrics    *ingestMetrics
	timeNow    func() time.Time
}

// Option applies an optional setting to the Ingester.
type Option func(*Ingester)

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(i *Ingester) { i.logger = logger }
}

// WithNoiseScope overrides the instrumentation scope whose spans are removed.
func WithNoiseScope(scope string) Option {
	return func(i *Ingester) { i.noiseScope = scope }
}

// WithMetrics registers ingestion counters on the given registerer.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(i *Ingester) { i.metrics = newIngestMetrics(reg) }
}

func withTimeNow(f func() time.Time) Option {
	return func(i *Ingester) { i.timeNow = f }
}

// New creates an Ingester writing to the given store. writer may be nil, in
// which case every non-empty batch fails with ErrStorageNotConfigured.
func New(writer spanstore.Writer, options ...Option) *Ingester {
	i := &Ingester{
		writer:     writer,
		noiseScope: sanitizer.DefaultNoiseScope,
		timeNow:    time.Now,
	}
	for _, opt := range options {
		opt(i)
	}
	if i.logger == nil {
		i.logger = zap.NewNop()
	}
	if i.metrics == nil {
		i.metrics = newIngestMetrics(nil)
	}
	return i
}

// Ingest runs one batch through the pipeline and performs at most one
// batched write. All failures are converted to an error Result here; nothing
// escapes this boundary. The write is not retried, and the underlying
// failure message is surfaced verbatim.
func (i *Ingester) Ingest(ctx context.Context, req *otlp.ExportRequest) Result {
	if i.writer == nil {
		return Result{
			Status:  StatusError,
			Message: "traces not persisted, storage is not configured",
			Error:   ErrStorageNotConfigured.Error(),
		}
	}

	spans := otlp.Flatten(req)
	spans = sanitizer.Sanitize(spans, i.noiseScope)
	if len(spans) == 0 {
		return Result{Status: StatusSuccess, Message: "no spans to process", TraceCount: 0}
	}

	createdAt := i.timeNow()
	records := normalizer.Normalize(spans, createdAt)

	i.logger.Debug("saving span batch",
		zap.Int("spanCount", len(records)),
		zap.Time("timestamp", createdAt))
	i.metrics.batches.Inc()
	i.metrics.spans.Add(float64(len(records)))

	if err := i.writer.BatchTraceInsert(ctx, records); err != nil {
		i.metrics.writeFailures.Inc()
		return Result{
			Status:  StatusError,
			Message: "failed to persist spans",
			Error:   err.Error(),
		}
	}

	// The external contract counts resourceSpans entries, not spans.
	return Result{
		Status:     StatusSuccess,
		Message:    "traces received",
		TraceCount: len(req.ResourceSpans),
	}
}
