// Copyright (c) 2026 The Traceforge Authors.
// SPDX-License-Identifier: Apache-2.0

// Package querysvc validates and forwards filtered, paginated trace queries
// to storage.
package querysvc

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/traceforge/traceforge/internal/model"
	"github.com/traceforge/traceforge/internal/storage/spanstore"
)

var (
	// ErrTelemetryNotInitialized is a client-level error: the telemetry
	// subsystem has not been set up at all.
	ErrTelemetryNotInitialized = errors.New("telemetry is not initialized")
	// ErrMissingQuery is a client-level error: no query was supplied.
	ErrMissingQuery = errors.New("trace query is missing")
	// ErrInvalidQuery wraps malformed query field errors.
	ErrInvalidQuery = errors.New("invalid trace query")
)

// TelemetryState reports whether the telemetry subsystem is initialized.
type TelemetryState interface {
	IsInitialized() bool
}

// QueryService handles trace queries. Reads are side-effect free and may run
// with unbounded concurrency.
type QueryService struct {
	reader spanstore.Reader
	state  TelemetryState
	parser queryParser
}

// QueryServiceOption applies an optional setting to the QueryService.
type QueryServiceOption func(*QueryService)

// WithLogger sets the logger used for tolerated query anomalies.
func WithLogger(logger *zap.Logger) QueryServiceOption {
	return func(qs *QueryService) { qs.parser.logger = logger }
}

// NewQueryService creates a QueryService. reader may be nil: absence of
// storage degrades reads to empty results instead of erroring, since no data
// is lost on the read path.
func NewQueryService(reader spanstore.Reader, state TelemetryState, options ...QueryServiceOption) *QueryService {
	qs := &QueryService{reader: reader, state: state}
	for _, opt := range options {
		opt(qs)
	}
	if qs.parser.logger == nil {
		qs.parser.logger = zap.NewNop()
	}
	return qs
}

// FindTraces coerces the raw query into a filter and delegates it to storage
// as-is. The result shape is not re-validated.
func (qs *QueryService) FindTraces(ctx context.Context, raw *RawTraceQuery) ([]model.SpanRecord, error) {
	if qs.state == nil || !qs.state.IsInitialized() {
		return nil, ErrTelemetryNotInitialized
	}
	if raw == nil {
		return nil, ErrMissingQuery
	}
	if qs.reader == nil {
		return []model.SpanRecord{}, nil
	}
	filter, err := qs.parser.parse(raw)
	if err != nil {
		return nil, err
	}
	return qs.reader.GetTraces(ctx, filter)
}
