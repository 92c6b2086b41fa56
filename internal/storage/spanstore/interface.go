// Copyright (c) 2026 The Traceforge Authors.
// SPDX-License-Identifier: Apache-2.0

// Package spanstore defines the storage contract consumed by the ingestion
// and query coordinators.
package spanstore

import (
	"context"

	"github.com/traceforge/traceforge/internal/model"
)

// Writer persists normalized span records.
type Writer interface {
	// BatchTraceInsert writes all records of one batch as a single unit.
	// Implementations must be atomic-or-nothing: a failed batch leaves no
	// partial data behind.
	BatchTraceInsert(ctx context.Context, records []model.SpanRecord) error
}

// Reader finds span records matching a trace query.
type Reader interface {
	// GetTraces returns the page of spans selected by the query, newest
	// first by start time.
	GetTraces(ctx context.Context, query *model.TraceQueryFilter) ([]model.SpanRecord, error)
}
