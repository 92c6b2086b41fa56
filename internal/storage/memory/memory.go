// Copyright (c) 2026 The Traceforge Authors.
// SPDX-License-Identifier: Apache-2.0

// Package memory provides an unbounded in-memory span store, used for tests
// and ephemeral deployments.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/traceforge/traceforge/internal/model"
)

// Store is an unbounded in-memory store of span records.
type Store struct {
	sync.RWMutex
	traces map[string][]model.SpanRecord
}

// NewStore creates an in-memory store.
func NewStore() *Store {
	return &Store{
		traces: map[string][]model.SpanRecord{},
	}
}

// BatchTraceInsert appends all records of the batch under their trace IDs.
// The whole batch is inserted under one lock acquisition.
func (m *Store) BatchTraceInsert(_ context.Context, records []model.SpanRecord) error {
	m.Lock()
	defer m.Unlock()
	for _, r := range records {
		m.traces[r.TraceID] = append(m.traces[r.TraceID], r)
	}
	return nil
}

// GetTraces returns the page of spans matching the query, newest first.
func (m *Store) GetTraces(_ context.Context, query *model.TraceQueryFilter) ([]model.SpanRecord, error) {
	m.RLock()
	defer m.RUnlock()
	var matched []model.SpanRecord
	for _, spans := range m.traces {
		for i := range spans {
			if query.Match(&spans[i]) {
				matched = append(matched, spans[i])
			}
		}
	}
	// Map iteration order is random; sort for deterministic pages.
	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].StartTime != matched[j].StartTime {
			return matched[i].StartTime > matched[j].StartTime
		}
		if matched[i].TraceID != matched[j].TraceID {
			return matched[i].TraceID < matched[j].TraceID
		}
		return matched[i].ID < matched[j].ID
	})
	return paginate(matched, query), nil
}

func paginate(spans []model.SpanRecord, query *model.TraceQueryFilter) []model.SpanRecord {
	offset := query.Offset()
	if offset >= len(spans) {
		return []model.SpanRecord{}
	}
	end := offset + query.Limit()
	if end > len(spans) {
		end = len(spans)
	}
	return spans[offset:end]
}
