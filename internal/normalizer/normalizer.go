// Copyright (c) 2026 The Traceforge Authors.
// SPDX-License-Identifier: Apache-2.0

// Package normalizer converts raw wire spans into storage records: time
// units to microseconds, tagged-union attributes to a flat map, structured
// sub-fields to opaque blobs.
package normalizer

import (
	"encoding/json"
	"time"

	"github.com/traceforge/traceforge/internal/model"
	"github.com/traceforge/traceforge/internal/otlp"
)

// Normalize produces one SpanRecord per surviving raw span. createdAt is
// stamped on every record so all spans of one batch share it.
func Normalize(spans []otlp.ScopedSpan, createdAt time.Time) []model.SpanRecord {
	records := make([]model.SpanRecord, 0, len(spans))
	for _, s := range spans {
		records = append(records, normalizeSpan(s, createdAt))
	}
	return records
}

func normalizeSpan(s otlp.ScopedSpan, createdAt time.Time) model.SpanRecord {
	span := s.Span
	return model.SpanRecord{
		ID:           span.SpanID,
		TraceID:      span.TraceID,
		ParentSpanID: span.ParentSpanID,
		Name:         span.Name,
		Scope:        s.Scope,
		Kind:         model.SpanKind(span.Kind),
		Attributes:   flattenAttributes(span.Attributes),
		Status:       span.Status,
		Events:       span.Events,
		Links:        span.Links,
		Other:        encodeLeftover(span.Other),
		// Integer division truncates; nanosecond epoch values stay well
		// within int64 range.
		StartTime: int64(span.StartTimeUnixNano) / 1000,
		EndTime:   int64(span.EndTimeUnixNano) / 1000,
		CreatedAt: createdAt,
	}
}

// flattenAttributes extracts the populated branch of each tagged-union
// entry. Entries with no populated branch are skipped. Duplicate keys in the
// source batch resolve last-write-wins.
func flattenAttributes(kvs []otlp.KeyValue) map[string]any {
	if len(kvs) == 0 {
		return nil
	}
	attrs := make(map[string]any, len(kvs))
	for _, kv := range kvs {
		v, ok := kv.Value.Scalar()
		if !ok {
			continue
		}
		attrs[kv.Key] = v
	}
	if len(attrs) == 0 {
		return nil
	}
	return attrs
}

// encodeLeftover serializes the unrecognized span fields into one blob. The
// values are raw JSON from a successful decode, so marshaling cannot fail.
func encodeLeftover(other map[string]json.RawMessage) json.RawMessage {
	if len(other) == 0 {
		return nil
	}
	b, _ := json.Marshal(other)
	return b
}
