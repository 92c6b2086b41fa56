// Copyright (c) 2026 The Traceforge Authors.
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"encoding/json"
	"time"
)

// SpanKind mirrors the OTLP span kind enumeration.
type SpanKind int32

const (
	SpanKindUnspecified SpanKind = iota
	SpanKindInternal
	SpanKindServer
	SpanKindClient
	SpanKindProducer
	SpanKindConsumer
)

// SpanRecord is the canonical storage representation of a single span.
// Records are created once at ingestion time and are immutable afterwards.
//
// ParentSpanID is empty for root spans. Status, Events, Links and Other are
// opaque blobs: their internal structure is preserved byte-for-byte across
// encode/decode, never reformatted.
type SpanRecord struct {
	ID           string          `json:"id"`
	TraceID      string          `json:"traceId"`
	ParentSpanID string          `json:"parentSpanId,omitempty"`
	Name         string          `json:"name"`
	Scope        string          `json:"scope,omitempty"`
	Kind         SpanKind        `json:"kind"`
	Attributes   map[string]any  `json:"attributes,omitempty"`
	Status       json.RawMessage `json:"status,omitempty"`
	Events       json.RawMessage `json:"events,omitempty"`
	Links        json.RawMessage `json:"links,omitempty"`
	Other        json.RawMessage `json:"other,omitempty"`

	// StartTime and EndTime are epoch microseconds. StartTime <= EndTime is
	// not enforced: malformed upstream data passes through unchanged.
	StartTime int64 `json:"startTime"`
	EndTime   int64 `json:"endTime"`

	// CreatedAt is the ingestion wall-clock timestamp, shared by every span
	// of one incoming batch.
	CreatedAt time.Time `json:"createdAt"`
}

// IsRoot reports whether the span has no parent.
func (s *SpanRecord) IsRoot() bool {
	return s.ParentSpanID == ""
}
