// Copyright (c) 2026 The Traceforge Authors.
// SPDX-License-Identifier: Apache-2.0

// Package otlp models the OpenTelemetry JSON batch shape emitted by
// instrumentation exporters and flattens it for the ingestion pipeline.
//
// The wire structs are hand-rolled instead of using the collector's pdata
// types because unrecognized span fields must survive byte-for-byte into the
// stored record; pdata discards them on decode.
package otlp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ExportRequest is the top-level span batch: resourceSpans -> scopeSpans -> spans.
type ExportRequest struct {
	ResourceSpans []ResourceSpans `json:"resourceSpans"`
}

// ResourceSpans groups scope spans under one resource.
type ResourceSpans struct {
	Resource   json.RawMessage `json:"resource,omitempty"`
	ScopeSpans []ScopeSpans    `json:"scopeSpans,omitempty"`
	SchemaURL  string          `json:"schemaUrl,omitempty"`
}

// ScopeSpans groups spans produced by one instrumentation scope.
type ScopeSpans struct {
	Scope     Scope  `json:"scope"`
	Spans     []Span `json:"spans,omitempty"`
	SchemaURL string `json:"schemaUrl,omitempty"`
}

// Scope identifies an instrumentation scope.
type Scope struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
}

// Span is a single raw span as received on the wire. Fields the pipeline
// does not interpret are captured verbatim in Other.
type Span struct {
	TraceID           string
	SpanID            string
	ParentSpanID      string
	Name              string
	Kind              int32
	Attributes        []KeyValue
	Status            json.RawMessage
	Events            json.RawMessage
	Links             json.RawMessage
	StartTimeUnixNano Int64
	EndTimeUnixNano   Int64
	Other             map[string]json.RawMessage
}

// spanFields enumerates the keys the pipeline interprets; everything else
// lands in Other.
var spanFields = map[string]struct{}{
	"traceId":           {},
	"spanId":            {},
	"parentSpanId":      {},
	"name":              {},
	"kind":              {},
	"attributes":        {},
	"status":            {},
	"events":            {},
	"links":             {},
	"startTimeUnixNano": {},
	"endTimeUnixNano":   {},
}

// UnmarshalJSON decodes the known span fields and retains the remaining
// fields as raw JSON so they can round-trip through storage unchanged.
func (s *Span) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	known := struct {
		TraceID           string          `json:"traceId"`
		SpanID            string          `json:"spanId"`
		ParentSpanID      string          `json:"parentSpanId"`
		Name              string          `json:"name"`
		Kind              int32           `json:"kind"`
		Attributes        []KeyValue      `json:"attributes"`
		Status            json.RawMessage `json:"status"`
		Events            json.RawMessage `json:"events"`
		Links             json.RawMessage `json:"links"`
		StartTimeUnixNano Int64           `json:"startTimeUnixNano"`
		EndTimeUnixNano   Int64           `json:"endTimeUnixNano"`
	}{}
	if err := json.Unmarshal(data, &known); err != nil {
		return err
	}
	s.TraceID = known.TraceID
	s.SpanID = known.SpanID
	s.ParentSpanID = known.ParentSpanID
	s.Name = known.Name
	s.Kind = known.Kind
	s.Attributes = known.Attributes
	s.Status = known.Status
	s.Events = known.Events
	s.Links = known.Links
	s.StartTimeUnixNano = known.StartTimeUnixNano
	s.EndTimeUnixNano = known.EndTimeUnixNano

	for key := range spanFields {
		delete(fields, key)
	}
	if len(fields) > 0 {
		s.Other = fields
	}
	return nil
}

// KeyValue is one attribute entry.
type KeyValue struct {
	Key   string   `json:"key"`
	Value AnyValue `json:"value"`
}

// AnyValue is the OTLP tagged union for attribute values. At most one branch
// is populated per entry.
type AnyValue struct {
	StringValue *string         `json:"stringValue,omitempty"`
	BoolValue   *bool           `json:"boolValue,omitempty"`
	IntValue    *Int64          `json:"intValue,omitempty"`
	DoubleValue *float64        `json:"doubleValue,omitempty"`
	BytesValue  *string         `json:"bytesValue,omitempty"`
	ArrayValue  json.RawMessage `json:"arrayValue,omitempty"`
	KvlistValue json.RawMessage `json:"kvlistValue,omitempty"`
}

// Scalar extracts the populated branch of the union. Composite branches
// (arrays, kvlists) are returned as raw JSON. ok is false when no branch is
// set, in which case the entry is skipped by the normalizer.
func (v AnyValue) Scalar() (any, bool) {
	switch {
	case v.StringValue != nil:
		return *v.StringValue, true
	case v.BoolValue != nil:
		return *v.BoolValue, true
	case v.IntValue != nil:
		return int64(*v.IntValue), true
	case v.DoubleValue != nil:
		return *v.DoubleValue, true
	case v.BytesValue != nil:
		return *v.BytesValue, true
	case len(v.ArrayValue) > 0:
		return v.ArrayValue, true
	case len(v.KvlistValue) > 0:
		return v.KvlistValue, true
	default:
		return nil, false
	}
}

// Int64 decodes from either a JSON number or a quoted decimal string, the
// two encodings proto3 JSON produces for 64-bit integers.
type Int64 int64

func (n *Int64) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	s := string(data)
	if s == "" || s == "null" {
		*n = 0
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid 64-bit integer %q: %w", s, err)
	}
	*n = Int64(v)
	return nil
}

func (n Int64) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(int64(n), 10)), nil
}
