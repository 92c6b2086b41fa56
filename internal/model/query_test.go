// Copyright (c) 2026 The Traceforge Authors.
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFilterLimitAndOffset(t *testing.T) {
	f := &TraceQueryFilter{}
	assert.Equal(t, DefaultPerPage, f.Limit())
	assert.Equal(t, 0, f.Offset())

	f = &TraceQueryFilter{Page: 2, PerPage: 25}
	assert.Equal(t, 25, f.Limit())
	assert.Equal(t, 50, f.Offset())
}

func TestFilterMatch(t *testing.T) {
	span := &SpanRecord{
		ID:        "s1",
		TraceID:   "t1",
		Name:      "GET /users/42",
		Scope:     "app",
		StartTime: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC).UnixMicro(),
		Attributes: map[string]any{
			"http.method": "GET",
			"retries":     int64(3),
			"sampled":     true,
		},
	}

	tests := []struct {
		name     string
		filter   TraceQueryFilter
		expected bool
	}{
		{name: "empty filter", filter: TraceQueryFilter{}, expected: true},
		{name: "name prefix", filter: TraceQueryFilter{Name: "GET /users"}, expected: true},
		{name: "name mismatch", filter: TraceQueryFilter{Name: "POST"}, expected: false},
		{name: "scope exact", filter: TraceQueryFilter{Scope: "app"}, expected: true},
		{name: "scope mismatch", filter: TraceQueryFilter{Scope: "db"}, expected: false},
		{name: "string attribute", filter: TraceQueryFilter{Attributes: map[string]string{"http.method": "GET"}}, expected: true},
		{name: "int attribute", filter: TraceQueryFilter{Attributes: map[string]string{"retries": "3"}}, expected: true},
		{name: "bool attribute", filter: TraceQueryFilter{Attributes: map[string]string{"sampled": "true"}}, expected: true},
		{name: "attribute mismatch", filter: TraceQueryFilter{Attributes: map[string]string{"http.method": "POST"}}, expected: false},
		{name: "missing attribute", filter: TraceQueryFilter{Attributes: map[string]string{"absent": ""}}, expected: false},
		{
			name: "conjunctive attributes",
			filter: TraceQueryFilter{Attributes: map[string]string{
				"http.method": "GET",
				"sampled":     "false",
			}},
			expected: false,
		},
		{
			name:     "from date inclusive",
			filter:   TraceQueryFilter{FromDate: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)},
			expected: true,
		},
		{
			name:     "from date after span",
			filter:   TraceQueryFilter{FromDate: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)},
			expected: false,
		},
		{
			name:     "to date inclusive",
			filter:   TraceQueryFilter{ToDate: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)},
			expected: true,
		},
		{
			name:     "to date before span",
			filter:   TraceQueryFilter{ToDate: time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)},
			expected: false,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, test.filter.Match(span))
		})
	}
}

func TestSpanRecordIsRoot(t *testing.T) {
	assert.True(t, (&SpanRecord{ID: "s1"}).IsRoot())
	assert.False(t, (&SpanRecord{ID: "s1", ParentSpanID: "p1"}).IsRoot())
}
