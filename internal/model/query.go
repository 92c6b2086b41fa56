// Copyright (c) 2026 The Traceforge Authors.
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DefaultPerPage is the page size used when a query does not specify one.
const DefaultPerPage = 100

// TraceQueryFilter contains the parameters of a trace query. The zero value
// of a field means "no constraint" for that field.
type TraceQueryFilter struct {
	// Name matches span names by prefix.
	Name string
	// Scope matches the instrumentation scope name exactly.
	Scope string
	// Page is 0-based.
	Page    int
	PerPage int
	// Attributes are matched conjunctively against span attributes.
	Attributes map[string]string
	// FromDate and ToDate are inclusive bounds on span start time.
	FromDate time.Time
	ToDate   time.Time
}

// Limit returns the effective page size.
func (f *TraceQueryFilter) Limit() int {
	if f.PerPage > 0 {
		return f.PerPage
	}
	return DefaultPerPage
}

// Offset returns the number of matching spans to skip before the page starts.
func (f *TraceQueryFilter) Offset() int {
	if f.Page > 0 {
		return f.Page * f.Limit()
	}
	return 0
}

// Match reports whether the span satisfies every criterion of the filter.
func (f *TraceQueryFilter) Match(span *SpanRecord) bool {
	if f.Name != "" && !strings.HasPrefix(span.Name, f.Name) {
		return false
	}
	if f.Scope != "" && span.Scope != f.Scope {
		return false
	}
	if !f.FromDate.IsZero() && span.StartTime < f.FromDate.UnixMicro() {
		return false
	}
	if !f.ToDate.IsZero() && span.StartTime > f.ToDate.UnixMicro() {
		return false
	}
	for key, want := range f.Attributes {
		got, ok := span.Attributes[key]
		if !ok || !attributeEquals(got, want) {
			return false
		}
	}
	return true
}

// attributeEquals compares a stored attribute against its string form from
// the query. Numeric attributes decoded from storage arrive as float64.
func attributeEquals(got any, want string) bool {
	switch v := got.(type) {
	case string:
		return v == want
	case bool:
		return strconv.FormatBool(v) == want
	case int64:
		return strconv.FormatInt(v, 10) == want
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64) == want
	case json.RawMessage:
		return string(v) == want
	default:
		return fmt.Sprint(got) == want
	}
}
