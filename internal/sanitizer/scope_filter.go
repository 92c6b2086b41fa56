// Copyright (c) 2026 The Traceforge Authors.
// SPDX-License-Identifier: Apache-2.0

// Package sanitizer removes spans produced by noise instrumentation scopes
// while preserving trace continuity for their descendants.
package sanitizer

import "github.com/traceforge/traceforge/internal/otlp"

// DefaultNoiseScope is the generic HTTP instrumentation wrapper whose spans
// add structural depth without application-level meaning.
const DefaultNoiseScope = "@opentelemetry/instrumentation-http"

// CollectScopeSpanIDs returns the set of span IDs belonging to the given
// scope. This is the first pass of the two-pass filter.
func CollectScopeSpanIDs(spans []otlp.ScopedSpan, scope string) map[string]struct{} {
	removed := make(map[string]struct{})
	for _, s := range spans {
		if s.Scope == scope {
			removed[s.Span.SpanID] = struct{}{}
		}
	}
	return removed
}

// RemoveScopeSpans is the second pass: spans of the noise scope are dropped,
// and any surviving span whose parent is in the removed set becomes a new
// root. Because the set holds every noise-scope ID before promotion is
// evaluated, multi-level chains of noise spans collapse in a single pass.
//
// A parent reference pointing outside the batch is left untouched; partial
// batches are expected and not validated for graph completeness. Output
// order matches input order.
func RemoveScopeSpans(spans []otlp.ScopedSpan, scope string, removed map[string]struct{}) []otlp.ScopedSpan {
	out := make([]otlp.ScopedSpan, 0, len(spans))
	for _, s := range spans {
		if s.Scope == scope {
			continue
		}
		if _, ok := removed[s.Span.ParentSpanID]; ok {
			s.Span.ParentSpanID = ""
		}
		out = append(out, s)
	}
	return out
}

// Sanitize composes both passes.
func Sanitize(spans []otlp.ScopedSpan, scope string) []otlp.ScopedSpan {
	return RemoveScopeSpans(spans, scope, CollectScopeSpanIDs(spans, scope))
}
