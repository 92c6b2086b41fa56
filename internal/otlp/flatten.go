// Copyright (c) 2026 The Traceforge Authors.
// SPDX-License-Identifier: Apache-2.0

package otlp

// ScopedSpan pairs a raw span with the name of its instrumentation scope.
type ScopedSpan struct {
	Scope string
	Span  Span
}

// Flatten extracts an ordered flat list of (scope, span) pairs from a batch.
//
// Only the first resourceSpans entry is consumed. Upstream exporters send a
// single resource per batch; batches carrying more are not aggregated beyond
// the first entry. This is a deliberate, documented limitation carried over
// from the producing side of the contract, not an oversight.
func Flatten(req *ExportRequest) []ScopedSpan {
	if req == nil || len(req.ResourceSpans) == 0 {
		return nil
	}
	var out []ScopedSpan
	for _, ss := range req.ResourceSpans[0].ScopeSpans {
		for _, span := range ss.Spans {
			out = append(out, ScopedSpan{Scope: ss.Scope.Name, Span: span})
		}
	}
	return out
}
