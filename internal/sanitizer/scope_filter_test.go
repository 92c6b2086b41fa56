// Copyright (c) 2026 The Traceforge Authors.
// SPDX-License-Identifier: Apache-2.0

package sanitizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/traceforge/traceforge/internal/otlp"
)

const httpScope = "@opentelemetry/instrumentation-http"

func scoped(scope, spanID, parentID string) otlp.ScopedSpan {
	return otlp.ScopedSpan{
		Scope: scope,
		Span:  otlp.Span{SpanID: spanID, ParentSpanID: parentID},
	}
}

func TestCollectScopeSpanIDs(t *testing.T) {
	spans := []otlp.ScopedSpan{
		scoped(httpScope, "h1", ""),
		scoped("app", "a1", "h1"),
		scoped(httpScope, "h2", "h1"),
	}
	removed := CollectScopeSpanIDs(spans, httpScope)
	assert.Equal(t, map[string]struct{}{"h1": {}, "h2": {}}, removed)
}

func TestRemoveScopeSpansPromotesChildren(t *testing.T) {
	spans := []otlp.ScopedSpan{
		scoped(httpScope, "h1", ""),
		scoped("app", "a1", "h1"),
		scoped("app", "a2", "h1"),
		scoped("app", "a3", "a1"),
	}
	out := Sanitize(spans, httpScope)

	require.Len(t, out, 3)
	for _, s := range out {
		assert.NotEqual(t, httpScope, s.Scope)
	}
	assert.Equal(t, "a1", out[0].Span.SpanID)
	assert.Empty(t, out[0].Span.ParentSpanID, "child of removed span becomes a root")
	assert.Empty(t, out[1].Span.ParentSpanID)
	assert.Equal(t, "a1", out[2].Span.ParentSpanID, "grandchild keeps its surviving parent")
}

func TestRemoveScopeSpansCollapsesMultiLevelChains(t *testing.T) {
	// noise -> noise -> real: the real span's parent is rewritten to root,
	// not to the intermediate removed id.
	spans := []otlp.ScopedSpan{
		scoped(httpScope, "h1", ""),
		scoped(httpScope, "h2", "h1"),
		scoped("app", "a1", "h2"),
	}
	out := Sanitize(spans, httpScope)

	require.Len(t, out, 1)
	assert.Equal(t, "a1", out[0].Span.SpanID)
	assert.Empty(t, out[0].Span.ParentSpanID)
}

func TestRemoveScopeSpansLeavesDanglingParentsAlone(t *testing.T) {
	// A parent that was never in the batch is not validated away.
	spans := []otlp.ScopedSpan{
		scoped("app", "a1", "not-in-batch"),
	}
	out := Sanitize(spans, httpScope)
	require.Len(t, out, 1)
	assert.Equal(t, "not-in-batch", out[0].Span.ParentSpanID)
}

func TestRemoveScopeSpansPreservesOrder(t *testing.T) {
	spans := []otlp.ScopedSpan{
		scoped("app", "a1", ""),
		scoped(httpScope, "h1", ""),
		scoped("db", "d1", ""),
		scoped("app", "a2", ""),
	}
	out := Sanitize(spans, httpScope)
	require.Len(t, out, 3)
	assert.Equal(t, "a1", out[0].Span.SpanID)
	assert.Equal(t, "d1", out[1].Span.SpanID)
	assert.Equal(t, "a2", out[2].Span.SpanID)
}

func TestSanitizeNoNoiseSpans(t *testing.T) {
	spans := []otlp.ScopedSpan{
		scoped("app", "a1", ""),
		scoped("app", "a2", "a1"),
	}
	out := Sanitize(spans, httpScope)
	assert.Equal(t, spans, out)
}
