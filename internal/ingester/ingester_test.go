// Copyright (c) 2026 The Traceforge Authors.
// SPDX-License-Identifier: Apache-2.0

package ingester

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/traceforge/traceforge/internal/model"
	"github.com/traceforge/traceforge/internal/otlp"
)

type capturingWriter struct {
	batches [][]model.SpanRecord
	err     error
}

func (w *capturingWriter) BatchTraceInsert(_ context.Context, records []model.SpanRecord) error {
	if w.err != nil {
		return w.err
	}
	w.batches = append(w.batches, records)
	return nil
}

func decodeRequest(t *testing.T, data string) *otlp.ExportRequest {
	t.Helper()
	req := &otlp.ExportRequest{}
	require.NoError(t, json.Unmarshal([]byte(data), req))
	return req
}

func TestIngestStorageNotConfigured(t *testing.T) {
	ing := New(nil, WithLogger(zap.NewNop()))
	result := ing.Ingest(context.Background(), decodeRequest(t, `{
		"resourceSpans": [{"scopeSpans": [{"scope": {"name": "app"}, "spans": [{"spanId": "s1"}]}]}]
	}`))
	assert.Equal(t, StatusError, result.Status)
	assert.Equal(t, ErrStorageNotConfigured.Error(), result.Error)
	assert.Zero(t, result.TraceCount)
}

func TestIngestEmptyBatch(t *testing.T) {
	writer := &capturingWriter{}
	ing := New(writer)

	tests := []struct {
		name string
		body string
	}{
		{name: "no resource spans", body: `{"resourceSpans": []}`},
		{name: "no scope spans", body: `{"resourceSpans": [{"scopeSpans": []}]}`},
		{name: "scope without spans", body: `{"resourceSpans": [{"scopeSpans": [{"scope": {"name": "app"}}]}]}`},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := ing.Ingest(context.Background(), decodeRequest(t, test.body))
			assert.Equal(t, StatusSuccess, result.Status)
			assert.Equal(t, "no spans to process", result.Message)
			assert.Zero(t, result.TraceCount)
			assert.Empty(t, writer.batches, "storage must not be touched")
		})
	}
}

func TestIngestWritesOneBatch(t *testing.T) {
	writer := &capturingWriter{}
	createdAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	ing := New(writer, withTimeNow(func() time.Time { return createdAt }))

	result := ing.Ingest(context.Background(), decodeRequest(t, `{
		"resourceSpans": [{
			"scopeSpans": [
				{"scope": {"name": "@opentelemetry/instrumentation-http"}, "spans": [
					{"spanId": "h1", "traceId": "t1", "startTimeUnixNano": 1000000, "endTimeUnixNano": 2000000}
				]},
				{"scope": {"name": "app"}, "spans": [
					{"spanId": "a1", "traceId": "t1", "parentSpanId": "h1", "startTimeUnixNano": 1500999, "endTimeUnixNano": 1600000}
				]}
			]
		}]
	}`))

	assert.Equal(t, StatusSuccess, result.Status)
	assert.Equal(t, 1, result.TraceCount, "traceCount counts resourceSpans entries")
	require.Len(t, writer.batches, 1, "exactly one batched write")

	batch := writer.batches[0]
	require.Len(t, batch, 1, "noise span removed")
	assert.Equal(t, "a1", batch[0].ID)
	assert.Empty(t, batch[0].ParentSpanID, "child of removed noise span promoted to root")
	assert.Equal(t, int64(1500), batch[0].StartTime)
	assert.Equal(t, createdAt, batch[0].CreatedAt)
}

func TestIngestAllSpansFiltered(t *testing.T) {
	writer := &capturingWriter{}
	ing := New(writer)

	result := ing.Ingest(context.Background(), decodeRequest(t, `{
		"resourceSpans": [{"scopeSpans": [
			{"scope": {"name": "@opentelemetry/instrumentation-http"}, "spans": [{"spanId": "h1"}]}
		]}]
	}`))

	assert.Equal(t, StatusSuccess, result.Status)
	assert.Zero(t, result.TraceCount)
	assert.Empty(t, writer.batches)
}

func TestIngestWriteFailurePropagatedVerbatim(t *testing.T) {
	writer := &capturingWriter{err: errors.New("disk is full")}
	ing := New(writer)

	result := ing.Ingest(context.Background(), decodeRequest(t, `{
		"resourceSpans": [{"scopeSpans": [{"scope": {"name": "app"}, "spans": [{"spanId": "s1"}]}]}]
	}`))

	assert.Equal(t, StatusError, result.Status)
	assert.Equal(t, "disk is full", result.Error)
}

func TestIngestCustomNoiseScope(t *testing.T) {
	writer := &capturingWriter{}
	ing := New(writer, WithNoiseScope("custom-wrapper"))

	result := ing.Ingest(context.Background(), decodeRequest(t, `{
		"resourceSpans": [{"scopeSpans": [
			{"scope": {"name": "custom-wrapper"}, "spans": [{"spanId": "w1"}]},
			{"scope": {"name": "@opentelemetry/instrumentation-http"}, "spans": [{"spanId": "h1", "parentSpanId": "w1"}]}
		]}]
	}`))

	assert.Equal(t, StatusSuccess, result.Status)
	require.Len(t, writer.batches, 1)
	require.Len(t, writer.batches[0], 1)
	assert.Equal(t, "h1", writer.batches[0][0].ID)
	assert.Empty(t, writer.batches[0][0].ParentSpanID)
}
