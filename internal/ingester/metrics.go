// Copyright (c) 2026 The Traceforge Authors.
// SPDX-License-Identifier: Apache-2.0

package ingester

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type ingestMetrics struct {
	batches       prometheus.Counter
	spans         prometheus.Counter
	writeFailures prometheus.Counter
}

// newIngestMetrics creates the ingestion counters. A nil registerer yields
// working but unregistered metrics, which keeps tests isolated.
func newIngestMetrics(reg prometheus.Registerer) *ingestMetrics {
	factory := promauto.With(reg)
	return &ingestMetrics{
		batches: factory.NewCounter(prometheus.CounterOpts{
			Name: "traceforge_ingest_batches_total",
			Help: "Number of span batches submitted for storage.",
		}),
		spans: factory.NewCounter(prometheus.CounterOpts{
			Name: "traceforge_ingest_spans_total",
			Help: "Number of spans submitted for storage after filtering.",
		}),
		writeFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "traceforge_ingest_write_failures_total",
			Help: "Number of failed batched storage writes.",
		}),
	}
}
