// Copyright (c) 2026 The Traceforge Authors.
// SPDX-License-Identifier: Apache-2.0

// Package healthcheck exposes the readiness of the process over HTTP.
package healthcheck

import (
	"net/http"
	"sync/atomic"

	"go.uber.org/zap"
)

// HealthCheck reports the current readiness state as an HTTP status code.
type HealthCheck struct {
	state  atomic.Int32
	logger *zap.Logger
}

// New creates a HealthCheck in the unavailable state.
func New(logger *zap.Logger) *HealthCheck {
	hc := &HealthCheck{logger: logger}
	hc.state.Store(http.StatusServiceUnavailable)
	return hc
}

// Ready moves the health check to the ready state.
func (hc *HealthCheck) Ready() {
	hc.Set(http.StatusNoContent)
}

// Set updates the status code returned by the handler.
func (hc *HealthCheck) Set(state int) {
	hc.state.Store(int32(state))
	hc.logger.Info("health check state change", zap.Int("http-status", state))
}

// Get returns the current status code.
func (hc *HealthCheck) Get() int {
	return int(hc.state.Load())
}

// Handler returns the HTTP handler serving the current state.
func (hc *HealthCheck) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		state := hc.Get()
		w.WriteHeader(state)
		if state >= http.StatusInternalServerError {
			w.Write([]byte("server not available"))
		}
	})
}
