// Copyright (c) 2026 The Traceforge Authors.
// SPDX-License-Identifier: Apache-2.0

// Package telemetry tracks whether the telemetry subsystem of the host
// application has been initialized.
package telemetry

import "sync/atomic"

// State is a concurrency-safe initialization flag consumed by the query
// path.
type State struct {
	initialized atomic.Bool
}

// NewState creates a State with the given initial value.
func NewState(initialized bool) *State {
	s := &State{}
	s.initialized.Store(initialized)
	return s
}

// SetInitialized updates the flag.
func (s *State) SetInitialized(v bool) {
	s.initialized.Store(v)
}

// IsInitialized reports whether telemetry has been initialized.
func (s *State) IsInitialized() bool {
	return s.initialized.Load()
}
