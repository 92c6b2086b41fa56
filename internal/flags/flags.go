// Copyright (c) 2026 The Traceforge Authors.
// SPDX-License-Identifier: Apache-2.0

// Package flags defines the shared command line configuration.
package flags

import (
	"flag"

	"github.com/spf13/viper"

	"github.com/traceforge/traceforge/internal/sanitizer"
)

const (
	flagHTTPHostPort     = "http.host-port"
	flagNoiseScope       = "ingest.noise-scope"
	flagStorageType      = "storage.type"
	flagTelemetryEnabled = "telemetry.enabled"

	defaultHTTPHostPort = ":4318"
)

// Storage type values accepted by --storage.type.
const (
	StorageTypeMemory = "memory"
	StorageTypeBadger = "badger"
	// StorageTypeNone runs without a store: reads return empty results,
	// writes fail fast.
	StorageTypeNone = "none"
)

// Options holds the shared service configuration.
type Options struct {
	HTTPHostPort     string
	NoiseScope       string
	StorageType      string
	TelemetryEnabled bool
}

// AddFlags registers the shared flags.
func AddFlags(flagSet *flag.FlagSet) {
	flagSet.String(flagHTTPHostPort, defaultHTTPHostPort,
		"The host:port the HTTP server listens on.")
	flagSet.String(flagNoiseScope, sanitizer.DefaultNoiseScope,
		"Instrumentation scope whose spans are removed during ingestion, with their children promoted to roots.")
	flagSet.String(flagStorageType, StorageTypeBadger,
		"The span storage backend: memory, badger or none.")
	flagSet.Bool(flagTelemetryEnabled, true,
		"Whether the telemetry subsystem is initialized. Queries fail when disabled.")
}

// InitFromViper populates Options from viper.
func (o *Options) InitFromViper(v *viper.Viper) *Options {
	o.HTTPHostPort = v.GetString(flagHTTPHostPort)
	o.NoiseScope = v.GetString(flagNoiseScope)
	o.StorageType = v.GetString(flagStorageType)
	o.TelemetryEnabled = v.GetBool(flagTelemetryEnabled)
	return o
}
