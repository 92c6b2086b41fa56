// Copyright (c) 2026 The Traceforge Authors.
// SPDX-License-Identifier: Apache-2.0

package badgerstore

import (
	"flag"
	"time"

	"github.com/spf13/viper"
)

const (
	flagEphemeral    = "badger.ephemeral"
	flagDirectory    = "badger.directory"
	flagSyncWrites   = "badger.consistency"
	flagSpanStoreTTL = "badger.span-store-ttl"

	defaultTTL = 72 * time.Hour
)

// Options holds the badger storage configuration.
type Options struct {
	// Ephemeral stores data in memory only; Directory is ignored.
	Ephemeral bool
	// Directory holds both keys and values when not ephemeral.
	Directory string
	// SyncWrites syncs every write to disk at the cost of write throughput.
	SyncWrites bool
	// SpanStoreTTL is how long span data remains readable. Zero disables
	// expiry.
	SpanStoreTTL time.Duration
}

// DefaultOptions returns the configuration used when no flags are set.
func DefaultOptions() *Options {
	return &Options{
		Ephemeral:    true,
		SpanStoreTTL: defaultTTL,
	}
}

// AddFlags registers badger flags.
func AddFlags(flagSet *flag.FlagSet) {
	defaults := DefaultOptions()
	flagSet.Bool(flagEphemeral, defaults.Ephemeral,
		"Mark this storage ephemeral, data is stored in memory only.")
	flagSet.String(flagDirectory, defaults.Directory,
		"Directory where the badger data files are stored.")
	flagSet.Bool(flagSyncWrites, defaults.SyncWrites,
		"Sync all writes to disk immediately. Affects write performance.")
	flagSet.Duration(flagSpanStoreTTL, defaults.SpanStoreTTL,
		"How long to keep span data. Format is time.Duration; 0 keeps data forever.")
}

// InitFromViper populates Options from viper.
func (o *Options) InitFromViper(v *viper.Viper) *Options {
	o.Ephemeral = v.GetBool(flagEphemeral)
	o.Directory = v.GetString(flagDirectory)
	o.SyncWrites = v.GetBool(flagSyncWrites)
	o.SpanStoreTTL = v.GetDuration(flagSpanStoreTTL)
	return o
}
