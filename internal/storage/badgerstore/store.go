// Copyright (c) 2026 The Traceforge Authors.
// SPDX-License-Identifier: Apache-2.0

// Package badgerstore implements the span storage contract on badger, an
// embedded sorted KV store.
package badgerstore

import (
	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"
)

/*
Key schema:

Span keys: spanKeyPrefix<startTime><traceId>\x00<spanId>
  - startTime is written big-endian so keys sort chronologically and a
    reverse iteration yields newest spans first.
  - Value: JSON-encoded SpanRecord.
*/

const spanKeyPrefix byte = 0x80

// Store is a badger-backed span store.
type Store struct {
	db     *badger.DB
	opts   *Options
	logger *zap.Logger
}

// NewStore opens the badger database described by opts.
func NewStore(opts *Options, logger *zap.Logger) (*Store, error) {
	badgerOpts := badger.DefaultOptions(opts.Directory).
		WithSyncWrites(opts.SyncWrites).
		WithLogger(nil)
	if opts.Ephemeral {
		badgerOpts = badgerOpts.WithInMemory(true)
		badgerOpts.Dir = ""
		badgerOpts.ValueDir = ""
	}
	db, err := badger.Open(badgerOpts)
	if err != nil {
		return nil, err
	}
	logger.Info("badger storage opened",
		zap.Bool("ephemeral", opts.Ephemeral),
		zap.String("directory", opts.Directory))
	return &Store{db: db, opts: opts, logger: logger}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
