// Copyright (c) 2026 The Traceforge Authors.
// SPDX-License-Identifier: Apache-2.0

package badgerstore

import (
	"context"
	"encoding/json"

	"github.com/dgraph-io/badger/v4"

	"github.com/traceforge/traceforge/internal/model"
)

// GetTraces scans span keys newest-first, applies the filter and returns the
// requested page.
func (s *Store) GetTraces(_ context.Context, query *model.TraceQueryFilter) ([]model.SpanRecord, error) {
	offset := query.Offset()
	limit := query.Limit()
	matched := make([]model.SpanRecord, 0, limit)
	skipped := 0

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		it := txn.NewIterator(opts)
		defer it.Close()

		// Big-endian start times make lexicographic key order chronological;
		// a reverse scan from just past the prefix yields newest spans first.
		for it.Seek([]byte{spanKeyPrefix + 1}); it.Valid(); it.Next() {
			key := it.Item().Key()
			if len(key) == 0 || key[0] != spanKeyPrefix {
				break
			}
			var rec model.SpanRecord
			err := it.Item().Value(func(v []byte) error {
				return json.Unmarshal(v, &rec)
			})
			if err != nil {
				return err
			}
			if !query.Match(&rec) {
				continue
			}
			if skipped < offset {
				skipped++
				continue
			}
			matched = append(matched, rec)
			if len(matched) >= limit {
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return matched, nil
}
