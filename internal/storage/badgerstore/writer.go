// Copyright (c) 2026 The Traceforge Authors.
// SPDX-License-Identifier: Apache-2.0

package badgerstore

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/traceforge/traceforge/internal/model"
)

// BatchTraceInsert writes every record of the batch inside one transaction,
// so a failed batch leaves no partial data behind.
func (s *Store) BatchTraceInsert(_ context.Context, records []model.SpanRecord) error {
	var expiresAt uint64
	if s.opts.SpanStoreTTL > 0 {
		//nolint:gosec // G115
		expiresAt = uint64(time.Now().Add(s.opts.SpanStoreTTL).Unix())
	}
	return s.db.Update(func(txn *badger.Txn) error {
		for i := range records {
			key, value, err := createSpanKV(&records[i])
			if err != nil {
				return err
			}
			entry := &badger.Entry{Key: key, Value: value, ExpiresAt: expiresAt}
			if err := txn.SetEntry(entry); err != nil {
				return err
			}
		}
		return nil
	})
}

func createSpanKV(r *model.SpanRecord) ([]byte, []byte, error) {
	// KEY: spanKeyPrefix<startTime><traceId>\x00<spanId>
	// The \x00 separator prevents collisions between variable-length IDs.
	buf := new(bytes.Buffer)
	buf.WriteByte(spanKeyPrefix)
	//nolint:gosec // G115 epoch microseconds are non-negative
	binary.Write(buf, binary.BigEndian, uint64(r.StartTime))
	buf.WriteString(r.TraceID)
	buf.WriteByte(0)
	buf.WriteString(r.ID)

	value, err := json.Marshal(r)
	if err != nil {
		return nil, nil, err
	}
	return buf.Bytes(), value, nil
}
