// Copyright (c) 2026 The Traceforge Authors.
// SPDX-License-Identifier: Apache-2.0

package querysvc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/traceforge/traceforge/internal/model"
)

// RawTraceQuery is the loosely-typed query as it arrives from the caller.
// Numeric fields tolerate string encodings and Attribute tolerates a single
// string or a list.
type RawTraceQuery struct {
	Name      string        `json:"name,omitempty"`
	Scope     string        `json:"scope,omitempty"`
	Page      FlexInt       `json:"page,omitempty"`
	PerPage   FlexInt       `json:"perPage,omitempty"`
	Attribute StringOrSlice `json:"attribute,omitempty"`
	FromDate  string        `json:"fromDate,omitempty"`
	ToDate    string        `json:"toDate,omitempty"`
}

// FlexInt decodes from either a JSON number or a quoted decimal string.
type FlexInt int

func (n *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	s := string(data)
	if s == "" || s == "null" {
		*n = 0
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("%w: not an integer: %q", ErrInvalidQuery, s)
	}
	*n = FlexInt(v)
	return nil
}

// StringOrSlice decodes from either a single JSON string or a list of
// strings.
type StringOrSlice []string

func (s *StringOrSlice) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '[' {
		return json.Unmarshal(data, (*[]string)(s))
	}
	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	*s = StringOrSlice{single}
	return nil
}

// queryParser turns a raw query into a storage filter.
type queryParser struct {
	logger *zap.Logger
}

func (p queryParser) parse(raw *RawTraceQuery) (*model.TraceQueryFilter, error) {
	filter := &model.TraceQueryFilter{
		Name:    raw.Name,
		Scope:   raw.Scope,
		Page:    int(raw.Page),
		PerPage: int(raw.PerPage),
	}
	if filter.PerPage <= 0 {
		filter.PerPage = model.DefaultPerPage
	}
	if filter.Page < 0 {
		filter.Page = 0
	}

	if len(raw.Attribute) > 0 {
		filter.Attributes = p.parseAttributes(raw.Attribute)
	}

	var err error
	if filter.FromDate, err = parseDate(raw.FromDate, "fromDate"); err != nil {
		return nil, err
	}
	if filter.ToDate, err = parseDate(raw.ToDate, "toDate"); err != nil {
		return nil, err
	}
	return filter, nil
}

// parseAttributes splits each key:value entry on the first colon. Entries
// without a colon contribute a key with an empty value; that is tolerated,
// not fatal.
func (p queryParser) parseAttributes(entries []string) map[string]string {
	attrs := make(map[string]string, len(entries))
	for _, entry := range entries {
		key, value, found := strings.Cut(entry, ":")
		if !found {
			p.logger.Debug("attribute filter has no ':' separator, matching empty value",
				zap.String("attribute", entry))
		}
		attrs[key] = value
	}
	return attrs
}

// parseDate accepts RFC 3339 or integer unix milliseconds. An empty input
// means unbounded on that side.
func parseDate(s, field string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.UnixMilli(ms), nil
	}
	return time.Time{}, fmt.Errorf("%w: cannot parse %s %q", ErrInvalidQuery, field, s)
}
