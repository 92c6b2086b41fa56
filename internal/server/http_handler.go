// Copyright (c) 2026 The Traceforge Authors.
// SPDX-License-Identifier: Apache-2.0

// Package server exposes the ingestion and query coordinators over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/traceforge/traceforge/internal/ingester"
	"github.com/traceforge/traceforge/internal/otlp"
	"github.com/traceforge/traceforge/internal/querysvc"
)

const defaultAPIPrefix = "/api"

// structuredError is the envelope returned for request-level failures.
type structuredError struct {
	Code int    `json:"code,omitempty"`
	Msg  string `json:"msg"`
}

// APIHandler registers the telemetry routes and maps coordinator results and
// typed errors onto HTTP responses.
type APIHandler struct {
	ingester  *ingester.Ingester
	querySvc  *querysvc.QueryService
	apiPrefix string
	logger    *zap.Logger
}

// HandlerOption applies an optional setting to the APIHandler.
type HandlerOption func(*APIHandler)

// WithHandlerLogger sets the logger.
func WithHandlerLogger(logger *zap.Logger) HandlerOption {
	return func(aH *APIHandler) { aH.logger = logger }
}

// NewAPIHandler returns an APIHandler.
func NewAPIHandler(ing *ingester.Ingester, qs *querysvc.QueryService, options ...HandlerOption) *APIHandler {
	aH := &APIHandler{
		ingester:  ing,
		querySvc:  qs,
		apiPrefix: defaultAPIPrefix,
	}
	for _, option := range options {
		option(aH)
	}
	if aH.logger == nil {
		aH.logger = zap.NewNop()
	}
	return aH
}

// RegisterRoutes registers the telemetry routes on the given router.
func (aH *APIHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc(aH.apiPrefix+"/telemetry", aH.postTelemetry).Methods(http.MethodPost)
	router.HandleFunc(aH.apiPrefix+"/telemetry", aH.getTelemetry).Methods(http.MethodGet)
}

func (aH *APIHandler) postTelemetry(w http.ResponseWriter, r *http.Request) {
	var req otlp.ExportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		aH.writeError(w, http.StatusBadRequest, "cannot parse span batch: "+err.Error())
		return
	}
	result := aH.ingester.Ingest(r.Context(), &req)
	status := http.StatusOK
	if result.Status == ingester.StatusError {
		status = http.StatusInternalServerError
	}
	aH.writeJSON(w, status, result)
}

func (aH *APIHandler) getTelemetry(w http.ResponseWriter, r *http.Request) {
	raw, err := aH.parseTraceQuery(r)
	if err != nil {
		aH.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	spans, err := aH.querySvc.FindTraces(r.Context(), raw)
	if err != nil {
		aH.writeError(w, clientErrorStatus(err), err.Error())
		return
	}
	aH.writeJSON(w, http.StatusOK, spans)
}

// parseTraceQuery accepts the filter either as a JSON body or as URL query
// parameters.
func (aH *APIHandler) parseTraceQuery(r *http.Request) (*querysvc.RawTraceQuery, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}
	if len(body) > 0 {
		raw := &querysvc.RawTraceQuery{}
		if err := json.Unmarshal(body, raw); err != nil {
			return nil, err
		}
		return raw, nil
	}

	params := r.URL.Query()
	raw := &querysvc.RawTraceQuery{
		Name:      params.Get("name"),
		Scope:     params.Get("scope"),
		Attribute: params["attribute"],
		FromDate:  params.Get("fromDate"),
		ToDate:    params.Get("toDate"),
	}
	if raw.Page, err = parseFlexInt(params.Get("page")); err != nil {
		return nil, err
	}
	if raw.PerPage, err = parseFlexInt(params.Get("perPage")); err != nil {
		return nil, err
	}
	return raw, nil
}

func parseFlexInt(s string) (querysvc.FlexInt, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	return querysvc.FlexInt(n), nil
}

// clientErrorStatus maps the query service's typed errors onto HTTP status
// codes. Configuration and validation errors are the caller's to fix.
func clientErrorStatus(err error) int {
	switch {
	case errors.Is(err, querysvc.ErrTelemetryNotInitialized),
		errors.Is(err, querysvc.ErrMissingQuery),
		errors.Is(err, querysvc.ErrInvalidQuery):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (aH *APIHandler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		aH.logger.Error("failed to write response", zap.Error(err))
	}
}

func (aH *APIHandler) writeError(w http.ResponseWriter, status int, msg string) {
	aH.writeJSON(w, status, structuredError{Code: status, Msg: msg})
}
