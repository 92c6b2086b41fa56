// Copyright (c) 2026 The Traceforge Authors.
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/traceforge/traceforge/internal/healthcheck"
)

// Server hosts the telemetry API, the metrics endpoint and the health check.
type Server struct {
	logger     *zap.Logger
	httpServer *http.Server
}

// NewServer wires the API handler, health check and metrics registry into
// one HTTP server listening on hostPort.
func NewServer(
	hostPort string,
	apiHandler *APIHandler,
	hc *healthcheck.HealthCheck,
	registry *prometheus.Registry,
	logger *zap.Logger,
) *Server {
	router := mux.NewRouter()
	apiHandler.RegisterRoutes(router)
	router.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	router.Handle("/health", hc.Handler())

	var handler http.Handler = router
	handler = handlers.CompressHandler(handler)
	handler = NewRecoveryHandler(logger, true)(handler)

	return &Server{
		logger: logger,
		httpServer: &http.Server{
			Addr:              hostPort,
			Handler:           handler,
			ReadHeaderTimeout: 2 * time.Second,
		},
	}
}

// Start serves requests until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
