// Copyright (c) 2026 The Traceforge Authors.
// SPDX-License-Identifier: Apache-2.0

// Command traceforge runs the span ingestion and trace query service.
package main

import (
	"context"
	goflag "flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/traceforge/traceforge/internal/flags"
	"github.com/traceforge/traceforge/internal/healthcheck"
	"github.com/traceforge/traceforge/internal/ingester"
	"github.com/traceforge/traceforge/internal/querysvc"
	"github.com/traceforge/traceforge/internal/server"
	"github.com/traceforge/traceforge/internal/storage/badgerstore"
	"github.com/traceforge/traceforge/internal/storage/memory"
	"github.com/traceforge/traceforge/internal/storage/spanstore"
	"github.com/traceforge/traceforge/internal/telemetry"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	v := viper.New()
	command := &cobra.Command{
		Use:   "traceforge",
		Short: "Traceforge ingests span batches and serves trace queries",
		Long:  `Traceforge ingests OpenTelemetry-style span batches, strips noise instrumentation spans, and serves filtered, paginated trace queries.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return run(v, logger)
		},
	}

	flagSet := new(goflag.FlagSet)
	flags.AddFlags(flagSet)
	badgerstore.AddFlags(flagSet)
	command.Flags().AddGoFlagSet(flagSet)

	v.BindPFlags(command.Flags())
	v.SetEnvPrefix("traceforge")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if err := command.Execute(); err != nil {
		logger.Fatal("service exited", zap.Error(err))
	}
}

func run(v *viper.Viper, logger *zap.Logger) error {
	opts := new(flags.Options).InitFromViper(v)

	writer, reader, closer, err := buildStorage(opts, v, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	if closer != nil {
		defer closer.Close()
	}

	state := telemetry.NewState(opts.TelemetryEnabled)
	registry := prometheus.NewRegistry()

	ing := ingester.New(writer,
		ingester.WithLogger(logger),
		ingester.WithNoiseScope(opts.NoiseScope),
		ingester.WithMetrics(registry),
	)
	qs := querysvc.NewQueryService(reader, state, querysvc.WithLogger(logger))
	apiHandler := server.NewAPIHandler(ing, qs, server.WithHandlerLogger(logger))

	hc := healthcheck.New(logger)
	srv := server.NewServer(opts.HTTPHostPort, apiHandler, hc, registry, logger)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start()
	}()
	hc.Ready()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return err
	case sig := <-signals:
		logger.Info("shutting down", zap.Stringer("signal", sig))
	}

	hc.Set(http.StatusServiceUnavailable)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

func buildStorage(opts *flags.Options, v *viper.Viper, logger *zap.Logger) (spanstore.Writer, spanstore.Reader, io.Closer, error) {
	switch opts.StorageType {
	case flags.StorageTypeMemory:
		st := memory.NewStore()
		return st, st, nil, nil
	case flags.StorageTypeBadger:
		badgerOpts := badgerstore.DefaultOptions().InitFromViper(v)
		st, err := badgerstore.NewStore(badgerOpts, logger)
		if err != nil {
			return nil, nil, nil, err
		}
		return st, st, st, nil
	case flags.StorageTypeNone:
		return nil, nil, nil, nil
	default:
		return nil, nil, nil, fmt.Errorf("unknown storage type %q", opts.StorageType)
	}
}
