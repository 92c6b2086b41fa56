// Copyright (c) 2026 The Traceforge Authors.
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"fmt"
	"net/http"

	"github.com/gorilla/handlers"
	"go.uber.org/zap"
)

// zapRecoveryWrapper adapts a zap logger to the gorilla RecoveryLogger
// interface.
type zapRecoveryWrapper struct {
	logger *zap.Logger
}

// Println logs a recovered panic.
func (z zapRecoveryWrapper) Println(args ...any) {
	z.logger.Error(fmt.Sprintln(args...))
}

// NewRecoveryHandler returns middleware that recovers from panics and logs
// them through zap.
func NewRecoveryHandler(logger *zap.Logger, printStack bool) func(h http.Handler) http.Handler {
	wrapper := zapRecoveryWrapper{logger}
	return handlers.RecoveryHandler(
		handlers.RecoveryLogger(wrapper),
		handlers.PrintRecoveryStack(printStack),
	)
}
