// Package observability provides structured logging, metrics, and tracing
// for typeconv registries and converters.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger adds conversion context to a logger.
// Returns a new logger with from, to, and argument fields.
// Converters use it to annotate invocation failures.
//
// Example:
//
//	enriched := EnrichLogger(logger, "string", "int", "")
//	enriched.Debug("resolving") // includes from, to, argument
func EnrichLogger(logger *slog.Logger, from, to, argument string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("from", from),
		slog.String("to", to),
		slog.String("argument", argument),
	)
}

// LogRegistered logs a successful converter registration.
func LogRegistered(logger *slog.Logger, registryID, signature string, count int) {
	if logger == nil {
		return
	}
	logger.Debug("converter registered",
		slog.String("registry_id", registryID),
		slog.String("signature", signature),
		slog.Int("count", count),
	)
}

// LogDuplicate logs a rejected duplicate registration.
func LogDuplicate(logger *slog.Logger, registryID, signature string) {
	if logger == nil {
		return
	}
	logger.Warn("duplicate converter rejected",
		slog.String("registry_id", registryID),
		slog.String("signature", signature),
	)
}

// LogReset logs a registry reset.
func LogReset(logger *slog.Logger, registryID string, seeded int) {
	if logger == nil {
		return
	}
	logger.Info("converter registry reset",
		slog.String("registry_id", registryID),
		slog.Int("seeded", seeded),
	)
}

// LogResolution logs the outcome of every resolution at debug level.
func LogResolution(logger *slog.Logger, from, to, outcome string, candidates int) {
	if logger == nil {
		return
	}
	logger.Debug("converter resolution",
		slog.String("from", from),
		slog.String("to", to),
		slog.String("outcome", outcome),
		slog.Int("candidates", candidates),
	)
}

// LogAmbiguous logs an ambiguity swallowed by a lenient operation.
func LogAmbiguous(logger *slog.Logger, from, to string, candidates int) {
	if logger == nil {
		return
	}
	logger.Warn("ambiguous converter, using default",
		slog.String("from", from),
		slog.String("to", to),
		slog.Int("candidates", candidates),
	)
}

// LogInvocationError logs a failure raised by a conversion function.
func LogInvocationError(logger *slog.Logger, signature string, err error) {
	if logger == nil {
		return
	}
	logger.Debug("converter failed",
		slog.String("signature", signature),
		slog.String("error", err.Error()),
	)
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time.
//
// Example:
//
//	done := TimedOperation()
//	// ... do work ...
//	elapsed := done()
func TimedOperation() func() time.Duration {
	start := time.Now()
	return func() time.Duration {
		return time.Since(start)
	}
}
