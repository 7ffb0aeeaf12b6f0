// Package logger provides the structured zap logger used across the module.
//
// Engines, schema providers and query executors accept the Logger interface
// and fall back to NewNopLogger when none is given:
//
//	log := logger.NewLoggerClient(logger.Config{
//	    Level:         logger.Info,
//	    ServiceName:   "orders",
//	    EnableTracing: true,
//	})
//	pg, err := postgres.NewPostgres(cfg, postgres.WithLogger(log))
//
// With EnableTracing the *WithContext methods add trace_id and span_id of the
// active OpenTelemetry span, so statement logs line up with query spans.
//
// For fx applications, FXModule provides both *LoggerClient and Logger.
package logger
