package logger

import (
	"log"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoggerClient is a wrapper around Uber's Zap logger.
type LoggerClient struct {
	// Zap is the underlying logger, exposed for callers that need zap directly.
	Zap *zap.Logger

	tracingEnabled bool
}

// NewLoggerClient builds a JSON logger writing to stderr at the configured level.
//
// Parameters:
//   - cfg: Configuration for the logger, including level, service name and
//     whether trace IDs are attached by the *WithContext methods
//
// Returns:
//   - *LoggerClient: A configured logger ready for use
//
// The logger is configured with:
//   - JSON encoding
//   - ISO8601 timestamps under the "timestamp" key
//   - Capital letter levels ("INFO", "ERROR")
//   - Process ID and service name as default fields
//   - Caller information (file and line)
//
// If zap cannot build the logger, the function calls log.Fatal.
//
// Example:
//
//	log := logger.NewLoggerClient(logger.Config{Level: logger.Debug, ServiceName: "orders"})
//	log.Info("connected", nil, map[string]interface{}{"engine": "postgres"})
func NewLoggerClient(cfg Config) *LoggerClient {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	encoderCfg.EncodeDuration = zapcore.MillisDurationEncoder

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(parseLevel(cfg.Level)),
		Development:      false,
		Encoding:         "json",
		EncoderConfig:    encoderCfg,
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		InitialFields: map[string]interface{}{
			"pid":     os.Getpid(),
			"service": cfg.ServiceName,
		},
	}

	logger, err := config.Build(zap.AddCaller(), zap.AddCallerSkip(1))
	if err != nil {
		log.Fatal(err)
	}

	return &LoggerClient{Zap: logger, tracingEnabled: cfg.EnableTracing}
}

// NewNopLogger returns a LoggerClient that discards everything. Packages use it
// when no logger is configured.
func NewNopLogger() *LoggerClient {
	return &LoggerClient{Zap: zap.NewNop()}
}

// NewFromZap wraps an existing zap logger, e.g. zaptest's in tests.
func NewFromZap(z *zap.Logger, tracingEnabled bool) *LoggerClient {
	return &LoggerClient{Zap: z, tracingEnabled: tracingEnabled}
}

// With returns a child logger that adds fields to every entry.
func (l *LoggerClient) With(fields map[string]interface{}) *LoggerClient {
	return &LoggerClient{
		Zap:            l.Zap.With(convertFields(nil, fields)...),
		tracingEnabled: l.tracingEnabled,
	}
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case Debug:
		return zap.DebugLevel
	case Warning:
		return zap.WarnLevel
	case Error:
		return zap.ErrorLevel
	default:
		return zap.InfoLevel
	}
}
