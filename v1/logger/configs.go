package logger

const (
	Debug   = "debug"
	Info    = "info"
	Warning = "warning"
	Error   = "error"
)

// Config selects the log level and the service name stamped on every entry.
type Config struct {
	// Level is one of Debug, Info, Warning or Error. Anything else means Info.
	Level string `yaml:"level" mapstructure:"level" envconfig:"ZAP_LOGGER_LEVEL"`

	// ServiceName is added to every entry as the "service" field.
	ServiceName string `yaml:"service_name" mapstructure:"service_name" envconfig:"SERVICE_NAME"`

	// EnableTracing adds trace_id and span_id to entries logged with a context
	// that carries an OpenTelemetry span.
	EnableTracing bool `yaml:"enable_tracing" mapstructure:"enable_tracing" envconfig:"ZAP_LOGGER_ENABLE_TRACING"`
}
