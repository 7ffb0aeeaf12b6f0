package tracer

// Config defines the tracer provider settings.
type Config struct {
	// ServiceName is reported as the service.name resource attribute.
	ServiceName string `yaml:"service_name" mapstructure:"service_name" envconfig:"TRACER_SERVICE_NAME"`

	// AppEnv is reported as the deployment.environment resource attribute.
	AppEnv string `yaml:"app_env" mapstructure:"app_env" envconfig:"TRACER_APP_ENV"`

	// EnableExport sends spans to an OTLP HTTP collector configured through
	// the standard OTEL_EXPORTER_OTLP_* environment variables.
	EnableExport bool `yaml:"enable_export" mapstructure:"enable_export" envconfig:"TRACER_ENABLE_EXPORT"`
}
