package cliconfig

// DefaultAppName is the default service name shown in traces.
const DefaultAppName = "app"

// DefaultPort is the default HTTP listen port.
const DefaultPort = 8000

// DefaultDownstreamPort is the fixed port the chain dials on downstream
// hosts (and on localhost for the self call).
const DefaultDownstreamPort = 8000

// DefaultOTLPGRPCEndpoint is the default collector OTLP gRPC endpoint.
const DefaultOTLPGRPCEndpoint = "jaeger-collector:4317"

// DefaultOTLPHTTPEndpoint is the default collector OTLP HTTP endpoint.
const DefaultOTLPHTTPEndpoint = "jaeger-collector:4318"

// DefaultTargetOneHost is the default first downstream host.
const DefaultTargetOneHost = "app-b"

// DefaultTargetTwoHost is the default second downstream host.
const DefaultTargetTwoHost = "app-c"

// NewDefault creates a Config with default values.
func NewDefault() *Config {
	cfg := &Config{
		AppName:          DefaultAppName,
		Port:             DefaultPort,
		Mode:             "otlp-grpc",
		OTLPGRPCEndpoint: DefaultOTLPGRPCEndpoint,
		OTLPHTTPEndpoint: DefaultOTLPHTTPEndpoint,
		TargetOneHost:    DefaultTargetOneHost,
		TargetTwoHost:    DefaultTargetTwoHost,
		LogLevel:         "info",
		LogFormat:        "text",
		Sources:          make(map[string]string),
	}
	for _, field := range []string{
		"appName", "port", "mode", "otlpGrpcEndpoint", "otlpHttpEndpoint",
		"targetOneHost", "targetTwoHost", "logLevel", "logFormat",
	} {
		cfg.Sources[field] = SourceDefault
	}
	return cfg
}
