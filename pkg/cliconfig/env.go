package cliconfig

import (
	"os"
	"strconv"
)

// Environment variable names. The APP_NAME/EXPOSE_PORT/MODE/TARGET_* names
// match the compose files this service is deployed with, so the same
// environment drives every instance regardless of implementation.
const (
	EnvAppName          = "APP_NAME"
	EnvPort             = "EXPOSE_PORT"
	EnvMode             = "MODE"
	EnvOTLPGRPCEndpoint = "OTLP_GRPC_ENDPOINT"
	EnvOTLPHTTPEndpoint = "OTLP_HTTP_ENDPOINT"
	EnvTargetOneHost    = "TARGET_ONE_HOST"
	EnvTargetTwoHost    = "TARGET_TWO_HOST"
	EnvLogLevel         = "TRACEWIRE_LOG_LEVEL"
	EnvLogFormat        = "TRACEWIRE_LOG_FORMAT"
	EnvConfig           = "TRACEWIRE_CONFIG"
)

// LoadEnv overlays configuration from environment variables.
// It only sets values that are present in the environment.
func LoadEnv(cfg *Config) {
	if v := os.Getenv(EnvAppName); v != "" {
		cfg.AppName = v
		cfg.setSource("appName", SourceEnv)
	}

	if v := os.Getenv(EnvPort); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Port = port
			cfg.setSource("port", SourceEnv)
		}
	}

	if v := os.Getenv(EnvMode); v != "" {
		cfg.Mode = v
		cfg.setSource("mode", SourceEnv)
	}

	if v := os.Getenv(EnvOTLPGRPCEndpoint); v != "" {
		cfg.OTLPGRPCEndpoint = v
		cfg.setSource("otlpGrpcEndpoint", SourceEnv)
	}

	if v := os.Getenv(EnvOTLPHTTPEndpoint); v != "" {
		cfg.OTLPHTTPEndpoint = v
		cfg.setSource("otlpHttpEndpoint", SourceEnv)
	}

	if v := os.Getenv(EnvTargetOneHost); v != "" {
		cfg.TargetOneHost = v
		cfg.setSource("targetOneHost", SourceEnv)
	}

	if v := os.Getenv(EnvTargetTwoHost); v != "" {
		cfg.TargetTwoHost = v
		cfg.setSource("targetTwoHost", SourceEnv)
	}

	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
		cfg.setSource("logLevel", SourceEnv)
	}

	if v := os.Getenv(EnvLogFormat); v != "" {
		cfg.LogFormat = v
		cfg.setSource("logFormat", SourceEnv)
	}
}

// ConfigFileFromEnv returns the config file path from the environment,
// or empty string if not set.
func ConfigFileFromEnv() string {
	return os.Getenv(EnvConfig)
}
