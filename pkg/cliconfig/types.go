// Package cliconfig provides configuration types and loading for tracewire.
package cliconfig

import (
	"fmt"

	"github.com/tracewire/tracewire/pkg/tracing"
)

// Config represents the complete configuration for a tracewire instance.
// Values can come from multiple sources with the following precedence:
//  1. Command-line flags (highest priority)
//  2. Environment variables
//  3. Config file (YAML, via --config or TRACEWIRE_CONFIG)
//  4. Default values (lowest priority)
type Config struct {
	// AppName is the service name shown in traces (APP_NAME).
	AppName string `yaml:"appName" json:"appName"`

	// Port is the HTTP listen port (EXPOSE_PORT).
	Port int `yaml:"port" json:"port"`

	// Mode selects the trace exporter transport (MODE).
	Mode string `yaml:"mode" json:"mode"`

	// OTLPGRPCEndpoint is the collector OTLP gRPC endpoint, host:port.
	OTLPGRPCEndpoint string `yaml:"otlpGrpcEndpoint" json:"otlpGrpcEndpoint"`

	// OTLPHTTPEndpoint is the collector OTLP HTTP endpoint, host:port.
	OTLPHTTPEndpoint string `yaml:"otlpHttpEndpoint" json:"otlpHttpEndpoint"`

	// TargetOneHost is the downstream host whose /io_task the chain calls.
	TargetOneHost string `yaml:"targetOneHost" json:"targetOneHost"`

	// TargetTwoHost is the downstream host whose /cpu_task the chain calls.
	TargetTwoHost string `yaml:"targetTwoHost" json:"targetTwoHost"`

	// Logging settings.
	LogLevel  string `yaml:"logLevel" json:"logLevel"`
	LogFormat string `yaml:"logFormat" json:"logFormat"`

	// ConfigFile is the YAML file the values were loaded from, if any.
	ConfigFile string `yaml:"-" json:"configFile,omitempty"`

	// Sources tracks where each value came from (for `tracewire config`).
	Sources map[string]string `yaml:"-" json:"-"`
}

// Config value origins.
const (
	SourceDefault = "default"
	SourceFile    = "file"
	SourceEnv     = "env"
	SourceFlag    = "flag"
)

// Validate checks the configuration for out-of-range or inconsistent values.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d is out of range (1-65535)", c.Port)
	}
	if c.AppName == "" {
		return fmt.Errorf("app name must not be empty")
	}
	if _, err := tracing.ParseMode(c.Mode); err != nil {
		return err
	}
	if c.TargetOneHost == "" || c.TargetTwoHost == "" {
		return fmt.Errorf("target hosts must not be empty")
	}
	return nil
}

// setSource records the origin of a config field.
func (c *Config) setSource(field, source string) {
	if c.Sources == nil {
		c.Sources = make(map[string]string)
	}
	c.Sources[field] = source
}
