package cliconfig

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors Config with pointer fields so a YAML file only
// overrides the keys it actually sets.
type fileConfig struct {
	AppName          *string `yaml:"appName"`
	Port             *int    `yaml:"port"`
	Mode             *string `yaml:"mode"`
	OTLPGRPCEndpoint *string `yaml:"otlpGrpcEndpoint"`
	OTLPHTTPEndpoint *string `yaml:"otlpHttpEndpoint"`
	TargetOneHost    *string `yaml:"targetOneHost"`
	TargetTwoHost    *string `yaml:"targetTwoHost"`
	LogLevel         *string `yaml:"logLevel"`
	LogFormat        *string `yaml:"logFormat"`
}

// LoadFile overlays configuration from a YAML file onto cfg.
func LoadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if fc.AppName != nil {
		cfg.AppName = *fc.AppName
		cfg.setSource("appName", SourceFile)
	}
	if fc.Port != nil {
		cfg.Port = *fc.Port
		cfg.setSource("port", SourceFile)
	}
	if fc.Mode != nil {
		cfg.Mode = *fc.Mode
		cfg.setSource("mode", SourceFile)
	}
	if fc.OTLPGRPCEndpoint != nil {
		cfg.OTLPGRPCEndpoint = *fc.OTLPGRPCEndpoint
		cfg.setSource("otlpGrpcEndpoint", SourceFile)
	}
	if fc.OTLPHTTPEndpoint != nil {
		cfg.OTLPHTTPEndpoint = *fc.OTLPHTTPEndpoint
		cfg.setSource("otlpHttpEndpoint", SourceFile)
	}
	if fc.TargetOneHost != nil {
		cfg.TargetOneHost = *fc.TargetOneHost
		cfg.setSource("targetOneHost", SourceFile)
	}
	if fc.TargetTwoHost != nil {
		cfg.TargetTwoHost = *fc.TargetTwoHost
		cfg.setSource("targetTwoHost", SourceFile)
	}
	if fc.LogLevel != nil {
		cfg.LogLevel = *fc.LogLevel
		cfg.setSource("logLevel", SourceFile)
	}
	if fc.LogFormat != nil {
		cfg.LogFormat = *fc.LogFormat
		cfg.setSource("logFormat", SourceFile)
	}

	cfg.ConfigFile = path
	return nil
}

// Overrides carries flag values; nil fields were not set on the command line.
type Overrides struct {
	AppName          *string
	Port             *int
	Mode             *string
	OTLPGRPCEndpoint *string
	OTLPHTTPEndpoint *string
	TargetOneHost    *string
	TargetTwoHost    *string
	LogLevel         *string
	LogFormat        *string
	ConfigFile       *string
}

// Resolve builds the effective configuration:
// defaults, then config file, then environment, then flags. The result is
// validated before being returned.
func Resolve(flags Overrides) (*Config, error) {
	cfg := NewDefault()

	path := ConfigFileFromEnv()
	if flags.ConfigFile != nil && *flags.ConfigFile != "" {
		path = *flags.ConfigFile
	}
	if path != "" {
		if err := LoadFile(cfg, path); err != nil {
			return nil, err
		}
	}

	LoadEnv(cfg)
	applyOverrides(cfg, flags)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyOverrides(cfg *Config, flags Overrides) {
	if flags.AppName != nil {
		cfg.AppName = *flags.AppName
		cfg.setSource("appName", SourceFlag)
	}
	if flags.Port != nil {
		cfg.Port = *flags.Port
		cfg.setSource("port", SourceFlag)
	}
	if flags.Mode != nil {
		cfg.Mode = *flags.Mode
		cfg.setSource("mode", SourceFlag)
	}
	if flags.OTLPGRPCEndpoint != nil {
		cfg.OTLPGRPCEndpoint = *flags.OTLPGRPCEndpoint
		cfg.setSource("otlpGrpcEndpoint", SourceFlag)
	}
	if flags.OTLPHTTPEndpoint != nil {
		cfg.OTLPHTTPEndpoint = *flags.OTLPHTTPEndpoint
		cfg.setSource("otlpHttpEndpoint", SourceFlag)
	}
	if flags.TargetOneHost != nil {
		cfg.TargetOneHost = *flags.TargetOneHost
		cfg.setSource("targetOneHost", SourceFlag)
	}
	if flags.TargetTwoHost != nil {
		cfg.TargetTwoHost = *flags.TargetTwoHost
		cfg.setSource("targetTwoHost", SourceFlag)
	}
	if flags.LogLevel != nil {
		cfg.LogLevel = *flags.LogLevel
		cfg.setSource("logLevel", SourceFlag)
	}
	if flags.LogFormat != nil {
		cfg.LogFormat = *flags.LogFormat
		cfg.setSource("logFormat", SourceFlag)
	}
}
