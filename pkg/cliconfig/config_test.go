package cliconfig

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "valid defaults",
			mutate:  func(*Config) {},
			wantErr: "",
		},
		{
			name:    "port too high",
			mutate:  func(c *Config) { c.Port = 70000 },
			wantErr: "port 70000 is out of range",
		},
		{
			name:    "port zero",
			mutate:  func(c *Config) { c.Port = 0 },
			wantErr: "out of range",
		},
		{
			name:    "empty app name",
			mutate:  func(c *Config) { c.AppName = "" },
			wantErr: "app name must not be empty",
		},
		{
			name:    "unknown mode",
			mutate:  func(c *Config) { c.Mode = "thrift-agent" },
			wantErr: "unknown exporter mode",
		},
		{
			name:    "empty target host",
			mutate:  func(c *Config) { c.TargetOneHost = "" },
			wantErr: "target hosts must not be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefault()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLoadEnv(t *testing.T) {
	t.Setenv(EnvAppName, "app-b")
	t.Setenv(EnvPort, "9000")
	t.Setenv(EnvMode, "otlp-http")
	t.Setenv(EnvTargetOneHost, "svc-one")

	cfg := NewDefault()
	LoadEnv(cfg)

	if cfg.AppName != "app-b" {
		t.Errorf("AppName = %q, want app-b", cfg.AppName)
	}
	if cfg.Port != 9000 {
		t.Errorf("Port = %d, want 9000", cfg.Port)
	}
	if cfg.Mode != "otlp-http" {
		t.Errorf("Mode = %q, want otlp-http", cfg.Mode)
	}
	if cfg.TargetOneHost != "svc-one" {
		t.Errorf("TargetOneHost = %q, want svc-one", cfg.TargetOneHost)
	}
	if cfg.TargetTwoHost != DefaultTargetTwoHost {
		t.Errorf("TargetTwoHost should keep default, got %q", cfg.TargetTwoHost)
	}
	if cfg.Sources["appName"] != SourceEnv {
		t.Errorf("appName source = %q, want env", cfg.Sources["appName"])
	}
	if cfg.Sources["targetTwoHost"] != SourceDefault {
		t.Errorf("targetTwoHost source = %q, want default", cfg.Sources["targetTwoHost"])
	}
}

func TestLoadEnv_BadPortIgnored(t *testing.T) {
	t.Setenv(EnvPort, "not-a-number")

	cfg := NewDefault()
	LoadEnv(cfg)

	if cfg.Port != DefaultPort {
		t.Errorf("Port = %d, want default %d", cfg.Port, DefaultPort)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tracewire.yaml")
	content := "appName: app-c\nport: 8100\nmode: stdout\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg := NewDefault()
	if err := LoadFile(cfg, path); err != nil {
		t.Fatal(err)
	}

	if cfg.AppName != "app-c" || cfg.Port != 8100 || cfg.Mode != "stdout" {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.TargetOneHost != DefaultTargetOneHost {
		t.Error("unset file keys should keep defaults")
	}
	if cfg.Sources["mode"] != SourceFile {
		t.Errorf("mode source = %q, want file", cfg.Sources["mode"])
	}
}

func TestLoadFile_Missing(t *testing.T) {
	cfg := NewDefault()
	if err := LoadFile(cfg, filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestResolve_Precedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tracewire.yaml")
	if err := os.WriteFile(path, []byte("appName: from-file\nport: 8100\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv(EnvAppName, "from-env")

	name := "from-flag"
	cfg, err := Resolve(Overrides{
		ConfigFile:    &path,
		TargetOneHost: &name,
	})
	if err != nil {
		t.Fatal(err)
	}

	// env beats file
	if cfg.AppName != "from-env" {
		t.Errorf("AppName = %q, want from-env", cfg.AppName)
	}
	// file beats default
	if cfg.Port != 8100 {
		t.Errorf("Port = %d, want 8100", cfg.Port)
	}
	// flag beats everything
	if cfg.TargetOneHost != "from-flag" {
		t.Errorf("TargetOneHost = %q, want from-flag", cfg.TargetOneHost)
	}
}

func TestResolve_InvalidMode(t *testing.T) {
	bad := "grpc-collector"
	if _, err := Resolve(Overrides{Mode: &bad}); err == nil {
		t.Fatal("expected validation error for unknown mode")
	}
}
