package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tracewire/tracewire/pkg/cliconfig"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show effective configuration with source annotations",
	Long: `Resolve the effective configuration the serve command would run with and
print each value together with where it came from (default, config file,
environment, or flag).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := cliconfig.Resolve(cliconfig.Overrides{})
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(cfg)
		}

		fmt.Println("Effective Configuration:")
		fmt.Println()

		printConfigValue("appName", cfg.AppName, cfg.Sources["appName"])
		printConfigValue("port", cfg.Port, cfg.Sources["port"])
		printConfigValue("mode", cfg.Mode, cfg.Sources["mode"])
		printConfigValue("otlpGrpcEndpoint", cfg.OTLPGRPCEndpoint, cfg.Sources["otlpGrpcEndpoint"])
		printConfigValue("otlpHttpEndpoint", cfg.OTLPHTTPEndpoint, cfg.Sources["otlpHttpEndpoint"])
		printConfigValue("targetOneHost", cfg.TargetOneHost, cfg.Sources["targetOneHost"])
		printConfigValue("targetTwoHost", cfg.TargetTwoHost, cfg.Sources["targetTwoHost"])
		printConfigValue("logLevel", cfg.LogLevel, cfg.Sources["logLevel"])
		printConfigValue("logFormat", cfg.LogFormat, cfg.Sources["logFormat"])
		if cfg.ConfigFile != "" {
			printConfigValue("configFile", cfg.ConfigFile, cliconfig.SourceFile)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}

// printConfigValue prints a config value with source annotation.
func printConfigValue(name string, value interface{}, source string) {
	if source == "" {
		source = cliconfig.SourceDefault
	}
	fmt.Printf("  %-18s %v%s\n", name+":", value, formatSource(source))
}

// formatSource formats a source type for display.
func formatSource(source string) string {
	switch source {
	case cliconfig.SourceDefault:
		return "  (default)"
	case cliconfig.SourceFile:
		return "  (config file)"
	case cliconfig.SourceEnv:
		return "  (env)"
	case cliconfig.SourceFlag:
		return "  (flag)"
	default:
		return ""
	}
}
