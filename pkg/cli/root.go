package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// jsonOutput switches command output to JSON.
	jsonOutput bool

	// Version is injected during build
	Version = "dev"
	// Commit is injected during build
	Commit = "none"
	// BuildDate is injected during build
	BuildDate = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tracewire",
	Short: "tracewire is a distributed-tracing demo HTTP service",
	Long: `tracewire serves a small set of HTTP endpoints that exercise distributed
tracing: latency simulation, random status codes, deliberate errors, and a
chained request that fans out to two sibling instances while propagating the
active trace context.

Configuration can be provided via flags, environment variables, or a
configuration file. Spans are exported over OTLP to a collector such as
Jaeger or Grafana Tempo.`,
	// No Run function here means 'tracewire' with no args will print help text by default.
	SilenceUsage:  true,
	SilenceErrors: true, // We handle errors in Execute()
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output command results in JSON format")
}
