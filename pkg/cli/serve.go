package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tracewire/tracewire/pkg/chain"
	"github.com/tracewire/tracewire/pkg/cliconfig"
	"github.com/tracewire/tracewire/pkg/logging"
	"github.com/tracewire/tracewire/pkg/server"
	"github.com/tracewire/tracewire/pkg/tracing"
)

// shutdownTimeout is the maximum time to wait for graceful shutdown.
const shutdownTimeout = 30 * time.Second

// serveFlagVals is the package-level instance bound to cobra flags.
var serveFlagVals serveFlags

// serveFlags holds all parsed command-line flags for the serve command.
type serveFlags struct {
	appName    string
	port       int
	mode       string
	otlpGRPC   string
	otlpHTTP   string
	targetOne  string
	targetTwo  string
	logLevel   string
	logFormat  string
	configFile string
}

// serveCmd represents the serve command, the foreground server entrypoint.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the tracing demo server (foreground)",
	Long: `Start the HTTP server and begin exporting spans.

Every request gets a server span. The /chain endpoint calls this instance
and the two configured target hosts in sequence, reusing the same trace
context headers for all three calls so the hops join one trace.`,
	Example: `  # Start with defaults
  tracewire serve

  # Start as instance "app-a" on port 8000
  tracewire serve --app-name app-a --port 8000

  # Export spans to a local collector over OTLP/HTTP
  tracewire serve --mode otlp-http --otlp-http-endpoint localhost:4318

  # Print spans to stdout instead of exporting
  tracewire serve --mode stdout`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd, &serveFlagVals)
	},
}

func initServeCmd() {
	rootCmd.AddCommand(serveCmd)

	f := &serveFlagVals

	serveCmd.Flags().StringVar(&f.appName, "app-name", cliconfig.DefaultAppName, "Service name recorded on every span")
	serveCmd.Flags().IntVarP(&f.port, "port", "p", cliconfig.DefaultPort, "HTTP server port")
	serveCmd.Flags().StringVar(&f.mode, "mode", string(tracing.ModeOTLPGRPC), "Span export mode (otlp-grpc, otlp-http, stdout, none)")
	serveCmd.Flags().StringVar(&f.otlpGRPC, "otlp-grpc-endpoint", cliconfig.DefaultOTLPGRPCEndpoint, "OTLP gRPC collector endpoint (host:port)")
	serveCmd.Flags().StringVar(&f.otlpHTTP, "otlp-http-endpoint", cliconfig.DefaultOTLPHTTPEndpoint, "OTLP HTTP collector endpoint (host:port)")
	serveCmd.Flags().StringVar(&f.targetOne, "target-one-host", cliconfig.DefaultTargetOneHost, "Host called second by /chain")
	serveCmd.Flags().StringVar(&f.targetTwo, "target-two-host", cliconfig.DefaultTargetTwoHost, "Host called third by /chain")
	serveCmd.Flags().StringVar(&f.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	serveCmd.Flags().StringVar(&f.logFormat, "log-format", "text", "Log format (text, json)")
	serveCmd.Flags().StringVarP(&f.configFile, "config", "c", "", "Path to configuration file")
}

func init() {
	initServeCmd()
}

// overridesFromFlags maps only the flags the user actually set, so flag
// defaults do not shadow file or environment values.
func overridesFromFlags(cmd *cobra.Command, f *serveFlags) cliconfig.Overrides {
	var o cliconfig.Overrides
	if cmd.Flags().Changed("app-name") {
		o.AppName = &f.appName
	}
	if cmd.Flags().Changed("port") {
		o.Port = &f.port
	}
	if cmd.Flags().Changed("mode") {
		o.Mode = &f.mode
	}
	if cmd.Flags().Changed("otlp-grpc-endpoint") {
		o.OTLPGRPCEndpoint = &f.otlpGRPC
	}
	if cmd.Flags().Changed("otlp-http-endpoint") {
		o.OTLPHTTPEndpoint = &f.otlpHTTP
	}
	if cmd.Flags().Changed("target-one-host") {
		o.TargetOneHost = &f.targetOne
	}
	if cmd.Flags().Changed("target-two-host") {
		o.TargetTwoHost = &f.targetTwo
	}
	if cmd.Flags().Changed("log-level") {
		o.LogLevel = &f.logLevel
	}
	if cmd.Flags().Changed("log-format") {
		o.LogFormat = &f.logFormat
	}
	if cmd.Flags().Changed("config") {
		o.ConfigFile = &f.configFile
	}
	return o
}

// runServe is the core serve logic called by the cobra command.
func runServe(cmd *cobra.Command, flags *serveFlags) error {
	cfg, err := cliconfig.Resolve(overridesFromFlags(cmd, flags))
	if err != nil {
		return err
	}

	log := logging.New(logging.Config{
		Level:     logging.ParseLevel(cfg.LogLevel),
		Format:    logging.ParseFormat(cfg.LogFormat),
		Output:    os.Stderr,
		Correlate: true,
	})

	// Validated by Resolve, so this cannot fail here.
	mode, err := tracing.ParseMode(cfg.Mode)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	provider, err := tracing.Setup(ctx, tracing.Config{
		ServiceName:      cfg.AppName,
		Mode:             mode,
		OTLPGRPCEndpoint: cfg.OTLPGRPCEndpoint,
		OTLPHTTPEndpoint: cfg.OTLPHTTPEndpoint,
	})
	if err != nil {
		return err
	}

	self, ioTask, cpuTask := chain.Targets(cliconfig.DefaultDownstreamPort, cfg.TargetOneHost, cfg.TargetTwoHost)
	chainer := chain.New(self, ioTask, cpuTask, chain.WithLogger(log))

	srv := server.New(cfg,
		server.WithLogger(log),
		server.WithChainer(chainer),
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	var runErr error
	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-errCh:
		runErr = err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown failed", "error", err)
	}
	// Flush buffered spans before exiting.
	if err := provider.Shutdown(shutdownCtx); err != nil {
		log.Error("tracer shutdown failed", "error", err)
	}

	return runErr
}
