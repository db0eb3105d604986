package server

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/tracewire/tracewire/pkg/chain"
	"github.com/tracewire/tracewire/pkg/cliconfig"
	"github.com/tracewire/tracewire/pkg/logging"
	"github.com/tracewire/tracewire/pkg/metrics"
)

// Default timeouts for the HTTP server. The write timeout leaves headroom
// for the slowest handler (random_sleep at up to 5s plus the chain).
const (
	defaultReadTimeout  = 30 * time.Second
	defaultWriteTimeout = 60 * time.Second
)

// Server is the tracewire HTTP server.
type Server struct {
	cfg     *cliconfig.Config
	log     *slog.Logger
	chainer *chain.Chainer

	registry        *metrics.Registry
	requestsTotal   *metrics.Counter
	requestDuration *metrics.Histogram

	httpServer *http.Server
	handler    http.Handler

	// latencyUnit is the time unit for io_task (1 unit) and random_sleep
	// (0-5 units). Defaults to one second.
	latencyUnit time.Duration
	sleep       func(time.Duration)
	rng         *lockedRand

	mu        sync.RWMutex
	running   bool
	startTime time.Time
}

// lockedRand guards a rand.Rand for concurrent handler use.
type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (l *lockedRand) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Intn(n)
}

// Option is a functional option for configuring a Server.
type Option func(*Server)

// WithLogger sets the operational logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

// WithChainer sets the chained request propagator used by /chain.
func WithChainer(c *chain.Chainer) Option {
	return func(s *Server) {
		s.chainer = c
	}
}

// WithLatencyUnit overrides the time unit of the latency-simulating
// handlers. Tests use a small unit to keep runs fast.
func WithLatencyUnit(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.latencyUnit = d
		}
	}
}

// WithSleep overrides the sleep function used by the latency handlers.
func WithSleep(fn func(time.Duration)) Option {
	return func(s *Server) {
		if fn != nil {
			s.sleep = fn
		}
	}
}

// WithRandSource seeds the random source of random_status/random_sleep, for
// deterministic tests.
func WithRandSource(seed int64) Option {
	return func(s *Server) {
		s.rng = &lockedRand{r: rand.New(rand.NewSource(seed))}
	}
}

// New creates a Server for the given configuration.
// If no chainer is supplied, one is built from the configured target hosts
// and the fixed downstream port.
func New(cfg *cliconfig.Config, opts ...Option) *Server {
	if cfg == nil {
		cfg = cliconfig.NewDefault()
	}

	s := &Server{
		cfg:         cfg,
		log:         logging.Nop(),
		registry:    metrics.NewRegistry(),
		latencyUnit: time.Second,
		sleep:       time.Sleep,
		rng:         &lockedRand{r: rand.New(rand.NewSource(time.Now().UnixNano()))},
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.chainer == nil {
		self, ioTask, cpuTask := chain.Targets(cliconfig.DefaultDownstreamPort, cfg.TargetOneHost, cfg.TargetTwoHost)
		s.chainer = chain.New(self, ioTask, cpuTask, chain.WithLogger(s.log))
	}

	s.requestsTotal = s.registry.NewCounter(
		"http_requests_total", "Total HTTP requests.", "method", "path", "status")
	s.requestDuration = s.registry.NewHistogram(
		"http_request_duration_seconds", "HTTP request latency.", nil, "method", "path")

	s.handler = s.buildHandler()
	return s
}

// buildHandler assembles the route table and middleware stack. The tracing
// middleware is outermost so every inner layer sees the request span in the
// context.
func (s *Server) buildHandler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /items/{id}", s.handleItem)
	mux.HandleFunc("GET /io_task", s.handleIOTask)
	mux.HandleFunc("GET /cpu_task", s.handleCPUTask)
	mux.HandleFunc("GET /random_status", s.handleRandomStatus)
	mux.HandleFunc("GET /random_sleep", s.handleRandomSleep)
	mux.HandleFunc("GET /error_test", s.handleErrorTest)
	mux.HandleFunc("GET /chain", s.handleChain)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /metrics", s.registry.Handler())

	var handler http.Handler = mux
	handler = s.metricsMiddleware(handler)
	handler = s.accessLogMiddleware(handler)
	handler = RequestIDMiddleware(handler)
	handler = TracingMiddleware(s.cfg.AppName)(handler)
	return handler
}

// Handler returns the fully wrapped HTTP handler. Exposed for tests.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start begins serving and blocks until the server stops.
func (s *Server) Start() error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("server already running")
	}
	s.running = true
	s.startTime = time.Now()
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.cfg.Port),
		Handler:      s.handler,
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: defaultWriteTimeout,
	}
	s.mu.Unlock()

	s.log.Info("server listening",
		"app", s.cfg.AppName,
		"port", s.cfg.Port,
		"mode", s.cfg.Mode,
		"target_one", s.cfg.TargetOneHost,
		"target_two", s.cfg.TargetTwoHost,
	)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server, waiting for in-flight requests up to
// the context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running || s.httpServer == nil {
		return nil
	}
	s.running = false
	return s.httpServer.Shutdown(ctx)
}

// Uptime reports how long the server has been running.
func (s *Server) Uptime() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.startTime.IsZero() {
		return 0
	}
	return time.Since(s.startTime)
}
