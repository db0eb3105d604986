// Package chain implements the chained request propagator: three sequential
// outbound GETs (self, then two downstream services) that all carry the same
// trace context, producing one linear multi-hop trace in the backend.
package chain

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/tracewire/tracewire/pkg/logging"
	"github.com/tracewire/tracewire/pkg/tracing"
)

// defaultTimeout bounds each individual hop.
const defaultTimeout = 30 * time.Second

// Chainer issues the chain calls. Targets are resolved once at construction
// and immutable afterwards.
type Chainer struct {
	client  *http.Client
	log     *slog.Logger
	targets [3]string
}

// Option configures a Chainer.
type Option func(*Chainer)

// WithHTTPClient sets the HTTP client used for the chain calls.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Chainer) {
		if client != nil {
			c.client = client
		}
	}
}

// WithLogger sets the logger.
func WithLogger(log *slog.Logger) Option {
	return func(c *Chainer) {
		if log != nil {
			c.log = log
		}
	}
}

// Targets builds the three chain URLs in call order: the local root endpoint,
// the first downstream's /io_task, the second downstream's /cpu_task. All
// three use the fixed downstream port.
func Targets(port int, targetOne, targetTwo string) (self, ioTask, cpuTask string) {
	self = fmt.Sprintf("http://localhost:%d/", port)
	ioTask = fmt.Sprintf("http://%s:%d/io_task", targetOne, port)
	cpuTask = fmt.Sprintf("http://%s:%d/cpu_task", targetTwo, port)
	return self, ioTask, cpuTask
}

// New creates a Chainer calling the three given URLs in order.
func New(self, ioTask, cpuTask string, opts ...Option) *Chainer {
	c := &Chainer{
		client:  &http.Client{Timeout: defaultTimeout},
		log:     logging.Nop(),
		targets: [3]string{self, ioTask, cpuTask},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run executes the chain. The trace context active in ctx is injected into a
// header carrier exactly once, before the first hop; every hop then receives
// a copy of that same carrier, so the receiving services all continue the
// same trace and no hop can mutate the shared value. An empty carrier (no
// active trace) is valid.
//
// The calls are strictly sequential: each is awaited before the next starts.
// The first hop that fails (connection error or non-2xx status) aborts the
// chain and its error is returned; the remaining hops are not attempted.
// There are no retries.
func (c *Chainer) Run(ctx context.Context) error {
	carrier := make(http.Header)
	tracing.Inject(ctx, carrier)
	c.log.DebugContext(ctx, "chain carrier prepared", slog.Any("headers", carrier))

	for _, target := range c.targets {
		if err := c.get(ctx, target, carrier); err != nil {
			return err
		}
	}

	c.log.InfoContext(ctx, "chain finished")
	return nil
}

// get performs one hop with the carrier attached as request headers.
func (c *Chainer) get(ctx context.Context, url string, carrier http.Header) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request for %s: %w", url, err)
	}
	req.Header = carrier.Clone()

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("GET %s: unexpected status %d", url, resp.StatusCode)
	}
	return nil
}
