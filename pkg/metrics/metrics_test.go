package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

func TestCounter(t *testing.T) {
	reg := NewRegistry()
	c := reg.NewCounter("http_requests_total", "Total HTTP requests.", "path", "status")

	c.Inc("/chain", "200")
	c.Inc("/chain", "200")
	c.Inc("/chain", "500")

	if got := c.Value("/chain", "200"); got != 2 {
		t.Errorf("Value(/chain,200) = %v, want 2", got)
	}
	if got := c.Value("/chain", "500"); got != 1 {
		t.Errorf("Value(/chain,500) = %v, want 1", got)
	}
	if got := c.Value("/io_task", "200"); got != 0 {
		t.Errorf("Value(/io_task,200) = %v, want 0", got)
	}

	t.Run("negative delta ignored", func(t *testing.T) {
		c.Add(-5, "/chain", "200")
		if got := c.Value("/chain", "200"); got != 2 {
			t.Errorf("Value after negative Add = %v, want 2", got)
		}
	})

	t.Run("label count mismatch ignored", func(t *testing.T) {
		c.Inc("/chain")
		if got := c.Value("/chain", "200"); got != 2 {
			t.Errorf("Value after mismatched Inc = %v, want 2", got)
		}
	})
}

func TestCounter_Concurrent(t *testing.T) {
	reg := NewRegistry()
	c := reg.NewCounter("ops_total", "Ops.", "kind")

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.Inc("a")
			}
		}()
	}
	wg.Wait()

	if got := c.Value("a"); got != 1000 {
		t.Errorf("Value(a) = %v, want 1000", got)
	}
}

func TestHistogram(t *testing.T) {
	reg := NewRegistry()
	h := reg.NewHistogram("latency_seconds", "Request latency.", []float64{0.1, 1, 5}, "path")

	h.Observe(0.05, "/io_task")
	h.Observe(0.5, "/io_task")
	h.Observe(10, "/io_task")

	if got := h.Count("/io_task"); got != 3 {
		t.Errorf("Count = %v, want 3", got)
	}

	samples := h.Collect()
	byKey := map[string]float64{}
	for _, s := range samples {
		byKey[s.Name+"|"+s.Labels["le"]] = s.Value
	}

	if byKey["latency_seconds_bucket|0.1"] != 1 {
		t.Errorf("bucket 0.1 = %v, want 1", byKey["latency_seconds_bucket|0.1"])
	}
	if byKey["latency_seconds_bucket|1"] != 2 {
		t.Errorf("bucket 1 = %v, want 2", byKey["latency_seconds_bucket|1"])
	}
	if byKey["latency_seconds_bucket|+Inf"] != 3 {
		t.Errorf("bucket +Inf = %v, want 3", byKey["latency_seconds_bucket|+Inf"])
	}
}

func TestRegistryHandler(t *testing.T) {
	reg := NewRegistry()
	c := reg.NewCounter("http_requests_total", "Total HTTP requests.", "path", "status")
	c.Inc("/", "200")

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	reg.Handler().ServeHTTP(rec, req)

	body := rec.Body.String()
	if !strings.Contains(body, "# HELP http_requests_total Total HTTP requests.") {
		t.Errorf("missing HELP line: %q", body)
	}
	if !strings.Contains(body, "# TYPE http_requests_total counter") {
		t.Errorf("missing TYPE line: %q", body)
	}
	if !strings.Contains(body, `http_requests_total{path="/",status="200"} 1`) {
		t.Errorf("missing sample line: %q", body)
	}
	if got := rec.Header().Get("Content-Type"); !strings.HasPrefix(got, "text/plain") {
		t.Errorf("Content-Type = %q", got)
	}
}
