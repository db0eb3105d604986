package server

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/tracewire/tracewire/pkg/httputil"
)

// itemResponse echoes the looked-up item. Q is a pointer so an omitted query
// string serializes as null, matching the documented response shape.
type itemResponse struct {
	ItemID int     `json:"item_id"`
	Q      *string `json:"q"`
}

// randomStatusCodes is the weighted set random_status draws from uniformly:
// 200 appears twice, giving it double probability (2:1:1:1:1).
var randomStatusCodes = [5]int{200, 200, 300, 400, 500}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	s.log.InfoContext(r.Context(), "Hello World")
	httputil.WriteOK(w, map[string]string{"Hello": "World"})
}

func (s *Server) handleItem(w http.ResponseWriter, r *http.Request) {
	raw := r.PathValue("id")
	id, err := strconv.Atoi(raw)
	if err != nil {
		httputil.WriteBadRequest(w, "validation_error",
			fmt.Sprintf("item id %q is not an integer", raw))
		return
	}

	var q *string
	if r.URL.Query().Has("q") {
		v := r.URL.Query().Get("q")
		q = &v
	}

	s.log.InfoContext(r.Context(), "item lookup", "item_id", id)
	httputil.WriteOK(w, itemResponse{ItemID: id, Q: q})
}

func (s *Server) handleIOTask(w http.ResponseWriter, r *http.Request) {
	s.sleep(s.latencyUnit)
	s.log.InfoContext(r.Context(), "io task")
	httputil.WriteOK(w, "IO bound task finish!")
}

func (s *Server) handleCPUTask(w http.ResponseWriter, r *http.Request) {
	var n int
	for i := 0; i < 1000; i++ {
		n = i * i * i
	}
	_ = n
	s.log.InfoContext(r.Context(), "cpu task")
	httputil.WriteOK(w, "CPU bound task finish!")
}

func (s *Server) handleRandomStatus(w http.ResponseWriter, r *http.Request) {
	status := randomStatusCodes[s.rng.Intn(len(randomStatusCodes))]
	s.log.InfoContext(r.Context(), "random status", "status", status)
	httputil.WriteJSON(w, status, map[string]string{"path": "/random_status"})
}

func (s *Server) handleRandomSleep(w http.ResponseWriter, r *http.Request) {
	units := s.rng.Intn(6)
	s.sleep(time.Duration(units) * s.latencyUnit)
	s.log.InfoContext(r.Context(), "random sleep", "units", units)
	httputil.WriteOK(w, map[string]string{"path": "/random_sleep"})
}

func (s *Server) handleErrorTest(w http.ResponseWriter, r *http.Request) {
	s.log.ErrorContext(r.Context(), "got error!!!!")
	httputil.WriteInternalError(w, "value_error", "value error")
}

func (s *Server) handleChain(w http.ResponseWriter, r *http.Request) {
	// The chain is never cancelled mid-flight: a client disconnect must not
	// halt the remaining hops once the chain has started.
	ctx := context.WithoutCancel(r.Context())
	if err := s.chainer.Run(ctx); err != nil {
		s.log.ErrorContext(r.Context(), "chain failed", "error", err)
		httputil.WriteInternalError(w, "chain_failed", err.Error())
		return
	}
	httputil.WriteOK(w, map[string]string{"path": "/chain"})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteOK(w, map[string]any{
		"status": "ok",
		"uptime": s.Uptime().String(),
	})
}
