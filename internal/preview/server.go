package preview

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/styleguide/internal/build"
	"git.home.luguber.info/inful/styleguide/internal/metrics"
)

// buildStatus tracks the latest build for the status endpoint.
type buildStatus struct {
	mu       sync.RWMutex
	report   *build.Report
	lastErr  error
	finished time.Time
}

func (bs *buildStatus) set(report *build.Report, err error) {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	bs.report = report
	bs.lastErr = err
	bs.finished = time.Now()
}

// StatusResponse is served at /status.
type StatusResponse struct {
	BuildID  string    `json:"build_id,omitempty"`
	Outcome  string    `json:"outcome,omitempty"`
	Pages    int       `json:"pages"`
	Warnings []string  `json:"warnings,omitempty"`
	Error    string    `json:"error,omitempty"`
	Finished time.Time `json:"finished,omitempty"`
}

func (bs *buildStatus) snapshot() StatusResponse {
	bs.mu.RLock()
	defer bs.mu.RUnlock()
	var resp StatusResponse
	if bs.report != nil {
		resp.BuildID = bs.report.BuildID
		resp.Outcome = string(bs.report.Outcome)
		resp.Pages = bs.report.Pages
		resp.Warnings = bs.report.WarningMessages()
	}
	if bs.lastErr != nil {
		resp.Error = bs.lastErr.Error()
	}
	resp.Finished = bs.finished
	return resp
}

// NewHandler serves the generated guide from dir, build status at /status
// and, when reg is set, Prometheus metrics at /metrics.
func NewHandler(dir string, reg *prom.Registry, status *buildStatus) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(dir)))
	if status == nil {
		status = &buildStatus{}
	}
	mux.HandleFunc("/status", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(status.snapshot())
	})
	if reg != nil {
		mux.Handle("/metrics", metrics.HTTPHandler(reg))
	}
	return mux
}
