package metrics

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.ObserveStageDuration("scan", 150*time.Millisecond)
	pr.ObserveBuildDuration(500 * time.Millisecond)
	pr.IncStageResult("scan", ResultSuccess)
	pr.IncBuildOutcome(BuildOutcomeWarning)
	pr.IncWarning("validation")
	pr.IncWarning("validation")
	pr.SetBlocks(12)
	pr.SetPages(3)
	pr.SetUnresolvedParents(1)

	values := gathered(t, reg)
	require.InDelta(t, 2, values["styleguide_warnings_total"], 0)
	require.InDelta(t, 1, values["styleguide_build_outcomes_total"], 0)
	require.InDelta(t, 12, values["styleguide_blocks"], 0)
	require.InDelta(t, 3, values["styleguide_pages"], 0)
	require.InDelta(t, 1, values["styleguide_unresolved_parents"], 0)
}

// gathered sums counter and gauge values per metric family.
func gathered(t *testing.T, reg *prom.Registry) map[string]float64 {
	t.Helper()
	mfs, err := reg.Gather()
	require.NoError(t, err)
	out := make(map[string]float64, len(mfs))
	for _, mf := range mfs {
		for _, m := range mf.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				out[mf.GetName()] += m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				out[mf.GetName()] += m.GetGauge().GetValue()
			}
		}
	}
	return out
}

func TestPrometheusRecorder_NilSafe(t *testing.T) {
	var pr *PrometheusRecorder
	pr.ObserveStageDuration("scan", time.Second)
	pr.IncWarning("x")
	pr.SetPages(1)
}

func TestWriteTextfile(t *testing.T) {
	pr := NewPrometheusRecorder(nil)
	pr.SetPages(4)

	path := filepath.Join(t.TempDir(), "nested", "styleguide.prom")
	require.NoError(t, pr.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "styleguide_pages 4")
}

func TestHTTPHandler(t *testing.T) {
	pr := NewPrometheusRecorder(nil)
	pr.IncBuildOutcome(BuildOutcomeSuccess)

	rec := httptest.NewRecorder()
	HTTPHandler(pr.Registry()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, strings.Contains(rec.Body.String(), `styleguide_build_outcomes_total{outcome="success"} 1`))
}

var _ Recorder = NoopRecorder{}
var _ Recorder = (*PrometheusRecorder)(nil)
