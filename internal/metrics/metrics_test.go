package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/reactsynth/internal/engine"
)

func TestRecorder_Observe(t *testing.T) {
	r := NewRecorder()

	r.Observe(&engine.Result{Engine: "cobuechi", StrategyFound: true, Elapsed: time.Millisecond, SkippedIDs: 2})
	r.Observe(&engine.Result{Engine: "cobuechi", UnknownLiterals: []string{"z", "y"}})
	r.Observe(&engine.Result{Engine: "buechi", StrategyFound: true})

	assert.Equal(t, 1.0, testutil.ToFloat64(r.syntheses.WithLabelValues("cobuechi", "realizable")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.syntheses.WithLabelValues("cobuechi", "unrealizable")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.syntheses.WithLabelValues("buechi", "realizable")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.skippedIDs))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.unknownLiterals))
	assert.Equal(t, 2, testutil.CollectAndCount(r.duration))
}

func TestRecorder_Start(t *testing.T) {
	r := NewRecorder()

	done := r.Start()
	assert.Equal(t, 1.0, testutil.ToFloat64(r.inFlight))
	done()

	assert.Equal(t, 0.0, testutil.ToFloat64(r.inFlight))
}

func TestRecorder_Handler(t *testing.T) {
	r := NewRecorder()
	r.Observe(&engine.Result{Engine: "cobuechi", StrategyFound: true})

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `reactsynth_syntheses_total{engine="cobuechi",verdict="realizable"} 1`), body)
}
