package metrics

import (
	"io"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/armadaproject/bucketcheck/internal/bucketcheck/analyzer"
	"github.com/armadaproject/bucketcheck/internal/common/logging"
)

func TestRecord(t *testing.T) {
	m := New()
	m.RecordGenerated(1000, time.Second)
	m.RecordGenerated(500, time.Second)
	m.RecordDistributed("oneatatime", 1500, time.Second)
	m.RecordTrial("oneatatime", "modulo", analyzer.Summary{Min: 91, Max: 113, Median: 100, Average: 100, Total: 1000})

	assert.Equal(t, 1500.0, testutil.ToFloat64(m.stringsGenerated))
	assert.Equal(t, 1500.0, testutil.ToFloat64(m.stringsHashed.WithLabelValues("oneatatime")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.trialsCompleted.WithLabelValues("oneatatime", "modulo")))
	assert.Equal(t, 113.0, testutil.ToFloat64(m.lastTrialOccupied.WithLabelValues("oneatatime", "Max")))
	assert.Equal(t, 91.0, testutil.ToFloat64(m.lastTrialOccupied.WithLabelValues("oneatatime", "Min")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.phaseDuration))
}

func TestNew_IndependentRegistries(t *testing.T) {
	a := New()
	b := New()
	a.RecordGenerated(1, time.Millisecond)
	assert.Equal(t, 0.0, testutil.ToFloat64(b.stringsGenerated))
}

func TestServe(t *testing.T) {
	m := New()
	m.RecordGenerated(42, time.Millisecond)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	stop := m.Serve(listener, logging.Discard())
	defer stop()

	resp, err := http.Get("http://" + listener.Addr().String() + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), "bucketcheck_strings_generated_total 42"))
}
