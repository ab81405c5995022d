package observability

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestTrackerRecordsStatus(t *testing.T) {
	metrics := NewMetrics()

	require.NoError(t, metrics.Track().End(nil))
	failure := errors.New("boom")
	require.ErrorIs(t, metrics.Track().End(failure), failure)

	require.Equal(t, float64(1), testutil.ToFloat64(metrics.runs.WithLabelValues("success")))
	require.Equal(t, float64(1), testutil.ToFloat64(metrics.runs.WithLabelValues("failure")))
	require.Equal(t, 1, testutil.CollectAndCount(metrics.duration))
}

func TestAddTopUpsSkipsEmptyBlocks(t *testing.T) {
	metrics := NewMetrics()

	metrics.AddTopUps(10, 2, 6)
	metrics.AddTopUps(10, 1, 3)
	metrics.AddTopUps(20, 0, 0)

	require.Equal(t, float64(3), testutil.ToFloat64(metrics.usersToppedUp.WithLabelValues("10")))
	require.Equal(t, float64(9), testutil.ToFloat64(metrics.tokensGranted.WithLabelValues("10")))
	require.Equal(t, 1, testutil.CollectAndCount(metrics.usersToppedUp))
}

func TestWriteTextfile(t *testing.T) {
	metrics := NewMetrics()
	metrics.AddTopUps(7, 1, 4)
	_ = metrics.Track().End(nil)

	path := filepath.Join(t.TempDir(), "topup.prom")
	require.NoError(t, metrics.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	body := string(data)
	require.True(t, strings.Contains(body, `topup_runs_total{status="success"} 1`), body)
	require.Contains(t, body, `topup_tokens_granted_total{company="7"} 4`)
}

func TestNilMetricsAreSafe(t *testing.T) {
	var metrics *Metrics
	metrics.AddTopUps(1, 1, 1)
	require.NoError(t, metrics.Track().End(nil))
	require.NoError(t, metrics.WriteTextfile(filepath.Join(t.TempDir(), "x.prom")))
}
