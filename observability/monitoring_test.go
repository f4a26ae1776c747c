package observability

import (
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMonitoringManager_Counters(t *testing.T) {
	req := require.New(t)
	mm := NewMonitoringManager(logs.GetLoggerFromLevel(slog.LevelDebug))
	droppedBefore := testutil.ToFloat64(DroppedAnalysesTotal)
	persistedBefore := testutil.ToFloat64(PersistedAnalysesTotal)

	mm.IncrAnalyses()
	mm.IncrAnalyses()
	mm.IncrOverrides()
	mm.IncrClassifierErrors()
	mm.IncrDropped()
	mm.AddPersisted(3)
	mm.UpdateQueue(4, 100)
	mm.Refresh()

	stats := mm.GetLatest()
	req.Equal(uint64(2), stats.Analyses)
	req.Equal(uint64(1), stats.Overrides)
	req.Equal(uint64(1), stats.ClassifierErrors)
	req.Equal(uint64(1), stats.Dropped)
	req.Equal(uint64(3), stats.Persisted)
	req.Equal(4, stats.QueueSize)
	req.Equal(100, stats.QueueCapacity)
	req.Positive(stats.Goroutines)

	req.Equal(droppedBefore+1, testutil.ToFloat64(DroppedAnalysesTotal))
	req.Equal(persistedBefore+3, testutil.ToFloat64(PersistedAnalysesTotal))
}

func TestMonitoringManager_RecentIsBounded(t *testing.T) {
	req := require.New(t)
	mm := NewMonitoringManager(logs.GetLoggerFromLevel(slog.LevelDebug))

	for i := 0; i < recentLimit+5; i++ {
		mm.AddRecent(RecentAnalysis{ID: fmt.Sprintf("%d", i)})
	}

	recent := mm.GetLatest().RecentAnalyses
	req.Len(recent, recentLimit)
	req.Equal(fmt.Sprintf("%d", recentLimit+4), recent[0].ID)
}

func TestRecordHelpers(t *testing.T) {
	req := require.New(t)

	before := testutil.ToFloat64(AnalysesTotal.WithLabelValues("Very Positive"))
	overrides := testutil.ToFloat64(SafeguardOverridesTotal)
	RecordAnalysis("Very Positive", "joy", false)
	RecordAnalysis("Very Positive", "joy", true)
	req.Equal(before+2, testutil.ToFloat64(AnalysesTotal.WithLabelValues("Very Positive")))
	req.Equal(overrides+1, testutil.ToFloat64(SafeguardOverridesTotal))

	errs := testutil.ToFloat64(ClassifierErrorsTotal.WithLabelValues("test"))
	RecordClassifierCall("test", time.Millisecond, nil)
	RecordClassifierCall("test", time.Millisecond, fmt.Errorf("boom"))
	req.Equal(errs+1, testutil.ToFloat64(ClassifierErrorsTotal.WithLabelValues("test")))

	RecordHTTPRequest("POST", "/sentify", 200, time.Millisecond)
	req.GreaterOrEqual(testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", "/sentify", "200")), 1.0)

	SetBreakerState("test", "open")
	req.Equal(2.0, testutil.ToFloat64(ClassifierBreakerState.WithLabelValues("test")))
	SetBreakerState("test", "closed")
	req.Equal(0.0, testutil.ToFloat64(ClassifierBreakerState.WithLabelValues("test")))
}
