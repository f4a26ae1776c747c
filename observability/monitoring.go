package observability

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

const recentLimit = 20

// RecentAnalysis is one line of the live feed.
type RecentAnalysis struct {
	ID        string `json:"id"`
	Sentiment string `json:"sentiment"`
	Category  string `json:"category"`
	Language  string `json:"language"`
	Timestamp string `json:"timestamp"`
}

// MonitoringStats aggregates what the health and inspection pages display.
type MonitoringStats struct {
	Analyses         uint64           `json:"analyses"`
	Overrides        uint64           `json:"overrides"`
	ClassifierErrors uint64           `json:"classifier_errors"`
	Dropped          uint64           `json:"dropped"`
	Persisted        uint64           `json:"persisted"`
	AnalysesPerSec   float64          `json:"analyses_per_sec"`
	QueueSize        int              `json:"queue_size"`
	QueueCapacity    int              `json:"queue_capacity"`
	AllocMemMb       uint64           `json:"alloc_mem_mb"`
	NumGC            uint32           `json:"num_gc"`
	Goroutines       int              `json:"goroutines"`
	Uptime           string           `json:"uptime"`
	RecentAnalyses   []RecentAnalysis `json:"recent_analyses"`
}

// MonitoringManager keeps in-process counters alongside the Prometheus metrics.
type MonitoringManager struct {
	log         *slog.Logger
	mu          sync.RWMutex
	latestStats MonitoringStats
	startedAt   time.Time
	lastCheck   time.Time
	lastCount   uint64

	analyses         uint64
	overrides        uint64
	classifierErrors uint64
	dropped          uint64
	persisted        uint64
}

func NewMonitoringManager(log *slog.Logger) *MonitoringManager {
	now := time.Now()
	return &MonitoringManager{
		log:         log,
		startedAt:   now,
		lastCheck:   now,
		latestStats: MonitoringStats{RecentAnalyses: make([]RecentAnalysis, 0)},
	}
}

func (mm *MonitoringManager) IncrAnalyses()         { atomic.AddUint64(&mm.analyses, 1) }
func (mm *MonitoringManager) IncrOverrides()        { atomic.AddUint64(&mm.overrides, 1) }
func (mm *MonitoringManager) IncrClassifierErrors() { atomic.AddUint64(&mm.classifierErrors, 1) }

func (mm *MonitoringManager) IncrDropped() {
	atomic.AddUint64(&mm.dropped, 1)
	DroppedAnalysesTotal.Inc()
}

func (mm *MonitoringManager) AddPersisted(n int) {
	atomic.AddUint64(&mm.persisted, uint64(n))
	PersistedAnalysesTotal.Add(float64(n))
}

// AddRecent prepends an analysis to the feed, keeping the latest ones only.
func (mm *MonitoringManager) AddRecent(r RecentAnalysis) {
	mm.mu.Lock()
	defer mm.mu.Unlock()

	r.Timestamp = time.Now().Format("15:04:05")
	mm.latestStats.RecentAnalyses = append([]RecentAnalysis{r}, mm.latestStats.RecentAnalyses...)
	if len(mm.latestStats.RecentAnalyses) > recentLimit {
		mm.latestStats.RecentAnalyses = mm.latestStats.RecentAnalyses[:recentLimit]
	}
}

func (mm *MonitoringManager) UpdateQueue(size, capacity int) {
	mm.mu.Lock()
	defer mm.mu.Unlock()
	mm.latestStats.QueueSize = size
	mm.latestStats.QueueCapacity = capacity
}

// Listen refreshes the computed stats every interval until ctx is done.
func (mm *MonitoringManager) Listen(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			mm.log.Debug("Monitoring manager stopped")
			return
		case <-ticker.C:
			mm.Refresh()
		}
	}
}

// Refresh recomputes rates and runtime figures.
func (mm *MonitoringManager) Refresh() {
	mm.mu.Lock()
	defer mm.mu.Unlock()

	now := time.Now()
	count := atomic.LoadUint64(&mm.analyses)
	if elapsed := now.Sub(mm.lastCheck).Seconds(); elapsed > 0 {
		mm.latestStats.AnalysesPerSec = float64(count-mm.lastCount) / elapsed
	}
	mm.lastCheck, mm.lastCount = now, count

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	mm.latestStats.AllocMemMb = m.Alloc / 1024 / 1024
	mm.latestStats.NumGC = m.NumGC
	mm.latestStats.Goroutines = runtime.NumGoroutine()

	mm.log.Debug("Stats refreshed",
		"analyses", count,
		"rate", mm.latestStats.AnalysesPerSec,
		"mem_mb", mm.latestStats.AllocMemMb,
	)
}

func (mm *MonitoringManager) GetLatest() MonitoringStats {
	mm.mu.RLock()
	defer mm.mu.RUnlock()

	stats := mm.latestStats
	stats.Analyses = atomic.LoadUint64(&mm.analyses)
	stats.Overrides = atomic.LoadUint64(&mm.overrides)
	stats.ClassifierErrors = atomic.LoadUint64(&mm.classifierErrors)
	stats.Dropped = atomic.LoadUint64(&mm.dropped)
	stats.Persisted = atomic.LoadUint64(&mm.persisted)
	stats.Uptime = time.Since(mm.startedAt).Truncate(time.Second).String()
	stats.RecentAnalyses = append([]RecentAnalysis(nil), mm.latestStats.RecentAnalyses...)
	return stats
}
