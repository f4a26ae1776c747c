package workers

import (
	"context"
	"log/slog"
	"time"

	"sentify/domain"
	"sentify/observability"

	"github.com/shirou/gopsutil/process"
)

// TrackedProcess names a process to sample. PID returns 0 while the process is not running.
type TrackedProcess struct {
	ID   string
	Type domain.NodeType
	PID  func() int32
}

// HealthMonitoringWorker samples the tracked processes and the writer queue every interval.
type HealthMonitoringWorker struct {
	log            *slog.Logger
	processes      []TrackedProcess
	monitoring     *domain.GlobalMonitoring
	monitor        *observability.MonitoringManager
	queue          chan domain.MoodAnalysis
	metricInterval time.Duration
}

func NewHealthMonitoringWorker(
	log *slog.Logger,
	processes []TrackedProcess,
	monitoring *domain.GlobalMonitoring,
	monitor *observability.MonitoringManager,
	queue chan domain.MoodAnalysis,
	metricInterval time.Duration,
) *HealthMonitoringWorker {
	return &HealthMonitoringWorker{
		log:            log,
		processes:      processes,
		monitoring:     monitoring,
		monitor:        monitor,
		queue:          queue,
		metricInterval: metricInterval,
	}
}

func (w *HealthMonitoringWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.metricInterval)
	defer ticker.Stop()

	w.sample()
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping health sampling")
			return nil
		case <-ticker.C:
			w.sample()
		}
	}
}

func (w *HealthMonitoringWorker) sample() {
	// len and cap never block the channel owners.
	if w.queue != nil && w.monitor != nil {
		w.monitor.UpdateQueue(len(w.queue), cap(w.queue))
	}

	for _, tracked := range w.processes {
		pid := tracked.PID()
		if pid <= 0 {
			continue
		}
		health, err := inspect(pid)
		if err != nil {
			w.log.Debug("Error while retrieving process", "id", tracked.ID, "pid", pid, "err", err)
			continue
		}
		health.ID, health.Type = tracked.ID, tracked.Type
		w.monitoring.UpdateNode(health)
		observability.ProcessCPUPercent.WithLabelValues(tracked.ID).Set(health.CPU)
		observability.ProcessRSSBytes.WithLabelValues(tracked.ID).Set(float64(health.RAM))
	}
}

func inspect(pid int32) (domain.NodeHealth, error) {
	p, err := process.NewProcess(pid)
	if err != nil {
		return domain.NodeHealth{}, err
	}
	status, err := p.Status()
	if err != nil {
		return domain.NodeHealth{}, err
	}
	cpu, err := p.CPUPercent()
	if err != nil {
		return domain.NodeHealth{}, err
	}
	mem, err := p.MemoryPercent()
	if err != nil {
		return domain.NodeHealth{}, err
	}
	health := domain.NodeHealth{
		PID:       pid,
		PIDStatus: domain.ToPIDStatus(status),
		CPU:       cpu,
		Memory:    mem,
	}
	if info, err := p.MemoryInfo(); err == nil {
		health.RAM = info.RSS
	}
	if threads, err := p.NumThreads(); err == nil {
		health.Threads = threads
	}
	return health, nil
}
