package sink

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"sentify/domain"
	"sentify/infrastructure/storage"
	"sentify/observability"
)

// AnalysisSink buffers analyses and writes them to the repository in batches.
type AnalysisSink struct {
	mu               sync.Mutex
	timer            *time.Timer
	repository       storage.IAnalysisRepository
	monitor          *observability.MonitoringManager
	log              *slog.Logger
	analyses         []domain.MoodAnalysis
	maxAnalyzedEvent int
	bufferTimeout    time.Duration
	storeTimeout     time.Duration
}

func NewAnalysisSink(
	repository storage.IAnalysisRepository,
	monitor *observability.MonitoringManager,
	log *slog.Logger,
	maxAnalyzedEvent int,
	bufferTimeout time.Duration,
	storeTimeout time.Duration,
) *AnalysisSink {
	return &AnalysisSink{
		repository:       repository,
		monitor:          monitor,
		log:              log,
		maxAnalyzedEvent: maxAnalyzedEvent,
		bufferTimeout:    bufferTimeout,
		storeTimeout:     storeTimeout,
	}
}

// Consume appends the analysis to the current batch.
// The batch is written when it reaches maxAnalyzedEvent or bufferTimeout after its first entry.
func (a *AnalysisSink) Consume(ctx context.Context, analysis domain.MoodAnalysis) error {
	a.mu.Lock()
	a.analyses = append(a.analyses, analysis)

	// A quiet period must not leave the batch stuck in memory.
	if len(a.analyses) == 1 && a.timer == nil {
		a.timer = time.AfterFunc(a.bufferTimeout, func() {
			if err := a.Flush(context.Background()); err != nil {
				a.log.Error("Batching: Timeout flush failed", "error", err)
			}
		})
	}

	isFull := len(a.analyses) >= a.maxAnalyzedEvent
	a.mu.Unlock()

	if isFull {
		return a.Flush(ctx)
	}
	return nil
}

// Flush writes whatever is buffered. The buffer is swapped under the lock so new analyses keep flowing.
func (a *AnalysisSink) Flush(ctx context.Context) error {
	a.mu.Lock()
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	if len(a.analyses) == 0 {
		a.mu.Unlock()
		return nil
	}
	batch := a.analyses
	a.analyses = make([]domain.MoodAnalysis, 0, a.maxAnalyzedEvent)
	a.mu.Unlock()

	storeCtx, cancel := context.WithTimeout(ctx, a.storeTimeout)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- a.repository.StoreBatch(batch) }()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("failed to store batch in repository: %w", err)
		}
	case <-storeCtx.Done():
		return fmt.Errorf("failed to store batch in repository: %w", storeCtx.Err())
	}

	if a.monitor != nil {
		a.monitor.AddPersisted(len(batch))
	}
	a.log.Debug("Batch stored successfully", "count", len(batch))
	return nil
}
