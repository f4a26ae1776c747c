package workers

import (
	"context"
	"log/slog"
	"time"

	"sentify/contract"
	"sentify/domain"
)

// AnalysisWriterWorker drains the analyses channel into the sink.
// Persistence is best effort: a failed batch is logged and never reaches the caller of an analysis.
type AnalysisWriterWorker struct {
	log          *slog.Logger
	analyses     <-chan domain.MoodAnalysis
	sink         contract.AnalysisSink
	flushTimeout time.Duration
}

func NewAnalysisWriterWorker(log *slog.Logger, analyses <-chan domain.MoodAnalysis,
	sink contract.AnalysisSink, flushTimeout time.Duration) *AnalysisWriterWorker {
	return &AnalysisWriterWorker{log: log, analyses: analyses, sink: sink, flushTimeout: flushTimeout}
}

func (w *AnalysisWriterWorker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.drain()
			w.flush()
			return ctx.Err()
		case analysis, ok := <-w.analyses:
			if !ok {
				w.flush()
				return nil
			}
			if err := w.sink.Consume(ctx, analysis); err != nil {
				w.log.Error("Unable to persist analyses", "error", err)
			}
		}
	}
}

// drain keeps what is already queued so a shutdown loses nothing accepted before it.
func (w *AnalysisWriterWorker) drain() {
	ctx, cancel := context.WithTimeout(context.Background(), w.flushTimeout)
	defer cancel()
	for {
		select {
		case analysis, ok := <-w.analyses:
			if !ok {
				return
			}
			if err := w.sink.Consume(ctx, analysis); err != nil {
				w.log.Error("Unable to persist analyses during shutdown", "error", err)
			}
		default:
			return
		}
	}
}

// The parent ctx is already done at shutdown, the last flush gets its own deadline.
func (w *AnalysisWriterWorker) flush() {
	ctx, cancel := context.WithTimeout(context.Background(), w.flushTimeout)
	defer cancel()
	if err := w.sink.Flush(ctx); err != nil {
		w.log.Error("Final flush failed", "error", err)
		return
	}
	w.log.Debug("Analysis writer flushed")
}
