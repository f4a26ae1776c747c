package workers

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"sentify/contract"
	"sentify/errors"
	"sentify/observability"
)

const (
	initialRestartDelay = 200 * time.Millisecond
	maxRestartDelay     = 5 * time.Second
)

// Supervisor runs each worker in its own goroutine and restarts it after a panic or an error.
// A worker returning nil is considered done and is not restarted.
// Restart delays double up to a ceiling and go back to the initial delay once a run outlives it.
type Supervisor struct {
	Cancel       context.CancelFunc
	wg           *sync.WaitGroup
	log          *slog.Logger
	workers      []contract.Worker
	initialDelay time.Duration
	maxDelay     time.Duration
}

func NewSupervisor(log *slog.Logger) *Supervisor {
	return &Supervisor{
		wg:           &sync.WaitGroup{},
		log:          log,
		initialDelay: initialRestartDelay,
		maxDelay:     maxRestartDelay,
	}
}

// WithRestartDelay overrides the restart backoff bounds.
func (s *Supervisor) WithRestartDelay(initial, ceiling time.Duration) *Supervisor {
	s.initialDelay, s.maxDelay = initial, max(initial, ceiling)
	return s
}

// nextDelay doubles current, capped at the ceiling.
func (s *Supervisor) nextDelay(current time.Duration) time.Duration {
	return min(current*2, s.maxDelay)
}

// Run blocks until every worker has returned.
// Cancelling the parent ctx or calling Stop ends the supervised workers.
func (s *Supervisor) Run(ctx context.Context) {
	supervisedCtx, cancel := context.WithCancel(ctx)
	s.Cancel = cancel
	defer s.Cancel()

	for _, worker := range s.workers {
		s.Start(supervisedCtx, worker)
	}
	s.wg.Wait()
}

func (s *Supervisor) Add(worker ...contract.Worker) contract.ISupervisor {
	s.workers = append(s.workers, worker...)
	return s
}

// Start runs a worker under supervision. A crash of one worker never stops the others.
func (s *Supervisor) Start(ctx context.Context, worker contract.Worker) {
	s.wg.Add(1)
	workerName := contract.GetWorkerName(worker)

	go func() {
		defer s.wg.Done()
		delay := s.initialDelay

		for {
			if ctx.Err() != nil {
				s.log.Info("Stopping worker", "name", workerName)
				return
			}

			startedAt := time.Now()
			reason := "error"
			err := func() (err error) {
				defer func() {
					if r := recover(); r != nil {
						s.log.Error("Worker panicked", "name", workerName, "panic", r)
						reason = "panic"
						err = errors.ErrWorkerPanic
					}
				}()
				return worker.Run(ctx)
			}()

			if err == nil {
				s.log.Info("Worker finished", "name", workerName)
				return
			}

			if ctx.Err() != nil {
				s.log.Info("Worker stopped (context canceled)", "name", workerName)
				return
			}

			// A run that lasted longer than the ceiling was healthy, start the backoff over.
			if time.Since(startedAt) >= s.maxDelay {
				delay = s.initialDelay
			}
			observability.WorkerRestartsTotal.WithLabelValues(workerName, reason).Inc()
			s.log.Warn("Worker crashed, restarting", "name", workerName, "error", err, "delay", delay)
			select {
			case <-ctx.Done():
				return
			case <-time.After(delay):
			}
			delay = s.nextDelay(delay)
		}
	}()
}

func (s *Supervisor) Stop() {
	if s.Cancel != nil {
		s.Cancel()
	}
}
