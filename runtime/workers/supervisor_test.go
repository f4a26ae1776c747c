package workers

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"sentify/mocks"
	"sentify/observability"

	"github.com/mama165/sdk-go/logs"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestSupervisor_RestartOnPanic(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	workerMock := mocks.NewMockWorker(ctrl)

	var calls atomic.Int32
	workerMock.EXPECT().
		Run(gomock.Any()).
		DoAndReturn(func(ctx context.Context) error {
			calls.Add(1)
			panic("boom")
		}).
		AnyTimes()

	sup := NewSupervisor(log)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	done := make(chan struct{})
	go func() {
		sup.Add(workerMock).Run(ctx)
		close(done)
	}()

	// Waiting for panics and restarts
	time.Sleep(900 * time.Millisecond)
	req.GreaterOrEqual(calls.Load(), int32(2))
	<-done
}

func TestSupervisor_RestartOnError(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	workerMock := mocks.NewMockWorker(ctrl)

	// Given a worker failing once then finishing properly
	gomock.InOrder(
		workerMock.EXPECT().Run(gomock.Any()).Return(errors.New("transient")),
		workerMock.EXPECT().Run(gomock.Any()).Return(nil),
	)

	done := make(chan struct{})
	go func() {
		NewSupervisor(log).Add(workerMock).Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
		// Then the worker has been restarted once
	case <-time.After(time.Second):
		req.Fail("Supervisor should have restarted the worker once")
	}
}

func TestSupervisor_StopOnSuccess(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	workerMock := mocks.NewMockWorker(ctrl)

	// Given a worker running only once
	workerMock.EXPECT().
		Run(gomock.Any()).
		Return(nil).
		Times(1)

	sup := NewSupervisor(log)

	// Given a channel to notify when Run() terminated
	done := make(chan struct{})
	go func() {
		sup.Add(workerMock).Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
		// Then supervisor detected a success and stopped
	case <-time.After(500 * time.Millisecond):
		req.Fail("Supervisor should have stopped after worker success")
	}
}

func TestSupervisor_ParentCancellation(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	workerMock := mocks.NewMockWorker(ctrl)

	// Given a worker blocking until cancellation
	workerMock.EXPECT().
		Run(gomock.Any()).
		DoAndReturn(func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		}).
		Times(1)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		NewSupervisor(log).Add(workerMock).Run(ctx)
		close(done)
	}()

	// When the parent context is canceled
	time.Sleep(50 * time.Millisecond)
	cancel()

	// Then the worker is not restarted and Run returns
	select {
	case <-done:
	case <-time.After(time.Second):
		req.Fail("Supervisor should have stopped with its parent context")
	}
}

func TestSupervisor_NextDelay(t *testing.T) {
	req := require.New(t)
	sup := NewSupervisor(logs.GetLoggerFromLevel(slog.LevelDebug)).
		WithRestartDelay(100*time.Millisecond, time.Second)

	tests := []struct {
		current  time.Duration
		expected time.Duration
	}{
		{current: 100 * time.Millisecond, expected: 200 * time.Millisecond},
		{current: 400 * time.Millisecond, expected: 800 * time.Millisecond},
		{current: 800 * time.Millisecond, expected: time.Second},
		{current: time.Second, expected: time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.current.String(), func(t *testing.T) {
			req.Equal(tt.expected, sup.nextDelay(tt.current))
		})
	}
}

func TestSupervisor_CountsRestarts(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	workerMock := mocks.NewMockWorker(ctrl)

	restarts := observability.WorkerRestartsTotal.WithLabelValues("MockWorker", "error")
	before := testutil.ToFloat64(restarts)

	// Given a worker failing twice then finishing
	gomock.InOrder(
		workerMock.EXPECT().Run(gomock.Any()).Return(errors.New("transient")),
		workerMock.EXPECT().Run(gomock.Any()).Return(errors.New("transient")),
		workerMock.EXPECT().Run(gomock.Any()).Return(nil),
	)

	done := make(chan struct{})
	go func() {
		NewSupervisor(log).
			WithRestartDelay(10*time.Millisecond, 50*time.Millisecond).
			Add(workerMock).
			Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		req.Fail("Supervisor should have finished after two restarts")
	}

	// Then both restarts are counted
	req.Equal(before+2, testutil.ToFloat64(restarts))
}
