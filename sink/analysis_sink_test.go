package sink_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"sentify/domain"
	"sentify/mocks"
	"sentify/sink"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func analysis() domain.MoodAnalysis {
	return domain.MoodAnalysis{ID: uuid.New(), Text: "hello", At: time.Now()}
}

func TestAnalysisSink_Consume(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)

	mockRepo := mocks.NewMockIAnalysisRepository(ctrl)
	// Silencing logs for clean test output
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.Background()

	t.Run("Flush triggered by size limit", func(t *testing.T) {
		maxSize := 3
		s := sink.NewAnalysisSink(mockRepo, nil, logger, maxSize, 10*time.Second, time.Second)

		mockRepo.EXPECT().
			StoreBatch(gomock.Any()).
			DoAndReturn(func(analyses []domain.MoodAnalysis) error {
				req.Len(analyses, maxSize)
				return nil
			}).Times(1)

		for i := 0; i < maxSize; i++ {
			req.NoError(s.Consume(ctx, analysis()))
		}
	})

	t.Run("Flush triggered by timeout (asynchronous)", func(t *testing.T) {
		timeout := 50 * time.Millisecond
		s := sink.NewAnalysisSink(mockRepo, nil, logger, 100, timeout, time.Second)

		stored := make(chan int, 1)
		mockRepo.EXPECT().
			StoreBatch(gomock.Any()).
			DoAndReturn(func(analyses []domain.MoodAnalysis) error {
				stored <- len(analyses)
				return nil
			}).Times(1)

		req.NoError(s.Consume(ctx, analysis()))

		select {
		case n := <-stored:
			req.Equal(1, n)
		case <-time.After(time.Second):
			req.Fail("timer flush did not happen")
		}
	})

	t.Run("Concurrent access safety", func(t *testing.T) {
		numWorkers := 10
		perWorker := 10
		s := sink.NewAnalysisSink(mockRepo, nil, logger, numWorkers*perWorker, 2*time.Second, time.Second)

		mockRepo.EXPECT().StoreBatch(gomock.Len(numWorkers * perWorker)).Return(nil).Times(1)

		var wg sync.WaitGroup
		for w := 0; w < numWorkers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := 0; i < perWorker; i++ {
					_ = s.Consume(ctx, analysis())
				}
			}()
		}
		wg.Wait()
	})

	t.Run("Repository failure is reported", func(t *testing.T) {
		s := sink.NewAnalysisSink(mockRepo, nil, logger, 1, time.Second, time.Second)
		mockRepo.EXPECT().StoreBatch(gomock.Any()).Return(fmt.Errorf("disk full"))

		err := s.Consume(ctx, analysis())
		req.Error(err)
		req.Contains(err.Error(), "disk full")
	})

	t.Run("Explicit flush of a partial batch", func(t *testing.T) {
		s := sink.NewAnalysisSink(mockRepo, nil, logger, 10, time.Minute, time.Second)
		mockRepo.EXPECT().StoreBatch(gomock.Len(2)).Return(nil)

		req.NoError(s.Consume(ctx, analysis()))
		req.NoError(s.Consume(ctx, analysis()))
		req.NoError(s.Flush(ctx))

		// Nothing left to write
		req.NoError(s.Flush(ctx))
	})

	t.Run("Slow repository hits the store timeout", func(t *testing.T) {
		s := sink.NewAnalysisSink(mockRepo, nil, logger, 1, time.Second, 20*time.Millisecond)
		mockRepo.EXPECT().StoreBatch(gomock.Any()).DoAndReturn(func([]domain.MoodAnalysis) error {
			time.Sleep(200 * time.Millisecond)
			return nil
		})

		err := s.Consume(ctx, analysis())
		req.ErrorIs(err, context.DeadlineExceeded)
	})
}
