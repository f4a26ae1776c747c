package services

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"sentify/ai"
	"sentify/catalog"
	"sentify/domain"
	"sentify/infrastructure/storage"
	"sentify/moderation"
	"sentify/observability"
	"sentify/recommendation"
	"sentify/runtime/workers"
	"sentify/sentiment"
	"sentify/sink"

	"github.com/blugelabs/bluge"
	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/logs"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

// Test_Scenario runs analyses through the real classifier, writer and stores.
func Test_Scenario(t *testing.T) {
	ctx := context.Background()
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	// Reduced to 16 Mo for testing
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).
		WithLoggingLevel(badger.ERROR).
		WithValueLogFileSize(16 << 20))
	req.NoError(err)
	defer db.Close()
	writer, err := bluge.OpenWriter(bluge.DefaultConfig(t.TempDir()))
	req.NoError(err)
	defer writer.Close()

	repository := storage.NewAnalysisRepository(db, writer, log, lo.ToPtr(100), 20)
	monitor := observability.NewMonitoringManager(log)
	analyses := make(chan domain.MoodAnalysis, 16)

	mod, err := moderation.NewModerator(moderation.DefaultKeywords, '*', log)
	req.NoError(err)
	c, err := catalog.Default()
	req.NoError(err)
	service := NewMoodService(log, ai.NewLexicon(),
		sentiment.NewInterpreter(log, mod, 2),
		recommendation.NewSelector(c, recommendation.NewLockedSource(11)),
		mod, c, repository, monitor, analyses,
		MoodConfig{Backend: "lexicon", ClassifierTimeout: time.Second, MaxTextLength: 500, BatchConcurrency: 2},
	)

	// 1. Start the writer under supervision
	workerCtx, cancel := context.WithCancel(ctx)
	analysisSink := sink.NewAnalysisSink(repository, monitor, log, 100, time.Minute, time.Second)
	supervisor := workers.NewSupervisor(log)
	done := make(chan struct{})
	go func() {
		supervisor.Add(workers.NewAnalysisWriterWorker(log, analyses, analysisSink, time.Second)).Run(workerCtx)
		close(done)
	}()

	// 2. Analyze a batch
	results, err := service.AnalyzeBatch(ctx, []domain.AnalyzeCommand{
		{Text: "What a wonderful and amazing day", IncludeSong: true},
		{Text: "This is a terrible, awful experience"},
		{Text: "El servicio fue excelente, estoy muy feliz"},
	})
	req.NoError(err)
	req.Len(results, 3)
	req.Contains([]domain.Sentiment{domain.Positive, domain.VeryPositive}, results[0].Result.Sentiment)
	req.Contains([]domain.Sentiment{domain.Negative, domain.VeryNegative}, results[1].Result.Sentiment)
	req.NotEmpty(results[1].CensoredText)

	// 3. Stopping the writer flushes the partial batch
	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		req.Fail("writer did not stop")
	}

	// 4. Everything is readable, newest first, and searchable
	items, next, err := service.History(nil, 10)
	req.NoError(err)
	req.Nil(next)
	req.Len(items, 3)
	req.Equal(uint64(3), monitor.GetLatest().Persisted)

	stored, err := service.Get(results[2].ID)
	req.NoError(err)
	req.Equal(results[2].Text, stored.Text)

	found, total, err := service.Search(ctx, "terrible", "", 0)
	req.NoError(err)
	req.Equal(uint64(1), total)
	req.Equal(results[1].ID, found[0].ID)
}
