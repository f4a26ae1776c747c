package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"sentify/catalog"
	"sentify/classifier"
	"sentify/domain"
	"sentify/infrastructure/rest"
	"sentify/infrastructure/storage"
	"sentify/internal"
	"sentify/moderation"
	"sentify/observability"
	"sentify/recommendation"
	"sentify/runtime/workers"
	"sentify/sentiment"
	"sentify/services"
	"sentify/sink"

	"github.com/blugelabs/bluge"
	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/mama165/sdk-go/database"
	"github.com/mama165/sdk-go/logs"
	"github.com/samber/lo"
)

// Exit codes to provide meaningful status to the operating system or service manager (e.g., systemd).
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Server terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run wires every component and owns the shutdown order:
// HTTP first so no analysis is accepted anymore, then the workers flush, then the stores close.
func run() (int, error) {
	// 1. Configuration & Logger
	config, err := internal.Load()
	if err != nil {
		return exitConfig, err
	}
	charReplacement, err := internal.CharacterRune(config.CharReplacement)
	if err != nil {
		return exitConfig, err
	}
	logger := logs.GetLoggerFromString(config.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	// The sidecar and the workers outlive the signal ctx until HTTP has drained.
	appCtx, cancelApp := context.WithCancel(context.Background())
	defer cancelApp()

	// 2. Catalog & safeguard, a misconfiguration never reaches the first request
	moodCatalog, err := loadCatalog(config.CatalogPath)
	if err != nil {
		return exitConfig, err
	}
	keywords := config.Keywords()
	if len(keywords) == 0 {
		keywords = moderation.DefaultKeywords
	}
	moderator, err := moderation.NewModerator(keywords, charReplacement, logger)
	if err != nil {
		return exitConfig, err
	}

	// 3. Stores
	db, err := badger.Open(buildBadgerOpts(config, logger, ctx))
	if err != nil {
		return exitRuntime, fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		logger.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	if logger.Enabled(ctx, slog.LevelDebug) {
		endpoint := "/inspect"
		logger.Info("Debug Badger inspector available", "url", fmt.Sprintf("http://localhost:%d%s", config.DebugPort, endpoint))
		database.StartDebugServer(db, config.DebugPort, endpoint, AnalysisMapper)
	}

	blugeWriter, err := bluge.OpenWriter(bluge.DefaultConfig(config.BlugeFilepath))
	if err != nil {
		return exitRuntime, fmt.Errorf("failed to open bluge writer: %w", err)
	}
	defer func() {
		logger.Info("Closing Bluge...")
		_ = blugeWriter.Close()
	}()
	repository := storage.NewAnalysisRepository(db, blugeWriter, logger, config.LimitAnalyses, 50)

	// 4. Classifier
	handle, err := classifier.New(appCtx, classifier.Options{
		Backend:          classifier.Backend(config.ClassifierBackend),
		Timeout:          config.ClassifierTimeout,
		BinPath:          config.ClassifierBinPath,
		Host:             config.ClassifierHost,
		Port:             config.ClassifierPort,
		LogLevel:         config.LogLevel,
		BootTimeout:      config.ClassifierBoot,
		HuggingFaceURL:   config.HuggingFaceURL,
		HuggingFaceModel: config.HuggingFaceModel,
		HuggingFaceToken: config.HuggingFaceToken,
		Breaker: classifier.BreakerConfig{
			FailureThreshold: uint32(config.BreakerFailureThreshold),
			Timeout:          config.BreakerTimeout,
		},
	}, logger)
	if err != nil {
		return exitRuntime, fmt.Errorf("classifier init failed: %w", err)
	}
	defer handle.Close()

	// 5. Workers
	monitor := observability.NewMonitoringManager(logger)
	nodes := domain.NewGlobalMonitoring()
	analyses := make(chan domain.MoodAnalysis, config.AnalysisBufferSize)
	analysisSink := sink.NewAnalysisSink(repository, monitor, logger, config.MaxAnalyzedEvent, config.BufferTimeout, config.SinkTimeout)

	tracked := []workers.TrackedProcess{
		{ID: "server", Type: domain.SERVER, PID: func() int32 { return int32(os.Getpid()) }},
	}
	if handle.Sidecar != nil {
		tracked = append(tracked, workers.TrackedProcess{
			ID:   handle.Sidecar.ID,
			Type: domain.CLASSIFIER,
			PID:  func() int32 { return int32(handle.Sidecar.PID()) },
		})
	}

	sup := workers.NewSupervisor(logger)
	sup.Add(
		workers.NewAnalysisWriterWorker(logger, analyses, analysisSink, config.SinkTimeout),
		workers.NewHealthMonitoringWorker(logger, tracked, nodes, monitor, analyses, config.MetricInterval),
	)
	supervisorDone := make(chan struct{})
	go func() {
		sup.Run(appCtx)
		close(supervisorDone)
	}()
	go monitor.Listen(appCtx, config.MetricInterval)

	// 6. Service & HTTP
	service := services.NewMoodService(
		logger,
		handle,
		sentiment.NewInterpreter(logger, moderator, domain.RatingLevel(config.SafeguardTriggerAbove)),
		recommendation.NewSelector(moodCatalog, recommendation.NewRandomSource(config.RandomSeed)),
		moderator,
		moodCatalog,
		repository,
		monitor,
		analyses,
		services.MoodConfig{
			Backend:           string(handle.Backend),
			ClassifierTimeout: config.ClassifierTimeout,
			MaxTextLength:     config.MaxTextLength,
			BatchConcurrency:  config.BatchConcurrency,
		},
	)
	router := rest.NewRouter(logger, service, rest.Health{
		Monitor: monitor,
		Nodes:   nodes,
		Backend: string(handle.Backend),
		Breaker: handle.State,
	}, rest.Config{
		AllowedOrigins:    config.AllowedOrigins(),
		RateLimitRequests: config.RateLimitRequests,
		RateLimitWindow:   config.RateLimitWindow,
	})

	address := net.JoinHostPort(config.Host, strconv.Itoa(config.Port))
	httpServer := &http.Server{
		Addr:              address,
		Handler:           router.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", "address", address, "backend", handle.Backend, "at", time.Now().UTC())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// 7. Wait for Stop or Error
	code := exitOK
	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case runErr = <-errChan:
		code = exitRuntime
	}

	// 8. Final Cleanup (Graceful Shutdown)
	logger.Info("Shutting down gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("HTTP shutdown incomplete", "error", err)
	}

	sup.Stop()
	cancelApp()
	select {
	case <-supervisorDone:
	case <-shutdownCtx.Done():
		logger.Warn("Workers did not stop in time")
	}
	logger.Info("Program stopped cleanly", "persisted", monitor.GetLatest().Persisted)
	return code, runErr
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default()
	}
	return catalog.LoadFile(path)
}

func buildBadgerOpts(config internal.Config, logger *slog.Logger, ctx context.Context) badger.Options {
	options := badger.DefaultOptions(config.BadgerFilepath)

	if logger.Enabled(ctx, slog.LevelDebug) {
		options = options.WithLoggingLevel(badger.DEBUG).
			WithBypassLockGuard(true)
	} else {
		options = options.WithLoggingLevel(badger.WARNING)
	}
	return options
}

// AnalysisMapper renders a stored analysis in the debug inspector. Index keys are shown raw.
func AnalysisMapper(key string, val []byte) database.InspectRow {
	row := database.DefaultMapper(key, val)
	if !strings.HasPrefix(key, "analysis:") {
		row.Type = "INDEX"
		return row
	}

	var analysis domain.MoodAnalysis
	if err := json.Unmarshal(val, &analysis); err != nil {
		row.Detail = "Error: unmarshal failed"
		return row
	}

	row.Type = strings.ToUpper(string(analysis.Result.Sentiment))
	row.Detail = lo.Ternary(analysis.CensoredText != "", analysis.CensoredText, analysis.Text)
	scores := ""
	for label, score := range analysis.Result.RawScores {
		scores += fmt.Sprintf("%s:%.2f ", label, score)
	}
	row.Scores = scores
	return row
}
