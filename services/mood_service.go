package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"sentify/contract"
	"sentify/domain"
	"sentify/errors"
	"sentify/infrastructure/storage"
	"sentify/observability"
	"sentify/recommendation"
	"sentify/sentiment"

	"github.com/abadojack/whatlanggo"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type IMoodService interface {
	Analyze(ctx context.Context, cmd domain.AnalyzeCommand) (domain.MoodAnalysis, error)
	AnalyzeBatch(ctx context.Context, cmds []domain.AnalyzeCommand) ([]domain.MoodAnalysis, error)
	History(cursor *string, limit int) ([]domain.MoodAnalysis, *string, error)
	Get(id uuid.UUID) (domain.MoodAnalysis, error)
	Search(ctx context.Context, query, sentiment string, offset int) ([]domain.MoodAnalysis, uint64, error)
	Emotions() []domain.Emotion
}

// Censor masks the safeguard keywords of a text before it is stored.
type Censor interface {
	Censor(text string) (string, []string)
}

// EmotionCatalog lists the emotions the selector understands.
type EmotionCatalog interface {
	Emotions() []domain.Emotion
}

type MoodConfig struct {
	Backend           string
	ClassifierTimeout time.Duration
	MaxTextLength     int
	BatchConcurrency  int
}

// MoodService classifies a text, interprets the observations and picks a recommendation.
// Analyses are handed to the writer through a bounded channel and never block a caller.
type MoodService struct {
	log         *slog.Logger
	validate    *validator.Validate
	classifier  contract.Classifier
	interpreter *sentiment.Interpreter
	selector    *recommendation.Selector
	censor      Censor
	catalog     EmotionCatalog
	repository  storage.IAnalysisRepository
	monitor     *observability.MonitoringManager
	analyses    chan<- domain.MoodAnalysis
	cfg         MoodConfig
	now         func() time.Time
}

func NewMoodService(
	log *slog.Logger,
	classifier contract.Classifier,
	interpreter *sentiment.Interpreter,
	selector *recommendation.Selector,
	censor Censor,
	catalog EmotionCatalog,
	repository storage.IAnalysisRepository,
	monitor *observability.MonitoringManager,
	analyses chan<- domain.MoodAnalysis,
	cfg MoodConfig,
) *MoodService {
	if cfg.BatchConcurrency <= 0 {
		cfg.BatchConcurrency = 4
	}
	return &MoodService{
		log:         log,
		validate:    validator.New(),
		classifier:  classifier,
		interpreter: interpreter,
		selector:    selector,
		censor:      censor,
		catalog:     catalog,
		repository:  repository,
		monitor:     monitor,
		analyses:    analyses,
		cfg:         cfg,
		now:         time.Now,
	}
}

func (s *MoodService) Analyze(ctx context.Context, cmd domain.AnalyzeCommand) (domain.MoodAnalysis, error) {
	cmd.Text = strings.TrimSpace(cmd.Text)
	cmd.Language = strings.ToLower(strings.TrimSpace(cmd.Language))
	if err := s.validateCommand(cmd); err != nil {
		return domain.MoodAnalysis{}, err
	}

	observations := s.classify(ctx, cmd.Text)
	eval := s.interpreter.Evaluate(cmd.Text, observations)
	bundle := s.selector.Select(eval.Result.Emotions)

	analysis := domain.MoodAnalysis{
		ID:             uuid.New(),
		Text:           cmd.Text,
		Language:       detectLanguage(cmd.Text, cmd.Language),
		Result:         eval.Result,
		Recommendation: bundle,
		IncludeSong:    cmd.IncludeSong,
		SafeguardHits:  eval.Keywords,
		Overridden:     eval.Overridden,
		Backend:        s.cfg.Backend,
		At:             s.now().UTC(),
	}
	if s.censor != nil {
		if censored, words := s.censor.Censor(cmd.Text); len(words) > 0 {
			analysis.CensoredText = censored
		}
	}

	s.record(analysis)
	s.publish(analysis)
	return analysis, nil
}

// AnalyzeBatch keeps the order of cmds. Every command is validated before any classifier call.
func (s *MoodService) AnalyzeBatch(ctx context.Context, cmds []domain.AnalyzeCommand) ([]domain.MoodAnalysis, error) {
	switch {
	case len(cmds) == 0:
		return nil, errors.ErrEmptyBatch
	case len(cmds) > domain.MaxBatchSize:
		return nil, fmt.Errorf("%w: %d items, at most %d", errors.ErrBatchTooLarge, len(cmds), domain.MaxBatchSize)
	}
	for i, cmd := range cmds {
		cmd.Text = strings.TrimSpace(cmd.Text)
		cmd.Language = strings.ToLower(strings.TrimSpace(cmd.Language))
		if err := s.validateCommand(cmd); err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
	}

	results := make([]domain.MoodAnalysis, len(cmds))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.BatchConcurrency)
	for i, cmd := range cmds {
		g.Go(func() error {
			analysis, err := s.Analyze(gCtx, cmd)
			if err != nil {
				return err
			}
			results[i] = analysis
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (s *MoodService) History(cursor *string, limit int) ([]domain.MoodAnalysis, *string, error) {
	return s.repository.GetAnalyses(cursor, limit)
}

func (s *MoodService) Get(id uuid.UUID) (domain.MoodAnalysis, error) {
	return s.repository.GetByID(id)
}

func (s *MoodService) Search(ctx context.Context, query, sentiment string, offset int) ([]domain.MoodAnalysis, uint64, error) {
	return s.repository.Search(ctx, strings.TrimSpace(query), sentiment, offset)
}

func (s *MoodService) Emotions() []domain.Emotion {
	return s.catalog.Emotions()
}

func (s *MoodService) validateCommand(cmd domain.AnalyzeCommand) error {
	if err := s.validate.Struct(cmd); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidInput, err)
	}
	if s.cfg.MaxTextLength > 0 {
		if err := s.validate.Var(cmd.Text, fmt.Sprintf("max=%d", s.cfg.MaxTextLength)); err != nil {
			return fmt.Errorf("%w: text longer than %d characters", errors.ErrInvalidInput, s.cfg.MaxTextLength)
		}
	}
	return nil
}

// classify returns nil observations on failure, the interpreter turns them into the safe default.
func (s *MoodService) classify(ctx context.Context, text string) []domain.Observation {
	if s.cfg.ClassifierTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.ClassifierTimeout)
		defer cancel()
	}
	observations, err := s.classifier.Classify(ctx, text)
	if err != nil {
		s.log.Warn("Classifier unavailable", "backend", s.cfg.Backend, "error", err)
		if s.monitor != nil {
			s.monitor.IncrClassifierErrors()
		}
		return nil
	}
	return observations
}

func (s *MoodService) record(analysis domain.MoodAnalysis) {
	observability.RecordAnalysis(string(analysis.Result.Sentiment), analysis.Recommendation.Category, analysis.Overridden)
	if s.monitor == nil {
		return
	}
	s.monitor.IncrAnalyses()
	if analysis.Overridden {
		s.monitor.IncrOverrides()
	}
	s.monitor.AddRecent(observability.RecentAnalysis{
		ID:        analysis.ID.String(),
		Sentiment: string(analysis.Result.Sentiment),
		Category:  analysis.Recommendation.Category,
		Language:  string(analysis.Language),
	})
}

func (s *MoodService) publish(analysis domain.MoodAnalysis) {
	if s.analyses == nil {
		return
	}
	select {
	case s.analyses <- analysis:
	default:
		s.log.Warn("Analysis queue full, analysis not persisted", "id", analysis.ID)
		if s.monitor != nil {
			s.monitor.IncrDropped()
		}
	}
}

// detectLanguage keeps an explicit language and guesses it otherwise.
func detectLanguage(text, requested string) domain.Language {
	if requested != "" && requested != string(domain.LanguageAuto) {
		return domain.Language(requested)
	}
	code := whatlanggo.Detect(text).Lang.Iso6391()
	if code == "" {
		return domain.LanguageUnknown
	}
	return domain.Language(code)
}
