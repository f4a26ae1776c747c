package sentiment

import (
	"log/slog"
	"slices"
	"sort"

	"sentify/domain"

	"github.com/samber/lo"
)

// KeywordMatcher finds strong negative keywords in a text.
type KeywordMatcher interface {
	Matches(text string) []string
}

// Interpreter turns classifier observations into a SentimentResult.
// It holds no mutable state and is safe for concurrent use.
type Interpreter struct {
	log          *slog.Logger
	safeguard    KeywordMatcher
	triggerAbove domain.RatingLevel
}

// Evaluation is an interpreted result along with how it was reached.
type Evaluation struct {
	Result       domain.SentimentResult
	ParsedRating domain.RatingLevel
	Rating       domain.RatingLevel
	Keywords     []string
	Overridden   bool
}

// NewInterpreter forces ratings strictly above triggerAbove down to the minimum when safeguard finds a keyword.
// A nil safeguard disables the override.
func NewInterpreter(log *slog.Logger, safeguard KeywordMatcher, triggerAbove domain.RatingLevel) *Interpreter {
	return &Interpreter{log: log, safeguard: safeguard, triggerAbove: triggerAbove}
}

// SafeDefault is returned whenever observations cannot be interpreted.
func SafeDefault() domain.SentimentResult {
	return domain.SentimentResult{
		Sentiment:  domain.Neutral,
		Score:      0,
		Confidence: 0,
		Emotions:   []string{domain.ErrorEmotion},
		Intensity:  domain.Low,
		RawScores:  map[string]float64{},
	}
}

// Interpret turns classifier observations for text into a SentimentResult.
func (i *Interpreter) Interpret(text string, observations []domain.Observation) domain.SentimentResult {
	return i.Evaluate(text, observations).Result
}

// Evaluate never panics, unusable observations yield SafeDefault.
func (i *Interpreter) Evaluate(text string, observations []domain.Observation) (eval Evaluation) {
	defer func() {
		if r := recover(); r != nil {
			i.log.Error("Interpretation failed, falling back to safe default", "panic", r)
			eval = safeEvaluation()
		}
	}()

	if len(observations) == 0 {
		i.log.Debug("No observations to interpret")
		return safeEvaluation()
	}
	if bad, found := lo.Find(observations, func(o domain.Observation) bool { return !o.WellFormed() }); found {
		i.log.Debug("Malformed observation", "label", bad.Label, "probability", bad.Probability)
		return safeEvaluation()
	}

	ranked := slices.Clone(observations)
	sort.SliceStable(ranked, func(a, b int) bool { return ranked[a].Probability > ranked[b].Probability })
	top := ranked[0]

	parsed := ParseRating(top.Label)
	rating := parsed
	var keywords []string
	if i.safeguard != nil {
		keywords = i.safeguard.Matches(text)
	}
	overridden := len(keywords) > 0 && parsed > i.triggerAbove
	if overridden {
		rating = domain.MinRating
		i.log.Debug("Safeguard override", "parsed", parsed, "keywords", keywords)
	}

	row := Lookup(rating)
	return Evaluation{
		Result: domain.SentimentResult{
			Sentiment:  row.Sentiment,
			Score:      top.Probability,
			Confidence: top.Probability,
			Emotions:   row.Emotions,
			Intensity:  row.Intensity,
			RawScores:  rawScores(observations),
		},
		ParsedRating: parsed,
		Rating:       rating,
		Keywords:     keywords,
		Overridden:   overridden,
	}
}

func rawScores(observations []domain.Observation) map[string]float64 {
	return lo.SliceToMap(observations, func(o domain.Observation) (string, float64) {
		return o.Label, o.Probability
	})
}

func safeEvaluation() Evaluation {
	return Evaluation{
		Result:       SafeDefault(),
		ParsedRating: domain.DefaultRating,
		Rating:       domain.DefaultRating,
	}
}
