package ai

import (
	"context"
	"fmt"
	"math"
	"strings"
	"unicode"

	"sentify/domain"

	"github.com/samber/lo"
)

const (
	// normalization keeps the summed valence inside (-1, 1), larger means slower saturation.
	normalization = 15.0
	negationSpan  = 3
	negationDamp  = -0.75
	spread        = 0.8
)

// Labels are the star labels emitted by every backend, most negative first.
var Labels = []string{"1 star", "2 stars", "3 stars", "4 stars", "5 stars"}

// Lexicon is a deterministic English/Spanish valence classifier.
// It is used offline and as the engine of the classifier sidecar.
type Lexicon struct {
	valence      map[string]float64
	negators     map[string]struct{}
	intensifiers map[string]float64
}

func NewLexicon() *Lexicon {
	return &Lexicon{
		valence:      defaultValence,
		negators:     lo.SliceToMap(defaultNegators, func(w string) (string, struct{}) { return w, struct{}{} }),
		intensifiers: defaultIntensifiers,
	}
}

// Classify returns one observation per star label, probabilities sum to one.
func (l *Lexicon) Classify(ctx context.Context, text string) ([]domain.Observation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	center := 3 + 2*l.Score(text)

	weights := make([]float64, len(Labels))
	var total float64
	for i := range Labels {
		d := float64(i+1) - center
		weights[i] = math.Exp(-(d * d) / (2 * spread * spread))
		total += weights[i]
	}
	return lo.Map(Labels, func(label string, i int) domain.Observation {
		return domain.Observation{Label: label, Probability: weights[i] / total}
	}), nil
}

// Score is the normalized valence of text in (-1, 1), 0 when nothing is known.
func (l *Lexicon) Score(text string) float64 {
	tokens := Tokenize(text)
	var sum float64
	for i, token := range tokens {
		v, ok := l.valence[token]
		if !ok {
			continue
		}
		for j := max(0, i-negationSpan); j < i; j++ {
			if factor, ok := l.intensifiers[tokens[j]]; ok && j == i-1 {
				v *= factor
			}
			if _, ok := l.negators[tokens[j]]; ok {
				v *= negationDamp
			}
		}
		sum += v
	}
	return sum / math.Sqrt(sum*sum+normalization)
}

// Tokenize lowers text and splits it on anything that is neither a letter nor an apostrophe.
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && r != '\''
	})
}

func (l *Lexicon) String() string {
	return fmt.Sprintf("lexicon(%d words)", len(l.valence))
}
