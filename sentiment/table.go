package sentiment

import (
	"slices"

	"sentify/domain"
)

// Row is what a rating level means once interpreted.
type Row struct {
	Sentiment domain.Sentiment
	Emotions  []string
	Intensity domain.Intensity
}

// table is the single place where a rating turns into a sentiment.
var table = map[domain.RatingLevel]Row{
	1: {Sentiment: domain.VeryNegative, Emotions: []string{"sadness", "frustration"}, Intensity: domain.Extreme},
	2: {Sentiment: domain.Negative, Emotions: []string{"annoyance", "disappointment"}, Intensity: domain.Medium},
	3: {Sentiment: domain.Neutral, Emotions: []string{"calm", "indifference"}, Intensity: domain.Low},
	4: {Sentiment: domain.Positive, Emotions: []string{"satisfaction", "gratitude"}, Intensity: domain.Medium},
	5: {Sentiment: domain.VeryPositive, Emotions: []string{"joy", "excitement"}, Intensity: domain.High},
}

// Lookup returns a copy of the row for rating, out of range ratings read the neutral row.
func Lookup(rating domain.RatingLevel) Row {
	row, ok := table[rating]
	if !ok {
		row = table[domain.DefaultRating]
	}
	row.Emotions = slices.Clone(row.Emotions)
	return row
}

// Emotions lists every emotion the table can produce, most negative rating first.
func Emotions() []string {
	var out []string
	for r := domain.MinRating; r <= domain.MaxRating; r++ {
		out = append(out, table[r].Emotions...)
	}
	return out
}
