package domain

import "math"

type Sentiment string

const (
	VeryNegative Sentiment = "Very Negative"
	Negative     Sentiment = "Negative"
	Neutral      Sentiment = "Neutral"
	Positive     Sentiment = "Positive"
	VeryPositive Sentiment = "Very Positive"
)

type Intensity string

const (
	Low     Intensity = "Low"
	Medium  Intensity = "Medium"
	High    Intensity = "High"
	Extreme Intensity = "Extreme"
)

// ErrorEmotion is the only emotion carried by a result built from unusable classifier output.
const ErrorEmotion = "error"

// RatingLevel is the 1..5 star scale classifiers report on.
type RatingLevel int

const (
	MinRating     RatingLevel = 1
	DefaultRating RatingLevel = 3
	MaxRating     RatingLevel = 5
)

func (r RatingLevel) Valid() bool {
	return r >= MinRating && r <= MaxRating
}

// Observation is one (label, probability) pair emitted by a classifier.
type Observation struct {
	Label       string  `json:"label"`
	Probability float64 `json:"score"`
}

// WellFormed reports whether the probability is a finite number in [0, 1].
func (o Observation) WellFormed() bool {
	p := o.Probability
	return !math.IsNaN(p) && !math.IsInf(p, 0) && p >= 0 && p <= 1
}

type SentimentResult struct {
	Sentiment  Sentiment          `json:"sentiment"`
	Score      float64            `json:"score"`
	Confidence float64            `json:"confidence"`
	Emotions   []string           `json:"emotions"`
	Intensity  Intensity          `json:"intensity"`
	RawScores  map[string]float64 `json:"raw_scores,omitempty"`
}

// Failed reports whether the result is the safe default produced for unusable input.
func (r SentimentResult) Failed() bool {
	return len(r.Emotions) == 1 && r.Emotions[0] == ErrorEmotion
}
