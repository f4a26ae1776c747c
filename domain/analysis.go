package domain

import (
	"time"

	"github.com/google/uuid"
)

type Language string

const (
	LanguageAuto    Language = "auto"
	LanguageEnglish Language = "en"
	LanguageSpanish Language = "es"
	LanguageUnknown Language = "und"
)

// MoodAnalysis is the persisted outcome of one analyzed text.
type MoodAnalysis struct {
	ID             uuid.UUID            `json:"id"`
	Text           string               `json:"text"`
	CensoredText   string               `json:"censored_text,omitempty"`
	Language       Language             `json:"language"`
	Result         SentimentResult      `json:"result"`
	Recommendation RecommendationBundle `json:"recommendation"`
	IncludeSong    bool                 `json:"include_song"`
	SafeguardHits  []string             `json:"safeguard_hits,omitempty"`
	Overridden     bool                 `json:"overridden"`
	Backend        string               `json:"backend,omitempty"`
	At             time.Time            `json:"at"`
}
