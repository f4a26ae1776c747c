package domain

// NeutralCategory must exist in every catalog, it is the fallback of the selector.
const NeutralCategory = "neutral"

type Polarity string

const (
	PolarityPositive Polarity = "positive"
	PolarityNeutral  Polarity = "neutral"
	PolarityNegative Polarity = "negative"
)

type Song struct {
	Title  string `json:"title" validate:"required"`
	Artist string `json:"artist" validate:"required"`
	Genre  string `json:"genre,omitempty"`
	URL    string `json:"url,omitempty" validate:"omitempty,url"`
}

type Color struct {
	Hex     string `json:"hex" validate:"required,hexcolor"`
	Name    string `json:"name" validate:"required"`
	Meaning string `json:"meaning,omitempty"`
}

type Quote struct {
	Text   string `json:"text" validate:"required"`
	Author string `json:"author" validate:"required"`
}

type CategoryBundle struct {
	Polarity Polarity `json:"polarity,omitempty" validate:"omitempty,oneof=positive neutral negative"`
	Songs    []Song   `json:"songs" validate:"required,min=1,dive"`
	Color    Color    `json:"color" validate:"required"`
	Quotes   []Quote  `json:"quotes" validate:"required,min=1,dive"`
}

// RecommendationBundle is one song, the category color and one quote.
type RecommendationBundle struct {
	Category string `json:"category"`
	Song     Song   `json:"song"`
	Color    Color  `json:"color"`
	Quote    Quote  `json:"quote"`
}

// Emotion describes an emotion name the selector understands.
type Emotion struct {
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Polarity Polarity `json:"polarity,omitempty"`
	Synonym  bool     `json:"synonym"`
}
