package domain

// AnalyzeCommand is one text to analyze. IncludeSong defaults to true at the HTTP layer.
type AnalyzeCommand struct {
	Text        string `validate:"required"`
	Language    string `validate:"omitempty,oneof=auto en es"`
	IncludeSong bool
}

// MaxBatchSize bounds the number of texts analyzed by one batch call.
const MaxBatchSize = 50
