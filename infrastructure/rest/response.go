package rest

import (
	stdErrors "errors"
	"net/http"
	"time"

	"sentify/domain"
	"sentify/errors"

	"github.com/goccy/go-json"
	"github.com/samber/lo"
)

type errorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

type analyzeRequest struct {
	Text        string `json:"text"`
	Language    string `json:"language"`
	IncludeSong *bool  `json:"include_song"`
}

func (r analyzeRequest) toCommand() domain.AnalyzeCommand {
	return domain.AnalyzeCommand{
		Text:        r.Text,
		Language:    r.Language,
		IncludeSong: lo.FromPtrOr(r.IncludeSong, true),
	}
}

type recommendationResponse struct {
	Color domain.Color `json:"color"`
	Quote domain.Quote `json:"quote"`
	Song  *domain.Song `json:"song,omitempty"`
}

type moodResponse struct {
	ID             string                 `json:"id"`
	Sentiment      domain.Sentiment       `json:"sentiment"`
	Score          float64                `json:"score"`
	Confidence     float64                `json:"confidence"`
	Emotions       []string               `json:"emotions"`
	Intensity      domain.Intensity       `json:"intensity"`
	Language       domain.Language        `json:"language"`
	Category       string                 `json:"category"`
	Recommendation recommendationResponse `json:"recommendation"`
	RawScores      map[string]float64     `json:"raw_scores,omitempty"`
	Timestamp      time.Time              `json:"timestamp"`
}

func toMoodResponse(a domain.MoodAnalysis, debug bool) moodResponse {
	resp := moodResponse{
		ID:         a.ID.String(),
		Sentiment:  a.Result.Sentiment,
		Score:      a.Result.Score,
		Confidence: a.Result.Confidence,
		Emotions:   a.Result.Emotions,
		Intensity:  a.Result.Intensity,
		Language:   a.Language,
		Category:   a.Recommendation.Category,
		Recommendation: recommendationResponse{
			Color: a.Recommendation.Color,
			Quote: a.Recommendation.Quote,
		},
		Timestamp: a.At,
	}
	if a.IncludeSong {
		resp.Recommendation.Song = lo.ToPtr(a.Recommendation.Song)
	}
	if debug {
		resp.RawScores = a.Result.RawScores
	}
	return resp
}

type batchResponse struct {
	Total   int            `json:"total"`
	Results []moodResponse `json:"results"`
}

type historyResponse struct {
	Items      []domain.MoodAnalysis `json:"items"`
	NextCursor *string               `json:"next_cursor"`
}

type searchResponse struct {
	Total uint64                `json:"total"`
	Items []domain.MoodAnalysis `json:"items"`
}

type emotionsResponse struct {
	Total    int              `json:"total"`
	Emotions []domain.Emotion `json:"emotions"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := errorResponse{Error: message}
	if err != nil {
		resp.Detail = err.Error()
	}
	writeJSON(w, status, resp)
}

// statusOf maps service errors to HTTP statuses.
func statusOf(err error) (int, string) {
	switch {
	case stdErrors.Is(err, errors.ErrInvalidInput), stdErrors.Is(err, errors.ErrEmptyBatch):
		return http.StatusUnprocessableEntity, "validation failed"
	case stdErrors.Is(err, errors.ErrBatchTooLarge):
		return http.StatusRequestEntityTooLarge, "batch too large"
	case stdErrors.Is(err, errors.ErrAnalysisNotFound):
		return http.StatusNotFound, "analysis not found"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}
