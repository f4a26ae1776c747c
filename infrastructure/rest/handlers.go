package rest

import (
	"fmt"
	"net/http"
	"strconv"

	"sentify/domain"
	"sentify/domain/mimetypes"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

const maxHistoryLimit = 100

var sentiments = []domain.Sentiment{domain.VeryNegative, domain.Negative, domain.Neutral, domain.Positive, domain.VeryPositive}

func (rt *Router) analyze(w http.ResponseWriter, r *http.Request) {
	var body analyzeRequest
	if !rt.decode(w, r, &body) {
		return
	}
	analysis, err := rt.service.Analyze(r.Context(), body.toCommand())
	if err != nil {
		rt.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toMoodResponse(analysis, isDebug(r)))
}

func (rt *Router) analyzeBatch(w http.ResponseWriter, r *http.Request) {
	var body []analyzeRequest
	if !rt.decode(w, r, &body) {
		return
	}
	cmds := lo.Map(body, func(b analyzeRequest, _ int) domain.AnalyzeCommand { return b.toCommand() })
	analyses, err := rt.service.AnalyzeBatch(r.Context(), cmds)
	if err != nil {
		rt.fail(w, err)
		return
	}
	debug := isDebug(r)
	writeJSON(w, http.StatusOK, batchResponse{
		Total:   len(analyses),
		Results: lo.Map(analyses, func(a domain.MoodAnalysis, _ int) moodResponse { return toMoodResponse(a, debug) }),
	})
}

func (rt *Router) emotions(w http.ResponseWriter, _ *http.Request) {
	emotions := rt.service.Emotions()
	writeJSON(w, http.StatusOK, emotionsResponse{Total: len(emotions), Emotions: emotions})
}

func (rt *Router) history(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	limit, err := intParam(query.Get("limit"), 0)
	if err != nil || limit < 0 || limit > maxHistoryLimit {
		writeError(w, http.StatusUnprocessableEntity, "validation failed", fmt.Errorf("limit must be between 1 and %d", maxHistoryLimit))
		return
	}
	var cursor *string
	if c := query.Get("cursor"); c != "" {
		cursor = &c
	}

	items, next, err := rt.service.History(cursor, limit)
	if err != nil {
		rt.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, historyResponse{Items: lo.Ternary(items == nil, []domain.MoodAnalysis{}, items), NextCursor: next})
}

func (rt *Router) search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	offset, err := intParam(query.Get("offset"), 0)
	if err != nil || offset < 0 {
		writeError(w, http.StatusUnprocessableEntity, "validation failed", fmt.Errorf("offset must be a positive integer"))
		return
	}
	sentiment := query.Get("sentiment")
	if sentiment != "" && !lo.Contains(sentiments, domain.Sentiment(sentiment)) {
		writeError(w, http.StatusUnprocessableEntity, "validation failed", fmt.Errorf("unknown sentiment %q", sentiment))
		return
	}

	items, total, err := rt.service.Search(r.Context(), query.Get("q"), sentiment, offset)
	if err != nil {
		rt.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, searchResponse{Total: total, Items: lo.Ternary(items == nil, []domain.MoodAnalysis{}, items)})
}

func (rt *Router) getAnalysis(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid analysis id", err)
		return
	}
	analysis, err := rt.service.Get(id)
	if err != nil {
		rt.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}

// decode enforces a JSON content type and a bounded body. It writes the error response itself.
func (rt *Router) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if ct := r.Header.Get("Content-Type"); ct != "" {
		if _, ok := mimetypes.Matches(ct, mimetypes.ApplicationJSON); !ok {
			writeError(w, http.StatusUnsupportedMediaType, "unsupported media type", fmt.Errorf("expected %s, got %s", mimetypes.ApplicationJSON, ct))
			return false
		}
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", err)
		return false
	}
	return true
}

func (rt *Router) fail(w http.ResponseWriter, err error) {
	status, message := statusOf(err)
	if status == http.StatusInternalServerError {
		rt.log.Error("Request failed", "error", err)
		writeError(w, status, message, nil)
		return
	}
	writeError(w, status, message, err)
}

func isDebug(r *http.Request) bool {
	debug, _ := strconv.ParseBool(r.URL.Query().Get("debug"))
	return debug
}

func intParam(raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}
