package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/lexicon-srs/internal/api/shared"
	"github.com/phrazzld/lexicon-srs/internal/domain"
	"github.com/phrazzld/lexicon-srs/internal/platform/logger"
	"github.com/phrazzld/lexicon-srs/internal/service/study"
)

// defaultNewWordsLimit caps GET /api/words/new when no limit is given.
const defaultNewWordsLimit = 20

// WordHandler handles word and study HTTP requests.
type WordHandler struct {
	studyService study.Service
	logger       *slog.Logger
}

// NewWordHandler creates a new WordHandler.
func NewWordHandler(studyService study.Service, logger *slog.Logger) *WordHandler {
	if studyService == nil {
		panic("studyService cannot be nil for WordHandler")
	}
	if logger == nil {
		panic("logger cannot be nil for WordHandler")
	}

	return &WordHandler{
		studyService: studyService,
		logger:       logger.With(slog.String("component", "word_handler")),
	}
}

// RegisterWords handles POST /api/words requests.
// Words that already exist are skipped; the response lists only new words.
func (h *WordHandler) RegisterWords(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	req, err := shared.DecodeRequest[RegisterWordsRequest](r)
	if err != nil {
		respondBadRequest(w, r, err)
		return
	}

	created, err := h.studyService.RegisterWords(r.Context(), req.IDs)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to register words")
		return
	}

	resp := RegisterWordsResponse{
		Created:   wordsToResponse(created).Words,
		Requested: len(req.IDs),
	}

	log.Debug("words registered",
		slog.Int("requested", len(req.IDs)),
		slog.Int("created", len(created)))
	shared.RespondWithJSON(w, r, http.StatusCreated, resp)
}

// GetWord handles GET /api/words/{id} requests.
func (h *WordHandler) GetWord(w http.ResponseWriter, r *http.Request) {
	id, err := getPathWordID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	word, err := h.studyService.GetWord(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get word")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, wordToResponse(word))
}

// GetHistory handles GET /api/words/{id}/history requests.
func (h *WordHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	id, err := getPathWordID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	events, err := h.studyService.WordHistory(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get word history")
		return
	}

	resp := HistoryResponse{WordID: id, Events: make([]StudyEventResponse, 0, len(events))}
	for i := range events {
		resp.Events = append(resp.Events, eventToResponse(&events[i]))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// SubmitAnswer handles POST /api/words/{id}/answer requests.
func (h *WordHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := getPathWordID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	req, err := shared.DecodeRequest[AnswerRequest](r)
	if err != nil {
		respondBadRequest(w, r, err)
		return
	}

	result, err := h.studyService.Answer(r.Context(), id, domain.AnswerQuality(req.Quality))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to record answer")
		return
	}

	log.Debug("answer recorded",
		slog.String("word_id", id),
		slog.String("quality", req.Quality),
		slog.Int("new_index", result.Word.IntervalIndex))

	shared.RespondWithJSON(w, r, http.StatusOK, AnswerResponse{
		Word:      wordToResponse(result.Word),
		Event:     eventToResponse(result.Event),
		ClockSkew: result.ClockSkew,
	})
}

// GetDueWords handles GET /api/words/due requests.
func (h *WordHandler) GetDueWords(w http.ResponseWriter, r *http.Request) {
	words, err := h.studyService.DueWords(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get due words")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, wordsToResponse(words))
}

// GetNewWords handles GET /api/words/new?limit= requests.
func (h *WordHandler) GetNewWords(w http.ResponseWriter, r *http.Request) {
	limit, err := getQueryInt(r, "limit", defaultNewWordsLimit, maxListLimit)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	words, err := h.studyService.NewWords(r.Context(), limit)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get new words")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, wordsToResponse(words))
}

// GetActivity handles GET /api/activity?days= requests.
func (h *WordHandler) GetActivity(w http.ResponseWriter, r *http.Request) {
	days, err := getQueryInt(r, "days", 0, maxActivityDays)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	report, err := h.studyService.Activity(r.Context(), days)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get activity")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, activityToResponse(report))
}

// GetReminders handles GET /api/reminders?thresholds= requests.
func (h *WordHandler) GetReminders(w http.ResponseWriter, r *http.Request) {
	thresholds, err := getQueryThresholds(r, "thresholds")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	report, err := h.studyService.Thresholds(r.Context(), thresholds)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to evaluate reminders")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, thresholdsToResponse(report))
}
