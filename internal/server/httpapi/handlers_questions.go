package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrijs2005/englishhq/internal/common"
	"github.com/dmitrijs2005/englishhq/internal/server/services"
)

type askRequest struct {
	Question string `json:"question"`
}

func (h *Handler) ask(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}
	if req.Question == "" {
		writeDetail(w, http.StatusUnprocessableEntity, "Question must not be empty")
		return
	}

	user := userFromContext(r.Context())

	rec, err := h.questions.Ask(r.Context(), user, req.Question)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrInsufficientBalance):
			writeDetail(w, http.StatusPaymentRequired, "Insufficient balance. Please recharge your account.")
		case errors.Is(err, services.ErrNoAPIKey):
			writeDetail(w, http.StatusServiceUnavailable, "No available API key. Please try again later.")
		case errors.Is(err, services.ErrProviderFailure):
			writeDetail(w, http.StatusServiceUnavailable, fmt.Sprintf("Failed to call API: %s", err))
		default:
			h.log.Error(r.Context(), "answering question", "error", err)
			writeDetail(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, toQuestionResponse(rec))
}

func (h *Handler) history(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	recs, err := h.questions.History(r.Context(), user.ID)
	if err != nil {
		h.log.Error(r.Context(), "loading history", "error", err)
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	out := make([]questionResponse, 0, len(recs))
	for i := range recs {
		out = append(out, toQuestionResponse(&recs[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) record(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "recordID"), 10, 64)
	if err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "Invalid record id")
		return
	}

	user := userFromContext(r.Context())

	rec, err := h.questions.Record(r.Context(), id, user.ID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			writeDetail(w, http.StatusNotFound, "Question record not found")
			return
		}
		h.log.Error(r.Context(), "loading record", "error", err)
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, toQuestionResponse(rec))
}
