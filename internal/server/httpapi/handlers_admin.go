package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrijs2005/englishhq/internal/common"
	"github.com/dmitrijs2005/englishhq/internal/server/models"
	"github.com/dmitrijs2005/englishhq/internal/server/repositories/apikeys"
)

type createAPIKeyRequest struct {
	KeyName  string  `json:"key_name"`
	APIKey   string  `json:"api_key"`
	Provider string  `json:"provider"`
	Balance  float64 `json:"balance"`
	IsActive *bool   `json:"is_active"`
	Priority *int    `json:"priority"`
}

func (h *Handler) createAPIKey(w http.ResponseWriter, r *http.Request) {
	var req createAPIKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}
	if req.KeyName == "" || req.APIKey == "" || req.Provider == "" {
		writeDetail(w, http.StatusUnprocessableEntity, "key_name, api_key and provider are required")
		return
	}

	key := &models.APIKey{
		KeyName:  req.KeyName,
		APIKey:   req.APIKey,
		Provider: req.Provider,
		Balance:  req.Balance,
		IsActive: true,
		Priority: 1,
	}
	if req.IsActive != nil {
		key.IsActive = *req.IsActive
	}
	if req.Priority != nil {
		key.Priority = *req.Priority
	}

	key, err := h.apiKeys.Create(r.Context(), key)
	if err != nil {
		h.log.Error(r.Context(), "creating api key", "error", err)
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, toAPIKeyResponse(key))
}

func (h *Handler) listAPIKeys(w http.ResponseWriter, r *http.Request) {
	keys, err := h.apiKeys.List(r.Context())
	if err != nil {
		h.log.Error(r.Context(), "listing api keys", "error", err)
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	out := make([]apiKeyResponse, 0, len(keys))
	for i := range keys {
		out = append(out, toAPIKeyResponse(&keys[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

func keyIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "keyID"), 10, 64)
}

func (h *Handler) getAPIKey(w http.ResponseWriter, r *http.Request) {
	id, err := keyIDParam(r)
	if err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "Invalid API key id")
		return
	}

	key, err := h.apiKeys.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			writeDetail(w, http.StatusNotFound, "API key not found")
			return
		}
		h.log.Error(r.Context(), "fetching api key", "error", err)
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, toAPIKeyResponse(key))
}

type updateAPIKeyRequest struct {
	KeyName  *string  `json:"key_name"`
	APIKey   *string  `json:"api_key"`
	Provider *string  `json:"provider"`
	Balance  *float64 `json:"balance"`
	IsActive *bool    `json:"is_active"`
	Priority *int     `json:"priority"`
}

func (h *Handler) updateAPIKey(w http.ResponseWriter, r *http.Request) {
	id, err := keyIDParam(r)
	if err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "Invalid API key id")
		return
	}

	var req updateAPIKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}

	key, err := h.apiKeys.Update(r.Context(), id, apikeys.Update{
		KeyName:  req.KeyName,
		APIKey:   req.APIKey,
		Provider: req.Provider,
		Balance:  req.Balance,
		IsActive: req.IsActive,
		Priority: req.Priority,
	})
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			writeDetail(w, http.StatusNotFound, "API key not found")
			return
		}
		h.log.Error(r.Context(), "updating api key", "error", err)
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, toAPIKeyResponse(key))
}

func (h *Handler) deleteAPIKey(w http.ResponseWriter, r *http.Request) {
	id, err := keyIDParam(r)
	if err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "Invalid API key id")
		return
	}

	if err := h.apiKeys.Delete(r.Context(), id); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			writeDetail(w, http.StatusNotFound, "API key not found")
			return
		}
		h.log.Error(r.Context(), "deleting api key", "error", err)
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		h.log.Error(r.Context(), "listing users", "error", err)
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	out := make([]userResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

func userIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	id, err := userIDParam(r)
	if err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "Invalid user id")
		return
	}

	user, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			writeDetail(w, http.StatusNotFound, "User not found")
			return
		}
		h.log.Error(r.Context(), "fetching user", "error", err)
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}

func (h *Handler) setUserActive(w http.ResponseWriter, r *http.Request, active bool) {
	id, err := userIDParam(r)
	if err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "Invalid user id")
		return
	}

	user, err := h.users.SetActive(r.Context(), id, active)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			writeDetail(w, http.StatusNotFound, "User not found")
			return
		}
		h.log.Error(r.Context(), "updating user", "error", err)
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}

func (h *Handler) activateUser(w http.ResponseWriter, r *http.Request) {
	h.setUserActive(w, r, true)
}

func (h *Handler) deactivateUser(w http.ResponseWriter, r *http.Request) {
	h.setUserActive(w, r, false)
}
