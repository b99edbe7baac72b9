package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/englishhq/internal/server/services"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		writeDetail(w, http.StatusUnprocessableEntity, "username, email and password are required")
		return
	}

	user, err := h.users.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUsernameTaken):
			writeDetail(w, http.StatusBadRequest, "Username already registered")
		case errors.Is(err, services.ErrEmailTaken):
			writeDetail(w, http.StatusBadRequest, "Email already registered")
		default:
			h.log.Error(r.Context(), "registering user", "error", err)
			writeDetail(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// token implements the OAuth2 password flow endpoint: credentials arrive
// form-url-encoded, the response carries a bearer access token.
func (h *Handler) token(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	token, err := h.users.Login(r.Context(), username, password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			writeDetail(w, http.StatusUnauthorized, "Incorrect username or password")
			return
		}
		h.log.Error(r.Context(), "logging user in", "error", err)
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toUserResponse(userFromContext(r.Context())))
}

type rechargeRequest struct {
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
}

type rechargeResponse struct {
	Balance float64 `json:"balance"`
}

func (h *Handler) recharge(w http.ResponseWriter, r *http.Request) {
	var req rechargeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}
	if req.Amount <= 0 {
		writeDetail(w, http.StatusUnprocessableEntity, "Amount must be greater than 0")
		return
	}

	user := userFromContext(r.Context())

	balance, err := h.users.Recharge(r.Context(), user.ID, req.Amount, req.Description)
	if err != nil {
		h.log.Error(r.Context(), "recharging balance", "error", err)
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, rechargeResponse{Balance: balance})
}
