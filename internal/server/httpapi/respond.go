package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/dmitrijs2005/englishhq/internal/server/models"
)

// Every non-2xx response carries a {"detail": string} body so clients can
// surface the message verbatim.
type detailResponse struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, detailResponse{Detail: detail})
}

type userResponse struct {
	ID        int64      `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Balance   float64    `json:"balance"`
	IsActive  bool       `json:"is_active"`
	IsAdmin   bool       `json:"is_admin"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

func toUserResponse(u *models.User) userResponse {
	resp := userResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Balance:   u.Balance,
		IsActive:  u.IsActive,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
	}
	if u.UpdatedAt.Valid {
		t := u.UpdatedAt.Time
		resp.UpdatedAt = &t
	}
	return resp
}

type questionResponse struct {
	ID         int64     `json:"id"`
	Question   string    `json:"question"`
	Answer     string    `json:"answer"`
	TokensUsed int       `json:"tokens_used"`
	Cost       float64   `json:"cost"`
	CreatedAt  time.Time `json:"created_at"`
}

func toQuestionResponse(rec *models.QuestionRecord) questionResponse {
	return questionResponse{
		ID:         rec.ID,
		Question:   rec.Question,
		Answer:     rec.Answer,
		TokensUsed: rec.TokensUsed,
		Cost:       rec.Cost,
		CreatedAt:  rec.CreatedAt,
	}
}

type apiKeyResponse struct {
	ID        int64      `json:"id"`
	KeyName   string     `json:"key_name"`
	APIKey    string     `json:"api_key"`
	Provider  string     `json:"provider"`
	Balance   float64    `json:"balance"`
	IsActive  bool       `json:"is_active"`
	Priority  int        `json:"priority"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

func toAPIKeyResponse(k *models.APIKey) apiKeyResponse {
	resp := apiKeyResponse{
		ID:        k.ID,
		KeyName:   k.KeyName,
		APIKey:    k.APIKey,
		Provider:  k.Provider,
		Balance:   k.Balance,
		IsActive:  k.IsActive,
		Priority:  k.Priority,
		CreatedAt: k.CreatedAt,
	}
	if k.UpdatedAt.Valid {
		t := k.UpdatedAt.Time
		resp.UpdatedAt = &t
	}
	return resp
}
