// Package models defines the data shapes the terminal client works with.
// All of them mirror server responses; the client never derives these values
// itself.
package models

import "time"

// UserProfile is the authoritative /users/me payload. Balance is always the
// server-side value; the client never computes it locally.
type UserProfile struct {
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Balance  float64 `json:"balance"`
}

// QuestionAnswer is the result of one ask operation. It is displayed once and
// not persisted client-side.
type QuestionAnswer struct {
	Question string  `json:"question"`
	Answer   string  `json:"answer"`
	Cost     float64 `json:"cost"`
}

// HistoryEntry is one row of /questions/history.
type HistoryEntry struct {
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Cost      float64   `json:"cost"`
	Timestamp time.Time `json:"created_at"`
}
