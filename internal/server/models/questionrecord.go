package models

import "time"

type QuestionRecord struct {
	ID         int64
	UserID     int64
	Question   string
	Answer     string
	TokensUsed int
	Cost       float64
	APIKeyID   int64
	CreatedAt  time.Time
}
