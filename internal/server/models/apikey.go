package models

import (
	"database/sql"
	"time"
)

// APIKey is a provider credential. The active key with the lowest priority
// number is picked to answer questions.
type APIKey struct {
	ID        int64
	KeyName   string
	APIKey    string
	Provider  string
	Balance   float64
	IsActive  bool
	Priority  int
	CreatedAt time.Time
	UpdatedAt sql.NullTime
}
