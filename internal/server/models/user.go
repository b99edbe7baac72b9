package models

import (
	"database/sql"
	"time"
)

type User struct {
	ID             int64
	Username       string
	Email          string
	HashedPassword string
	Balance        float64
	IsActive       bool
	IsAdmin        bool
	CreatedAt      time.Time
	UpdatedAt      sql.NullTime
}
