package models

import "time"

// Transaction types recorded against a user's balance.
const (
	TransactionDeposit     = "deposit"
	TransactionConsumption = "consumption"
)

type Transaction struct {
	ID          int64
	UserID      int64
	Amount      float64
	Type        string
	Description string
	CreatedAt   time.Time
}
