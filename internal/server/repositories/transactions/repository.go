package transactions

import (
	"context"

	"github.com/dmitrijs2005/englishhq/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, tr *models.Transaction) (*models.Transaction, error)
	ListByUser(ctx context.Context, userID int64) ([]models.Transaction, error)
}
