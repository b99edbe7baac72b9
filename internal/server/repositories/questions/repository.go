package questions

import (
	"context"

	"github.com/dmitrijs2005/englishhq/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, rec *models.QuestionRecord) (*models.QuestionRecord, error)
	ListByUser(ctx context.Context, userID int64) ([]models.QuestionRecord, error)
	GetByID(ctx context.Context, id, userID int64) (*models.QuestionRecord, error)
}
