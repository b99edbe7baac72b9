package users

import (
	"context"

	"github.com/dmitrijs2005/englishhq/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	AdjustBalance(ctx context.Context, userID int64, delta float64) (float64, error)
	SetActive(ctx context.Context, userID int64, active bool) (*models.User, error)
}
