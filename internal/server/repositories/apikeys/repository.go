package apikeys

import (
	"context"

	"github.com/dmitrijs2005/englishhq/internal/server/models"
)

// Update carries the mutable fields of an API key; nil means "leave as is".
type Update struct {
	KeyName  *string
	APIKey   *string
	Provider *string
	Balance  *float64
	IsActive *bool
	Priority *int
}

type Repository interface {
	Create(ctx context.Context, key *models.APIKey) (*models.APIKey, error)
	GetByID(ctx context.Context, id int64) (*models.APIKey, error)
	List(ctx context.Context) ([]models.APIKey, error)
	Update(ctx context.Context, id int64, upd Update) (*models.APIKey, error)
	Delete(ctx context.Context, id int64) error
	GetActive(ctx context.Context) (*models.APIKey, error)
}
