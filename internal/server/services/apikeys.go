package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/englishhq/internal/server/models"
	"github.com/dmitrijs2005/englishhq/internal/server/repositories/apikeys"
	"github.com/dmitrijs2005/englishhq/internal/server/repositories/repomanager"
)

// APIKeyService is the admin surface over provider credentials.
type APIKeyService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewAPIKeyService(db *sql.DB, m repomanager.RepositoryManager) *APIKeyService {
	return &APIKeyService{db: db, repomanager: m}
}

func (s *APIKeyService) Create(ctx context.Context, key *models.APIKey) (*models.APIKey, error) {
	return s.repomanager.APIKeys(s.db).Create(ctx, key)
}

func (s *APIKeyService) List(ctx context.Context) ([]models.APIKey, error) {
	return s.repomanager.APIKeys(s.db).List(ctx)
}

func (s *APIKeyService) Get(ctx context.Context, id int64) (*models.APIKey, error) {
	return s.repomanager.APIKeys(s.db).GetByID(ctx, id)
}

func (s *APIKeyService) Update(ctx context.Context, id int64, upd apikeys.Update) (*models.APIKey, error) {
	return s.repomanager.APIKeys(s.db).Update(ctx, id, upd)
}

func (s *APIKeyService) Delete(ctx context.Context, id int64) error {
	return s.repomanager.APIKeys(s.db).Delete(ctx, id)
}
