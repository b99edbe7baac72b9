package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/englishhq/internal/common"
	"github.com/dmitrijs2005/englishhq/internal/dbx"
	"github.com/dmitrijs2005/englishhq/internal/server/config"
	"github.com/dmitrijs2005/englishhq/internal/server/models"
	"github.com/dmitrijs2005/englishhq/internal/server/repositories/repomanager"
)

// AnswerProvider answers one question with the given provider credential and
// reports how many tokens the call consumed.
type AnswerProvider interface {
	Answer(ctx context.Context, apiKey, question string) (answer string, tokensUsed int, err error)
}

type QuestionService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	provider    AnswerProvider
	costPer1K   float64
}

func NewQuestionService(db *sql.DB, m repomanager.RepositoryManager, provider AnswerProvider, cfg *config.Config) *QuestionService {
	return &QuestionService{
		db:          db,
		repomanager: m,
		provider:    provider,
		costPer1K:   cfg.CostPer1KTokens,
	}
}

// cost converts a token count into money at the configured per-1000 rate.
func (s *QuestionService) cost(tokensUsed int) float64 {
	return float64(tokensUsed) / 1000 * s.costPer1K
}

// Ask runs the full paid question flow: balance precheck, provider call,
// cost calculation against the reported token usage, atomic deduction plus
// consumption transaction plus question record. The balance is checked again
// after the provider call because the actual cost is only known then.
func (s *QuestionService) Ask(ctx context.Context, user *models.User, question string) (*models.QuestionRecord, error) {

	if user.Balance <= 0 {
		return nil, common.ErrInsufficientBalance
	}

	key, err := s.repomanager.APIKeys(s.db).GetActive(ctx)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, ErrNoAPIKey
		}
		return nil, fmt.Errorf("fetching api key: %w", err)
	}

	answer, tokensUsed, err := s.provider.Answer(ctx, key.APIKey, question)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrProviderFailure, err)
	}

	cost := s.cost(tokensUsed)
	if user.Balance < cost {
		return nil, common.ErrInsufficientBalance
	}

	record := &models.QuestionRecord{
		UserID:     user.ID,
		Question:   question,
		Answer:     answer,
		TokensUsed: tokensUsed,
		Cost:       cost,
		APIKeyID:   key.ID,
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.repomanager.Users(tx).AdjustBalance(ctx, user.ID, -cost); err != nil {
			return fmt.Errorf("deducting balance: %w", err)
		}

		if _, err := s.repomanager.Transactions(tx).Create(ctx, &models.Transaction{
			UserID:      user.ID,
			Amount:      -cost,
			Type:        models.TransactionConsumption,
			Description: "question",
		}); err != nil {
			return fmt.Errorf("recording transaction: %w", err)
		}

		if _, err := s.repomanager.Questions(tx).Create(ctx, record); err != nil {
			return fmt.Errorf("recording question: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return record, nil
}

func (s *QuestionService) History(ctx context.Context, userID int64) ([]models.QuestionRecord, error) {
	return s.repomanager.Questions(s.db).ListByUser(ctx, userID)
}

func (s *QuestionService) Record(ctx context.Context, id, userID int64) (*models.QuestionRecord, error) {
	return s.repomanager.Questions(s.db).GetByID(ctx, id, userID)
}
