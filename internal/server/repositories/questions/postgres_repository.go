package questions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/englishhq/internal/common"
	"github.com/dmitrijs2005/englishhq/internal/dbx"
	"github.com/dmitrijs2005/englishhq/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const recordColumns = `id, user_id, question, answer, tokens_used, cost, api_key_id, created_at`

func (r *PostgresRepository) Create(ctx context.Context, rec *models.QuestionRecord) (*models.QuestionRecord, error) {

	query :=
		`INSERT INTO question_records (user_id, question, answer, tokens_used, cost, api_key_id)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		rec.UserID, rec.Question, rec.Answer, rec.TokensUsed, rec.Cost, rec.APIKeyID).
		Scan(&rec.ID, &rec.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return rec, nil
}

// ListByUser returns the user's records, newest first.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64) ([]models.QuestionRecord, error) {
	query :=
		`SELECT ` + recordColumns + `
		 FROM question_records
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var recs []models.QuestionRecord
	for rows.Next() {
		var rec models.QuestionRecord
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Question, &rec.Answer,
			&rec.TokensUsed, &rec.Cost, &rec.APIKeyID, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return recs, nil
}

// GetByID fetches one record, scoped to its owner. Another user's record is
// indistinguishable from an absent one.
func (r *PostgresRepository) GetByID(ctx context.Context, id, userID int64) (*models.QuestionRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM question_records WHERE id = $1 AND user_id = $2`

	rec := &models.QuestionRecord{}
	err := r.db.QueryRowContext(ctx, query, id, userID).
		Scan(&rec.ID, &rec.UserID, &rec.Question, &rec.Answer,
			&rec.TokensUsed, &rec.Cost, &rec.APIKeyID, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return rec, nil
}
