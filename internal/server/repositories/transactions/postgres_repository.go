package transactions

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/englishhq/internal/dbx"
	"github.com/dmitrijs2005/englishhq/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, tr *models.Transaction) (*models.Transaction, error) {

	query :=
		`INSERT INTO transactions (user_id, amount, transaction_type, description)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		tr.UserID, tr.Amount, tr.Type, tr.Description).Scan(&tr.ID, &tr.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return tr, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64) ([]models.Transaction, error) {
	query :=
		`SELECT id, user_id, amount, transaction_type, COALESCE(description, ''), created_at
		 FROM transactions
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var trs []models.Transaction
	for rows.Next() {
		var tr models.Transaction
		if err := rows.Scan(&tr.ID, &tr.UserID, &tr.Amount, &tr.Type, &tr.Description, &tr.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		trs = append(trs, tr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return trs, nil
}
