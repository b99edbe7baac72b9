package apikeys

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

const keyColumns = `id, key_name, api_key, provider, balance, is_active, priority, created_at, updated_at`

func scanKey(row *sql.Row) (*models.APIKey, error) {
	key := &models.APIKey{}
	err := row.Scan(&key.ID, &key.KeyName, &key.APIKey, &key.Provider,
		&key.Balance, &key.IsActive, &key.Priority, &key.CreatedAt, &key.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return key, nil
}

func (r *PostgresRepository) Create(ctx context.Context, key *models.APIKey) (*models.APIKey, error) {

	query :=
		`INSERT INTO api_keys (key_name, api_key, provider, balance, is_active, priority)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		key.KeyName, key.APIKey, key.Provider, key.Balance, key.IsActive, key.Priority).
		Scan(&key.ID, &key.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return key, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.APIKey, error) {
	query := `SELECT ` + keyColumns + ` FROM api_keys WHERE id = $1`
	return scanKey(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.APIKey, error) {
	query := `SELECT ` + keyColumns + ` FROM api_keys ORDER BY priority, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var keys []models.APIKey
	for rows.Next() {
		var key models.APIKey
		if err := rows.Scan(&key.ID, &key.KeyName, &key.APIKey, &key.Provider,
			&key.Balance, &key.IsActive, &key.Priority, &key.CreatedAt, &key.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return keys, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id int64, upd Update) (*models.APIKey, error) {
	query :=
		`UPDATE api_keys SET
		    key_name = COALESCE($1, key_name),
		    api_key = COALESCE($2, api_key),
		    provider = COALESCE($3, provider),
		    balance = COALESCE($4, balance),
		    is_active = COALESCE($5, is_active),
		    priority = COALESCE($6, priority),
		    updated_at = now()
		 WHERE id = $7
		 RETURNING ` + keyColumns

	return scanKey(r.db.QueryRowContext(ctx, query,
		upd.KeyName, upd.APIKey, upd.Provider, upd.Balance, upd.IsActive, upd.Priority, id))
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM api_keys WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}

// GetActive returns the usable key with the best (lowest) priority.
func (r *PostgresRepository) GetActive(ctx context.Context) (*models.APIKey, error) {
	query := `SELECT ` + keyColumns + ` FROM api_keys WHERE is_active ORDER BY priority LIMIT 1`
	return scanKey(r.db.QueryRowContext(ctx, query))
}
