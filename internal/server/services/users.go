package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/englishhq/internal/common"
	"github.com/dmitrijs2005/englishhq/internal/dbx"
	"github.com/dmitrijs2005/englishhq/internal/server/auth"
	"github.com/dmitrijs2005/englishhq/internal/server/config"
	"github.com/dmitrijs2005/englishhq/internal/server/models"
	"github.com/dmitrijs2005/englishhq/internal/server/repositories/repomanager"
)

type UserService struct {
	db             *sql.DB
	repomanager    repomanager.RepositoryManager
	jwtSecret      []byte
	accessTokenTTL time.Duration
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:             db,
		repomanager:    m,
		jwtSecret:      []byte(cfg.SecretKey),
		accessTokenTTL: cfg.AccessTokenTTL,
	}
}

// Register creates an account with a bcrypt-hashed password and zero balance.
// Username and email must both be unique.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*models.User, error) {

	repo := s.repomanager.Users(s.db)

	if _, err := repo.GetByUsername(ctx, username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("checking username: %w", err)
	}

	if _, err := repo.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("checking email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &models.User{
		Username:       username,
		Email:          email,
		HashedPassword: string(hash),
		Balance:        0,
		IsActive:       true,
		IsAdmin:        false,
	}

	user, err = repo.Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	return user, nil
}

// Login verifies the credentials and issues an access token. An unknown
// username and a wrong password are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, username, password string) (string, error) {

	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("fetching user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.accessTokenTTL)
	if err != nil {
		return "", fmt.Errorf("generating token: %w", err)
	}

	return token, nil
}

func (s *UserService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return s.repomanager.Users(s.db).GetByID(ctx, id)
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.repomanager.Users(s.db).List(ctx)
}

func (s *UserService) SetActive(ctx context.Context, id int64, active bool) (*models.User, error) {
	return s.repomanager.Users(s.db).SetActive(ctx, id, active)
}

// Recharge credits the user's balance and records a deposit transaction in
// one database transaction. The returned value is the new balance.
func (s *UserService) Recharge(ctx context.Context, userID int64, amount float64, description string) (float64, error) {

	var balance float64

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		balance, err = s.repomanager.Users(tx).AdjustBalance(ctx, userID, amount)
		if err != nil {
			return fmt.Errorf("adjusting balance: %w", err)
		}

		_, err = s.repomanager.Transactions(tx).Create(ctx, &models.Transaction{
			UserID:      userID,
			Amount:      amount,
			Type:        models.TransactionDeposit,
			Description: description,
		})
		if err != nil {
			return fmt.Errorf("recording transaction: %w", err)
		}

		return nil
	})

	if err != nil {
		return 0, err
	}

	return balance, nil
}
