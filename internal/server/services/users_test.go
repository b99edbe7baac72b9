package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/englishhq/internal/server/auth"
	"github.com/dmitrijs2005/englishhq/internal/server/config"
	"github.com/dmitrijs2005/englishhq/internal/server/models"
)

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:       "test-secret",
		AccessTokenTTL:  time.Hour,
		CostPer1KTokens: 0.5,
	}
}

func newUserService(t *testing.T) (*UserService, *fakeRepoManager, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	m := newFakeRepoManager()
	return NewUserService(db, m, testConfig()), m, mock, db
}

func TestRegister_CreatesActiveUserWithZeroBalance(t *testing.T) {
	svc, m, _, db := newUserService(t)
	defer db.Close()

	user, err := svc.Register(context.Background(), "alice", "a@example.org", "pw")
	require.NoError(t, err)

	require.Equal(t, "alice", user.Username)
	require.Zero(t, user.Balance)
	require.True(t, user.IsActive)
	require.False(t, user.IsAdmin)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte("pw")))
	require.NotNil(t, m.users.byUsername["alice"])
}

func TestRegister_DuplicateUsername(t *testing.T) {
	svc, m, _, db := newUserService(t)
	defer db.Close()

	m.users.add(&models.User{Username: "alice", Email: "other@example.org"})

	_, err := svc.Register(context.Background(), "alice", "a@example.org", "pw")
	require.ErrorIs(t, err, ErrUsernameTaken)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, m, _, db := newUserService(t)
	defer db.Close()

	m.users.add(&models.User{Username: "other", Email: "a@example.org"})

	_, err := svc.Register(context.Background(), "alice", "a@example.org", "pw")
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin_IssuesVerifiableToken(t *testing.T) {
	svc, m, _, db := newUserService(t)
	defer db.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	require.NoError(t, err)
	user := m.users.add(&models.User{Username: "alice", Email: "a@example.org", HashedPassword: string(hash)})

	token, err := svc.Login(context.Background(), "alice", "pw")
	require.NoError(t, err)

	userID, err := auth.GetUserIDFromToken(token, []byte("test-secret"))
	require.NoError(t, err)
	require.Equal(t, user.ID, userID)
}

func TestLogin_WrongPasswordAndUnknownUserLookTheSame(t *testing.T) {
	svc, m, _, db := newUserService(t)
	defer db.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	require.NoError(t, err)
	m.users.add(&models.User{Username: "alice", Email: "a@example.org", HashedPassword: string(hash)})

	_, err = svc.Login(context.Background(), "alice", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "ghost", "pw")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRecharge_CreditsBalanceAndRecordsDeposit(t *testing.T) {
	svc, m, mock, db := newUserService(t)
	defer db.Close()

	user := m.users.add(&models.User{Username: "alice", Email: "a@example.org", Balance: 100})

	mock.ExpectBegin()
	mock.ExpectCommit()

	balance, err := svc.Recharge(context.Background(), user.ID, 1, "top up")
	require.NoError(t, err)
	require.Equal(t, 101.0, balance)

	require.Len(t, m.transactions.created, 1)
	tr := m.transactions.created[0]
	require.Equal(t, models.TransactionDeposit, tr.Type)
	require.Equal(t, 1.0, tr.Amount)
	require.Equal(t, "top up", tr.Description)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRecharge_FailureRollsBack(t *testing.T) {
	svc, m, mock, db := newUserService(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.Recharge(context.Background(), 404, 1, "")
	require.Error(t, err)
	require.Empty(t, m.transactions.created)

	require.NoError(t, mock.ExpectationsWereMet())
}
