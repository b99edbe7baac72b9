package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/englishhq/internal/common"
	"github.com/dmitrijs2005/englishhq/internal/server/models"
)

type fakeProvider struct {
	answer string
	tokens int
	err    error

	calls int
}

func (f *fakeProvider) Answer(_ context.Context, _ string, _ string) (string, int, error) {
	f.calls++
	return f.answer, f.tokens, f.err
}

func newQuestionService(t *testing.T, provider *fakeProvider) (*QuestionService, *fakeRepoManager, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	m := newFakeRepoManager()
	m.apiKeys.active = &models.APIKey{ID: 3, APIKey: "key-secret", Provider: "doubao", IsActive: true}
	return NewQuestionService(db, m, provider, testConfig()), m, mock, db
}

func TestAsk_DeductsCostAndRecordsEverything(t *testing.T) {
	provider := &fakeProvider{answer: "the answer", tokens: 1500}
	svc, m, mock, db := newQuestionService(t, provider)
	defer db.Close()

	user := m.users.add(&models.User{Username: "alice", Balance: 100})

	mock.ExpectBegin()
	mock.ExpectCommit()

	rec, err := svc.Ask(context.Background(), user, "Q")
	require.NoError(t, err)

	// 1500 tokens at 0.5 per 1000
	require.Equal(t, 0.75, rec.Cost)
	require.Equal(t, "the answer", rec.Answer)
	require.Equal(t, 1500, rec.TokensUsed)
	require.Equal(t, int64(3), rec.APIKeyID)

	require.Equal(t, 99.25, m.users.byID[user.ID].Balance)
	require.Len(t, m.transactions.created, 1)
	require.Equal(t, models.TransactionConsumption, m.transactions.created[0].Type)
	require.Equal(t, -0.75, m.transactions.created[0].Amount)
	require.Len(t, m.questions.created, 1)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAsk_ZeroBalanceRejectedBeforeProviderCall(t *testing.T) {
	provider := &fakeProvider{answer: "a", tokens: 10}
	svc, m, _, db := newQuestionService(t, provider)
	defer db.Close()

	user := m.users.add(&models.User{Username: "alice", Balance: 0})

	_, err := svc.Ask(context.Background(), user, "Q")
	require.ErrorIs(t, err, common.ErrInsufficientBalance)
	require.Zero(t, provider.calls)
}

func TestAsk_BalanceBelowActualCost(t *testing.T) {
	// 10000 tokens cost 5.0, more than the balance of 1.
	provider := &fakeProvider{answer: "a", tokens: 10000}
	svc, m, _, db := newQuestionService(t, provider)
	defer db.Close()

	user := m.users.add(&models.User{Username: "alice", Balance: 1})

	_, err := svc.Ask(context.Background(), user, "Q")
	require.ErrorIs(t, err, common.ErrInsufficientBalance)
	require.Equal(t, 1, provider.calls)
	require.Empty(t, m.questions.created, "no record for a rejected question")
}

func TestAsk_NoActiveKey(t *testing.T) {
	provider := &fakeProvider{}
	svc, m, _, db := newQuestionService(t, provider)
	defer db.Close()
	m.apiKeys.active = nil

	user := m.users.add(&models.User{Username: "alice", Balance: 100})

	_, err := svc.Ask(context.Background(), user, "Q")
	require.ErrorIs(t, err, ErrNoAPIKey)
	require.Zero(t, provider.calls)
}

func TestAsk_ProviderFailure(t *testing.T) {
	provider := &fakeProvider{err: errors.New("upstream down")}
	svc, m, _, db := newQuestionService(t, provider)
	defer db.Close()

	user := m.users.add(&models.User{Username: "alice", Balance: 100})

	_, err := svc.Ask(context.Background(), user, "Q")
	require.ErrorIs(t, err, ErrProviderFailure)
	require.Equal(t, 100.0, m.users.byID[user.ID].Balance, "failed calls cost nothing")
}

func TestHistory_NewestFirstScopedToUser(t *testing.T) {
	svc, m, _, db := newQuestionService(t, &fakeProvider{})
	defer db.Close()

	m.questions.created = []models.QuestionRecord{
		{ID: 1, UserID: 7, Question: "old"},
		{ID: 2, UserID: 8, Question: "someone else"},
		{ID: 3, UserID: 7, Question: "new"},
	}

	recs, err := svc.History(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	require.Equal(t, "new", recs[0].Question)
	require.Equal(t, "old", recs[1].Question)
}

func TestRecord_OtherUsersRecordLooksAbsent(t *testing.T) {
	svc, m, _, db := newQuestionService(t, &fakeProvider{})
	defer db.Close()

	m.questions.created = []models.QuestionRecord{{ID: 1, UserID: 8}}

	_, err := svc.Record(context.Background(), 1, 7)
	require.ErrorIs(t, err, common.ErrNotFound)
}
