package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/englishhq/internal/common"
	"github.com/dmitrijs2005/englishhq/internal/dbx"
	"github.com/dmitrijs2005/englishhq/internal/server/models"
	"github.com/dmitrijs2005/englishhq/internal/server/repositories/apikeys"
	"github.com/dmitrijs2005/englishhq/internal/server/repositories/questions"
	"github.com/dmitrijs2005/englishhq/internal/server/repositories/transactions"
	"github.com/dmitrijs2005/englishhq/internal/server/repositories/users"
)

// In-memory repositories backing the service tests. The database handle they
// receive is ignored; transactional behavior is covered by sqlmock
// begin/commit expectations.

type fakeUserRepo struct {
	byUsername map[string]*models.User
	byEmail    map[string]*models.User
	byID       map[int64]*models.User
	nextID     int64

	adjustments []float64
	adjustErr   error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byUsername: map[string]*models.User{},
		byEmail:    map[string]*models.User{},
		byID:       map[int64]*models.User{},
		nextID:     1,
	}
}

func (f *fakeUserRepo) add(u *models.User) *models.User {
	if u.ID == 0 {
		u.ID = f.nextID
		f.nextID++
	}
	f.byUsername[u.Username] = u
	f.byEmail[u.Email] = u
	f.byID[u.ID] = u
	return u
}

func (f *fakeUserRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	return f.add(u), nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, common.ErrNotFound
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	if u, ok := f.byUsername[username]; ok {
		return u, nil
	}
	return nil, common.ErrNotFound
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, common.ErrNotFound
}

func (f *fakeUserRepo) List(_ context.Context) ([]models.User, error) {
	var out []models.User
	for _, u := range f.byID {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUserRepo) AdjustBalance(_ context.Context, userID int64, delta float64) (float64, error) {
	if f.adjustErr != nil {
		return 0, f.adjustErr
	}
	u, ok := f.byID[userID]
	if !ok {
		return 0, common.ErrNotFound
	}
	f.adjustments = append(f.adjustments, delta)
	u.Balance += delta
	return u.Balance, nil
}

func (f *fakeUserRepo) SetActive(_ context.Context, userID int64, active bool) (*models.User, error) {
	u, ok := f.byID[userID]
	if !ok {
		return nil, common.ErrNotFound
	}
	u.IsActive = active
	return u, nil
}

type fakeTransactionRepo struct {
	created []models.Transaction
}

func (f *fakeTransactionRepo) Create(_ context.Context, tr *models.Transaction) (*models.Transaction, error) {
	f.created = append(f.created, *tr)
	return tr, nil
}

func (f *fakeTransactionRepo) ListByUser(_ context.Context, userID int64) ([]models.Transaction, error) {
	var out []models.Transaction
	for _, tr := range f.created {
		if tr.UserID == userID {
			out = append(out, tr)
		}
	}
	return out, nil
}

type fakeAPIKeyRepo struct {
	active    *models.APIKey
	activeErr error
}

func (f *fakeAPIKeyRepo) Create(_ context.Context, key *models.APIKey) (*models.APIKey, error) {
	return key, nil
}
func (f *fakeAPIKeyRepo) GetByID(_ context.Context, id int64) (*models.APIKey, error) {
	return nil, common.ErrNotFound
}
func (f *fakeAPIKeyRepo) List(_ context.Context) ([]models.APIKey, error) { return nil, nil }
func (f *fakeAPIKeyRepo) Update(_ context.Context, id int64, upd apikeys.Update) (*models.APIKey, error) {
	return nil, common.ErrNotFound
}
func (f *fakeAPIKeyRepo) Delete(_ context.Context, id int64) error { return common.ErrNotFound }
func (f *fakeAPIKeyRepo) GetActive(_ context.Context) (*models.APIKey, error) {
	if f.activeErr != nil {
		return nil, f.activeErr
	}
	if f.active == nil {
		return nil, common.ErrNotFound
	}
	return f.active, nil
}

type fakeQuestionRepo struct {
	created []models.QuestionRecord
	nextID  int64
}

func (f *fakeQuestionRepo) Create(_ context.Context, rec *models.QuestionRecord) (*models.QuestionRecord, error) {
	f.nextID++
	rec.ID = f.nextID
	f.created = append(f.created, *rec)
	return rec, nil
}

func (f *fakeQuestionRepo) ListByUser(_ context.Context, userID int64) ([]models.QuestionRecord, error) {
	var out []models.QuestionRecord
	for i := len(f.created) - 1; i >= 0; i-- {
		if f.created[i].UserID == userID {
			out = append(out, f.created[i])
		}
	}
	return out, nil
}

func (f *fakeQuestionRepo) GetByID(_ context.Context, id, userID int64) (*models.QuestionRecord, error) {
	for _, rec := range f.created {
		if rec.ID == id && rec.UserID == userID {
			r := rec
			return &r, nil
		}
	}
	return nil, common.ErrNotFound
}

type fakeRepoManager struct {
	users        *fakeUserRepo
	transactions *fakeTransactionRepo
	apiKeys      *fakeAPIKeyRepo
	questions    *fakeQuestionRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		users:        newFakeUserRepo(),
		transactions: &fakeTransactionRepo{},
		apiKeys:      &fakeAPIKeyRepo{},
		questions:    &fakeQuestionRepo{},
	}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository              { return m.users }
func (m *fakeRepoManager) Transactions(dbx.DBTX) transactions.Repository {
	return m.transactions
}
func (m *fakeRepoManager) APIKeys(dbx.DBTX) apikeys.Repository     { return m.apiKeys }
func (m *fakeRepoManager) Questions(dbx.DBTX) questions.Repository { return m.questions }
