package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/englishhq/internal/dbx"
	"github.com/dmitrijs2005/englishhq/internal/server/repositories/apikeys"
	"github.com/dmitrijs2005/englishhq/internal/server/repositories/questions"
	"github.com/dmitrijs2005/englishhq/internal/server/repositories/transactions"
	"github.com/dmitrijs2005/englishhq/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Transactions(db dbx.DBTX) transactions.Repository
	APIKeys(db dbx.DBTX) apikeys.Repository
	Questions(db dbx.DBTX) questions.Repository
}
