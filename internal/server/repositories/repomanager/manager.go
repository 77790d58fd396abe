package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/civigo/internal/dbx"
	"github.com/dmitrijs2005/civigo/internal/server/repositories/items"
	"github.com/dmitrijs2005/civigo/internal/server/repositories/projects"
	"github.com/dmitrijs2005/civigo/internal/server/repositories/subworks"
	"github.com/dmitrijs2005/civigo/internal/server/repositories/users"
	"github.com/dmitrijs2005/civigo/internal/server/repositories/works"
)

// RepositoryManager vends repositories bound to a connection or a
// transaction, so services can run several of them in one dbx.WithTx.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Projects(db dbx.DBTX) projects.Repository
	Works(db dbx.DBTX) works.Repository
	Subworks(db dbx.DBTX) subworks.Repository
	Items(db dbx.DBTX) items.Repository
}
