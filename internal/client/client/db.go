package client

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/civigo/internal/client/migrations"
	"github.com/dmitrijs2005/civigo/internal/client/models"
	"github.com/dmitrijs2005/civigo/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/civigo/internal/client/store"

	_ "modernc.org/sqlite"
)

// Local is the opened local database with one table per entity type.
type Local struct {
	DB       *sql.DB
	Metadata metadata.Repository

	Projects *store.Table[*models.Project]
	Works    *store.Table[*models.Work]
	Subworks *store.Table[*models.Subwork]
	Entries  *store.Table[*models.Entry]
}

// InitDatabase opens the SQLite file at dsn and applies pending migrations.
//
// The pool is limited to a single connection: SQLite serializes writers
// anyway, and one connection keeps in-memory databases shared across calls.
func InitDatabase(ctx context.Context, dsn string) (*Local, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := migrations.Up(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &Local{
		DB:       db,
		Metadata: metadata.NewSQLiteRepository(db),
		Projects: store.NewTable(db, store.ProjectSchema),
		Works:    store.NewTable(db, store.WorkSchema),
		Subworks: store.NewTable(db, store.SubworkSchema),
		Entries:  store.NewTable(db, store.EntrySchema),
	}, nil
}

// Close closes the underlying database.
func (l *Local) Close() error {
	return l.DB.Close()
}
