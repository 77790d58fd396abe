package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/civigo/internal/common"
	"github.com/dmitrijs2005/civigo/internal/dbx"
	"github.com/dmitrijs2005/civigo/internal/server/models"
	"github.com/dmitrijs2005/civigo/internal/server/repositories/repomanager"
)

// ItemService manages the detail and deduction lines of subworks. The
// server stores the figures the client computed; it does not recompute.
type ItemService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewItemService(db *sql.DB, m repomanager.RepositoryManager) *ItemService {
	return &ItemService{db: db, repomanager: m}
}

// Create stores all items under subworkID in one transaction. Either every
// item is created or none is.
func (s *ItemService) Create(ctx context.Context, userID, subworkID, kind string, items []*models.Item) ([]*models.Item, error) {
	if !models.ValidKind(kind) || len(items) == 0 {
		return nil, common.ErrorValidation
	}

	out := make([]*models.Item, 0, len(items))
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Items(tx)
		for _, it := range items {
			it.UserID = userID
			it.SubworkID = subworkID
			it.Kind = kind
			created, err := repo.Create(ctx, it)
			if err != nil {
				return err
			}
			out = append(out, created)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *ItemService) Update(ctx context.Context, it *models.Item) error {
	if !models.ValidKind(it.Kind) {
		return common.ErrorValidation
	}
	return s.repomanager.Items(s.db).Update(ctx, it)
}

func (s *ItemService) Delete(ctx context.Context, userID, subworkID, kind, id string) error {
	if !models.ValidKind(kind) {
		return common.ErrorValidation
	}
	return s.repomanager.Items(s.db).Delete(ctx, userID, subworkID, kind, id)
}
