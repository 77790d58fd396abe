package services

import (
	"context"
	"database/sql"
	"strings"

	"github.com/dmitrijs2005/civigo/internal/common"
	"github.com/dmitrijs2005/civigo/internal/dbx"
	"github.com/dmitrijs2005/civigo/internal/server/models"
	"github.com/dmitrijs2005/civigo/internal/server/repositories/repomanager"
	"github.com/shopspring/decimal"
)

// Measurement units.
const (
	UnitSFT = "SFT"
	UnitCFT = "CFT"
)

// NormalizeUnit upper-cases u and defaults it to SFT. ok is false for
// anything but SFT or CFT.
func NormalizeUnit(u string) (string, bool) {
	u = strings.ToUpper(strings.TrimSpace(u))
	switch u {
	case "":
		return UnitSFT, true
	case UnitSFT, UnitCFT:
		return u, true
	}
	return "", false
}

type SubworkService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewSubworkService(db *sql.DB, m repomanager.RepositoryManager) *SubworkService {
	return &SubworkService{db: db, repomanager: m}
}

func (s *SubworkService) Create(ctx context.Context, sw *models.Subwork) (*models.Subwork, error) {
	unit, ok := NormalizeUnit(sw.Unit)
	if !ok || strings.TrimSpace(sw.Name) == "" || sw.WorkID == "" || sw.DefaultRate.IsNegative() {
		return nil, common.ErrorValidation
	}
	sw.Unit = unit
	return s.repomanager.Subworks(s.db).Create(ctx, sw)
}

func (s *SubworkService) Update(ctx context.Context, sw *models.Subwork) error {
	unit, ok := NormalizeUnit(sw.Unit)
	if !ok || strings.TrimSpace(sw.Name) == "" {
		return common.ErrorValidation
	}
	sw.Unit = unit
	return s.repomanager.Subworks(s.db).Update(ctx, sw)
}

// SetDefaultRate stores the rate charged per unit for the subwork.
func (s *SubworkService) SetDefaultRate(ctx context.Context, userID, id, unit string, rate decimal.Decimal) error {
	unit, ok := NormalizeUnit(unit)
	if !ok || rate.IsNegative() {
		return common.ErrorValidation
	}
	return s.repomanager.Subworks(s.db).SetDefaultRate(ctx, userID, id, unit, rate)
}

func (s *SubworkService) Delete(ctx context.Context, userID, id string) error {
	return s.repomanager.Subworks(s.db).Delete(ctx, userID, id)
}

// List returns the user's subworks with their items grouped by kind. Both
// tables are read from one snapshot.
func (s *SubworkService) List(ctx context.Context, userID string) ([]*models.Subwork, error) {
	var out []*models.Subwork
	opts := &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}

	err := dbx.WithTx(ctx, s.db, opts, func(ctx context.Context, tx dbx.DBTX) error {
		list, err := s.repomanager.Subworks(tx).List(ctx, userID)
		if err != nil {
			return err
		}
		items, err := s.repomanager.Items(tx).List(ctx, userID)
		if err != nil {
			return err
		}

		byID := make(map[string]*models.Subwork, len(list))
		for _, sw := range list {
			sw.Details = []*models.Item{}
			sw.Deductions = []*models.Item{}
			byID[sw.ID] = sw
		}
		for _, it := range items {
			sw, ok := byID[it.SubworkID]
			if !ok {
				continue
			}
			if it.Kind == models.KindDeductions {
				sw.Deductions = append(sw.Deductions, it)
			} else {
				sw.Details = append(sw.Details, it)
			}
		}
		out = list
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
