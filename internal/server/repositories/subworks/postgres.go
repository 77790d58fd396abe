package subworks

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/civigo/internal/common"
	"github.com/dmitrijs2005/civigo/internal/dbx"
	"github.com/dmitrijs2005/civigo/internal/server/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, s *models.Subwork) (*models.Subwork, error) {
	query :=
		`INSERT INTO subworks (id, user_id, work_id, name, description, unit, default_rate)
		 SELECT $1, $2, $3, $4, $5, $6, $7
		 WHERE EXISTS (SELECT 1 FROM works WHERE id = $3 AND user_id = $2)
		 `

	id := uuid.NewString()
	res, err := r.db.ExecContext(ctx, query,
		id, s.UserID, s.WorkID, s.Name, s.Description, s.Unit, s.DefaultRate)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if err := dbx.AffectedOne(res, common.ErrorNotFound); err != nil {
		return nil, err
	}

	s.ID = id
	return s, nil
}

func (r *PostgresRepository) Update(ctx context.Context, s *models.Subwork) error {
	query :=
		`UPDATE subworks SET name = $3, description = $4, unit = $5, updated_at = now()
		 WHERE id = $1 AND user_id = $2
		 `

	res, err := r.db.ExecContext(ctx, query, s.ID, s.UserID, s.Name, s.Description, s.Unit)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.AffectedOne(res, common.ErrorNotFound)
}

func (r *PostgresRepository) SetDefaultRate(ctx context.Context, userID, id, unit string, rate decimal.Decimal) error {
	query :=
		`UPDATE subworks SET unit = $3, default_rate = $4, updated_at = now()
		 WHERE id = $1 AND user_id = $2
		 `

	res, err := r.db.ExecContext(ctx, query, id, userID, unit, rate)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.AffectedOne(res, common.ErrorNotFound)
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM subworks WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.AffectedOne(res, common.ErrorNotFound)
}

func (r *PostgresRepository) List(ctx context.Context, userID string) ([]*models.Subwork, error) {
	query :=
		`SELECT id, user_id, work_id, name, description, unit, default_rate
		 FROM subworks
		 WHERE user_id = $1
		 ORDER BY created_at
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []*models.Subwork
	for rows.Next() {
		s := &models.Subwork{}
		if err := rows.Scan(&s.ID, &s.UserID, &s.WorkID, &s.Name, &s.Description, &s.Unit, &s.DefaultRate); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}
