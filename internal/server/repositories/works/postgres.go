package works

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/civigo/internal/common"
	"github.com/dmitrijs2005/civigo/internal/dbx"
	"github.com/dmitrijs2005/civigo/internal/server/models"
	"github.com/google/uuid"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, w *models.Work) (*models.Work, error) {
	query :=
		`INSERT INTO works (id, user_id, project_id, name, description)
		 SELECT $1, $2, $3, $4, $5
		 WHERE EXISTS (SELECT 1 FROM projects WHERE id = $3 AND user_id = $2)
		 `

	id := uuid.NewString()
	res, err := r.db.ExecContext(ctx, query, id, w.UserID, w.ProjectID, w.Name, w.Description)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if err := dbx.AffectedOne(res, common.ErrorNotFound); err != nil {
		return nil, err
	}

	w.ID = id
	return w, nil
}

// Update changes the descriptive fields. A work never moves to another
// project.
func (r *PostgresRepository) Update(ctx context.Context, w *models.Work) error {
	query :=
		`UPDATE works SET name = $3, description = $4, updated_at = now()
		 WHERE id = $1 AND user_id = $2
		 `

	res, err := r.db.ExecContext(ctx, query, w.ID, w.UserID, w.Name, w.Description)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.AffectedOne(res, common.ErrorNotFound)
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM works WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.AffectedOne(res, common.ErrorNotFound)
}

func (r *PostgresRepository) List(ctx context.Context, userID string) ([]*models.Work, error) {
	query :=
		`SELECT id, user_id, project_id, name, description
		 FROM works
		 WHERE user_id = $1
		 ORDER BY created_at
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []*models.Work
	for rows.Next() {
		w := &models.Work{}
		if err := rows.Scan(&w.ID, &w.UserID, &w.ProjectID, &w.Name, &w.Description); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}
