package projects

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

func (r *PostgresRepository) Create(ctx context.Context, p *models.Project) (*models.Project, error) {
	query :=
		`INSERT INTO projects (id, user_id, name, description, status, client_name, client_number, client_address)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 `

	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx, query,
		id, p.UserID, p.Name, p.Description, p.Status, p.ClientName, p.ClientNumber, p.ClientAddress)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	p.ID = id
	return p, nil
}

func (r *PostgresRepository) Update(ctx context.Context, p *models.Project) error {
	query :=
		`UPDATE projects
		 SET name = $3, description = $4, status = $5,
		     client_name = $6, client_number = $7, client_address = $8, updated_at = now()
		 WHERE id = $1 AND user_id = $2
		 `

	res, err := r.db.ExecContext(ctx, query,
		p.ID, p.UserID, p.Name, p.Description, p.Status, p.ClientName, p.ClientNumber, p.ClientAddress)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.AffectedOne(res, common.ErrorNotFound)
}

// Delete removes the project. Works, subworks and items go with it
// through the foreign keys.
func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.AffectedOne(res, common.ErrorNotFound)
}

func (r *PostgresRepository) List(ctx context.Context, userID string) ([]*models.Project, error) {
	query :=
		`SELECT id, user_id, name, description, status, client_name, client_number, client_address
		 FROM projects
		 WHERE user_id = $1
		 ORDER BY created_at
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []*models.Project
	for rows.Next() {
		p := &models.Project{}
		if err := rows.Scan(&p.ID, &p.UserID, &p.Name, &p.Description, &p.Status,
			&p.ClientName, &p.ClientNumber, &p.ClientAddress); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}
