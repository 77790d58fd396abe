package items

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

// Create adds it under its subwork, which must belong to it.UserID.
func (r *PostgresRepository) Create(ctx context.Context, it *models.Item) (*models.Item, error) {
	query :=
		`INSERT INTO items (id, user_id, subwork_id, kind, name, number, length, breadth, depth, quantity, rate, total, unit)
		 SELECT $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13
		 WHERE EXISTS (SELECT 1 FROM subworks WHERE id = $3 AND user_id = $2)
		 `

	id := uuid.NewString()
	res, err := r.db.ExecContext(ctx, query,
		id, it.UserID, it.SubworkID, it.Kind, it.Name,
		it.Number, it.Length, it.Breadth, it.Depth, it.Quantity, it.Rate, it.Total, it.Unit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if err := dbx.AffectedOne(res, common.ErrorNotFound); err != nil {
		return nil, err
	}

	it.ID = id
	return it, nil
}

func (r *PostgresRepository) Update(ctx context.Context, it *models.Item) error {
	query :=
		`UPDATE items
		 SET name = $5, number = $6, length = $7, breadth = $8, depth = $9,
		     quantity = $10, rate = $11, total = $12, unit = $13, updated_at = now()
		 WHERE id = $1 AND user_id = $2 AND subwork_id = $3 AND kind = $4
		 `

	res, err := r.db.ExecContext(ctx, query,
		it.ID, it.UserID, it.SubworkID, it.Kind, it.Name,
		it.Number, it.Length, it.Breadth, it.Depth, it.Quantity, it.Rate, it.Total, it.Unit)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.AffectedOne(res, common.ErrorNotFound)
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, subworkID, kind, id string) error {
	query :=
		`DELETE FROM items
		 WHERE id = $1 AND user_id = $2 AND subwork_id = $3 AND kind = $4
		 `

	res, err := r.db.ExecContext(ctx, query, id, userID, subworkID, kind)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.AffectedOne(res, common.ErrorNotFound)
}

// List returns every item of the user's subworks in insertion order.
func (r *PostgresRepository) List(ctx context.Context, userID string) ([]*models.Item, error) {
	query :=
		`SELECT id, user_id, subwork_id, kind, name, number, length, breadth, depth, quantity, rate, total, unit
		 FROM items
		 WHERE user_id = $1
		 ORDER BY created_at
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []*models.Item
	for rows.Next() {
		it := &models.Item{}
		if err := rows.Scan(&it.ID, &it.UserID, &it.SubworkID, &it.Kind, &it.Name,
			&it.Number, &it.Length, &it.Breadth, &it.Depth, &it.Quantity, &it.Rate, &it.Total, &it.Unit); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}
