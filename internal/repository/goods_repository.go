package repository

import (
	"context"
	"errors"
	"fmt"

	"order-service/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type goodsRepo struct {
	db *pgxpool.Pool
}

func NewGoodsRepository(db *pgxpool.Pool) GoodsRepository {
	return &goodsRepo{db: db}
}

func (r *goodsRepo) GetByID(ctx context.Context, id int) (*models.Good, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: ID must be positive", ErrInvalidInput)
	}

	sql := `
	SELECT
	id,
	name,
	category_id,
	unit_id,
	volume_or_weight,
	COALESCE(price, 0)
	FROM list_of_goods WHERE id = $1`

	var g models.Good

	err := r.db.QueryRow(ctx, sql, id).Scan(
		&g.GoodID,
		&g.Name,
		&g.CategoryID,
		&g.UnitID,
		&g.VolumeOrWeight,
		&g.Price,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get good %d: %w", id, err)
	}

	return &g, nil
}

// Search matches the query as a case-insensitive substring of the good
// name. An empty query returns no rows.
func (r *goodsRepo) Search(ctx context.Context, query string, limit int) ([]models.Good, error) {
	if query == "" {
		return []models.Good{}, nil
	}
	if limit <= 0 {
		limit = 10
	}

	sql := `
	SELECT
	id,
	name,
	category_id,
	unit_id,
	volume_or_weight,
	COALESCE(price, 0)
	FROM list_of_goods
	WHERE name ILIKE $1
	ORDER BY id
	LIMIT $2`

	rows, err := r.db.Query(ctx, sql, "%"+query+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search goods: %w", err)
	}

	defer rows.Close()

	goods := []models.Good{}

	for rows.Next() {
		var g models.Good
		err := rows.Scan(
			&g.GoodID,
			&g.Name,
			&g.CategoryID,
			&g.UnitID,
			&g.VolumeOrWeight,
			&g.Price,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan good: %w", err)
		}
		goods = append(goods, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to complete row iteration: %w", err)
	}

	return goods, nil
}
