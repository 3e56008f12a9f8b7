package repository

import (
	"context"
	"errors"
	"fmt"

	"order-service/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type shopRepo struct {
	db *pgxpool.Pool
}

func NewShopRepository(db *pgxpool.Pool) ShopRepository {
	return &shopRepo{db: db}
}

const shopColumns = `
	id,
	name,
	COALESCE(address, ''),
	COALESCE(opened_at, '0001-01-01'::date),
	COALESCE(phone_number, ''),
	COALESCE(working_hours_start::text, ''),
	COALESCE(working_hours_end::text, '')
	FROM shops`

func (r *shopRepo) GetAll(ctx context.Context) ([]models.Shop, error) {
	rows, err := r.db.Query(ctx, "SELECT "+shopColumns+" ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to get all shops: %w", err)
	}

	defer rows.Close()

	var shops []models.Shop

	for rows.Next() {
		var s models.Shop
		err := rows.Scan(
			&s.ShopID,
			&s.Name,
			&s.Address,
			&s.OpenedAt,
			&s.PhoneNumber,
			&s.WorkingHoursStart,
			&s.WorkingHoursEnd,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shop: %w", err)
		}
		shops = append(shops, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to complete row iteration: %w", err)
	}

	return shops, nil
}

func (r *shopRepo) GetByID(ctx context.Context, id int) (*models.Shop, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: ID must be positive", ErrInvalidInput)
	}

	var s models.Shop
	err := r.db.QueryRow(ctx, "SELECT "+shopColumns+" WHERE id = $1", id).Scan(
		&s.ShopID,
		&s.Name,
		&s.Address,
		&s.OpenedAt,
		&s.PhoneNumber,
		&s.WorkingHoursStart,
		&s.WorkingHoursEnd,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get shop %d: %w", id, err)
	}

	return &s, nil
}

type workerRepo struct {
	db *pgxpool.Pool
}

func NewWorkerRepository(db *pgxpool.Pool) WorkerRepository {
	return &workerRepo{db: db}
}

func (r *workerRepo) GetAll(ctx context.Context) ([]models.Worker, error) {
	sql := `
	SELECT
	id,
	name,
	warehouse_id,
	shop_id,
	COALESCE(position, ''),
	COALESCE(hire_date, '0001-01-01'::date),
	COALESCE(salary, 0)
	FROM workers
	ORDER BY id`

	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("failed to get all workers: %w", err)
	}

	defer rows.Close()

	var workers []models.Worker

	for rows.Next() {
		var w models.Worker
		err := rows.Scan(
			&w.WorkerID,
			&w.Name,
			&w.WarehouseID,
			&w.ShopID,
			&w.Position,
			&w.HireDate,
			&w.Salary,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan worker: %w", err)
		}
		workers = append(workers, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to complete row iteration: %w", err)
	}

	return workers, nil
}
