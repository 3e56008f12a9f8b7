package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"order-service/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type clientRepo struct {
	db *pgxpool.Pool
}

var validate = validator.New()

func NewClientRepository(db *pgxpool.Pool) ClientRepository {
	return &clientRepo{db: db}
}

func (r *clientRepo) Create(ctx context.Context, c *models.Client) error {
	if err := validate.Struct(c); err != nil {
		var validationErr validator.ValidationErrors
		if errors.As(err, &validationErr) {
			firstErr := validationErr[0]
			switch firstErr.Field() {
			case "Email":
				return fmt.Errorf("%w: invalid email format", ErrInvalidInput)
			case "PhoneNumber":
				return fmt.Errorf("%w: phone_number is required", ErrInvalidInput)
			case "Name":
				return fmt.Errorf("%w: name must be 2-150 characters", ErrInvalidInput)
			}
		}
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	sql := `
		INSERT INTO clients (
			name,
			phone_number,
			email,
			date_of_birth
	) VALUES ($1, $2, $3, NULLIF($4, '0001-01-01'::date))
	RETURNING id
	`

	err := r.db.QueryRow(ctx, sql,
		c.Name,
		c.PhoneNumber,
		c.Email,
		c.DateOfBirth,
	).Scan(&c.ClientID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return duplicateClientError(pgErr)
		}
		return fmt.Errorf("create client: %w", err)
	}

	return nil
}

// duplicateClientError names the column behind a unique-constraint breach
// on clients, so a concurrent create of the same email and of the same
// phone report different messages.
func duplicateClientError(pgErr *pgconn.PgError) error {
	switch {
	case strings.Contains(pgErr.ConstraintName, "email"):
		return fmt.Errorf("%w: email already exists", ErrDuplicate)
	case strings.Contains(pgErr.ConstraintName, "phone_number"):
		return fmt.Errorf("%w: phone_number already exists", ErrDuplicate)
	}
	return fmt.Errorf("%w: %s", ErrDuplicate, pgErr.ConstraintName)
}

func (r *clientRepo) GetByID(ctx context.Context, id int) (*models.Client, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: ID must be positive", ErrInvalidInput)
	}

	sql := `
		SELECT
		id,
		name,
		phone_number,
		email,
		COALESCE(date_of_birth, '0001-01-01'::date)
		FROM clients WHERE id = $1
	`

	var client models.Client

	err := r.db.QueryRow(ctx, sql, id).Scan(
		&client.ClientID,
		&client.Name,
		&client.PhoneNumber,
		&client.Email,
		&client.DateOfBirth,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get client with id %d: %w", id, err)
	}

	return &client, nil
}

func (r *clientRepo) GetByEmail(ctx context.Context, email string) (*models.Client, error) {
	if email == "" {
		return nil, fmt.Errorf("%w: email cannot be empty", ErrInvalidInput)
	}

	sql := `
		SELECT
		id,
		name,
		phone_number,
		email,
		COALESCE(date_of_birth, '0001-01-01'::date)
		FROM clients WHERE email = $1
	`

	var client models.Client

	err := r.db.QueryRow(ctx, sql, email).Scan(
		&client.ClientID,
		&client.Name,
		&client.PhoneNumber,
		&client.Email,
		&client.DateOfBirth,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get client by email: %w", err)
	}

	return &client, nil
}

func (r *clientRepo) GetAll(ctx context.Context) ([]models.Client, error) {
	sql := `
	SELECT
	id,
	name,
	phone_number,
	email,
	COALESCE(date_of_birth, '0001-01-01'::date)
	FROM clients
	ORDER BY id`

	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("failed to get all clients: %w", err)
	}

	defer rows.Close()

	var clients []models.Client

	for rows.Next() {
		var c models.Client

		err := rows.Scan(&c.ClientID,
			&c.Name,
			&c.PhoneNumber,
			&c.Email,
			&c.DateOfBirth,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan clients: %w", err)
		}
		clients = append(clients, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to complete row iteration: %w", err)
	}

	return clients, nil
}

// Search matches the query as a case-insensitive substring of name, email
// or phone number. An empty query returns no rows.
func (r *clientRepo) Search(ctx context.Context, query string, limit int) ([]models.Client, error) {
	if query == "" {
		return []models.Client{}, nil
	}
	if limit <= 0 {
		limit = 10
	}

	sql := `
	SELECT
	id,
	name,
	phone_number,
	email,
	COALESCE(date_of_birth, '0001-01-01'::date)
	FROM clients
	WHERE name ILIKE $1 OR email ILIKE $1 OR phone_number ILIKE $1
	ORDER BY id
	LIMIT $2`

	pattern := "%" + query + "%"

	rows, err := r.db.Query(ctx, sql, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search clients: %w", err)
	}

	defer rows.Close()

	clients := []models.Client{}

	for rows.Next() {
		var c models.Client

		err := rows.Scan(&c.ClientID,
			&c.Name,
			&c.PhoneNumber,
			&c.Email,
			&c.DateOfBirth,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan clients: %w", err)
		}
		clients = append(clients, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to complete row iteration: %w", err)
	}

	return clients, nil
}
