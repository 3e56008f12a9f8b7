package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"order-service/internal/models"
	"order-service/internal/ordernum"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type orderRepo struct {
	db *pgxpool.Pool
}

func NewOrderRepository(db *pgxpool.Pool) OrderRepository {
	return &orderRepo{db: db}
}

// Create inserts the order and its receipt in one transaction. Any
// failure rolls the whole thing back.
func (r *orderRepo) Create(ctx context.Context, req NewOrder) (*models.Order, *models.Receipt, error) {
	if req.ClientID <= 0 {
		return nil, nil, fmt.Errorf("%w: client id must be positive", ErrInvalidInput)
	}
	if req.TotalPrice < 0 {
		return nil, nil, fmt.Errorf("%w: total_price cannot be negative", ErrInvalidInput)
	}

	status := req.Status
	if status == "" {
		status = models.StatusNew
	}
	if !status.Valid() {
		return nil, nil, fmt.Errorf("%w: invalid status '%s'", ErrInvalidInput, status)
	}

	payment := req.PaymentMethod
	if payment == "" {
		payment = models.PaymentUnpaid
	}
	if !payment.Valid() {
		return nil, nil, fmt.Errorf("%w: invalid payment method '%s'", ErrInvalidInput, payment)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	order := models.Order{
		OrderNumber: ordernum.Order(),
		ClientID:    req.ClientID,
		ShopID:      req.ShopID,
		TotalPrice:  req.TotalPrice,
		Status:      status,
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO orders (order_number, client_id, shop_id, date_of_order, total_price, status)
		VALUES ($1, $2, $3, CURRENT_DATE, $4, $5)
		RETURNING date_of_order`,
		order.OrderNumber, order.ClientID, order.ShopID, order.TotalPrice, string(order.Status),
	).Scan(&order.DateOfOrder)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return nil, nil, fmt.Errorf("%w: order number collision", ErrDuplicate)
			case "23503":
				return nil, nil, fmt.Errorf("%w: client %d", ErrNotFound, req.ClientID)
			}
		}
		return nil, nil, fmt.Errorf("failed to create order: %w", err)
	}

	receipt := models.Receipt{
		ReceiptNumber: ordernum.Receipt(),
		TotalPrice:    req.TotalPrice,
		PaymentMethod: payment,
		WorkerID:      req.WorkerID,
		ClientID:      req.ClientID,
		OrderNumber:   order.OrderNumber,
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO receipts (receipt_number, date_of_order, total_price, payment_method, shop_worker_id, client_id, order_id)
		VALUES ($1, CURRENT_DATE, $2, $3, $4, $5, $6)
		RETURNING date_of_order`,
		receipt.ReceiptNumber, receipt.TotalPrice, string(receipt.PaymentMethod),
		receipt.WorkerID, receipt.ClientID, receipt.OrderNumber,
	).Scan(&receipt.DateOfOrder)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, nil, fmt.Errorf("%w: receipt number collision", ErrDuplicate)
		}
		return nil, nil, fmt.Errorf("failed to create receipt: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &order, &receipt, nil
}

const orderColumns = `
	o.order_number,
	o.client_id,
	o.shop_id,
	COALESCE(o.date_of_order, '0001-01-01'::date),
	COALESCE(o.total_price, 0),
	COALESCE(o.status, ''),
	c.name,
	c.email,
	COALESCE(s.name, '')
	FROM orders o
	JOIN clients c ON c.id = o.client_id
	LEFT JOIN shops s ON s.id = o.shop_id`

func scanOrder(row pgx.Row, o *models.Order) error {
	return row.Scan(
		&o.OrderNumber,
		&o.ClientID,
		&o.ShopID,
		&o.DateOfOrder,
		&o.TotalPrice,
		&o.Status,
		&o.ClientName,
		&o.ClientEmail,
		&o.ShopName,
	)
}

func (r *orderRepo) List(ctx context.Context, filter OrderFilter) ([]models.Order, error) {
	sql := "SELECT " + orderColumns
	var (
		conds []string
		args  []interface{}
	)

	add := func(cond string, arg interface{}) {
		args = append(args, arg)
		conds = append(conds, cond+"$"+strconv.Itoa(len(args)))
	}

	if filter.ClientEmail != "" {
		add("c.email = ", filter.ClientEmail)
	}
	if filter.Status != "" {
		add("o.status = ", string(filter.Status))
	}
	if filter.ShopID > 0 {
		add("o.shop_id = ", filter.ShopID)
	}
	if filter.DateFrom != nil {
		add("o.date_of_order >= ", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		add("o.date_of_order <= ", *filter.DateTo)
	}

	for i, cond := range conds {
		if i == 0 {
			sql += " WHERE " + cond
		} else {
			sql += " AND " + cond
		}
	}

	sql += " ORDER BY o.date_of_order DESC, o.order_number"

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		sql += " LIMIT $" + strconv.Itoa(len(args))
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	defer rows.Close()

	orders := []models.Order{}

	for rows.Next() {
		var o models.Order
		if err := scanOrder(rows, &o); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to complete row iteration: %w", err)
	}

	return orders, nil
}

func (r *orderRepo) GetByNumber(ctx context.Context, number string) (*models.Order, error) {
	if number == "" {
		return nil, fmt.Errorf("%w: order number cannot be empty", ErrInvalidInput)
	}

	var o models.Order
	row := r.db.QueryRow(ctx, "SELECT "+orderColumns+" WHERE o.order_number = $1", number)
	if err := scanOrder(row, &o); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order %s: %w", number, err)
	}

	return &o, nil
}

func (r *orderRepo) GetReceipt(ctx context.Context, orderNumber string) (*models.Receipt, error) {
	if orderNumber == "" {
		return nil, fmt.Errorf("%w: order number cannot be empty", ErrInvalidInput)
	}

	sql := `
	SELECT
	receipt_number,
	COALESCE(date_of_order, '0001-01-01'::date),
	COALESCE(total_price, 0),
	COALESCE(payment_method, ''),
	shop_worker_id,
	COALESCE(client_id, 0),
	order_id
	FROM receipts WHERE order_id = $1`

	var rc models.Receipt

	err := r.db.QueryRow(ctx, sql, orderNumber).Scan(
		&rc.ReceiptNumber,
		&rc.DateOfOrder,
		&rc.TotalPrice,
		&rc.PaymentMethod,
		&rc.WorkerID,
		&rc.ClientID,
		&rc.OrderNumber,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get receipt for order %s: %w", orderNumber, err)
	}

	return &rc, nil
}

// GetItems returns the order's line items with the good name pulled
// through the invoice the item references.
func (r *orderRepo) GetItems(ctx context.Context, orderNumber string) ([]models.OrderedGood, error) {
	if orderNumber == "" {
		return nil, fmt.Errorf("%w: order number cannot be empty", ErrInvalidInput)
	}

	sql := `
	SELECT
	og.id,
	og.quantity,
	og.price_per_unit,
	og.subtotal,
	og.order_id,
	og.invoice_id,
	COALESCE(g.name, '')
	FROM ordered_goods og
	JOIN invoices i ON i.invoice_number = og.invoice_id
	LEFT JOIN list_of_goods g ON g.id = i.good_id
	WHERE og.order_id = $1
	ORDER BY og.id`

	rows, err := r.db.Query(ctx, sql, orderNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to get order items: %w", err)
	}

	defer rows.Close()

	items := []models.OrderedGood{}

	for rows.Next() {
		var it models.OrderedGood
		err := rows.Scan(
			&it.ID,
			&it.Quantity,
			&it.PricePerUnit,
			&it.Subtotal,
			&it.OrderNumber,
			&it.InvoiceID,
			&it.GoodName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to complete row iteration: %w", err)
	}

	return items, nil
}

func (r *orderRepo) DistinctStatuses(ctx context.Context) ([]models.OrderStatus, error) {
	rows, err := r.db.Query(ctx,
		"SELECT DISTINCT status FROM orders WHERE status IS NOT NULL AND status <> '' ORDER BY status")
	if err != nil {
		return nil, fmt.Errorf("failed to get statuses: %w", err)
	}

	defer rows.Close()

	var statuses []models.OrderStatus

	for rows.Next() {
		var s models.OrderStatus
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("failed to scan status: %w", err)
		}
		statuses = append(statuses, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to complete row iteration: %w", err)
	}

	return statuses, nil
}

func (r *orderRepo) lockStatus(ctx context.Context, tx pgx.Tx, number string) (models.OrderStatus, error) {
	var status models.OrderStatus
	err := tx.QueryRow(ctx,
		"SELECT status FROM orders WHERE order_number = $1 FOR UPDATE", number).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get order %s: %w", number, err)
	}
	return status, nil
}

// ReassignShop is the customer edit: allowed only while the status is
// editable, and it also resets the order date to today.
func (r *orderRepo) ReassignShop(ctx context.Context, number string, shopID int) error {
	if number == "" {
		return fmt.Errorf("%w: order number cannot be empty", ErrInvalidInput)
	}
	if shopID <= 0 {
		return fmt.Errorf("%w: shop ID must be positive", ErrInvalidInput)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	status, err := r.lockStatus(ctx, tx, number)
	if err != nil {
		return err
	}
	if !status.Editable() {
		return ErrNotAllowed
	}

	_, err = tx.Exec(ctx,
		"UPDATE orders SET shop_id = $1, date_of_order = CURRENT_DATE WHERE order_number = $2",
		shopID, number)
	if err != nil {
		return fmt.Errorf("failed to reassign shop for order %s: %w", number, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Cancel sets the status to Cancelled and marks the receipt's payment
// method as Refund when a receipt exists.
func (r *orderRepo) Cancel(ctx context.Context, number string) error {
	if number == "" {
		return fmt.Errorf("%w: order number cannot be empty", ErrInvalidInput)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	status, err := r.lockStatus(ctx, tx, number)
	if err != nil {
		return err
	}
	if !status.Cancellable() {
		return ErrNotAllowed
	}

	_, err = tx.Exec(ctx,
		"UPDATE orders SET status = $1 WHERE order_number = $2",
		string(models.StatusCancelled), number)
	if err != nil {
		return fmt.Errorf("failed to cancel order %s: %w", number, err)
	}

	_, err = tx.Exec(ctx,
		"UPDATE receipts SET payment_method = $1 WHERE order_id = $2",
		string(models.PaymentRefund), number)
	if err != nil {
		return fmt.Errorf("failed to mark receipt refunded for order %s: %w", number, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// StaffUpdate has no status gating: staff may rewrite the order and the
// paired receipt freely.
func (r *orderRepo) StaffUpdate(ctx context.Context, number string, upd StaffUpdate) error {
	if number == "" {
		return fmt.Errorf("%w: order number cannot be empty", ErrInvalidInput)
	}
	if !upd.Status.Valid() {
		return fmt.Errorf("%w: invalid status '%s'", ErrInvalidInput, upd.Status)
	}
	if !upd.PaymentMethod.Valid() {
		return fmt.Errorf("%w: invalid payment method '%s'", ErrInvalidInput, upd.PaymentMethod)
	}
	if upd.TotalPrice < 0 {
		return fmt.Errorf("%w: total_price cannot be negative", ErrInvalidInput)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	result, err := tx.Exec(ctx, `
		UPDATE orders
		SET shop_id = $1, status = $2, total_price = $3
		WHERE order_number = $4`,
		upd.ShopID, string(upd.Status), upd.TotalPrice, number)
	if err != nil {
		return fmt.Errorf("failed to update order %s: %w", number, err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	_, err = tx.Exec(ctx, `
		UPDATE receipts
		SET payment_method = $1, total_price = $2,
		    shop_worker_id = COALESCE($3, shop_worker_id)
		WHERE order_id = $4`,
		string(upd.PaymentMethod), upd.TotalPrice, upd.WorkerID, number)
	if err != nil {
		return fmt.Errorf("failed to update receipt for order %s: %w", number, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Delete removes the receipt (with its positions), the line items and the
// order itself in one transaction, so no orphaned rows survive.
func (r *orderRepo) Delete(ctx context.Context, number string) error {
	if number == "" {
		return fmt.Errorf("%w: order number cannot be empty", ErrInvalidInput)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		DELETE FROM receipt_positions
		WHERE receipt_id IN (SELECT receipt_number FROM receipts WHERE order_id = $1)`, number)
	if err != nil {
		return fmt.Errorf("failed to delete receipt positions: %w", err)
	}

	_, err = tx.Exec(ctx, "DELETE FROM receipts WHERE order_id = $1", number)
	if err != nil {
		return fmt.Errorf("failed to delete receipt: %w", err)
	}

	_, err = tx.Exec(ctx, "DELETE FROM ordered_goods WHERE order_id = $1", number)
	if err != nil {
		return fmt.Errorf("failed to delete order items: %w", err)
	}

	result, err := tx.Exec(ctx, "DELETE FROM orders WHERE order_number = $1", number)
	if err != nil {
		return fmt.Errorf("failed to delete order %s: %w", number, err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
