package repository_test

import (
	"context"
	"os"
	"testing"
	"time"

	"order-service/internal/database"
	"order-service/internal/models"
	"order-service/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openTestDB connects to the database named by TEST_DATABASE_URL and
// applies the migrations. Tests are skipped when the variable is unset.
func openTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping database tests")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	require.NoError(t, pool.Ping(ctx))

	require.NoError(t, database.Migrate(pool, "../database/migrations"))

	t.Cleanup(pool.Close)
	return pool
}

func createTestClient(t *testing.T, clients repository.ClientRepository, email string) *models.Client {
	t.Helper()

	client := &models.Client{
		Name:        "Integration Client",
		PhoneNumber: "+7000" + time.Now().Format("150405.000000"),
		Email:       email,
	}
	require.NoError(t, clients.Create(context.Background(), client))
	return client
}

func createTestOrder(t *testing.T, pool *pgxpool.Pool, email string, status models.OrderStatus) *models.Order {
	t.Helper()

	client := createTestClient(t, repository.NewClientRepository(pool), email)

	orders := repository.NewOrderRepository(pool)
	order, receipt, err := orders.Create(context.Background(), repository.NewOrder{
		ClientID:   client.ClientID,
		TotalPrice: 150.00,
		Status:     status,
	})
	require.NoError(t, err)
	require.NotNil(t, receipt)
	assert.Equal(t, order.OrderNumber, receipt.OrderNumber)

	t.Cleanup(func() {
		_ = orders.Delete(context.Background(), order.OrderNumber)
	})
	return order
}

func TestOrderCreateAndGet(t *testing.T) {
	pool := openTestDB(t)
	orders := repository.NewOrderRepository(pool)
	clients := repository.NewClientRepository(pool)

	email := "it-create-" + time.Now().Format("150405.000") + "@example.com"
	order := createTestOrder(t, pool, email, models.StatusNew)

	// exactly one client row was created and linked
	client, err := clients.GetByEmail(context.Background(), email)
	require.NoError(t, err)
	assert.Equal(t, client.ClientID, order.ClientID)

	got, err := orders.GetByNumber(context.Background(), order.OrderNumber)
	require.NoError(t, err)
	assert.Equal(t, models.StatusNew, got.Status)
	assert.Equal(t, 150.00, got.TotalPrice)
	assert.Equal(t, email, got.ClientEmail)

	receipt, err := orders.GetReceipt(context.Background(), order.OrderNumber)
	require.NoError(t, err)
	assert.Equal(t, 150.00, receipt.TotalPrice)
}

func TestOrderCancelGating(t *testing.T) {
	pool := openTestDB(t)
	orders := repository.NewOrderRepository(pool)

	email := "it-cancel-" + time.Now().Format("150405.000") + "@example.com"
	order := createTestOrder(t, pool, email, models.StatusPending)

	require.NoError(t, orders.Cancel(context.Background(), order.OrderNumber))

	got, err := orders.GetByNumber(context.Background(), order.OrderNumber)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, got.Status)

	receipt, err := orders.GetReceipt(context.Background(), order.OrderNumber)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentRefund, receipt.PaymentMethod)

	// a cancelled order cannot be cancelled again
	err = orders.Cancel(context.Background(), order.OrderNumber)
	assert.ErrorIs(t, err, repository.ErrNotAllowed)
}

func TestOrderReassignShopGating(t *testing.T) {
	pool := openTestDB(t)
	orders := repository.NewOrderRepository(pool)

	email := "it-edit-" + time.Now().Format("150405.000") + "@example.com"
	order := createTestOrder(t, pool, email, models.StatusCompleted)

	err := orders.ReassignShop(context.Background(), order.OrderNumber, 1)
	assert.ErrorIs(t, err, repository.ErrNotAllowed)

	got, err := orders.GetByNumber(context.Background(), order.OrderNumber)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, got.Status)
}

func TestOrderDeleteLeavesNoReceipt(t *testing.T) {
	pool := openTestDB(t)
	orders := repository.NewOrderRepository(pool)

	email := "it-delete-" + time.Now().Format("150405.000") + "@example.com"
	order := createTestOrder(t, pool, email, models.StatusNew)

	require.NoError(t, orders.Delete(context.Background(), order.OrderNumber))

	_, err := orders.GetByNumber(context.Background(), order.OrderNumber)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = orders.GetReceipt(context.Background(), order.OrderNumber)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	items, err := orders.GetItems(context.Background(), order.OrderNumber)
	require.NoError(t, err)
	assert.Empty(t, items)

	err = orders.Delete(context.Background(), order.OrderNumber)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestClientCreateDuplicateEmail(t *testing.T) {
	pool := openTestDB(t)
	clients := repository.NewClientRepository(pool)

	email := "it-dup-" + time.Now().Format("150405.000") + "@example.com"
	createTestClient(t, clients, email)

	dup := &models.Client{
		Name:        "Integration Client",
		PhoneNumber: "+7001" + time.Now().Format("150405.000000"),
		Email:       email,
	}
	err := clients.Create(context.Background(), dup)
	assert.ErrorIs(t, err, repository.ErrDuplicate)
	assert.Contains(t, err.Error(), "email")
}

func TestOrderCreateUnknownClient(t *testing.T) {
	pool := openTestDB(t)
	orders := repository.NewOrderRepository(pool)

	_, _, err := orders.Create(context.Background(), repository.NewOrder{
		ClientID:   999999999,
		TotalPrice: 1,
	})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestClientSearchEmptyQuery(t *testing.T) {
	pool := openTestDB(t)
	clients := repository.NewClientRepository(pool)

	found, err := clients.Search(context.Background(), "", 10)
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestOrderListFilters(t *testing.T) {
	pool := openTestDB(t)
	orders := repository.NewOrderRepository(pool)

	email := "it-list-" + time.Now().Format("150405.000") + "@example.com"
	order := createTestOrder(t, pool, email, models.StatusProcessing)

	listed, err := orders.List(context.Background(), repository.OrderFilter{ClientEmail: email})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, order.OrderNumber, listed[0].OrderNumber)

	listed, err = orders.List(context.Background(), repository.OrderFilter{
		ClientEmail: email,
		Status:      models.StatusCancelled,
	})
	require.NoError(t, err)
	assert.Empty(t, listed)
}
