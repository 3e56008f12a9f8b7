package repository

import (
	"context"
	"time"

	"order-service/internal/models"
)

// NewOrder carries one staff creation. The client is resolved (or
// created) by the handler first; order and receipt are inserted together.
type NewOrder struct {
	ClientID      int
	ShopID        *int
	WorkerID      *int
	TotalPrice    float64
	Status        models.OrderStatus
	PaymentMethod models.PaymentMethod
}

// OrderFilter combines the staff and customer list filters. Zero values
// mean "no filter"; date bounds are inclusive calendar dates.
type OrderFilter struct {
	ClientEmail string
	Status      models.OrderStatus
	ShopID      int
	DateFrom    *time.Time
	DateTo      *time.Time
	Limit       int
}

// StaffUpdate is the unrestricted edit: order fields plus the paired
// receipt's payment method, total and assigned worker.
type StaffUpdate struct {
	ShopID        *int
	Status        models.OrderStatus
	TotalPrice    float64
	PaymentMethod models.PaymentMethod
	WorkerID      *int
}

type OrderRepository interface {
	Create(ctx context.Context, req NewOrder) (*models.Order, *models.Receipt, error)
	List(ctx context.Context, filter OrderFilter) ([]models.Order, error)
	GetByNumber(ctx context.Context, number string) (*models.Order, error)
	GetReceipt(ctx context.Context, orderNumber string) (*models.Receipt, error)
	GetItems(ctx context.Context, orderNumber string) ([]models.OrderedGood, error)
	DistinctStatuses(ctx context.Context) ([]models.OrderStatus, error)

	ReassignShop(ctx context.Context, number string, shopID int) error
	Cancel(ctx context.Context, number string) error
	StaffUpdate(ctx context.Context, number string, upd StaffUpdate) error
	Delete(ctx context.Context, number string) error
}

type ClientRepository interface {
	Create(ctx context.Context, client *models.Client) error
	GetByID(ctx context.Context, id int) (*models.Client, error)
	GetByEmail(ctx context.Context, email string) (*models.Client, error)
	GetAll(ctx context.Context) ([]models.Client, error)
	Search(ctx context.Context, query string, limit int) ([]models.Client, error)
}

type GoodsRepository interface {
	GetByID(ctx context.Context, id int) (*models.Good, error)
	Search(ctx context.Context, query string, limit int) ([]models.Good, error)
}

type ShopRepository interface {
	GetAll(ctx context.Context) ([]models.Shop, error)
	GetByID(ctx context.Context, id int) (*models.Shop, error)
}

type WorkerRepository interface {
	GetAll(ctx context.Context) ([]models.Worker, error)
}
