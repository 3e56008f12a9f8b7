package models

import "time"

type Client struct {
	ClientID    int       `json:"client_id"`
	Name        string    `json:"name" validate:"required,min=2,max=150"`
	PhoneNumber string    `json:"phone_number" validate:"required"`
	Email       string    `json:"email" validate:"required,email"`
	DateOfBirth time.Time `json:"date_of_birth,omitempty"`
}

type Shop struct {
	ShopID            int       `json:"shop_id"`
	Name              string    `json:"name"`
	Address           string    `json:"address"`
	OpenedAt          time.Time `json:"opened_at"`
	PhoneNumber       string    `json:"phone_number"`
	WorkingHoursStart string    `json:"working_hours_start"`
	WorkingHoursEnd   string    `json:"working_hours_end"`
}

type Warehouse struct {
	WarehouseID int       `json:"warehouse_id"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	Capacity    int       `json:"capacity"`
	OpenedAt    time.Time `json:"opened_at"`
}

type Worker struct {
	WorkerID    int       `json:"worker_id"`
	Name        string    `json:"name"`
	WarehouseID *int      `json:"warehouse_id,omitempty"`
	ShopID      *int      `json:"shop_id,omitempty"`
	Position    string    `json:"position"`
	HireDate    time.Time `json:"hire_date"`
	Salary      float64   `json:"salary"`
}

type Good struct {
	GoodID         int     `json:"good_id"`
	Name           string  `json:"name"`
	CategoryID     int     `json:"category_id"`
	UnitID         int     `json:"unit_id"`
	VolumeOrWeight int64   `json:"volume_or_weight"`
	Price          float64 `json:"price"`
}

type GoodsCategory struct {
	CategoryID int    `json:"category_id"`
	Name       string `json:"name"`
}

type UnitOfMeasure struct {
	UnitID int    `json:"unit_id"`
	Name   string `json:"name"`
}

type Supplier struct {
	SupplierID  int    `json:"supplier_id"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
}

type Supply struct {
	SerialID     int       `json:"serial_id"`
	DeliveryDate time.Time `json:"delivery_date"`
	TotalPrice   float64   `json:"total_price"`
	SupplierID   int       `json:"supplier_id"`
	WarehouseID  *int      `json:"warehouse_id,omitempty"`
}

type Order struct {
	OrderNumber string      `json:"order_number"`
	ClientID    int         `json:"client_id"`
	ShopID      *int        `json:"shop_id,omitempty"`
	DateOfOrder time.Time   `json:"date_of_order"`
	TotalPrice  float64     `json:"total_price"`
	Status      OrderStatus `json:"status"`

	// filled by list queries for display, not stored in orders itself
	ClientName  string `json:"client_name,omitempty"`
	ClientEmail string `json:"client_email,omitempty"`
	ShopName    string `json:"shop_name,omitempty"`
}

type Invoice struct {
	InvoiceNumber string     `json:"invoice_number"`
	TotalPrice    float64    `json:"total_price"`
	DispatchDate  time.Time  `json:"dispatch_date"`
	ReceiptDate   *time.Time `json:"receipt_date,omitempty"`
	SupplyID      int        `json:"supply_id"`
	GoodID        *int       `json:"good_id,omitempty"`
	ShopID        *int       `json:"shop_id,omitempty"`
	Status        string     `json:"status"`
}

type OrderedGood struct {
	ID           int     `json:"id"`
	Quantity     int     `json:"quantity"`
	PricePerUnit float64 `json:"price_per_unit"`
	Subtotal     float64 `json:"subtotal"`
	OrderNumber  string  `json:"order_number"`
	InvoiceID    string  `json:"invoice_id"`

	GoodName string `json:"good_name,omitempty"`
}

type Receipt struct {
	ReceiptNumber string        `json:"receipt_number"`
	DateOfOrder   time.Time     `json:"date_of_order"`
	TotalPrice    float64       `json:"total_price"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	WorkerID      *int          `json:"worker_id,omitempty"`
	ClientID      int           `json:"client_id"`
	OrderNumber   string        `json:"order_number"`
}

type ReceiptPosition struct {
	ID            int     `json:"id"`
	Quantity      int     `json:"quantity"`
	PricePerUnit  float64 `json:"price_per_unit"`
	Subtotal      float64 `json:"subtotal"`
	ReceiptNumber string  `json:"receipt_number"`
	InvoiceID     string  `json:"invoice_id"`
}
