package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"order-service/internal/models"
	"order-service/internal/repository"

	"github.com/go-chi/chi/v5"
)

type StaffHandler struct {
	orders  repository.OrderRepository
	clients repository.ClientRepository
	shops   repository.ShopRepository
	workers repository.WorkerRepository
	rnd     *Renderer
}

func NewStaffHandler(
	orders repository.OrderRepository,
	clients repository.ClientRepository,
	shops repository.ShopRepository,
	workers repository.WorkerRepository,
	rnd *Renderer,
) *StaffHandler {
	return &StaffHandler{
		orders:  orders,
		clients: clients,
		shops:   shops,
		workers: workers,
		rnd:     rnd,
	}
}

const dateLayout = "2006-01-02"

type staffOrdersPage struct {
	Flash        *Flash
	Orders       []models.Order
	Statuses     []models.OrderStatus
	Shops        []models.Shop
	StatusFilter string
	ShopFilter   string
	DateFrom     string
	DateTo       string
}

// List shows all orders with combinable status, shop and date filters.
// "all" (and empty) means no filter; date bounds are inclusive.
func (h *StaffHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	statusFilter := q.Get("status")
	shopFilter := q.Get("shop")
	dateFrom := q.Get("date_from")
	dateTo := q.Get("date_to")

	var filter repository.OrderFilter

	if statusFilter != "" && statusFilter != "all" {
		filter.Status = models.OrderStatus(statusFilter)
	}
	if shopFilter != "" && shopFilter != "all" {
		id, err := strconv.Atoi(shopFilter)
		if err != nil {
			redirectWithFlash(w, r, "/staff", "warning", "Invalid shop filter")
			return
		}
		filter.ShopID = id
	}
	if dateFrom != "" {
		t, err := time.Parse(dateLayout, dateFrom)
		if err != nil {
			redirectWithFlash(w, r, "/staff", "warning", "Invalid date_from, expected YYYY-MM-DD")
			return
		}
		filter.DateFrom = &t
	}
	if dateTo != "" {
		t, err := time.Parse(dateLayout, dateTo)
		if err != nil {
			redirectWithFlash(w, r, "/staff", "warning", "Invalid date_to, expected YYYY-MM-DD")
			return
		}
		filter.DateTo = &t
	}

	orders, err := h.orders.List(r.Context(), filter)
	if err != nil {
		log.Printf("failed to list staff orders: %v", err)
		redirectWithFlash(w, r, "/", "danger", "Internal server error")
		return
	}

	statuses, err := h.orders.DistinctStatuses(r.Context())
	if err != nil {
		log.Printf("failed to get statuses: %v", err)
		statuses = nil
	}

	shops, err := h.shops.GetAll(r.Context())
	if err != nil {
		log.Printf("failed to get shops: %v", err)
		shops = nil
	}

	h.rnd.render(w, "staff_orders", staffOrdersPage{
		Flash:        popFlash(w, r),
		Orders:       orders,
		Statuses:     statuses,
		Shops:        shops,
		StatusFilter: statusFilter,
		ShopFilter:   shopFilter,
		DateFrom:     dateFrom,
		DateTo:       dateTo,
	})
}

type createOrderPage struct {
	Flash    *Flash
	Shops    []models.Shop
	Workers  []models.Worker
	Clients  []models.Client
	Statuses []models.OrderStatus
	UserType string
}

func (h *StaffHandler) CreateForm(w http.ResponseWriter, r *http.Request) {
	shops, err := h.shops.GetAll(r.Context())
	if err != nil {
		log.Printf("failed to get shops: %v", err)
		redirectWithFlash(w, r, "/staff", "danger", "Internal server error")
		return
	}
	workers, err := h.workers.GetAll(r.Context())
	if err != nil {
		log.Printf("failed to get workers: %v", err)
		redirectWithFlash(w, r, "/staff", "danger", "Internal server error")
		return
	}
	clients, err := h.clients.GetAll(r.Context())
	if err != nil {
		log.Printf("failed to get clients: %v", err)
		redirectWithFlash(w, r, "/staff", "danger", "Internal server error")
		return
	}

	h.rnd.render(w, "create_order", createOrderPage{
		Flash:    popFlash(w, r),
		Shops:    shops,
		Workers:  workers,
		Clients:  clients,
		Statuses: models.AllStatuses(),
		UserType: "staff",
	})
}

// Create builds the order and its receipt from the form, registering the
// client first when the email is unknown. On failure the user lands back
// on the form with an error flash.
func (h *StaffHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		redirectWithFlash(w, r, "/staff/order/create", "danger", "Invalid form data")
		return
	}

	totalPrice, err := strconv.ParseFloat(r.FormValue("total_price"), 64)
	if err != nil {
		redirectWithFlash(w, r, "/staff/order/create", "danger", "Invalid total price")
		return
	}

	email := r.FormValue("client_email")
	if email == "" {
		redirectWithFlash(w, r, "/staff/order/create", "danger", "Client email is required")
		return
	}

	client, err := h.clients.GetByEmail(r.Context(), email)
	if errors.Is(err, repository.ErrNotFound) {
		client = &models.Client{
			Name:        r.FormValue("client_name"),
			PhoneNumber: r.FormValue("client_phone"),
			Email:       email,
		}
		if cerr := h.clients.Create(r.Context(), client); cerr != nil {
			log.Printf("failed to create client: %v", cerr)
			redirectWithFlash(w, r, "/staff/order/create", "danger", "Failed to register client")
			return
		}
	} else if err != nil {
		log.Printf("failed to look up client: %v", err)
		redirectWithFlash(w, r, "/staff/order/create", "danger", "Internal server error")
		return
	}

	req := repository.NewOrder{
		ClientID:      client.ClientID,
		TotalPrice:    totalPrice,
		Status:        models.OrderStatus(r.FormValue("status")),
		PaymentMethod: models.PaymentMethod(r.FormValue("payment_method")),
	}
	req.ShopID = optionalID(r.FormValue("shop_id"))
	req.WorkerID = optionalID(r.FormValue("worker_id"))

	order, _, err := h.orders.Create(r.Context(), req)
	if err != nil {
		log.Printf("failed to create order: %v", err)
		redirectWithFlash(w, r, "/staff/order/create", "danger", "Failed to create order")
		return
	}

	redirectWithFlash(w, r, "/staff/order/"+order.OrderNumber+"/edit",
		"success", "Order "+order.OrderNumber+" created")
}

func (h *StaffHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "orderNumber")

	order, err := h.orders.GetByNumber(r.Context(), number)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			redirectWithFlash(w, r, "/", "warning", "Order not found")
		} else {
			log.Printf("failed to get order %s: %v", number, err)
			redirectWithFlash(w, r, "/", "danger", "Internal server error")
		}
		return
	}

	items, err := h.orders.GetItems(r.Context(), number)
	if err != nil {
		log.Printf("failed to get items for order %s: %v", number, err)
		redirectWithFlash(w, r, "/staff", "danger", "Internal server error")
		return
	}

	// the receipt may be missing for legacy rows, the page renders without it
	receipt, err := h.orders.GetReceipt(r.Context(), number)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		log.Printf("failed to get receipt for order %s: %v", number, err)
		redirectWithFlash(w, r, "/staff", "danger", "Internal server error")
		return
	}

	shops, err := h.shops.GetAll(r.Context())
	if err != nil {
		log.Printf("failed to get shops: %v", err)
		redirectWithFlash(w, r, "/staff", "danger", "Internal server error")
		return
	}
	workers, err := h.workers.GetAll(r.Context())
	if err != nil {
		log.Printf("failed to get workers: %v", err)
		redirectWithFlash(w, r, "/staff", "danger", "Internal server error")
		return
	}

	h.rnd.render(w, "edit_order", orderPage{
		Flash:    popFlash(w, r),
		Order:    order,
		Items:    items,
		Receipt:  receipt,
		Shops:    shops,
		Workers:  workers,
		Statuses: models.AllStatuses(),
		UserType: "staff",
		Editable: true,
	})
}

func (h *StaffHandler) Edit(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "orderNumber")

	if err := r.ParseForm(); err != nil {
		redirectWithFlash(w, r, "/staff", "danger", "Invalid form data")
		return
	}

	totalPrice, err := strconv.ParseFloat(r.FormValue("total_price"), 64)
	if err != nil {
		redirectWithFlash(w, r, "/staff/order/"+number+"/edit", "danger", "Invalid total price")
		return
	}

	upd := repository.StaffUpdate{
		ShopID:        optionalID(r.FormValue("shop_id")),
		Status:        models.OrderStatus(r.FormValue("status")),
		TotalPrice:    totalPrice,
		PaymentMethod: models.PaymentMethod(r.FormValue("payment_method")),
		WorkerID:      optionalID(r.FormValue("worker_id")),
	}

	err = h.orders.StaffUpdate(r.Context(), number, upd)
	switch {
	case err == nil:
		redirectWithFlash(w, r, "/staff", "success", "Order updated")
	case errors.Is(err, repository.ErrNotFound):
		redirectWithFlash(w, r, "/", "warning", "Order not found")
	case errors.Is(err, repository.ErrInvalidInput):
		redirectWithFlash(w, r, "/staff/order/"+number+"/edit", "danger", "Invalid order data")
	default:
		log.Printf("failed to update order %s: %v", number, err)
		redirectWithFlash(w, r, "/staff/order/"+number+"/edit", "danger", "Failed to update order")
	}
}

func (h *StaffHandler) Delete(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "orderNumber")

	err := h.orders.Delete(r.Context(), number)
	switch {
	case err == nil:
		redirectWithFlash(w, r, "/staff", "info", "Order deleted")
	case errors.Is(err, repository.ErrNotFound):
		redirectWithFlash(w, r, "/", "warning", "Order not found")
	default:
		log.Printf("failed to delete order %s: %v", number, err)
		redirectWithFlash(w, r, "/staff", "danger", "Failed to delete order")
	}
}

func optionalID(value string) *int {
	if value == "" {
		return nil
	}
	id, err := strconv.Atoi(value)
	if err != nil || id <= 0 {
		return nil
	}
	return &id
}
