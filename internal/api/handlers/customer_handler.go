package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"order-service/internal/models"
	"order-service/internal/repository"

	"github.com/go-chi/chi/v5"
)

type CustomerHandler struct {
	orders  repository.OrderRepository
	clients repository.ClientRepository
	shops   repository.ShopRepository
	rnd     *Renderer
}

func NewCustomerHandler(
	orders repository.OrderRepository,
	clients repository.ClientRepository,
	shops repository.ShopRepository,
	rnd *Renderer,
) *CustomerHandler {
	return &CustomerHandler{orders: orders, clients: clients, shops: shops, rnd: rnd}
}

type customerOrdersPage struct {
	Flash       *Flash
	Orders      []models.Order
	SearchEmail string
}

// List shows the customer's orders when an email filter is given, or the
// 50 most recent orders otherwise.
func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")

	page := customerOrdersPage{
		Flash:       popFlash(w, r),
		SearchEmail: email,
	}

	if email != "" {
		if _, err := h.clients.GetByEmail(r.Context(), email); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				page.Flash = &Flash{Category: "warning", Message: "Client not found"}
				h.rnd.render(w, "customer_orders", page)
				return
			}
			log.Printf("failed to look up client: %v", err)
			redirectWithFlash(w, r, "/", "danger", "Internal server error")
			return
		}
	}

	filter := repository.OrderFilter{ClientEmail: email}
	if email == "" {
		filter.Limit = 50
	}

	orders, err := h.orders.List(r.Context(), filter)
	if err != nil {
		log.Printf("failed to list customer orders: %v", err)
		redirectWithFlash(w, r, "/", "danger", "Internal server error")
		return
	}

	page.Orders = orders
	h.rnd.render(w, "customer_orders", page)
}

type orderPage struct {
	Flash    *Flash
	Order    *models.Order
	Items    []models.OrderedGood
	Receipt  *models.Receipt
	Shops    []models.Shop
	Workers  []models.Worker
	Statuses []models.OrderStatus
	UserType string
	Editable bool
}

func (h *CustomerHandler) loadOrderPage(w http.ResponseWriter, r *http.Request) (*orderPage, bool) {
	number := chi.URLParam(r, "orderNumber")

	order, err := h.orders.GetByNumber(r.Context(), number)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			redirectWithFlash(w, r, "/", "warning", "Order not found")
		} else {
			log.Printf("failed to get order %s: %v", number, err)
			redirectWithFlash(w, r, "/", "danger", "Internal server error")
		}
		return nil, false
	}

	items, err := h.orders.GetItems(r.Context(), number)
	if err != nil {
		log.Printf("failed to get items for order %s: %v", number, err)
		redirectWithFlash(w, r, "/", "danger", "Internal server error")
		return nil, false
	}

	return &orderPage{
		Flash:    popFlash(w, r),
		Order:    order,
		Items:    items,
		UserType: "customer",
	}, true
}

// View is the read-only order page.
func (h *CustomerHandler) View(w http.ResponseWriter, r *http.Request) {
	page, ok := h.loadOrderPage(w, r)
	if !ok {
		return
	}

	h.rnd.render(w, "edit_order", page)
}

// EditForm shows the shop-reassignment form, but only while the order is
// still editable.
func (h *CustomerHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	page, ok := h.loadOrderPage(w, r)
	if !ok {
		return
	}

	if !page.Order.Status.Editable() {
		redirectWithFlash(w, r, "/customer", "warning",
			"You can only edit orders awaiting confirmation")
		return
	}

	shops, err := h.shops.GetAll(r.Context())
	if err != nil {
		log.Printf("failed to get shops: %v", err)
		redirectWithFlash(w, r, "/customer", "danger", "Internal server error")
		return
	}

	page.Shops = shops
	page.Editable = true
	h.rnd.render(w, "edit_order", page)
}

// Edit applies the shop reassignment. The repository enforces the status
// gate again, so a form submitted after the status moved on is rejected.
func (h *CustomerHandler) Edit(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "orderNumber")

	shopID, err := strconv.Atoi(r.FormValue("shop_id"))
	if err != nil || shopID <= 0 {
		redirectWithFlash(w, r, "/customer", "warning", "Invalid shop")
		return
	}

	if _, err := h.shops.GetByID(r.Context(), shopID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			redirectWithFlash(w, r, "/customer/order/"+number+"/edit", "warning", "Shop not found")
		} else {
			log.Printf("failed to get shop %d: %v", shopID, err)
			redirectWithFlash(w, r, "/customer", "danger", "Internal server error")
		}
		return
	}

	err = h.orders.ReassignShop(r.Context(), number, shopID)
	switch {
	case err == nil:
		redirectWithFlash(w, r, "/customer", "success", "Order updated")
	case errors.Is(err, repository.ErrNotFound):
		redirectWithFlash(w, r, "/", "warning", "Order not found")
	case errors.Is(err, repository.ErrNotAllowed):
		redirectWithFlash(w, r, "/customer", "warning",
			"You can only edit orders awaiting confirmation")
	default:
		log.Printf("failed to reassign shop for order %s: %v", number, err)
		redirectWithFlash(w, r, "/customer", "danger", "Failed to update order")
	}
}

func (h *CustomerHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "orderNumber")

	err := h.orders.Cancel(r.Context(), number)
	switch {
	case err == nil:
		redirectWithFlash(w, r, "/customer", "info", "Order cancelled")
	case errors.Is(err, repository.ErrNotFound):
		redirectWithFlash(w, r, "/", "warning", "Order not found")
	case errors.Is(err, repository.ErrNotAllowed):
		redirectWithFlash(w, r, "/customer", "warning",
			"The order cannot be cancelled in its current status")
	default:
		log.Printf("failed to cancel order %s: %v", number, err)
		redirectWithFlash(w, r, "/customer", "danger", "Failed to cancel order")
	}
}
