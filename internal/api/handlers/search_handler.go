package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"order-service/internal/repository"

	"github.com/go-chi/chi/v5"
)

// SearchHandler serves the two JSON lookup endpoints used by the order
// forms. Both return a plain array, never an error object: an empty or
// failing query is an empty array.
type SearchHandler struct {
	clients repository.ClientRepository
	goods   repository.GoodsRepository
}

func NewSearchHandler(clients repository.ClientRepository, goods repository.GoodsRepository) *SearchHandler {
	return &SearchHandler{clients: clients, goods: goods}
}

const searchLimit = 10

type clientResult struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func (h *SearchHandler) Clients(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	results := []clientResult{}

	if query != "" {
		clients, err := h.clients.Search(r.Context(), query, searchLimit)
		if err != nil {
			log.Printf("failed to search clients: %v", err)
			writeJSON(w, http.StatusOK, results)
			return
		}
		for _, c := range clients {
			results = append(results, clientResult{
				ID:    c.ClientID,
				Name:  c.Name,
				Email: c.Email,
				Phone: c.PhoneNumber,
			})
		}
	}

	writeJSON(w, http.StatusOK, results)
}

// Client returns one client by id, used by the order form after a pick
// from the search dropdown.
func (h *SearchHandler) Client(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "clientID"))
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid client id")
		return
	}

	client, err := h.clients.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "client not found")
			return
		}
		log.Printf("failed to get client %d: %v", id, err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, clientResult{
		ID:    client.ClientID,
		Name:  client.Name,
		Email: client.Email,
		Phone: client.PhoneNumber,
	})
}

type goodResult struct {
	ID    int     `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

func (h *SearchHandler) Goods(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	results := []goodResult{}

	if query != "" {
		goods, err := h.goods.Search(r.Context(), query, searchLimit)
		if err != nil {
			log.Printf("failed to search goods: %v", err)
			writeJSON(w, http.StatusOK, results)
			return
		}
		for _, g := range goods {
			results = append(results, goodResult{
				ID:    g.GoodID,
				Name:  g.Name,
				Price: g.Price,
			})
		}
	}

	writeJSON(w, http.StatusOK, results)
}

// Good returns one good by id so the form can fill in the price.
func (h *SearchHandler) Good(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "goodID"))
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid good id")
		return
	}

	good, err := h.goods.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "good not found")
			return
		}
		log.Printf("failed to get good %d: %v", id, err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, goodResult{
		ID:    good.GoodID,
		Name:  good.Name,
		Price: good.Price,
	})
}
