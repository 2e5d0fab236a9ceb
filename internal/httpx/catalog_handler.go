package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/shopspring/decimal"

	"github.com/sky-yttr/final-exam-devops-soumaya-khady/internal/catalog"
)

// CatalogService is what the handlers need from the catalog layer.
type CatalogService interface {
	ListProducts(ctx context.Context) ([]catalog.Product, error)
	PlaceOrder(ctx context.Context, in catalog.PlaceOrderInput) (catalog.PlacedOrder, error)
}

type CatalogHandler struct {
	Svc CatalogService
}

type CreateOrderReq struct {
	UserID int64               `json:"user_id"`
	Items  []catalog.ItemInput `json:"items"`
}

type CreateOrderResp struct {
	OrderID int64           `json:"orderId"`
	Total   decimal.Decimal `json:"total"`
}

func (h *CatalogHandler) Register(r *chi.Mux) {
	r.Get("/products", h.listProducts)
	r.Post("/orders", h.createOrder)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func (h *CatalogHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	products, err := h.Svc.ListProducts(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "store unavailable")
		return
	}
	if products == nil {
		products = []catalog.Product{}
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *CatalogHandler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	placed, err := h.Svc.PlaceOrder(ctx, catalog.PlaceOrderInput{
		UserID:  req.UserID,
		Items:   req.Items,
		TraceID: middleware.GetReqID(r.Context()),
	})
	if err != nil {
		code := statusFor(err)
		msg := err.Error()
		if code == http.StatusInternalServerError {
			msg = "internal error"
		}
		writeError(w, code, msg)
		return
	}
	writeJSON(w, http.StatusCreated, CreateOrderResp{OrderID: placed.OrderID, Total: placed.Total})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, catalog.ErrProductNotFound):
		return http.StatusNotFound
	case errors.Is(err, catalog.ErrInsufficientStock):
		return http.StatusConflict
	case errors.Is(err, catalog.ErrInvalidUser),
		errors.Is(err, catalog.ErrEmptyOrder),
		errors.Is(err, catalog.ErrInvalidQuantity):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
