package http

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/Shahriar-Fardows/snowfye-server/internal/domain"
	"github.com/Shahriar-Fardows/snowfye-server/internal/repository"
	"github.com/Shahriar-Fardows/snowfye-server/internal/service"
)

type CartService interface {
	List(ctx context.Context) ([]domain.CartItem, error)
	Add(ctx context.Context, item domain.CartItem) (domain.InsertResult, error)
	AdjustQuantity(ctx context.Context, id string, delta int64) (domain.AdjustResult, error)
	Delete(ctx context.Context, id string) (domain.DeleteResult, error)
}

type CartHandler struct {
	cart    CartService
	timeout time.Duration
	lg      *zap.Logger
}

func NewCartHandler(cart CartService, timeout time.Duration, lg *zap.Logger) *CartHandler {
	return &CartHandler{
		cart:    cart,
		timeout: timeout,
		lg:      lg,
	}
}

type UpdateQuantityRequestDTO struct {
	// Quantity is added to the stored quantity, it is not the new value.
	Quantity json.RawMessage `json:"quantity"`
}

type UpdateQuantityResponseDTO struct {
	Message       string  `json:"message"`
	NewQuantity   int64   `json:"newQuantity"`
	NewTotalPrice float64 `json:"newTotalPrice"`
}

func (h *CartHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	items, err := h.cart.List(ctx)
	if err != nil {
		handleServiceError(w, r, h.lg, err, "failed to fetch cart")
		return
	}

	respondJSON(w, http.StatusOK, items)
}

func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var item domain.CartItem
	if err := decodeJSON(r, &item); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	res, err := h.cart.Add(ctx, item)
	if err != nil {
		handleServiceError(w, r, h.lg, err, "failed to add cart item")
		return
	}

	respondJSON(w, http.StatusOK, res)
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id := chi.URLParam(r, "id")

	var req UpdateQuantityRequestDTO
	if err := decodeJSON(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, MessageResponse{Message: "Invalid quantity value"})
		return
	}
	delta, ok := parseDelta(req.Quantity)
	if !ok {
		respondJSON(w, http.StatusBadRequest, MessageResponse{Message: "Invalid quantity value"})
		return
	}

	res, err := h.cart.AdjustQuantity(ctx, id, delta)
	if err != nil {
		status, _ := statusFor(err)
		switch status {
		case http.StatusBadRequest:
			msg := "Invalid quantity value"
			if errors.Is(err, repository.ErrInvalidID) {
				msg = "Invalid cart item id"
			}
			respondJSON(w, status, MessageResponse{Message: msg})
		case http.StatusNotFound:
			respondJSON(w, status, MessageResponse{Message: "Product not found in cart"})
		case http.StatusConflict:
			respondJSON(w, status, MessageResponse{Message: "Cart item is being modified, retry"})
		default:
			logFailure(r, h.lg, err)
			respondJSON(w, http.StatusInternalServerError, MessageResponse{Message: "Internal Server Error"})
		}
		return
	}

	if res.Removed {
		respondJSON(w, http.StatusOK, MessageResponse{Message: "Product removed from cart"})
		return
	}
	respondJSON(w, http.StatusOK, UpdateQuantityResponseDTO{
		Message:       "Cart updated successfully",
		NewQuantity:   res.Quantity,
		NewTotalPrice: res.TotalPrice,
	})
}

func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	res, err := h.cart.Delete(ctx, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, r, h.lg, err, "failed to delete cart item")
		return
	}

	respondJSON(w, http.StatusOK, res)
}

// parseDelta accepts a JSON number with no fractional part. Strings, null,
// booleans and fractions are rejected.
func parseDelta(raw json.RawMessage) (int64, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return 0, false
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return 0, false
	}
	num, ok := v.(json.Number)
	if !ok {
		return 0, false
	}

	if n, err := num.Int64(); err == nil {
		return n, true
	}
	f, err := num.Float64()
	if err != nil || f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

var _ CartService = (*service.CartService)(nil)
