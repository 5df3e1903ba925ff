package http

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/Shahriar-Fardows/snowfye-server/internal/domain"
	"github.com/Shahriar-Fardows/snowfye-server/internal/service"
)

type PromoService interface {
	List(ctx context.Context) ([]domain.PromoCode, error)
	Add(ctx context.Context, code domain.PromoCode) (domain.InsertResult, error)
}

type PromoHandler struct {
	promo   PromoService
	timeout time.Duration
	lg      *zap.Logger
}

func NewPromoHandler(promo PromoService, timeout time.Duration, lg *zap.Logger) *PromoHandler {
	return &PromoHandler{
		promo:   promo,
		timeout: timeout,
		lg:      lg,
	}
}

func (h *PromoHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	codes, err := h.promo.List(ctx)
	if err != nil {
		handleServiceError(w, r, h.lg, err, "Failed to fetch promo codes")
		return
	}
	respondJSON(w, http.StatusOK, codes)
}

func (h *PromoHandler) Add(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var code domain.PromoCode
	if err := decodeJSON(r, &code); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	res, err := h.promo.Add(ctx, code)
	if err != nil {
		if status, c := statusFor(err); status == http.StatusBadRequest {
			respondError(w, status, c, "Missing required fields")
			return
		}
		handleServiceError(w, r, h.lg, err, "Failed to add promo code")
		return
	}
	respondJSON(w, http.StatusOK, res)
}

var _ PromoService = (*service.PromoService)(nil)
