package service

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/Shahriar-Fardows/snowfye-server/internal/domain"
	"github.com/Shahriar-Fardows/snowfye-server/internal/repository"
)

type PromoService struct {
	repo repository.PromoRepository
}

func NewPromoService(repo repository.PromoRepository) *PromoService {
	return &PromoService{repo: repo}
}

func (s *PromoService) List(ctx context.Context) ([]domain.PromoCode, error) {
	codes, err := s.repo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list promo codes")
	}
	return codes, nil
}

// Add stores code. An empty Code or a zero DiscountPercent counts as missing.
func (s *PromoService) Add(ctx context.Context, code domain.PromoCode) (domain.InsertResult, error) {
	if code.Code == "" || code.DiscountPercent == 0 {
		return domain.InsertResult{}, invalidArgument("code and discountPercent are required")
	}

	id, err := s.repo.Insert(ctx, code)
	if err != nil {
		return domain.InsertResult{}, errors.Wrap(err, "add promo code")
	}
	return domain.InsertResult{Acknowledged: true, InsertedID: id}, nil
}
