package service

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Shahriar-Fardows/snowfye-server/internal/domain"
	"github.com/Shahriar-Fardows/snowfye-server/internal/events"
	"github.com/Shahriar-Fardows/snowfye-server/internal/repository"
)

// maxAdjustAttempts bounds how often AdjustQuantity re-reads an item whose
// quantity changed under it.
const maxAdjustAttempts = 5

// CartService owns the line item mutation rules of the shared cart.
type CartService struct {
	repo      repository.CartRepository
	publisher events.Publisher
	lg        *zap.Logger
	now       func() time.Time
	inflight  sync.WaitGroup
}

func NewCartService(repo repository.CartRepository, publisher events.Publisher, lg *zap.Logger) *CartService {
	return &CartService{
		repo:      repo,
		publisher: publisher,
		lg:        lg,
		now:       time.Now,
	}
}

func (s *CartService) List(ctx context.Context) ([]domain.CartItem, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list cart")
	}
	return items, nil
}

// Add stores item as a new line. TotalPrice is recomputed from Quantity and
// Price.
func (s *CartService) Add(ctx context.Context, item domain.CartItem) (domain.InsertResult, error) {
	if item.Quantity < 1 {
		return domain.InsertResult{}, invalidArgument("quantity must be at least 1, got %d", item.Quantity)
	}
	if item.Price < 0 || math.IsNaN(item.Price) || math.IsInf(item.Price, 0) {
		return domain.InsertResult{}, invalidArgument("price must be a non-negative number")
	}
	item.TotalPrice = totalPrice(item.Quantity, item.Price)

	id, err := s.repo.Insert(ctx, item)
	if err != nil {
		return domain.InsertResult{}, errors.Wrap(err, "add cart item")
	}

	s.publish(events.CartEvent{
		Type:       events.ItemAdded,
		ItemID:     id.Hex(),
		Quantity:   item.Quantity,
		TotalPrice: item.TotalPrice,
	})
	return domain.InsertResult{Acknowledged: true, InsertedID: id}, nil
}

// AdjustQuantity adds delta to the stored quantity. A result below one
// removes the line item instead of storing it. Each write only applies if
// the quantity it was computed from is still stored, so concurrent
// adjustments cannot lose each other's updates.
func (s *CartService) AdjustQuantity(ctx context.Context, id string, delta int64) (domain.AdjustResult, error) {
	if delta == 0 {
		return domain.AdjustResult{}, invalidArgument("quantity delta must be a non-zero integer")
	}

	for attempt := 0; attempt < maxAdjustAttempts; attempt++ {
		item, err := s.repo.Get(ctx, id)
		if err != nil {
			return domain.AdjustResult{}, errors.Wrap(translate(err), "adjust quantity")
		}

		newQuantity := item.Quantity + delta
		if delta > 0 && newQuantity < item.Quantity {
			return domain.AdjustResult{}, invalidArgument("quantity delta %d overflows", delta)
		}

		if newQuantity < 1 {
			removed, err := s.repo.DeleteIfQuantity(ctx, id, item.Quantity)
			if err != nil {
				return domain.AdjustResult{}, errors.Wrap(translate(err), "remove cart item")
			}
			if !removed {
				continue
			}
			s.publish(events.CartEvent{Type: events.ItemRemoved, ItemID: id})
			return domain.AdjustResult{Removed: true}, nil
		}

		newTotal := totalPrice(newQuantity, item.Price)
		updated, err := s.repo.SetQuantity(ctx, id, item.Quantity, newQuantity, newTotal)
		if err != nil {
			return domain.AdjustResult{}, errors.Wrap(translate(err), "update cart item")
		}
		if !updated {
			continue
		}

		s.publish(events.CartEvent{
			Type:       events.ItemUpdated,
			ItemID:     id,
			Quantity:   newQuantity,
			TotalPrice: newTotal,
		})
		return domain.AdjustResult{Quantity: newQuantity, TotalPrice: newTotal}, nil
	}

	return domain.AdjustResult{}, &kindError{
		kind: ErrConflict,
		err:  errors.Errorf("cart item %s kept changing after %d attempts", id, maxAdjustAttempts),
	}
}

// Delete removes the line item. Deleting an absent item succeeds with a zero
// DeletedCount.
func (s *CartService) Delete(ctx context.Context, id string) (domain.DeleteResult, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return domain.DeleteResult{}, errors.Wrap(translate(err), "delete cart item")
	}

	if deleted > 0 {
		s.publish(events.CartEvent{Type: events.ItemDeleted, ItemID: id})
	}
	return domain.DeleteResult{Acknowledged: true, DeletedCount: deleted}, nil
}

func (s *CartService) publish(event events.CartEvent) {
	event.At = s.now().UTC()
	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.lg.Warn("Publish cart event failed",
				zap.String("type", string(event.Type)),
				zap.String("item_id", event.ItemID),
				zap.Error(err),
			)
		}
	}()
}

// Wait blocks until every event handed to the publisher has been written or
// has failed. Call it after the HTTP server has stopped and before closing
// the publisher.
func (s *CartService) Wait() {
	s.inflight.Wait()
}

// totalPrice is quantity * price computed in decimal, so 3 * 0.1 stays 0.3.
func totalPrice(quantity int64, price float64) float64 {
	return decimal.NewFromInt(quantity).Mul(decimal.NewFromFloat(price)).InexactFloat64()
}
