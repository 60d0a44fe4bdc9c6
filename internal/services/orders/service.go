package orders

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/m3rciful/storebot/internal/logger"
	"github.com/m3rciful/storebot/internal/storage"
	"log/slog"
)

// ErrBadPayload marks a payment whose invoice payload does not name a product.
var ErrBadPayload = errors.New("orders: malformed invoice payload")

// UserStore resolves buyers by their external chat identity.
type UserStore interface {
	FindByTelegramID(ctx context.Context, telegramID int64) (storage.UserRecord, error)
}

// OrderStore is the subset of the orders repository the service needs.
type OrderStore interface {
	Create(ctx context.Context, no storage.NewOrder) (storage.OrderRecord, error)
	CountByUser(ctx context.Context, userID int64) (int64, error)
}

// Service records confirmed payments as orders.
type Service struct {
	users  UserStore
	orders OrderStore
}

// New constructs the service.
func New(users UserStore, orders OrderStore) *Service {
	return &Service{users: users, orders: orders}
}

// RecordPayment persists a confirmed payment as an order. The payload is the
// product id carried through the invoice, totalMinor the charged amount in
// minor currency units. Each delivery of a confirmation produces one order row.
func (s *Service) RecordPayment(ctx context.Context, telegramID int64, payload string, totalMinor int64) (storage.OrderRecord, error) {
	productID, err := strconv.ParseInt(payload, 10, 64)
	if err != nil || productID <= 0 {
		return storage.OrderRecord{}, fmt.Errorf("%w: %q", ErrBadPayload, payload)
	}

	user, err := s.users.FindByTelegramID(ctx, telegramID)
	if err != nil {
		return storage.OrderRecord{}, fmt.Errorf("orders: resolve buyer: %w", err)
	}

	order, err := s.orders.Create(ctx, storage.NewOrder{
		UserID:     user.ID,
		ProductID:  productID,
		PriceMinor: totalMinor,
	})
	if err != nil {
		return storage.OrderRecord{}, fmt.Errorf("orders: create: %w", err)
	}

	logger.LogEvent(ctx, logger.SVCOrders, slog.LevelInfo, "order.recorded",
		slog.Int64("order_id", order.ID),
		slog.Int64("user_id", telegramID),
		slog.Int64("product_id", order.ProductID),
		slog.Int64("amount_minor", order.PriceMinor),
	)
	return order, nil
}

// CountForUser reports how many orders the given user has placed.
func (s *Service) CountForUser(ctx context.Context, userID int64) (int64, error) {
	return s.orders.CountByUser(ctx, userID)
}
