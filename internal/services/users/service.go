package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/m3rciful/storebot/internal/logger"
	"github.com/m3rciful/storebot/internal/storage"
	"log/slog"
)

// Store is the subset of the users repository the service needs.
type Store interface {
	FindByTelegramID(ctx context.Context, telegramID int64) (storage.UserRecord, error)
	Create(ctx context.Context, nu storage.NewUser) (storage.UserRecord, error)
}

// Service implements registration on first contact.
type Service struct {
	store Store
}

// New constructs the service.
func New(store Store) *Service {
	return &Service{store: store}
}

// Register creates a user for the given external identity unless one already
// exists. It returns the user and whether it was created by this call.
// A concurrent registration losing the insert race is resolved by re-reading
// the winner's row.
func (s *Service) Register(ctx context.Context, telegramID int64, firstName, username string) (storage.UserRecord, bool, error) {
	if telegramID <= 0 {
		return storage.UserRecord{}, false, fmt.Errorf("users: invalid telegram id %d", telegramID)
	}

	existing, err := s.store.FindByTelegramID(ctx, telegramID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, storage.ErrUserNotFound) {
		return storage.UserRecord{}, false, fmt.Errorf("users: lookup: %w", err)
	}

	created, err := s.store.Create(ctx, storage.NewUser{
		TelegramID: telegramID,
		FirstName:  firstName,
		Username:   username,
	})
	if err != nil {
		if errors.Is(err, storage.ErrUserExists) {
			winner, ferr := s.store.FindByTelegramID(ctx, telegramID)
			if ferr != nil {
				return storage.UserRecord{}, false, fmt.Errorf("users: reread after race: %w", ferr)
			}
			return winner, false, nil
		}
		return storage.UserRecord{}, false, fmt.Errorf("users: create: %w", err)
	}

	logger.LogEvent(ctx, logger.SVCUsers, slog.LevelInfo, "user.registered",
		slog.Int64("user_id", created.TelegramID),
		slog.String("username", logger.SanitizeLimit(created.Username, 64)),
	)
	return created, true, nil
}

// GetByTelegramID resolves a registered user by external chat identity.
func (s *Service) GetByTelegramID(ctx context.Context, telegramID int64) (storage.UserRecord, error) {
	return s.store.FindByTelegramID(ctx, telegramID)
}
