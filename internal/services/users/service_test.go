package users

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m3rciful/storebot/internal/storage"
)

type fakeStore struct {
	users     map[int64]storage.UserRecord
	nextID    int64
	createErr error
	creates   int
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: make(map[int64]storage.UserRecord), nextID: 1}
}

func (f *fakeStore) FindByTelegramID(_ context.Context, telegramID int64) (storage.UserRecord, error) {
	u, ok := f.users[telegramID]
	if !ok {
		return storage.UserRecord{}, storage.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeStore) Create(_ context.Context, nu storage.NewUser) (storage.UserRecord, error) {
	f.creates++
	if f.createErr != nil {
		return storage.UserRecord{}, f.createErr
	}
	if _, exists := f.users[nu.TelegramID]; exists {
		return storage.UserRecord{}, storage.ErrUserExists
	}
	u := storage.UserRecord{
		ID:         f.nextID,
		TelegramID: nu.TelegramID,
		FirstName:  nu.FirstName,
		Username:   nu.Username,
		CreatedAt:  time.Now(),
	}
	f.nextID++
	f.users[nu.TelegramID] = u
	return u, nil
}

func TestRegisterFirstContactCreatesExactlyOneUser(t *testing.T) {
	store := newFakeStore()
	svc := New(store)

	u, created, err := svc.Register(context.Background(), 42, "Ann", "ann")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if !created {
		t.Fatal("expected created=true on first contact")
	}
	if u.TelegramID != 42 || u.FirstName != "Ann" || u.Username != "ann" {
		t.Fatalf("unexpected record: %+v", u)
	}
	if len(store.users) != 1 {
		t.Fatalf("store holds %d users, want 1", len(store.users))
	}
}

func TestRegisterRepeatContactCreatesNothing(t *testing.T) {
	store := newFakeStore()
	svc := New(store)

	first, _, err := svc.Register(context.Background(), 42, "Ann", "ann")
	if err != nil {
		t.Fatalf("first register: %v", err)
	}
	second, created, err := svc.Register(context.Background(), 42, "Ann", "ann")
	if err != nil {
		t.Fatalf("second register: %v", err)
	}
	if created {
		t.Fatal("expected created=false on repeat contact")
	}
	if second.ID != first.ID {
		t.Fatalf("repeat contact returned different user: %d != %d", second.ID, first.ID)
	}
	if len(store.users) != 1 {
		t.Fatalf("store holds %d users, want 1", len(store.users))
	}
}

// racingStore simulates another process inserting between the lookup and the
// create: the first lookup misses, the create hits the unique constraint, and
// the second lookup sees the winner's row.
type racingStore struct {
	winner  storage.UserRecord
	lookups int
}

func (r *racingStore) FindByTelegramID(_ context.Context, _ int64) (storage.UserRecord, error) {
	r.lookups++
	if r.lookups == 1 {
		return storage.UserRecord{}, storage.ErrUserNotFound
	}
	return r.winner, nil
}

func (r *racingStore) Create(_ context.Context, _ storage.NewUser) (storage.UserRecord, error) {
	return storage.UserRecord{}, storage.ErrUserExists
}

func TestRegisterLosingInsertRaceReturnsWinner(t *testing.T) {
	winner := storage.UserRecord{ID: 7, TelegramID: 42, FirstName: "Ann", CreatedAt: time.Now()}
	svc := New(&racingStore{winner: winner})

	u, created, err := svc.Register(context.Background(), 42, "Ann", "ann")
	if err != nil {
		t.Fatalf("register after race: %v", err)
	}
	if created {
		t.Fatal("expected created=false after losing the race")
	}
	if u.ID != winner.ID {
		t.Fatalf("got user %d, want winner %d", u.ID, winner.ID)
	}
}

func TestRegisterRejectsInvalidIdentity(t *testing.T) {
	svc := New(newFakeStore())
	if _, _, err := svc.Register(context.Background(), 0, "", ""); err == nil {
		t.Fatal("expected error for missing identity")
	}
}

func TestRegisterPropagatesStoreFailure(t *testing.T) {
	store := newFakeStore()
	store.createErr = errors.New("connection refused")
	svc := New(store)
	if _, _, err := svc.Register(context.Background(), 42, "Ann", "ann"); err == nil {
		t.Fatal("expected error from failing store")
	}
}
