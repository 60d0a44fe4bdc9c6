package orders

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m3rciful/storebot/internal/storage"
)

type fakeUsers struct {
	byTelegramID map[int64]storage.UserRecord
}

func (f *fakeUsers) FindByTelegramID(_ context.Context, telegramID int64) (storage.UserRecord, error) {
	u, ok := f.byTelegramID[telegramID]
	if !ok {
		return storage.UserRecord{}, storage.ErrUserNotFound
	}
	return u, nil
}

type fakeOrders struct {
	rows      []storage.OrderRecord
	createErr error
}

func (f *fakeOrders) Create(_ context.Context, no storage.NewOrder) (storage.OrderRecord, error) {
	if f.createErr != nil {
		return storage.OrderRecord{}, f.createErr
	}
	rec := storage.OrderRecord{
		ID:         int64(len(f.rows) + 1),
		UserID:     no.UserID,
		ProductID:  no.ProductID,
		PriceMinor: no.PriceMinor,
		CreatedAt:  time.Now(),
	}
	f.rows = append(f.rows, rec)
	return rec, nil
}

func (f *fakeOrders) CountByUser(_ context.Context, userID int64) (int64, error) {
	var n int64
	for _, r := range f.rows {
		if r.UserID == userID {
			n++
		}
	}
	return n, nil
}

func newService() (*Service, *fakeOrders) {
	users := &fakeUsers{byTelegramID: map[int64]storage.UserRecord{
		42: {ID: 1, TelegramID: 42, FirstName: "Ann"},
	}}
	orders := &fakeOrders{}
	return New(users, orders), orders
}

func TestRecordPaymentCreatesOrder(t *testing.T) {
	svc, store := newService()

	rec, err := svc.RecordPayment(context.Background(), 42, "3", 10000)
	if err != nil {
		t.Fatalf("record payment: %v", err)
	}
	if rec.UserID != 1 {
		t.Fatalf("order bound to user %d, want internal id 1", rec.UserID)
	}
	if rec.ProductID != 3 {
		t.Fatalf("product id = %d, want 3", rec.ProductID)
	}
	if rec.PriceMinor != 10000 {
		t.Fatalf("price minor = %d, want 10000", rec.PriceMinor)
	}
	if len(store.rows) != 1 {
		t.Fatalf("store holds %d orders, want 1", len(store.rows))
	}
}

func TestRecordPaymentRejectsMalformedPayload(t *testing.T) {
	svc, store := newService()

	for _, payload := range []string{"", "abc", "-1", "0", "3x", "3.5"} {
		if _, err := svc.RecordPayment(context.Background(), 42, payload, 100); !errors.Is(err, ErrBadPayload) {
			t.Errorf("payload %q: err = %v, want ErrBadPayload", payload, err)
		}
	}
	if len(store.rows) != 0 {
		t.Fatalf("malformed payloads persisted %d orders", len(store.rows))
	}
}

func TestRecordPaymentUnknownBuyer(t *testing.T) {
	svc, store := newService()

	if _, err := svc.RecordPayment(context.Background(), 99, "3", 100); !errors.Is(err, storage.ErrUserNotFound) {
		t.Fatalf("err = %v, want ErrUserNotFound", err)
	}
	if len(store.rows) != 0 {
		t.Fatalf("unknown buyer persisted %d orders", len(store.rows))
	}
}

// The payment provider may deliver the same confirmation more than once.
// Nothing deduplicates deliveries, so each one lands as its own order row.
func TestRecordDuplicateDeliveryCreatesSecondOrder(t *testing.T) {
	svc, store := newService()

	first, err := svc.RecordPayment(context.Background(), 42, "3", 10000)
	if err != nil {
		t.Fatalf("first delivery: %v", err)
	}
	second, err := svc.RecordPayment(context.Background(), 42, "3", 10000)
	if err != nil {
		t.Fatalf("second delivery: %v", err)
	}
	if first.ID == second.ID {
		t.Fatal("duplicate delivery reused the same order row")
	}
	if len(store.rows) != 2 {
		t.Fatalf("store holds %d orders, want 2", len(store.rows))
	}
}

func TestCountForUser(t *testing.T) {
	svc, _ := newService()

	n, err := svc.CountForUser(context.Background(), 1)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Fatalf("fresh user has %d orders, want 0", n)
	}

	if _, err := svc.RecordPayment(context.Background(), 42, "3", 10000); err != nil {
		t.Fatalf("record payment: %v", err)
	}
	n, err = svc.CountForUser(context.Background(), 1)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Fatalf("count = %d, want 1", n)
	}
}

func TestRecordPaymentPropagatesStoreFailure(t *testing.T) {
	svc, store := newService()
	store.createErr = errors.New("connection refused")
	if _, err := svc.RecordPayment(context.Background(), 42, "3", 100); err == nil {
		t.Fatal("expected error from failing store")
	}
}
