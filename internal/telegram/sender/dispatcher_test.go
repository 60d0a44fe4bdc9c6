package sender

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	tele "gopkg.in/telebot.v4"
)

func TestDispatcherRunsJobs(t *testing.T) {
	d := NewDispatcher(Options{QueueSize: 4, Workers: 1})
	defer d.Close()

	done := make(chan struct{})
	err := d.Enqueue(context.Background(), "send.text", "sendMessage", func() error {
		close(done)
		return nil
	})
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not run")
	}
}

func TestDispatcherRetriesTransientFailure(t *testing.T) {
	d := NewDispatcher(Options{QueueSize: 4, Workers: 1, MaxRetries: 2, RetryBackoff: time.Millisecond})
	defer d.Close()

	var calls atomic.Int32
	done := make(chan struct{})
	err := d.Enqueue(context.Background(), "send.text", "sendMessage", func() error {
		if calls.Add(1) == 1 {
			return &net.OpError{Op: "dial", Err: errors.New("connection refused")}
		}
		close(done)
		return nil
	})
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("job was not retried")
	}
	if n := calls.Load(); n != 2 {
		t.Fatalf("job ran %d times, want 2", n)
	}
	if d.ErrorCount() != 0 {
		t.Fatalf("error count = %d, want 0 after successful retry", d.ErrorCount())
	}
}

func TestDispatcherDoesNotRetryAPIErrors(t *testing.T) {
	d := NewDispatcher(Options{QueueSize: 4, Workers: 1, MaxRetries: 3, RetryBackoff: time.Millisecond})

	var calls atomic.Int32
	if err := d.Enqueue(context.Background(), "send.invoice", "sendInvoice", func() error {
		calls.Add(1)
		return &tele.Error{Code: 400, Description: "PAYMENT_PROVIDER_INVALID"}
	}); err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	d.Close()

	if n := calls.Load(); n != 1 {
		t.Fatalf("job ran %d times, want 1 for a non-retriable error", n)
	}
	if d.ErrorCount() != 1 {
		t.Fatalf("error count = %d, want 1", d.ErrorCount())
	}
}

func TestDispatcherQueueFull(t *testing.T) {
	d := NewDispatcher(Options{QueueSize: 1, Workers: 1})
	defer d.Close()

	var wg sync.WaitGroup
	block := make(chan struct{})
	wg.Add(1)
	_ = d.Enqueue(context.Background(), "a", "", func() error {
		defer wg.Done()
		<-block
		return nil
	})

	// Fill the queue while the worker is blocked, then overflow it.
	var sawFull bool
	for i := 0; i < 8; i++ {
		if err := d.Enqueue(context.Background(), fmt.Sprintf("b%d", i), "", func() error { return nil }); errors.Is(err, ErrQueueFull) {
			sawFull = true
			break
		}
	}
	close(block)
	wg.Wait()
	if !sawFull {
		t.Fatal("expected ErrQueueFull on saturated queue")
	}
}

func TestDispatcherEnqueueAfterClose(t *testing.T) {
	d := NewDispatcher(Options{QueueSize: 1, Workers: 1})
	d.Close()
	if err := d.Enqueue(context.Background(), "a", "", func() error { return nil }); !errors.Is(err, ErrQueueClosed) {
		t.Fatalf("err = %v, want ErrQueueClosed", err)
	}
}

func TestSanitizeErrorMessageRedactsToken(t *testing.T) {
	err := errors.New("Post https://api.telegram.org/bot123456:AAEhBOweik6ad9r_QXMENQjcrGbqCr4K-3c/sendMessage: EOF")
	msg := sanitizeErrorMessage(err)
	if msg == err.Error() {
		t.Fatal("token was not redacted")
	}
	if want := "bot<redacted>"; !strings.Contains(msg, want) {
		t.Fatalf("sanitized message %q missing %q", msg, want)
	}
}
