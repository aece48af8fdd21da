package tracker

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/krishma/storefront/internal/domain"
)

const (
	defaultQueueSize      = 256
	defaultDeliverTimeout = 5 * time.Second
)

// Tracker queues events and dispatches them in the background. Track never
// blocks the caller: when the queue is full the event is dropped and logged.
// Delivery order relative to the originating action is not guaranteed.
type Tracker struct {
	sink    Sink
	queue   chan domain.TrackedEvent
	timeout time.Duration
	logger  *zap.Logger

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// New starts a tracker draining into sink. Callers must Close it on shutdown.
func New(sink Sink, logger *zap.Logger) *Tracker {
	t := &Tracker{
		sink:    sink,
		queue:   make(chan domain.TrackedEvent, defaultQueueSize),
		timeout: defaultDeliverTimeout,
		logger:  logger,
	}

	t.wg.Add(1)
	go t.dispatchLoop()

	return t
}

// Track records a user's interaction with a product. A value of zero or less
// defaults to 1; purchases pass the line quantity.
func (t *Tracker) Track(userID, productID string, kind domain.EventKind, value float64) {
	event := domain.NewTrackedEvent(userID, productID, kind, value)

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		t.logger.Warn("tracker closed, dropping event",
			zap.String("event_type", string(kind)),
			zap.String("product_id", productID))
		return
	}

	select {
	case t.queue <- event:
	default:
		t.logger.Warn("event queue full, dropping event",
			zap.String("event_type", string(kind)),
			zap.String("product_id", productID))
	}
}

func (t *Tracker) dispatchLoop() {
	defer t.wg.Done()

	for event := range t.queue {
		ctx, cancel := context.WithTimeout(context.Background(), t.timeout)
		if err := t.sink.Deliver(ctx, event); err != nil {
			// Best-effort only, never surfaced to the user.
			t.logger.Debug("event delivery failed",
				zap.String("event_type", string(event.EventType)),
				zap.String("product_id", event.ProductID),
				zap.Error(err))
		}
		cancel()
	}
}

// Close drains queued events and shuts down the sink. Track calls after
// Close drop their events instead of panicking on the closed queue.
func (t *Tracker) Close() error {
	t.mu.Lock()
	if !t.closed {
		t.closed = true
		close(t.queue)
	}
	t.mu.Unlock()

	t.wg.Wait()
	return t.sink.Close()
}
