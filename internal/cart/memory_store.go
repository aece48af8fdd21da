package cart

import (
	"context"
	"sync"
	"time"

	"github.com/krishma/storefront/internal/domain"
)

const (
	// cartTTL is how long an untouched cart survives before expiring with
	// its session.
	cartTTL = 30 * time.Minute

	// cleanupInterval is how often the background sweep runs.
	cleanupInterval = time.Minute
)

type memoryEntry struct {
	cart      *domain.Cart
	expiresAt time.Time
}

// MemoryStore implements Store with in-memory storage. It is the default for
// single-instance deployments.
type MemoryStore struct {
	mu    sync.RWMutex
	carts map[string]*memoryEntry

	stopCleanup chan struct{}
	wg          sync.WaitGroup
}

// NewMemoryStore creates an in-memory cart store and starts its expiry sweep.
func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{
		carts:       make(map[string]*memoryEntry),
		stopCleanup: make(chan struct{}),
	}

	s.wg.Add(1)
	go s.cleanupLoop()

	return s
}

func (s *MemoryStore) cleanupLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.expireCarts()
		case <-s.stopCleanup:
			return
		}
	}
}

func (s *MemoryStore) expireCarts() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, entry := range s.carts {
		if now.After(entry.expiresAt) {
			delete(s.carts, id)
		}
	}
}

func (s *MemoryStore) Get(_ context.Context, sessionID string) (*domain.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.carts[sessionID]
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, ErrCartNotFound
	}

	// Copy so callers never mutate stored state directly.
	cp := *entry.cart
	cp.Lines = append([]domain.CartLine(nil), entry.cart.Lines...)
	return &cp, nil
}

func (s *MemoryStore) Put(_ context.Context, cart *domain.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *cart
	cp.Lines = append([]domain.CartLine(nil), cart.Lines...)
	s.carts[cart.SessionID] = &memoryEntry{
		cart:      &cp,
		expiresAt: time.Now().Add(cartTTL),
	}
	return nil
}

// Update runs fn with the store lock held for the whole read-modify-write,
// so mutations of one session apply in full, one at a time.
func (s *MemoryStore) Update(_ context.Context, sessionID string, fn func(cart *domain.Cart) error) (*domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	cart := &domain.Cart{SessionID: sessionID, CreatedAt: now, UpdatedAt: now}
	if entry, ok := s.carts[sessionID]; ok && now.Before(entry.expiresAt) {
		cp := *entry.cart
		cp.Lines = append([]domain.CartLine(nil), entry.cart.Lines...)
		cart = &cp
	}

	if err := fn(cart); err != nil {
		return nil, err
	}
	cart.UpdatedAt = now

	cp := *cart
	cp.Lines = append([]domain.CartLine(nil), cart.Lines...)
	s.carts[sessionID] = &memoryEntry{
		cart:      &cp,
		expiresAt: now.Add(cartTTL),
	}
	return cart, nil
}

func (s *MemoryStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
	return nil
}

// Close stops the expiry sweep and waits for it to finish.
func (s *MemoryStore) Close() error {
	close(s.stopCleanup)
	s.wg.Wait()
	return nil
}
