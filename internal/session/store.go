// Package session holds anonymous visitors' carts in process memory, keyed by
// an opaque token carried in a cookie. Entries expire after a TTL and are
// swept by a scheduled purge; logging in migrates the entry into the user's
// persistent cart.
package session

import (
	"sync"
	"time"

	"shop-online/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type entry struct {
	items     []model.CartItem
	expiresAt time.Time
}

// Store is a TTL-bounded in-memory guest cart store. Safe for concurrent use.
type Store struct {
	mu     sync.RWMutex
	carts  map[string]entry
	ttl    time.Duration
	now    func() time.Time
	logger zerolog.Logger
}

// NewStore creates a guest cart store whose entries live for ttl after their
// last write.
func NewStore(ttl time.Duration, logger zerolog.Logger) *Store {
	return &Store{
		carts:  make(map[string]entry),
		ttl:    ttl,
		now:    time.Now,
		logger: logger.With().Str("component", "guest-cart-store").Logger(),
	}
}

// NewToken returns a fresh session token.
func NewToken() string {
	return uuid.NewString()
}

// Get returns a copy of the cart for the given token. Expired or unknown
// tokens yield an empty cart.
func (s *Store) Get(token string) []model.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.carts[token]
	if !ok || s.now().After(e.expiresAt) {
		return nil
	}

	items := make([]model.CartItem, len(e.items))
	copy(items, e.items)
	return items
}

// Set overwrites the cart for the given token and refreshes its TTL. Setting
// an empty cart removes the entry.
func (s *Store) Set(token string, items []model.CartItem) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(items) == 0 {
		delete(s.carts, token)
		return
	}

	stored := make([]model.CartItem, len(items))
	copy(stored, items)
	s.carts[token] = entry{
		items:     stored,
		expiresAt: s.now().Add(s.ttl),
	}
}

// Clear removes the cart for the given token. Idempotent.
func (s *Store) Clear(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, token)
}

// PurgeExpired drops every expired entry and reports how many were removed.
func (s *Store) PurgeExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for token, e := range s.carts {
		if now.After(e.expiresAt) {
			delete(s.carts, token)
			removed++
		}
	}

	if removed > 0 {
		s.logger.Debug().Int("removed", removed).Msg("purged expired guest carts")
	}

	return removed
}

// Len reports the number of live entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.carts)
}
