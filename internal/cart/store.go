package cart

import "sync"

// Store keeps one cart per user for the HTTP surface. Carts live for the
// process lifetime; a successful checkout clears them in place.
type Store struct {
	mu sync.Mutex
	m  map[string]*Cart
}

func NewStore() *Store {
	return &Store{m: map[string]*Cart{}}
}

// ForUser returns the user's cart, creating it on first use.
func (s *Store) ForUser(userID string) *Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.m[userID]
	if !ok {
		c = New()
		s.m[userID] = c
	}
	return c
}
