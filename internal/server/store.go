package server

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru"

	"github.com/lox/handreplay/internal/hand"
	"github.com/lox/handreplay/internal/metrics"
)

// HandStore keeps the most recently uploaded hands by id.
type HandStore struct {
	cache *lru.Cache
}

// NewHandStore creates a store holding at most size hands.
func NewHandStore(size int) (*HandStore, error) {
	c, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("hand store: %w", err)
	}
	return &HandStore{cache: c}, nil
}

// Put stores h unless a hand with the same id is already present. It reports
// whether the id was already known.
func (s *HandStore) Put(h *hand.ParsedHand) bool {
	known, _ := s.cache.ContainsOrAdd(h.HandID, h)
	return known
}

// Get returns the hand with the given id.
func (s *HandStore) Get(id string) (*hand.ParsedHand, bool) {
	v, ok := s.cache.Get(id)
	if !ok {
		metrics.Metrics.CacheMiss()
		return nil, false
	}
	metrics.Metrics.CacheHit()
	return v.(*hand.ParsedHand), true
}

// Len is the number of stored hands.
func (s *HandStore) Len() int {
	return s.cache.Len()
}
