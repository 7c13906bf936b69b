package cart

import (
	"sync"
)

// Sessions hands out one aggregator per user. Aggregators live as long as the process.
type Sessions struct {
	mu          sync.Mutex
	factory     func(userID string) *Aggregator
	aggregators map[string]*Aggregator
}

func NewSessions(factory func(userID string) *Aggregator) *Sessions {
	return &Sessions{
		factory:     factory,
		aggregators: map[string]*Aggregator{},
	}
}

// Get returns the aggregator of the user, creating it on first use.
func (s *Sessions) Get(userID string) *Aggregator {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, found := s.aggregators[userID]
	if !found {
		a = s.factory(userID)
		s.aggregators[userID] = a
	}
	return a
}

// Find never creates an aggregator; read-only requests use it.
func (s *Sessions) Find(userID string) (*Aggregator, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, found := s.aggregators[userID]
	return a, found
}

func (s *Sessions) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.aggregators)
}
