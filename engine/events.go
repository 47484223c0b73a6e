// Copyright (c) 2025 EcoConnect.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import "sync"

// Event announces a claim settlement to subscribers. Delivery is
// at-least-once; consumers key on ClaimID plus the final State.
type Event struct {
	ClaimID   string `json:"claim_id"`
	State     string `json:"state"`
	Submitter string `json:"submitter"`
	Agent     string `json:"agent"`
	Points    int64  `json:"points,omitempty"`
}

// subscriptions is a handler registry with explicit unsubscribe, so
// presentation layers don't leak listeners across session changes.
type subscriptions struct {
	mu      sync.Mutex
	nextID  int
	handler map[int]func(Event)
}

func newSubscriptions() *subscriptions {
	return &subscriptions{handler: make(map[int]func(Event))}
}

func (s *subscriptions) subscribe(h func(Event)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.handler[id] = h

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.handler, id)
	}
}

func (s *subscriptions) publish(event Event) {
	s.mu.Lock()
	handlers := make([]func(Event), 0, len(s.handler))
	for _, h := range s.handler {
		handlers = append(handlers, h)
	}
	s.mu.Unlock()

	// Handlers run outside the lock so a handler may unsubscribe itself.
	for _, h := range handlers {
		h(event)
	}
}
