package cdp

import (
	"sync"

	"go.uber.org/zap"
)

// SubscriptionBuffer is the capacity of each subscription channel. When a subscriber
// falls this far behind, new events for it are dropped instead of stalling the read pump.
var SubscriptionBuffer = 64

type subKey struct {
	sessionID string
	method    string
}

// Subscription receives the events that match its session and method.
// C is closed when the subscription or the client is closed.
type Subscription struct {
	C <-chan *Event

	c      chan *Event
	key    subKey
	hub    *subscriptions
	closed bool
}

// Close the subscription, it's safe to call it multiple times.
func (s *Subscription) Close() {
	s.hub.remove(s)
}

type subscriptions struct {
	mu     sync.RWMutex
	closed bool
	list   map[subKey]map[*Subscription]struct{}
	logger *zap.Logger
}

func newSubscriptions(logger *zap.Logger) *subscriptions {
	return &subscriptions{
		list:   map[subKey]map[*Subscription]struct{}{},
		logger: logger,
	}
}

func (hub *subscriptions) add(sessionID, method string) *Subscription {
	c := make(chan *Event, SubscriptionBuffer)
	s := &Subscription{
		C:   c,
		c:   c,
		key: subKey{sessionID, method},
		hub: hub,
	}

	hub.mu.Lock()
	defer hub.mu.Unlock()

	if hub.closed {
		s.closed = true
		close(c)
		return s
	}

	set, has := hub.list[s.key]
	if !has {
		set = map[*Subscription]struct{}{}
		hub.list[s.key] = set
	}
	set[s] = struct{}{}

	return s
}

func (hub *subscriptions) remove(s *Subscription) {
	hub.mu.Lock()
	defer hub.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	close(s.c)

	set := hub.list[s.key]
	delete(set, s)
	if len(set) == 0 {
		delete(hub.list, s.key)
	}
}

// dispatch never blocks. It returns false if no subscriber is interested in the event.
func (hub *subscriptions) dispatch(e *Event) bool {
	hub.mu.RLock()
	defer hub.mu.RUnlock()

	matched := false
	for _, key := range []subKey{{e.SessionID, e.Method}, {e.SessionID, ""}} {
		for s := range hub.list[key] {
			matched = true
			select {
			case s.c <- e:
			default:
				hub.logger.Warn("subscriber is full, event dropped",
					zap.String("session", e.SessionID),
					zap.String("method", e.Method),
				)
			}
		}
	}
	return matched
}

func (hub *subscriptions) close() {
	hub.mu.Lock()
	defer hub.mu.Unlock()

	if hub.closed {
		return
	}
	hub.closed = true

	for _, set := range hub.list {
		for s := range set {
			s.closed = true
			close(s.c)
		}
	}
	hub.list = map[subKey]map[*Subscription]struct{}{}
}
