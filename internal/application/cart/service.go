// internal/application/cart/service.go
package cart

import (
	"log"
	"sync"

	"github.com/asaskevich/EventBus"

	cartdom "lmye/internal/domain/cart"
	productdom "lmye/internal/domain/product"
)

// CountTopic is the bus topic carrying the running item count for one
// session. The cart is exclusively owned by its storefront session, so the
// count stream is per-session too.
func CountTopic(sessionID string) string {
	return "cart.count:" + sessionID
}

// Service owns the in-memory carts for all active sessions and keeps the
// persisted mirror in sync.
//
// Postcondition of every mutating operation: the snapshot is saved to the
// store and the new total item count is published on the bus. Persistence
// failures surface to the caller as-is; there is no retry.
type Service struct {
	store cartdom.Store
	bus   EventBus.Bus

	mu    sync.Mutex
	carts map[string]*cartdom.Cart

	// Per-session subscriber registries. One bus handler per count topic
	// fans out to the registered channels; Unsubscribe-by-handler cannot
	// tell per-subscriber closures of one literal apart, so cancel removes
	// the subscriber's channel here instead.
	subMu     sync.Mutex
	nextSubID int
	countSubs map[string]*sessionSubs
}

// sessionSubs tracks the live count subscribers of one session plus the bus
// handler serving them (kept so it can be unsubscribed when the last
// subscriber leaves).
type sessionSubs struct {
	handler func(int)
	chans   map[int]chan int
}

func NewService(store cartdom.Store, bus EventBus.Bus) *Service {
	return &Service{
		store:     store,
		bus:       bus,
		carts:     map[string]*cartdom.Cart{},
		countSubs: map[string]*sessionSubs{},
	}
}

// cartFor returns the session's cart, loading the persisted snapshot on
// first access. A load error is logged and treated as an empty cart; a
// broken snapshot must not take the storefront down.
func (s *Service) cartFor(sessionID string) *cartdom.Cart {
	if c, ok := s.carts[sessionID]; ok {
		return c
	}
	items, err := s.store.Load(sessionID)
	if err != nil {
		log.Printf("[cart] ❌ load failed session=%s: %v (starting empty)", sessionID, err)
		items = nil
	}
	c := cartdom.New(items)
	s.carts[sessionID] = c
	return c
}

// sync persists the snapshot and publishes the new count.
func (s *Service) sync(sessionID string, c *cartdom.Cart) error {
	err := s.store.Save(sessionID, c.Items())
	s.bus.Publish(CountTopic(sessionID), c.Count())
	return err
}

// -------------------------
// Mutations
// -------------------------

func (s *Service) Add(sessionID string, p productdom.Product, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cartFor(sessionID)
	if err := c.Add(p, quantity); err != nil {
		return err
	}
	return s.sync(sessionID, c)
}

func (s *Service) SetQuantity(sessionID string, p productdom.Product, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cartFor(sessionID)
	if err := c.SetQuantity(p, quantity); err != nil {
		return err
	}
	return s.sync(sessionID, c)
}

func (s *Service) UpdateQuantity(sessionID, productID string, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cartFor(sessionID)
	c.UpdateQuantity(productID, delta)
	return s.sync(sessionID, c)
}

func (s *Service) RemoveItem(sessionID, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cartFor(sessionID)
	c.RemoveItem(productID)
	return s.sync(sessionID, c)
}

func (s *Service) Clear(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cartFor(sessionID)
	c.Clear()
	return s.sync(sessionID, c)
}

// -------------------------
// Reads
// -------------------------

func (s *Service) Items(sessionID string) []cartdom.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cartFor(sessionID).Items()
}

func (s *Service) ItemQuantity(sessionID, productID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cartFor(sessionID).ItemQuantity(productID)
}

func (s *Service) Count(sessionID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cartFor(sessionID).Count()
}

// Total computes the cart total with the lenient price-parse policy
// (malformed or missing prices contribute zero).
func (s *Service) Total(sessionID string) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cartdom.Total(s.cartFor(sessionID).Items())
}

// SubscribeCount returns a channel delivering the running item count for the
// session after each mutation, primed with the current count. The cancel
// func must be called on teardown.
func (s *Service) SubscribeCount(sessionID string) (<-chan int, func()) {
	ch := make(chan int, 1)

	s.subMu.Lock()
	subs, ok := s.countSubs[sessionID]
	if !ok {
		subs = &sessionSubs{
			handler: func(count int) { s.fanOutCount(sessionID, count) },
			chans:   map[int]chan int{},
		}
		s.countSubs[sessionID] = subs
		_ = s.bus.Subscribe(CountTopic(sessionID), subs.handler)
	}
	s.nextSubID++
	id := s.nextSubID
	subs.chans[id] = ch
	s.subMu.Unlock()

	pushLatest(ch, s.Count(sessionID))

	cancel := func() {
		s.subMu.Lock()
		delete(subs.chans, id)
		// guard against a stale cancel racing a newer registration
		if len(subs.chans) == 0 && s.countSubs[sessionID] == subs {
			// last subscriber gone: drop the topic's sole bus handler
			_ = s.bus.Unsubscribe(CountTopic(sessionID), subs.handler)
			delete(s.countSubs, sessionID)
		}
		s.subMu.Unlock()
	}
	return ch, cancel
}

func (s *Service) fanOutCount(sessionID string, count int) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	if subs, ok := s.countSubs[sessionID]; ok {
		for _, ch := range subs.chans {
			pushLatest(ch, count)
		}
	}
}

func pushLatest(ch chan int, v int) {
	for {
		select {
		case ch <- v:
			return
		default:
			select {
			case <-ch:
			default:
			}
		}
	}
}
