// internal/application/catalog/service.go
package catalog

import (
	"context"
	"log"
	"sync"

	"github.com/asaskevich/EventBus"

	categorydom "lmye/internal/domain/category"
	productdom "lmye/internal/domain/product"
)

// Bus topics. Handlers subscribed to these receive the full list emitted by
// the backend change stream.
const (
	TopicProducts   = "catalog.products"
	TopicCategories = "catalog.categories"
)

// Service is the catalog read projection.
//
// It opens exactly one backend subscription per collection and multicasts
// every emission over the event bus, so any number of simultaneous consumers
// (gallery, admin list, header count, SSE clients) never cause duplicate
// backend subscriptions. The latest emission is kept for replay: a late
// subscriber immediately receives the current list.
type Service struct {
	products   productdom.Watcher
	categories categorydom.Watcher
	bus        EventBus.Bus

	mu             sync.RWMutex
	latestProducts []productdom.Product
	haveProducts   bool
	latestCats     []categorydom.Category
	haveCats       bool

	// Subscriber registry. The bus matches handlers by function pointer, so
	// per-subscriber closures of one literal are indistinguishable to
	// Unsubscribe; instead the service registers exactly one bus handler per
	// topic and fans out to the channels below. Cancel removes exactly the
	// subscriber's own channel.
	subMu        sync.Mutex
	nextSubID    int
	productSubs  map[int]chan []productdom.Product
	categorySubs map[int]chan []categorydom.Category
}

func NewService(products productdom.Watcher, categories categorydom.Watcher, bus EventBus.Bus) *Service {
	s := &Service{
		products:     products,
		categories:   categories,
		bus:          bus,
		productSubs:  map[int]chan []productdom.Product{},
		categorySubs: map[int]chan []categorydom.Category{},
	}
	_ = bus.Subscribe(TopicProducts, s.fanOutProducts)
	_ = bus.Subscribe(TopicCategories, s.fanOutCategories)
	return s
}

// Start opens the two backend change streams. It returns immediately; the
// streams run until ctx is canceled. A stream error terminates that stream
// (views keep serving the last known list — no reconnect policy).
func (s *Service) Start(ctx context.Context) {
	prodCh, prodErr := s.products.Watch(ctx)
	catCh, catErr := s.categories.Watch(ctx)

	go func() {
		for {
			select {
			case list, ok := <-prodCh:
				if !ok {
					log.Printf("[catalog] products stream closed")
					return
				}
				s.mu.Lock()
				s.latestProducts = list
				s.haveProducts = true
				s.mu.Unlock()
				s.bus.Publish(TopicProducts, list)
			case err, ok := <-prodErr:
				if ok && err != nil {
					log.Printf("[catalog] ❌ products stream error: %v", err)
				}
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		for {
			select {
			case list, ok := <-catCh:
				if !ok {
					log.Printf("[catalog] categories stream closed")
					return
				}
				s.mu.Lock()
				s.latestCats = list
				s.haveCats = true
				s.mu.Unlock()
				s.bus.Publish(TopicCategories, list)
			case err, ok := <-catErr:
				if ok && err != nil {
					log.Printf("[catalog] ❌ categories stream error: %v", err)
				}
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// -------------------------
// Subscriptions (fan-out)
// -------------------------

// SubscribeProducts returns a channel delivering the full product list on
// every backend change, starting with the latest known list when one exists.
// The channel is latest-wins (a slow consumer only skips intermediate
// snapshots, never blocks the bus). The cancel func MUST be called on view
// teardown; the backend stream is unbounded and never completes on its own.
func (s *Service) SubscribeProducts() (<-chan []productdom.Product, func()) {
	ch := make(chan []productdom.Product, 1)

	s.subMu.Lock()
	s.nextSubID++
	id := s.nextSubID
	s.productSubs[id] = ch
	s.subMu.Unlock()

	if list, ok := s.Products(); ok {
		pushLatest(ch, list)
	}

	cancel := func() {
		s.subMu.Lock()
		delete(s.productSubs, id)
		s.subMu.Unlock()
	}
	return ch, cancel
}

// SubscribeCategories mirrors SubscribeProducts for the category list.
func (s *Service) SubscribeCategories() (<-chan []categorydom.Category, func()) {
	ch := make(chan []categorydom.Category, 1)

	s.subMu.Lock()
	s.nextSubID++
	id := s.nextSubID
	s.categorySubs[id] = ch
	s.subMu.Unlock()

	if list, ok := s.Categories(); ok {
		pushLatest(ch, list)
	}

	cancel := func() {
		s.subMu.Lock()
		delete(s.categorySubs, id)
		s.subMu.Unlock()
	}
	return ch, cancel
}

// fanOutProducts is the single bus handler for TopicProducts.
func (s *Service) fanOutProducts(list []productdom.Product) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.productSubs {
		pushLatest(ch, list)
	}
}

// fanOutCategories is the single bus handler for TopicCategories.
func (s *Service) fanOutCategories(list []categorydom.Category) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.categorySubs {
		pushLatest(ch, list)
	}
}

// -------------------------
// Snapshot accessors
// -------------------------

// Products returns the latest full product list and whether an emission has
// been received yet.
func (s *Service) Products() ([]productdom.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latestProducts, s.haveProducts
}

// Categories returns the latest category list (ordered by name, the backend
// query order) and whether an emission has been received yet.
func (s *Service) Categories() ([]categorydom.Category, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latestCats, s.haveCats
}

// -------------------------
// Derived views over the latest snapshot
// -------------------------

func (s *Service) Visible() []productdom.Product {
	list, _ := s.Products()
	return VisibleOnly(list)
}

func (s *Service) NewArrivals() []productdom.Product {
	list, _ := s.Products()
	return NewArrivals(list)
}

func (s *Service) Gallery(categoryName string) []productdom.Product {
	list, _ := s.Products()
	return Gallery(list, categoryName)
}

func (s *Service) UsedCategories() []categorydom.Category {
	cats, _ := s.Categories()
	prods, _ := s.Products()
	return UsedCategories(cats, prods)
}

func (s *Service) Suggestions(currentID string) []productdom.Product {
	list, _ := s.Products()
	return Suggestions(list, currentID)
}

func (s *Service) FindByID(id string) *productdom.Product {
	list, _ := s.Products()
	return FindByID(list, id)
}

// pushLatest delivers list on a 1-buffered channel with latest-wins
// semantics: if the consumer has not drained the previous value, it is
// replaced instead of blocking the publisher.
func pushLatest[T any](ch chan T, v T) {
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
