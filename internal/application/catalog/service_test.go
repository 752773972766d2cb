// internal/application/catalog/service_test.go
package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	categorydom "lmye/internal/domain/category"
	productdom "lmye/internal/domain/product"
)

// fake watchers feeding the service what a backend change stream would.

type fakeProductWatcher struct {
	ch  chan []productdom.Product
	err chan error
}

func newFakeProductWatcher() *fakeProductWatcher {
	return &fakeProductWatcher{
		ch:  make(chan []productdom.Product, 8),
		err: make(chan error, 1),
	}
}

func (w *fakeProductWatcher) Watch(ctx context.Context) (<-chan []productdom.Product, <-chan error) {
	return w.ch, w.err
}

type fakeCategoryWatcher struct {
	ch  chan []categorydom.Category
	err chan error
}

func newFakeCategoryWatcher() *fakeCategoryWatcher {
	return &fakeCategoryWatcher{
		ch:  make(chan []categorydom.Category, 8),
		err: make(chan error, 1),
	}
}

func (w *fakeCategoryWatcher) Watch(ctx context.Context) (<-chan []categorydom.Category, <-chan error) {
	return w.ch, w.err
}

func startService(t *testing.T) (*Service, *fakeProductWatcher, *fakeCategoryWatcher) {
	t.Helper()

	pw := newFakeProductWatcher()
	cw := newFakeCategoryWatcher()
	svc := NewService(pw, cw, EventBus.New())

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	svc.Start(ctx)

	return svc, pw, cw
}

func TestServiceKeepsLatestSnapshot(t *testing.T) {
	svc, pw, _ := startService(t)

	_, ok := svc.Products()
	assert.False(t, ok, "no emission yet")

	pw.ch <- []productdom.Product{{ID: "1"}}
	pw.ch <- []productdom.Product{{ID: "1"}, {ID: "2"}}

	require.Eventually(t, func() bool {
		list, ok := svc.Products()
		return ok && len(list) == 2
	}, time.Second, 5*time.Millisecond)
}

func TestSubscribeReplaysLatest(t *testing.T) {
	svc, pw, _ := startService(t)

	pw.ch <- []productdom.Product{{ID: "1"}}
	require.Eventually(t, func() bool {
		_, ok := svc.Products()
		return ok
	}, time.Second, 5*time.Millisecond)

	// a late subscriber immediately sees the current list
	ch, cancel := svc.SubscribeProducts()
	defer cancel()

	select {
	case list := <-ch:
		require.Len(t, list, 1)
		assert.Equal(t, "1", list[0].ID)
	case <-time.After(time.Second):
		t.Fatal("expected replay of the latest list")
	}
}

func TestSubscribeDeliversUpdatesToAllSubscribers(t *testing.T) {
	svc, pw, _ := startService(t)

	ch1, cancel1 := svc.SubscribeProducts()
	defer cancel1()
	ch2, cancel2 := svc.SubscribeProducts()
	defer cancel2()

	pw.ch <- []productdom.Product{{ID: "1"}, {ID: "2"}}

	for _, ch := range []<-chan []productdom.Product{ch1, ch2} {
		select {
		case list := <-ch:
			assert.Len(t, list, 2)
		case <-time.After(time.Second):
			t.Fatal("subscriber did not receive the update")
		}
	}
}

func TestSubscribeLatestWins(t *testing.T) {
	svc, pw, _ := startService(t)

	ch, cancel := svc.SubscribeProducts()
	defer cancel()

	// burst of emissions without draining: only the last one must survive
	for i := 1; i <= 5; i++ {
		list := make([]productdom.Product, i)
		pw.ch <- list
	}

	require.Eventually(t, func() bool {
		list, ok := svc.Products()
		return ok && len(list) == 5
	}, time.Second, 5*time.Millisecond)

	// drain whatever is buffered; the final read must be the newest snapshot
	var last []productdom.Product
	deadline := time.After(time.Second)
	for {
		select {
		case list := <-ch:
			last = list
			if len(last) == 5 {
				return
			}
		case <-deadline:
			t.Fatalf("expected latest snapshot, got len=%d", len(last))
		}
	}
}

func TestCancelOnlyRemovesThatSubscriber(t *testing.T) {
	svc, pw, _ := startService(t)

	ch1, cancel1 := svc.SubscribeProducts()
	defer cancel1()
	ch2, cancel2 := svc.SubscribeProducts()

	// tearing down the second client must not touch the first one
	cancel2()

	pw.ch <- []productdom.Product{{ID: "1"}}

	select {
	case list := <-ch1:
		require.Len(t, list, 1)
		assert.Equal(t, "1", list[0].ID)
	case <-time.After(time.Second):
		t.Fatal("remaining subscriber stopped receiving after another canceled")
	}

	select {
	case <-ch2:
		t.Fatal("canceled subscriber still received an update")
	default:
	}
}

func TestCancelStopsDelivery(t *testing.T) {
	svc, pw, _ := startService(t)

	ch, cancel := svc.SubscribeProducts()
	cancel()

	pw.ch <- []productdom.Product{{ID: "1"}}
	require.Eventually(t, func() bool {
		_, ok := svc.Products()
		return ok
	}, time.Second, 5*time.Millisecond)

	select {
	case list := <-ch:
		// a replay pushed before cancel may still sit in the buffer; a
		// fresh delivery after unsubscribe must not happen again
		assert.LessOrEqual(t, len(list), 1)
	default:
	}
}

func TestCategoriesStream(t *testing.T) {
	svc, _, cw := startService(t)

	ch, cancel := svc.SubscribeCategories()
	defer cancel()

	cw.ch <- []categorydom.Category{{ID: "c1", Name: "Sac", Color: "#513a58"}}

	select {
	case list := <-ch:
		require.Len(t, list, 1)
		assert.Equal(t, "Sac", list[0].Name)
	case <-time.After(time.Second):
		t.Fatal("category subscriber did not receive the update")
	}

	require.Eventually(t, func() bool {
		cats, ok := svc.Categories()
		return ok && len(cats) == 1
	}, time.Second, 5*time.Millisecond)
}

func TestDerivedViewsUseLatestSnapshot(t *testing.T) {
	svc, pw, cw := startService(t)

	pw.ch <- fixtureProducts()
	cw.ch <- []categorydom.Category{
		{ID: "c1", Name: "Sac", Color: "#513a58"},
		{ID: "c2", Name: "Chapeau", Color: "#ffcc00"},
	}

	require.Eventually(t, func() bool {
		_, pok := svc.Products()
		_, cok := svc.Categories()
		return pok && cok
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, []string{"2", "3", "6"}, ids(svc.Gallery("")))
	assert.Equal(t, []string{"1"}, ids(svc.NewArrivals()))

	used := svc.UsedCategories()
	require.Len(t, used, 1)
	assert.Equal(t, "Sac", used[0].Name)

	require.NotNil(t, svc.FindByID("3"))
	assert.Nil(t, svc.FindByID("missing"))
}
