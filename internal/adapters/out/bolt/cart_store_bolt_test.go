// internal/adapters/out/bolt/cart_store_bolt_test.go
package bolt

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"

	cartdom "lmye/internal/domain/cart"
	productdom "lmye/internal/domain/product"
)

func openStore(t *testing.T) *CartStoreBolt {
	t.Helper()

	db, err := bbolt.Open(filepath.Join(t.TempDir(), "cart.db"), 0o600, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store, err := NewCartStoreBolt(db)
	require.NoError(t, err)
	return store
}

func TestNewCartStoreBoltRequiresDB(t *testing.T) {
	_, err := NewCartStoreBolt(nil)
	assert.Error(t, err)
}

func TestLoadMissingSessionReturnsNil(t *testing.T) {
	store := openStore(t)

	items, err := store.Load("never-saved")
	require.NoError(t, err)
	assert.Nil(t, items)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := openStore(t)

	in := []cartdom.Item{
		{Product: productdom.Product{ID: "a", Type: "Le Muse", Price: "220€"}, Quantity: 2},
		{Product: productdom.Product{ID: "b", Type: "La Perle", Price: "85€"}, Quantity: 1},
	}
	require.NoError(t, store.Save("s1", in))

	out, err := store.Load("s1")
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestSaveOverwrites(t *testing.T) {
	store := openStore(t)

	require.NoError(t, store.Save("s1", []cartdom.Item{
		{Product: productdom.Product{ID: "a"}, Quantity: 2},
	}))
	require.NoError(t, store.Save("s1", nil))

	out, err := store.Load("s1")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestSessionsDoNotLeak(t *testing.T) {
	store := openStore(t)

	require.NoError(t, store.Save("s1", []cartdom.Item{
		{Product: productdom.Product{ID: "a"}, Quantity: 1},
	}))

	out, err := store.Load("s2")
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestEmptySessionIDRejected(t *testing.T) {
	store := openStore(t)

	_, err := store.Load("  ")
	assert.Error(t, err)
	assert.Error(t, store.Save("", nil))
}
