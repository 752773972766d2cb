// internal/adapters/in/http/handlers/cart_handler_test.go
package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/asaskevich/EventBus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lmye/internal/adapters/in/http/middleware"
	cartapp "lmye/internal/application/cart"
	cartdom "lmye/internal/domain/cart"
)

type memStore struct {
	snapshots map[string][]cartdom.Item
}

func (s *memStore) Load(sessionID string) ([]cartdom.Item, error) {
	return s.snapshots[sessionID], nil
}

func (s *memStore) Save(sessionID string, items []cartdom.Item) error {
	s.snapshots[sessionID] = items
	return nil
}

// cartFixture returns the session-wrapped cart handler plus a cookie that
// pins all requests to one session.
func cartFixture(t *testing.T) (http.Handler, *http.Cookie) {
	t.Helper()

	cat := catalogFixture(t)
	cart := cartapp.NewService(&memStore{snapshots: map[string][]cartdom.Item{}}, EventBus.New())
	h := middleware.Session(NewCartHandler(cart, cat))

	return h, &http.Cookie{Name: middleware.SessionCookie, Value: "test-session"}
}

func do(t *testing.T, h http.Handler, cookie *http.Cookie, method, url, body string) (*httptest.ResponseRecorder, cartView) {
	t.Helper()

	var r *httptest.ResponseRecorder
	req := httptest.NewRequest(method, url, strings.NewReader(body))
	req.AddCookie(cookie)
	r = httptest.NewRecorder()
	h.ServeHTTP(r, req)

	var view cartView
	if r.Code == http.StatusOK && strings.HasPrefix(r.Body.String(), "{\"items\"") {
		require.NoError(t, json.Unmarshal(r.Body.Bytes(), &view))
	}
	return r, view
}

func TestCartStartsEmpty(t *testing.T) {
	h, cookie := cartFixture(t)

	rec, view := do(t, h, cookie, http.MethodGet, "/api/cart", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, view.Items)
	assert.Zero(t, view.Count)
	assert.Zero(t, view.Total)
}

func TestCartAddResolvesProduct(t *testing.T) {
	h, cookie := cartFixture(t)

	rec, view := do(t, h, cookie, http.MethodPost, "/api/cart/items", `{"productId":"2","quantity":2}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, view.Items, 1)
	assert.Equal(t, "L'Éclat", view.Items[0].Product.Type, "denormalized copy from the catalog")
	assert.Equal(t, 2, view.Count)
}

func TestCartAddUnknownProduct(t *testing.T) {
	h, cookie := cartFixture(t)

	rec, _ := do(t, h, cookie, http.MethodPost, "/api/cart/items", `{"productId":"nope"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCartAddDefaultsQuantityToOne(t *testing.T) {
	h, cookie := cartFixture(t)

	_, view := do(t, h, cookie, http.MethodPost, "/api/cart/items", `{"productId":"1"}`)
	assert.Equal(t, 1, view.Count)
}

func TestCartItemLifecycle(t *testing.T) {
	h, cookie := cartFixture(t)

	// add 2
	do(t, h, cookie, http.MethodPost, "/api/cart/items", `{"productId":"1","quantity":2}`)

	// set to 5
	_, view := do(t, h, cookie, http.MethodPut, "/api/cart/items/1", `{"quantity":5}`)
	assert.Equal(t, 5, view.Count)

	// delta -1
	_, view = do(t, h, cookie, http.MethodPatch, "/api/cart/items/1", `{"delta":-1}`)
	assert.Equal(t, 4, view.Count)

	// delta to zero removes the line
	_, view = do(t, h, cookie, http.MethodPatch, "/api/cart/items/1", `{"delta":-4}`)
	assert.Empty(t, view.Items)

	// quantity of an absent item defaults to 1
	rec, _ := do(t, h, cookie, http.MethodGet, "/api/cart/items/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestCartRemoveAndClear(t *testing.T) {
	h, cookie := cartFixture(t)

	do(t, h, cookie, http.MethodPost, "/api/cart/items", `{"productId":"1","quantity":1}`)
	do(t, h, cookie, http.MethodPost, "/api/cart/items", `{"productId":"2","quantity":1}`)

	_, view := do(t, h, cookie, http.MethodDelete, "/api/cart/items/1", "")
	require.Len(t, view.Items, 1)
	assert.Equal(t, "2", view.Items[0].Product.ID)

	_, view = do(t, h, cookie, http.MethodDelete, "/api/cart", "")
	assert.Empty(t, view.Items)
}

func TestCartCount(t *testing.T) {
	h, cookie := cartFixture(t)

	do(t, h, cookie, http.MethodPost, "/api/cart/items", `{"productId":"1","quantity":3}`)

	rec, _ := do(t, h, cookie, http.MethodGet, "/api/cart/count", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"count":3}`, rec.Body.String())
}

func TestCartSessionsAreIsolated(t *testing.T) {
	h, cookie := cartFixture(t)
	other := &http.Cookie{Name: middleware.SessionCookie, Value: "other-session"}

	do(t, h, cookie, http.MethodPost, "/api/cart/items", `{"productId":"1","quantity":3}`)

	_, view := do(t, h, other, http.MethodGet, "/api/cart", "")
	assert.Empty(t, view.Items)
}

func TestSessionCookieAssignedToNewVisitors(t *testing.T) {
	h, _ := cartFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, middleware.SessionCookie, cookies[0].Name)
	assert.NotEmpty(t, cookies[0].Value)
}
