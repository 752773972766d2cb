// internal/domain/cart/store_port.go
package cart

// Store is the persistence port for cart snapshots.
//
// The value is the JSON-serialized item list; sessionID scopes one cart per
// storefront session. Load returns (nil, nil) when no snapshot exists yet.
// There is no versioning or migration of the snapshot format.
type Store interface {
	Load(sessionID string) ([]Item, error)
	Save(sessionID string, items []Item) error
}
