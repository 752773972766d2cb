// internal/adapters/out/bolt/cart_store_bolt.go
package bolt

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.etcd.io/bbolt"

	cartdom "lmye/internal/domain/cart"
)

// bucketCart is the fixed on-device key-value namespace for cart snapshots.
const bucketCart = "cart"

// CartStoreBolt implements cart.Store on a local bbolt file.
//
// Layout:
// - bucket: "cart"
// - key:    session id
// - value:  JSON-serialized []cart.Item
//
// No versioning/migration of the snapshot format; a snapshot that no longer
// unmarshals surfaces as a load error (the caller starts an empty cart).
type CartStoreBolt struct {
	db *bbolt.DB
}

func NewCartStoreBolt(db *bbolt.DB) (*CartStoreBolt, error) {
	if db == nil {
		return nil, errors.New("cart_store_bolt: db is nil")
	}
	err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketCart))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("cart_store_bolt: create bucket: %w", err)
	}
	return &CartStoreBolt{db: db}, nil
}

// Load returns the persisted items for the session, or (nil, nil) when no
// snapshot exists yet.
func (s *CartStoreBolt) Load(sessionID string) ([]cartdom.Item, error) {
	sid := strings.TrimSpace(sessionID)
	if sid == "" {
		return nil, errors.New("cart_store_bolt: sessionID is empty")
	}

	var items []cartdom.Item
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketCart))
		if b == nil {
			return nil
		}
		raw := b.Get([]byte(sid))
		if raw == nil {
			return nil
		}
		return json.Unmarshal(raw, &items)
	})
	if err != nil {
		return nil, fmt.Errorf("cart_store_bolt: load %s: %w", sid, err)
	}
	return items, nil
}

// Save overwrites the snapshot for the session with the full item list.
func (s *CartStoreBolt) Save(sessionID string, items []cartdom.Item) error {
	sid := strings.TrimSpace(sessionID)
	if sid == "" {
		return errors.New("cart_store_bolt: sessionID is empty")
	}
	if items == nil {
		items = []cartdom.Item{}
	}

	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("cart_store_bolt: marshal %s: %w", sid, err)
	}

	err = s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketCart))
		if b == nil {
			return errors.New("bucket missing")
		}
		return b.Put([]byte(sid), raw)
	})
	if err != nil {
		return fmt.Errorf("cart_store_bolt: save %s: %w", sid, err)
	}
	return nil
}
