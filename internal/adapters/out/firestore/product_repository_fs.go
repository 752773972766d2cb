// internal/adapters/out/firestore/product_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"log"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	productdom "lmye/internal/domain/product"
)

const productsCollection = "products"

// ProductRepositoryFS implements product.Repository and product.Watcher
// using Firestore.
//
// Collection design:
// - collection: products
// - docId: auto-generated ✅ (docId is the source of truth for Product.ID)
type ProductRepositoryFS struct {
	Client *firestore.Client
}

func NewProductRepositoryFS(client *firestore.Client) *ProductRepositoryFS {
	return &ProductRepositoryFS{Client: client}
}

func (r *ProductRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection(productsCollection)
}

// ListOnce reads the full collection once. Bulk deletion is driven by this,
// never by the live snapshot stream.
func (r *ProductRepositoryFS) ListOnce(ctx context.Context) ([]productdom.Product, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("product_repository_fs: firestore client is nil")
	}

	snaps, err := r.col().Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}

	out := make([]productdom.Product, 0, len(snaps))
	for _, snap := range snaps {
		p, err := productFromSnapshot(snap)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *ProductRepositoryFS) GetByID(ctx context.Context, id string) (*productdom.Product, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("product_repository_fs: firestore client is nil")
	}

	pid := strings.TrimSpace(id)
	if pid == "" {
		return nil, errors.New("product_repository_fs: id is empty")
	}

	snap, err := r.col().Doc(pid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, productdom.ErrNotFound
		}
		return nil, err
	}

	p, err := productFromSnapshot(snap)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepositoryFS) Create(ctx context.Context, p productdom.Product) (*productdom.Product, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("product_repository_fs: firestore client is nil")
	}

	ref, _, err := r.col().Add(ctx, productDocFromDomain(p))
	if err != nil {
		return nil, err
	}

	p.ID = ref.ID
	log.Printf("[product_repository_fs] ✅ product added id=%s", ref.ID)
	return &p, nil
}

// Update applies a partial-field update; only the non-nil fields of in are
// written.
func (r *ProductRepositoryFS) Update(ctx context.Context, id string, in productdom.UpdateInput) error {
	if r == nil || r.Client == nil {
		return errors.New("product_repository_fs: firestore client is nil")
	}

	pid := strings.TrimSpace(id)
	if pid == "" {
		return errors.New("product_repository_fs: id is empty")
	}
	if in.Empty() {
		return nil
	}

	updates := make([]firestore.Update, 0, 12)
	appendUpdate := func(path string, v any) {
		updates = append(updates, firestore.Update{Path: path, Value: v})
	}
	if in.Image != nil {
		appendUpdate("image", *in.Image)
	}
	if in.Images != nil {
		appendUpdate("images", *in.Images)
	}
	if in.Brand != nil {
		appendUpdate("brand", *in.Brand)
	}
	if in.Type != nil {
		appendUpdate("type", *in.Type)
	}
	if in.Category != nil {
		appendUpdate("category", *in.Category)
	}
	if in.Price != nil {
		appendUpdate("price", *in.Price)
	}
	if in.Description != nil {
		appendUpdate("description", *in.Description)
	}
	if in.Badge != nil {
		appendUpdate("badge", *in.Badge)
	}
	if in.BadgeColor != nil {
		appendUpdate("badgeColor", *in.BadgeColor)
	}
	if in.Sizes != nil {
		appendUpdate("sizes", *in.Sizes)
	}
	if in.Active != nil {
		appendUpdate("active", *in.Active)
	}
	if in.IsNew != nil {
		appendUpdate("isNew", *in.IsNew)
	}

	_, err := r.col().Doc(pid).Update(ctx, updates)
	if status.Code(err) == codes.NotFound {
		return productdom.ErrNotFound
	}
	return err
}

func (r *ProductRepositoryFS) Delete(ctx context.Context, id string) error {
	if r == nil || r.Client == nil {
		return errors.New("product_repository_fs: firestore client is nil")
	}

	pid := strings.TrimSpace(id)
	if pid == "" {
		return errors.New("product_repository_fs: id is empty")
	}

	_, err := r.col().Doc(pid).Delete(ctx)
	return err
}

// Watch opens a snapshot listener on the products collection and emits the
// full list on every change until ctx is canceled. At most one error is
// sent; the stream terminates after it (no reconnect).
func (r *ProductRepositoryFS) Watch(ctx context.Context) (<-chan []productdom.Product, <-chan error) {
	out := make(chan []productdom.Product, 1)
	errCh := make(chan error, 1)

	go func() {
		defer close(out)
		defer close(errCh)

		it := r.col().Snapshots(ctx)
		defer it.Stop()

		for {
			snap, err := it.Next()
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				errCh <- err
				return
			}

			docs, err := snap.Documents.GetAll()
			if err != nil {
				errCh <- err
				return
			}

			list := make([]productdom.Product, 0, len(docs))
			for _, d := range docs {
				p, err := productFromSnapshot(d)
				if err != nil {
					errCh <- err
					return
				}
				list = append(list, p)
			}

			select {
			case out <- list:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, errCh
}

// -----------------------------------------
// Firestore DTO
// -----------------------------------------

// productDoc keeps the stored shape independent from the domain struct
// (schema changes stay local to this adapter).
type productDoc struct {
	Image       string   `firestore:"image"`
	Images      []string `firestore:"images"`
	Brand       string   `firestore:"brand"`
	Type        string   `firestore:"type"`
	Category    string   `firestore:"category"`
	Price       string   `firestore:"price"`
	Description string   `firestore:"description"`
	Badge       string   `firestore:"badge"`
	BadgeColor  string   `firestore:"badgeColor"`
	Sizes       []string `firestore:"sizes"`
	Active      *bool    `firestore:"active"`
	IsNew       bool     `firestore:"isNew"`
}

func productDocFromDomain(p productdom.Product) productDoc {
	return productDoc{
		Image:       p.Image,
		Images:      p.Images,
		Brand:       p.Brand,
		Type:        p.Type,
		Category:    p.Category,
		Price:       p.Price,
		Description: p.Description,
		Badge:       p.Badge,
		BadgeColor:  p.BadgeColor,
		Sizes:       p.Sizes,
		Active:      p.Active,
		IsNew:       p.IsNew,
	}
}

func productFromSnapshot(snap *firestore.DocumentSnapshot) (productdom.Product, error) {
	var doc productDoc
	if err := snap.DataTo(&doc); err != nil {
		return productdom.Product{}, err
	}
	return productdom.Product{
		// docId is the source of truth; legacy docs carry no id field.
		ID:          snap.Ref.ID,
		Image:       doc.Image,
		Images:      doc.Images,
		Brand:       doc.Brand,
		Type:        doc.Type,
		Category:    doc.Category,
		Price:       doc.Price,
		Description: doc.Description,
		Badge:       doc.Badge,
		BadgeColor:  doc.BadgeColor,
		Sizes:       doc.Sizes,
		Active:      doc.Active,
		IsNew:       doc.IsNew,
	}, nil
}
