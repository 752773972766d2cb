// internal/application/admin/service.go
package admin

import (
	"context"
	"fmt"
	"log"
	"path"
	"time"

	categorydom "lmye/internal/domain/category"
	productdom "lmye/internal/domain/product"
)

// ImageStore is the object-storage port used for product image uploads.
// Upload writes the object and returns its public URL.
type ImageStore interface {
	Upload(ctx context.Context, objectPath, contentType string, data []byte) (string, error)
}

// Service is the admin back-office write surface: thin pass-through
// create/update/delete operations, each independently awaited and surfaced
// to the UI as a flat success/error message.
type Service struct {
	products   productdom.Repository
	categories categorydom.Repository
	images     ImageStore

	// nowMS stamps upload object paths; injectable for tests.
	nowMS func() int64
}

func NewService(products productdom.Repository, categories categorydom.Repository, images ImageStore) *Service {
	return &Service{
		products:   products,
		categories: categories,
		images:     images,
		nowMS:      func() int64 { return time.Now().UnixMilli() },
	}
}

// -------------------------
// Products
// -------------------------

// CreateProduct validates and stores a new product. New products default to
// visible; the image/images convention is normalized before the write.
func (s *Service) CreateProduct(ctx context.Context, p productdom.Product) (*productdom.Product, error) {
	p.Normalize()
	if p.Active == nil {
		p.Active = productdom.BoolPtr(true)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	created, err := s.products.Create(ctx, p)
	if err != nil {
		log.Printf("[admin] ❌ create product failed: %v", err)
		return nil, fmt.Errorf("admin: create product: %w", err)
	}
	log.Printf("[admin] ✅ product created id=%s", created.ID)
	return created, nil
}

// UpdateProduct applies a partial update. When the image list changes, the
// primary image is re-pinned to images[0].
func (s *Service) UpdateProduct(ctx context.Context, id string, in productdom.UpdateInput) error {
	if in.Images != nil {
		if imgs := *in.Images; len(imgs) > 0 {
			in.Image = &imgs[0]
		}
	}
	if err := s.products.Update(ctx, id, in); err != nil {
		log.Printf("[admin] ❌ update product %s failed: %v", id, err)
		return fmt.Errorf("admin: update product: %w", err)
	}
	return nil
}

// SetProductActive toggles the visibility flag only.
func (s *Service) SetProductActive(ctx context.Context, id string, active bool) error {
	return s.UpdateProduct(ctx, id, productdom.UpdateInput{Active: &active})
}

func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	if err := s.products.Delete(ctx, id); err != nil {
		log.Printf("[admin] ❌ delete product %s failed: %v", id, err)
		return fmt.Errorf("admin: delete product: %w", err)
	}
	return nil
}

// DeleteAllProducts removes every product. It enumerates a one-shot listing
// (never the live change stream, which would re-emit while we delete) and
// deletes sequentially, awaiting each write before issuing the next.
func (s *Service) DeleteAllProducts(ctx context.Context) (int, error) {
	list, err := s.products.ListOnce(ctx)
	if err != nil {
		return 0, fmt.Errorf("admin: list products for reset: %w", err)
	}

	deleted := 0
	for _, p := range list {
		if err := s.products.Delete(ctx, p.ID); err != nil {
			return deleted, fmt.Errorf("admin: delete product %s: %w", p.ID, err)
		}
		deleted++
	}
	log.Printf("[admin] 🗑️ deleted all products count=%d", deleted)
	return deleted, nil
}

// -------------------------
// Categories
// -------------------------

func (s *Service) CreateCategory(ctx context.Context, c categorydom.Category) (*categorydom.Category, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	created, err := s.categories.Create(ctx, c)
	if err != nil {
		log.Printf("[admin] ❌ create category failed: %v", err)
		return nil, fmt.Errorf("admin: create category: %w", err)
	}
	return created, nil
}

func (s *Service) UpdateCategory(ctx context.Context, id string, in categorydom.UpdateInput) error {
	if err := s.categories.Update(ctx, id, in); err != nil {
		log.Printf("[admin] ❌ update category %s failed: %v", id, err)
		return fmt.Errorf("admin: update category: %w", err)
	}
	return nil
}

// DeleteCategory removes the category document. Products keep referencing
// the category by name; their badge color lookup falls back to the default.
func (s *Service) DeleteCategory(ctx context.Context, id string) error {
	if err := s.categories.Delete(ctx, id); err != nil {
		log.Printf("[admin] ❌ delete category %s failed: %v", id, err)
		return fmt.Errorf("admin: delete category: %w", err)
	}
	return nil
}

// -------------------------
// Images
// -------------------------

// UploadImage stores an image under products/<upload-ms>_<original-filename>
// and returns its public URL. The timestamp prefix is the collision-avoidance
// strategy; two identically-named uploads within one millisecond collide
// (accepted risk).
func (s *Service) UploadImage(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	if s.images == nil {
		return "", fmt.Errorf("admin: image store not configured")
	}
	// Base strips any client-supplied directory part.
	objectPath := fmt.Sprintf("products/%d_%s", s.nowMS(), path.Base(filename))

	url, err := s.images.Upload(ctx, objectPath, contentType, data)
	if err != nil {
		log.Printf("[admin] ❌ upload image %s failed: %v", objectPath, err)
		return "", fmt.Errorf("admin: upload image: %w", err)
	}
	log.Printf("[admin] ✅ image uploaded: %s", url)
	return url, nil
}
