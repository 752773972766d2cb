// internal/domain/product/repository_port.go
package product

import "context"

// UpdateInput - 部分更新 (nil means "leave unchanged").
type UpdateInput struct {
	Image       *string   `json:"image,omitempty"`
	Images      *[]string `json:"images,omitempty"`
	Brand       *string   `json:"brand,omitempty"`
	Type        *string   `json:"type,omitempty"`
	Category    *string   `json:"category,omitempty"`
	Price       *string   `json:"price,omitempty"`
	Description *string   `json:"description,omitempty"`
	Badge       *string   `json:"badge,omitempty"`
	BadgeColor  *string   `json:"badgeColor,omitempty"`
	Sizes       *[]string `json:"sizes,omitempty"`
	Active      *bool     `json:"active,omitempty"`
	IsNew       *bool     `json:"isNew,omitempty"`
}

// Empty reports whether the input updates nothing.
func (in UpdateInput) Empty() bool {
	return in.Image == nil && in.Images == nil && in.Brand == nil &&
		in.Type == nil && in.Category == nil && in.Price == nil &&
		in.Description == nil && in.Badge == nil && in.BadgeColor == nil &&
		in.Sizes == nil && in.Active == nil && in.IsNew == nil
}

// Repository is the persistence port for products.
//
// Not-found policy: GetByID returns (nil, ErrNotFound).
// ListOnce is a one-shot read of the full collection; bulk deletion must be
// driven by it, never by the live Watch stream.
type Repository interface {
	ListOnce(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)

	Create(ctx context.Context, p Product) (*Product, error)
	Update(ctx context.Context, id string, in UpdateInput) error
	Delete(ctx context.Context, id string) error
}

// Watcher is the change-stream port for products.
//
// Watch emits the full product list on every backend change until ctx is
// canceled. The error channel receives at most one error; after an error the
// stream is terminated (no reconnect policy). Both channels are closed when
// the stream ends.
type Watcher interface {
	Watch(ctx context.Context) (<-chan []Product, <-chan error)
}
