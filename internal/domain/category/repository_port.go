// internal/domain/category/repository_port.go
package category

import "context"

// UpdateInput - 部分更新 (nil means "leave unchanged").
type UpdateInput struct {
	Name  *string `json:"name,omitempty"`
	Color *string `json:"color,omitempty"`
}

func (in UpdateInput) Empty() bool {
	return in.Name == nil && in.Color == nil
}

// Repository is the persistence port for categories.
// Reads are ordered by name ascending (the backend query order).
type Repository interface {
	ListOnce(ctx context.Context) ([]Category, error)
	Create(ctx context.Context, c Category) (*Category, error)
	Update(ctx context.Context, id string, in UpdateInput) error
	Delete(ctx context.Context, id string) error
}

// Watcher is the change-stream port for categories, same contract as the
// product watcher: full list per change, one terminal error at most.
type Watcher interface {
	Watch(ctx context.Context) (<-chan []Category, <-chan error)
}
