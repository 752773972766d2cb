// internal/adapters/out/firestore/category_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	categorydom "lmye/internal/domain/category"
)

const categoriesCollection = "categories"

// CategoryRepositoryFS implements category.Repository and category.Watcher
// using Firestore. Reads are ordered by name ascending.
type CategoryRepositoryFS struct {
	Client *firestore.Client
}

func NewCategoryRepositoryFS(client *firestore.Client) *CategoryRepositoryFS {
	return &CategoryRepositoryFS{Client: client}
}

func (r *CategoryRepositoryFS) query() firestore.Query {
	return r.Client.Collection(categoriesCollection).OrderBy("name", firestore.Asc)
}

func (r *CategoryRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection(categoriesCollection)
}

func (r *CategoryRepositoryFS) ListOnce(ctx context.Context) ([]categorydom.Category, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("category_repository_fs: firestore client is nil")
	}

	snaps, err := r.query().Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}

	out := make([]categorydom.Category, 0, len(snaps))
	for _, snap := range snaps {
		c, err := categoryFromSnapshot(snap)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *CategoryRepositoryFS) Create(ctx context.Context, c categorydom.Category) (*categorydom.Category, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("category_repository_fs: firestore client is nil")
	}

	ref, _, err := r.col().Add(ctx, categoryDocFromDomain(c))
	if err != nil {
		return nil, err
	}
	c.ID = ref.ID
	return &c, nil
}

func (r *CategoryRepositoryFS) Update(ctx context.Context, id string, in categorydom.UpdateInput) error {
	if r == nil || r.Client == nil {
		return errors.New("category_repository_fs: firestore client is nil")
	}

	cid := strings.TrimSpace(id)
	if cid == "" {
		return errors.New("category_repository_fs: id is empty")
	}
	if in.Empty() {
		return nil
	}

	updates := make([]firestore.Update, 0, 2)
	if in.Name != nil {
		updates = append(updates, firestore.Update{Path: "name", Value: *in.Name})
	}
	if in.Color != nil {
		updates = append(updates, firestore.Update{Path: "color", Value: *in.Color})
	}

	_, err := r.col().Doc(cid).Update(ctx, updates)
	if status.Code(err) == codes.NotFound {
		return categorydom.ErrNotFound
	}
	return err
}

// Delete removes the category document only. Products referencing the
// category name are left as-is (no cascade).
func (r *CategoryRepositoryFS) Delete(ctx context.Context, id string) error {
	if r == nil || r.Client == nil {
		return errors.New("category_repository_fs: firestore client is nil")
	}

	cid := strings.TrimSpace(id)
	if cid == "" {
		return errors.New("category_repository_fs: id is empty")
	}

	_, err := r.col().Doc(cid).Delete(ctx)
	return err
}

// Watch opens a snapshot listener on the ordered category query; same
// contract as the product watcher.
func (r *CategoryRepositoryFS) Watch(ctx context.Context) (<-chan []categorydom.Category, <-chan error) {
	out := make(chan []categorydom.Category, 1)
	errCh := make(chan error, 1)

	go func() {
		defer close(out)
		defer close(errCh)

		it := r.query().Snapshots(ctx)
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

			list := make([]categorydom.Category, 0, len(docs))
			for _, d := range docs {
				c, err := categoryFromSnapshot(d)
				if err != nil {
					errCh <- err
					return
				}
				list = append(list, c)
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

type categoryDoc struct {
	Name  string `firestore:"name"`
	Color string `firestore:"color"`
}

func categoryDocFromDomain(c categorydom.Category) categoryDoc {
	return categoryDoc{Name: c.Name, Color: c.Color}
}

func categoryFromSnapshot(snap *firestore.DocumentSnapshot) (categorydom.Category, error) {
	var doc categoryDoc
	if err := snap.DataTo(&doc); err != nil {
		return categorydom.Category{}, err
	}
	return categorydom.Category{
		ID:    snap.Ref.ID,
		Name:  doc.Name,
		Color: doc.Color,
	}, nil
}
