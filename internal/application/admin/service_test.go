// internal/application/admin/service_test.go
package admin

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	categorydom "lmye/internal/domain/category"
	productdom "lmye/internal/domain/product"
)

// -------------------------
// fakes
// -------------------------

type fakeProductRepo struct {
	products []productdom.Product
	nextID   int

	deletes []string
	updates map[string]productdom.UpdateInput

	listErr   error
	deleteErr map[string]error
}

func newFakeProductRepo(seed ...productdom.Product) *fakeProductRepo {
	return &fakeProductRepo{
		products:  seed,
		updates:   map[string]productdom.UpdateInput{},
		deleteErr: map[string]error{},
	}
}

func (r *fakeProductRepo) ListOnce(ctx context.Context) ([]productdom.Product, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	return append([]productdom.Product(nil), r.products...), nil
}

func (r *fakeProductRepo) GetByID(ctx context.Context, id string) (*productdom.Product, error) {
	for i := range r.products {
		if r.products[i].ID == id {
			return &r.products[i], nil
		}
	}
	return nil, productdom.ErrNotFound
}

func (r *fakeProductRepo) Create(ctx context.Context, p productdom.Product) (*productdom.Product, error) {
	r.nextID++
	p.ID = fmt.Sprintf("p%d", r.nextID)
	r.products = append(r.products, p)
	return &p, nil
}

func (r *fakeProductRepo) Update(ctx context.Context, id string, in productdom.UpdateInput) error {
	r.updates[id] = in
	return nil
}

func (r *fakeProductRepo) Delete(ctx context.Context, id string) error {
	if err := r.deleteErr[id]; err != nil {
		return err
	}
	r.deletes = append(r.deletes, id)
	for i := range r.products {
		if r.products[i].ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			break
		}
	}
	return nil
}

type fakeCategoryRepo struct {
	categories []categorydom.Category
	deletes    []string
}

func (r *fakeCategoryRepo) ListOnce(ctx context.Context) ([]categorydom.Category, error) {
	return r.categories, nil
}

func (r *fakeCategoryRepo) Create(ctx context.Context, c categorydom.Category) (*categorydom.Category, error) {
	c.ID = fmt.Sprintf("c%d", len(r.categories)+1)
	r.categories = append(r.categories, c)
	return &c, nil
}

func (r *fakeCategoryRepo) Update(ctx context.Context, id string, in categorydom.UpdateInput) error {
	return nil
}

func (r *fakeCategoryRepo) Delete(ctx context.Context, id string) error {
	r.deletes = append(r.deletes, id)
	return nil
}

type fakeImageStore struct {
	lastPath        string
	lastContentType string
	err             error
}

func (s *fakeImageStore) Upload(ctx context.Context, objectPath, contentType string, data []byte) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.lastPath = objectPath
	s.lastContentType = contentType
	return "https://storage.example.com/" + objectPath, nil
}

func newTestService(products *fakeProductRepo, images ImageStore) *Service {
	return NewService(products, &fakeCategoryRepo{}, images)
}

// -------------------------
// products
// -------------------------

func TestCreateProductDefaultsToVisible(t *testing.T) {
	repo := newFakeProductRepo()
	svc := newTestService(repo, nil)

	created, err := svc.CreateProduct(context.Background(), productdom.Product{
		Brand:       "La Marque y Est",
		Type:        "Le Muse",
		Category:    "Sac",
		Description: "Un sac cabas élégant.",
		Image:       "le-muse.jpg",
	})
	require.NoError(t, err)
	require.NotNil(t, created.Active)
	assert.True(t, *created.Active)
	assert.NotEmpty(t, created.ID)
}

func TestCreateProductKeepsExplicitHiddenFlag(t *testing.T) {
	repo := newFakeProductRepo()
	svc := newTestService(repo, nil)

	created, err := svc.CreateProduct(context.Background(), productdom.Product{
		Brand:       "La Marque y Est",
		Type:        "Le Muse",
		Category:    "Sac",
		Description: "d",
		Image:       "x.jpg",
		Active:      productdom.BoolPtr(false),
	})
	require.NoError(t, err)
	assert.False(t, *created.Active)
}

func TestCreateProductNormalizesImages(t *testing.T) {
	repo := newFakeProductRepo()
	svc := newTestService(repo, nil)

	created, err := svc.CreateProduct(context.Background(), productdom.Product{
		Brand:       "La Marque y Est",
		Type:        "Le Muse",
		Category:    "Sac",
		Description: "d",
		Image:       "stale.jpg",
		Images:      []string{"a.jpg", " b.jpg ", "", "c.jpg", "d.jpg"},
	})
	require.NoError(t, err)
	assert.Equal(t, "a.jpg", created.Image)
	assert.Equal(t, []string{"a.jpg", "b.jpg", "c.jpg"}, created.Images)
}

func TestCreateProductRejectsInvalid(t *testing.T) {
	svc := newTestService(newFakeProductRepo(), nil)

	_, err := svc.CreateProduct(context.Background(), productdom.Product{Brand: "x"})
	assert.ErrorIs(t, err, productdom.ErrInvalidProduct)
}

func TestUpdateProductRepinsPrimaryImage(t *testing.T) {
	repo := newFakeProductRepo()
	svc := newTestService(repo, nil)

	images := []string{"new-1.jpg", "new-2.jpg"}
	require.NoError(t, svc.UpdateProduct(context.Background(), "p1", productdom.UpdateInput{
		Images: &images,
	}))

	in := repo.updates["p1"]
	require.NotNil(t, in.Image)
	assert.Equal(t, "new-1.jpg", *in.Image)
}

func TestSetProductActive(t *testing.T) {
	repo := newFakeProductRepo()
	svc := newTestService(repo, nil)

	require.NoError(t, svc.SetProductActive(context.Background(), "p1", false))

	in := repo.updates["p1"]
	require.NotNil(t, in.Active)
	assert.False(t, *in.Active)
	assert.Nil(t, in.Image)
}

func TestDeleteAllProductsEnumeratesOnce(t *testing.T) {
	repo := newFakeProductRepo(
		productdom.Product{ID: "p1"},
		productdom.Product{ID: "p2"},
		productdom.Product{ID: "p3"},
	)
	svc := newTestService(repo, nil)

	count, err := svc.DeleteAllProducts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.Equal(t, []string{"p1", "p2", "p3"}, repo.deletes, "sequential, listing order")
	assert.Empty(t, repo.products)
}

func TestDeleteAllProductsStopsOnFirstError(t *testing.T) {
	repo := newFakeProductRepo(
		productdom.Product{ID: "p1"},
		productdom.Product{ID: "p2"},
		productdom.Product{ID: "p3"},
	)
	repo.deleteErr["p2"] = errors.New("backend unavailable")
	svc := newTestService(repo, nil)

	count, err := svc.DeleteAllProducts(context.Background())
	assert.Error(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, []string{"p1"}, repo.deletes)
}

func TestSeedProducts(t *testing.T) {
	repo := newFakeProductRepo()
	svc := newTestService(repo, nil)

	require.NoError(t, svc.SeedProducts(context.Background()))
	require.Len(t, repo.products, 3)
	for _, p := range repo.products {
		assert.Equal(t, "La Marque y Est", p.Brand)
		assert.True(t, p.Visible())
	}
}

// -------------------------
// images
// -------------------------

func TestUploadImagePath(t *testing.T) {
	images := &fakeImageStore{}
	svc := newTestService(newFakeProductRepo(), images)
	svc.nowMS = func() int64 { return 1756380000123 }

	url, err := svc.UploadImage(context.Background(), "le-muse.jpg", "image/jpeg", []byte("data"))
	require.NoError(t, err)

	assert.Equal(t, "products/1756380000123_le-muse.jpg", images.lastPath)
	assert.Equal(t, "image/jpeg", images.lastContentType)
	assert.Equal(t, "https://storage.example.com/products/1756380000123_le-muse.jpg", url)
}

func TestUploadImageStripsClientDirectories(t *testing.T) {
	images := &fakeImageStore{}
	svc := newTestService(newFakeProductRepo(), images)
	svc.nowMS = func() int64 { return 1 }

	_, err := svc.UploadImage(context.Background(), "../../etc/passwd", "text/plain", []byte("x"))
	require.NoError(t, err)
	assert.Equal(t, "products/1_passwd", images.lastPath)
}

func TestUploadImageWithoutStore(t *testing.T) {
	svc := newTestService(newFakeProductRepo(), nil)

	_, err := svc.UploadImage(context.Background(), "a.jpg", "image/jpeg", nil)
	assert.Error(t, err)
}

// -------------------------
// categories
// -------------------------

func TestCreateCategoryValidates(t *testing.T) {
	svc := newTestService(newFakeProductRepo(), nil)

	_, err := svc.CreateCategory(context.Background(), categorydom.Category{Name: "Sac"})
	assert.ErrorIs(t, err, categorydom.ErrInvalidCategory)

	created, err := svc.CreateCategory(context.Background(), categorydom.Category{Name: "Sac", Color: "#513a58"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
}
