// internal/adapters/out/gcs/productImage_repository_gcs.go
package gcs

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"cloud.google.com/go/storage"
)

// ProductImageRepositoryGCS is the GCS adapter for product images.
//
// Layout (single bucket):
// - bucket: the storefront media bucket
// - objectPath: products/<upload-ms>_<original-filename>
//
// Public access:
//   - The bucket is expected to grant "allUsers: Storage Object Viewer"
//     (uniform access), so uploaded objects are publicly readable without
//     per-object ACL changes.
type ProductImageRepositoryGCS struct {
	Client *storage.Client
	Bucket string
	// Optional: if empty, uses https://storage.googleapis.com
	PublicBaseURL string
}

func NewProductImageRepositoryGCS(client *storage.Client, bucket string) *ProductImageRepositoryGCS {
	return &ProductImageRepositoryGCS{
		Client:        client,
		Bucket:        strings.TrimSpace(bucket),
		PublicBaseURL: "https://storage.googleapis.com",
	}
}

// Upload writes data to the bucket at objectPath and returns the public URL.
func (r *ProductImageRepositoryGCS) Upload(ctx context.Context, objectPath, contentType string, data []byte) (string, error) {
	if r == nil || r.Client == nil {
		return "", errors.New("productImage_repository_gcs: storage client is nil")
	}
	b := strings.TrimSpace(r.Bucket)
	if b == "" {
		return "", errors.New("productImage_repository_gcs: bucket is empty")
	}
	obj := strings.TrimLeft(strings.TrimSpace(objectPath), "/")
	if obj == "" {
		return "", errors.New("productImage_repository_gcs: objectPath is empty")
	}

	w := r.Client.Bucket(b).Object(obj).NewWriter(ctx)
	if ct := strings.TrimSpace(contentType); ct != "" {
		w.ContentType = ct
	}
	// Safety: avoid writer hanging forever.
	w.ChunkSize = 0
	w.Metadata = map[string]string{
		"uploadedAt": time.Now().UTC().Format(time.RFC3339),
	}
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	return r.PublicURL(obj), nil
}

// PublicURL returns a public URL for the object. Works when the bucket is
// publicly readable (uniform access via IAM).
func (r *ProductImageRepositoryGCS) PublicURL(objectPath string) string {
	base := strings.TrimSpace(r.PublicBaseURL)
	if base == "" {
		base = "https://storage.googleapis.com"
	}
	// Encode path but keep "/" separators.
	parts := strings.Split(objectPath, "/")
	for i := range parts {
		parts[i] = url.PathEscape(parts[i])
	}
	encoded := strings.Join(parts, "/")
	return fmt.Sprintf("%s/%s/%s", strings.TrimRight(base, "/"), strings.TrimSpace(r.Bucket), encoded)
}
