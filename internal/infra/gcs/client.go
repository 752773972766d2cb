// internal/infra/gcs/client.go
package gcsinfra

import (
	"context"
	"fmt"
	"log"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// NewClient initializes a Cloud Storage client. When credentialsFile is
// empty, Application Default Credentials are used.
func NewClient(ctx context.Context, credentialsFile string) (*storage.Client, error) {
	var (
		client *storage.Client
		err    error
	)
	if credentialsFile != "" {
		client, err = storage.NewClient(ctx, option.WithCredentialsFile(credentialsFile))
	} else {
		client, err = storage.NewClient(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	log.Printf("✅ Cloud Storage connected")
	return client, nil
}
