// internal/platform/di/container.go
package di

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"github.com/asaskevich/EventBus"
	"go.etcd.io/bbolt"
	"google.golang.org/api/option"

	httpin "lmye/internal/adapters/in/http"
	"lmye/internal/adapters/in/http/middleware"
	boltout "lmye/internal/adapters/out/bolt"
	outfs "lmye/internal/adapters/out/firestore"
	gcso "lmye/internal/adapters/out/gcs"
	"lmye/internal/adapters/out/mail"
	adminapp "lmye/internal/application/admin"
	cartapp "lmye/internal/application/cart"
	"lmye/internal/application/catalog"
	"lmye/internal/infra/config"
	firestoreinfra "lmye/internal/infra/firestore"
	gcsinfra "lmye/internal/infra/gcs"
)

// Container は main.go から使う依存オブジェクトの束。
// Pure DI: build deps only. No routing branching here.
type Container struct {
	Config *config.Config

	// services
	Catalog *catalog.Service
	Cart    *cartapp.Service
	Admin   *adminapp.Service
	Mailer  *mail.OrderMailer

	// auth (nil when Firebase init failed; the back office stays unmounted)
	FirebaseAuth *middleware.FirebaseAuthClient

	// held for Close()
	fsw       *firestoreinfra.ClientWrapper
	gcsClient *storage.Client
	cartDB    *bbolt.DB

	cancelWatch context.CancelFunc
}

// Build initializes the container.
//
// Firestore and the cart store are strict: the storefront cannot run without
// them. Firebase Auth, GCS and SendGrid are best-effort: a failure logs a
// warning and the dependent surface degrades (admin unmounted, uploads 503,
// inquiry 503) instead of taking the whole service down.
func Build(ctx context.Context, cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, errors.New("di: config is nil")
	}

	c := &Container{Config: cfg}

	// ------------------------------------------------------------
	// 1. external resources
	// ------------------------------------------------------------

	fsw, err := firestoreinfra.NewClient(ctx, cfg.FirestoreProjectID, cfg.FirestoreCredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("di: firestore: %w", err)
	}
	c.fsw = fsw

	cartDB, err := bbolt.Open(cfg.CartDBPath, 0o600, nil)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("di: open cart db %s: %w", cfg.CartDBPath, err)
	}
	c.cartDB = cartDB

	c.FirebaseAuth = buildFirebaseAuth(ctx, cfg)

	var images adminapp.ImageStore
	if cfg.GCSBucket == "" {
		log.Printf("[di] WARN: GCS_BUCKET is empty; image uploads disabled")
	} else if gcsClient, gerr := gcsinfra.NewClient(ctx, cfg.GCPCreds); gerr != nil {
		log.Printf("[di] WARN: gcs init failed, image uploads disabled: %v", gerr)
	} else {
		c.gcsClient = gcsClient
		images = gcso.NewProductImageRepositoryGCS(gcsClient, cfg.GCSBucket)
	}

	// ------------------------------------------------------------
	// 2. repositories (outbound adapters)
	// ------------------------------------------------------------

	productRepo := outfs.NewProductRepositoryFS(fsw.Client)
	categoryRepo := outfs.NewCategoryRepositoryFS(fsw.Client)

	cartStore, err := boltout.NewCartStoreBolt(cartDB)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("di: cart store: %w", err)
	}

	// ------------------------------------------------------------
	// 3. services
	// ------------------------------------------------------------

	bus := EventBus.New()

	c.Catalog = catalog.NewService(productRepo, categoryRepo, bus)
	c.Cart = cartapp.NewService(cartStore, bus)
	c.Admin = adminapp.NewService(productRepo, categoryRepo, images)
	c.Mailer = buildOrderMailer(ctx, cfg)

	// start the snapshot listeners; canceled on Close
	watchCtx, cancel := context.WithCancel(context.Background())
	c.cancelWatch = cancel
	c.Catalog.Start(watchCtx)

	return c, nil
}

// RouterDeps adapts the container for the HTTP router.
func (c *Container) RouterDeps() httpin.RouterDeps {
	return httpin.RouterDeps{
		Catalog:      c.Catalog,
		Cart:         c.Cart,
		Admin:        c.Admin,
		Mailer:       c.Mailer,
		FirebaseAuth: c.FirebaseAuth,
		IsAdmin:      c.Config.IsAdminEmail,
	}
}

// Close releases everything the container opened. Safe on a half-built
// container.
func (c *Container) Close() {
	if c == nil {
		return
	}
	if c.cancelWatch != nil {
		c.cancelWatch()
	}
	if c.cartDB != nil {
		_ = c.cartDB.Close()
	}
	if c.gcsClient != nil {
		_ = c.gcsClient.Close()
	}
	if c.fsw != nil {
		_ = c.fsw.Close()
	}
}

func buildFirebaseAuth(ctx context.Context, cfg *config.Config) *middleware.FirebaseAuthClient {
	opts := []option.ClientOption{}
	if cfg.GCPCreds != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.GCPCreds))
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.FirebaseProjectID}, opts...)
	if err != nil {
		log.Printf("[di] WARN: firebase init failed, admin api disabled: %v", err)
		return nil
	}
	authClient, err := app.Auth(ctx)
	if err != nil {
		log.Printf("[di] WARN: firebase auth init failed, admin api disabled: %v", err)
		return nil
	}
	log.Printf("✅ Firebase Auth ready (project: %s)", cfg.FirebaseProjectID)
	return authClient
}

// buildOrderMailer wires SendGrid when a key is available: the env var wins,
// Secret Manager is the fallback. Returns nil (inquiry endpoint serves 503)
// when neither yields a key.
func buildOrderMailer(ctx context.Context, cfg *config.Config) *mail.OrderMailer {
	if cfg.OrderMailFrom == "" || cfg.OrderMailTo == "" {
		log.Printf("[di] WARN: order mail addresses not set; inquiry mail disabled")
		return nil
	}

	key := strings.TrimSpace(cfg.SendGridAPIKey)
	if key == "" && cfg.SendGridSecretName != "" {
		sk, err := fetchSecret(ctx, cfg.SecretsProjectID, cfg.SendGridSecretName)
		if err != nil {
			log.Printf("[di] WARN: sendgrid key from secret manager failed: %v", err)
		} else {
			key = sk
		}
	}
	if key == "" {
		log.Printf("[di] WARN: no sendgrid api key; inquiry mail disabled")
		return nil
	}

	return mail.NewOrderMailer(mail.NewSendGridClient(key), cfg.OrderMailFrom, cfg.OrderMailTo)
}
