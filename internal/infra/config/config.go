// internal/infra/config/config.go
package config

import (
	"os"
	"strings"
)

// Config はアプリケーション全体の環境変数設定を保持します。
type Config struct {
	Port string

	FirestoreProjectID       string
	FirestoreCredentialsFile string
	FirebaseProjectID        string
	GCPCreds                 string

	// Object storage (product images)
	GCSBucket string

	// On-device cart store (bbolt file)
	CartDBPath string

	// CORS origin of the storefront frontend
	AllowedOrigin string

	// Admin allowlist; empty means any authenticated Google account
	AdminEmails []string

	// Outbound mail (order inquiries / contact form)
	SendGridAPIKey     string
	SendGridSecretName string // Secret Manager secret id, used when the key env is empty
	SecretsProjectID   string // project holding the secrets; defaults to the GCP project
	OrderMailFrom      string
	OrderMailTo        string
}

// Load reads the environment into a Config.
func Load() *Config {
	defaultProject := getenvDefault("GCP_PROJECT_ID", "lmye-storefront")

	cfg := &Config{
		Port: getenvDefault("PORT", "8080"),

		FirestoreProjectID:       getenvDefault("FIRESTORE_PROJECT_ID", defaultProject),
		FirestoreCredentialsFile: os.Getenv("FIRESTORE_CREDENTIALS_FILE"),
		FirebaseProjectID:        getenvDefault("FIREBASE_PROJECT_ID", defaultProject),
		GCPCreds:                 os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),

		GCSBucket: os.Getenv("GCS_BUCKET"),

		CartDBPath: getenvDefault("CART_DB_PATH", "cart.db"),

		AllowedOrigin: getenvDefault("ALLOWED_ORIGIN", "*"),

		AdminEmails: splitList(os.Getenv("ADMIN_EMAILS")),

		SendGridAPIKey:     os.Getenv("SENDGRID_API_KEY"),
		SendGridSecretName: os.Getenv("SENDGRID_SECRET_NAME"),
		SecretsProjectID:   getenvDefault("SECRETS_PROJECT_ID", defaultProject),
		OrderMailFrom:      os.Getenv("ORDER_MAIL_FROM"),
		OrderMailTo:        os.Getenv("ORDER_MAIL_TO"),
	}

	return cfg
}

// IsAdminEmail reports whether email passes the allowlist. An empty
// allowlist admits any authenticated account (the original gate).
func (c *Config) IsAdminEmail(email string) bool {
	if len(c.AdminEmails) == 0 {
		return true
	}
	e := strings.ToLower(strings.TrimSpace(email))
	for _, allowed := range c.AdminEmails {
		if e == strings.ToLower(allowed) {
			return true
		}
	}
	return false
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func splitList(v string) []string {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
