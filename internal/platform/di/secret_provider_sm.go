// internal/platform/di/secret_provider_sm.go
package di

import (
	"context"
	"errors"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	secretmanagerpb "cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
)

// fetchSecret reads the latest version of a Secret Manager secret. Used for
// the SendGrid API key when SENDGRID_API_KEY is not set directly.
func fetchSecret(ctx context.Context, projectID, secretID string) (string, error) {
	prj := strings.TrimSpace(projectID)
	if prj == "" {
		return "", errors.New("di: fetchSecret: projectID is empty")
	}
	sid := strings.TrimSpace(secretID)
	if sid == "" {
		return "", errors.New("di: fetchSecret: secretID is empty")
	}

	sm, err := secretmanager.NewClient(ctx)
	if err != nil {
		return "", errors.New("di: fetchSecret: client init: " + err.Error())
	}
	defer func() { _ = sm.Close() }()

	name := "projects/" + prj + "/secrets/" + sid + "/versions/latest"
	resp, err := sm.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{Name: name})
	if err != nil {
		return "", errors.New("di: fetchSecret: AccessSecretVersion failed (" + name + "): " + err.Error())
	}
	if resp == nil || resp.Payload == nil {
		return "", errors.New("di: fetchSecret: empty payload (" + name + ")")
	}

	return strings.TrimSpace(string(resp.Payload.Data)), nil
}
