package db

import (
	"context"
	"encoding/base64"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"flockreads-backend-go/internal/config"
)

// Clients bundles the Firebase-backed clients the application depends on.
// It is constructed once by the process entry point and passed explicitly
// into repositories and middleware; there is no package-level instance.
// The entry point owns the lifecycle and must call Close on shutdown.
type Clients struct {
	Firestore *firestore.Client
	Auth      *auth.Client
}

// NewClients initializes the Firebase Admin SDK and returns the Firestore
// and Auth clients. Credentials resolve in order: service account file
// path, base64-encoded service account JSON, then Application Default
// Credentials (the usual setup on GCP runtimes).
func NewClients(ctx context.Context, appConfig *config.Config) (*Clients, error) {
	if appConfig == nil {
		return nil, fmt.Errorf("NewClients: appConfig cannot be nil")
	}

	var opts []option.ClientOption
	switch {
	case appConfig.GoogleApplicationCredentials != "":
		opts = append(opts, option.WithCredentialsFile(appConfig.GoogleApplicationCredentials))
	case appConfig.FirebaseServiceAccountJSONBase64 != "":
		decoded, err := base64.StdEncoding.DecodeString(appConfig.FirebaseServiceAccountJSONBase64)
		if err != nil {
			return nil, fmt.Errorf("failed to decode FIREBASE_SERVICE_ACCOUNT_JSON_BASE64: %w", err)
		}
		opts = append(opts, option.WithCredentialsJSON(decoded))
	}

	fbConfig := &firebase.Config{ProjectID: appConfig.FirebaseProjectID}

	app, err := firebase.NewApp(ctx, fbConfig, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase.NewApp: %w", err)
	}

	fsClient, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("app.Firestore: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		fsClient.Close() // best effort, init is considered failed
		return nil, fmt.Errorf("app.Auth: %w", err)
	}

	return &Clients{Firestore: fsClient, Auth: authClient}, nil
}

// Close releases the underlying Firestore connection. The Auth client has
// no resources to release.
func (c *Clients) Close() error {
	if c == nil || c.Firestore == nil {
		return nil
	}
	return c.Firestore.Close()
}
