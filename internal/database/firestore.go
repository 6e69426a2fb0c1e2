package database

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"

	"github.com/lucas24aguirre-lang/comuna-manantial/internal/config"
)

// Connect initializes the Firebase app and returns its Firestore client.
// Credentials come from the service account file; the project ID falls back
// to the one embedded in the credentials when not set explicitly.
func Connect(ctx context.Context, cfg *config.Config) (*firestore.Client, error) {
	var fbCfg *firebase.Config
	if cfg.FirebaseProjectID != "" {
		fbCfg = &firebase.Config{ProjectID: cfg.FirebaseProjectID}
	}

	opt := option.WithCredentialsFile(cfg.FirebaseServiceAccountPath)
	app, err := firebase.NewApp(ctx, fbCfg, opt)
	if err != nil {
		return nil, fmt.Errorf("error initializing firebase app: %w", err)
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting firestore client: %w", err)
	}

	return client, nil
}
