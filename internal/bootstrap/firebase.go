package bootstrap

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"github.com/reconnect-app/reconnect-backend/config"
)

// FirebaseClients bundles the clients handed out by one Admin SDK app.
type FirebaseClients struct {
	App       *firebase.App
	Auth      *fbauth.Client
	Firestore *firestore.Client
}

// InitializeFirebase initializes the Firebase Admin SDK and returns the Auth
// and Firestore clients. Without an explicit credentials file the SDK falls
// back to application default credentials.
func InitializeFirebase(ctx context.Context, cfg *config.FirebaseConfig) (*FirebaseClients, error) {
	var opts []option.ClientOption
	if cfg.CredentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsPath))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get Auth client: %w", err)
	}

	fsClient, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get Firestore client: %w", err)
	}

	return &FirebaseClients{App: app, Auth: authClient, Firestore: fsClient}, nil
}
