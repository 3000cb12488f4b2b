// Package connections stores the directed connection edges between users.
package connections

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"time"

	"go.uber.org/zap"

	"github.com/reconnect-app/reconnect-backend/internal/domain"
	"github.com/reconnect-app/reconnect-backend/internal/store"
)

const collection = "connections"

type Repo struct {
	store store.Store
	exec  *store.Executor
}

func NewRepo(s store.Store, log *zap.Logger) *Repo {
	return &Repo{store: s, exec: store.NewExecutor(s, log)}
}

// List returns the accepted connections a user initiated. Accepted requests
// where the user was the receiver are not included; the upstream product
// behaves this way and callers depend on the shape.
func (r *Repo) List(ctx context.Context, userID string) ([]domain.Connection, error) {
	docs, err := r.exec.Run(ctx, store.Query{
		Collection: collection,
		Filters: []store.Filter{
			{Field: "requesterId", Op: "==", Value: userID},
			{Field: "status", Op: "==", Value: domain.ConnectionAccepted},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("fetch connections: %w", err)
	}

	out := make([]domain.Connection, 0, len(docs))
	for _, doc := range docs {
		c, err := decode(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *Repo) GetByID(ctx context.Context, id string) (*domain.Connection, error) {
	doc, err := r.store.Get(ctx, collection, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetch connection: %w", err)
	}

	c, err := decode(*doc)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create records a new request. Status defaults to pending when unset.
func (r *Repo) Create(ctx context.Context, c domain.Connection) (string, error) {
	fields, err := store.Fields(c)
	if err != nil {
		return "", err
	}
	delete(fields, "id")

	fields = store.Sanitize(fields)
	fields["createdAt"] = time.Now().UTC()
	if status, _ := fields["status"].(string); status == "" {
		fields["status"] = domain.ConnectionPending
	}

	id, err := r.store.Add(ctx, collection, fields)
	if err != nil {
		return "", fmt.Errorf("create connection: %w", err)
	}
	return id, nil
}

// UpdateStatus moves a request to accepted or rejected (or back to pending).
func (r *Repo) UpdateStatus(ctx context.Context, id, status string) error {
	switch status {
	case domain.ConnectionPending, domain.ConnectionAccepted, domain.ConnectionRejected:
	default:
		return domain.ErrInvalidStatus
	}

	if err := r.store.Update(ctx, collection, id, map[string]any{"status": status}); err != nil {
		return fmt.Errorf("update connection: %w", err)
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, collection, id); err != nil {
		return fmt.Errorf("delete connection: %w", err)
	}
	return nil
}

func decode(doc store.Document) (domain.Connection, error) {
	data := maps.Clone(doc.Data)
	data["createdAt"] = store.NormalizeTimestamp(data["createdAt"])

	var c domain.Connection
	if err := store.Decode(data, &c); err != nil {
		return domain.Connection{}, fmt.Errorf("decode connection %s: %w", doc.ID, err)
	}
	c.ID = doc.ID
	return c, nil
}
