// Package users stores the base identity records backing every role. The
// users collection is role-tagged: alumni, students and general users all
// live here, discriminated by the role field.
package users

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

const collection = "users"

type Repo struct {
	store store.Store
	exec  *store.Executor
}

func NewRepo(s store.Store, log *zap.Logger) *Repo {
	return &Repo{store: s, exec: store.NewExecutor(s, log)}
}

// GetByID returns nil without error when no such user exists.
func (r *Repo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	doc, err := r.store.Get(ctx, collection, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetch user: %w", err)
	}

	u, err := decodeUser(*doc)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// List returns users filtered by role and/or college, newest first.
func (r *Repo) List(ctx context.Context, role, collegeID string) ([]domain.User, error) {
	q := store.Query{Collection: collection, OrderBy: "createdAt", Desc: true}
	if role != "" {
		q.Filters = append(q.Filters, store.Filter{Field: "role", Op: "==", Value: role})
	}
	if collegeID != "" {
		q.Filters = append(q.Filters, store.Filter{Field: "collegeId", Op: "==", Value: collegeID})
	}

	docs, err := r.exec.Run(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("fetch users: %w", err)
	}

	out := make([]domain.User, 0, len(docs))
	for _, doc := range docs {
		u, err := decodeUser(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, nil
}

// CreateWithID writes the document under the identity provider's uid, which
// doubles as the user's document key.
func (r *Repo) CreateWithID(ctx context.Context, u domain.User) error {
	fields, err := store.Fields(u)
	if err != nil {
		return err
	}
	delete(fields, "id")

	if err := r.store.Set(ctx, collection, u.ID, store.Sanitize(fields)); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// Update merges the given fields; absent fields stay untouched. The role
// tag is fixed at creation and cannot be rewritten through a merge.
func (r *Repo) Update(ctx context.Context, id string, updates map[string]any) error {
	cleaned := store.Sanitize(updates)
	delete(cleaned, "id")
	delete(cleaned, "role")
	delete(cleaned, "createdAt")
	cleaned["updatedAt"] = time.Now().UTC().Format(time.RFC3339Nano)

	if err := r.store.Update(ctx, collection, id, cleaned); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, collection, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

func decodeUser(doc store.Document) (domain.User, error) {
	data := maps.Clone(doc.Data)
	data["createdAt"] = store.NormalizeTimestamp(data["createdAt"])

	var u domain.User
	if err := store.Decode(data, &u); err != nil {
		return domain.User{}, fmt.Errorf("decode user %s: %w", doc.ID, err)
	}
	u.ID = doc.ID
	return u, nil
}
