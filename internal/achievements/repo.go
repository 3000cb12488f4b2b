// Package achievements stores per-user achievement entries.
package achievements

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

const collection = "achievements"

type Repo struct {
	store store.Store
	exec  *store.Executor
}

func NewRepo(s store.Store, log *zap.Logger) *Repo {
	return &Repo{store: s, exec: store.NewExecutor(s, log)}
}

// List returns one user's achievements, most recent first. The filter+sort
// combination needs a composite index, so this is the query that exercises
// the executor's fallback path most often.
func (r *Repo) List(ctx context.Context, userID string) ([]domain.Achievement, error) {
	docs, err := r.exec.Run(ctx, store.Query{
		Collection: collection,
		Filters:    []store.Filter{{Field: "userId", Op: "==", Value: userID}},
		OrderBy:    "date",
		Desc:       true,
	})
	if err != nil {
		return nil, fmt.Errorf("fetch achievements: %w", err)
	}

	out := make([]domain.Achievement, 0, len(docs))
	for _, doc := range docs {
		a, err := decode(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

func (r *Repo) GetByID(ctx context.Context, id string) (*domain.Achievement, error) {
	doc, err := r.store.Get(ctx, collection, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetch achievement: %w", err)
	}

	a, err := decode(*doc)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *Repo) Create(ctx context.Context, a domain.Achievement) (string, error) {
	fields, err := store.Fields(a)
	if err != nil {
		return "", err
	}
	delete(fields, "id")

	fields = store.Sanitize(fields)
	fields["date"] = time.Now().UTC()

	id, err := r.store.Add(ctx, collection, fields)
	if err != nil {
		return "", fmt.Errorf("create achievement: %w", err)
	}
	return id, nil
}

func (r *Repo) Update(ctx context.Context, id string, updates map[string]any) error {
	cleaned := store.Sanitize(updates)
	delete(cleaned, "id")

	if err := r.store.Update(ctx, collection, id, cleaned); err != nil {
		return fmt.Errorf("update achievement: %w", err)
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, collection, id); err != nil {
		return fmt.Errorf("delete achievement: %w", err)
	}
	return nil
}

func decode(doc store.Document) (domain.Achievement, error) {
	data := maps.Clone(doc.Data)
	data["date"] = store.NormalizeTimestamp(data["date"])

	var a domain.Achievement
	if err := store.Decode(data, &a); err != nil {
		return domain.Achievement{}, fmt.Errorf("decode achievement %s: %w", doc.ID, err)
	}
	a.ID = doc.ID
	return a, nil
}
