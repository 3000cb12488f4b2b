// Package colleges is plain CRUD over the colleges collection.
package colleges

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

const collection = "colleges"

type Repo struct {
	store store.Store
	exec  *store.Executor
}

func NewRepo(s store.Store, log *zap.Logger) *Repo {
	return &Repo{store: s, exec: store.NewExecutor(s, log)}
}

// List returns colleges newest first, optionally narrowed to one university.
func (r *Repo) List(ctx context.Context, universityID string) ([]domain.College, error) {
	q := store.Query{Collection: collection, OrderBy: "createdAt", Desc: true}
	if universityID != "" {
		q.Filters = append(q.Filters, store.Filter{Field: "universityId", Op: "==", Value: universityID})
	}

	docs, err := r.exec.Run(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("fetch colleges: %w", err)
	}

	out := make([]domain.College, 0, len(docs))
	for _, doc := range docs {
		c, err := decode(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *Repo) GetByID(ctx context.Context, id string) (*domain.College, error) {
	doc, err := r.store.Get(ctx, collection, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetch college: %w", err)
	}

	c, err := decode(*doc)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repo) Create(ctx context.Context, c domain.College) (string, error) {
	fields, err := store.Fields(c)
	if err != nil {
		return "", err
	}
	delete(fields, "id")

	fields = store.Sanitize(fields)
	fields["createdAt"] = time.Now().UTC()

	id, err := r.store.Add(ctx, collection, fields)
	if err != nil {
		return "", fmt.Errorf("create college: %w", err)
	}
	return id, nil
}

func (r *Repo) Update(ctx context.Context, id string, updates map[string]any) error {
	cleaned := store.Sanitize(updates)
	delete(cleaned, "id")
	delete(cleaned, "createdAt")

	if err := r.store.Update(ctx, collection, id, cleaned); err != nil {
		return fmt.Errorf("update college: %w", err)
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, collection, id); err != nil {
		return fmt.Errorf("delete college: %w", err)
	}
	return nil
}

func decode(doc store.Document) (domain.College, error) {
	data := maps.Clone(doc.Data)
	data["createdAt"] = store.NormalizeTimestamp(data["createdAt"])

	var c domain.College
	if err := store.Decode(data, &c); err != nil {
		return domain.College{}, fmt.Errorf("decode college %s: %w", doc.ID, err)
	}
	c.ID = doc.ID
	return c, nil
}
