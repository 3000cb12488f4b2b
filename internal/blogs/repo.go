// Package blogs stores alumni blog posts. The author field on a read result
// is hydrated from the users collection, never persisted.
package blogs

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"time"

	"go.uber.org/zap"

	"github.com/reconnect-app/reconnect-backend/internal/alumni"
	"github.com/reconnect-app/reconnect-backend/internal/domain"
	"github.com/reconnect-app/reconnect-backend/internal/store"
)

const (
	collection      = "blogs"
	usersCollection = "users"
)

type Repo struct {
	store store.Store
	exec  *store.Executor
}

func NewRepo(s store.Store, log *zap.Logger) *Repo {
	return &Repo{store: s, exec: store.NewExecutor(s, log)}
}

// List returns blogs newest first, optionally narrowed to one author, each
// hydrated with its author record.
func (r *Repo) List(ctx context.Context, authorID string) ([]domain.Blog, error) {
	q := store.Query{Collection: collection, OrderBy: "publishedAt", Desc: true}
	if authorID != "" {
		q.Filters = append(q.Filters, store.Filter{Field: "authorId", Op: "==", Value: authorID})
	}

	docs, err := r.exec.Run(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("fetch blogs: %w", err)
	}

	out := make([]domain.Blog, 0, len(docs))
	for _, doc := range docs {
		b, err := r.hydrate(ctx, doc)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

func (r *Repo) GetByID(ctx context.Context, id string) (*domain.Blog, error) {
	doc, err := r.store.Get(ctx, collection, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetch blog: %w", err)
	}

	b, err := r.hydrate(ctx, *doc)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Create ignores caller-supplied id/author/publish time and guarantees the
// counter and array fields exist on the stored document.
func (r *Repo) Create(ctx context.Context, b domain.Blog) (string, error) {
	fields, err := store.Fields(b)
	if err != nil {
		return "", err
	}
	delete(fields, "id")
	delete(fields, "author")

	fields = store.Sanitize(fields)
	fields["publishedAt"] = time.Now().UTC()
	for _, k := range []string{"tags", "likedBy", "comments"} {
		if _, ok := fields[k]; !ok {
			fields[k] = []any{}
		}
	}
	if _, ok := fields["likes"]; !ok {
		fields["likes"] = 0
	}
	if _, ok := fields["shares"]; !ok {
		fields["shares"] = 0
	}

	id, err := r.store.Add(ctx, collection, fields)
	if err != nil {
		return "", fmt.Errorf("create blog: %w", err)
	}
	return id, nil
}

func (r *Repo) Update(ctx context.Context, id string, updates map[string]any) error {
	cleaned := store.Sanitize(updates)
	delete(cleaned, "id")
	delete(cleaned, "author")
	delete(cleaned, "publishedAt")

	if err := r.store.Update(ctx, collection, id, cleaned); err != nil {
		return fmt.Errorf("update blog: %w", err)
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, collection, id); err != nil {
		return fmt.Errorf("delete blog: %w", err)
	}
	return nil
}

// Like toggles a user's like: present in likedBy removes it and decrements
// the counter, absent adds it and increments. Read-modify-write on a single
// document; concurrent toggles from two users can race (last writer wins).
func (r *Repo) Like(ctx context.Context, blogID, userID string) error {
	doc, err := r.store.Get(ctx, collection, blogID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.ErrBlogNotFound
	}
	if err != nil {
		return fmt.Errorf("fetch blog: %w", err)
	}

	likedBy := stringSlice(doc.Data["likedBy"])
	likes := intValue(doc.Data["likes"])

	liked := false
	for _, id := range likedBy {
		if id == userID {
			liked = true
			break
		}
	}

	if liked {
		next := make([]string, 0, len(likedBy)-1)
		for _, id := range likedBy {
			if id != userID {
				next = append(next, id)
			}
		}
		likedBy = next
		likes--
	} else {
		likedBy = append(likedBy, userID)
		likes++
	}

	err = r.store.Update(ctx, collection, blogID, map[string]any{
		"likes":   likes,
		"likedBy": likedBy,
	})
	if err != nil {
		return fmt.Errorf("update blog likes: %w", err)
	}
	return nil
}

// hydrate decodes a blog document and resolves its author. A deleted or
// absent author reads as nil, not as a failure of the whole blog.
func (r *Repo) hydrate(ctx context.Context, doc store.Document) (domain.Blog, error) {
	data := maps.Clone(doc.Data)
	data["publishedAt"] = store.NormalizeTimestamp(data["publishedAt"])
	delete(data, "author")

	var b domain.Blog
	if err := store.Decode(data, &b); err != nil {
		return domain.Blog{}, fmt.Errorf("decode blog %s: %w", doc.ID, err)
	}
	b.ID = doc.ID

	if b.Tags == nil {
		b.Tags = []string{}
	}
	if b.LikedBy == nil {
		b.LikedBy = []string{}
	}
	if b.Comments == nil {
		b.Comments = []domain.Comment{}
	}

	if b.AuthorID != "" {
		authorDoc, err := r.store.Get(ctx, usersCollection, b.AuthorID)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return domain.Blog{}, fmt.Errorf("fetch blog author: %w", err)
		}
		if authorDoc != nil {
			author, err := alumni.Decode(*authorDoc)
			if err != nil {
				return domain.Blog{}, err
			}
			b.Author = &author
		}
	}
	return b, nil
}

func stringSlice(v any) []string {
	switch vals := v.(type) {
	case []string:
		return vals
	case []any:
		out := make([]string, 0, len(vals))
		for _, item := range vals {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func intValue(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	return 0
}
