// Package alumni exposes the role=="alumni" view of the users collection.
package alumni

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

// Alumni share the users collection with every other role.
const collection = "users"

type Repo struct {
	store store.Store
	exec  *store.Executor
}

func NewRepo(s store.Store, log *zap.Logger) *Repo {
	return &Repo{store: s, exec: store.NewExecutor(s, log)}
}

// List returns alumni newest first, optionally narrowed to one college or
// one university. College wins when both are given.
func (r *Repo) List(ctx context.Context, collegeID, universityID string) ([]domain.Alumni, error) {
	filters := []store.Filter{{Field: "role", Op: "==", Value: domain.RoleAlumni}}
	if collegeID != "" {
		filters = append(filters, store.Filter{Field: "collegeId", Op: "==", Value: collegeID})
	} else if universityID != "" {
		filters = append(filters, store.Filter{Field: "universityId", Op: "==", Value: universityID})
	}

	docs, err := r.exec.Run(ctx, store.Query{
		Collection: collection,
		Filters:    filters,
		OrderBy:    "createdAt",
		Desc:       true,
	})
	if err != nil {
		return nil, fmt.Errorf("fetch alumni: %w", err)
	}

	out := make([]domain.Alumni, 0, len(docs))
	for _, doc := range docs {
		a, err := Decode(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

// GetByID narrows on the role tag: an existing users document whose role is
// not "alumni" reads as not-found, never as a mistyped record.
func (r *Repo) GetByID(ctx context.Context, id string) (*domain.Alumni, error) {
	doc, err := r.store.Get(ctx, collection, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetch alumni: %w", err)
	}
	if role, _ := doc.Data["role"].(string); role != domain.RoleAlumni {
		return nil, nil
	}

	a, err := Decode(*doc)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create ignores any caller-supplied id or creation timestamp, forces the
// role tag and guarantees the array fields exist on the stored document.
func (r *Repo) Create(ctx context.Context, a domain.Alumni) (string, error) {
	fields, err := store.Fields(a)
	if err != nil {
		return "", err
	}
	delete(fields, "id")

	fields = store.Sanitize(fields)
	fields["role"] = domain.RoleAlumni
	fields["createdAt"] = time.Now().UTC()
	for _, k := range arrayFields {
		if _, ok := fields[k]; !ok {
			fields[k] = []any{}
		}
	}

	id, err := r.store.Add(ctx, collection, fields)
	if err != nil {
		return "", fmt.Errorf("create alumni: %w", err)
	}
	return id, nil
}

func (r *Repo) Update(ctx context.Context, id string, updates map[string]any) error {
	cleaned := store.Sanitize(updates)
	delete(cleaned, "id")
	delete(cleaned, "role")
	delete(cleaned, "createdAt")

	if err := r.store.Update(ctx, collection, id, cleaned); err != nil {
		return fmt.Errorf("update alumni: %w", err)
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, collection, id); err != nil {
		return fmt.Errorf("delete alumni: %w", err)
	}
	return nil
}

var arrayFields = []string{"skills", "achievements", "blogs", "connections", "experience", "education"}

// Decode maps a users document onto the Alumni shape with normalized
// timestamps and non-nil array fields. Shared with the blog repository for
// author hydration.
func Decode(doc store.Document) (domain.Alumni, error) {
	data := maps.Clone(doc.Data)
	data["createdAt"] = store.NormalizeTimestamp(data["createdAt"])

	var a domain.Alumni
	if err := store.Decode(data, &a); err != nil {
		return domain.Alumni{}, fmt.Errorf("decode alumni %s: %w", doc.ID, err)
	}
	a.ID = doc.ID

	if a.Skills == nil {
		a.Skills = []string{}
	}
	if a.Achievements == nil {
		a.Achievements = []domain.Achievement{}
	}
	if a.Blogs == nil {
		a.Blogs = []domain.Blog{}
	}
	if a.Connections == nil {
		a.Connections = []string{}
	}
	if a.Experience == nil {
		a.Experience = []domain.WorkExperience{}
	}
	if a.Education == nil {
		a.Education = []domain.Education{}
	}
	return a, nil
}
