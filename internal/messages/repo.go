// Package messages stores direct messages between users.
package messages

import (
	"context"
	"fmt"
	"maps"
	"time"

	"go.uber.org/zap"

	"github.com/reconnect-app/reconnect-backend/internal/domain"
	"github.com/reconnect-app/reconnect-backend/internal/store"
)

const collection = "messages"

type Repo struct {
	store store.Store
	exec  *store.Executor
}

func NewRepo(s store.Store, log *zap.Logger) *Repo {
	return &Repo{store: s, exec: store.NewExecutor(s, log)}
}

func (r *Repo) Create(ctx context.Context, m domain.Message) (string, error) {
	fields, err := store.Fields(m)
	if err != nil {
		return "", err
	}
	delete(fields, "id")

	fields = store.Sanitize(fields)
	fields["createdAt"] = time.Now().UTC()

	id, err := r.store.Add(ctx, collection, fields)
	if err != nil {
		return "", fmt.Errorf("create message: %w", err)
	}
	return id, nil
}

// List returns messages newest first, optionally narrowed by sender and/or
// receiver.
func (r *Repo) List(ctx context.Context, senderID, receiverID string) ([]domain.Message, error) {
	q := store.Query{Collection: collection, OrderBy: "createdAt", Desc: true}
	if senderID != "" {
		q.Filters = append(q.Filters, store.Filter{Field: "senderId", Op: "==", Value: senderID})
	}
	if receiverID != "" {
		q.Filters = append(q.Filters, store.Filter{Field: "receiverId", Op: "==", Value: receiverID})
	}

	docs, err := r.exec.Run(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("fetch messages: %w", err)
	}

	out := make([]domain.Message, 0, len(docs))
	for _, doc := range docs {
		m, err := decode(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, collection, id); err != nil {
		return fmt.Errorf("delete message: %w", err)
	}
	return nil
}

func decode(doc store.Document) (domain.Message, error) {
	data := maps.Clone(doc.Data)
	data["createdAt"] = store.NormalizeTimestamp(data["createdAt"])

	var m domain.Message
	if err := store.Decode(data, &m); err != nil {
		return domain.Message{}, fmt.Errorf("decode message %s: %w", doc.ID, err)
	}
	m.ID = doc.ID
	return m, nil
}
