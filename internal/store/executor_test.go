package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func seedPosts(t *testing.T, m *MemStore) {
	t.Helper()
	ctx := context.Background()

	rows := []struct {
		id   string
		when time.Time
	}{
		{"old", time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"mid", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
		{"new", time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, r := range rows {
		require.NoError(t, m.Set(ctx, "posts", r.id, map[string]any{
			"authorId":    "a1",
			"publishedAt": r.when,
		}))
	}
	require.NoError(t, m.Set(ctx, "posts", "other", map[string]any{
		"authorId":    "a2",
		"publishedAt": time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}))
}

func TestExecutorRun(t *testing.T) {
	ctx := context.Background()
	q := Query{
		Collection: "posts",
		Filters:    []Filter{{Field: "authorId", Op: "==", Value: "a1"}},
		OrderBy:    "publishedAt",
		Desc:       true,
	}

	t.Run("passes ordered results through when the index exists", func(t *testing.T) {
		m := NewMem()
		seedPosts(t, m)
		ex := NewExecutor(m, zap.NewNop())

		docs, err := ex.Run(ctx, q)

		require.NoError(t, err)
		assert.Equal(t, []string{"new", "mid", "old"}, ids(docs))
	})

	t.Run("falls back to in-memory sorting on a missing index", func(t *testing.T) {
		m := NewMem()
		seedPosts(t, m)
		m.SimulateMissingIndexes(true)
		ex := NewExecutor(m, zap.NewNop())

		docs, err := ex.Run(ctx, q)

		require.NoError(t, err)
		assert.Equal(t, []string{"new", "mid", "old"}, ids(docs))
	})

	t.Run("fallback result matches the indexed result", func(t *testing.T) {
		m := NewMem()
		seedPosts(t, m)
		ex := NewExecutor(m, zap.NewNop())

		indexed, err := ex.Run(ctx, q)
		require.NoError(t, err)

		m.SimulateMissingIndexes(true)
		fallback, err := ex.Run(ctx, q)
		require.NoError(t, err)

		assert.Equal(t, ids(indexed), ids(fallback))
	})

	t.Run("propagates errors that are not about indexes", func(t *testing.T) {
		boom := status.Error(codes.PermissionDenied, "Missing or insufficient permissions.")
		ex := NewExecutor(failingStore{err: boom}, zap.NewNop())

		_, err := ex.Run(ctx, q)

		require.Error(t, err)
		assert.Equal(t, codes.PermissionDenied, status.Code(err))
	})

	t.Run("does not retry unordered queries", func(t *testing.T) {
		boom := status.Error(codes.FailedPrecondition, "The query requires an index.")
		ex := NewExecutor(failingStore{err: boom}, zap.NewNop())

		_, err := ex.Run(ctx, Query{Collection: "posts"})

		require.Error(t, err)
	})
}

func TestIsMissingIndex(t *testing.T) {
	assert.True(t, IsMissingIndex(status.Error(codes.FailedPrecondition, "The query requires an index.")))
	assert.True(t, IsMissingIndex(errors.New("rpc error: the query requires an INDEX")))
	assert.False(t, IsMissingIndex(status.Error(codes.PermissionDenied, "denied")))
	assert.False(t, IsMissingIndex(nil))
}

func TestSortByTimestamp(t *testing.T) {
	t.Run("sorts mixed native and string timestamps", func(t *testing.T) {
		docs := []Document{
			{ID: "b", Data: map[string]any{"createdAt": "2024-01-01T00:00:00Z"}},
			{ID: "a", Data: map[string]any{"createdAt": time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}},
		}

		SortByTimestamp(docs, "createdAt", true)

		assert.Equal(t, []string{"a", "b"}, ids(docs))
	})

	t.Run("documents without the field sort as now", func(t *testing.T) {
		docs := []Document{
			{ID: "dated", Data: map[string]any{"createdAt": "2020-01-01T00:00:00Z"}},
			{ID: "undated", Data: map[string]any{}},
		}

		SortByTimestamp(docs, "createdAt", true)

		assert.Equal(t, []string{"undated", "dated"}, ids(docs))
	})
}

type failingStore struct {
	err error
}

func (f failingStore) Get(ctx context.Context, collection, id string) (*Document, error) {
	return nil, f.err
}

func (f failingStore) Set(ctx context.Context, collection, id string, fields map[string]any) error {
	return f.err
}

func (f failingStore) Add(ctx context.Context, collection string, fields map[string]any) (string, error) {
	return "", f.err
}

func (f failingStore) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	return f.err
}

func (f failingStore) Delete(ctx context.Context, collection, id string) error {
	return f.err
}

func (f failingStore) Run(ctx context.Context, q Query) ([]Document, error) {
	return nil, f.err
}

func (f failingStore) Close() error { return nil }

func ids(docs []Document) []string {
	out := make([]string, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.ID)
	}
	return out
}
