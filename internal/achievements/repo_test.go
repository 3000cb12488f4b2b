package achievements

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/reconnect-app/reconnect-backend/internal/domain"
	"github.com/reconnect-app/reconnect-backend/internal/store"
)

func setup(t *testing.T) (*store.MemStore, *Repo) {
	t.Helper()
	st := store.NewMem()
	return st, NewRepo(st, zap.NewNop())
}

func seed(t *testing.T, st *store.MemStore) {
	t.Helper()
	ctx := context.Background()

	rows := []struct {
		id     string
		userID string
		date   time.Time
	}{
		{"ach-old", "u1", time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)},
		{"ach-new", "u1", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
		{"ach-mid", "u1", time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)},
		{"ach-other", "u2", time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, r := range rows {
		require.NoError(t, st.Set(ctx, "achievements", r.id, map[string]any{
			"title":    r.id,
			"userId":   r.userID,
			"category": domain.CategoryProfessional,
			"date":     r.date,
		}))
	}
}

func TestList(t *testing.T) {
	ctx := context.Background()
	st, repo := setup(t)
	seed(t, st)

	t.Run("one user's entries, most recent first", func(t *testing.T) {
		out, err := repo.List(ctx, "u1")
		require.NoError(t, err)
		require.Len(t, out, 3)
		assert.Equal(t, "ach-new", out[0].ID)
		assert.Equal(t, "ach-mid", out[1].ID)
		assert.Equal(t, "ach-old", out[2].ID)
	})

	t.Run("same order when the composite index is missing", func(t *testing.T) {
		st.SimulateMissingIndexes(true)
		defer st.SimulateMissingIndexes(false)

		out, err := repo.List(ctx, "u1")
		require.NoError(t, err)
		require.Len(t, out, 3)
		assert.Equal(t, "ach-new", out[0].ID)
		assert.Equal(t, "ach-mid", out[1].ID)
		assert.Equal(t, "ach-old", out[2].ID)
	})

	t.Run("unknown user yields an empty list", func(t *testing.T) {
		out, err := repo.List(ctx, "nobody")
		require.NoError(t, err)
		assert.Empty(t, out)
	})
}

func TestCreateAndGet(t *testing.T) {
	ctx := context.Background()
	_, repo := setup(t)

	id, err := repo.Create(ctx, domain.Achievement{
		Title:       "Best Paper Award",
		Description: "ICSE 2024",
		Category:    domain.CategoryAcademic,
		UserID:      "u1",
		// Caller-supplied dates are replaced with the server time.
		Date: "1999-01-01T00:00:00Z",
	})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, "Best Paper Award", got.Title)
	assert.Equal(t, domain.CategoryAcademic, got.Category)
	assert.NotEqual(t, "1999-01-01T00:00:00Z", got.Date)

	when, err := time.Parse(time.RFC3339Nano, got.Date)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC(), when, 5*time.Second)
}

func TestGetMissing(t *testing.T) {
	ctx := context.Background()
	_, repo := setup(t)

	got, err := repo.GetByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}
