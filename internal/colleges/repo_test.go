package colleges

import (
	"context"
	"errors"
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

func TestCreateUpdateGet(t *testing.T) {
	ctx := context.Background()
	_, repo := setup(t)

	id, err := repo.Create(ctx, domain.College{
		Name:         "Engineering College",
		UniversityID: "u1",
		Description:  "Founded long ago",
		ContactEmail: "office@example.edu",
		AdminName:    "Original Admin",
		AdminEmail:   "admin@example.edu",
	})
	require.NoError(t, err)

	require.NoError(t, repo.Update(ctx, id, map[string]any{"adminName": "New Admin"}))

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)

	// Only the merged field changes.
	assert.Equal(t, "New Admin", got.AdminName)
	assert.Equal(t, "Engineering College", got.Name)
	assert.Equal(t, "admin@example.edu", got.AdminEmail)
	assert.Equal(t, "office@example.edu", got.ContactEmail)

	_, err = time.Parse(time.RFC3339Nano, got.CreatedAt)
	assert.NoError(t, err)
}

func TestUpdateMissing(t *testing.T) {
	ctx := context.Background()
	_, repo := setup(t)

	err := repo.Update(ctx, "nope", map[string]any{"adminName": "x"})
	assert.True(t, errors.Is(err, store.ErrNotFound))
}

func TestGetMissing(t *testing.T) {
	ctx := context.Background()
	_, repo := setup(t)

	got, err := repo.GetByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestList(t *testing.T) {
	ctx := context.Background()
	st, repo := setup(t)

	seed := func(id, universityID string, created time.Time) {
		require.NoError(t, st.Set(ctx, "colleges", id, map[string]any{
			"name":         id,
			"universityId": universityID,
			"createdAt":    created,
		}))
	}
	seed("c-old", "u1", time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC))
	seed("c-new", "u1", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	seed("c-other", "u2", time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC))

	t.Run("newest first", func(t *testing.T) {
		out, err := repo.List(ctx, "")
		require.NoError(t, err)
		require.Len(t, out, 3)
		assert.Equal(t, "c-new", out[0].ID)
		assert.Equal(t, "c-old", out[2].ID)
	})

	t.Run("filtered by university", func(t *testing.T) {
		out, err := repo.List(ctx, "u1")
		require.NoError(t, err)
		require.Len(t, out, 2)
		assert.Equal(t, "c-new", out[0].ID)
	})
}
