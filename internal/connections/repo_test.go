package connections

import (
	"context"
	"errors"
	"testing"

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

func TestList(t *testing.T) {
	ctx := context.Background()
	st, repo := setup(t)

	seed := func(id, requester, receiver, status string) {
		require.NoError(t, st.Set(ctx, "connections", id, map[string]any{
			"requesterId": requester,
			"receiverId":  receiver,
			"status":      status,
		}))
	}
	seed("mine-accepted", "u1", "u2", domain.ConnectionAccepted)
	seed("mine-pending", "u1", "u3", domain.ConnectionPending)
	seed("towards-me", "u4", "u1", domain.ConnectionAccepted)

	out, err := repo.List(ctx, "u1")
	require.NoError(t, err)

	// Only edges u1 initiated and that were accepted; an accepted request
	// where u1 is the receiver does not appear.
	require.Len(t, out, 1)
	assert.Equal(t, "mine-accepted", out[0].ID)
	assert.Equal(t, "u2", out[0].ReceiverID)
}

func TestCreateDefaultsToPending(t *testing.T) {
	ctx := context.Background()
	_, repo := setup(t)

	id, err := repo.Create(ctx, domain.Connection{RequesterID: "u1", ReceiverID: "u2"})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, domain.ConnectionPending, got.Status)
	assert.Equal(t, "u1", got.RequesterID)
	assert.NotEmpty(t, got.CreatedAt)
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()
	_, repo := setup(t)

	id, err := repo.Create(ctx, domain.Connection{RequesterID: "u1", ReceiverID: "u2"})
	require.NoError(t, err)

	t.Run("accepts a pending request", func(t *testing.T) {
		require.NoError(t, repo.UpdateStatus(ctx, id, domain.ConnectionAccepted))

		got, err := repo.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, domain.ConnectionAccepted, got.Status)
	})

	t.Run("rejects unknown statuses", func(t *testing.T) {
		err := repo.UpdateStatus(ctx, id, "blocked")
		assert.True(t, errors.Is(err, domain.ErrInvalidStatus))
	})

	t.Run("missing document", func(t *testing.T) {
		err := repo.UpdateStatus(ctx, "nope", domain.ConnectionAccepted)
		assert.True(t, errors.Is(err, store.ErrNotFound))
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	_, repo := setup(t)

	id, err := repo.Create(ctx, domain.Connection{RequesterID: "u1", ReceiverID: "u2"})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, id))

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, got)
}
