package messages

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

func TestCreateAndList(t *testing.T) {
	ctx := context.Background()
	st, repo := setup(t)

	seed := func(id, sender, receiver string, created time.Time) {
		require.NoError(t, st.Set(ctx, "messages", id, map[string]any{
			"senderId": sender, "receiverId": receiver, "content": id, "createdAt": created,
		}))
	}
	seed("m-old", "u1", "u2", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	seed("m-new", "u1", "u2", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
	seed("m-reply", "u2", "u1", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))

	t.Run("newest first between two users", func(t *testing.T) {
		out, err := repo.List(ctx, "u1", "u2")
		require.NoError(t, err)
		require.Len(t, out, 2)
		assert.Equal(t, "m-new", out[0].ID)
		assert.Equal(t, "m-old", out[1].ID)
	})

	t.Run("sender-only filter", func(t *testing.T) {
		out, err := repo.List(ctx, "u2", "")
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, "m-reply", out[0].ID)
	})

	t.Run("create stamps the server time", func(t *testing.T) {
		id, err := repo.Create(ctx, domain.Message{SenderID: "u3", ReceiverID: "u4", Content: "hi"})
		require.NoError(t, err)

		out, err := repo.List(ctx, "u3", "u4")
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, id, out[0].ID)

		when, err := time.Parse(time.RFC3339Nano, out[0].CreatedAt)
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now().UTC(), when, 5*time.Second)
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	_, repo := setup(t)

	id, err := repo.Create(ctx, domain.Message{SenderID: "u1", ReceiverID: "u2", Content: "bye"})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, id))

	out, err := repo.List(ctx, "u1", "u2")
	require.NoError(t, err)
	assert.Empty(t, out)
}
