package identitytoolkit

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignInWithPassword(t *testing.T) {
	t.Run("successful sign-in", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/accounts:signInWithPassword", r.URL.Path)
			assert.Equal(t, "test-key", r.URL.Query().Get("key"))

			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "mike@example.com", body["email"])
			assert.Equal(t, true, body["returnSecureToken"])

			json.NewEncoder(w).Encode(SignInResponse{
				LocalID: "uid-1",
				Email:   "mike@example.com",
				IDToken: "token-abc",
			})
		}))
		defer srv.Close()

		c := NewWithClient("test-key", srv.URL, srv.Client())

		resp, err := c.SignInWithPassword(context.Background(), "mike@example.com", "secret")
		require.NoError(t, err)
		assert.Equal(t, "uid-1", resp.LocalID)
		assert.Equal(t, "token-abc", resp.IDToken)
	})

	t.Run("surfaces the API's error message", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]any{"code": 400, "message": MsgInvalidPassword},
			})
		}))
		defer srv.Close()

		c := NewWithClient("test-key", srv.URL, srv.Client())

		_, err := c.SignInWithPassword(context.Background(), "mike@example.com", "wrong")
		require.Error(t, err)

		var apiErr *Error
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
		assert.Equal(t, MsgInvalidPassword, apiErr.Message)
	})

	t.Run("falls back to the HTTP status on an unparseable body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("not json"))
		}))
		defer srv.Close()

		c := NewWithClient("test-key", srv.URL, srv.Client())

		_, err := c.SignInWithPassword(context.Background(), "mike@example.com", "secret")
		require.Error(t, err)

		var apiErr *Error
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	})
}

func TestSendPasswordResetEmail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/accounts:sendOobCode", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "PASSWORD_RESET", body["requestType"])
		assert.Equal(t, "mike@example.com", body["email"])

		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewWithClient("test-key", srv.URL, srv.Client())

	err := c.SendPasswordResetEmail(context.Background(), "mike@example.com")
	require.NoError(t, err)
}
