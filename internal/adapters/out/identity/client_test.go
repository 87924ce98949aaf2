package identity_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"fulfillment/internal/adapters/out/identity"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_GetRole(t *testing.T) {
	actorID := kernel.NewUUID()

	t.Run("should resolve the actor role", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Contains(t, r.URL.Path, actorID.String())
			require.NoError(t, json.NewEncoder(w).Encode(map[string]any{"role": "dispatcher"}))
		}))
		defer server.Close()

		client, err := identity.NewClient(server.URL, server.Client(), nil)
		require.NoError(t, err)

		role, err := client.GetRole(t.Context(), actorID)
		require.NoError(t, err)
		assert.Equal(t, kernel.RoleDispatcher, role)
	})

	t.Run("should report not found for unknown actors", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		client, err := identity.NewClient(server.URL, server.Client(), nil)
		require.NoError(t, err)

		_, err = client.GetRole(t.Context(), actorID)
		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("should fail on unknown role names", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			require.NoError(t, json.NewEncoder(w).Encode(map[string]any{"role": "superuser"}))
		}))
		defer server.Close()

		client, err := identity.NewClient(server.URL, server.Client(), nil)
		require.NoError(t, err)

		_, err = client.GetRole(t.Context(), actorID)
		require.Error(t, err)
	})
}

func TestNewClient_RequiresBaseURL(t *testing.T) {
	_, err := identity.NewClient("", nil, nil)
	require.Error(t, err)
}
