package vault

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// kvServer answers KV v2 reads for a single path
func kvServer(t *testing.T, path string, data map[string]interface{}) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-token", r.Header.Get("X-Vault-Token"))
		if r.URL.Path != "/v1/"+path {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"errors":[]}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"data": map[string]interface{}{
				"data":     data,
				"metadata": map[string]interface{}{"version": 1},
			},
		})
	}))
}

func TestLoadSecrets(t *testing.T) {
	srv := kvServer(t, "kv/data/skilltrack", map[string]interface{}{
		"db_password": "pw",
		"jwt_secret":  "key",
		"ignored":     42,
	})
	defer srv.Close()

	client, err := NewClient(&Config{Address: srv.URL, Token: "test-token", KVMount: "kv"})
	require.NoError(t, err)

	secrets, err := client.LoadSecrets(context.Background(), "skilltrack")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"db_password": "pw", "jwt_secret": "key"}, secrets)
}

func TestGetSecretNotFound(t *testing.T) {
	srv := kvServer(t, "secret/data/other", nil)
	defer srv.Close()

	client, err := NewClient(&Config{Address: srv.URL, Token: "test-token"})
	require.NoError(t, err)

	_, err = client.GetSecret(context.Background(), "skilltrack")
	assert.ErrorIs(t, err, ErrSecretNotFound)
}
