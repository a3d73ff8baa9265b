package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reservat/provider-console/internal/console/session"
)

func TestMorphServer(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"api.reservat.example.com", "https://api.reservat.example.com"},
		{"http://localhost:8000", "http://localhost:8000"},
		{"https://api.reservat.example.com/", "https://api.reservat.example.com"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, MorphServer(tt.in))
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: \"0.1.0\"\nserver_url: api.reservat.example.com\nbucket_url: https://bucket.example.com/img\n"), 0600))

	require.NoError(t, LoadConfig(path))
	cfg := GetConfig()
	require.NotNil(t, cfg)
	assert.Equal(t, "https://api.reservat.example.com", cfg.ServerURL)
	assert.Equal(t, "https://bucket.example.com/img", cfg.BucketURL)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server_url: api.reservat.example.com\n"), 0600))

	t.Setenv("RESERVAT_SERVER_URL", "http://localhost:8000")
	require.NoError(t, LoadConfig(path))
	assert.Equal(t, "http://localhost:8000", GetConfig().ServerURL)
}

func TestLoadConfigRequiresServer(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: \"0.1.0\"\n"), 0600))

	assert.Error(t, LoadConfig(path))
}

func TestClientConfigReadsTokenStore(t *testing.T) {
	expiry := time.Now().Add(time.Hour).Truncate(time.Second)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":           "prov-1",
		"email":        "hotel@example.com",
		"tipo_usuario": "hotel",
		"exp":          expiry.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	store := session.NewMemoryTokenStore()
	cc := &clientConfig{serverURL: "api.reservat.example.com", store: store}

	assert.Equal(t, "https://api.reservat.example.com", cc.GetServerURL())
	assert.Empty(t, cc.GetToken())
	assert.True(t, cc.GetTokenExpiry().IsZero())

	require.NoError(t, store.Write(signed))
	assert.Equal(t, signed, cc.GetToken())
	assert.Equal(t, expiry.UTC(), cc.GetTokenExpiry().UTC())
}
