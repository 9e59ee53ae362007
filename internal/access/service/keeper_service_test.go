package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generateLocalSecretsURI(t *testing.T) string {
	t.Helper()
	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)
	return "base64key://" + base64.URLEncoding.EncodeToString(key)
}

func TestKeeperService_OpenKeeper(t *testing.T) {
	ctx := context.Background()
	keepers := NewKeeperService()

	t.Run("Success_LocalSecrets", func(t *testing.T) {
		keeper, err := keepers.OpenKeeper(ctx, generateLocalSecretsURI(t))
		require.NoError(t, err)
		assert.NoError(t, keeper.Close())
	})

	t.Run("Error_InvalidURI", func(t *testing.T) {
		keeper, err := keepers.OpenKeeper(ctx, "invalid://uri")
		assert.Error(t, err)
		assert.Nil(t, keeper)
		assert.Contains(t, err.Error(), "failed to open secret keeper")
	})
}

func TestLoadSigningSecret(t *testing.T) {
	ctx := context.Background()
	keepers := NewKeeperService()

	t.Run("Plaintext", func(t *testing.T) {
		secret, err := LoadSigningSecret(ctx, keepers, "", "plain-secret")
		require.NoError(t, err)
		assert.Equal(t, []byte("plain-secret"), secret)
	})

	t.Run("WrappedByKeeper", func(t *testing.T) {
		keyURI := generateLocalSecretsURI(t)
		keeper, err := keepers.OpenKeeper(ctx, keyURI)
		require.NoError(t, err)
		ciphertext, err := keeper.Encrypt(ctx, testSecret)
		require.NoError(t, err)
		require.NoError(t, keeper.Close())

		secret, err := LoadSigningSecret(ctx, keepers, keyURI, base64.StdEncoding.EncodeToString(ciphertext))
		require.NoError(t, err)
		assert.Equal(t, testSecret, secret)
	})

	t.Run("Error_NotBase64", func(t *testing.T) {
		_, err := LoadSigningSecret(ctx, keepers, generateLocalSecretsURI(t), "%%%")
		assert.Error(t, err)
	})

	t.Run("Error_WrongKey", func(t *testing.T) {
		keeper, err := keepers.OpenKeeper(ctx, generateLocalSecretsURI(t))
		require.NoError(t, err)
		ciphertext, err := keeper.Encrypt(ctx, testSecret)
		require.NoError(t, err)
		require.NoError(t, keeper.Close())

		_, err = LoadSigningSecret(ctx, keepers, generateLocalSecretsURI(t), base64.StdEncoding.EncodeToString(ciphertext))
		assert.Error(t, err)
	})

	t.Run("Error_Empty", func(t *testing.T) {
		_, err := LoadSigningSecret(ctx, keepers, "", "")
		assert.Error(t, err)
	})
}
