package auth

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/seejay/userbase-be/internal/auth/authtest"
)

func TestKeyProvider_LoadAndCache(t *testing.T) {
	t.Parallel()

	privPEM, pubPEM := authtest.KeyPairPEM(t)
	provider := NewKeyProvider(privPEM, pubPEM)

	priv, err := provider.SigningKey()
	require.NoError(t, err)
	pub, err := provider.VerificationKey()
	require.NoError(t, err)

	// subsequent calls return the cached key objects
	privAgain, err := provider.SigningKey()
	require.NoError(t, err)
	require.Same(t, priv, privAgain)

	pubAgain, err := provider.VerificationKey()
	require.NoError(t, err)
	require.Same(t, pub, pubAgain)
}

func TestKeyProvider_MalformedPEM(t *testing.T) {
	t.Parallel()

	provider := NewKeyProvider("not a key", "also not a key")

	_, err := provider.SigningKey()
	require.ErrorIs(t, err, ErrKeyLoad)

	_, err = provider.VerificationKey()
	require.ErrorIs(t, err, ErrKeyLoad)
}

func TestKeyProvider_WrongKeyType(t *testing.T) {
	t.Parallel()

	privPEM, pubPEM := authtest.KeyPairPEM(t)

	// keys swapped: a public key is not valid signing material
	provider := NewKeyProvider(pubPEM, privPEM)

	_, err := provider.SigningKey()
	require.ErrorIs(t, err, ErrKeyLoad)

	_, err = provider.VerificationKey()
	require.ErrorIs(t, err, ErrKeyLoad)
}
