package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/seejay/userbase-be/internal/models"
	"github.com/seejay/userbase-be/internal/storage"
	"github.com/seejay/userbase-be/internal/storage/memory"
)

func TestCheckEmailSyntax(t *testing.T) {
	t.Parallel()

	valid := []string{
		"test@example.com",
		"first.last@example.co",
		"user+tag@mail.example.org",
		"under_score@sub.domain.io",
	}
	for _, email := range valid {
		require.True(t, CheckEmailSyntax(email), "expected %q to be valid", email)
	}

	invalid := []string{
		"invalid-email",
		"@example.com",
		"test@",
		"test@.com",
		"",
	}
	for _, email := range invalid {
		require.False(t, CheckEmailSyntax(email), "expected %q to be invalid", email)
	}
}

func TestVerifyPassword(t *testing.T) {
	t.Parallel()

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cretpass"), bcrypt.MinCost)
	require.NoError(t, err)

	require.True(t, VerifyPassword("s3cretpass", string(hash)))
	require.False(t, VerifyPassword("wrongpass", string(hash)))
	require.False(t, VerifyPassword("s3cretpass", "not-a-hash"))
}

// countingStore wraps a UserStore and counts lookups, to prove the syntax
// check runs before any store access.
type countingStore struct {
	storage.UserStore
	lookups int
}

func (c *countingStore) FindByEmail(ctx context.Context, email string) (models.User, error) {
	c.lookups++
	return c.UserStore.FindByEmail(ctx, email)
}

func TestVerifier_ResolveByEmail(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := &countingStore{UserStore: memory.NewUserStore()}
	_, err := store.UserStore.CreateUser(ctx, models.User{Username: "alice", Email: "alice@example.com"})
	require.NoError(t, err)

	verifier := NewVerifier(store)

	user, err := verifier.ResolveByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", user.Email)

	_, err = verifier.ResolveByEmail(ctx, "missing@example.com")
	require.ErrorIs(t, err, storage.ErrNotFound)

	lookupsBefore := store.lookups
	_, err = verifier.ResolveByEmail(ctx, "not-an-email")
	require.ErrorIs(t, err, ErrInvalidEmailFormat)
	require.Equal(t, lookupsBefore, store.lookups, "invalid email must not reach the store")
}
