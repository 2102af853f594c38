package users

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/seejay/userbase-be/internal/models"
	"github.com/seejay/userbase-be/internal/storage"
	"github.com/seejay/userbase-be/internal/storage/memory"
)

func intPtr(v int) *int { return &v }

func seedAccounts(t *testing.T, n int) *Service {
	t.Helper()
	store := memory.NewUserStore()
	for i := 1; i <= n; i++ {
		_, err := store.CreateUser(context.Background(), models.User{
			Username: fmt.Sprintf("user%02d", i),
			Email:    fmt.Sprintf("user%02d@example.com", i),
		})
		require.NoError(t, err)
	}
	return NewService(store, 4)
}

func TestQuery_SinglePageByDefault(t *testing.T) {
	t.Parallel()

	service := seedAccounts(t, 25)

	page, err := service.Query(context.Background(), QueryParams{})
	require.NoError(t, err)
	require.Equal(t, 1, page.Page)
	require.Equal(t, 25, page.Limit)
	require.Equal(t, 25, page.Total)
	require.Len(t, page.Items, 25)

	// id-ascending ordering is what makes pagination stable
	for i := 1; i < len(page.Items); i++ {
		require.Less(t, page.Items[i-1].ID, page.Items[i].ID)
	}
}

func TestQuery_LastPartialPage(t *testing.T) {
	t.Parallel()

	service := seedAccounts(t, 25)

	page, err := service.Query(context.Background(), QueryParams{Limit: intPtr(10), Page: intPtr(3)})
	require.NoError(t, err)
	require.Equal(t, 3, page.Page)
	require.Equal(t, 10, page.Limit)
	require.Equal(t, 25, page.Total)
	require.Len(t, page.Items, 5)
	require.Equal(t, "user21", page.Items[0].Username)
	require.Equal(t, "user25", page.Items[4].Username)
}

func TestQuery_ErrorPolicy(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	service := seedAccounts(t, 25)

	_, err := service.Query(ctx, QueryParams{Limit: intPtr(10), Page: intPtr(4)})
	require.ErrorIs(t, err, ErrOutOfBound)

	_, err = service.Query(ctx, QueryParams{Page: intPtr(2)})
	require.ErrorIs(t, err, ErrInvalidQueryRequest)

	_, err = service.Query(ctx, QueryParams{Limit: intPtr(0)})
	require.ErrorIs(t, err, ErrNonPositiveInput)

	_, err = service.Query(ctx, QueryParams{Limit: intPtr(10), Page: intPtr(-1)})
	require.ErrorIs(t, err, ErrNonPositiveInput)

	_, err = service.Query(ctx, QueryParams{Username: "no-such-user"})
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestQuery_HugePaginationInputs(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	service := seedAccounts(t, 25)

	// (page-1)*limit would overflow int; must still be out of bound, not panic
	_, err := service.Query(ctx, QueryParams{Limit: intPtr(math.MaxInt / 2), Page: intPtr(3)})
	require.ErrorIs(t, err, ErrOutOfBound)

	_, err = service.Query(ctx, QueryParams{Limit: intPtr(math.MaxInt), Page: intPtr(math.MaxInt)})
	require.ErrorIs(t, err, ErrOutOfBound)

	// a huge limit on the first page is just one full page
	page, err := service.Query(ctx, QueryParams{Limit: intPtr(math.MaxInt), Page: intPtr(1)})
	require.NoError(t, err)
	require.Equal(t, 25, page.Total)
	require.Len(t, page.Items, 25)
}

func TestQuery_Filters(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := memory.NewUserStore()
	seed := []models.User{
		{Username: "alice", Email: "alice@corp.example.com"},
		{Username: "alicia", Email: "alicia@mail.example.com"},
		{Username: "bob", Email: "bob@corp.example.com"},
	}
	for _, user := range seed {
		_, err := store.CreateUser(ctx, user)
		require.NoError(t, err)
	}
	service := NewService(store, 4)

	page, err := service.Query(ctx, QueryParams{Username: "ali"})
	require.NoError(t, err)
	require.Equal(t, 2, page.Total)

	// both filters AND together
	page, err = service.Query(ctx, QueryParams{Username: "ali", Email: "corp"})
	require.NoError(t, err)
	require.Equal(t, 1, page.Total)
	require.Equal(t, "alice", page.Items[0].Username)

	// substring matching is case-sensitive
	_, err = service.Query(ctx, QueryParams{Username: "ALI"})
	require.ErrorIs(t, err, storage.ErrNotFound)
}
