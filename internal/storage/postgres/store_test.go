package postgres

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/seejay/userbase-be/internal/models"
	"github.com/seejay/userbase-be/internal/storage"
)

// TestStoreIntegration exercises the store against a live Postgres instance.
func TestStoreIntegration(t *testing.T) {
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("set TEST_DATABASE_URL to run this integration test")
	}

	ctx := context.Background()
	store, err := NewUserStore(ctx, dbURL)
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	defer store.Close()

	email := fmt.Sprintf("storetest_%d@example.com", time.Now().UnixNano())

	created, err := store.CreateUser(ctx, models.User{
		Username:     "storetest",
		Email:        email,
		PasswordHash: "hash",
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected a generated id")
	}

	if _, err := store.CreateUser(ctx, models.User{
		Username:     "storetest2",
		Email:        email,
		PasswordHash: "hash",
	}); !errors.Is(err, storage.ErrAlreadyExists) {
		t.Fatalf("duplicate email: want ErrAlreadyExists, got %v", err)
	}

	byEmail, err := store.FindByEmail(ctx, email)
	if err != nil {
		t.Fatalf("find by email: %v", err)
	}
	if byEmail.ID != created.ID {
		t.Fatalf("find by email returned wrong user: want %d got %d", created.ID, byEmail.ID)
	}

	byID, err := store.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("find by id: %v", err)
	}
	if byID.Email != email {
		t.Fatalf("find by id returned wrong email: %s", byID.Email)
	}

	byID.Username = "renamed"
	updated, err := store.UpdateUser(ctx, byID)
	if err != nil {
		t.Fatalf("update user: %v", err)
	}
	if updated.Username != "renamed" {
		t.Fatalf("update did not stick: %s", updated.Username)
	}

	all, err := store.ListAll(ctx)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) == 0 {
		t.Fatal("expected at least one user")
	}

	if err := store.DeleteUser(ctx, created.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}
	if err := store.DeleteUser(ctx, created.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("second delete: want ErrNotFound, got %v", err)
	}
	if _, err := store.FindByEmail(ctx, email); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("find deleted: want ErrNotFound, got %v", err)
	}
}
