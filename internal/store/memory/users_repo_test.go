package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/devopslab/userboard/internal/domain/user"
	"github.com/devopslab/userboard/internal/store/memory"
)

func TestSeedInstallsDemoUsers(t *testing.T) {
	repo := memory.NewUsersRepo()
	repo.Seed()

	ctx := context.Background()

	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Fatalf("got count %d, want 2", count)
	}

	u, err := repo.GetByID(ctx, "1")
	if err != nil {
		t.Fatalf("get seed user 1: %v", err)
	}
	if u.Name != "John Doe" || u.Role != "admin" || u.CreatedAt != "2025-01-01T10:00:00Z" {
		t.Fatalf("unexpected seed user 1: %+v", u)
	}

	if _, err := repo.GetByID(ctx, "2"); err != nil {
		t.Fatalf("get seed user 2: %v", err)
	}

	// seeding twice must not duplicate
	repo.Seed()
	count, _ = repo.Count(ctx)
	if count != 2 {
		t.Fatalf("got count %d after double seed, want 2", count)
	}
}

func TestCreateGeneratesFreshUsers(t *testing.T) {
	repo := memory.NewUsersRepo()
	ctx := context.Background()

	first, err := repo.Create(ctx, user.CreateUserRequest{Name: "A", Email: "a@x.com"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	second, err := repo.Create(ctx, user.CreateUserRequest{Name: "B", Email: "b@x.com", Role: "moderator"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if first.ID == "" || second.ID == "" || first.ID == second.ID {
		t.Fatalf("expected distinct generated ids, got %q and %q", first.ID, second.ID)
	}
	if first.Role != "user" {
		t.Fatalf("got role %q, want defaulted %q", first.Role, "user")
	}
	if second.Role != "moderator" {
		t.Fatalf("got role %q, want %q", second.Role, "moderator")
	}
	if first.CreatedAt == "" {
		t.Fatalf("expected created_at to be stamped")
	}
	if first.UpdatedAt != "" {
		t.Fatalf("updated_at must be empty before the first update")
	}
}

func TestUpdateIsPartial(t *testing.T) {
	repo := memory.NewUsersRepo()
	ctx := context.Background()

	created, err := repo.Create(ctx, user.CreateUserRequest{Name: "A", Email: "a@x.com", Role: "admin"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	name := "X"
	updated, err := repo.Update(ctx, created.ID, user.UpdateUserRequest{Name: &name})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if updated.Name != "X" {
		t.Fatalf("got name %q, want %q", updated.Name, "X")
	}
	if updated.Email != "a@x.com" || updated.Role != "admin" {
		t.Fatalf("email/role must be untouched, got %+v", updated)
	}
	if updated.CreatedAt != created.CreatedAt {
		t.Fatalf("created_at must never change: %q vs %q", updated.CreatedAt, created.CreatedAt)
	}
	if updated.UpdatedAt == "" {
		t.Fatalf("expected updated_at to be stamped")
	}

	if _, err := repo.Update(ctx, "missing", user.UpdateUserRequest{Name: &name}); !errors.Is(err, user.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestDeleteRemovesAndReturnsUser(t *testing.T) {
	repo := memory.NewUsersRepo()
	repo.Seed()
	ctx := context.Background()

	deleted, err := repo.Delete(ctx, "1")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if deleted.ID != "1" {
		t.Fatalf("got deleted id %q, want %q", deleted.ID, "1")
	}

	if _, err := repo.GetByID(ctx, "1"); !errors.Is(err, user.ErrNotFound) {
		t.Fatalf("got %v after delete, want ErrNotFound", err)
	}

	// deleting again has no side effect
	if _, err := repo.Delete(ctx, "1"); !errors.Is(err, user.ErrNotFound) {
		t.Fatalf("got %v on repeat delete, want ErrNotFound", err)
	}

	count, _ := repo.Count(ctx)
	if count != 1 {
		t.Fatalf("got count %d, want 1", count)
	}
}

func TestListKeepsInsertionOrder(t *testing.T) {
	repo := memory.NewUsersRepo()
	repo.Seed()
	ctx := context.Background()

	created, err := repo.Create(ctx, user.CreateUserRequest{Name: "C", Email: "c@x.com"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	users, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	wantIDs := []string{"1", "2", created.ID}
	if len(users) != len(wantIDs) {
		t.Fatalf("got %d users, want %d", len(users), len(wantIDs))
	}
	for i, id := range wantIDs {
		if users[i].ID != id {
			t.Fatalf("position %d: got id %q, want %q", i, users[i].ID, id)
		}
	}

	// removal keeps the remaining order stable
	if _, err := repo.Delete(ctx, "2"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	users, _ = repo.List(ctx)
	if len(users) != 2 || users[0].ID != "1" || users[1].ID != created.ID {
		t.Fatalf("unexpected order after delete: %+v", users)
	}
}
