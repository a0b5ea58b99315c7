package memory

import (
	"context"
	"sync"
	"time"

	"github.com/devopslab/userboard/internal/domain/user"
)

// UsersRepo is the canonical user collection: a map keyed by id behind one
// lock, plus an insertion-order index so listings are deterministic.
type UsersRepo struct {
	mu    sync.RWMutex
	items map[string]user.User
	order []string
}

func NewUsersRepo() *UsersRepo {
	return &UsersRepo{
		items: make(map[string]user.User),
	}
}

// Seed installs the two demo users present at every startup.
func (r *UsersRepo) Seed() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range []user.User{
		{
			ID:        "1",
			Name:      "John Doe",
			Email:     "john@example.com",
			Role:      "admin",
			CreatedAt: "2025-01-01T10:00:00Z",
		},
		{
			ID:        "2",
			Name:      "Jane Smith",
			Email:     "jane@example.com",
			Role:      "user",
			CreatedAt: "2025-01-02T11:00:00Z",
		},
	} {
		if _, ok := r.items[u.ID]; !ok {
			r.order = append(r.order, u.ID)
		}
		r.items[u.ID] = u
	}
}

func (r *UsersRepo) Create(ctx context.Context, req user.CreateUserRequest) (user.User, error) {
	u := user.NewFromCreateRequest(req)

	r.mu.Lock()
	r.items[u.ID] = u
	r.order = append(r.order, u.ID)
	r.mu.Unlock()

	return u, nil
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	r.mu.RLock()
	u, ok := r.items[id]
	r.mu.RUnlock()

	if !ok {
		return user.User{}, user.ErrNotFound
	}

	return u, nil
}

// List returns every user in insertion order.
func (r *UsersRepo) List(ctx context.Context) ([]user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]user.User, 0, len(r.order))

	for _, id := range r.order {
		out = append(out, r.items[id])
	}

	return out, nil
}

func (r *UsersRepo) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.items), nil
}

// Update overwrites only the fields set on req and stamps updated_at.
// created_at is never touched.
func (r *UsersRepo) Update(ctx context.Context, id string, req user.UpdateUserRequest) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.items[id]

	if !ok {
		return user.User{}, user.ErrNotFound
	}

	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Email != nil {
		u.Email = *req.Email
	}
	if req.Role != nil {
		u.Role = *req.Role
	}

	u.UpdatedAt = time.Now().UTC().Format(user.TimestampFormat)

	r.items[id] = u

	return u, nil
}

// Delete removes the user and returns the removed record.
func (r *UsersRepo) Delete(ctx context.Context, id string) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.items[id]

	if !ok {
		return user.User{}, user.ErrNotFound
	}

	delete(r.items, id)

	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	return u, nil
}
