package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/devopslab/userboard/internal/domain/user"
	"github.com/gin-gonic/gin"
)

type UsersStore interface {
	Create(ctx context.Context, req user.CreateUserRequest) (user.User, error)
	GetByID(ctx context.Context, id string) (user.User, error)
	List(ctx context.Context) ([]user.User, error)
	Update(ctx context.Context, id string, req user.UpdateUserRequest) (user.User, error)
	Delete(ctx context.Context, id string) (user.User, error)
	Count(ctx context.Context) (int, error)
}

type UsersHandler struct {
	store UsersStore
}

func NewUsersHandler(store UsersStore) *UsersHandler {
	return &UsersHandler{store: store}
}

// requiredFields are checked in order; the first absent one is reported.
var requiredFields = []string{"name", "email"}

// bindBody decodes the request body into a key-presence map. The contract
// distinguishes an absent key from a zero value (partial updates, required
// field scan), which struct binding cannot express. Missing, unparseable and
// empty-object bodies all count as "no data".
func bindBody(ctx *gin.Context) (map[string]any, bool) {
	var data map[string]any

	if err := ctx.ShouldBindJSON(&data); err != nil || len(data) == 0 {
		RespondBadRequest(ctx, "No data provided")
		return nil, false
	}

	return data, true
}

func stringField(data map[string]any, key string) string {
	s, _ := data[key].(string)
	return s
}

func (h *UsersHandler) CreateUser(ctx *gin.Context) {
	data, ok := bindBody(ctx)
	if !ok {
		return
	}

	for _, field := range requiredFields {
		if _, present := data[field]; !present {
			RespondBadRequest(ctx, "Missing required field: "+field)
			return
		}
	}

	req := user.CreateUserRequest{
		Name:  stringField(data, "name"),
		Email: stringField(data, "email"),
		Role:  stringField(data, "role"),
	}

	u, err := h.store.Create(ctx.Request.Context(), req)

	if err != nil {
		RespondInternal(ctx)
		return
	}

	ctx.JSON(http.StatusCreated, u)
}

func (h *UsersHandler) ListUsers(ctx *gin.Context) {
	users, err := h.store.List(ctx.Request.Context())

	if err != nil {
		RespondInternal(ctx)
		return
	}

	if users == nil {
		users = []user.User{}
	}

	ctx.JSON(http.StatusOK, gin.H{
		"users": users,
		"count": len(users),
	})
}

func (h *UsersHandler) GetUserByID(ctx *gin.Context) {
	id := ctx.Param("id")

	u, err := h.store.GetByID(ctx.Request.Context(), id)

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			RespondNotFound(ctx, "User not found")
			return
		}
		RespondInternal(ctx)
		return
	}

	ctx.JSON(http.StatusOK, u)
}

func (h *UsersHandler) UpdateUser(ctx *gin.Context) {
	id := ctx.Param("id")

	// Existence is decided before the body is read, so an unknown id wins
	// over a bad body.
	if _, err := h.store.GetByID(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			RespondNotFound(ctx, "User not found")
			return
		}
		RespondInternal(ctx)
		return
	}

	data, ok := bindBody(ctx)
	if !ok {
		return
	}

	var req user.UpdateUserRequest

	if _, present := data["name"]; present {
		v := stringField(data, "name")
		req.Name = &v
	}
	if _, present := data["email"]; present {
		v := stringField(data, "email")
		req.Email = &v
	}
	if _, present := data["role"]; present {
		v := stringField(data, "role")
		req.Role = &v
	}

	u, err := h.store.Update(ctx.Request.Context(), id, req)

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			RespondNotFound(ctx, "User not found")
			return
		}
		RespondInternal(ctx)
		return
	}

	ctx.JSON(http.StatusOK, u)
}

func (h *UsersHandler) DeleteUser(ctx *gin.Context) {
	id := ctx.Param("id")

	deleted, err := h.store.Delete(ctx.Request.Context(), id)

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			RespondNotFound(ctx, "User not found")
			return
		}
		RespondInternal(ctx)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "User deleted successfully",
		"user":    deleted,
	})
}
