package backend_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/devopslab/userboard/internal/dashboard/backend"
)

func newClient(url string) *backend.Client {
	log := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return backend.NewClient(url, log, nil)
}

// fakeStore stands in for the user store service.
func fakeStore(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
	})

	mux.HandleFunc("/api/users", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		switch r.Method {
		case http.MethodGet:
			json.NewEncoder(w).Encode(map[string]any{
				"users": []map[string]string{
					{"id": "1", "name": "John Doe", "email": "john@example.com", "role": "admin", "created_at": "2025-01-01T10:00:00Z"},
				},
				"count": 1,
			})
		case http.MethodPost:
			var payload map[string]string
			if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
				t.Errorf("decode create payload: %v", err)
			}
			if payload["name"] == "" {
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(map[string]string{"error": "Missing required field: name"})
				return
			}
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(map[string]string{"id": "fresh", "name": payload["name"]})
		}
	})

	mux.HandleFunc("/api/users/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if r.Method != http.MethodDelete {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		if r.URL.Path == "/api/users/1" {
			json.NewEncoder(w).Encode(map[string]any{"message": "User deleted successfully"})
			return
		}

		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "User not found"})
	})

	mux.HandleFunc("/api/stats", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"total_users": 1,
			"service_info": map[string]string{
				"name": "backend-user-service", "version": "1.0.0", "environment": "development",
			},
			"timestamp": "2025-06-01T00:00:00Z",
		})
	})

	return httptest.NewServer(mux)
}

// deadStore returns a base URL nothing listens on.
func deadStore(t *testing.T) string {
	t.Helper()

	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	return url
}

func TestUsers(t *testing.T) {
	srv := fakeStore(t)
	defer srv.Close()

	c := newClient(srv.URL)

	users, ok := c.Users(context.Background())
	if !ok {
		t.Fatalf("expected ok")
	}
	if len(users) != 1 || users[0].ID != "1" || users[0].Name != "John Doe" {
		t.Fatalf("unexpected users: %+v", users)
	}
}

func TestUsersBackendDown(t *testing.T) {
	c := newClient(deadStore(t))

	if users, ok := c.Users(context.Background()); ok || users != nil {
		t.Fatalf("expected failure against dead store, got %+v", users)
	}
}

func TestStats(t *testing.T) {
	srv := fakeStore(t)
	defer srv.Close()

	c := newClient(srv.URL)

	stats, ok := c.Stats(context.Background())
	if !ok || stats == nil {
		t.Fatalf("expected stats")
	}
	if stats.TotalUsers != 1 || stats.ServiceInfo.Environment != "development" {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	if _, ok := newClient(deadStore(t)).Stats(context.Background()); ok {
		t.Fatalf("expected failure against dead store")
	}
}

func TestHealthy(t *testing.T) {
	srv := fakeStore(t)
	defer srv.Close()

	if !newClient(srv.URL).Healthy(context.Background()) {
		t.Fatalf("expected healthy")
	}

	if newClient(deadStore(t)).Healthy(context.Background()) {
		t.Fatalf("expected unhealthy against dead store")
	}
}

func TestCreateUser(t *testing.T) {
	srv := fakeStore(t)
	defer srv.Close()

	c := newClient(srv.URL)

	status, errMsg := c.CreateUser(context.Background(), "Ada", "ada@x.com", "user")
	if status != http.StatusCreated || errMsg != "" {
		t.Fatalf("got status %d errMsg %q", status, errMsg)
	}

	// the store's reported error flows back verbatim
	status, errMsg = c.CreateUser(context.Background(), "", "ada@x.com", "user")
	if status != http.StatusBadRequest || errMsg != "Missing required field: name" {
		t.Fatalf("got status %d errMsg %q", status, errMsg)
	}

	// transport failure looks exactly like a server error
	status, errMsg = newClient(deadStore(t)).CreateUser(context.Background(), "Ada", "ada@x.com", "user")
	if status != http.StatusInternalServerError || errMsg == "" {
		t.Fatalf("got status %d errMsg %q", status, errMsg)
	}
}

func TestDeleteUser(t *testing.T) {
	srv := fakeStore(t)
	defer srv.Close()

	c := newClient(srv.URL)

	status, errMsg := c.DeleteUser(context.Background(), "1")
	if status != http.StatusOK || errMsg != "" {
		t.Fatalf("got status %d errMsg %q", status, errMsg)
	}

	status, errMsg = c.DeleteUser(context.Background(), "missing")
	if status != http.StatusNotFound || errMsg != "User not found" {
		t.Fatalf("got status %d errMsg %q", status, errMsg)
	}
}

func TestErrorMessageFallback(t *testing.T) {
	if got := backend.ErrorMessage([]byte("not json")); got != "Unknown error" {
		t.Fatalf("got %q, want Unknown error", got)
	}
	if got := backend.ErrorMessage([]byte(`{"status":"nope"}`)); got != "Unknown error" {
		t.Fatalf("got %q, want Unknown error", got)
	}
	if got := backend.ErrorMessage([]byte(`{"error":"boom"}`)); got != "boom" {
		t.Fatalf("got %q, want boom", got)
	}
}
