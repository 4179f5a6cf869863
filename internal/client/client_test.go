package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/example/taskboard/internal/model"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(server.URL, 2*time.Second)
}

func writeEnvelope(w http.ResponseWriter, status int, success bool, data any, errCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	body := map[string]any{"success": success}
	if data != nil {
		body["data"] = data
	}
	if errCode != "" {
		body["error"] = errCode
	}
	if message != "" {
		body["message"] = message
	}
	_ = json.NewEncoder(w).Encode(body)
}

func TestCreateTaskDecodesEnvelope(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/tasks" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var req CreateTaskRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Name != "Write spec" || req.Priority != "HIGH" {
			t.Fatalf("unexpected request body: %#v", req)
		}
		writeEnvelope(w, http.StatusCreated, true, model.Task{
			ID:       "task-1",
			Name:     req.Name,
			Status:   model.StatusUpcoming,
			Priority: model.PriorityHigh,
		}, "", "task created")
	})

	task, err := c.CreateTask(context.Background(), CreateTaskRequest{Name: "Write spec", Priority: "HIGH"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if task.ID != "task-1" || task.Status != model.StatusUpcoming {
		t.Fatalf("unexpected task: %#v", task)
	}
}

func TestListTasksPassesStatusFilter(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("status"); got != "COMPLETED" {
			t.Fatalf("status query = %q, want COMPLETED", got)
		}
		writeEnvelope(w, http.StatusOK, true, []model.Task{{ID: "task-1", Name: "Done thing"}}, "", "")
	})

	tasks, err := c.ListTasks(context.Background(), "COMPLETED")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tasks) != 1 || tasks[0].ID != "task-1" {
		t.Fatalf("unexpected tasks: %#v", tasks)
	}
}

func TestNotFoundMapsToSentinel(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusNotFound, false, nil, "not_found", "storage: not found")
	})

	if _, err := c.GetTask(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
	if err := c.DeleteTask(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on delete, got: %v", err)
	}
}

func TestValidationErrorCarriesMessage(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusUnprocessableEntity, false, nil, "validation_error", "service: invalid name: must not be empty")
	})

	_, err := c.CreateTask(context.Background(), CreateTaskRequest{Name: ""})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got: %v", err)
	}
	if verr.Message != "service: invalid name: must not be empty" {
		t.Fatalf("unexpected message: %q", verr.Message)
	}
}

func TestServerErrorMapsToAPIError(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusInternalServerError, false, nil, "internal", "database unavailable")
	})

	_, err := c.UpdateTask(context.Background(), "task-1", UpdateTaskRequest{})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got: %v", err)
	}
	if apiErr.StatusCode != http.StatusInternalServerError || apiErr.Message != "database unavailable" {
		t.Fatalf("unexpected api error: %#v", apiErr)
	}
}

func TestContextCancellation(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if _, err := c.ListTasks(ctx, ""); err == nil {
		t.Fatal("expected error from cancelled context")
	}
}
