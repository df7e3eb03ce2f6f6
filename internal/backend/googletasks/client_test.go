package googletasks

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gorilla/mux"

	"todo/internal/service"
)

// fakeTasksAPI serves the subset of the Google Tasks REST surface the client uses.
type fakeTasksAPI struct {
	mu      sync.Mutex
	items   []map[string]any
	patches []map[string]any
	fail    int
}

func (f *fakeTasksAPI) handler() http.Handler {
	r := mux.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			f.mu.Lock()
			fail := f.fail
			f.fail = 0
			f.mu.Unlock()
			if fail != 0 {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(fail)
				_ = json.NewEncoder(w).Encode(map[string]any{
					"error": map[string]any{"code": fail, "message": "boom"},
				})
				return
			}
			next.ServeHTTP(w, req)
		})
	})

	r.HandleFunc("/tasks/v1/lists/{list}/tasks", func(w http.ResponseWriter, req *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		writeJSON(w, map[string]any{"kind": "tasks#tasks", "items": f.items})
	}).Methods(http.MethodGet)

	r.HandleFunc("/tasks/v1/lists/{list}/tasks", func(w http.ResponseWriter, req *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(req.Body).Decode(&body)
		task := map[string]any{"id": "new-1", "title": body["title"], "status": statusNeedsAction}
		f.mu.Lock()
		f.items = append(f.items, task)
		f.mu.Unlock()
		writeJSON(w, task)
	}).Methods(http.MethodPost)

	r.HandleFunc("/tasks/v1/lists/{list}/tasks/{task}", func(w http.ResponseWriter, req *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(req.Body).Decode(&body)
		id := mux.Vars(req)["task"]
		f.mu.Lock()
		defer f.mu.Unlock()
		f.patches = append(f.patches, body)
		for _, item := range f.items {
			if item["id"] == id {
				item["title"] = body["title"]
				item["status"] = body["status"]
				writeJSON(w, item)
				return
			}
		}
		http.NotFound(w, req)
	}).Methods(http.MethodPatch)

	r.HandleFunc("/tasks/v1/lists/{list}/tasks/{task}", func(w http.ResponseWriter, req *http.Request) {
		id := mux.Vars(req)["task"]
		f.mu.Lock()
		defer f.mu.Unlock()
		for i, item := range f.items {
			if item["id"] == id {
				f.items = append(f.items[:i], f.items[i+1:]...)
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}
		http.NotFound(w, req)
	}).Methods(http.MethodDelete)

	return r
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func newTestClient(t *testing.T, api *fakeTasksAPI) *Client {
	t.Helper()
	srv := httptest.NewServer(api.handler())
	t.Cleanup(srv.Close)

	c, err := NewWithHTTPClient(context.Background(), srv.Client(), srv.URL+"/")
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return c
}

func TestListTasks_MapsStatus(t *testing.T) {
	api := &fakeTasksAPI{items: []map[string]any{
		{"id": "a", "title": "Open", "status": statusNeedsAction},
		{"id": "b", "title": "Done", "status": statusCompleted},
	}}
	c := newTestClient(t, api)

	got, err := c.ListTasks(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []service.Task{
		{ID: "a", Title: "Open"},
		{ID: "b", Title: "Done", Completed: true},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d tasks, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("task %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestListTasks_Empty(t *testing.T) {
	c := newTestClient(t, &fakeTasksAPI{})

	got, err := c.ListTasks(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", got)
	}
}

func TestCreateUpdateDelete(t *testing.T) {
	api := &fakeTasksAPI{}
	c := newTestClient(t, api)
	ctx := context.Background()

	created, err := c.CreateTask(ctx, "Buy milk")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID != "new-1" || created.Title != "Buy milk" || created.Completed {
		t.Errorf("unexpected created task %+v", created)
	}

	updated, err := c.UpdateTask(ctx, created.ID, "Buy milk", true)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !updated.Completed {
		t.Errorf("expected completed task, got %+v", updated)
	}
	if last := api.patches[len(api.patches)-1]; last["status"] != statusCompleted {
		t.Errorf("expected status patch, got %v", last)
	}

	reopened, err := c.UpdateTask(ctx, created.ID, "Buy oat milk", false)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if reopened.Completed || reopened.Title != "Buy oat milk" {
		t.Errorf("unexpected reopened task %+v", reopened)
	}
	if last := api.patches[len(api.patches)-1]; last["completed"] != nil {
		t.Errorf("expected completed to be nulled, got %v", last["completed"])
	}

	if err := c.DeleteTask(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(api.items) != 0 {
		t.Errorf("expected no items, got %v", api.items)
	}
}

func TestWrapError_Status(t *testing.T) {
	api := &fakeTasksAPI{fail: http.StatusForbidden}
	c := newTestClient(t, api)

	_, err := c.ListTasks(context.Background())
	if service.KindOf(err) != service.KindStatus {
		t.Fatalf("expected status error, got %v", err)
	}
	if code := service.StatusCodeOf(err); code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", code)
	}
}

func TestWrapError_NotFound(t *testing.T) {
	c := newTestClient(t, &fakeTasksAPI{})

	err := c.DeleteTask(context.Background(), "missing")
	if code := service.StatusCodeOf(err); code != http.StatusNotFound {
		t.Errorf("expected 404, got %d (%v)", code, err)
	}
}
