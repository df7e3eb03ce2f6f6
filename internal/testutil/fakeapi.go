package testutil

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// APITask is the wire shape served by FakeAPI.
type APITask struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Completed bool    `json:"completed"`
	CreatedAt *string `json:"created_at"`
}

// RecordedRequest captures what a client sent to FakeAPI.
type RecordedRequest struct {
	Method      string
	Path        string
	ContentType string
	Auth        string
	Body        map[string]any
	RawBody     string
}

// FakeAPI is an in-memory task API served over httptest.
// Routes and status codes follow the real server:
// GET /tasks 200, POST /task 201, PUT /task 200, DELETE /task 204.
type FakeAPI struct {
	*httptest.Server

	mu       sync.Mutex
	tasks    []APITask
	requests []RecordedRequest
	failNext []int
	rawNext  []string
	now      func() time.Time
}

// NewFakeAPI starts a FakeAPI. Call Close when done.
func NewFakeAPI() *FakeAPI {
	f := &FakeAPI{now: time.Now}

	r := mux.NewRouter()
	r.Use(f.record)
	r.HandleFunc("/tasks", f.listTasks).Methods(http.MethodGet)
	r.HandleFunc("/task", f.createTask).Methods(http.MethodPost)
	r.HandleFunc("/task", f.updateTask).Methods(http.MethodPut)
	r.HandleFunc("/task", f.deleteTask).Methods(http.MethodDelete)

	f.Server = httptest.NewServer(r)
	return f
}

// Seed replaces the stored tasks.
func (f *FakeAPI) Seed(tasks ...APITask) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append([]APITask(nil), tasks...)
}

// Tasks returns a copy of the stored tasks.
func (f *FakeAPI) Tasks() []APITask {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]APITask(nil), f.tasks...)
}

// FailNext makes the next request answer with the given status and no body.
// Calls queue up.
func (f *FakeAPI) FailNext(status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failNext = append(f.failNext, status)
}

// RespondRaw makes the next request answer 200 with body verbatim.
func (f *FakeAPI) RespondRaw(body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rawNext = append(f.rawNext, body)
}

// Requests returns the requests received so far.
func (f *FakeAPI) Requests() []RecordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]RecordedRequest(nil), f.requests...)
}

// LastRequest returns the most recent request, or a zero value.
func (f *FakeAPI) LastRequest() RecordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.requests) == 0 {
		return RecordedRequest{}
	}
	return f.requests[len(f.requests)-1]
}

// record logs every request and applies queued failures before routing.
func (f *FakeAPI) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var raw []byte
		if r.Body != nil {
			raw, _ = io.ReadAll(r.Body)
			r.Body = io.NopCloser(bytes.NewReader(raw))
		}
		rec := RecordedRequest{
			Method:      r.Method,
			Path:        r.URL.Path,
			ContentType: r.Header.Get("Content-Type"),
			Auth:        r.Header.Get("Authorization"),
			RawBody:     string(raw),
		}
		if len(raw) > 0 {
			_ = json.Unmarshal(raw, &rec.Body)
		}

		f.mu.Lock()
		f.requests = append(f.requests, rec)
		var status int
		if len(f.failNext) > 0 {
			status, f.failNext = f.failNext[0], f.failNext[1:]
		}
		var canned string
		hasCanned := false
		if status == 0 && len(f.rawNext) > 0 {
			canned, f.rawNext = f.rawNext[0], f.rawNext[1:]
			hasCanned = true
		}
		f.mu.Unlock()

		switch {
		case status != 0:
			w.WriteHeader(status)
		case hasCanned:
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(canned))
		default:
			next.ServeHTTP(w, r)
		}
	})
}

func (f *FakeAPI) listTasks(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	tasks := append([]APITask(nil), f.tasks...)
	f.mu.Unlock()
	writeJSON(w, tasks, http.StatusOK)
}

func (f *FakeAPI) createTask(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title string `json:"title"`
	}
	if err := decodeStrict(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created := f.now().UTC().Format(time.RFC3339)
	task := APITask{ID: uuid.NewString(), Title: req.Title, CreatedAt: &created}

	f.mu.Lock()
	f.tasks = append(f.tasks, task)
	f.mu.Unlock()

	writeJSON(w, task, http.StatusCreated)
}

func (f *FakeAPI) updateTask(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID        string `json:"id"`
		Title     string `json:"title"`
		Completed bool   `json:"completed"`
	}
	if err := decodeStrict(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.tasks {
		if f.tasks[i].ID == req.ID {
			f.tasks[i].Title = req.Title
			f.tasks[i].Completed = req.Completed
			writeJSON(w, f.tasks[i], http.StatusOK)
			return
		}
	}
	http.Error(w, "Failed to update task", http.StatusInternalServerError)
}

func (f *FakeAPI) deleteTask(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID string `json:"id"`
	}
	if err := decodeStrict(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.tasks {
		if f.tasks[i].ID == req.ID {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	http.Error(w, "Failed to delete task", http.StatusInternalServerError)
}

func decodeStrict(r *http.Request, v any) error {
	if ct := r.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "application/json") {
		return errors.New("content-Type must be application/json")
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.New("invalid request format")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, v any, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
