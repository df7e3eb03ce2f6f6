// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"sync"

	"todo/internal/service"
)

// FakeService is an in-memory implementation of service.Service for testing.
type FakeService struct {
	mu     sync.RWMutex
	tasks  []service.Task
	nextID int

	// Calls counts invocations per operation ("list", "create", "update", "delete").
	Calls map[string]int

	// Error injection for testing
	ListTasksErr  error
	CreateTaskErr error
	UpdateTaskErr error
	DeleteTaskErr error
}

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{Calls: make(map[string]int)}
}

// AddTask adds a task directly, bypassing CreateTask.
func (f *FakeService) AddTask(id, title string, completed bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, service.Task{ID: id, Title: title, Completed: completed})
}

// Tasks returns a copy of the stored tasks.
func (f *FakeService) Tasks() []service.Task {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]service.Task(nil), f.tasks...)
}

func (f *FakeService) count(op string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls[op]++
}

// ListTasks implements service.Service.
func (f *FakeService) ListTasks(ctx context.Context) ([]service.Task, error) {
	f.count("list")
	if f.ListTasksErr != nil {
		return nil, f.ListTasksErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	result := make([]service.Task, len(f.tasks))
	copy(result, f.tasks)
	return result, nil
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, title string) (service.Task, error) {
	f.count("create")
	if f.CreateTaskErr != nil {
		return service.Task{}, f.CreateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	task := service.Task{ID: fmt.Sprintf("task-%d", f.nextID), Title: title}
	f.tasks = append(f.tasks, task)
	return task, nil
}

// UpdateTask implements service.Service.
func (f *FakeService) UpdateTask(ctx context.Context, id, title string, completed bool) (service.Task, error) {
	f.count("update")
	if f.UpdateTaskErr != nil {
		return service.Task{}, f.UpdateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks[i].Title = title
			f.tasks[i].Completed = completed
			return f.tasks[i], nil
		}
	}
	return service.Task{}, &service.Error{Op: "update", Kind: service.KindStatus, StatusCode: 404}
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(ctx context.Context, id string) error {
	f.count("delete")
	if f.DeleteTaskErr != nil {
		return f.DeleteTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return &service.Error{Op: "delete", Kind: service.KindStatus, StatusCode: 404}
}
