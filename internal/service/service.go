// Package service defines the backend-agnostic interface for task operations.
package service

import "context"

// Service defines the interface for task backend operations.
// Commands talk to the remote API only through this interface.
// Implementations issue exactly one backend call per operation and never retry.
type Service interface {
	// ListTasks returns every task in server order.
	// A successful empty result is an empty slice, never an error.
	ListTasks(ctx context.Context) ([]Task, error)

	// CreateTask creates a task with the given title and returns it
	// as assigned by the server (including its ID).
	CreateTask(ctx context.Context, title string) (Task, error)

	// UpdateTask replaces the title and completion state of a task.
	UpdateTask(ctx context.Context, id, title string, completed bool) (Task, error)

	// DeleteTask deletes a task by ID.
	DeleteTask(ctx context.Context, id string) error
}
