package service

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Lenient adapts a Service to the sentinel contract used by UI callers:
// failures are logged once and replaced by an empty slice, nil, or false.
// Every failure kind collapses to the same sentinel.
type Lenient struct {
	svc Service
	log logrus.FieldLogger
}

// NewLenient wraps svc. If log is nil the standard logrus logger is used.
func NewLenient(svc Service, log logrus.FieldLogger) *Lenient {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Lenient{svc: svc, log: log}
}

// List returns all tasks, or an empty non-nil slice on failure.
func (l *Lenient) List(ctx context.Context) []Task {
	tasks, err := l.svc.ListTasks(ctx)
	if err != nil {
		l.logFailure(err, "Failed to fetch tasks")
		return []Task{}
	}
	if tasks == nil {
		return []Task{}
	}
	return tasks
}

// Create returns the created task, or nil on failure.
func (l *Lenient) Create(ctx context.Context, title string) *Task {
	task, err := l.svc.CreateTask(ctx, title)
	if err != nil {
		l.logFailure(err, "Failed to create task")
		return nil
	}
	return &task
}

// Update returns the updated task, or nil on failure.
func (l *Lenient) Update(ctx context.Context, id, title string, completed bool) *Task {
	task, err := l.svc.UpdateTask(ctx, id, title, completed)
	if err != nil {
		l.logFailure(err, "Failed to update task")
		return nil
	}
	return &task
}

// Delete reports whether the task was deleted.
func (l *Lenient) Delete(ctx context.Context, id string) bool {
	if err := l.svc.DeleteTask(ctx, id); err != nil {
		l.logFailure(err, "Failed to delete task")
		return false
	}
	return true
}

func (l *Lenient) logFailure(err error, msg string) {
	fields := logrus.Fields{"kind": KindOf(err).String()}
	if code := StatusCodeOf(err); code != 0 {
		fields["status"] = code
	}
	l.log.WithFields(fields).WithError(err).Error(msg)
}
