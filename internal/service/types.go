package service

import (
	"time"

	"github.com/bytedance/sonic"
)

// Task represents a single task item as exchanged with the API.
type Task struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Completed bool       `json:"completed"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// wireTask is Task as it arrives; created_at is optional and not trusted.
type wireTask struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	CreatedAt any    `json:"created_at"`
}

// UnmarshalJSON decodes a task. A created_at that is missing, null, or not
// an RFC 3339 string leaves CreatedAt nil instead of failing the task.
func (t *Task) UnmarshalJSON(data []byte) error {
	var w wireTask
	if err := sonic.ConfigStd.Unmarshal(data, &w); err != nil {
		return err
	}
	*t = Task{ID: w.ID, Title: w.Title, Completed: w.Completed}
	if s, ok := w.CreatedAt.(string); ok {
		if ts, err := time.Parse(time.RFC3339, s); err == nil {
			t.CreatedAt = &ts
		}
	}
	return nil
}
