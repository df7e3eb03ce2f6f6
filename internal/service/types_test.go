package service_test

import (
	"testing"
	"time"

	"github.com/bytedance/sonic"

	"todo/internal/service"
)

func TestTaskUnmarshal_CreatedAt(t *testing.T) {
	want := time.Date(2024, time.January, 15, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		body string
		want *time.Time
	}{
		{"rfc3339", `{"id":"1","created_at":"2024-01-15T14:30:00Z"}`, &want},
		{"fractional seconds", `{"id":"1","created_at":"2024-01-15T14:30:00.000Z"}`, &want},
		{"missing", `{"id":"1"}`, nil},
		{"null", `{"id":"1","created_at":null}`, nil},
		{"unparseable", `{"id":"1","created_at":"bad"}`, nil},
		{"number", `{"id":"1","created_at":1705329000}`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var task service.Task
			if err := sonic.ConfigStd.Unmarshal([]byte(tt.body), &task); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if task.ID != "1" {
				t.Errorf("expected id 1, got %q", task.ID)
			}
			switch {
			case tt.want == nil && task.CreatedAt != nil:
				t.Errorf("expected nil created_at, got %v", task.CreatedAt)
			case tt.want != nil && (task.CreatedAt == nil || !task.CreatedAt.Equal(*tt.want)):
				t.Errorf("expected created_at %v, got %v", tt.want, task.CreatedAt)
			}
		})
	}
}

func TestTaskUnmarshal_RequiredFieldsStayStrict(t *testing.T) {
	var task service.Task
	if err := sonic.ConfigStd.Unmarshal([]byte(`{"id":1}`), &task); err == nil {
		t.Error("expected error for numeric id")
	}
}
