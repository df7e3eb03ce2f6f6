// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"todo/internal/service"
)

// DateFormatter renders task timestamps.
type DateFormatter interface {
	Format(t time.Time) string
}

// FormatTask formats a numbered task line.
// Format: "{N:>4}  [x] {TITLE}" followed by "  ({DATE})" when the task
// carries a creation time and df is non-nil.
func FormatTask(w io.Writer, num int, task service.Task, df DateFormatter) {
	mark := " "
	if task.Completed {
		mark = "x"
	}
	line := fmt.Sprintf("%4d  [%s] %s", num, mark, normalizeTitle(task.Title))
	if task.CreatedAt != nil && df != nil {
		line += "  (" + df.Format(*task.CreatedAt) + ")"
	}
	fmt.Fprintln(w, line)
}

// FormatCreated reports a newly created task.
func FormatCreated(w io.Writer, task service.Task) {
	fmt.Fprintf(w, "created %s: %s\n", task.ID, normalizeTitle(task.Title))
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
