// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"todo/internal/task"
)

// FormatTask formats a task line for list output.
// Format: "{ID:>4}  [x] {PRIORITY:<6}  {TITLE}\n"
func FormatTask(w io.Writer, t task.Task) {
	fmt.Fprintf(w, "%4d  %s %-6s  %s\n", t.ID, checkbox(t.Completed), t.Priority, normalizeTitle(t.Title))
}

// FormatTaskDetail prints every field of a task, one per line.
func FormatTaskDetail(w io.Writer, t task.Task) {
	status := "open"
	if t.Completed {
		status = "completed"
	}
	fmt.Fprintf(w, "id:        %d\n", t.ID)
	fmt.Fprintf(w, "title:     %s\n", normalizeTitle(t.Title))
	fmt.Fprintf(w, "priority:  %s\n", t.Priority)
	fmt.Fprintf(w, "status:    %s\n", status)
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	// Replace newlines with spaces
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	// Trim and check for empty
	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
