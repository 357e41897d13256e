package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"unicode"

	"todo/internal/exitcode"
	"todo/internal/service"
	"todo/internal/task"
)

// ErrTaskIDRequired indicates no task ID was provided.
var ErrTaskIDRequired = errors.New("task id required")

// ParseTaskID parses a single positive task ID.
func ParseTaskID(s string) (int, error) {
	if !isAllDigits(s) {
		return 0, fmt.Errorf("invalid task id: %s", s)
	}
	id, err := strconv.Atoi(s)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid task id: %s", s)
	}
	return id, nil
}

// ParseTaskIDs parses every argument as a task ID. Duplicates are
// dropped, first occurrence wins.
func ParseTaskIDs(args []string) ([]int, error) {
	if len(args) == 0 {
		return nil, ErrTaskIDRequired
	}

	seen := make(map[int]bool, len(args))
	ids := make([]int, 0, len(args))
	for _, arg := range args {
		id, err := ParseTaskID(arg)
		if err != nil {
			return nil, err
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids, nil
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// reportIDError prints a task ID parse error and returns the user error code.
func reportIDError(errOut io.Writer, err error) int {
	if errors.Is(err, ErrTaskIDRequired) {
		fmt.Fprintln(errOut, "error: task id required")
	} else {
		fmt.Fprintf(errOut, "error: %v\n", err)
	}
	return exitcode.UserError
}

// lookupAll fetches every task before a batch mutation so a bad ID
// leaves the store untouched.
func lookupAll(ctx context.Context, svc service.Service, ids []int) ([]task.Task, error) {
	tasks := make([]task.Task, 0, len(ids))
	for _, id := range ids {
		t, err := svc.GetTask(ctx, id)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}
