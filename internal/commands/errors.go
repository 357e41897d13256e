package commands

import (
	"errors"
	"fmt"
	"io"

	"todo/internal/exitcode"
	"todo/internal/service"
	"todo/internal/task"
)

// reportError prints err and returns the matching exit code.
// Missing tasks and invalid priorities are user errors; anything else
// came from the store.
func reportError(errOut io.Writer, err error) int {
	switch {
	case errors.Is(err, service.ErrNotFound),
		errors.Is(err, task.ErrInvalidPriority),
		errors.Is(err, task.ErrInvalidID):
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	default:
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}
}
